package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/quorumlabs/rollcall/internal/directory"
	"github.com/quorumlabs/rollcall/internal/extract"
)

// RunMetadata identifies one extraction run in exported JSON.
type RunMetadata struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
}

// ResultDocument is the JSON export envelope for an extraction run.
type ResultDocument struct {
	Run      RunMetadata               `json:"run"`
	Stats    extract.StageStats        `json:"stats"`
	Entities []extract.Entity          `json:"entities"`
	Clusters []extract.Cluster         `json:"clusters"`
	Review   []extract.ReviewPair      `json:"review,omitempty"`
	Skipped  []extract.SkippedDocument `json:"skipped,omitempty"`
}

// RecordsDocument is the JSON export envelope for a built directory.
type RecordsDocument struct {
	Run     RunMetadata        `json:"run"`
	Records []directory.Record `json:"records"`
}

// newRunMetadata stamps a fresh run ID and timestamp.
func newRunMetadata() RunMetadata {
	return RunMetadata{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
	}
}

// WriteResultJSON writes the full extraction result as indented JSON.
func WriteResultJSON(w io.Writer, res *extract.Result) error {
	doc := ResultDocument{
		Run:      newRunMetadata(),
		Stats:    res.Stats,
		Entities: res.Entities,
		Clusters: res.Clusters,
		Review:   res.Review,
		Skipped:  res.Skipped,
	}
	return writeJSON(w, doc)
}

// WriteRecordsJSON writes directory records as indented JSON.
func WriteRecordsJSON(w io.Writer, records []directory.Record) error {
	doc := RecordsDocument{
		Run:     newRunMetadata(),
		Records: records,
	}
	return writeJSON(w, doc)
}

func writeJSON(w io.Writer, doc any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("export: encode json: %w", err)
	}
	return nil
}
