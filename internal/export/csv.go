// Package export serialises extraction results and directory records to the
// formats downstream consumers ingest: CSV for spreadsheets, JSON for
// programmatic use.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/quorumlabs/rollcall/internal/directory"
	"github.com/quorumlabs/rollcall/internal/extract"
)

// WriteEntitiesCSV writes one row per entity in the given order. Variant
// lists are joined with "; " inside a single cell.
func WriteEntitiesCSV(w io.Writer, entities []extract.Entity) error {
	cw := csv.NewWriter(w)
	header := []string{"name", "frequency", "document_count", "tier", "variants", "sample_context"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("export: write csv header: %w", err)
	}
	for _, e := range entities {
		row := []string{
			e.NormalizedForm,
			strconv.Itoa(e.Frequency),
			strconv.Itoa(e.DocumentCount),
			string(e.Tier),
			strings.Join(e.RawVariants, "; "),
			e.SampleContext,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: flush csv: %w", err)
	}
	return nil
}

// WriteRecordsCSV writes one row per directory record in the given order.
func WriteRecordsCSV(w io.Writer, records []directory.Record) error {
	cw := csv.NewWriter(w)
	header := []string{"id", "name", "last_name", "primary_role", "tier", "frequency", "document_count", "variants", "affiliations", "roster_match", "verified", "notes"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("export: write csv header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.ID,
			r.Name,
			r.LastName,
			string(r.PrimaryRole),
			string(r.Tier),
			strconv.Itoa(r.Frequency),
			strconv.Itoa(r.DocumentCount),
			strings.Join(r.Variants, "; "),
			strings.Join(r.Affiliations, "; "),
			r.RosterMatch,
			strconv.FormatBool(r.Verified),
			r.Notes,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: flush csv: %w", err)
	}
	return nil
}
