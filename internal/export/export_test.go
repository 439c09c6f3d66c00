package export_test

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/quorumlabs/rollcall/internal/directory"
	"github.com/quorumlabs/rollcall/internal/export"
	"github.com/quorumlabs/rollcall/internal/extract"
)

func TestWriteEntitiesCSV(t *testing.T) {
	t.Parallel()

	entities := []extract.Entity{
		{
			NormalizedForm: "Lundstrom",
			Frequency:      30,
			DocumentCount:  5,
			Tier:           extract.TierHigh,
			RawVariants:    []string{"LUNDSTROM", "Lundstrom"},
			SampleContext:  "Representative Lundstrom moved",
		},
		{
			NormalizedForm: "Jane Doe",
			Frequency:      2,
			DocumentCount:  1,
			Tier:           extract.TierLow,
			RawVariants:    []string{"Jane Doe"},
		},
	}

	var b strings.Builder
	if err := export.WriteEntitiesCSV(&b, entities); err != nil {
		t.Fatalf("WriteEntitiesCSV: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(b.String())).ReadAll()
	if err != nil {
		t.Fatalf("parse written csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}
	if rows[0][0] != "name" || rows[0][3] != "tier" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "Lundstrom" || rows[1][1] != "30" || rows[1][3] != "high" {
		t.Errorf("row 1 = %v", rows[1])
	}
	if rows[1][4] != "LUNDSTROM; Lundstrom" {
		t.Errorf("variants cell = %q, want joined list", rows[1][4])
	}
}

func TestWriteRecordsCSV(t *testing.T) {
	t.Parallel()

	records := []directory.Record{
		{
			ID:            directory.RecordID("Lundstrom"),
			Name:          "Lundstrom",
			LastName:      "Lundstrom",
			PrimaryRole:   extract.RoleLegislator,
			Tier:          extract.TierHigh,
			Frequency:     30,
			DocumentCount: 5,
			Variants:      []string{"Lundstrom"},
			RosterMatch:   "Patricia Lundstrom",
		},
	}

	var b strings.Builder
	if err := export.WriteRecordsCSV(&b, records); err != nil {
		t.Fatalf("WriteRecordsCSV: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(b.String())).ReadAll()
	if err != nil {
		t.Fatalf("parse written csv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want header + 1", len(rows))
	}
	header, row := rows[0], rows[1]
	if header[9] != "roster_match" || header[10] != "verified" {
		t.Errorf("header = %v", header)
	}
	if row[1] != "Lundstrom" || row[3] != "legislator" || row[9] != "Patricia Lundstrom" || row[10] != "false" {
		t.Errorf("row = %v", row)
	}
}

func TestWriteResultJSON(t *testing.T) {
	t.Parallel()

	res := &extract.Result{
		Entities: []extract.Entity{
			{NormalizedForm: "Lundstrom", Frequency: 30, Tier: extract.TierHigh},
		},
		Clusters: []extract.Cluster{
			{
				Canonical:      extract.Entity{NormalizedForm: "Lundstrom", Frequency: 30},
				Members:        []extract.Entity{{NormalizedForm: "Lundstrom", Frequency: 30}},
				TotalFrequency: 30,
			},
		},
		Review: []extract.ReviewPair{
			{A: "Brown", B: "Sarah Brown", Score: 0.62, Reason: "substring-guard"},
		},
		Stats: extract.StageStats{Documents: 3},
	}

	var b strings.Builder
	if err := export.WriteResultJSON(&b, res); err != nil {
		t.Fatalf("WriteResultJSON: %v", err)
	}

	var doc export.ResultDocument
	if err := json.Unmarshal([]byte(b.String()), &doc); err != nil {
		t.Fatalf("parse written json: %v", err)
	}
	if doc.Run.RunID == "" || doc.Run.GeneratedAt.IsZero() {
		t.Errorf("run metadata not stamped: %+v", doc.Run)
	}
	if len(doc.Entities) != 1 || doc.Entities[0].NormalizedForm != "Lundstrom" {
		t.Errorf("entities = %+v", doc.Entities)
	}
	if doc.Stats.Documents != 3 {
		t.Errorf("Stats.Documents = %d, want 3", doc.Stats.Documents)
	}
	if len(doc.Review) != 1 || doc.Review[0].Reason != "substring-guard" {
		t.Errorf("review = %+v", doc.Review)
	}
}

func TestWriteRecordsJSON(t *testing.T) {
	t.Parallel()

	records := []directory.Record{
		{ID: directory.RecordID("Jane Doe"), Name: "Jane Doe", PrimaryRole: extract.RoleLobbyist},
	}

	var b strings.Builder
	if err := export.WriteRecordsJSON(&b, records); err != nil {
		t.Fatalf("WriteRecordsJSON: %v", err)
	}

	var doc export.RecordsDocument
	if err := json.Unmarshal([]byte(b.String()), &doc); err != nil {
		t.Fatalf("parse written json: %v", err)
	}
	if len(doc.Records) != 1 || doc.Records[0].Name != "Jane Doe" {
		t.Errorf("records = %+v", doc.Records)
	}
}
