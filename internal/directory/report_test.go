package directory_test

import (
	"strings"
	"testing"

	"github.com/quorumlabs/rollcall/internal/directory"
	"github.com/quorumlabs/rollcall/internal/extract"
)

func TestWriteReport_Sections(t *testing.T) {
	t.Parallel()

	records := []directory.Record{
		{
			Name:          "Lundstrom",
			PrimaryRole:   extract.RoleLegislator,
			Tier:          extract.TierHigh,
			Frequency:     30,
			DocumentCount: 5,
			Variants:      []string{"LUNDSTROM", "Lundstrom"},
		},
		{
			Name:         "Jane Doe",
			PrimaryRole:  extract.RoleLobbyist,
			Tier:         extract.TierLow,
			Frequency:    2,
			Variants:     []string{"Jane Doe"},
			Affiliations: []string{"Cattle Growers Association"},
		},
	}
	review := []extract.ReviewPair{
		{A: "Brown", B: "Sarah Brown", Score: 0.62, Reason: "substring-guard"},
	}

	var b strings.Builder
	if err := directory.WriteReport(&b, records, review); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	out := b.String()

	for _, want := range []string{
		"# Speaker Directory Report",
		"Total entries: 2",
		"## Confidence",
		"- high: 1",
		"## Roles",
		"- legislator: 1",
		"## Directory",
		"| Lundstrom | legislator | high | 30 | 5 |",
		"Cattle Growers Association",
		"## Verification Checklist",
		"- [ ] Lundstrom (30 mentions)",
		"## Surface Forms",
		"LUNDSTROM, Lundstrom",
		"## Needs Review",
		"| Brown | Sarah Brown | 0.620 | substring-guard |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}

	// No roster was supplied, so no cross-reference section.
	if strings.Contains(out, "## Roster Cross-Reference") {
		t.Error("report has a roster section without roster matches")
	}
}

func TestWriteReport_RosterSection(t *testing.T) {
	t.Parallel()

	records := []directory.Record{
		{Name: "Lundstrom", RosterMatch: "Patricia Lundstrom", RosterScore: 1},
		{Name: "Quixote"},
	}

	var b strings.Builder
	if err := directory.WriteReport(&b, records, nil); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	out := b.String()

	if !strings.Contains(out, "## Roster Cross-Reference") {
		t.Fatal("roster section missing")
	}
	if !strings.Contains(out, "| Lundstrom | Patricia Lundstrom | 1.000 |") {
		t.Error("matched row missing")
	}
	if !strings.Contains(out, "Unmatched:") || !strings.Contains(out, "- Quixote") {
		t.Error("unmatched list missing Quixote")
	}
}

func TestWriteReport_Deterministic(t *testing.T) {
	t.Parallel()

	records := []directory.Record{
		{Name: "Lundstrom", Tier: extract.TierHigh, Frequency: 30},
		{Name: "Ortiz", Tier: extract.TierLow, Frequency: 2},
	}

	var a, b strings.Builder
	if err := directory.WriteReport(&a, records, nil); err != nil {
		t.Fatal(err)
	}
	if err := directory.WriteReport(&b, records, nil); err != nil {
		t.Fatal(err)
	}
	if a.String() != b.String() {
		t.Error("identical inputs produced different reports")
	}
}
