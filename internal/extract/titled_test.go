package extract_test

import (
	"testing"

	"github.com/quorumlabs/rollcall/internal/extract"
)

var testTitles = []extract.TitleEntry{
	{Token: "Representative", Role: extract.RoleLegislator},
	{Token: "Senator", Role: extract.RoleLegislator},
	{Token: "Secretary", Role: extract.RoleOfficial},
	{Token: "Dr", Role: extract.RoleExpert},
}

func TestTitledSource_CapturesName(t *testing.T) {
	t.Parallel()

	src := extract.NewTitledSource(testTitles)
	cands := src.Extract("d", "Representative Brown moved the amendment.")

	if len(cands) != 1 {
		t.Fatalf("candidates = %v, want exactly one", candidateTexts(cands))
	}
	if cands[0].Text != "Brown" {
		t.Errorf("Text = %q, want %q", cands[0].Text, "Brown")
	}
	if cands[0].Role != extract.RoleLegislator {
		t.Errorf("Role = %q, want %q", cands[0].Role, extract.RoleLegislator)
	}
	if cands[0].Source != extract.SourceTitled {
		t.Errorf("Source = %q, want %q", cands[0].Source, extract.SourceTitled)
	}
}

func TestTitledSource_GarbledCasing(t *testing.T) {
	t.Parallel()

	src := extract.NewTitledSource(testTitles)

	tests := []struct {
		name string
		text string
		want string
	}{
		{"lowercase name", "Representative brown objected", "brown"},
		{"uppercase title", "REPRESENTATIVE Brown objected", "Brown"},
		{"all caps name", "Senator MAESTAS asked", "MAESTAS"},
		{"trailing period", "Dr. Chen testified next", "Chen"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cands := src.Extract("d", tt.text)
			if len(cands) != 1 {
				t.Fatalf("candidates = %v, want exactly one", candidateTexts(cands))
			}
			if cands[0].Text != tt.want {
				t.Errorf("Text = %q, want %q", cands[0].Text, tt.want)
			}
		})
	}
}

func TestTitledSource_LowercaseContinuationNotSwallowed(t *testing.T) {
	t.Parallel()

	// "asked" must not become part of the name; only the first token after
	// the title tolerates bad casing.
	src := extract.NewTitledSource(testTitles)
	cands := src.Extract("d", "Senator Brown asked about the fiscal impact.")

	if len(cands) != 1 {
		t.Fatalf("candidates = %v, want exactly one", candidateTexts(cands))
	}
	if cands[0].Text != "Brown" {
		t.Errorf("Text = %q, want %q", cands[0].Text, "Brown")
	}
}

func TestTitledSource_MultiTokenName(t *testing.T) {
	t.Parallel()

	src := extract.NewTitledSource(testTitles)
	cands := src.Extract("d", "Representative Sedillo Lopez raised a point of order.")

	if len(cands) != 1 {
		t.Fatalf("candidates = %v, want exactly one", candidateTexts(cands))
	}
	if cands[0].Text != "Sedillo Lopez" {
		t.Errorf("Text = %q, want %q", cands[0].Text, "Sedillo Lopez")
	}
}

func TestTitledSource_MaxNameTokens(t *testing.T) {
	t.Parallel()

	src := extract.NewTitledSource(testTitles, extract.WithMaxNameTokens(2))
	cands := src.Extract("d", "Senator Maria Elena Gonzalez Vigil spoke.")

	if len(cands) != 1 {
		t.Fatalf("candidates = %v, want exactly one", candidateTexts(cands))
	}
	if cands[0].Text != "Maria Elena" {
		t.Errorf("Text = %q, want %q", cands[0].Text, "Maria Elena")
	}
}

func TestTitledSource_MultipleTitlesPositionalOrder(t *testing.T) {
	t.Parallel()

	src := extract.NewTitledSource(testTitles)
	text := "Secretary Ortiz answered, then Representative Brown and Senator Cervantes followed."
	cands := src.Extract("d", text)

	got := candidateTexts(cands)
	want := []string{"Ortiz", "Brown", "Cervantes"}
	if len(got) != len(want) {
		t.Fatalf("candidates = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("candidate[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if cands[0].Role != extract.RoleOfficial {
		t.Errorf("Ortiz role = %q, want %q", cands[0].Role, extract.RoleOfficial)
	}
}

func TestTitledSource_NoTitlesNoCandidates(t *testing.T) {
	t.Parallel()

	src := extract.NewTitledSource(testTitles)
	if cands := src.Extract("d", "The committee adjourned at noon."); len(cands) != 0 {
		t.Errorf("candidates = %v, want none", candidateTexts(cands))
	}
}
