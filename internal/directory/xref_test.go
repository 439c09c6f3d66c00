package directory_test

import (
	"testing"

	"github.com/quorumlabs/rollcall/internal/directory"
	"github.com/quorumlabs/rollcall/internal/phonetic"
)

func TestCrossReference(t *testing.T) {
	t.Parallel()

	records := []directory.Record{
		{Name: "Lundstrom"},
		{Name: "Ivy Sotto"},
		{Name: "Quixote"},
	}
	roster := []string{"Patricia Lundstrom", "Ivey Soto"}

	directory.CrossReference(records, roster, phonetic.New())

	if records[0].RosterMatch != "Patricia Lundstrom" {
		t.Errorf("Lundstrom matched %q, want Patricia Lundstrom", records[0].RosterMatch)
	}
	if records[1].RosterMatch != "Ivey Soto" {
		t.Errorf("Ivy Sotto matched %q, want Ivey Soto", records[1].RosterMatch)
	}
	if records[1].RosterScore <= 0 {
		t.Errorf("RosterScore = %f, want positive", records[1].RosterScore)
	}
	if records[2].RosterMatch != "" || records[2].RosterScore != 0 {
		t.Errorf("unmatched record modified: %+v", records[2])
	}
}

func TestCrossReference_NilMatcherUsesDefaults(t *testing.T) {
	t.Parallel()

	records := []directory.Record{{Name: "Lundstrom"}}
	directory.CrossReference(records, []string{"Patricia Lundstrom"}, nil)
	if records[0].RosterMatch != "Patricia Lundstrom" {
		t.Errorf("RosterMatch = %q, want Patricia Lundstrom", records[0].RosterMatch)
	}
}
