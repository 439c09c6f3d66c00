package extract_test

import (
	"testing"

	"github.com/quorumlabs/rollcall/internal/extract"
)

func asCandidates(texts ...string) []extract.Candidate {
	out := make([]extract.Candidate, len(texts))
	for i, t := range texts {
		out[i] = extract.Candidate{Text: t, DocumentID: "d", Position: i}
	}
	return out
}

func TestFilter_StopPhrases(t *testing.T) {
	t.Parallel()

	f := extract.NewFilter(extract.WithStopPhrases([]string{
		"thank you", "madam chair", "new mexico", "tuesday",
	}))

	kept, stats := f.Apply(asCandidates("Thank You", "Patricia Lundstrom", "New  Mexico", "Tuesday"))

	got := candidateTexts(kept)
	if len(got) != 1 || got[0] != "Patricia Lundstrom" {
		t.Errorf("kept = %v, want [Patricia Lundstrom]", got)
	}
	if stats.Stoplisted != 3 {
		t.Errorf("Stoplisted = %d, want 3", stats.Stoplisted)
	}
	if stats.In != 4 || stats.Out != 1 {
		t.Errorf("In/Out = %d/%d, want 4/1", stats.In, stats.Out)
	}
}

func TestFilter_WholePhraseVsAnyToken(t *testing.T) {
	t.Parallel()

	// Whole-phrase matching keeps "Rio Grande" even though "grande" alone is
	// stoplisted; any-token matching rejects it.
	whole := extract.NewFilter(extract.WithStopPhrases([]string{"grande"}))
	kept, _ := whole.Apply(asCandidates("Rio Grande"))
	if len(kept) != 1 {
		t.Errorf("whole-phrase mode: kept = %v, want [Rio Grande]", candidateTexts(kept))
	}

	any := extract.NewFilter(
		extract.WithStopPhrases([]string{"grande"}),
		extract.WithRejectAnyToken(true),
	)
	kept, stats := any.Apply(asCandidates("Rio Grande"))
	if len(kept) != 0 {
		t.Errorf("any-token mode: kept = %v, want none", candidateTexts(kept))
	}
	if stats.Stoplisted != 1 {
		t.Errorf("Stoplisted = %d, want 1", stats.Stoplisted)
	}
}

func TestFilter_StructuralValidation(t *testing.T) {
	t.Parallel()

	f := extract.NewFilter(
		extract.WithLengthBounds(2, 30),
		extract.WithBoundaryStopWords([]string{"and", "the"}, []string{"and", "members"}),
		extract.WithEmbeddedTitleWords([]string{"representative", "senator"}),
	)

	tests := []struct {
		name string
		text string
		keep bool
	}{
		{"plain surname", "Brown", true},
		{"full name", "Patricia Lundstrom", true},
		{"no vowel", "XZQRT", false},
		{"too short", "B", false},
		{"too long", "A Name That Goes On Far Too Long To Be Real", false},
		{"leading stop word", "And Brown", false},
		{"trailing stop word", "Brown And Members", false},
		{"embedded title", "Garcia Representative Brown", false},
		{"all single letters", "A B C", false},
		{"control character", "Bro\x01wn", false},
		{"hyphenated", "Garcia-Smith", true},
		{"apostrophe", "O'Brien", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			kept, stats := f.Apply(asCandidates(tt.text))
			if got := len(kept) == 1; got != tt.keep {
				t.Errorf("keep(%q) = %v, want %v", tt.text, got, tt.keep)
			}
			if !tt.keep && stats.Invalid != 1 {
				t.Errorf("Invalid = %d, want 1", stats.Invalid)
			}
		})
	}
}

func TestFilter_StatsConservation(t *testing.T) {
	t.Parallel()

	f := extract.NewFilter(extract.WithStopPhrases([]string{"thank you"}))
	_, stats := f.Apply(asCandidates("Thank You", "XZQRT", "Brown", "Lundstrom"))

	if stats.In != stats.Stoplisted+stats.Invalid+stats.Out {
		t.Errorf("stats do not balance: %+v", stats)
	}
}

func TestFilter_EmptyInput(t *testing.T) {
	t.Parallel()

	f := extract.NewFilter()
	kept, stats := f.Apply(nil)
	if len(kept) != 0 || stats.In != 0 || stats.Out != 0 {
		t.Errorf("kept = %v, stats = %+v, want empty", kept, stats)
	}
}

func TestFilter_InputOrderPreserved(t *testing.T) {
	t.Parallel()

	f := extract.NewFilter()
	kept, _ := f.Apply(asCandidates("Zed Alpha", "Brown", "Alice Young"))
	got := candidateTexts(kept)
	want := []string{"Zed Alpha", "Brown", "Alice Young"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("kept[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
