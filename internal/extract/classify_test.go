package extract_test

import (
	"testing"

	"github.com/quorumlabs/rollcall/internal/extract"
)

func TestClassifier_Thresholds(t *testing.T) {
	t.Parallel()

	c := extract.NewClassifier(3, 10)

	tests := []struct {
		frequency int
		want      extract.Tier
	}{
		{1, extract.TierLow},
		{2, extract.TierLow},
		{3, extract.TierMedium},
		{9, extract.TierMedium},
		{10, extract.TierHigh},
		{500, extract.TierHigh},
	}
	for _, tt := range tests {
		e := extract.Entity{NormalizedForm: "X", Frequency: tt.frequency, DocumentCount: 2}
		if got := c.Tier(e); got != tt.want {
			t.Errorf("Tier(freq=%d) = %q, want %q", tt.frequency, got, tt.want)
		}
	}
}

func TestClassifier_TierMonotonicInFrequency(t *testing.T) {
	t.Parallel()

	rank := map[extract.Tier]int{extract.TierLow: 0, extract.TierMedium: 1, extract.TierHigh: 2}
	c := extract.NewClassifier(3, 10)

	prev := extract.TierLow
	for freq := 1; freq <= 50; freq++ {
		got := c.Tier(extract.Entity{Frequency: freq, DocumentCount: 2})
		if rank[got] < rank[prev] {
			t.Fatalf("tier decreased at freq %d: %q after %q", freq, got, prev)
		}
		prev = got
	}
}

func TestClassifier_DocumentCountCap(t *testing.T) {
	t.Parallel()

	c := extract.NewClassifier(3, 10, extract.WithDocumentCountCap(true))

	single := extract.Entity{Frequency: 50, DocumentCount: 1}
	if got := c.Tier(single); got != extract.TierMedium {
		t.Errorf("Tier(single-document) = %q, want %q", got, extract.TierMedium)
	}
	multi := extract.Entity{Frequency: 50, DocumentCount: 3}
	if got := c.Tier(multi); got != extract.TierHigh {
		t.Errorf("Tier(multi-document) = %q, want %q", got, extract.TierHigh)
	}
}

func TestClassifier_ApplyPartitionsBelowMinimum(t *testing.T) {
	t.Parallel()

	c := extract.NewClassifier(3, 10, extract.WithMinimumToKeep(2))

	entities := []extract.Entity{
		{NormalizedForm: "Lundstrom", Frequency: 12},
		{NormalizedForm: "Brown", Frequency: 2},
		{NormalizedForm: "Noise", Frequency: 1},
	}
	kept, dropped := c.Apply(entities)

	if len(kept) != 2 {
		t.Fatalf("kept = %d entities, want 2", len(kept))
	}
	if kept[0].Tier != extract.TierHigh {
		t.Errorf("kept[0].Tier = %q, want %q", kept[0].Tier, extract.TierHigh)
	}
	if kept[1].Tier != extract.TierLow {
		t.Errorf("kept[1].Tier = %q, want %q", kept[1].Tier, extract.TierLow)
	}
	if len(dropped) != 1 || dropped[0].NormalizedForm != "Noise" {
		t.Errorf("dropped = %+v, want only Noise", dropped)
	}
	if len(kept)+len(dropped) != len(entities) {
		t.Errorf("entities lost: kept %d + dropped %d != %d", len(kept), len(dropped), len(entities))
	}
}
