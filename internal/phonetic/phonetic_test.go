package phonetic_test

import (
	"testing"

	"github.com/quorumlabs/rollcall/internal/phonetic"
)

func TestMatch_ExactName(t *testing.T) {
	t.Parallel()

	m := phonetic.New()
	roster := []string{"Patricia Lundstrom", "Joseph Cervantes", "Antoinette Sedillo Lopez"}

	best, score, matched := m.Match("Patricia Lundstrom", roster)
	if !matched {
		t.Fatal("exact roster name did not match")
	}
	if best != "Patricia Lundstrom" {
		t.Errorf("best = %q, want Patricia Lundstrom", best)
	}
	if score < 0.99 {
		t.Errorf("score = %f, want ~1.0", score)
	}
}

func TestMatch_OCRVariant(t *testing.T) {
	t.Parallel()

	// Misspellings that keep the phonetic shape still land on the right
	// roster entry.
	m := phonetic.New()
	roster := []string{"Ivey Soto", "Patricia Lundstrom", "Joseph Cervantes"}

	best, score, matched := m.Match("Ivy Sotto", roster)
	if !matched {
		t.Fatal("phonetic variant did not match")
	}
	if best != "Ivey Soto" {
		t.Errorf("best = %q, want Ivey Soto", best)
	}
	if score <= 0 {
		t.Errorf("score = %f, want positive", score)
	}
}

func TestMatch_PartialName(t *testing.T) {
	t.Parallel()

	// A bare surname matches the full roster entry via the pairwise token
	// strategy.
	m := phonetic.New()
	roster := []string{"Antoinette Sedillo Lopez", "Patricia Lundstrom"}

	best, _, matched := m.Match("Sedillo Lopez", roster)
	if !matched {
		t.Fatal("surname-only name did not match")
	}
	if best != "Antoinette Sedillo Lopez" {
		t.Errorf("best = %q, want Antoinette Sedillo Lopez", best)
	}
}

func TestMatch_NoPlausibleEntry(t *testing.T) {
	t.Parallel()

	m := phonetic.New()
	roster := []string{"Patricia Lundstrom", "Joseph Cervantes"}

	best, score, matched := m.Match("Quixote", roster)
	if matched {
		t.Fatalf("Quixote matched %q (score %f), want no match", best, score)
	}
	if best != "Quixote" || score != 0 {
		t.Errorf("unmatched result = (%q, %f), want the input name and 0", best, score)
	}
}

func TestMatch_EmptyInputs(t *testing.T) {
	t.Parallel()

	m := phonetic.New()

	if _, _, matched := m.Match("Lundstrom", nil); matched {
		t.Error("empty roster produced a match")
	}
	if _, _, matched := m.Match("   ", []string{"Lundstrom"}); matched {
		t.Error("blank name produced a match")
	}
}

func TestMatch_ThresholdRaisedBlocksWeakMatches(t *testing.T) {
	t.Parallel()

	strict := phonetic.New(
		phonetic.WithPhoneticThreshold(0.999),
		phonetic.WithFuzzyThreshold(0.999),
	)
	if best, score, matched := strict.Match("Ivy Sotto", []string{"Ivey Soto"}); matched {
		t.Errorf("strict matcher accepted %q at %f, want no match", best, score)
	}
}
