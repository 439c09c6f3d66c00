// Package phonetic matches extracted speaker names against a roster of known
// names using Double Metaphone phonetic encoding combined with Jaro-Winkler
// string similarity for ranked candidate selection.
//
// OCR and ASR garble spellings in ways plain string similarity misses
// ("Ivey Soto" transcribed as "Ivy Sotto"), while the phonetic shape of the
// name usually survives. The matcher proceeds in two stages:
//
//  1. Phonetic candidate filtering: Double Metaphone codes are computed for
//     each token of the input and of each roster name. A roster name whose
//     codes overlap the input's becomes a phonetic candidate.
//
//  2. Jaro-Winkler ranking: among phonetic candidates, the roster name with
//     the highest Jaro-Winkler similarity wins — provided its score exceeds
//     the phonetic threshold. When no phonetic candidate exists, a secondary
//     pass tests pure Jaro-Winkler similarity against the full roster using
//     a stricter fuzzy threshold.
//
// Multi-token names ("Sedillo Lopez") are supported: the matcher considers
// full-string, concatenated, and best pairwise token scores.
package phonetic

import (
	"strings"

	"github.com/antzucaro/matchr"
)

const (
	defaultPhoneticThreshold = 0.70
	defaultFuzzyThreshold    = 0.85
)

// Option is a functional option for configuring a [Matcher].
type Option func(*Matcher)

// WithPhoneticThreshold sets the minimum Jaro-Winkler score required for a
// phonetically-matched roster name to be accepted. Default: 0.70.
func WithPhoneticThreshold(threshold float64) Option {
	return func(m *Matcher) {
		m.phoneticThreshold = threshold
	}
}

// WithFuzzyThreshold sets the minimum Jaro-Winkler score required when no
// phonetic candidate is found and the matcher falls back to pure string
// similarity. Default: 0.85.
func WithFuzzyThreshold(threshold float64) Option {
	return func(m *Matcher) {
		m.fuzzyThreshold = threshold
	}
}

// Matcher matches a name against a roster of known names. All methods are
// safe for concurrent use — the Matcher is read-only after construction.
type Matcher struct {
	phoneticThreshold float64
	fuzzyThreshold    float64
}

// New returns a new [Matcher] configured with the supplied options.
func New(opts ...Option) *Matcher {
	m := &Matcher{
		phoneticThreshold: defaultPhoneticThreshold,
		fuzzyThreshold:    defaultFuzzyThreshold,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Match finds the roster name most phonetically similar to name.
//
// When matched is false, best equals name unchanged and score is 0. A
// phonetic candidate beats any pure-similarity candidate regardless of
// score, because shared phonetic shape is stronger evidence of identity than
// raw edit distance.
func (m *Matcher) Match(name string, roster []string) (best string, score float64, matched bool) {
	if len(roster) == 0 || strings.TrimSpace(name) == "" {
		return name, 0, false
	}

	nameLower := strings.ToLower(strings.TrimSpace(name))
	nameTokens := strings.Fields(nameLower)
	nameCodes := codesForTokens(nameTokens)

	type candidate struct {
		name     string
		score    float64
		phonetic bool
	}
	var top candidate

	for _, entry := range roster {
		entryLower := strings.ToLower(strings.TrimSpace(entry))
		if entryLower == "" {
			continue
		}
		entryTokens := strings.Fields(entryLower)

		phoneticMatch := codesOverlap(nameCodes, codesForTokens(entryTokens))
		jwScore := bestJWScore(nameTokens, entryTokens, nameLower, entryLower)

		if phoneticMatch {
			if jwScore >= m.phoneticThreshold {
				if !top.phonetic || jwScore > top.score {
					top = candidate{name: entry, score: jwScore, phonetic: true}
				}
			}
		} else if !top.phonetic {
			if jwScore >= m.fuzzyThreshold && jwScore > top.score {
				top = candidate{name: entry, score: jwScore, phonetic: false}
			}
		}
	}

	if top.name != "" {
		return top.name, top.score, true
	}
	return name, 0, false
}

// codesForTokens returns the union of all Double Metaphone codes for the
// given tokens. Empty codes (produced when the word is too short or contains
// no consonants) are excluded.
func codesForTokens(tokens []string) map[string]struct{} {
	codes := make(map[string]struct{}, len(tokens)*2)
	for _, t := range tokens {
		p, s := matchr.DoubleMetaphone(t)
		if p != "" {
			codes[p] = struct{}{}
		}
		if s != "" {
			codes[s] = struct{}{}
		}
	}
	return codes
}

// codesOverlap returns true if the two code sets share at least one code.
func codesOverlap(a, b map[string]struct{}) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	for code := range a {
		if _, ok := b[code]; ok {
			return true
		}
	}
	return false
}

// bestJWScore computes the highest Jaro-Winkler similarity between the input
// and a roster name using three strategies: full strings, space-stripped
// strings, and the best pairwise token score.
func bestJWScore(inputTokens, entryTokens []string, inputFull, entryFull string) float64 {
	score := matchr.JaroWinkler(inputFull, entryFull, false)

	if len(inputTokens) > 1 || len(entryTokens) > 1 {
		concat1 := strings.Join(inputTokens, "")
		concat2 := strings.Join(entryTokens, "")
		if s := matchr.JaroWinkler(concat1, concat2, false); s > score {
			score = s
		}
	}

	for _, it := range inputTokens {
		for _, et := range entryTokens {
			if s := matchr.JaroWinkler(it, et, false); s > score {
				score = s
			}
		}
	}

	return score
}
