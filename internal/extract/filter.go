package extract

import (
	"strings"
)

// FilterStats records candidate counts through the two filter layers for the
// pipeline's observability hook. Downstream stages never depend on it.
type FilterStats struct {
	// In is the number of candidates presented to the filter.
	In int

	// Stoplisted is the number rejected by the stoplist layer.
	Stoplisted int

	// Invalid is the number rejected by structural validation.
	Invalid int

	// Out is the number of surviving candidates.
	Out int
}

// add folds other into s.
func (s *FilterStats) add(other FilterStats) {
	s.In += other.In
	s.Stoplisted += other.Stoplisted
	s.Invalid += other.Invalid
	s.Out += other.Out
}

// FilterOption is a functional option for configuring a [Filter].
type FilterOption func(*Filter)

// WithStopPhrases sets the stoplist: common English words, domain jargon
// (procedural terms, weekday and month names), and transcript artifacts.
// Matching is case-insensitive and, by default, against the whole candidate
// phrase.
func WithStopPhrases(words []string) FilterOption {
	return func(f *Filter) {
		for _, w := range words {
			f.stoplist[normalizePhrase(w)] = struct{}{}
		}
	}
}

// WithRejectAnyToken switches the stoplist layer to reject a multi-word
// candidate when any constituent token is stoplisted, instead of only when
// the whole phrase matches. Default: whole-phrase only.
func WithRejectAnyToken(enabled bool) FilterOption {
	return func(f *Filter) {
		f.rejectAnyToken = enabled
	}
}

// WithLengthBounds sets the minimum and maximum candidate length in bytes.
// Default: 2 and 50.
func WithLengthBounds(min, max int) FilterOption {
	return func(f *Filter) {
		f.minLen, f.maxLen = min, max
	}
}

// WithBoundaryStopWords sets the words a candidate must not begin or end
// with ("and", "the", "members"). These also feed the name-shaped token
// heuristic.
func WithBoundaryStopWords(start, end []string) FilterOption {
	return func(f *Filter) {
		for _, w := range start {
			f.startStop[strings.ToLower(w)] = struct{}{}
		}
		for _, w := range end {
			f.endStop[strings.ToLower(w)] = struct{}{}
		}
	}
}

// WithEmbeddedTitleWords sets title tokens that must not appear inside a
// candidate. A title may legitimately precede a name but never be part of one
// ("Garcia Representative Brown" is two mangled mentions, not a name).
func WithEmbeddedTitleWords(words []string) FilterOption {
	return func(f *Filter) {
		for _, w := range words {
			f.titleWords[strings.ToLower(w)] = struct{}{}
		}
	}
}

// Filter removes candidates that match stoplists or fail structural validity
// checks. The stoplist layer runs first because it is cheap and highly
// selective; validation catches structurally impossible names that slip past
// it. Rejection is silent — filtering is expected to remove well over 90% of
// generated candidates.
//
// A Filter is read-only after construction and safe for concurrent use.
type Filter struct {
	stoplist       map[string]struct{}
	rejectAnyToken bool
	minLen, maxLen int
	startStop      map[string]struct{}
	endStop        map[string]struct{}
	titleWords     map[string]struct{}
}

// NewFilter constructs a [Filter] with the supplied options.
func NewFilter(opts ...FilterOption) *Filter {
	f := &Filter{
		stoplist:   make(map[string]struct{}),
		minLen:     2,
		maxLen:     50,
		startStop:  make(map[string]struct{}),
		endStop:    make(map[string]struct{}),
		titleWords: make(map[string]struct{}),
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Apply returns the candidates that survive both filter layers, in input
// order, together with per-layer counts.
func (f *Filter) Apply(cands []Candidate) ([]Candidate, FilterStats) {
	stats := FilterStats{In: len(cands)}
	kept := make([]Candidate, 0, len(cands))
	for _, c := range cands {
		if f.stoplisted(c.Text) {
			stats.Stoplisted++
			continue
		}
		if !f.structurallyValid(c.Text) {
			stats.Invalid++
			continue
		}
		kept = append(kept, c)
	}
	stats.Out = len(kept)
	return kept, stats
}

// stoplisted reports whether the stoplist layer rejects text.
func (f *Filter) stoplisted(text string) bool {
	norm := normalizePhrase(text)
	if _, hit := f.stoplist[norm]; hit {
		return true
	}
	if !f.rejectAnyToken {
		return false
	}
	for _, tok := range strings.Fields(norm) {
		if _, hit := f.stoplist[tok]; hit {
			return true
		}
	}
	return false
}

// structurallyValid applies the validation layer.
func (f *Filter) structurallyValid(text string) bool {
	if len(text) < f.minLen || len(text) > f.maxLen {
		return false
	}
	if !containsVowel(text) {
		return false
	}
	for _, r := range text {
		if r < 0x20 {
			return false
		}
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return false
	}

	allSingle := true
	for _, w := range words {
		if len(w) > 1 {
			allSingle = false
			break
		}
	}
	if allSingle {
		return false
	}

	if _, bad := f.startStop[strings.ToLower(words[0])]; bad {
		return false
	}
	if _, bad := f.endStop[strings.ToLower(words[len(words)-1])]; bad {
		return false
	}

	for _, w := range words {
		if _, title := f.titleWords[strings.ToLower(w)]; title {
			return false
		}
	}

	// At least one token must be name-shaped.
	for _, w := range words {
		if f.nameShaped(w) {
			return true
		}
	}
	return false
}

// nameShaped reports whether a token could plausibly be a name: length at
// least two after trimming leading/trailing apostrophes and hyphens, contains
// a vowel, and is not itself a boundary stop word.
func (f *Filter) nameShaped(tok string) bool {
	trimmed := strings.Trim(tok, "'-")
	if len(trimmed) < 2 || !containsVowel(trimmed) {
		return false
	}
	lower := strings.ToLower(trimmed)
	if _, stop := f.startStop[lower]; stop {
		return false
	}
	if _, stop := f.endStop[lower]; stop {
		return false
	}
	return true
}

// containsVowel reports whether s contains at least one ASCII vowel in
// either case. Runs of consonants with no vowel are almost always OCR
// garbage ("XZQRT").
func containsVowel(s string) bool {
	return strings.ContainsAny(s, "aeiouAEIOU")
}

// normalizePhrase lowercases and collapses internal whitespace for stoplist
// comparison.
func normalizePhrase(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
