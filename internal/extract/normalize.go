package extract

import (
	"strings"
	"unicode"
)

// NormalizerOption is a functional option for configuring a [Normalizer].
type NormalizerOption func(*Normalizer)

// WithStripTitles sets the honorific tokens stripped from the front of a raw
// candidate ("Representative Brown" → "Brown"). Tokens are matched
// case-insensitively, with an optional trailing period.
func WithStripTitles(tokens []string) NormalizerOption {
	return func(n *Normalizer) {
		for _, t := range tokens {
			n.titles[strings.ToLower(t)] = struct{}{}
		}
	}
}

// WithSubstitutions sets the OCR-correction table. Keys are matched as whole
// tokens, case-insensitively — never as substrings, so a correction for one
// garbled surname cannot corrupt an unrelated name that happens to contain
// it.
func WithSubstitutions(table map[string]string) NormalizerOption {
	return func(n *Normalizer) {
		for k, v := range table {
			n.subs[strings.ToLower(k)] = v
		}
	}
}

// Normalizer maps a raw candidate string to its canonical form: leading
// titles stripped, whitespace collapsed, known OCR garblings corrected, and
// the result title-cased for display.
//
// Normalize is a pure function — the same raw string always produces the
// same output — which is what makes repeated runs over a corpus
// deterministic. A Normalizer is read-only after construction and safe for
// concurrent use.
type Normalizer struct {
	titles map[string]struct{}
	subs   map[string]string
}

// NewNormalizer constructs a [Normalizer] with the supplied options.
func NewNormalizer(opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{
		titles: make(map[string]struct{}),
		subs:   make(map[string]string),
	}
	for _, o := range opts {
		o(n)
	}
	return n
}

// Normalize returns the canonical form of raw. The empty string is returned
// only for inputs with no tokens left after title stripping.
func (n *Normalizer) Normalize(raw string) string {
	tokens := strings.Fields(raw)

	// Strip leading honorifics, with or without a trailing period.
	for len(tokens) > 0 {
		lead := strings.ToLower(strings.TrimSuffix(tokens[0], "."))
		if _, isTitle := n.titles[lead]; !isTitle {
			break
		}
		tokens = tokens[1:]
	}

	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if repl, ok := n.subs[strings.ToLower(tok)]; ok {
			tok = repl
		}
		out = append(out, titleCaseToken(tok))
	}
	return strings.Join(out, " ")
}

// titleCaseToken uppercases the first letter of each hyphen- or
// apostrophe-separated segment and lowercases the rest: "o'brien" →
// "O'Brien", "GARCIA-SMITH" → "Garcia-Smith".
func titleCaseToken(tok string) string {
	var b strings.Builder
	b.Grow(len(tok))
	capNext := true
	for _, r := range tok {
		switch {
		case r == '-' || r == '\'':
			b.WriteRune(r)
			capNext = true
		case capNext:
			b.WriteRune(unicode.ToUpper(r))
			capNext = false
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
