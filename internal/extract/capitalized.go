package extract

import (
	"regexp"
	"strings"
)

// defaultContextWidth is the number of bytes of surrounding text captured on
// each side of a candidate span.
const defaultContextWidth = 50

// CapitalizedOption is a functional option for configuring a
// [CapitalizedSource].
type CapitalizedOption func(*CapitalizedSource)

// WithConnectors sets the lowercase connector words that may appear embedded
// in a capitalized run without breaking it (e.g. "de", "la" in
// "Sedillo de la Cruz"). Default: none.
func WithConnectors(words []string) CapitalizedOption {
	return func(s *CapitalizedSource) {
		s.connectors = words
	}
}

// WithCapitalizedContextWidth sets the context window width in bytes.
// Default: 50.
func WithCapitalizedContextWidth(w int) CapitalizedOption {
	return func(s *CapitalizedSource) {
		s.contextWidth = w
	}
}

// CapitalizedSource is the broad-capitalization candidate strategy: it
// matches maximal runs of Title-Case or ALL-CAPS tokens, optionally joined by
// configured lowercase connector words.
//
// This is the high-recall net — it will surface hundreds of spurious matches
// per document ("New Mexico", "Thank You", weekday names). The [Filter] and
// frequency stages are responsible for discarding them.
type CapitalizedSource struct {
	connectors   []string
	contextWidth int
	re           *regexp.Regexp
}

var _ Source = (*CapitalizedSource)(nil)

// NewCapitalizedSource constructs a [CapitalizedSource] with the supplied
// options.
func NewCapitalizedSource(opts ...CapitalizedOption) *CapitalizedSource {
	s := &CapitalizedSource{contextWidth: defaultContextWidth}
	for _, o := range opts {
		o(s)
	}
	s.re = regexp.MustCompile(capitalizedPattern(s.connectors))
	return s
}

// capitalizedPattern builds the scan regexp. A token is either Title-Case
// ("Brown") or ALL-CAPS ("MAESTAS"); runs may continue across whitespace,
// with any number of connector words between tokens.
func capitalizedPattern(connectors []string) string {
	const token = `(?:[A-Z][a-z]+|[A-Z]{2,})`
	link := `\s+`
	if len(connectors) > 0 {
		quoted := make([]string, len(connectors))
		for i, c := range connectors {
			quoted[i] = regexp.QuoteMeta(strings.ToLower(c))
		}
		link = `\s+(?:(?:` + strings.Join(quoted, "|") + `)\s+)*`
	}
	return `\b` + token + `(?:` + link + token + `)*\b`
}

// Kind implements [Source].
func (s *CapitalizedSource) Kind() SourceKind { return SourceCapitalized }

// Extract implements [Source]. Candidates are returned in positional order
// with whitespace inside the span collapsed to single spaces.
func (s *CapitalizedSource) Extract(docID, text string) []Candidate {
	matches := s.re.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	cands := make([]Candidate, 0, len(matches))
	for _, m := range matches {
		span := strings.Join(strings.Fields(text[m[0]:m[1]]), " ")
		if span == "" {
			continue
		}
		cands = append(cands, Candidate{
			Text:       span,
			DocumentID: docID,
			Position:   m[0],
			Context:    contextWindow(text, m[0], m[1], s.contextWidth),
			Source:     SourceCapitalized,
			Role:       RoleUnknown,
		})
	}
	return cands
}
