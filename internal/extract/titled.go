package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// TitleEntry pairs an honorific/title token with the speaker role it implies.
// The title is matched case-insensitively so that garbled transcripts
// ("REPRESENTATIVE brown") are still captured.
type TitleEntry struct {
	Token string
	Role  Role
}

// TitledOption is a functional option for configuring a [TitledSource].
type TitledOption func(*TitledSource)

// WithMaxNameTokens sets the maximum number of word tokens captured after a
// title. Default: 3.
func WithMaxNameTokens(n int) TitledOption {
	return func(s *TitledSource) {
		s.maxNameTokens = n
	}
}

// WithTitledContextWidth sets the context window width in bytes. Default: 50.
func WithTitledContextWidth(w int) TitledOption {
	return func(s *TitledSource) {
		s.contextWidth = w
	}
}

// TitledSource is the title-anchored candidate strategy: a recognised
// honorific ("Representative", "Senator", "Dr") followed by one to three name
// tokens.
//
// The title is matched case-insensitively, and so is the first name token —
// "representative brown" is captured on badly-cased source text. Continuation
// tokens must carry a capital initial: a lowercase word after the first name
// token is almost always a verb or function word ("Brown asked"), and
// accepting it would swallow the real mention when the filter later rejects
// the whole phrase.
type TitledSource struct {
	titles        []TitleEntry
	maxNameTokens int
	contextWidth  int
	patterns      []*regexp.Regexp // parallel to titles
}

var _ Source = (*TitledSource)(nil)

// NewTitledSource constructs a [TitledSource] for the given title list.
func NewTitledSource(titles []TitleEntry, opts ...TitledOption) *TitledSource {
	s := &TitledSource{
		titles:        titles,
		maxNameTokens: 3,
		contextWidth:  defaultContextWidth,
	}
	for _, o := range opts {
		o(s)
	}
	s.patterns = make([]*regexp.Regexp, len(s.titles))
	for i, t := range s.titles {
		s.patterns[i] = regexp.MustCompile(titledPattern(t.Token, s.maxNameTokens))
	}
	return s
}

// titledPattern builds the regexp for one title. The title accepts an
// optional trailing period ("Rep. Brown"). The captured name is one
// case-insensitive token followed by up to max-1 capital-initial tokens.
func titledPattern(title string, maxTokens int) string {
	cont := maxTokens - 1
	if cont < 0 {
		cont = 0
	}
	return `\b(?i:` + regexp.QuoteMeta(title) + `)\.?[ \t]+` +
		`([A-Za-z][A-Za-z'-]+(?:[ \t]+[A-Z][A-Za-z'-]*){0,` + strconv.Itoa(cont) + `})`
}

// Kind implements [Source].
func (s *TitledSource) Kind() SourceKind { return SourceTitled }

// Extract implements [Source]. Matches from all titles are combined and
// returned in positional order; when two titles match at the same offset the
// earlier entry in the configured title list wins the ordering.
func (s *TitledSource) Extract(docID, text string) []Candidate {
	type hit struct {
		cand  Candidate
		title int
	}
	var hits []hit

	for i, re := range s.patterns {
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			start, end := m[2], m[3]
			span := strings.Join(strings.Fields(text[start:end]), " ")
			if span == "" {
				continue
			}
			hits = append(hits, hit{
				cand: Candidate{
					Text:       span,
					DocumentID: docID,
					Position:   start,
					Context:    contextWindow(text, start, end, s.contextWidth),
					Source:     SourceTitled,
					Role:       s.titles[i].Role,
				},
				title: i,
			})
		}
	}
	if len(hits) == 0 {
		return nil
	}

	sort.Slice(hits, func(a, b int) bool {
		if hits[a].cand.Position != hits[b].cand.Position {
			return hits[a].cand.Position < hits[b].cand.Position
		}
		return hits[a].title < hits[b].title
	})

	cands := make([]Candidate, len(hits))
	for i, h := range hits {
		cands[i] = h.cand
	}
	return cands
}
