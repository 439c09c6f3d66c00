package extract

import (
	"regexp"
	"sort"
	"strings"
)

// introPattern pairs a compiled introduction regexp with the role it implies.
// Group 1 captures the name; group 2, when present, captures an affiliation.
type introPattern struct {
	re          *regexp.Regexp
	role        Role
	affiliation bool
}

// name matches one to three Title-Case tokens. Introduction patterns demand
// proper casing — unlike the titled strategy there is no anchor token, so a
// case-insensitive match here would flood the pipeline with sentence starts.
const introName = `([A-Z][a-z]+(?:\s+[A-Z][a-z]+){0,2})`

// organization matches a capitalized phrase up to the next clause boundary.
const introOrg = `([A-Z][A-Za-z\s&]+?)(?:[.,;\n]|$)`

// introPatterns covers self-introductions, testimony openings, and
// organizational-representative phrasings.
var introPatterns = []introPattern{
	{re: regexp.MustCompile(`[Mm]y name is\s+` + introName), role: RolePublic},
	{re: regexp.MustCompile(`\bI'?m\s+` + introName), role: RolePublic},
	{re: regexp.MustCompile(`\bI am\s+` + introName), role: RolePublic},
	{re: regexp.MustCompile(`[Tt]his is\s+` + introName), role: RolePublic},
	{re: regexp.MustCompile(`[Gg]ood (?:morning|afternoon|evening)[,.]?\s+(?:I'?m|my name is)\s+` + introName), role: RolePublic},
	{re: regexp.MustCompile(introName + `\s+(?:testifying|here to testify|here today)\b`), role: RolePublic},
	{re: regexp.MustCompile(introName + `\s+from\s+(?:the\s+)?` + introOrg), role: RoleLobbyist, affiliation: true},
	{re: regexp.MustCompile(introName + `\s+representing\s+(?:the\s+)?` + introOrg), role: RoleLobbyist, affiliation: true},
	{re: regexp.MustCompile(introName + `\s+on behalf of\s+(?:the\s+)?` + introOrg), role: RoleLobbyist, affiliation: true},
}

// IntroductionOption is a functional option for an [IntroductionSource].
type IntroductionOption func(*IntroductionSource)

// WithIntroductionContextWidth sets the context window width in bytes.
// Default: 50.
func WithIntroductionContextWidth(w int) IntroductionOption {
	return func(s *IntroductionSource) {
		s.contextWidth = w
	}
}

// IntroductionSource captures speakers who are never addressed by title:
// members of the public and organizational representatives who introduce
// themselves ("good morning, my name is Jane Doe, representing the Cattle
// Growers Association").
//
// Where the matched pattern exposes an organization, it is carried on the
// candidate's Affiliation field and tallied during aggregation.
type IntroductionSource struct {
	contextWidth int
}

var _ Source = (*IntroductionSource)(nil)

// NewIntroductionSource constructs an [IntroductionSource].
func NewIntroductionSource(opts ...IntroductionOption) *IntroductionSource {
	s := &IntroductionSource{contextWidth: defaultContextWidth}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Kind implements [Source].
func (s *IntroductionSource) Kind() SourceKind { return SourceIntroduction }

// Extract implements [Source].
func (s *IntroductionSource) Extract(docID, text string) []Candidate {
	type hit struct {
		cand    Candidate
		pattern int
	}
	var hits []hit

	for i, p := range introPatterns {
		for _, m := range p.re.FindAllStringSubmatchIndex(text, -1) {
			start, end := m[2], m[3]
			span := strings.Join(strings.Fields(text[start:end]), " ")
			if span == "" {
				continue
			}
			var affiliation string
			if p.affiliation && len(m) >= 6 && m[4] >= 0 {
				affiliation = cleanOrganization(text[m[4]:m[5]])
			}
			hits = append(hits, hit{
				cand: Candidate{
					Text:        span,
					DocumentID:  docID,
					Position:    start,
					Context:     contextWindow(text, start, end, s.contextWidth),
					Source:      SourceIntroduction,
					Role:        p.role,
					Affiliation: affiliation,
				},
				pattern: i,
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
		return hits[a].pattern < hits[b].pattern
	})

	cands := make([]Candidate, len(hits))
	for i, h := range hits {
		cands[i] = h.cand
	}
	return cands
}

// orgFunctionWords are bare function words that cannot stand alone as an
// organization name.
var orgFunctionWords = map[string]struct{}{
	"the": {}, "and": {}, "or": {}, "to": {}, "for": {},
	"in": {}, "on": {}, "at": {}, "by": {},
}

// cleanOrganization trims a captured organization phrase and discards
// captures too short or too generic to be a real organization. Returns ""
// when nothing usable remains.
func cleanOrganization(org string) string {
	org = strings.Join(strings.Fields(org), " ")
	org = strings.TrimRight(org, " ,.")
	if len(org) < 3 {
		return ""
	}
	words := strings.Fields(org)
	if len(words) == 1 {
		if _, bad := orgFunctionWords[strings.ToLower(words[0])]; bad {
			return ""
		}
	}
	return org
}
