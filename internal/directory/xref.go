package directory

import (
	"github.com/quorumlabs/rollcall/internal/phonetic"
)

// CrossReference matches each record against a roster of official names,
// filling RosterMatch and RosterScore in place. Unmatched records are left
// untouched — an extracted name absent from the roster is a finding, not an
// error.
func CrossReference(records []Record, roster []string, m *phonetic.Matcher) {
	if m == nil {
		m = phonetic.New()
	}
	for i := range records {
		best, score, matched := m.Match(records[i].Name, roster)
		if matched {
			records[i].RosterMatch = best
			records[i].RosterScore = score
		}
	}
}
