package directory

import (
	"fmt"
	"io"
	"strings"

	"github.com/quorumlabs/rollcall/internal/extract"
)

// WriteReport renders a markdown cross-reference report for manual review:
// tier and role totals, the full directory with variants and affiliations,
// and the merge pairs the clusterer declined to resolve automatically.
//
// Output is fully determined by the inputs so reports can be diffed between
// runs.
func WriteReport(w io.Writer, records []Record, review []extract.ReviewPair) error {
	var b strings.Builder

	b.WriteString("# Speaker Directory Report\n\n")
	fmt.Fprintf(&b, "Total entries: %d\n\n", len(records))

	byTier := make(map[extract.Tier]int)
	byRole := make(map[extract.Role]int)
	for _, r := range records {
		byTier[r.Tier]++
		byRole[r.PrimaryRole]++
	}

	b.WriteString("## Confidence\n\n")
	for _, t := range []extract.Tier{extract.TierHigh, extract.TierMedium, extract.TierLow} {
		fmt.Fprintf(&b, "- %s: %d\n", t, byTier[t])
	}
	b.WriteString("\n## Roles\n\n")
	for _, r := range []extract.Role{
		extract.RoleLegislator, extract.RoleOfficial, extract.RoleExpert,
		extract.RoleLobbyist, extract.RolePublic, extract.RoleUnknown,
	} {
		if byRole[r] > 0 {
			fmt.Fprintf(&b, "- %s: %d\n", r, byRole[r])
		}
	}

	b.WriteString("\n## Directory\n\n")
	b.WriteString("| Name | Role | Tier | Mentions | Documents | Affiliations |\n")
	b.WriteString("|------|------|------|----------|-----------|--------------|\n")
	for _, r := range records {
		fmt.Fprintf(&b, "| %s | %s | %s | %d | %d | %s |\n",
			r.Name, r.PrimaryRole, r.Tier, r.Frequency, r.DocumentCount,
			strings.Join(r.Affiliations, "; "))
	}

	if hasRoster(records) {
		b.WriteString("\n## Roster Cross-Reference\n\n")
		b.WriteString("| Extracted | Roster | Score |\n")
		b.WriteString("|-----------|--------|-------|\n")
		for _, r := range records {
			if r.RosterMatch == "" {
				continue
			}
			fmt.Fprintf(&b, "| %s | %s | %.3f |\n", r.Name, r.RosterMatch, r.RosterScore)
		}
		b.WriteString("\nUnmatched:\n\n")
		for _, r := range records {
			if r.RosterMatch == "" {
				fmt.Fprintf(&b, "- %s\n", r.Name)
			}
		}
	}

	if unverified := highUnverified(records); len(unverified) > 0 {
		b.WriteString("\n## Verification Checklist\n\n")
		b.WriteString("High-confidence entries not yet confirmed by hand:\n\n")
		for _, r := range unverified {
			fmt.Fprintf(&b, "- [ ] %s (%d mentions)\n", r.Name, r.Frequency)
		}
	}

	b.WriteString("\n## Surface Forms\n\n")
	for _, r := range records {
		if len(r.Variants) < 2 {
			continue
		}
		fmt.Fprintf(&b, "- **%s**: %s\n", r.Name, strings.Join(r.Variants, ", "))
	}

	if len(review) > 0 {
		b.WriteString("\n## Needs Review\n\n")
		b.WriteString("Possible duplicates left unmerged. Confirm or reject by hand.\n\n")
		b.WriteString("| A | B | Similarity | Reason |\n")
		b.WriteString("|---|---|------------|--------|\n")
		for _, p := range review {
			fmt.Fprintf(&b, "| %s | %s | %.3f | %s |\n", p.A, p.B, p.Score, p.Reason)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// highUnverified returns the high-tier records still awaiting manual
// confirmation, in input order.
func highUnverified(records []Record) []Record {
	var out []Record
	for _, r := range records {
		if r.Tier == extract.TierHigh && !r.Verified {
			out = append(out, r)
		}
	}
	return out
}

// hasRoster reports whether any record carries a roster match.
func hasRoster(records []Record) bool {
	for _, r := range records {
		if r.RosterMatch != "" {
			return true
		}
	}
	return false
}
