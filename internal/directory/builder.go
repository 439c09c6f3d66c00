package directory

import (
	"sort"
	"strings"

	"github.com/quorumlabs/rollcall/internal/extract"
)

// rolePriority orders roles by specificity: an entity addressed even once as
// a legislator is filed as one, however often it also introduced itself as a
// member of the public.
var rolePriority = []extract.Role{
	extract.RoleLegislator,
	extract.RoleOfficial,
	extract.RoleExpert,
	extract.RoleLobbyist,
	extract.RolePublic,
}

// Build converts entity clusters into directory records, one per cluster,
// sorted by frequency descending then name. The conversion is deterministic:
// the same clusters always yield the same records.
func Build(clusters []extract.Cluster) []Record {
	records := make([]Record, 0, len(clusters))
	for _, cl := range clusters {
		records = append(records, buildOne(cl))
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Frequency != records[j].Frequency {
			return records[i].Frequency > records[j].Frequency
		}
		return records[i].Name < records[j].Name
	})
	return records
}

// buildOne folds one cluster into a record.
func buildOne(cl extract.Cluster) Record {
	roles := make(map[extract.Role]int)
	affiliations := make(map[string]int)
	variantSet := make(map[string]struct{})
	docCount := 0

	for _, m := range cl.Members {
		for r, n := range m.Roles {
			roles[r] += n
		}
		for a, n := range m.Affiliations {
			affiliations[a] += n
		}
		for _, v := range m.RawVariants {
			variantSet[v] = struct{}{}
		}
		if m.DocumentCount > docCount {
			docCount = m.DocumentCount
		}
	}

	variants := make([]string, 0, len(variantSet))
	for v := range variantSet {
		variants = append(variants, v)
	}
	sort.Strings(variants)

	name := cl.Canonical.NormalizedForm
	return Record{
		ID:            RecordID(name),
		Name:          name,
		LastName:      lastToken(name),
		PrimaryRole:   primaryRole(roles),
		Tier:          cl.Canonical.Tier,
		Frequency:     cl.TotalFrequency,
		DocumentCount: docCount,
		Variants:      variants,
		Affiliations:  rankedAffiliations(affiliations),
		SampleContext: cl.Canonical.SampleContext,
	}
}

// primaryRole picks the highest-priority role with at least one observation.
func primaryRole(roles map[extract.Role]int) extract.Role {
	for _, r := range rolePriority {
		if roles[r] > 0 {
			return r
		}
	}
	return extract.RoleUnknown
}

// rankedAffiliations orders affiliations by observation count descending,
// ties alphabetical.
func rankedAffiliations(affiliations map[string]int) []string {
	out := make([]string, 0, len(affiliations))
	for a := range affiliations {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if affiliations[out[i]] != affiliations[out[j]] {
			return affiliations[out[i]] > affiliations[out[j]]
		}
		return out[i] < out[j]
	})
	return out
}

// lastToken returns the final whitespace-separated token of name.
func lastToken(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
