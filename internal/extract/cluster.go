package extract

import (
	"sort"
	"strings"

	"github.com/antzucaro/matchr"
)

// Cluster is a group of entities judged to denote one underlying person.
// The cluster set partitions the entity set and is the pipeline's terminal
// output.
type Cluster struct {
	// Canonical is the representative member: highest frequency, ties
	// broken by longer normalized form (the more specific name).
	Canonical Entity

	// Members lists all entities in the cluster, canonical first.
	Members []Entity

	// TotalFrequency is the sum of member frequencies.
	TotalFrequency int
}

// ReviewPair records a candidate merge that was NOT applied automatically
// and should be surfaced for manual review. Incorrectly merging two real,
// distinct people is worse than leaving duplicates unmerged, so ambiguous
// pairs are reported instead of resolved.
type ReviewPair struct {
	// A and B are the two normalized forms, A being the already-clustered
	// canonical.
	A, B string

	// Score is the Jaro-Winkler similarity of the pair.
	Score float64

	// Reason is "substring-guard" when whole-token containment was blocked
	// by the independence threshold, or "near-threshold" when similarity
	// fell just short of the merge threshold.
	Reason string
}

// ClustererOption is a functional option for configuring a [Clusterer].
type ClustererOption func(*Clusterer)

// WithSimilarityThreshold sets the minimum Jaro-Winkler similarity for an
// automatic merge. Default: 0.85.
func WithSimilarityThreshold(t float64) ClustererOption {
	return func(c *Clusterer) {
		c.similarity = t
	}
}

// WithIndependenceThreshold sets the frequency above which a whole-token
// substring entity is considered an independent name and is never folded
// into a longer form. Two genuinely different, both-common surnames must not
// auto-merge just because one contains the other. Default: 100.
func WithIndependenceThreshold(n int) ClustererOption {
	return func(c *Clusterer) {
		c.independence = n
	}
}

// WithReviewMargin sets how far below the similarity threshold a pair may
// score and still be reported for manual review. Default: 0.05.
func WithReviewMargin(m float64) ClustererOption {
	return func(c *Clusterer) {
		c.reviewMargin = m
	}
}

// Clusterer groups normalized forms into entity clusters. Matching is
// pairwise against each existing cluster's canonical, in priority order,
// first match wins:
//
//  1. Exact normalized-form match (already merged upstream; kept for
//     completeness).
//  2. Whole-token substring containment ("Lopez" within "Sedillo Lopez"),
//     guarded by the independence threshold.
//  3. Jaro-Winkler similarity at or above the configured threshold.
//
// The defaults are deliberately conservative. Do not tune them toward more
// aggressive merging: under-merging is the designed failure mode.
type Clusterer struct {
	similarity   float64
	independence int
	reviewMargin float64
}

// NewClusterer constructs a [Clusterer] with the supplied options.
func NewClusterer(opts ...ClustererOption) *Clusterer {
	c := &Clusterer{
		similarity:   0.85,
		independence: 100,
		reviewMargin: 0.05,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Cluster partitions entities into clusters and reports blocked or
// near-miss merges for manual review. Output order is deterministic:
// clusters in descending canonical frequency, members in merge order.
func (c *Clusterer) Cluster(entities []Entity) ([]Cluster, []ReviewPair) {
	// Highest frequency first so the first member of every cluster is its
	// canonical; frequency ties prefer the longer (more specific) form.
	ordered := make([]Entity, len(entities))
	copy(ordered, entities)
	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.Frequency != b.Frequency {
			return a.Frequency > b.Frequency
		}
		if len(a.NormalizedForm) != len(b.NormalizedForm) {
			return len(a.NormalizedForm) > len(b.NormalizedForm)
		}
		return a.NormalizedForm < b.NormalizedForm
	})

	var clusters []Cluster
	var review []ReviewPair

	for _, e := range ordered {
		matched := false
		for i := range clusters {
			ok, pairs := c.match(clusters[i].Canonical, e)
			review = append(review, pairs...)
			if ok {
				clusters[i].Members = append(clusters[i].Members, e)
				clusters[i].TotalFrequency += e.Frequency
				matched = true
				break
			}
		}
		if !matched {
			clusters = append(clusters, Cluster{
				Canonical:      e,
				Members:        []Entity{e},
				TotalFrequency: e.Frequency,
			})
		}
	}

	return clusters, review
}

// match applies the priority-ordered merge rules between a cluster canonical
// and a candidate entity. It returns whether the entity joins the cluster,
// plus any review pairs generated along the way.
func (c *Clusterer) match(canonical, e Entity) (bool, []ReviewPair) {
	a := strings.ToLower(canonical.NormalizedForm)
	b := strings.ToLower(e.NormalizedForm)

	// Rule 1: exact match.
	if a == b {
		return true, nil
	}

	var review []ReviewPair

	// Rule 2: whole-token substring containment. The shorter form joins the
	// longer only while its own frequency stays below the independence
	// threshold.
	if contained, shorterFreq := tokenContainment(canonical, e); contained {
		if shorterFreq <= c.independence {
			return true, nil
		}
		review = append(review, ReviewPair{
			A:      canonical.NormalizedForm,
			B:      e.NormalizedForm,
			Score:  matchr.JaroWinkler(a, b, false),
			Reason: "substring-guard",
		})
	}

	// Rule 3: string similarity.
	score := matchr.JaroWinkler(a, b, false)
	if score >= c.similarity {
		return true, review
	}
	if score >= c.similarity-c.reviewMargin {
		review = append(review, ReviewPair{
			A:      canonical.NormalizedForm,
			B:      e.NormalizedForm,
			Score:  score,
			Reason: "near-threshold",
		})
	}
	return false, review
}

// tokenContainment reports whether one entity's normalized form appears as a
// contiguous whole-token subsequence of the other's, and returns the
// frequency of the shorter (contained) entity.
func tokenContainment(x, y Entity) (contained bool, shorterFreq int) {
	xt := strings.Fields(strings.ToLower(x.NormalizedForm))
	yt := strings.Fields(strings.ToLower(y.NormalizedForm))

	short, st, lt := x, xt, yt
	if len(yt) < len(xt) {
		short, st, lt = y, yt, xt
	} else if len(xt) == len(yt) {
		// Equal token counts can only be containment when equal, which rule
		// 1 already handled.
		return false, 0
	}

	if len(st) == 0 {
		return false, 0
	}
	for i := 0; i+len(st) <= len(lt); i++ {
		match := true
		for j := range st {
			if lt[i+j] != st[j] {
				match = false
				break
			}
		}
		if match {
			return true, short.Frequency
		}
	}
	return false, 0
}
