package extract

import (
	"sort"
)

// Entity is a normalized surface form with its aggregate statistics across
// the whole corpus. Entities are produced by [Table.Entities] and are only
// mutated by further merges during clustering; the pipeline's final output is
// immutable.
type Entity struct {
	// NormalizedForm is the canonical string produced by the [Normalizer].
	NormalizedForm string

	// RawVariants lists the distinct raw strings observed for this form,
	// sorted lexicographically.
	RawVariants []string

	// Frequency is the total mention count across all documents.
	Frequency int

	// DocumentCount is the number of distinct documents contributing at
	// least one mention. A form that recurs across documents is more
	// trustworthy than one concentrated in a single transcript.
	DocumentCount int

	// Tier is assigned by the [Classifier]; zero until classification runs.
	Tier Tier

	// SampleContext is one representative context window.
	SampleContext string

	// Roles tallies the role hints observed across mentions.
	Roles map[Role]int

	// Affiliations tallies organization strings captured with mentions.
	Affiliations map[string]int

	// Sources tallies which strategies produced the mentions, for
	// cross-strategy agreement diagnostics.
	Sources map[SourceKind]int
}

// tableEntry is the mutable aggregation state for one normalized form.
type tableEntry struct {
	variants     map[string]struct{}
	frequency    int
	docs         map[string]struct{}
	roles        map[Role]int
	affiliations map[string]int
	sources      map[SourceKind]int

	// Sample context: the candidate with the smallest (document, position)
	// key wins, so the choice is independent of merge order.
	sampleDoc string
	samplePos int
	sampleCtx string
}

// Table is the cross-corpus frequency table keyed by normalized form.
// Normalization happens inline as candidates are observed.
//
// Merging two tables is commutative and associative: frequencies sum,
// variant and document sets union, and the sample-context choice is a
// deterministic minimum. That property is what makes collect-then-merge
// parallelism safe — worker scheduling cannot change the result.
//
// A Table is not safe for concurrent use; each worker builds its own and the
// pipeline folds them in a single-threaded merge step.
type Table struct {
	normalizer *Normalizer
	entries    map[string]*tableEntry

	// dropped counts candidates whose normalized form was empty (e.g. a
	// bare honorific). The pipeline logs this so no mention disappears
	// without a recorded reason.
	dropped int
}

// NewTable constructs an empty [Table] that normalizes with n.
func NewTable(n *Normalizer) *Table {
	return &Table{
		normalizer: n,
		entries:    make(map[string]*tableEntry),
	}
}

// Observe folds one surviving candidate into the table.
func (t *Table) Observe(c Candidate) {
	form := t.normalizer.Normalize(c.Text)
	if form == "" {
		t.dropped++
		return
	}

	e, ok := t.entries[form]
	if !ok {
		e = &tableEntry{
			variants:     make(map[string]struct{}),
			docs:         make(map[string]struct{}),
			roles:        make(map[Role]int),
			affiliations: make(map[string]int),
			sources:      make(map[SourceKind]int),
			sampleDoc:    c.DocumentID,
			samplePos:    c.Position,
			sampleCtx:    c.Context,
		}
		t.entries[form] = e
	}

	e.frequency++
	e.variants[c.Text] = struct{}{}
	e.docs[c.DocumentID] = struct{}{}
	if c.Role != "" && c.Role != RoleUnknown {
		e.roles[c.Role]++
	}
	if c.Affiliation != "" {
		e.affiliations[c.Affiliation]++
	}
	e.sources[c.Source]++

	if sampleBefore(c.DocumentID, c.Position, e.sampleDoc, e.samplePos) {
		e.sampleDoc, e.samplePos, e.sampleCtx = c.DocumentID, c.Position, c.Context
	}
}

// Merge folds other into t. Both operands may have observed the same forms;
// counts sum and sets union.
func (t *Table) Merge(other *Table) {
	t.dropped += other.dropped
	for form, oe := range other.entries {
		e, ok := t.entries[form]
		if !ok {
			t.entries[form] = oe
			continue
		}
		e.frequency += oe.frequency
		for v := range oe.variants {
			e.variants[v] = struct{}{}
		}
		for d := range oe.docs {
			e.docs[d] = struct{}{}
		}
		for r, n := range oe.roles {
			e.roles[r] += n
		}
		for a, n := range oe.affiliations {
			e.affiliations[a] += n
		}
		for s, n := range oe.sources {
			e.sources[s] += n
		}
		if sampleBefore(oe.sampleDoc, oe.samplePos, e.sampleDoc, e.samplePos) {
			e.sampleDoc, e.samplePos, e.sampleCtx = oe.sampleDoc, oe.samplePos, oe.sampleCtx
		}
	}
}

// Len returns the number of distinct normalized forms.
func (t *Table) Len() int { return len(t.entries) }

// Dropped returns the number of candidates discarded because normalization
// produced an empty form.
func (t *Table) Dropped() int { return t.dropped }

// Entities materialises the table into a deterministic slice: sorted by
// frequency descending, ties broken by normalized form ascending.
func (t *Table) Entities() []Entity {
	out := make([]Entity, 0, len(t.entries))
	for form, e := range t.entries {
		variants := make([]string, 0, len(e.variants))
		for v := range e.variants {
			variants = append(variants, v)
		}
		sort.Strings(variants)

		out = append(out, Entity{
			NormalizedForm: form,
			RawVariants:    variants,
			Frequency:      e.frequency,
			DocumentCount:  len(e.docs),
			SampleContext:  e.sampleCtx,
			Roles:          copyCounter(e.roles),
			Affiliations:   copyCounter(e.affiliations),
			Sources:        copyCounter(e.sources),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Frequency != out[j].Frequency {
			return out[i].Frequency > out[j].Frequency
		}
		return out[i].NormalizedForm < out[j].NormalizedForm
	})
	return out
}

// sampleBefore reports whether sample key (doc1, pos1) orders before
// (doc2, pos2).
func sampleBefore(doc1 string, pos1 int, doc2 string, pos2 int) bool {
	if doc1 != doc2 {
		return doc1 < doc2
	}
	return pos1 < pos2
}

// copyCounter returns a copy of m, or nil when m is empty so that empty
// counters compare equal regardless of construction path.
func copyCounter[K comparable](m map[K]int) map[K]int {
	if len(m) == 0 {
		return nil
	}
	out := make(map[K]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
