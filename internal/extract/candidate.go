// Package extract implements the multi-stage speaker-entity extraction
// pipeline used by Rollcall to build a trustworthy speaker directory from
// noisy OCR/ASR transcript text.
//
// Raw transcripts are rarely clean — capitalization is unreliable, OCR
// garbles spellings, and the same legislator appears under a dozen surface
// forms. The [Pipeline] reduces thousands of raw mentions to a small set of
// canonical entities through a fixed sequence of pure stages:
//
//  1. Candidate generation ([Source]): broad capitalization scan,
//     title-anchored matching, and introduction-pattern matching each emit
//     [Candidate] spans. Strategies are polymorphic — the pipeline combines
//     their output without knowing which produced a given candidate.
//  2. Filtering ([Filter]): stoplist rejection followed by structural
//     validation removes the large majority of generated spans.
//  3. Aggregation ([Table]): per-document candidates are merged into one
//     cross-corpus frequency table keyed by normalized form. The merge is
//     commutative and associative, which is what makes per-document
//     parallelism safe.
//  4. Classification ([Classifier]): mention frequency maps to a confidence
//     tier via configured thresholds.
//  5. Clustering ([Clusterer]): fuzzy deduplication groups normalized forms
//     that denote the same person, conservatively.
//
// Every stage is a pure transformation over its input; re-running the
// pipeline over the same corpus with the same configuration yields identical
// output.
package extract

// SourceKind identifies which generation strategy produced a candidate.
// Downstream stages use it only for cross-validation weighting and
// diagnostics — candidates from all sources flow through the same pipeline.
type SourceKind string

const (
	// SourceCapitalized is the broad capitalization scan. High recall,
	// hundreds of spurious matches per document are expected.
	SourceCapitalized SourceKind = "capitalized"

	// SourceTitled is the title-anchored strategy ("Representative Brown").
	// Higher precision; tolerates garbled casing in the name tokens.
	SourceTitled SourceKind = "titled"

	// SourceIntroduction matches self-introductions and testimony openings
	// ("my name is ...", "... testifying on behalf of ...").
	SourceIntroduction SourceKind = "introduction"
)

// Role is a coarse speaker-role hint attached by a [Source] based on the
// pattern that matched. Role counts are merged during aggregation and the
// most frequent role becomes the entity's primary role in the directory.
type Role string

const (
	RoleLegislator Role = "legislator"
	RoleOfficial   Role = "official"
	RoleExpert     Role = "expert"
	RoleLobbyist   Role = "lobbyist"
	RolePublic     Role = "public"
	RoleUnknown    Role = "unknown"
)

// Candidate is a span of text hypothesised to be a person's name.
// Candidates are immutable once emitted; after aggregation only their
// contribution to counts and context samples survives.
type Candidate struct {
	// Text is the exact substring as found in the document.
	Text string

	// DocumentID identifies the source document.
	DocumentID string

	// Position is the byte offset of the span within the document.
	Position int

	// Context is a bounded window of surrounding text.
	Context string

	// Source tags the generation strategy that produced this candidate.
	Source SourceKind

	// Role is the role hint implied by the matched pattern, or [RoleUnknown].
	Role Role

	// Affiliation is the organization captured alongside the name, when the
	// matching pattern exposes one ("Jane Doe representing the Cattle
	// Growers Association"). Empty for most candidates.
	Affiliation string
}

// Document is the pipeline's input unit: an identifier and the full plain
// text already extracted from whatever upstream source produced it.
type Document struct {
	ID   string
	Text string
}

// Source produces raw name candidates from a document's text.
//
// Implementations must be pure: the same text always yields the same
// candidates, in document order. They must be safe for concurrent use —
// the pipeline calls Extract from multiple workers.
type Source interface {
	// Kind returns the strategy tag stamped on every emitted candidate.
	Kind() SourceKind

	// Extract scans text and returns all candidate spans in positional
	// order. A document that yields no candidates returns an empty slice.
	Extract(docID, text string) []Candidate
}

// contextWindow returns a window of text centred on [start, end), clamped to
// the document bounds and adjusted so it never splits a UTF-8 sequence.
func contextWindow(text string, start, end, width int) string {
	lo := start - width
	if lo < 0 {
		lo = 0
	}
	hi := end + width
	if hi > len(text) {
		hi = len(text)
	}
	for lo > 0 && !utf8RuneStart(text[lo]) {
		lo--
	}
	for hi < len(text) && !utf8RuneStart(text[hi]) {
		hi++
	}
	return text[lo:hi]
}

// utf8RuneStart reports whether b can be the first byte of an encoded rune.
func utf8RuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
