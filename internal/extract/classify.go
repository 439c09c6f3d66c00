package extract

// Tier is the coarse confidence classification derived from mention
// frequency.
type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

// ClassifierOption is a functional option for configuring a [Classifier].
type ClassifierOption func(*Classifier)

// WithMinimumToKeep drops entities below the given frequency instead of
// classifying them. Default: 1 (keep everything).
func WithMinimumToKeep(n int) ClassifierOption {
	return func(c *Classifier) {
		c.minimumToKeep = n
	}
}

// WithDocumentCountCap caps entities seen in only a single document at
// [TierMedium], using document recurrence as a secondary confidence signal.
// Disabled by default.
func WithDocumentCountCap(enabled bool) ClassifierOption {
	return func(c *Classifier) {
		c.docCountCap = enabled
	}
}

// Classifier maps an entity's frequency to a confidence tier via fixed
// thresholds. Thresholds are configuration, not constants: the acceptable
// false-positive rate is corpus-dependent, and the operator moves thresholds
// rather than hand-tuning extraction code.
type Classifier struct {
	medium        int
	high          int
	minimumToKeep int
	docCountCap   bool
}

// NewClassifier constructs a [Classifier] with the given tier thresholds.
// The configuration loader guarantees medium < high before a pipeline is
// built.
func NewClassifier(medium, high int, opts ...ClassifierOption) *Classifier {
	c := &Classifier{
		medium:        medium,
		high:          high,
		minimumToKeep: 1,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Tier returns the confidence tier for e. It is a pure function of frequency
// (and document count when the cap is enabled): increasing frequency never
// decreases the tier.
func (c *Classifier) Tier(e Entity) Tier {
	tier := TierLow
	switch {
	case e.Frequency >= c.high:
		tier = TierHigh
	case e.Frequency >= c.medium:
		tier = TierMedium
	}
	if c.docCountCap && tier == TierHigh && e.DocumentCount <= 1 {
		tier = TierMedium
	}
	return tier
}

// Apply assigns tiers and partitions entities into those kept and those
// dropped for falling below the minimum-to-keep frequency. The caller is
// responsible for logging the dropped set — no mention may disappear without
// a recorded reason.
func (c *Classifier) Apply(entities []Entity) (kept, dropped []Entity) {
	kept = make([]Entity, 0, len(entities))
	for _, e := range entities {
		if e.Frequency < c.minimumToKeep {
			dropped = append(dropped, e)
			continue
		}
		e.Tier = c.Tier(e)
		kept = append(kept, e)
	}
	return kept, dropped
}
