package extract

import (
	"context"
	"errors"
	"log/slog"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/quorumlabs/rollcall/internal/observe"
)

// SkippedDocument identifies a document abandoned mid-run and why.
type SkippedDocument struct {
	ID     string
	Reason string
}

// StageStats summarises candidate flow through the pipeline stages for one
// run. It feeds logging, the run summary table, and metrics; no downstream
// stage consumes it.
type StageStats struct {
	// Documents is the number of documents processed, excluding skips.
	Documents int

	// Generated is the total candidate count across all sources, keyed by
	// source kind.
	Generated map[SourceKind]int

	// Filter aggregates the per-document filter counts.
	Filter FilterStats

	// NormalizedEmpty counts candidates discarded because normalization
	// produced an empty form.
	NormalizedEmpty int

	// BelowMinimum counts entities dropped for falling under the
	// minimum-to-keep frequency.
	BelowMinimum int

	// Entities and Clusters are the final output sizes.
	Entities int
	Clusters int
}

// Result is the output of one corpus run.
type Result struct {
	// Entities holds every classified entity, sorted by frequency
	// descending then normalized form ascending.
	Entities []Entity

	// Clusters partitions Entities, sorted by canonical frequency
	// descending.
	Clusters []Cluster

	// Review lists merges held back for manual review.
	Review []ReviewPair

	// Skipped lists documents that could not be processed. A failed
	// document never aborts the run.
	Skipped []SkippedDocument

	// Stats summarises candidate flow through the stages.
	Stats StageStats
}

// PipelineOption is a functional option for configuring a [Pipeline].
type PipelineOption func(*Pipeline)

// WithWorkers sets the number of concurrent document workers. Default: 4.
func WithWorkers(n int) PipelineOption {
	return func(p *Pipeline) {
		p.workers = n
	}
}

// WithMetrics sets the metrics sink. Default: [observe.DefaultMetrics].
func WithMetrics(m *observe.Metrics) PipelineOption {
	return func(p *Pipeline) {
		p.metrics = m
	}
}

// WithLogger sets the logger for per-run diagnostics. Default:
// [slog.Default].
func WithLogger(l *slog.Logger) PipelineOption {
	return func(p *Pipeline) {
		p.logger = l
	}
}

// Pipeline runs the full extraction sequence over a corpus: candidate
// generation, filtering, aggregation, classification, and clustering.
//
// Documents are processed concurrently, each worker folding its candidates
// into a private [Table]; the tables are then merged on a single goroutine.
// Because the merge is commutative and associative, worker scheduling cannot
// affect the result — two runs over the same corpus with the same
// configuration produce identical output regardless of worker count.
type Pipeline struct {
	sources    []Source
	filter     *Filter
	normalizer *Normalizer
	classifier *Classifier
	clusterer  *Clusterer

	workers int
	metrics *observe.Metrics
	logger  *slog.Logger
}

// NewPipeline constructs a [Pipeline] from its stage components. All
// components are required; configuration errors are joined and reported
// together.
func NewPipeline(sources []Source, filter *Filter, normalizer *Normalizer, classifier *Classifier, clusterer *Clusterer, opts ...PipelineOption) (*Pipeline, error) {
	var errs []error
	if len(sources) == 0 {
		errs = append(errs, errors.New("extract: at least one candidate source is required"))
	}
	if filter == nil {
		errs = append(errs, errors.New("extract: filter is required"))
	}
	if normalizer == nil {
		errs = append(errs, errors.New("extract: normalizer is required"))
	}
	if classifier == nil {
		errs = append(errs, errors.New("extract: classifier is required"))
	}
	if clusterer == nil {
		errs = append(errs, errors.New("extract: clusterer is required"))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	p := &Pipeline{
		sources:    sources,
		filter:     filter,
		normalizer: normalizer,
		classifier: classifier,
		clusterer:  clusterer,
		workers:    4,
	}
	for _, o := range opts {
		o(p)
	}
	if p.workers < 1 {
		p.workers = 1
	}
	if p.metrics == nil {
		p.metrics = observe.DefaultMetrics()
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p, nil
}

// docResult carries one worker's output back to the merge step.
type docResult struct {
	table     *Table
	generated map[SourceKind]int
	filter    FilterStats
	skipped   *SkippedDocument
}

// Run executes the pipeline over docs. The only returned errors are context
// cancellation; individual document failures are reported in
// [Result.Skipped] instead of aborting the run.
func (p *Pipeline) Run(ctx context.Context, docs []Document) (*Result, error) {
	ctx, span := observe.StartSpan(ctx, "pipeline.run")
	defer span.End()
	start := time.Now()

	results := make([]docResult, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, doc := range docs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p.metrics.ActiveWorkers.Add(gctx, 1)
			defer p.metrics.ActiveWorkers.Add(gctx, -1)

			results[i] = p.processDocument(gctx, doc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Single-threaded merge. Fold order is fixed for clarity even though the
	// merge is order-independent.
	table := NewTable(p.normalizer)
	res := &Result{}
	stats := StageStats{Generated: make(map[SourceKind]int)}
	for _, dr := range results {
		if dr.skipped != nil {
			res.Skipped = append(res.Skipped, *dr.skipped)
			p.metrics.RecordDocumentSkipped(ctx, dr.skipped.Reason)
			p.logger.WarnContext(ctx, "document skipped",
				slog.String("document", dr.skipped.ID),
				slog.String("reason", dr.skipped.Reason))
			continue
		}
		stats.Documents++
		for k, n := range dr.generated {
			stats.Generated[k] += n
			p.metrics.RecordCandidates(ctx, string(k), int64(n))
		}
		stats.Filter.add(dr.filter)
		table.Merge(dr.table)
	}
	p.metrics.RecordRejections(ctx, "stoplist", int64(stats.Filter.Stoplisted))
	p.metrics.RecordRejections(ctx, "invalid", int64(stats.Filter.Invalid))

	stats.NormalizedEmpty = table.Dropped()
	if stats.NormalizedEmpty > 0 {
		p.logger.InfoContext(ctx, "candidates dropped as empty after normalization",
			slog.Int("count", stats.NormalizedEmpty))
	}

	kept, dropped := p.classifier.Apply(table.Entities())
	stats.BelowMinimum = len(dropped)
	for _, e := range dropped {
		p.logger.DebugContext(ctx, "entity below minimum frequency",
			slog.String("form", e.NormalizedForm),
			slog.Int("frequency", e.Frequency))
	}
	for _, e := range kept {
		p.metrics.RecordEntity(ctx, string(e.Tier))
	}

	clusters, review := p.clusterer.Cluster(kept)
	for _, rp := range review {
		p.metrics.RecordReviewPair(ctx, rp.Reason)
	}
	p.metrics.Clusters.Add(ctx, int64(len(clusters)))

	res.Entities = kept
	res.Clusters = clusters
	res.Review = review
	stats.Entities = len(kept)
	stats.Clusters = len(clusters)
	res.Stats = stats

	elapsed := time.Since(start)
	p.metrics.PipelineDuration.Record(ctx, elapsed.Seconds())
	p.logger.InfoContext(ctx, "extraction run complete",
		slog.Int("documents", stats.Documents),
		slog.Int("skipped", len(res.Skipped)),
		slog.Int("candidates", stats.Filter.In),
		slog.Int("entities", stats.Entities),
		slog.Int("clusters", stats.Clusters),
		slog.Int("review_pairs", len(review)),
		slog.Duration("elapsed", elapsed))

	return res, nil
}

// processDocument runs generation and filtering for one document and folds
// the survivors into a fresh table.
func (p *Pipeline) processDocument(ctx context.Context, doc Document) docResult {
	start := time.Now()
	defer func() {
		p.metrics.DocumentDuration.Record(ctx, time.Since(start).Seconds())
	}()

	if !utf8.ValidString(doc.Text) {
		return docResult{skipped: &SkippedDocument{ID: doc.ID, Reason: "invalid-utf8"}}
	}

	generated := make(map[SourceKind]int, len(p.sources))
	var cands []Candidate
	for _, src := range p.sources {
		found := src.Extract(doc.ID, doc.Text)
		generated[src.Kind()] += len(found)
		cands = append(cands, found...)
	}

	kept, fstats := p.filter.Apply(cands)

	table := NewTable(p.normalizer)
	for _, c := range kept {
		table.Observe(c)
	}
	return docResult{table: table, generated: generated, filter: fstats}
}
