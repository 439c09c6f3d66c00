// Package observe provides application-wide observability primitives for
// Rollcall: OpenTelemetry metrics, distributed tracing, structured logging,
// and HTTP middleware that ties them together.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A Prometheus
// exporter bridge is available via [InitProvider] so that metrics can still be
// scraped via the standard /metrics endpoint. A package-level default
// [Metrics] instance ([DefaultMetrics]) is provided for convenience; tests
// should use [NewMetrics] with a custom [metric.MeterProvider] to avoid
// cross-test pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all Rollcall metrics.
const meterName = "github.com/quorumlabs/rollcall"

// Metrics holds all OpenTelemetry metric instruments for the application.
// All fields are safe for concurrent use — the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// --- Latency histograms per pipeline stage ---

	// DocumentDuration tracks per-document generate+filter latency.
	DocumentDuration metric.Float64Histogram

	// PipelineDuration tracks end-to-end corpus run latency.
	PipelineDuration metric.Float64Histogram

	// --- Counters ---

	// Candidates counts generated candidates. Use with attribute:
	//   attribute.String("source", ...)
	Candidates metric.Int64Counter

	// Rejections counts filtered candidates. Use with attribute:
	//   attribute.String("reason", ...) — "stoplist" or "invalid"
	Rejections metric.Int64Counter

	// Entities counts entities emitted after classification. Use with
	// attribute:
	//   attribute.String("tier", ...)
	Entities metric.Int64Counter

	// Clusters counts clusters formed per run.
	Clusters metric.Int64Counter

	// ReviewPairs counts merges held back for manual review. Use with
	// attribute:
	//   attribute.String("reason", ...)
	ReviewPairs metric.Int64Counter

	// --- Error counters ---

	// DocumentsSkipped counts documents abandoned mid-run. Use with
	// attribute:
	//   attribute.String("reason", ...)
	DocumentsSkipped metric.Int64Counter

	// --- Gauges ---

	// ActiveWorkers tracks the number of in-flight document workers.
	ActiveWorkers metric.Int64UpDownCounter

	// --- HTTP middleware ---

	// HTTPRequestDuration tracks HTTP request processing time. Use with attributes:
	//   attribute.String("method", ...), attribute.String("path", ...)
	HTTPRequestDuration metric.Float64Histogram
}

// latencyBuckets defines histogram bucket boundaries (in seconds) sized for
// per-document regex extraction up to whole-corpus runs.
var latencyBuckets = []float64{
	0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 15, 60,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	// Histograms.
	if met.DocumentDuration, err = m.Float64Histogram("rollcall.document.duration",
		metric.WithDescription("Latency of per-document candidate generation and filtering."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.PipelineDuration, err = m.Float64Histogram("rollcall.pipeline.duration",
		metric.WithDescription("End-to-end corpus run latency."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}

	// Counters.
	if met.Candidates, err = m.Int64Counter("rollcall.candidates",
		metric.WithDescription("Total candidates generated, by source strategy."),
	); err != nil {
		return nil, err
	}
	if met.Rejections, err = m.Int64Counter("rollcall.rejections",
		metric.WithDescription("Total candidates rejected by the filter, by reason."),
	); err != nil {
		return nil, err
	}
	if met.Entities, err = m.Int64Counter("rollcall.entities",
		metric.WithDescription("Total entities emitted after classification, by tier."),
	); err != nil {
		return nil, err
	}
	if met.Clusters, err = m.Int64Counter("rollcall.clusters",
		metric.WithDescription("Total entity clusters formed."),
	); err != nil {
		return nil, err
	}
	if met.ReviewPairs, err = m.Int64Counter("rollcall.review_pairs",
		metric.WithDescription("Total merges held back for manual review, by reason."),
	); err != nil {
		return nil, err
	}

	// Error counters.
	if met.DocumentsSkipped, err = m.Int64Counter("rollcall.documents.skipped",
		metric.WithDescription("Total documents abandoned mid-run, by reason."),
	); err != nil {
		return nil, err
	}

	// Gauges (UpDownCounters).
	if met.ActiveWorkers, err = m.Int64UpDownCounter("rollcall.active_workers",
		metric.WithDescription("Number of in-flight document workers."),
	); err != nil {
		return nil, err
	}

	// HTTP middleware histogram.
	if met.HTTPRequestDuration, err = m.Float64Histogram("rollcall.http.request.duration",
		metric.WithDescription("HTTP request latency by method and path."),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// defaultMetrics is the lazily-initialised package-level Metrics instance.
var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Subsequent calls return the same
// pointer. Panics if instrument creation fails (should not happen with the
// global provider).
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// Attr is a convenience alias for [attribute.String] to reduce verbosity at
// call sites.
func Attr(key, value string) attribute.KeyValue {
	return attribute.String(key, value)
}

// RecordCandidates records n generated candidates for one source strategy.
func (m *Metrics) RecordCandidates(ctx context.Context, source string, n int64) {
	m.Candidates.Add(ctx, n,
		metric.WithAttributes(attribute.String("source", source)),
	)
}

// RecordRejections records n filter rejections with the given reason.
func (m *Metrics) RecordRejections(ctx context.Context, reason string, n int64) {
	m.Rejections.Add(ctx, n,
		metric.WithAttributes(attribute.String("reason", reason)),
	)
}

// RecordEntity records one emitted entity with its confidence tier.
func (m *Metrics) RecordEntity(ctx context.Context, tier string) {
	m.Entities.Add(ctx, 1,
		metric.WithAttributes(attribute.String("tier", tier)),
	)
}

// RecordDocumentSkipped records one abandoned document with the given reason.
func (m *Metrics) RecordDocumentSkipped(ctx context.Context, reason string) {
	m.DocumentsSkipped.Add(ctx, 1,
		metric.WithAttributes(attribute.String("reason", reason)),
	)
}

// RecordReviewPair records one merge held back for manual review.
func (m *Metrics) RecordReviewPair(ctx context.Context, reason string) {
	m.ReviewPairs.Add(ctx, 1,
		metric.WithAttributes(attribute.String("reason", reason)),
	)
}
