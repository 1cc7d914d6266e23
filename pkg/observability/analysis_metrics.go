package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricFilesScannedTotal = "lingua.aggregate.files_scanned.total"
	metricBytesScannedTotal = "lingua.aggregate.bytes_scanned.total"
	metricDetectDuration    = "lingua.detect.duration.seconds"
	metricCacheHitsTotal    = "lingua.aggregate.cache.hits.total"
	metricCacheMissesTotal  = "lingua.aggregate.cache.misses.total"

	attrCache = "cache"
)

// durationBucketBoundaries covers 10ms to 600s: single-file detections are
// sub-second, while full walks of large monorepos can run for minutes.
var durationBucketBoundaries = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600}

// AggregateMetrics holds OTel instruments for the repository aggregator's
// per-run statistics: files and bytes classified, per-file pipeline
// duration, and blob-cache hit/miss rates.
type AggregateMetrics struct {
	filesScanned   metric.Int64Counter
	bytesScanned   metric.Int64Counter
	detectDuration metric.Float64Histogram
	cacheHits      metric.Int64Counter
	cacheMisses    metric.Int64Counter
}

// AggregateStats holds the statistics for a single aggregator walk or
// refresh, decoupled from the aggregate package's own types.
type AggregateStats struct {
	Files           int64
	Bytes           int64
	DetectDurations []time.Duration
	BlobCacheHits   int64
	BlobCacheMisses int64
}

// NewAggregateMetrics creates aggregate metric instruments from the given meter.
func NewAggregateMetrics(mt metric.Meter) (*AggregateMetrics, error) {
	files, err := mt.Int64Counter(metricFilesScannedTotal,
		metric.WithDescription("Total files classified by the detection pipeline"),
		metric.WithUnit("{file}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricFilesScannedTotal, err)
	}

	bytes, err := mt.Int64Counter(metricBytesScannedTotal,
		metric.WithDescription("Total bytes attributed to a detected language"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricBytesScannedTotal, err)
	}

	detectDur, err := mt.Float64Histogram(metricDetectDuration,
		metric.WithDescription("Per-file detection pipeline duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricDetectDuration, err)
	}

	hits, err := mt.Int64Counter(metricCacheHitsTotal,
		metric.WithDescription("Blob cache hits by source"),
		metric.WithUnit("{hit}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricCacheHitsTotal, err)
	}

	misses, err := mt.Int64Counter(metricCacheMissesTotal,
		metric.WithDescription("Blob cache misses by source"),
		metric.WithUnit("{miss}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricCacheMissesTotal, err)
	}

	return &AggregateMetrics{
		filesScanned:   files,
		bytesScanned:   bytes,
		detectDuration: detectDur,
		cacheHits:      hits,
		cacheMisses:    misses,
	}, nil
}

// RecordRun records aggregator statistics for a completed walk or refresh.
// Safe to call on a nil receiver (no-op), so callers can wire it
// unconditionally even when metrics are disabled.
func (am *AggregateMetrics) RecordRun(ctx context.Context, stats AggregateStats) {
	if am == nil {
		return
	}

	am.filesScanned.Add(ctx, stats.Files)
	am.bytesScanned.Add(ctx, stats.Bytes)

	for _, d := range stats.DetectDurations {
		am.detectDuration.Record(ctx, d.Seconds())
	}

	blobAttrs := metric.WithAttributes(attribute.String(attrCache, "blob"))
	am.cacheHits.Add(ctx, stats.BlobCacheHits, blobAttrs)
	am.cacheMisses.Add(ctx, stats.BlobCacheMisses, blobAttrs)
}
