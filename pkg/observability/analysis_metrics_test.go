package observability_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/codefang-tech/lingua/pkg/observability"
)

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]metricdata.Metrics{}

	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			out[m.Name] = m
		}
	}

	return out
}

func counterValue(t *testing.T, m metricdata.Metrics) int64 {
	t.Helper()

	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok)

	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}

	return total
}

func TestAggregateMetricsRecordRun(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("lingua")

	metrics, err := observability.NewAggregateMetrics(meter)
	require.NoError(t, err)

	metrics.RecordRun(context.Background(), observability.AggregateStats{
		Files:           3,
		Bytes:           120,
		DetectDurations: []time.Duration{time.Millisecond, 2 * time.Millisecond},
		BlobCacheHits:   5,
		BlobCacheMisses: 1,
	})

	collected := collectMetrics(t, reader)

	files, ok := collected["lingua.aggregate.files_scanned.total"]
	require.True(t, ok)
	assert.Equal(t, int64(3), counterValue(t, files))

	bytes, ok := collected["lingua.aggregate.bytes_scanned.total"]
	require.True(t, ok)
	assert.Equal(t, int64(120), counterValue(t, bytes))

	hits, ok := collected["lingua.aggregate.cache.hits.total"]
	require.True(t, ok)
	assert.Equal(t, int64(5), counterValue(t, hits))

	duration, ok := collected["lingua.detect.duration.seconds"]
	require.True(t, ok)

	hist, isHist := duration.Data.(metricdata.Histogram[float64])
	require.True(t, isHist)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(2), hist.DataPoints[0].Count)
}

func TestAggregateMetricsNilReceiverIsNoop(t *testing.T) {
	var metrics *observability.AggregateMetrics

	assert.NotPanics(t, func() {
		metrics.RecordRun(context.Background(), observability.AggregateStats{Files: 1})
	})
}
