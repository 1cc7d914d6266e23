package observability_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codefang-tech/lingua/pkg/observability"
)

func TestInitWithPrometheusMetrics(t *testing.T) {
	cfg := observability.DefaultConfig()
	cfg.Mode = observability.ModeLibrary
	cfg.PrometheusAddr = "127.0.0.1:0"

	providers, err := observability.Init(cfg)
	require.NoError(t, err)

	counter, err := providers.Meter.Int64Counter("lingua.aggregate.files_scanned.total")
	require.NoError(t, err)
	counter.Add(context.Background(), 2)

	require.NoError(t, providers.Shutdown(context.Background()))
}
