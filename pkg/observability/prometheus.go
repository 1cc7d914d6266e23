package observability

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

// promReadTimeout bounds how long the scrape endpoint waits for request
// headers.
const promReadTimeout = 10 * time.Second

// newPrometheusMeterProvider builds a pull-based meter provider whose
// metrics are scraped from an HTTP endpoint instead of pushed over OTLP.
// Used in library mode, where a lingua-embedding host runs long enough to
// be scraped; one-shot CLI runs push or stay silent.
func newPrometheusMeterProvider(cfg Config, res *resource.Resource) (*sdkmetric.MeterProvider, shutdownFunc, error) {
	registry := prometheus.NewRegistry()

	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return nil, nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithResource(res),
	)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:              cfg.PrometheusAddr,
		Handler:           mux,
		ReadHeaderTimeout: promReadTimeout,
	}

	go func() {
		if serveErr := server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			newLogger(cfg).Error("prometheus scrape endpoint failed", "addr", cfg.PrometheusAddr, "error", serveErr)
		}
	}()

	shutdown := func(ctx context.Context) error {
		return errors.Join(server.Shutdown(ctx), mp.Shutdown(ctx))
	}

	return mp, shutdown, nil
}
