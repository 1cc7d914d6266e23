// Package observability provides OpenTelemetry-based tracing, metrics, and
// structured logging for lingua's CLI and library entry points.
package observability

import "log/slog"

// AppMode identifies the application execution mode.
type AppMode string

const (
	// ModeCLI is the CLI command execution mode.
	ModeCLI AppMode = "cli"
	// ModeLibrary is the in-process library mode, used when lingua's
	// aggregator is embedded in a host process rather than run as a binary.
	ModeLibrary AppMode = "library"
)

const (
	// defaultServiceName is the default OTel service name.
	defaultServiceName = "lingua"

	// defaultShutdownTimeoutSec is the default shutdown timeout in seconds.
	defaultShutdownTimeoutSec = 5
)

// Config holds all observability configuration.
type Config struct {
	// ServiceName is the OTel resource service name.
	ServiceName string

	// ServiceVersion is the semantic version of the running binary.
	ServiceVersion string

	// Environment is the deployment environment (e.g. "production", "staging", "dev").
	Environment string

	// Mode identifies how the binary was launched.
	Mode AppMode

	// OTLPEndpoint is the OTLP gRPC collector address (e.g. "localhost:4317").
	// Empty disables export; providers become no-op.
	OTLPEndpoint string

	// OTLPHeaders are additional gRPC metadata headers for the OTLP exporter.
	OTLPHeaders map[string]string

	// OTLPInsecure disables TLS for the OTLP gRPC connection.
	OTLPInsecure bool

	// PrometheusAddr, when non-empty, serves pull-based metrics on this
	// address at /metrics instead of pushing them over OTLP. Intended for
	// library mode, where the embedding host lives long enough to be
	// scraped. Takes precedence over OTLPEndpoint for metrics; traces
	// still follow OTLPEndpoint.
	PrometheusAddr string

	// SampleRatio is the trace sampling ratio in (0, 1). Zero or one keeps
	// every root span, the right default for short-lived aggregation runs.
	SampleRatio float64

	// LogLevel controls the minimum slog severity.
	LogLevel slog.Level

	// LogJSON enables JSON-formatted log output.
	LogJSON bool

	// ShutdownTimeoutSec is the maximum seconds to wait for flush on shutdown.
	ShutdownTimeoutSec int
}

// DefaultConfig returns a Config with sensible defaults for zero-config startup.
func DefaultConfig() Config {
	return Config{
		ServiceName:        defaultServiceName,
		Mode:               ModeCLI,
		LogLevel:           slog.LevelInfo,
		ShutdownTimeoutSec: defaultShutdownTimeoutSec,
	}
}
