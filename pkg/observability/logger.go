package observability

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// TracingHandler decorates an slog.Handler so every record carries the
// active span's trace_id and span_id plus the service identity, letting
// log lines from a lingua run be joined against its exported traces.
type TracingHandler struct {
	inner slog.Handler
}

// NewTracingHandler wraps inner with trace correlation. The service
// identity attributes are attached to the inner handler up front so they
// stay top-level even after WithGroup.
func NewTracingHandler(inner slog.Handler, service, env string, mode AppMode) *TracingHandler {
	identity := []slog.Attr{
		slog.String("service", service),
		slog.String("mode", string(mode)),
	}

	if env != "" {
		identity = append(identity, slog.String("env", env))
	}

	return &TracingHandler{inner: inner.WithAttrs(identity)}
}

// Enabled delegates to the inner handler.
func (h *TracingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle stamps the record with the current span context, if any, and
// delegates.
func (h *TracingHandler) Handle(ctx context.Context, record slog.Record) error {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		record.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}

	if err := h.inner.Handle(ctx, record); err != nil {
		return fmt.Errorf("tracing handler: %w", err)
	}

	return nil
}

// WithAttrs delegates to the inner handler, preserving trace correlation.
func (h *TracingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TracingHandler{inner: h.inner.WithAttrs(attrs)}
}

// WithGroup delegates to the inner handler, preserving trace correlation.
func (h *TracingHandler) WithGroup(name string) slog.Handler {
	return &TracingHandler{inner: h.inner.WithGroup(name)}
}
