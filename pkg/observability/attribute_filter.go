package observability

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// allowedPrefixes lists the attribute namespaces lingua's own spans use.
// Anything else is assumed to be either an accident or high-cardinality
// payload (full file paths, raw content) and is stripped before export.
var allowedPrefixes = []string{
	"lingua.",
	"error",
	"detect.",
	"aggregate.",
	"strategy.",
	"language",
	"cache",
	"op",
	"status",
	"hits",
	"misses",
}

// attributeFilter is a SpanProcessor wrapper that enforces the span
// attribute allow-list on the way to a delegate exporter.
type attributeFilter struct {
	delegate sdktrace.SpanProcessor
	logger   *slog.Logger
}

// NewAttributeFilter wraps delegate so only allow-listed span attributes
// reach the exporter. When logger is non-nil, each stripped key is logged
// once per span, which is intended for debugging instrumentation.
func NewAttributeFilter(delegate sdktrace.SpanProcessor, logger *slog.Logger) sdktrace.SpanProcessor {
	return &attributeFilter{delegate: delegate, logger: logger}
}

// OnStart delegates unchanged; filtering happens once at span end.
func (f *attributeFilter) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {
	f.delegate.OnStart(parent, s)
}

// OnEnd hands the delegate a view of the span whose attributes are
// filtered; a ReadOnlySpan cannot be mutated in place.
func (f *attributeFilter) OnEnd(s sdktrace.ReadOnlySpan) {
	f.delegate.OnEnd(&filteredSpan{ReadOnlySpan: s, filter: f})
}

// Shutdown delegates to the wrapped processor.
func (f *attributeFilter) Shutdown(ctx context.Context) error {
	if err := f.delegate.Shutdown(ctx); err != nil {
		return fmt.Errorf("attribute filter shutdown: %w", err)
	}

	return nil
}

// ForceFlush delegates to the wrapped processor.
func (f *attributeFilter) ForceFlush(ctx context.Context) error {
	if err := f.delegate.ForceFlush(ctx); err != nil {
		return fmt.Errorf("attribute filter flush: %w", err)
	}

	return nil
}

func (f *attributeFilter) allowed(key string) bool {
	for _, prefix := range allowedPrefixes {
		if key == prefix || strings.HasPrefix(key, prefix) {
			return true
		}
	}

	if f.logger != nil {
		f.logger.Warn("span attribute stripped", "key", key)
	}

	return false
}

// filteredSpan overrides Attributes to return only allow-listed keys.
type filteredSpan struct {
	sdktrace.ReadOnlySpan

	filter *attributeFilter
}

// Attributes returns the span's allow-listed attributes.
func (s *filteredSpan) Attributes() []attribute.KeyValue {
	orig := s.ReadOnlySpan.Attributes()
	kept := make([]attribute.KeyValue, 0, len(orig))

	for _, kv := range orig {
		if s.filter.allowed(string(kv.Key)) {
			kept = append(kept, kv)
		}
	}

	return kept
}
