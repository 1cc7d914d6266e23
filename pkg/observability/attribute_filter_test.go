package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func endedSpan(t *testing.T, attrs ...attribute.KeyValue) sdktrace.ReadOnlySpan {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := tp.Tracer("test").Start(context.Background(), "aggregate.walk")
	span.SetAttributes(attrs...)
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)

	return ended[0]
}

func TestAttributeFilterKeepsAllowedKeys(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	filter := NewAttributeFilter(recorder, nil)

	filter.OnEnd(endedSpan(t,
		attribute.String("lingua.strategy", "extension"),
		attribute.Int("aggregate.files", 3),
		attribute.String("language", "Go"),
	))

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Len(t, ended[0].Attributes(), 3)
}

func TestAttributeFilterStripsUnknownKeys(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	filter := NewAttributeFilter(recorder, nil)

	filter.OnEnd(endedSpan(t,
		attribute.String("lingua.strategy", "shebang"),
		attribute.String("user.home", "/home/someone"),
		attribute.String("request.body", "raw"),
	))

	ended := recorder.Ended()
	require.Len(t, ended, 1)

	attrs := ended[0].Attributes()
	require.Len(t, attrs, 1)
	assert.Equal(t, "lingua.strategy", string(attrs[0].Key))
}

func TestAttributeFilterFlushAndShutdown(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	filter := NewAttributeFilter(recorder, nil)

	require.NoError(t, filter.ForceFlush(context.Background()))
	require.NoError(t, filter.Shutdown(context.Background()))
}
