package httpapi

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace"
)

func TestShouldTraceRequest(t *testing.T) {
	for _, path := range []string{"/healthz", "/health", "/livez", "/readyz", "/metrics", " /HEALTHZ "} {
		assert.False(t, shouldTraceRequest(path), path)
	}
	for _, path := range []string{"/v1/battles", "/v1/knights/by-url/abc-seiya", "/", "/docs"} {
		assert.True(t, shouldTraceRequest(path), path)
	}
}

func TestStartSpan_SkipsUntracedAndHelpers(t *testing.T) {
	ctx := context.Background()

	got, span := startSpan(ctx, "httpapi.Handler.GetBattle")
	assert.Equal(t, ctx, got)
	assert.False(t, span.SpanContext().IsValid())

	parent := trace.ContextWithSpanContext(ctx, trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{1},
		SpanID:     trace.SpanID{1},
		TraceFlags: trace.FlagsSampled,
	}))
	got, span = startSpan(parent, "httpapi.writeError")
	assert.Equal(t, parent, got)
	assert.False(t, span.SpanContext().IsValid())
}
