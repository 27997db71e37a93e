package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace"
)

func TestTraceIDEmptyWithoutSpan(t *testing.T) {
	assert.Equal(t, "", TraceID(context.Background()))
}

func TestTraceIDFromActiveSpanContext(t *testing.T) {
	traceID := trace.TraceID{0x01, 0x02, 0x03, 0x04}
	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  trace.SpanID{0x0a},
	})
	ctx := trace.ContextWithSpanContext(context.Background(), spanCtx)

	assert.Equal(t, traceID.String(), TraceID(ctx))
}
