package tracing

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// TraceID extracts the trace id from context, "" when no span is active.
// Handler logs carry it so log lines can be correlated with the active
// span.
func TraceID(ctx context.Context) string {
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
