package utils

import "context"

// TraceIDKey is the gin context key the trace middleware stores the id under.
const TraceIDKey = "trace_id"

type traceIDCtxKey struct{}

func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDCtxKey{}, traceID)
}

// TraceIDFromContext returns "" when the request did not pass through the
// trace middleware.
func TraceIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(traceIDCtxKey{}).(string)
	return id
}
