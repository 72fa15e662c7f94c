package ctxutil

import "context"

type traceDataKey struct{}

// TraceData rides the request context. UserID is the caller-supplied id from
// the request, when one was present; the logger hashes it on output.
type TraceData struct {
	TraceID   string
	RequestID string
	UserID    string
}

func WithTraceData(ctx context.Context, td *TraceData) context.Context {
	return context.WithValue(ctx, traceDataKey{}, td)
}

func GetTraceData(ctx context.Context) *TraceData {
	td, _ := ctx.Value(traceDataKey{}).(*TraceData)
	return td
}
