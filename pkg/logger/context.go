package logger

import (
	"context"
	"log/slog"
)

type runIDKey struct{}

// WithRunID stores the batch run identifier in ctx.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

// RunIDFromContext returns the run identifier stored by WithRunID.
func RunIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(runIDKey{}).(string)
	return id, ok && id != ""
}

// RunIDExtractor returns a ContextExtractor that adds run_id to every record
// logged with a context carrying one.
func RunIDExtractor() ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := RunIDFromContext(ctx); ok {
			return RunID(id), true
		}
		return slog.Attr{}, false
	}
}
