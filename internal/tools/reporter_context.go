package tools

import (
	"context"

	"github.com/abureyko/shipping-agent/internal/schema"
)

type reporterKey struct{}

// WithReporter returns a child context that carries r. The tool host sets it
// once per call; tools read it inside Execute.
func WithReporter(ctx context.Context, r schema.Reporter) context.Context {
	return context.WithValue(ctx, reporterKey{}, r)
}

// ReporterFrom extracts the Reporter from ctx.
// Returns a NopReporter if none was set.
func ReporterFrom(ctx context.Context) schema.Reporter {
	if r, ok := ctx.Value(reporterKey{}).(schema.Reporter); ok && r != nil {
		return r
	}
	return schema.NopReporter{}
}
