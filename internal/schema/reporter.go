package schema

import "context"

// Reporter is the optional per-call capability a tool host offers: diagnostic
// events and a numeric progress signal. Tools must tolerate its absence; use
// NopReporter when a host provides nothing.
type Reporter interface {
	Info(ctx context.Context, msg string)
	Warning(ctx context.Context, msg string)
	Error(ctx context.Context, msg string)
	Progress(ctx context.Context, progress, total float64)
}

// NopReporter discards every event.
type NopReporter struct{}

func (NopReporter) Info(context.Context, string)               {}
func (NopReporter) Warning(context.Context, string)            {}
func (NopReporter) Error(context.Context, string)              {}
func (NopReporter) Progress(context.Context, float64, float64) {}

var _ Reporter = NopReporter{}
