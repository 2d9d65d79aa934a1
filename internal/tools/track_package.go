package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abureyko/shipping-agent/internal/schema"
	"github.com/abureyko/shipping-agent/internal/tracking"
)

// TrackPackageTool reports the current status of a parcel. Without a tracking
// credential it answers from demo data; upstream failures are returned as
// upstream_failure errors rather than replaced by demo data.
type TrackPackageTool struct {
	tracker    Tracker
	sourceName string
}

func NewTrackPackageTool(tracker Tracker, sourceName string) *TrackPackageTool {
	return &TrackPackageTool{tracker: tracker, sourceName: sourceName}
}

func (t *TrackPackageTool) Name() string { return string(ToolTrackPackage) }

func (t *TrackPackageTool) Description() string {
	return "Get the current status, last scan event and ETA of a parcel by tracking number."
}

func (t *TrackPackageTool) Parameters() json.RawMessage {
	return json.RawMessage(trackingParamsSchema)
}

func (t *TrackPackageTool) Execute(ctx context.Context, params map[string]any) (*schema.ToolResult, error) {
	q, err := queryFromParams(params)
	if err != nil {
		return nil, err
	}

	ctx, span := startSpan(ctx, ToolTrackPackage, q)
	defer span.End()

	rep := ReporterFrom(ctx)
	rep.Info(ctx, fmt.Sprintf("Tracking package %s", q.TrackingNumber))
	rep.Progress(ctx, 0, 100)

	rec, err := t.tracker.Track(ctx, q)
	if err != nil {
		failSpan(span, err)
		rep.Error(ctx, fmt.Sprintf("Tracking lookup for %s failed: %v", q.TrackingNumber, err))
		return nil, schema.NewToolError(schema.CodeUpstreamFailure, err.Error(), err)
	}
	rep.Progress(ctx, 50, 100)

	text := FormatTrackMessage(rec)
	result := schema.NewToolResult(text, rec.ToMap(), t.meta(rec))

	rep.Progress(ctx, 100, 100)
	return result, nil
}

func (t *TrackPackageTool) meta(rec tracking.TrackingRecord) map[string]any {
	if rec.IsDemo() {
		return map[string]any{"demo": true}
	}
	return map[string]any{"apiUsed": t.sourceName}
}

// FormatTrackMessage renders the one-line status sentence. Every templated
// field is always present; a missing ETA renders as an empty string.
func FormatTrackMessage(rec tracking.TrackingRecord) string {
	return fmt.Sprintf("Package %s (%s): %s. ETA: %s", rec.TrackingNumber, rec.Carrier, rec.Status, rec.ETA)
}
