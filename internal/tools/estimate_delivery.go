package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/abureyko/shipping-agent/internal/schema"
	"github.com/abureyko/shipping-agent/internal/tracking"
)

const (
	MethodHeuristic = "heuristic"
	MethodAPI       = "api"
)

// TransitPolicy supplies transit-day estimates for the heuristic.
type TransitPolicy interface {
	TransitDaysFor(carrier string) int
}

// EstimateOptions configures EstimateDeliveryTool.
type EstimateOptions struct {
	SourceName         string
	DefaultTransitDays int
	Transit            TransitPolicy // optional per-carrier overrides
	FallbackOnError    bool
	Now                func() time.Time // defaults to time.Now
}

// EstimateDeliveryTool predicts a delivery date. It prefers an upstream ETA
// and otherwise adds a transit-day count to today's date (UTC).
type EstimateDeliveryTool struct {
	tracker Tracker
	opts    EstimateOptions
}

func NewEstimateDeliveryTool(tracker Tracker, opts EstimateOptions) *EstimateDeliveryTool {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &EstimateDeliveryTool{tracker: tracker, opts: opts}
}

func (t *EstimateDeliveryTool) Name() string { return string(ToolEstimateDeliveryTime) }

func (t *EstimateDeliveryTool) Description() string {
	return "Estimate the delivery date of a parcel by tracking number."
}

func (t *EstimateDeliveryTool) Parameters() json.RawMessage {
	return json.RawMessage(trackingParamsSchema)
}

func (t *EstimateDeliveryTool) Execute(ctx context.Context, params map[string]any) (*schema.ToolResult, error) {
	q, err := queryFromParams(params)
	if err != nil {
		return nil, err
	}

	ctx, span := startSpan(ctx, ToolEstimateDeliveryTime, q)
	defer span.End()

	rep := ReporterFrom(ctx)
	rep.Progress(ctx, 0, 100)

	if !t.tracker.Live() {
		rep.Info(ctx, "No tracking credential configured, using heuristic estimate")
		return t.done(ctx, t.heuristic(q, t.opts.DefaultTransitDays, true, map[string]any{"demo": true})), nil
	}

	est, err := t.tracker.EstimateDelivery(ctx, q)
	if err != nil {
		failSpan(span, err)
		rep.Error(ctx, fmt.Sprintf("Delivery estimate for %s failed: %v", q.TrackingNumber, err))
		if !t.opts.FallbackOnError {
			return nil, schema.NewToolError(schema.CodeUpstreamFailure, err.Error(), err)
		}
		rep.Warning(ctx, "Falling back to heuristic estimate")
		return t.done(ctx, t.heuristic(q, t.opts.DefaultTransitDays, true, map[string]any{"demo": true, "fallback": true})), nil
	}
	rep.Progress(ctx, 50, 100)

	if est.ETA != "" {
		structured := map[string]any{
			"trackingNumber":    est.TrackingNumber,
			"carrier":           est.Carrier,
			"estimatedDelivery": est.ETA,
			"method":            MethodAPI,
		}
		text := fmt.Sprintf("Estimated delivery date: %s.", est.ETA)
		return t.done(ctx, schema.NewToolResult(text, structured, map[string]any{"apiUsed": t.opts.SourceName})), nil
	}

	carrier := q.Carrier
	if carrier == "" && est.Carrier != tracking.UnknownCarrier {
		carrier = est.Carrier
	}
	q.Carrier = carrier
	return t.done(ctx, t.heuristic(q, t.transitDays(carrier), false,
		map[string]any{"apiUsed": t.opts.SourceName, "heuristic": true})), nil
}

// done reports completion for a successful result.
func (t *EstimateDeliveryTool) done(ctx context.Context, res *schema.ToolResult) *schema.ToolResult {
	ReporterFrom(ctx).Progress(ctx, 100, 100)
	return res
}

func (t *EstimateDeliveryTool) transitDays(carrier string) int {
	if t.opts.Transit == nil || carrier == "" {
		return t.opts.DefaultTransitDays
	}
	return t.opts.Transit.TransitDaysFor(carrier)
}

// heuristic builds a result dated today (UTC) plus days. The demo variant
// adds an uncertainty qualifier to the message.
func (t *EstimateDeliveryTool) heuristic(q tracking.TrackingQuery, days int, demo bool, meta map[string]any) *schema.ToolResult {
	eta := HeuristicETA(t.opts.Now(), days)
	structured := map[string]any{
		"trackingNumber":    q.TrackingNumber,
		"estimatedDelivery": eta,
		"method":            MethodHeuristic,
		"defaultDays":       days,
	}
	if q.Carrier != "" {
		structured["carrier"] = q.Carrier
	}

	text := fmt.Sprintf("Estimated delivery date: %s.", eta)
	if demo {
		text = fmt.Sprintf("Estimated delivery date (demo): %s (± 2 days).", eta)
	}
	return schema.NewToolResult(text, structured, meta)
}

// HeuristicETA returns the ISO-8601 date days after now, in UTC.
func HeuristicETA(now time.Time, days int) string {
	return now.UTC().AddDate(0, 0, days).Format(time.DateOnly)
}
