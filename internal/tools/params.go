package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/abureyko/shipping-agent/internal/schema"
	"github.com/abureyko/shipping-agent/internal/tracking"
)

const (
	paramTrackingNumber = "tracking_number"
	paramCarrier        = "carrier"
)

// trackingParamsSchema is shared by the tracking-number tools.
const trackingParamsSchema = `{
	"type": "object",
	"properties": {
		"tracking_number": {
			"type": "string",
			"description": "Parcel tracking number"
		},
		"carrier": {
			"type": "string",
			"description": "Optional carrier code, e.g. cdek or dhl"
		}
	},
	"required": ["tracking_number"]
}`

var tracer = otel.Tracer("github.com/abureyko/shipping-agent/internal/tools")

// Tracker resolves tracking records and delivery estimates.
// *tracking.Client implements it.
type Tracker interface {
	Track(ctx context.Context, q tracking.TrackingQuery) (tracking.TrackingRecord, error)
	EstimateDelivery(ctx context.Context, q tracking.TrackingQuery) (tracking.DeliveryEstimate, error)
	Live() bool
}

// maxExactInteger is the largest integer a float64 argument carries exactly.
const maxExactInteger = 1 << 53

// stringParam reads params[key] as a string. Numbers are accepted only when
// they hold an exact integer, so a decoded tracking number is never altered.
func stringParam(params map[string]any, key string) (string, error) {
	switch v := params[key].(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case float64:
		if v != math.Trunc(v) || math.Abs(v) > maxExactInteger {
			return "", schema.NewToolError(schema.CodeInvalidParams,
				fmt.Sprintf("%s must be passed as a string: %v is not an exact integer", key, v), nil)
		}
		return strconv.FormatInt(int64(v), 10), nil
	default:
		return fmt.Sprint(v), nil
	}
}

// queryFromParams reads tracking_number and carrier. The tracking number is
// opaque and passed through unchanged; only an empty one is an
// invalid_params error.
func queryFromParams(params map[string]any) (tracking.TrackingQuery, error) {
	number, err := stringParam(params, paramTrackingNumber)
	if err != nil {
		return tracking.TrackingQuery{}, err
	}
	carrier, err := stringParam(params, paramCarrier)
	if err != nil {
		return tracking.TrackingQuery{}, err
	}
	q := tracking.TrackingQuery{
		TrackingNumber: number,
		Carrier:        strings.TrimSpace(carrier),
	}
	if q.TrackingNumber == "" {
		return q, schema.NewToolError(schema.CodeInvalidParams, "tracking_number is required", nil)
	}
	return q, nil
}

func startSpan(ctx context.Context, tool ToolName, q tracking.TrackingQuery) (context.Context, trace.Span) {
	return tracer.Start(ctx, "tool."+string(tool), trace.WithAttributes(
		attribute.String("tracking_number", q.TrackingNumber),
		attribute.String("carrier", q.Carrier),
	))
}

func failSpan(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
