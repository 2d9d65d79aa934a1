package tools

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	trackingcfg "github.com/abureyko/shipping-agent/internal/config/tracking"
	"github.com/abureyko/shipping-agent/internal/schema"
	"github.com/abureyko/shipping-agent/internal/tracking"
)

var fixedNow = time.Date(2026, 3, 30, 23, 30, 0, 0, time.FixedZone("MSK", 3*60*60))

func fixedClock() time.Time { return fixedNow }

func newEstimateTool(tracker Tracker, fallback bool) *EstimateDeliveryTool {
	cfg := trackingcfg.DefaultTrackingConfig()
	cfg.CarrierTransitDays = map[string]int{"cdek": 3}
	return NewEstimateDeliveryTool(tracker, EstimateOptions{
		SourceName:         "gdeposylka.ru",
		DefaultTransitDays: 5,
		Transit:            cfg,
		FallbackOnError:    fallback,
		Now:                fixedClock,
	})
}

func TestHeuristicETA_UsesUTCDate(t *testing.T) {
	// 23:30 MSK is 20:30 UTC on the same day.
	assert.Equal(t, "2026-04-04", HeuristicETA(fixedNow, 5))
	assert.Equal(t, "2026-03-30", HeuristicETA(fixedNow, 0))
}

func TestEstimate_DemoHeuristic(t *testing.T) {
	tool := newEstimateTool(&fakeTracker{}, true)
	rep := &recordingReporter{}

	res, err := tool.Execute(WithReporter(context.Background(), rep), map[string]any{"tracking_number": "555555555"})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"trackingNumber":    "555555555",
		"estimatedDelivery": "2026-04-04",
		"method":            "heuristic",
		"defaultDays":       5,
	}, res.StructuredContent)
	assert.Equal(t, map[string]any{"demo": true}, res.Meta)
	assert.Equal(t, "Estimated delivery date (demo): 2026-04-04 (± 2 days).", res.Text())
	assert.Equal(t, []float64{0, 100}, rep.progress)
}

func TestEstimate_DemoWithRealClock(t *testing.T) {
	tool := NewEstimateDeliveryTool(&fakeTracker{}, EstimateOptions{DefaultTransitDays: 5})
	res, err := tool.Execute(context.Background(), map[string]any{"tracking_number": "555555555"})
	require.NoError(t, err)

	want := time.Now().UTC().AddDate(0, 0, 5).Format("2006-01-02")
	assert.Equal(t, want, res.StructuredContent["estimatedDelivery"])
	assert.Equal(t, "heuristic", res.StructuredContent["method"])
}

func TestEstimate_LiveWithETA(t *testing.T) {
	tracker := &fakeTracker{live: true, rec: tracking.TrackingRecord{
		TrackingNumber: "123456789", Carrier: "dhl", Status: "in_transit", ETA: "2026-04-02", Source: tracking.SourceLiveAPI,
	}}
	res, err := newEstimateTool(tracker, true).Execute(context.Background(), map[string]any{"tracking_number": "123456789"})
	require.NoError(t, err)

	assert.Equal(t, "Estimated delivery date: 2026-04-02.", res.Text())
	assert.Equal(t, "api", res.StructuredContent["method"])
	assert.Equal(t, map[string]any{"apiUsed": "gdeposylka.ru"}, res.Meta)
}

func TestEstimate_LiveWithoutETA_UsesCarrierOverride(t *testing.T) {
	tracker := &fakeTracker{live: true, rec: tracking.TrackingRecord{
		TrackingNumber: "123456789", Carrier: "cdek", Status: "in_transit", Source: tracking.SourceLiveAPI,
	}}
	res, err := newEstimateTool(tracker, true).Execute(context.Background(), map[string]any{"tracking_number": "123456789"})
	require.NoError(t, err)

	assert.Equal(t, "2026-04-02", res.StructuredContent["estimatedDelivery"])
	assert.Equal(t, 3, res.StructuredContent["defaultDays"])
	assert.Equal(t, "cdek", res.StructuredContent["carrier"])
	assert.Equal(t, map[string]any{"apiUsed": "gdeposylka.ru", "heuristic": true}, res.Meta)
	assert.Equal(t, "Estimated delivery date: 2026-04-02.", res.Text())
}

func TestEstimate_LiveWithoutETA_UnknownCarrierUsesDefault(t *testing.T) {
	tracker := &fakeTracker{live: true, rec: tracking.TrackingRecord{
		TrackingNumber: "123456789", Carrier: tracking.UnknownCarrier, Status: "unknown", Source: tracking.SourceLiveAPI,
	}}
	res, err := newEstimateTool(tracker, true).Execute(context.Background(), map[string]any{"tracking_number": "123456789"})
	require.NoError(t, err)

	assert.Equal(t, 5, res.StructuredContent["defaultDays"])
	assert.NotContains(t, res.StructuredContent, "carrier")
}

func TestEstimate_UpstreamFailure(t *testing.T) {
	upstream := &tracking.UpstreamError{Message: "request timed out"}

	t.Run("fallback", func(t *testing.T) {
		rep := &recordingReporter{}
		res, err := newEstimateTool(&fakeTracker{live: true, err: upstream}, true).
			Execute(WithReporter(context.Background(), rep), map[string]any{"tracking_number": "123456789"})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"demo": true, "fallback": true}, res.Meta)
		assert.Equal(t, "heuristic", res.StructuredContent["method"])
		assert.Equal(t, []string{"error", "warning"}, rep.levels())
		assert.Equal(t, []float64{0, 100}, rep.progress)
	})

	t.Run("propagate", func(t *testing.T) {
		rep := &recordingReporter{}
		res, err := newEstimateTool(&fakeTracker{live: true, err: upstream}, false).
			Execute(WithReporter(context.Background(), rep), map[string]any{"tracking_number": "123456789"})
		require.Error(t, err)
		assert.Nil(t, res)
		assert.Equal(t, schema.CodeUpstreamFailure, schema.AsToolError(err).Code)
		assert.Equal(t, []float64{0}, rep.progress)
	})
}
