package tools

import (
	"time"

	trackingcfg "github.com/abureyko/shipping-agent/internal/config/tracking"
)

// NewTrackingRegistry builds the registry of every shipping tool from one
// tracker and the tracking configuration. now may be nil.
func NewTrackingRegistry(tracker Tracker, cfg trackingcfg.TrackingConfig, now func() time.Time) *Registry {
	return NewRegistryBuilder().
		WithTool(NewTrackPackageTool(tracker, cfg.SourceName)).
		WithTool(NewEstimateDeliveryTool(tracker, EstimateOptions{
			SourceName:         cfg.SourceName,
			DefaultTransitDays: cfg.DefaultTransitDays,
			Transit:            cfg,
			FallbackOnError:    cfg.EstimateFallbackOnError,
			Now:                now,
		})).
		WithTool(NewListCarriersTool(cfg.SupportedCarriers)).
		Build()
}
