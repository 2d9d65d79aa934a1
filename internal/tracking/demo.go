package tracking

// Fixed values returned in demo mode.
const (
	DemoStatus        = "in_transit"
	DemoETA           = "2025-12-12"
	demoEventStatus   = "Arrived at sorting center"
	demoEventLocation = "Moscow"
	demoEventTime     = "2025-12-09T10:23:00+03:00"
)

// ProvideDemoRecord returns deterministic mock tracking data. It performs no
// I/O and never fails.
func ProvideDemoRecord(trackingNumber, carrier string) TrackingRecord {
	if carrier == "" {
		carrier = DemoCarrier
	}
	return TrackingRecord{
		TrackingNumber: trackingNumber,
		Carrier:        carrier,
		Status:         DemoStatus,
		LastEvent: &LastEvent{
			Status:    demoEventStatus,
			Location:  demoEventLocation,
			Timestamp: demoEventTime,
		},
		ETA:    DemoETA,
		Source: SourceDemo,
	}
}
