// Package tracking resolves shipment status either from deterministic demo data
// or from a live tracking API, normalising both into a TrackingRecord.
package tracking

// Provenance tags carried in TrackingRecord.Source.
const (
	SourceDemo    = "demo"
	SourceLiveAPI = "live-api"
)

const (
	// DemoCarrier is the carrier reported by demo records when none is given.
	DemoCarrier = "demo-carrier"
	// UnknownCarrier is used for live records whose carrier is not known.
	UnknownCarrier = "unknown"
	// UnknownStatus replaces an empty upstream status.
	UnknownStatus = "unknown"
)

// TrackingQuery is the input to a tracking lookup.
type TrackingQuery struct {
	TrackingNumber string
	Carrier        string // optional
}

// LastEvent describes the most recent scan of a shipment.
type LastEvent struct {
	Status    string `json:"status"`
	Location  string `json:"location"`
	Timestamp string `json:"timestamp"`
}

// TrackingRecord is the normalised result of a lookup. TrackingNumber and
// Status are always set; LastEvent and ETA are independently optional.
type TrackingRecord struct {
	TrackingNumber string     `json:"trackingNumber"`
	Carrier        string     `json:"carrier"`
	Status         string     `json:"status"`
	LastEvent      *LastEvent `json:"lastEvent,omitempty"`
	ETA            string     `json:"eta,omitempty"`
	Source         string     `json:"source"`
}

// DeliveryEstimate is the delivery-relevant part of a TrackingRecord.
type DeliveryEstimate struct {
	TrackingNumber string
	Carrier        string
	ETA            string // empty when the upstream reports none
}

// Estimate extracts the DeliveryEstimate of the record.
func (r TrackingRecord) Estimate() DeliveryEstimate {
	return DeliveryEstimate{TrackingNumber: r.TrackingNumber, Carrier: r.Carrier, ETA: r.ETA}
}

// IsDemo reports whether the record was synthesised rather than fetched.
func (r TrackingRecord) IsDemo() bool { return r.Source == SourceDemo }

// ToMap converts the record into the structured payload of a tool result.
// Optional fields are omitted when absent.
func (r TrackingRecord) ToMap() map[string]any {
	m := map[string]any{
		"trackingNumber": r.TrackingNumber,
		"carrier":        r.Carrier,
		"status":         r.Status,
		"source":         r.Source,
	}
	if r.LastEvent != nil {
		m["lastEvent"] = map[string]any{
			"status":    r.LastEvent.Status,
			"location":  r.LastEvent.Location,
			"timestamp": r.LastEvent.Timestamp,
		}
	}
	if r.ETA != "" {
		m["eta"] = r.ETA
	}
	return m
}
