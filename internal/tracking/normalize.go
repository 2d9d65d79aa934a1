package tracking

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/abureyko/shipping-agent/internal/shared/stringutils"
)

// Upstream field names are not stable, so every field accepts several keys.
var (
	statusKeys         = []string{"status", "tracking_status"}
	etaKeys            = []string{"eta", "estimated_delivery", "estimatedDelivery"}
	lastEventKeys      = []string{"last_event", "last_update"}
	eventTimestampKeys = []string{"timestamp", "datetime", "date", "time"}
)

// NormalizeRecord maps a raw upstream payload onto a TrackingRecord.
func NormalizeRecord(raw []byte, q TrackingQuery) (TrackingRecord, error) {
	data, err := decodeObject(raw)
	if err != nil {
		return TrackingRecord{}, &UpstreamError{Message: "malformed response body", Err: err}
	}
	if data == nil {
		return TrackingRecord{}, &UpstreamError{Message: "empty response body"}
	}
	// Some APIs nest the payload under "data".
	if inner, ok := data["data"].(map[string]any); ok && firstString(data, statusKeys...) == "" {
		data = inner
	}

	rec := TrackingRecord{
		TrackingNumber: stringutils.StringOrDefault(firstString(data, "tracking_number", "trackingNumber", "number"), q.TrackingNumber),
		Carrier:        stringutils.StringOrDefault(firstString(data, "carrier", "courier"), stringutils.StringOrDefault(q.Carrier, UnknownCarrier)),
		Status:         stringutils.StringOrDefault(firstString(data, statusKeys...), UnknownStatus),
		ETA:            firstString(data, etaKeys...),
		Source:         SourceLiveAPI,
	}

	for _, k := range lastEventKeys {
		if ev := toLastEvent(data[k]); ev != nil {
			rec.LastEvent = ev
			break
		}
	}
	return rec, nil
}

func toLastEvent(v any) *LastEvent {
	switch ev := v.(type) {
	case map[string]any:
		out := &LastEvent{
			Status:    firstString(ev, "status", "description", "text"),
			Location:  firstString(ev, "location", "city"),
			Timestamp: firstString(ev, eventTimestampKeys...),
		}
		if *out == (LastEvent{}) {
			return nil
		}
		return out
	case string:
		if strings.TrimSpace(ev) == "" {
			return nil
		}
		return &LastEvent{Status: ev}
	}
	return nil
}

// decodeObject decodes a JSON object keeping numbers as json.Number, so
// long numeric tracking numbers keep every digit.
func decodeObject(raw []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var data map[string]any
	if err := dec.Decode(&data); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON object")
	}
	return data, nil
}

// firstString returns the first non-empty value under keys. Numbers are
// rendered with the digits the upstream sent.
func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		switch v := m[k].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case json.Number:
			return v.String()
		}
	}
	return ""
}
