package tracking

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// TrackingConfig configures the tracking client and the tool operations.
type TrackingConfig struct {
	APIKey                  string         `json:"apiKey"`
	BaseURL                 string         `json:"baseUrl"`
	PathTemplate            string         `json:"pathTemplate"`
	SourceName              string         `json:"sourceName"`
	Timeout                 float64        `json:"timeout"` // seconds
	DefaultTransitDays      int            `json:"defaultTransitDays"`
	CarrierTransitDays      map[string]int `json:"carrierTransitDays"`
	SupportedCarriers       []string       `json:"supportedCarriers"`
	EstimateFallbackOnError bool           `json:"estimateFallbackOnError"`
	WatchSchedule           string         `json:"watchSchedule"`
}

func DefaultTrackingConfig() TrackingConfig {
	return TrackingConfig{
		BaseURL:                 "https://gdeposylka.ru",
		PathTemplate:            "/track/{number}",
		SourceName:              "gdeposylka.ru",
		Timeout:                 20,
		DefaultTransitDays:      5,
		CarrierTransitDays:      map[string]int{},
		SupportedCarriers:       []string{"cdek", "russian-post", "dhl", "ups", "fedex"},
		EstimateFallbackOnError: true,
		WatchSchedule:           "@every 10m",
	}
}

// Live reports whether a tracking API credential is configured.
func (c TrackingConfig) Live() bool { return c.APIKey != "" }

// TimeoutDuration converts the configured timeout to a time.Duration.
func (c TrackingConfig) TimeoutDuration() time.Duration {
	if c.Timeout <= 0 {
		return 20 * time.Second
	}
	return time.Duration(c.Timeout * float64(time.Second))
}

// TransitDaysFor returns the per-carrier override when one exists, else the
// global default.
func (c TrackingConfig) TransitDaysFor(carrier string) int {
	if days, ok := c.CarrierTransitDays[strings.ToLower(strings.TrimSpace(carrier))]; ok && carrier != "" {
		return days
	}
	return c.DefaultTransitDays
}

// ParseTransitDays parses a per-carrier transit-days mapping literal such as
// `{"cdek": 3, 'dhl': 7}` or `cdek: 3`. The string is decoded as YAML data,
// which also covers JSON and single-quoted keys. Keys are lower-cased.
func ParseTransitDays(raw string) (map[string]int, error) {
	out := map[string]int{}
	if strings.TrimSpace(raw) == "" {
		return out, nil
	}
	var parsed map[string]int
	if err := yaml.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("parse carrier transit days %q: %w", raw, err)
	}
	for carrier, days := range parsed {
		if days < 0 {
			return nil, fmt.Errorf("carrier transit days for %q must not be negative, got %d", carrier, days)
		}
		out[strings.ToLower(strings.TrimSpace(carrier))] = days
	}
	return out, nil
}
