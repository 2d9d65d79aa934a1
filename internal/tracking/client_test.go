package tracking

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc, opts Options) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	opts.BaseURL = srv.URL
	if opts.APIKey == "" {
		opts.APIKey = "secret"
	}
	return NewClient(opts)
}

func TestClient_NoKeyUsesDemo(t *testing.T) {
	c := NewClient(Options{})
	require.False(t, c.Live())

	rec, err := c.Track(context.Background(), TrackingQuery{TrackingNumber: "555"})
	require.NoError(t, err)
	assert.Equal(t, ProvideDemoRecord("555", ""), rec)
}

func TestClient_TrackLive(t *testing.T) {
	var gotPath, gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"tracking_number": "RA123",
			"tracking_status": "delivered",
			"estimated_delivery": "2026-01-02",
			"last_update": {"status": "Handed to recipient", "location": "Kazan", "datetime": "2026-01-02T09:00:00Z"}
		}`))
	}, Options{})

	rec, err := c.Track(context.Background(), TrackingQuery{TrackingNumber: "RA123", Carrier: "russian-post"})
	require.NoError(t, err)

	assert.Equal(t, "/track/RA123", gotPath)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "RA123", rec.TrackingNumber)
	assert.Equal(t, "russian-post", rec.Carrier)
	assert.Equal(t, "delivered", rec.Status)
	assert.Equal(t, "2026-01-02", rec.ETA)
	assert.Equal(t, SourceLiveAPI, rec.Source)
	require.NotNil(t, rec.LastEvent)
	assert.Equal(t, "Kazan", rec.LastEvent.Location)
	assert.Equal(t, "2026-01-02T09:00:00Z", rec.LastEvent.Timestamp)
}

func TestClient_PathTemplateWithCarrier(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"status":"in_transit"}`))
	}, Options{PathTemplate: "/track?carrier={carrier}&number={number}"})

	rec, err := c.Track(context.Background(), TrackingQuery{TrackingNumber: "777", Carrier: "dhl"})
	require.NoError(t, err)
	assert.Equal(t, "carrier=dhl&number=777", gotQuery)
	assert.Equal(t, "777", rec.TrackingNumber)
}

func TestClient_HTTPErrorIsUpstreamFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"bad token"}`))
	}, Options{})

	_, err := c.Track(context.Background(), TrackingQuery{TrackingNumber: "1"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUpstream))

	var ue *UpstreamError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, http.StatusUnauthorized, ue.StatusCode)
	assert.Contains(t, ue.Message, "bad token")
}

func TestClient_MalformedBodyIsUpstreamFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>oops</html>`))
	}, Options{})

	_, err := c.Track(context.Background(), TrackingQuery{TrackingNumber: "1"})
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestClient_TimeoutIsUpstreamFailure(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, Options{Timeout: 50 * time.Millisecond})
	defer close(release)

	_, err := c.Track(context.Background(), TrackingQuery{TrackingNumber: "1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Contains(t, err.Error(), "timed out")
}

func TestClient_EstimateDelivery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"in_transit","eta":"2026-03-01"}`))
	}, Options{})

	est, err := c.EstimateDelivery(context.Background(), TrackingQuery{TrackingNumber: "1", Carrier: "cdek"})
	require.NoError(t, err)
	assert.Equal(t, DeliveryEstimate{TrackingNumber: "1", Carrier: "cdek", ETA: "2026-03-01"}, est)
}
