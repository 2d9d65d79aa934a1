package tracking

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL      = "https://gdeposylka.ru"
	DefaultPathTemplate = "/track/{number}"
	DefaultTimeout      = 20 * time.Second

	maxResponseBody = 1 << 20
)

// Options configures a Client.
type Options struct {
	APIKey       string
	BaseURL      string
	PathTemplate string // placeholders: {number}, {carrier}
	Timeout      time.Duration
	HTTPClient   *http.Client
}

// Client looks shipments up against a live tracking API. Without an API key
// it behaves exactly like ProvideDemoRecord. It never retries.
type Client struct {
	apiKey       string
	baseURL      string
	pathTemplate string
	httpClient   *http.Client
}

// NewClient creates a Client from opts, filling defaults for empty fields.
func NewClient(opts Options) *Client {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	tmpl := opts.PathTemplate
	if tmpl == "" {
		tmpl = DefaultPathTemplate
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{
		apiKey:       opts.APIKey,
		baseURL:      base,
		pathTemplate: tmpl,
		httpClient:   hc,
	}
}

// Live reports whether the client has a credential and will call the API.
func (c *Client) Live() bool { return c.apiKey != "" }

// Track resolves the current status of a shipment.
func (c *Client) Track(ctx context.Context, q TrackingQuery) (TrackingRecord, error) {
	if !c.Live() {
		return ProvideDemoRecord(q.TrackingNumber, q.Carrier), nil
	}

	endpoint := c.endpoint(q)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return TrackingRecord{}, fmt.Errorf("build tracking request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		msg := "request failed"
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			msg = "request timed out"
		}
		return TrackingRecord{}, &UpstreamError{Message: msg, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return TrackingRecord{}, &UpstreamError{StatusCode: resp.StatusCode, Message: "read response", Err: err}
	}
	slog.Debug("tracking API response", "status", resp.StatusCode, "elapsed", time.Since(start), "number", q.TrackingNumber)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return TrackingRecord{}, &UpstreamError{StatusCode: resp.StatusCode, Message: FormatAPIError(raw, resp.StatusCode)}
	}
	return NormalizeRecord(raw, q)
}

// EstimateDelivery returns what the upstream reports about delivery of a
// shipment. ETA is empty when it reports none. In demo mode the demo ETA is
// returned.
func (c *Client) EstimateDelivery(ctx context.Context, q TrackingQuery) (DeliveryEstimate, error) {
	rec, err := c.Track(ctx, q)
	if err != nil {
		return DeliveryEstimate{}, err
	}
	return rec.Estimate(), nil
}

func (c *Client) endpoint(q TrackingQuery) string {
	path := strings.NewReplacer(
		"{number}", url.PathEscape(q.TrackingNumber),
		"{carrier}", url.QueryEscape(q.Carrier),
	).Replace(c.pathTemplate)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

func isTimeout(err error) bool {
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}
