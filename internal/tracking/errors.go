package tracking

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abureyko/shipping-agent/internal/shared/stringutils"
)

// ErrUpstream is matched by every UpstreamError via errors.Is.
var ErrUpstream = errors.New("tracking upstream failure")

// UpstreamError reports a non-success response, a malformed payload, a
// timeout or a transport failure from the tracking API. StatusCode is 0 when
// no HTTP response was received.
type UpstreamError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("tracking API HTTP %d: %s", e.StatusCode, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("tracking API: %s: %v", e.Message, e.Err)
	}
	return "tracking API: " + e.Message
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func (e *UpstreamError) Is(target error) bool { return target == ErrUpstream }

const maxErrorBody = 300

// FormatAPIError renders an upstream error body in a human-readable form,
// preferring its JSON "message" or "error" field.
func FormatAPIError(body []byte, statusCode int) string {
	if data, err := decodeObject(body); err == nil && data != nil {
		msg := firstString(data, "message", "error")
		if msg == "" {
			raw, _ := json.Marshal(data)
			msg = string(raw)
		}
		return fmt.Sprintf("API error (code %d): %s", statusCode, stringutils.Truncate(msg, maxErrorBody))
	}
	return fmt.Sprintf("API error (status %d): %s", statusCode, stringutils.Truncate(string(body), maxErrorBody))
}
