// Package a2a translates tool results into the outward message envelope
// handed to other agents and presentation layers.
package a2a

import "github.com/abureyko/shipping-agent/internal/schema"

// StatusSuccess is the only status ToEnvelope produces. Failures never reach
// the adapter; they are reported as errors before it.
const StatusSuccess = "success"

// Envelope is the external-facing form of a schema.ToolResult.
type Envelope struct {
	Messages   []string       `json:"messages"`
	Structured map[string]any `json:"structured"`
	Meta       map[string]any `json:"meta"`
	Status     string         `json:"status"`
}

// ToEnvelope converts r into an Envelope. It is total: a nil result, nil
// messages or nil maps yield empty values, never nil.
func ToEnvelope(r *schema.ToolResult) Envelope {
	env := Envelope{
		Messages:   []string{},
		Structured: map[string]any{},
		Meta:       map[string]any{},
		Status:     StatusSuccess,
	}
	if r == nil {
		return env
	}
	if r.Messages != nil {
		env.Messages = append(env.Messages, r.Messages...)
	}
	if r.StructuredContent != nil {
		env.Structured = r.StructuredContent
	}
	if r.Meta != nil {
		env.Meta = r.Meta
	}
	return env
}
