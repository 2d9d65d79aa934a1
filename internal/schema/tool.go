// Package schema contains the core contracts shared across shipping-agent packages.
// Concrete implementations live in their respective packages; this package is the
// single canonical source of truth for every interface definition.
package schema

import (
	"context"
	"encoding/json"
	"strings"
)

// Tool is the interface all host-callable tools must satisfy.
type Tool interface {
	Name() string
	Description() string
	// Parameters returns the JSON Schema (as raw JSON bytes) for this tool's parameters.
	Parameters() json.RawMessage
	Execute(ctx context.Context, params map[string]any) (*ToolResult, error)
}

// ToolResult is the uniform value every tool operation returns: human-readable
// text segments, a machine-readable payload and provenance flags.
//
// StructuredContent is always built from the same values rendered into
// Messages, so the two never disagree.
type ToolResult struct {
	Messages          []string
	StructuredContent map[string]any
	Meta              map[string]any
}

// NewToolResult builds a ToolResult with a single text message.
// Nil maps are replaced by empty ones.
func NewToolResult(text string, structured, meta map[string]any) *ToolResult {
	if structured == nil {
		structured = map[string]any{}
	}
	if meta == nil {
		meta = map[string]any{}
	}
	return &ToolResult{
		Messages:          []string{text},
		StructuredContent: structured,
		Meta:              meta,
	}
}

// Text joins all messages with newlines.
func (r *ToolResult) Text() string {
	if r == nil {
		return ""
	}
	return strings.Join(r.Messages, "\n")
}
