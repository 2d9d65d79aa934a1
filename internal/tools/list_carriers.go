package tools

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/abureyko/shipping-agent/internal/schema"
)

// ListCarriersTool returns the configured carrier codes.
type ListCarriersTool struct {
	carriers []string
}

func NewListCarriersTool(carriers []string) *ListCarriersTool {
	return &ListCarriersTool{carriers: append([]string(nil), carriers...)}
}

func (t *ListCarriersTool) Name() string { return string(ToolListSupportedCarriers) }

func (t *ListCarriersTool) Description() string {
	return "List the carrier codes this assistant can track."
}

func (t *ListCarriersTool) Parameters() json.RawMessage {
	return json.RawMessage(`{"type": "object", "properties": {}}`)
}

func (t *ListCarriersTool) Execute(ctx context.Context, _ map[string]any) (*schema.ToolResult, error) {
	var sb strings.Builder
	sb.WriteString("Supported carriers:")
	for _, c := range t.carriers {
		sb.WriteString("\n- ")
		sb.WriteString(c)
	}
	carriers := append([]string{}, t.carriers...)
	ReporterFrom(ctx).Info(ctx, "Listing supported carriers")
	return schema.NewToolResult(sb.String(), map[string]any{"carriers": carriers}, nil), nil
}
