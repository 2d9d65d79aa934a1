package mcp

import (
	mcpgo "github.com/mark3labs/mcp-go/mcp"

	"github.com/abureyko/shipping-agent/internal/schema"
)

// toCallToolResult maps each message to a text content block; structured
// content and meta pass through unchanged.
func toCallToolResult(res *schema.ToolResult) *mcpgo.CallToolResult {
	if res == nil {
		res = schema.NewToolResult("", nil, nil)
	}
	content := make([]mcpgo.Content, 0, len(res.Messages))
	for _, m := range res.Messages {
		content = append(content, mcpgo.NewTextContent(m))
	}
	out := &mcpgo.CallToolResult{
		Content:           content,
		StructuredContent: res.StructuredContent,
	}
	if len(res.Meta) > 0 {
		out.Meta = &mcpgo.Meta{AdditionalFields: res.Meta}
	}
	return out
}

func toErrorResult(err error) *mcpgo.CallToolResult {
	te := schema.AsToolError(err)
	return &mcpgo.CallToolResult{
		Content:           []mcpgo.Content{mcpgo.NewTextContent(te.JSON())},
		StructuredContent: map[string]any{"code": te.Code, "message": te.Message},
		IsError:           true,
	}
}
