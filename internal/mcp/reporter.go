package mcp

import (
	"context"
	"log/slog"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/abureyko/shipping-agent/internal/schema"
)

const (
	methodLogMessage = "notifications/message"
	methodProgress   = "notifications/progress"
)

// notificationSender is the part of *mcpserver.MCPServer the reporter uses.
type notificationSender interface {
	SendNotificationToClient(ctx context.Context, method string, params map[string]any) error
}

// notificationReporter forwards tool events to the calling MCP client.
// Progress is only sent when the client supplied a progress token.
type notificationReporter struct {
	sender notificationSender
	token  mcpgo.ProgressToken
	logger string
}

func newNotificationReporter(ctx context.Context, req mcpgo.CallToolRequest, logger string) schema.Reporter {
	srv := mcpserver.ServerFromContext(ctx)
	if srv == nil {
		return schema.NopReporter{}
	}
	r := &notificationReporter{sender: srv, logger: logger}
	if req.Params.Meta != nil {
		r.token = req.Params.Meta.ProgressToken
	}
	return r
}

func (r *notificationReporter) Info(ctx context.Context, msg string)    { r.log(ctx, "info", msg) }
func (r *notificationReporter) Warning(ctx context.Context, msg string) { r.log(ctx, "warning", msg) }
func (r *notificationReporter) Error(ctx context.Context, msg string)   { r.log(ctx, "error", msg) }

func (r *notificationReporter) Progress(ctx context.Context, progress, total float64) {
	if r.token == nil {
		return
	}
	r.send(ctx, methodProgress, map[string]any{
		"progressToken": r.token,
		"progress":      progress,
		"total":         total,
	})
}

func (r *notificationReporter) log(ctx context.Context, level, msg string) {
	r.send(ctx, methodLogMessage, map[string]any{
		"level":  level,
		"logger": r.logger,
		"data":   msg,
	})
}

func (r *notificationReporter) send(ctx context.Context, method string, params map[string]any) {
	if err := r.sender.SendNotificationToClient(ctx, method, params); err != nil {
		slog.Debug("MCP notification dropped", "method", method, "err", err)
	}
}
