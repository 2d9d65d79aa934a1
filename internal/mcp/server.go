// Package mcp exposes the shipping tools to Model Context Protocol clients.
package mcp

import (
	"context"
	"log/slog"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	servercfg "github.com/abureyko/shipping-agent/internal/config/server"
	"github.com/abureyko/shipping-agent/internal/schema"
	"github.com/abureyko/shipping-agent/internal/tools"
)

// Server hosts a tool list over MCP.
type Server struct {
	cfg servercfg.ServerConfig
	mcp *mcpserver.MCPServer
}

// NewServer registers every tool in list with a new MCP server.
func NewServer(cfg servercfg.ServerConfig, list *tools.ToolList, version string) *Server {
	s := &Server{
		cfg: cfg,
		mcp: mcpserver.NewMCPServer(cfg.Name, version,
			mcpserver.WithToolCapabilities(false),
			mcpserver.WithLogging(),
		),
	}
	for _, t := range list.Tools() {
		s.mcp.AddTool(mcpgo.NewToolWithRawSchema(t.Name(), t.Description(), t.Parameters()), s.handler(t))
		slog.Debug("MCP tool registered", "tool", t.Name())
	}
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *mcpserver.MCPServer { return s.mcp }

// handler adapts a schema.Tool to an MCP tool handler. Tool errors become
// IsError results carrying {code, message}; they are never protocol errors.
func (s *Server) handler(t schema.Tool) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
		ctx = tools.WithReporter(ctx, newNotificationReporter(ctx, req, s.cfg.Name))

		res, err := t.Execute(ctx, req.GetArguments())
		if err != nil {
			slog.Warn("Tool call failed", "tool", t.Name(), "err", err)
			return toErrorResult(err), nil
		}
		return toCallToolResult(res), nil
	}
}
