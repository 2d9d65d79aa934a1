package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"

	servercfg "github.com/abureyko/shipping-agent/internal/config/server"
)

const shutdownTimeout = 5 * time.Second

// Handler returns the stateless streamable-HTTP handler for the configured path.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(s.path(), mcpserver.NewStreamableHTTPServer(s.mcp,
		mcpserver.WithStateLess(true),
		mcpserver.WithEndpointPath(s.path()),
	))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok")
	})
	return mux
}

func (s *Server) path() string {
	if s.cfg.Path == "" {
		return "/mcp"
	}
	return s.cfg.Path
}

// Addr returns host:port.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
}

// Run serves on the configured transport until ctx is cancelled.
func (s *Server) Run(ctx context.Context, stdin io.Reader, stdout io.Writer) error {
	switch s.cfg.Transport {
	case servercfg.TransportStdio:
		return s.ServeStdio(ctx, stdin, stdout)
	case servercfg.TransportStreamableHTTP, "":
		return s.ServeHTTP(ctx)
	default:
		return fmt.Errorf("unknown transport %q", s.cfg.Transport)
	}
}

// ServeHTTP listens on Addr and shuts down gracefully when ctx is cancelled.
func (s *Server) ServeHTTP(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("MCP server listening", "addr", srv.Addr, "path", s.path())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen %s: %w", srv.Addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// ServeStdio speaks MCP over the given streams until ctx is cancelled or
// stdin is closed.
func (s *Server) ServeStdio(ctx context.Context, stdin io.Reader, stdout io.Writer) error {
	slog.Info("MCP server on stdio")
	err := mcpserver.NewStdioServer(s.mcp).Listen(ctx, stdin, stdout)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
