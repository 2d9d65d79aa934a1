package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abureyko/shipping-agent/internal/config/server"
)

var (
	serveTransport string
	serveHost      string
	servePort      int
	servePath      string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose the shipping tools over MCP (streamable HTTP or stdio)",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveTransport, "transport", "t", "", "Transport: streamable-http or stdio")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Listen host (HTTP only)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Listen port (HTTP only)")
	serveCmd.Flags().StringVar(&servePath, "path", "", "Endpoint path (HTTP only)")
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveTransport != "" {
		cfg.Server.Transport = serveTransport
	}
	if serveHost != "" {
		cfg.Server.Host = serveHost
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}
	if servePath != "" {
		cfg.Server.Path = servePath
	}

	container, err := buildContainer(cfg)
	if err != nil {
		return err
	}
	srv := container.MCPServer()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mode := "live"
	if cfg.DemoMode() {
		mode = "demo"
	}
	tools := container.Registry().AllTools()
	if cfg.Server.Transport == server.TransportStdio {
		slog.Info("serving tools over stdio", "mode", mode, "tools", len(tools.Tools()))
	} else {
		fmt.Printf("%s Serving tools on http://%s%s (%s mode)\n", logo, srv.Addr(), cfg.Server.Path, mode)
	}

	if err := srv.Run(ctx, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
		return err
	}
	slog.Info("server stopped")
	return nil
}
