package cmd

import (
	"context"
	"fmt"

	"github.com/abureyko/shipping-agent/internal/a2a"
	"github.com/abureyko/shipping-agent/internal/config"
	"github.com/abureyko/shipping-agent/internal/dependency"
	"github.com/abureyko/shipping-agent/internal/schema"
	"github.com/abureyko/shipping-agent/internal/shared/cmdutils"
	"github.com/abureyko/shipping-agent/internal/tools"
)

// loadConfig reads the config file, the optional .env file and environment
// overrides, in that order.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func buildContainer(cfg *config.Config) (*dependency.Container, error) {
	return dependency.New(cfg, version)
}

// trackingParams builds tool arguments from a positional number and an
// optional carrier flag.
func trackingParams(number, carrier string) map[string]any {
	params := map[string]any{"tracking_number": number}
	if carrier != "" {
		params["carrier"] = carrier
	}
	return params
}

// runTool executes one tool from a fresh container and prints its result,
// either as text or as the outward JSON envelope.
func runTool(ctx context.Context, name tools.ToolName, params map[string]any, asJSON bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	container, err := buildContainer(cfg)
	if err != nil {
		return err
	}

	tool := container.Tool(name)
	if tool == nil {
		return schema.NewToolError("unknown_tool", fmt.Sprintf("tool %q is not registered", name), nil)
	}
	res, err := tool.Execute(ctx, params)
	if err != nil {
		return err
	}

	if asJSON {
		return cmdutils.PrintJSON(a2a.ToEnvelope(res))
	}
	cmdutils.PrintResponse(res.Text())
	return nil
}
