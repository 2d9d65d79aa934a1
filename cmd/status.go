package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abureyko/shipping-agent/internal/config"
	"github.com/abureyko/shipping-agent/internal/providers"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show shipping-agent status",
	RunE:  runStatus,
}

func runStatus(_ *cobra.Command, _ []string) error {
	cfgPath := configPath
	if cfgPath == "" {
		cfgPath = config.ConfigPath()
	}

	fmt.Printf("%s shipping-agent Status\n\n", logo)

	_, statErr := os.Stat(cfgPath)
	cfgMark := "✗"
	if statErr == nil {
		cfgMark = "✓"
	}
	fmt.Printf("Config:    %s %s\n", cfgPath, cfgMark)

	cfg, err := loadConfig()
	if err != nil {
		fmt.Printf("  (could not load config: %v)\n", err)
		return nil
	}

	mode := "live"
	source := cfg.Tracking.SourceName
	if cfg.DemoMode() {
		mode = "demo"
		source = "demo data"
	}
	fmt.Printf("Tracking:  %s (%s)\n", mode, source)
	fmt.Printf("Carriers:  %v\n", cfg.Tracking.SupportedCarriers)
	fmt.Printf("Server:    %s %s:%d%s\n\n", cfg.Server.Transport, cfg.Server.Host, cfg.Server.Port, cfg.Server.Path)

	fmt.Println("Providers:")
	for _, spec := range providers.PROVIDERS {
		label := spec.Label()
		switch {
		case spec.Name != cfg.LLM.Provider:
			fmt.Printf("  %-20s\n", label)
		case cfg.LLM.APIKey == "":
			fmt.Printf("  %-20s ← selected, no key (mock replies)\n", label)
		default:
			fmt.Printf("  %-20s ✓ %s\n", label, providers.ResolveModel(&spec, cfg.LLM.Model))
		}
	}
	return nil
}
