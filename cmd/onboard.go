package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abureyko/shipping-agent/internal/config"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Initialize configuration and the .env template",
	RunE:  runOnboard,
}

const envTemplate = `# shipping-agent environment overrides.
# Leave TRACKING_API_KEY empty to run on demo data.
TRACKING_API_KEY=
TRACKING_API_URL=https://gdeposylka.ru
TRACKING_TIMEOUT=20
DEFAULT_TRANSIT_DAYS=5
CARRIER_TRANSIT_DAYS={"cdek": 3}
SUPPORTED_CARRIERS=cdek,russian-post,dhl,ups,fedex

# Leave LLM_API_KEY empty for mock replies.
LLM_PROVIDER=openai
LLM_API_KEY=
LLM_MODEL=gpt-4o

HOST=0.0.0.0
PORT=8000
`

func runOnboard(_ *cobra.Command, _ []string) error {
	cfgPath := configPath
	if cfgPath == "" {
		cfgPath = config.ConfigPath()
	}

	if _, err := os.Stat(cfgPath); err == nil {
		fmt.Printf("Config already exists at %s\n", cfgPath)
		fmt.Printf("Press Enter to refresh (keep existing values) or Ctrl+C to cancel: ")
		fmt.Scanln()
		existing, loadErr := config.Load(cfgPath)
		if loadErr != nil {
			def := config.DefaultConfig()
			existing = &def
		}
		if err := config.Save(existing, cfgPath); err != nil {
			return err
		}
		fmt.Printf("✓ Config refreshed at %s\n", cfgPath)
	} else {
		cfg := config.DefaultConfig()
		if err := config.Save(&cfg, cfgPath); err != nil {
			return err
		}
		fmt.Printf("✓ Created config at %s\n", cfgPath)
	}

	envPath := filepath.Join(filepath.Dir(cfgPath), ".env.example")
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		if err := os.WriteFile(envPath, []byte(envTemplate), 0o600); err != nil {
			return fmt.Errorf("write env template: %w", err)
		}
		fmt.Printf("✓ Created %s\n", envPath)
	}

	fmt.Printf("\n%s shipping-agent is ready!\n\n", logo)
	fmt.Println("Next steps:")
	fmt.Printf("  1. Copy %s to ./.env and fill in TRACKING_API_KEY and LLM_API_KEY\n", envPath)
	fmt.Println("     (both are optional: without them you get demo data and mock replies)")
	fmt.Printf("  2. Try it: shipping-agent track 12345678\n")
	fmt.Printf("  3. Serve the tools: shipping-agent serve\n")
	return nil
}
