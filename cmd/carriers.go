package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abureyko/shipping-agent/internal/tools"
)

var carriersJSON bool

var carriersCmd = &cobra.Command{
	Use:   "carriers",
	Short: "List supported carrier codes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runTool(contextOf(cmd), tools.ToolListSupportedCarriers, nil, carriersJSON)
	},
}

func init() {
	carriersCmd.Flags().BoolVar(&carriersJSON, "json", false, "Print the result envelope as JSON")
}
