package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abureyko/shipping-agent/internal/tools"
)

var (
	etaCarrier string
	etaJSON    bool
)

var etaCmd = &cobra.Command{
	Use:   "eta <tracking-number>",
	Short: "Estimate the delivery date of a parcel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTool(contextOf(cmd), tools.ToolEstimateDeliveryTime, trackingParams(args[0], etaCarrier), etaJSON)
	},
}

func init() {
	etaCmd.Flags().StringVarP(&etaCarrier, "carrier", "c", "", "Carrier code, e.g. cdek")
	etaCmd.Flags().BoolVar(&etaJSON, "json", false, "Print the result envelope as JSON")
}
