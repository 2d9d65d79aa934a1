package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/abureyko/shipping-agent/internal/config"
	"github.com/abureyko/shipping-agent/internal/tools"
)

var (
	trackCarrier string
	trackLive    bool
	trackJSON    bool
)

var trackCmd = &cobra.Command{
	Use:   "track <tracking-number>",
	Short: "Show the current status of a parcel",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrack,
}

func init() {
	trackCmd.Flags().StringVarP(&trackCarrier, "carrier", "c", "", "Carrier code, e.g. cdek")
	trackCmd.Flags().BoolVar(&trackLive, "live", false, "Require the live tracking API (fails without "+config.EnvTrackingAPIKey+")")
	trackCmd.Flags().BoolVar(&trackJSON, "json", false, "Print the result envelope as JSON")
}

func runTrack(cmd *cobra.Command, args []string) error {
	if trackLive {
		config.LoadDotEnv()
		if _, err := config.RequireEnv(config.EnvTrackingAPIKey); err != nil {
			return err
		}
	}
	return runTool(contextOf(cmd), tools.ToolTrackPackage, trackingParams(args[0], trackCarrier), trackJSON)
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
