// Package cmd implements the shipping-agent CLI using cobra.
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abureyko/shipping-agent/internal/shared/cmdutils"
)

const version = "0.1.0"
const logo = "📦"

var (
	configPath string
	verbose    bool
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:           "shipping-agent",
	Short:         logo + " shipping-agent — parcel tracking assistant",
	Long:          logo + " shipping-agent — tracks parcels and estimates delivery dates",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

// Execute runs the root command. Errors are printed as {"code","message"}
// JSON on stderr before exiting.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		cmdutils.PrintError(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.shipping-agent/config.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")

	rootCmd.AddCommand(onboardCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(trackCmd)
	rootCmd.AddCommand(etaCmd)
	rootCmd.AddCommand(carriersCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(statusCmd)
}
