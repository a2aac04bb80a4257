// Package cmd implements the shopctl command tree.
package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagServer   string
	flagConfig   string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "shopctl",
	Short: "Shop management client",
	Long: `shopctl is a command-line client for the shop management API.
It covers the product catalog, the shopping cart, order history, and
user administration, either through subcommands or through the
full-screen interface started by 'shopctl browse'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagConfig != "" {
			os.Setenv("SHOPCTL_CONFIG", flagConfig)
		}
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with a cancellable context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "", "API server URL (default http://localhost:3000)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default $HOME/.shopctl/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")
}
