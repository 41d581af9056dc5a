// Package cli implements the command-line surface: an interactive chat REPL
// and a one-shot ask command, both driving the same turn workflow.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evoai/commerce-agent/pkg/config"
)

var (
	configFile string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:          "commerce-agent",
	Short:        "Conversational shopping assistant with deterministic order policy",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if logLevel != "" {
			os.Setenv("LOG_LEVEL", logLevel)
		}
		// File settings become environment variables; explicit env still wins.
		return config.ExportFile(configFile)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file exported into the environment before loading")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override LOG_LEVEL (trace, debug, info, warn, error)")
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(askCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
