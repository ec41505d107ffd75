package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version    = "dev"
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "productivity-timer",
	Short: "Work/break productivity timer",
	Long: `Productivity Timer tracks how long you work and how long you rest.
Start a work session, switch to a break, and stop when you are done; the
window shows the current session and the running total for each.`,
	Version:      version,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runApp,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "Path to configuration file")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("log-format", "text", "Log format (text, json)")
	flags.Bool("hidden", false, "Start minimized to the system tray")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
