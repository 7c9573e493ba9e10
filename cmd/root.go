package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "mathdrill",
	Short:        "Times-table and division drills",
	Long:         "mathdrill: timed multiplication and division practice in the terminal, with a review of every mistake.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, nil)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MATHDRILL_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/mathdrill/config.toml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides MATHDRILL_LOG_LEVEL)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(mistakesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}
