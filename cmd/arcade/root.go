package main

import (
	"github.com/spf13/cobra"
	"github.com/vytor/arcade/internal/config"
)

var rootCmd = &cobra.Command{
	Use:           "arcade",
	Short:         "Mini-game arcade server",
	Long:          "arcade serves timed mini-games and chess puzzles over a JSON API.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides DB_PATH env var)")
	rootCmd.PersistentFlags().String("log-level", "", "DEBUG, INFO, WARN or ERROR (overrides LOG_LEVEL env var)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment and applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Load()
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}
	return cfg, cfg.Validate()
}
