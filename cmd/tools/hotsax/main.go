package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/soltixdb/hotsax/internal/config"
	"github.com/soltixdb/hotsax/internal/logging"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "hotsax",
	Short: "Find time-series discords with HOT-SAX",
	Long: `hotsax finds the most unusual subsequences (discords) of a time series.

Series are read from CSV or JSON files, or from stdin. Search parameters
default to the discord section of the configuration file.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log search progress to stderr")
}

// loadConfig returns the configured defaults, or the built-in ones when no
// config file is given.
func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.DefaultConfig(), nil
	}
	return config.Load(configPath)
}

func newLogger() *logging.Logger {
	if !verbose {
		return logging.NewNop()
	}
	logger, err := logging.NewFromConfig(config.LoggingConfig{
		Level:      "debug",
		Format:     "console",
		OutputPath: "stderr",
	})
	if err != nil {
		return logging.NewNop()
	}
	return logger
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
