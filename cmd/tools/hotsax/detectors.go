package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/soltixdb/hotsax/internal/analytics/distance"
	"github.com/soltixdb/hotsax/internal/services"
)

var detectorsCmd = &cobra.Command{
	Use:   "detectors",
	Short: "List available detection algorithms and distance metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		list := services.NewDiscordService(newLogger(), cfg.Discord).Detectors()

		out := cmd.OutOrStdout()
		bold := color.New(color.Bold).SprintFunc()
		green := color.New(color.FgGreen).SprintFunc()

		fmt.Fprintln(out, bold("Detectors:"))
		for _, name := range list.Detectors {
			marker := " "
			if name == list.Default {
				marker = green("*")
			}
			fmt.Fprintf(out, "  %s %s\n", marker, name)
		}
		fmt.Fprintln(out, bold("Metrics:"))
		for _, m := range distance.Metrics() {
			fmt.Fprintf(out, "    %s\n", m)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(detectorsCmd)
}
