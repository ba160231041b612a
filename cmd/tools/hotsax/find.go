package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"

	"github.com/spf13/cobra"

	"github.com/soltixdb/hotsax/internal/models"
	"github.com/soltixdb/hotsax/internal/services"
)

var (
	findInput  inputOptions
	findOutput string
	findSort   string
	findParams struct {
		algorithm string
		window    int
		paa       int
		alphabet  int
		threshold float64
		count     int
		metric    string
		seed      uint64
	}
)

var findCmd = &cobra.Command{
	Use:   "find [file]",
	Short: "Find the top discords of a series",
	Long: `Find the top discords of a series read from a CSV or JSON file, or stdin.

Examples:
  hotsax find data.csv --column value --window 128 --count 3
  cat series.json | hotsax find --window 50 --output json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			findInput.Path = args[0]
		}
		if findSort != "position" && findSort != "discovery" {
			return fmt.Errorf("invalid --sort %q: use discovery or position", findSort)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		req, err := readSeries(findInput, cmd.InOrStdin())
		if err != nil {
			return err
		}
		applyFindFlags(cmd, req)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		svc := services.NewDiscordService(newLogger(), cfg.Discord)
		resp, err := svc.Detect(ctx, req)
		if err != nil {
			return err
		}
		if findSort == "position" {
			slices.SortFunc(resp.Discords, func(a, b models.DiscordView) int {
				return a.Position - b.Position
			})
		}
		return writeReport(cmd.OutOrStdout(), findOutput, resp)
	},
}

// applyFindFlags copies explicitly set flags onto the request; anything
// left unset falls back to the configured defaults.
func applyFindFlags(cmd *cobra.Command, req *models.DiscordRequest) {
	flags := cmd.Flags()
	if flags.Changed("algorithm") {
		req.Algorithm = findParams.algorithm
	}
	if flags.Changed("window") {
		req.WindowSize = findParams.window
	}
	if flags.Changed("paa") {
		req.PAASize = findParams.paa
	}
	if flags.Changed("alphabet") {
		req.AlphabetSize = findParams.alphabet
	}
	if flags.Changed("threshold") {
		threshold := findParams.threshold
		req.NormalizationThreshold = &threshold
	}
	if flags.Changed("count") {
		req.DiscordCount = findParams.count
	}
	if flags.Changed("metric") {
		req.Metric = findParams.metric
	}
	if flags.Changed("seed") {
		seed := findParams.seed
		req.Seed = &seed
	}
}

func init() {
	f := findCmd.Flags()
	f.StringVarP(&findInput.Format, "format", "f", "", "Input format: csv or json (default: from extension)")
	f.StringVar(&findInput.Column, "column", "", "CSV value column, by name or zero-based index")
	f.StringVar(&findInput.TimeColumn, "time-column", "", "CSV time column (RFC3339)")
	f.BoolVar(&findInput.NoHeader, "no-header", false, "Treat the first CSV row as data")

	f.StringVarP(&findParams.algorithm, "algorithm", "a", "", "Detector: hotsax or brute_force")
	f.IntVarP(&findParams.window, "window", "w", 0, "Window length")
	f.IntVar(&findParams.paa, "paa", 0, "PAA segments per window")
	f.IntVar(&findParams.alphabet, "alphabet", 0, "SAX alphabet size (1-26)")
	f.Float64Var(&findParams.threshold, "threshold", 0, "Normalization threshold")
	f.IntVarP(&findParams.count, "count", "k", 0, "Number of discords to find")
	f.StringVarP(&findParams.metric, "metric", "m", "", "Distance metric: euclidean, manhattan, chebyshev")
	f.Uint64Var(&findParams.seed, "seed", 0, "Random seed")

	f.StringVarP(&findOutput, "output", "o", "table", "Output format: table, json, yaml")
	f.StringVar(&findSort, "sort", "discovery", "Discord order: discovery or position")

	rootCmd.AddCommand(findCmd)
}
