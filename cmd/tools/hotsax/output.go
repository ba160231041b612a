package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/soltixdb/hotsax/internal/models"
)

// report is the CLI rendering of a detection response
type report struct {
	Algorithm    string          `json:"algorithm" yaml:"algorithm"`
	Metric       string          `json:"metric" yaml:"metric"`
	SeriesLength int             `json:"series_length" yaml:"series_length"`
	WindowSize   int             `json:"window_size" yaml:"window_size"`
	PAASize      int             `json:"paa_size" yaml:"paa_size"`
	AlphabetSize int             `json:"alphabet_size" yaml:"alphabet_size"`
	Threshold    float64         `json:"normalization_threshold" yaml:"normalization_threshold"`
	Seed         uint64          `json:"seed" yaml:"seed"`
	Requested    int             `json:"requested" yaml:"requested"`
	ElapsedMs    float64         `json:"elapsed_ms" yaml:"elapsed_ms"`
	Discords     []reportDiscord `json:"discords" yaml:"discords"`
}

type reportDiscord struct {
	Rank      int     `json:"rank" yaml:"rank"`
	Position  int     `json:"position" yaml:"position"`
	End       int     `json:"end" yaml:"end"`
	Distance  float64 `json:"nn_distance" yaml:"nn_distance"`
	StartTime string  `json:"start_time,omitempty" yaml:"start_time,omitempty"`
	EndTime   string  `json:"end_time,omitempty" yaml:"end_time,omitempty"`
}

func newReport(resp *models.DiscordResponse) report {
	r := report{
		Algorithm:    resp.Algorithm,
		Metric:       resp.Metric,
		SeriesLength: resp.SeriesLength,
		WindowSize:   resp.WindowSize,
		PAASize:      resp.PAASize,
		AlphabetSize: resp.AlphabetSize,
		Threshold:    resp.NormalizationThreshold,
		Seed:         resp.Seed,
		Requested:    resp.Requested,
		ElapsedMs:    resp.ElapsedMs,
		Discords:     make([]reportDiscord, 0, len(resp.Discords)),
	}
	for _, d := range resp.Discords {
		r.Discords = append(r.Discords, reportDiscord(d))
	}
	return r
}

func writeReport(w io.Writer, format string, resp *models.DiscordResponse) error {
	r := newReport(resp)
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case "table", "":
		return writeTable(w, r)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func writeTable(w io.Writer, r report) error {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	fmt.Fprintf(w, "%s\n", cyan("=== Discords ==="))
	fmt.Fprintf(w, "algorithm=%s metric=%s n=%d window=%d paa=%d alphabet=%d seed=%d\n",
		r.Algorithm, r.Metric, r.SeriesLength, r.WindowSize, r.PAASize, r.AlphabetSize, r.Seed)

	if len(r.Discords) == 0 {
		fmt.Fprintln(w, yellow("No discords found"))
		return nil
	}

	withTimes := r.Discords[0].StartTime != ""
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if withTimes {
		fmt.Fprintln(tw, "RANK\tPOSITION\tEND\tNN DISTANCE\tSTART TIME\tEND TIME")
	} else {
		fmt.Fprintln(tw, "RANK\tPOSITION\tEND\tNN DISTANCE")
	}
	for _, d := range r.Discords {
		if withTimes {
			fmt.Fprintf(tw, "%d\t%d\t%d\t%.6f\t%s\t%s\n", d.Rank, d.Position, d.End, d.Distance, d.StartTime, d.EndTime)
		} else {
			fmt.Fprintf(tw, "%d\t%d\t%d\t%.6f\n", d.Rank, d.Position, d.End, d.Distance)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(r.Discords) < r.Requested {
		fmt.Fprintln(w, yellow(fmt.Sprintf("Found %d of %d requested discords", len(r.Discords), r.Requested)))
	}
	fmt.Fprintf(w, "elapsed: %.2fms\n", r.ElapsedMs)
	return nil
}
