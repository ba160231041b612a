package models

import (
	"time"

	"github.com/soltixdb/hotsax/internal/analytics"
)

// DiscordRequest represents a discord detection request. Exactly one of
// Values and Points carries the series. Zero-valued parameters fall back to
// the configured defaults; pointer fields distinguish "unset" from zero.
type DiscordRequest struct {
	Algorithm              string                      `json:"algorithm,omitempty"`
	Values                 []float64                   `json:"values,omitempty"`
	Points                 []analytics.TimeSeriesPoint `json:"points,omitempty"`
	WindowSize             int                         `json:"window_size,omitempty"`
	PAASize                int                         `json:"paa_size,omitempty"`
	AlphabetSize           int                         `json:"alphabet_size,omitempty"`
	NormalizationThreshold *float64                    `json:"normalization_threshold,omitempty"`
	DiscordCount           int                         `json:"discord_count,omitempty"`
	Metric                 string                      `json:"metric,omitempty"`
	Seed                   *uint64                     `json:"seed,omitempty"`
}

// Series returns the request series regardless of which field carried it
func (r *DiscordRequest) Series() analytics.Series {
	if len(r.Points) > 0 {
		return analytics.TimeSeriesData(r.Points).Series()
	}
	return analytics.Series(r.Values)
}

// Times returns point timestamps, or nil when the request carried raw values
func (r *DiscordRequest) Times() []time.Time {
	if len(r.Points) == 0 {
		return nil
	}
	return analytics.TimeSeriesData(r.Points).Times()
}
