package anomaly

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/soltixdb/hotsax/internal/analytics"
	"github.com/soltixdb/hotsax/internal/analytics/discord"
	"github.com/soltixdb/hotsax/internal/analytics/distance"
	"github.com/soltixdb/hotsax/internal/logging"
)

// AnomalyType represents the type of anomaly detected
type AnomalyType string

const (
	AnomalyTypeDiscord AnomalyType = "discord" // Subsequence farthest from its nearest neighbour
)

// DetectorConfig holds configuration for discord detection
type DetectorConfig struct {
	// WindowSize is the subsequence length
	WindowSize int

	// PAASize is the number of PAA segments per word
	PAASize int

	// AlphabetSize is the number of SAX letters
	AlphabetSize int

	// NormalizationThreshold below which a window is treated as flat
	NormalizationThreshold float64

	// DiscordCount is the maximum number of discords to report
	DiscordCount int

	Metric      distance.Metric
	Seed        uint64
	Parallelism int

	// MinDataPoints minimum number of points required for detection
	MinDataPoints int

	Logger *logging.Logger
}

// DefaultConfig returns default detector configuration
func DefaultConfig() DetectorConfig {
	d := discord.DefaultConfig()
	return DetectorConfig{
		WindowSize:             d.WindowSize,
		PAASize:                d.PAASize,
		AlphabetSize:           d.AlphabetSize,
		NormalizationThreshold: d.NormalizationThreshold,
		DiscordCount:           d.DiscordCount,
		Metric:                 d.Metric,
	}
}

func (c DetectorConfig) discordConfig() discord.Config {
	return discord.Config{
		WindowSize:             c.WindowSize,
		PAASize:                c.PAASize,
		AlphabetSize:           c.AlphabetSize,
		NormalizationThreshold: c.NormalizationThreshold,
		DiscordCount:           c.DiscordCount,
		Metric:                 c.Metric,
		Seed:                   c.Seed,
		Parallelism:            c.Parallelism,
	}
}

// AnomalyDetector interface for all discord detection algorithms
type AnomalyDetector interface {
	// Name returns the algorithm name
	Name() string

	// Detect finds discords in the series, in discovery order
	Detect(ctx context.Context, series analytics.Series, config DetectorConfig) ([]AnomalyResult, error)
}

// AnomalyResult contains one detected discord
type AnomalyResult struct {
	Index  int         // Start of the discord window
	Length int         // Window length
	Score  float64     // Nearest-neighbour distance
	Rank   int         // 1-based discovery order
	Type   AnomalyType // Type of anomaly
}

var (
	registryMu       sync.RWMutex
	detectorRegistry = make(map[string]AnomalyDetector)
)

// RegisterDetector adds a detector to the registry
func RegisterDetector(name string, detector AnomalyDetector) {
	registryMu.Lock()
	defer registryMu.Unlock()
	detectorRegistry[name] = detector
}

// GetDetector returns a detector by name
func GetDetector(name string) (AnomalyDetector, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	if detector, ok := detectorRegistry[name]; ok {
		return detector, nil
	}
	return nil, fmt.Errorf("unknown anomaly detector: %s", name)
}

// ListDetectors returns the sorted names of available detectors
func ListDetectors() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(detectorRegistry))
	for name := range detectorRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DetectAnomalies is a helper function to detect discords using specified algorithm
func DetectAnomalies(ctx context.Context, algorithm string, series analytics.Series, config DetectorConfig) ([]AnomalyResult, error) {
	detector, err := GetDetector(algorithm)
	if err != nil {
		return nil, err
	}
	return detector.Detect(ctx, series, config)
}

func toResults(records []discord.Record, window int) []AnomalyResult {
	results := make([]AnomalyResult, len(records))
	for i, rec := range records {
		results[i] = AnomalyResult{
			Index:  rec.Position,
			Length: window,
			Score:  rec.Distance,
			Rank:   i + 1,
			Type:   AnomalyTypeDiscord,
		}
	}
	return results
}

func newExtractor(config DetectorConfig) (*discord.Extractor, error) {
	var opts []discord.Option
	if config.Logger != nil {
		opts = append(opts, discord.WithLogger(config.Logger))
	}
	return discord.NewExtractor(config.discordConfig(), opts...)
}
