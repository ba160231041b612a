package discord

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/soltixdb/hotsax/internal/analytics"
	"github.com/soltixdb/hotsax/internal/analytics/distance"
	"github.com/soltixdb/hotsax/internal/analytics/sax"
	"github.com/soltixdb/hotsax/internal/logging"
)

// Config holds the search parameters.
type Config struct {
	WindowSize             int
	PAASize                int
	AlphabetSize           int
	NormalizationThreshold float64
	DiscordCount           int
	Metric                 distance.Metric
	Seed                   uint64
	Parallelism            int
}

// DefaultConfig returns the parameters used when the caller has no preference.
func DefaultConfig() Config {
	return Config{
		WindowSize:             100,
		PAASize:                4,
		AlphabetSize:           4,
		NormalizationThreshold: 0.01,
		DiscordCount:           1,
		Metric:                 distance.MetricEuclidean,
	}
}

// Validate checks the parameters against a series of the given length.
func (c Config) Validate(seriesLen int) error {
	switch {
	case c.WindowSize <= 0:
		return fmt.Errorf("%w: window size must be positive, got %d", ErrInvalidConfig, c.WindowSize)
	case c.PAASize <= 0:
		return fmt.Errorf("%w: paa size must be positive, got %d", ErrInvalidConfig, c.PAASize)
	case c.AlphabetSize <= 0 || c.AlphabetSize > sax.MaxAlphabetSize:
		return fmt.Errorf("%w: alphabet size must be in [1, %d], got %d", ErrInvalidConfig, sax.MaxAlphabetSize, c.AlphabetSize)
	case c.DiscordCount <= 0:
		return fmt.Errorf("%w: discord count must be positive, got %d", ErrInvalidConfig, c.DiscordCount)
	case c.NormalizationThreshold < 0:
		return fmt.Errorf("%w: normalization threshold must not be negative", ErrInvalidConfig)
	case c.WindowSize > seriesLen:
		return fmt.Errorf("%w: window %d, series length %d", ErrSeriesTooShort, c.WindowSize, seriesLen)
	}
	return nil
}

// Result is the outcome of a full extraction.
type Result struct {
	Discords []Record     `json:"discords"`
	Stats    Stats         `json:"stats"`
	Words    int           `json:"distinct_words"`
	Elapsed  time.Duration `json:"elapsed"`
}

// Option customizes an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *logging.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// WithDiscretizer replaces the SAX discretizer built from the config.
func WithDiscretizer(d Discretizer) Option {
	return func(e *Extractor) {
		e.discretizer = d
	}
}

// WithDistance replaces the distance function selected by the config metric.
func WithDistance(fn distance.Func) Option {
	return func(e *Extractor) {
		e.distance = fn
	}
}

// withAdmitHook observes best-so-far improvements in every pass.
func withAdmitHook(fn func(rec Record, previousBest float64)) Option {
	return func(e *Extractor) {
		e.admitted = fn
	}
}

// Extractor finds the top-K discords of a series with repeated HOT-SAX passes.
type Extractor struct {
	cfg         Config
	discretizer Discretizer
	distance    distance.Func
	logger      *logging.Logger
	admitted    func(rec Record, previousBest float64)
}

// NewExtractor creates an Extractor. Parameters that do not depend on the
// series are validated here.
func NewExtractor(cfg Config, opts ...Option) (*Extractor, error) {
	if err := cfg.Validate(cfg.WindowSize); err != nil {
		return nil, err
	}

	e := &Extractor{cfg: cfg, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(e)
	}

	if e.discretizer == nil {
		d, err := sax.NewDiscretizer(cfg.NormalizationThreshold, cfg.PAASize, cfg.AlphabetSize)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		e.discretizer = d
	}
	if e.distance == nil {
		e.distance = cfg.Metric.Func()
	}
	return e, nil
}

// Run extracts up to DiscordCount discords. Records are returned in
// discovery order; a pass that finds nothing, or only a zero distance, ends
// the search early.
func (e *Extractor) Run(ctx context.Context, series analytics.Series) (*Result, error) {
	start := time.Now()
	cfg := e.cfg
	n := series.Len()

	if err := cfg.Validate(n); err != nil {
		return nil, err
	}
	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	index, err := BuildWordIndex(ctx, series, cfg.WindowSize, e.discretizer, cfg.Parallelism)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("Word index built",
		"positions", index.Positions(),
		"distinct_words", index.Distinct())

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	finder := NewFinder(series, cfg.WindowSize, index, e.distance, rng, e.logger)
	finder.admitted = e.admitted

	global := NewVisitMask(n)
	global.MarkRange(n-cfg.WindowSize, n)

	discords := make([]Record, 0, cfg.DiscordCount)
	for len(discords) < cfg.DiscordCount {
		rec, err := finder.FindBest(ctx, global)
		if err != nil {
			return nil, err
		}
		if !rec.Found() || rec.Distance == 0 {
			e.logger.Debug("No further discord",
				"found", len(discords),
				"requested", cfg.DiscordCount)
			break
		}

		discords = append(discords, rec)
		global.MarkRange(rec.Position-cfg.WindowSize, rec.Position+cfg.WindowSize)
		e.logger.Debug("Discord found",
			"rank", len(discords),
			"position", rec.Position,
			"nn_distance", rec.Distance,
			"unvisited", global.Unvisited())
	}

	return &Result{
		Discords: discords,
		Stats:    finder.Stats(),
		Words:    index.Distinct(),
		Elapsed:  time.Since(start),
	}, nil
}

// SortByPosition returns a copy of records ordered by start position.
func SortByPosition(records []Record) []Record {
	sorted := slices.Clone(records)
	slices.SortFunc(sorted, func(a, b Record) int {
		return a.Position - b.Position
	})
	return sorted
}

// FindDiscords runs a HOT-SAX search with z-normalized SAX words, Euclidean
// distance and a fixed seed.
func FindDiscords(series []float64, windowSize, paaSize, alphabetSize int, normalizationThreshold float64, discordCount int) ([]Record, error) {
	cfg := DefaultConfig()
	cfg.WindowSize = windowSize
	cfg.PAASize = paaSize
	cfg.AlphabetSize = alphabetSize
	cfg.NormalizationThreshold = normalizationThreshold
	cfg.DiscordCount = discordCount

	e, err := NewExtractor(cfg)
	if err != nil {
		return nil, err
	}
	res, err := e.Run(context.Background(), series)
	if err != nil {
		return nil, err
	}
	return res.Discords, nil
}
