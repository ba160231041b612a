package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/soltixdb/hotsax/internal/analytics"
	"github.com/soltixdb/hotsax/internal/analytics/anomaly"
	"github.com/soltixdb/hotsax/internal/analytics/discord"
	"github.com/soltixdb/hotsax/internal/analytics/distance"
	"github.com/soltixdb/hotsax/internal/config"
	"github.com/soltixdb/hotsax/internal/logging"
	"github.com/soltixdb/hotsax/internal/models"
	"github.com/soltixdb/hotsax/internal/utils"
)

// DiscordService handles discord detection business logic
type DiscordService struct {
	logger   *logging.Logger
	defaults config.DiscordConfig
}

// NewDiscordService creates a new DiscordService
func NewDiscordService(logger *logging.Logger, defaults config.DiscordConfig) *DiscordService {
	if logger == nil {
		logger = logging.Global()
	}
	return &DiscordService{
		logger:   logger,
		defaults: defaults,
	}
}

// Detectors returns the registered detector names and the default one
func (s *DiscordService) Detectors() models.DetectorListResponse {
	return models.DetectorListResponse{
		Detectors: anomaly.ListDetectors(),
		Default:   s.defaultAlgorithm(),
	}
}

func (s *DiscordService) defaultAlgorithm() string {
	if s.defaults.Algorithm == "" {
		return utils.AlgorithmHotSAX
	}
	return s.defaults.Algorithm
}

// Detect validates the request, applies defaults and runs the detector
func (s *DiscordService) Detect(ctx context.Context, req *models.DiscordRequest) (*models.DiscordResponse, error) {
	startExec := time.Now()
	logger := s.logger.WithContext(ctx)

	series, detector, cfg, err := s.prepare(req)
	if err != nil {
		return nil, err
	}
	cfg.Logger = logger

	ctx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()

	results, err := detector.Detect(ctx, series, cfg)
	if err != nil {
		logger.Error("Discord detection failed",
			"algorithm", detector.Name(),
			"series_length", len(series),
			"error", err)
		return nil, s.detectionError(err)
	}

	resp := &models.DiscordResponse{
		Algorithm:              detector.Name(),
		Metric:                 cfg.Metric.String(),
		SeriesLength:           len(series),
		WindowSize:             cfg.WindowSize,
		PAASize:                cfg.PAASize,
		AlphabetSize:           cfg.AlphabetSize,
		NormalizationThreshold: cfg.NormalizationThreshold,
		Requested:              cfg.DiscordCount,
		Seed:                   cfg.Seed,
		Discords:               toDiscordViews(results, req.Times()),
		ElapsedMs:              float64(time.Since(startExec).Microseconds()) / 1000,
	}

	logger.Info("Discord detection completed",
		"algorithm", resp.Algorithm,
		"series_length", resp.SeriesLength,
		"window_size", resp.WindowSize,
		"discords", len(resp.Discords),
		"duration", time.Since(startExec))

	return resp, nil
}

// Validate checks a request without running it
func (s *DiscordService) Validate(req *models.DiscordRequest) error {
	_, _, _, err := s.prepare(req)
	return err
}

// prepare resolves defaults and validates everything that can be checked
// before the search starts.
func (s *DiscordService) prepare(req *models.DiscordRequest) (analytics.Series, anomaly.AnomalyDetector, anomaly.DetectorConfig, error) {
	var cfg anomaly.DetectorConfig

	if req == nil {
		return nil, nil, cfg, NewServiceError(CodeInvalidParameter, "request body is required")
	}
	if len(req.Values) > 0 && len(req.Points) > 0 {
		return nil, nil, cfg, NewServiceError(CodeInvalidParameter, "provide either values or points, not both")
	}

	series := req.Series()
	if len(series) == 0 {
		return nil, nil, cfg, NewServiceError(CodeInvalidParameter, "series is empty: provide values or points")
	}
	if s.defaults.MaxSeriesLength > 0 && len(series) > s.defaults.MaxSeriesLength {
		return nil, nil, cfg, NewServiceErrorWithDetails(CodeInvalidParameter,
			fmt.Sprintf("series length %d exceeds the limit of %d", len(series), s.defaults.MaxSeriesLength),
			map[string]interface{}{"series_length": len(series), "max_series_length": s.defaults.MaxSeriesLength})
	}
	if err := series.Validate(); err != nil {
		return nil, nil, cfg, wrapServiceError(CodeInvalidParameter, err, nil)
	}

	algorithm := req.Algorithm
	if algorithm == "" {
		algorithm = s.defaultAlgorithm()
	}
	detector, err := anomaly.GetDetector(algorithm)
	if err != nil {
		return nil, nil, cfg, NewServiceErrorWithDetails(CodeInvalidAlgorithm, err.Error(),
			map[string]interface{}{"supported": anomaly.ListDetectors()})
	}

	metricName := req.Metric
	if metricName == "" {
		metricName = s.defaults.Metric
	}
	metric, err := distance.ParseMetric(metricName)
	if err != nil {
		return nil, nil, cfg, wrapServiceError(CodeInvalidParameter, err, nil)
	}

	cfg = anomaly.DetectorConfig{
		WindowSize:             orDefault(req.WindowSize, s.defaults.WindowSize),
		PAASize:                orDefault(req.PAASize, s.defaults.PAASize),
		AlphabetSize:           orDefault(req.AlphabetSize, s.defaults.AlphabetSize),
		NormalizationThreshold: s.defaults.NormalizationThreshold,
		DiscordCount:           orDefault(req.DiscordCount, s.defaults.DiscordCount),
		Metric:                 metric,
		Seed:                   s.defaults.Seed,
		Parallelism:            s.defaults.Parallelism,
	}
	if req.NormalizationThreshold != nil {
		cfg.NormalizationThreshold = *req.NormalizationThreshold
	}
	if req.Seed != nil {
		cfg.Seed = *req.Seed
	}

	if cfg.WindowSize < utils.MinWindowSize {
		return nil, nil, cfg, NewServiceErrorWithDetails(CodeInvalidParameter,
			fmt.Sprintf("window_size must be at least %d", utils.MinWindowSize),
			map[string]interface{}{"window_size": cfg.WindowSize})
	}

	dc := discord.Config{
		WindowSize:             cfg.WindowSize,
		PAASize:                cfg.PAASize,
		AlphabetSize:           cfg.AlphabetSize,
		NormalizationThreshold: cfg.NormalizationThreshold,
		DiscordCount:           cfg.DiscordCount,
	}
	if err := dc.Validate(len(series)); err != nil {
		code := CodeInvalidParameter
		if errors.Is(err, discord.ErrSeriesTooShort) {
			code = CodeSeriesTooShort
		}
		return nil, nil, cfg, wrapServiceError(code, err, map[string]interface{}{
			"series_length": len(series),
			"window_size":   cfg.WindowSize,
		})
	}

	return series, detector, cfg, nil
}

func (s *DiscordService) timeout() time.Duration {
	if s.defaults.Timeout <= 0 {
		return utils.DefaultRequestTimeout
	}
	return s.defaults.Timeout
}

func (s *DiscordService) detectionError(err error) *ServiceError {
	details := map[string]interface{}{}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		details["reason"] = "timeout"
		details["timeout"] = s.timeout().String()
	case errors.Is(err, context.Canceled):
		details["reason"] = "cancelled"
	case errors.Is(err, discord.ErrInvalidConfig):
		return wrapServiceError(CodeInvalidParameter, err, nil)
	}
	return wrapServiceError(CodeDetectionFailed, err, details)
}

func toDiscordViews(results []anomaly.AnomalyResult, times []time.Time) []models.DiscordView {
	views := make([]models.DiscordView, len(results))
	for i, r := range results {
		views[i] = models.DiscordView{
			Rank:     r.Rank,
			Position: r.Index,
			End:      r.Index + r.Length,
			Distance: r.Score,
		}
		if len(times) >= r.Index+r.Length {
			views[i].StartTime = times[r.Index].Format(time.RFC3339Nano)
			views[i].EndTime = times[r.Index+r.Length-1].Format(time.RFC3339Nano)
		}
	}
	return views
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
