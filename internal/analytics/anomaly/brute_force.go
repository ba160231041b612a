package anomaly

import (
	"context"

	"github.com/soltixdb/hotsax/internal/analytics"
	"github.com/soltixdb/hotsax/internal/utils"
)

// BruteForceDetector compares every window with every other one. It is
// exact and quadratic; useful on short series and as a reference.
type BruteForceDetector struct{}

func init() {
	RegisterDetector(utils.AlgorithmBruteForce, &BruteForceDetector{})
}

// Name returns the algorithm name
func (b *BruteForceDetector) Name() string {
	return utils.AlgorithmBruteForce
}

// Detect finds discords by exhaustive search
func (b *BruteForceDetector) Detect(ctx context.Context, series analytics.Series, config DetectorConfig) ([]AnomalyResult, error) {
	if len(series) < config.MinDataPoints {
		return nil, nil
	}

	extractor, err := newExtractor(config)
	if err != nil {
		return nil, err
	}
	res, err := extractor.RunBruteForce(ctx, series)
	if err != nil {
		return nil, err
	}
	return toResults(res.Discords, config.WindowSize), nil
}
