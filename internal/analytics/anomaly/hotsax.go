package anomaly

import (
	"context"

	"github.com/soltixdb/hotsax/internal/analytics"
	"github.com/soltixdb/hotsax/internal/utils"
)

// HotSAXDetector finds discords with the HOT-SAX heuristic: windows with
// rare SAX words are examined first and nearest-neighbour scans abandon
// as soon as a candidate cannot beat the best discord so far.
type HotSAXDetector struct{}

func init() {
	RegisterDetector(utils.AlgorithmHotSAX, &HotSAXDetector{})
}

// Name returns the algorithm name
func (h *HotSAXDetector) Name() string {
	return utils.AlgorithmHotSAX
}

// Detect finds discords using HOT-SAX
func (h *HotSAXDetector) Detect(ctx context.Context, series analytics.Series, config DetectorConfig) ([]AnomalyResult, error) {
	if len(series) < config.MinDataPoints {
		return nil, nil
	}

	extractor, err := newExtractor(config)
	if err != nil {
		return nil, err
	}
	res, err := extractor.Run(ctx, series)
	if err != nil {
		return nil, err
	}
	return toResults(res.Discords, config.WindowSize), nil
}
