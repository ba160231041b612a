package discord

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/soltixdb/hotsax/internal/analytics"
)

// RunBruteForce extracts discords with an exhaustive nearest-neighbour
// search. It uses the same boundary and exclusion-zone rules as Run, but
// every candidate is compared against every non-overlapping window, so the
// result is exact at quadratic cost. The discretizer is not used.
func (e *Extractor) RunBruteForce(ctx context.Context, series analytics.Series) (*Result, error) {
	start := time.Now()
	cfg := e.cfg
	n := series.Len()
	w := cfg.WindowSize

	if err := cfg.Validate(n); err != nil {
		return nil, err
	}
	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	positions := series.Positions(w)
	global := NewVisitMask(n)
	global.MarkRange(n-w, n)

	var stats Stats
	discords := make([]Record, 0, cfg.DiscordCount)
	for len(discords) < cfg.DiscordCount {
		best := noDiscord
		for c := 0; c < positions; c++ {
			if global.IsVisited(c) {
				continue
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			stats.Candidates++

			target := series.Window(c, w)
			nn := math.Inf(1)
			for o := 0; o < positions; o++ {
				if abs(o-c) <= w {
					continue
				}
				d, err := e.distance(target, series.Window(o, w))
				if err != nil {
					return nil, fmt.Errorf("%w: windows %d and %d: %w", ErrDistance, c, o, err)
				}
				stats.DistanceCalls++
				nn = min(nn, d)
			}
			if !math.IsInf(nn, 1) && nn > best.Distance {
				best = Record{Position: c, Distance: nn}
			}
		}

		if !best.Found() || best.Distance == 0 {
			break
		}
		discords = append(discords, best)
		global.MarkRange(best.Position-w, best.Position+w)
		e.logger.Debug("Exact discord found",
			"rank", len(discords),
			"position", best.Position,
			"nn_distance", best.Distance)
	}

	return &Result{
		Discords: discords,
		Stats:    stats,
		Elapsed:  time.Since(start),
	}, nil
}
