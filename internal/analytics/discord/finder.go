package discord

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/soltixdb/hotsax/internal/analytics"
	"github.com/soltixdb/hotsax/internal/analytics/distance"
	"github.com/soltixdb/hotsax/internal/logging"
)

// cancelCheckInterval is how many random-scan steps run between context checks.
const cancelCheckInterval = 256

// Record is a discovered discord.
type Record struct {
	Position int     `json:"position"`
	Distance float64 `json:"nn_distance"`
}

// Found reports whether the record refers to an actual window.
func (r Record) Found() bool {
	return r.Position >= 0
}

// noDiscord is the sentinel returned when no candidate beats zero distance.
var noDiscord = Record{Position: -1, Distance: 0}

// Stats counts the work done by one or more search passes.
type Stats struct {
	DistanceCalls int64 `json:"distance_calls"`
	Candidates    int   `json:"candidates"`
	Abandoned     int   `json:"abandoned"`
}

// Finder performs single HOT-SAX best-discord passes over a prepared word
// index. A Finder is not safe for concurrent use.
type Finder struct {
	series    analytics.Series
	window    int
	positions int
	index     *WordIndex
	order     []WordFrequency
	distance  distance.Func
	rng       *rand.Rand
	logger    *logging.Logger
	stats     Stats

	// admitted, when set, observes every improvement of the best-so-far.
	admitted func(rec Record, previousBest float64)
}

// NewFinder prepares a Finder. rng seeds each local registry; nil selects
// the deterministic scan order.
func NewFinder(series analytics.Series, windowSize int, index *WordIndex, dist distance.Func, rng *rand.Rand, logger *logging.Logger) *Finder {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Finder{
		series:    series,
		window:    windowSize,
		positions: series.Positions(windowSize),
		index:     index,
		order:     index.FrequencyOrder(),
		distance:  dist,
		rng:       rng,
		logger:    logger,
	}
}

// Stats returns the work counters accumulated so far.
func (f *Finder) Stats() Stats {
	return f.stats
}

// FindBest runs one heuristic pass. Candidates are taken rarest word first
// and skipped when global marks them visited. The returned record has
// Position -1 when no candidate has a nearest neighbour farther than zero.
func (f *Finder) FindBest(ctx context.Context, global Visited) (Record, error) {
	best := noDiscord

	for _, wf := range f.order {
		occurrences := f.index.Occurrences(wf.Word)
		for _, candidate := range occurrences {
			if global.IsVisited(candidate) {
				continue
			}
			if err := ctx.Err(); err != nil {
				return noDiscord, err
			}

			f.stats.Candidates++
			outcome, err := f.nearestNeighbor(ctx, candidate, occurrences, best.Distance)
			if err != nil {
				return noDiscord, err
			}
			if outcome.abandoned {
				f.stats.Abandoned++
				continue
			}
			if !math.IsInf(outcome.nn, 1) && outcome.nn > best.Distance {
				if f.admitted != nil {
					f.admitted(Record{Position: candidate, Distance: outcome.nn}, best.Distance)
				}
				best = Record{Position: candidate, Distance: outcome.nn}
				f.logger.Debug("Best discord candidate updated",
					"position", candidate,
					"word", string(wf.Word),
					"nn_distance", outcome.nn)
			}
		}
	}

	return best, nil
}

// scanOutcome is the result of folding over a candidate's neighbours:
// either abandoned below the threshold, or exhausted with nn as minimum.
type scanOutcome struct {
	nn        float64
	abandoned bool
}

// nearestNeighbor scans same-word occurrences first and then every other
// position in random order. Windows starting within the window size of the
// candidate are never compared. The scan stops as soon as a neighbour
// closer than threshold shows up.
func (f *Finder) nearestNeighbor(ctx context.Context, candidate int, sameWord []int, threshold float64) (scanOutcome, error) {
	target := f.series.Window(candidate, f.window)
	local := NewVisitRegistry(f.positions, f.childRand())
	out := scanOutcome{nn: math.Inf(1)}

	visit := func(o int) (bool, error) {
		local.MarkVisited(o)
		if abs(o-candidate) <= f.window {
			return false, nil
		}
		d, err := f.distance(target, f.series.Window(o, f.window))
		if err != nil {
			return true, fmt.Errorf("%w: windows %d and %d: %w", ErrDistance, candidate, o, err)
		}
		f.stats.DistanceCalls++
		out.nn = min(out.nn, d)
		return d < threshold, nil
	}

	for _, o := range sameWord {
		stop, err := visit(o)
		if err != nil {
			return out, err
		}
		if stop {
			out.abandoned = true
			return out, nil
		}
	}

	for step := 0; ; step++ {
		if step%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return out, err
			}
		}
		o, ok := local.NextUnvisited()
		if !ok {
			break
		}
		stop, err := visit(o)
		if err != nil {
			return out, err
		}
		if stop {
			out.abandoned = true
			return out, nil
		}
	}

	return out, nil
}

// childRand derives an independent generator for one local registry.
func (f *Finder) childRand() *rand.Rand {
	if f.rng == nil {
		return nil
	}
	return rand.New(rand.NewPCG(f.rng.Uint64(), f.rng.Uint64()))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
