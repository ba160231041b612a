package discord

import (
	"cmp"
	"context"
	"fmt"
	"runtime"
	"slices"

	"github.com/soltixdb/hotsax/internal/analytics"
	"github.com/soltixdb/hotsax/internal/analytics/sax"
	"golang.org/x/sync/errgroup"
)

// indexChunk is the number of consecutive positions discretized per task.
const indexChunk = 512

// Discretizer maps a raw window to its word. Implementations must be pure
// and safe for concurrent use.
type Discretizer interface {
	Discretize(window []float64) (sax.Word, error)
}

// WordFrequency is one entry of the frequency order.
type WordFrequency struct {
	Word  sax.Word
	Count int
}

// WordIndex maps each word to the ascending start positions that produced
// it. It is fully built before search begins and read-only afterwards.
type WordIndex struct {
	windowSize  int
	words       []sax.Word
	occurrences map[sax.Word][]int
}

// BuildWordIndex discretizes every window of the series. Windows are
// processed concurrently in chunks; occurrence lists are assembled
// afterwards in a single ascending pass.
func BuildWordIndex(ctx context.Context, series analytics.Series, windowSize int, d Discretizer, parallelism int) (*WordIndex, error) {
	positions := series.Positions(windowSize)
	if positions == 0 {
		return nil, ErrSeriesTooShort
	}
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}

	words := make([]sax.Word, positions)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for lo := 0; lo < positions; lo += indexChunk {
		hi := min(lo+indexChunk, positions)
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				word, err := d.Discretize(series.Window(i, windowSize))
				if err != nil {
					return fmt.Errorf("%w: window %d: %w", ErrDiscretize, i, err)
				}
				words[i] = word
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	occurrences := make(map[sax.Word][]int)
	for i, word := range words {
		occurrences[word] = append(occurrences[word], i)
	}

	return &WordIndex{
		windowSize:  windowSize,
		words:       words,
		occurrences: occurrences,
	}, nil
}

// Positions returns the number of indexed window starts.
func (x *WordIndex) Positions() int {
	return len(x.words)
}

// Distinct returns the number of distinct words.
func (x *WordIndex) Distinct() int {
	return len(x.occurrences)
}

// WordAt returns the word of the window starting at pos.
func (x *WordIndex) WordAt(pos int) sax.Word {
	return x.words[pos]
}

// Occurrences returns the ascending start positions of word. The returned
// slice is shared and must not be modified.
func (x *WordIndex) Occurrences(word sax.Word) []int {
	return x.occurrences[word]
}

// FrequencyOrder returns the distinct words sorted by occurrence count
// ascending, ties broken by word value ascending.
func (x *WordIndex) FrequencyOrder() []WordFrequency {
	order := make([]WordFrequency, 0, len(x.occurrences))
	for word, occ := range x.occurrences {
		order = append(order, WordFrequency{Word: word, Count: len(occ)})
	}
	slices.SortFunc(order, func(a, b WordFrequency) int {
		if c := cmp.Compare(a.Count, b.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Word, b.Word)
	})
	return order
}
