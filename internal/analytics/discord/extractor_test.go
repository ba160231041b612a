package discord

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/soltixdb/hotsax/internal/analytics"
	"github.com/soltixdb/hotsax/internal/analytics/distance"
)

// periodicSine repeats one 10-point period so that windows one period
// apart are bit-identical.
func periodicSine(n int) analytics.Series {
	s := make(analytics.Series, n)
	for i := range s {
		s[i] = math.Sin(2 * math.Pi * float64(i%10) / 10)
	}
	return s
}

// sineWithAnomaly is a 40-point periodic sine with [20,25) replaced by
// large-range noise.
func sineWithAnomaly() analytics.Series {
	s := periodicSine(40)
	copy(s[20:25], []float64{9, -8, 10, -9, 8})
	return s
}

func sineWithNoise(n int) analytics.Series {
	rng := rand.New(rand.NewPCG(3, 5))
	s := make(analytics.Series, n)
	for i := range s {
		s[i] = math.Sin(2*math.Pi*float64(i)/50) + 0.3*rng.NormFloat64()
	}
	return s
}

func testConfig(window, count int) Config {
	cfg := DefaultConfig()
	cfg.WindowSize = window
	cfg.PAASize = 3
	cfg.AlphabetSize = 3
	cfg.DiscordCount = count
	return cfg
}

func runExtractor(t *testing.T, cfg Config, series analytics.Series, opts ...Option) *Result {
	t.Helper()
	e, err := NewExtractor(cfg, opts...)
	if err != nil {
		t.Fatalf("NewExtractor failed: %v", err)
	}
	res, err := e.Run(context.Background(), series)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return res
}

// exactNN computes the nearest non-self-match distance of one window.
func exactNN(series analytics.Series, c, w int) float64 {
	nn := math.Inf(1)
	for o := 0; o+w <= len(series); o++ {
		if abs(o-c) <= w {
			continue
		}
		d, _ := distance.Euclidean(series.Window(c, w), series.Window(o, w))
		nn = min(nn, d)
	}
	return nn
}

func TestFindDiscords_ConstantSeries(t *testing.T) {
	series := make([]float64, 50)
	for i := range series {
		series[i] = 3.5
	}

	discords, err := FindDiscords(series, 5, 3, 3, 0.01, 3)
	if err != nil {
		t.Fatalf("FindDiscords failed: %v", err)
	}
	if len(discords) != 0 {
		t.Errorf("expected no discords for a constant series, got %v", discords)
	}
}

func TestFindDiscords_SineWithAnomaly(t *testing.T) {
	series := sineWithAnomaly()

	discords, err := FindDiscords(series, 5, 3, 3, 0.01, 1)
	if err != nil {
		t.Fatalf("FindDiscords failed: %v", err)
	}
	if len(discords) != 1 {
		t.Fatalf("expected 1 discord, got %d", len(discords))
	}

	got := discords[0]
	if got.Position < 18 || got.Position > 22 {
		t.Errorf("expected discord in [18, 22], got %d", got.Position)
	}

	// Windows that never touch the anomaly.
	for c := 0; c+5 <= len(series); c++ {
		if c+5 > 20 && c < 25 {
			continue
		}
		if nn := exactNN(series, c, 5); got.Distance <= nn {
			t.Errorf("discord distance %v does not exceed nn %v of sine window %d", got.Distance, nn, c)
		}
	}
}

func TestExtractor_OverAskingStopsEarly(t *testing.T) {
	res := runExtractor(t, testConfig(5, 10), sineWithAnomaly())

	if len(res.Discords) == 0 || len(res.Discords) >= 10 {
		t.Fatalf("expected between 1 and 9 discords, got %d", len(res.Discords))
	}
	for _, d := range res.Discords {
		if d.Distance <= 0 {
			t.Errorf("reported discord with non-positive distance: %+v", d)
		}
	}
}

func TestExtractor_Deterministic(t *testing.T) {
	series := sineWithNoise(400)
	cfg := testConfig(25, 4)
	cfg.Seed = 1234

	a := runExtractor(t, cfg, series)
	b := runExtractor(t, cfg, series)

	if len(a.Discords) != len(b.Discords) {
		t.Fatalf("length mismatch: %d vs %d", len(a.Discords), len(b.Discords))
	}
	for i := range a.Discords {
		if a.Discords[i] != b.Discords[i] {
			t.Errorf("discord %d differs: %+v vs %+v", i, a.Discords[i], b.Discords[i])
		}
	}
	if a.Stats != b.Stats {
		t.Errorf("stats differ: %+v vs %+v", a.Stats, b.Stats)
	}
}

func TestExtractor_MatchesBruteForce(t *testing.T) {
	series := sineWithNoise(300)

	for _, seed := range []uint64{0, 1, 99} {
		cfg := testConfig(20, 3)
		cfg.Seed = seed
		e, err := NewExtractor(cfg)
		if err != nil {
			t.Fatal(err)
		}

		heuristic, err := e.Run(context.Background(), series)
		if err != nil {
			t.Fatal(err)
		}
		exact, err := e.RunBruteForce(context.Background(), series)
		if err != nil {
			t.Fatal(err)
		}

		if len(heuristic.Discords) != len(exact.Discords) {
			t.Fatalf("seed %d: %d discords vs %d exact", seed, len(heuristic.Discords), len(exact.Discords))
		}
		for i := range exact.Discords {
			if heuristic.Discords[i] != exact.Discords[i] {
				t.Errorf("seed %d, discord %d: %+v vs exact %+v", seed, i, heuristic.Discords[i], exact.Discords[i])
			}
		}
		if heuristic.Stats.DistanceCalls >= exact.Stats.DistanceCalls {
			t.Errorf("seed %d: expected fewer distance calls than brute force (%d >= %d)",
				seed, heuristic.Stats.DistanceCalls, exact.Stats.DistanceCalls)
		}
	}
}

func TestExtractor_ExclusionZone(t *testing.T) {
	series := sineWithNoise(500)
	cfg := testConfig(20, 8)
	res := runExtractor(t, cfg, series)

	if len(res.Discords) < 2 {
		t.Fatalf("expected several discords, got %d", len(res.Discords))
	}
	for i := range res.Discords {
		for j := i + 1; j < len(res.Discords); j++ {
			if gap := abs(res.Discords[i].Position - res.Discords[j].Position); gap < cfg.WindowSize {
				t.Errorf("discords %d and %d only %d apart", i, j, gap)
			}
		}
	}
}

func TestExtractor_BoundaryExclusion(t *testing.T) {
	series := periodicSine(60)
	copy(series[55:60], []float64{7, -7, 7, -7, 7})
	cfg := testConfig(5, 5)

	res := runExtractor(t, cfg, series)

	for _, d := range res.Discords {
		if d.Position > len(series)-cfg.WindowSize-1 {
			t.Errorf("discord at %d lies in the final window range", d.Position)
		}
	}
}

func TestExtractor_MonotonicAdmission(t *testing.T) {
	var admissions int
	hook := withAdmitHook(func(rec Record, previousBest float64) {
		admissions++
		if rec.Distance <= previousBest {
			t.Errorf("admitted %+v without beating best %v", rec, previousBest)
		}
	})

	runExtractor(t, testConfig(15, 5), sineWithNoise(300), hook)

	if admissions == 0 {
		t.Error("expected at least one admission")
	}
}

func TestExtractor_SelfMatchExclusion(t *testing.T) {
	series := sineWithNoise(200)
	// Encode the window start in the first value so the distance function
	// can recover which windows are compared.
	for i := range series {
		series[i] += float64(i) * 1000
	}
	window := 10

	var calls int
	dist := func(a, b []float64) (float64, error) {
		calls++
		pa := int(math.Round(a[0] / 1000))
		pb := int(math.Round(b[0] / 1000))
		if abs(pa-pb) <= window {
			t.Errorf("compared overlapping windows %d and %d", pa, pb)
		}
		return distance.Euclidean(a, b)
	}

	runExtractor(t, testConfig(window, 3), series, WithDistance(dist))

	if calls == 0 {
		t.Error("distance function never called")
	}
}

func TestExtractor_DistanceErrorIsFatal(t *testing.T) {
	boom := errors.New("boom")
	e, err := NewExtractor(testConfig(5, 2), WithDistance(func(a, b []float64) (float64, error) {
		return 0, boom
	}))
	if err != nil {
		t.Fatal(err)
	}

	_, err = e.Run(context.Background(), sineWithAnomaly())
	if !errors.Is(err, ErrDistance) || !errors.Is(err, boom) {
		t.Errorf("expected ErrDistance wrapping cause, got %v", err)
	}
}

func TestExtractor_Cancelled(t *testing.T) {
	e, err := NewExtractor(testConfig(20, 3))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = e.Run(ctx, sineWithNoise(300))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		n      int
		short  bool
	}{
		{"zero window", func(c *Config) { c.WindowSize = 0 }, 50, false},
		{"negative paa", func(c *Config) { c.PAASize = -1 }, 50, false},
		{"zero alphabet", func(c *Config) { c.AlphabetSize = 0 }, 50, false},
		{"alphabet too large", func(c *Config) { c.AlphabetSize = 27 }, 50, false},
		{"zero count", func(c *Config) { c.DiscordCount = 0 }, 50, false},
		{"window longer than series", func(c *Config) { c.WindowSize = 60 }, 50, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(5, 1)
			tt.mutate(&cfg)
			err := cfg.Validate(tt.n)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
			if tt.short != errors.Is(err, ErrSeriesTooShort) {
				t.Errorf("ErrSeriesTooShort = %v, want %v", errors.Is(err, ErrSeriesTooShort), tt.short)
			}
		})
	}

	if err := testConfig(5, 1).Validate(5); err != nil {
		t.Errorf("window equal to series length should be valid: %v", err)
	}
}

func TestFindDiscords_RejectsInvalidInput(t *testing.T) {
	if _, err := FindDiscords([]float64{1, 2, 3}, 5, 3, 3, 0.01, 1); !errors.Is(err, ErrSeriesTooShort) {
		t.Errorf("expected ErrSeriesTooShort, got %v", err)
	}
	if _, err := FindDiscords(sineWithAnomaly(), 5, 3, 3, 0.01, 0); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
	series := sineWithAnomaly()
	series[3] = math.NaN()
	if _, err := FindDiscords(series, 5, 3, 3, 0.01, 1); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for NaN, got %v", err)
	}
}

func TestSortByPosition(t *testing.T) {
	records := []Record{{Position: 40, Distance: 3}, {Position: 5, Distance: 2}, {Position: 22, Distance: 1}}
	sorted := SortByPosition(records)

	want := []int{5, 22, 40}
	for i, p := range want {
		if sorted[i].Position != p {
			t.Errorf("sorted[%d] = %d, want %d", i, sorted[i].Position, p)
		}
	}
	if records[0].Position != 40 {
		t.Error("SortByPosition modified its input")
	}
}
