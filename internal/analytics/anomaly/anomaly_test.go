package anomaly

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/soltixdb/hotsax/internal/analytics"
	"github.com/soltixdb/hotsax/internal/analytics/discord"
)

func createTestSeries() analytics.Series {
	values := make(analytics.Series, 80)
	for i := range values {
		values[i] = math.Sin(2 * math.Pi * float64(i%10) / 10)
	}
	copy(values[40:45], []float64{9, -8, 10, -9, 8})
	return values
}

func testConfig() DetectorConfig {
	config := DefaultConfig()
	config.WindowSize = 5
	config.PAASize = 3
	config.AlphabetSize = 3
	config.DiscordCount = 2
	return config
}

func TestListDetectors(t *testing.T) {
	names := ListDetectors()
	if len(names) != 2 || names[0] != "brute_force" || names[1] != "hotsax" {
		t.Errorf("Expected [brute_force hotsax], got %v", names)
	}
}

func TestGetDetector_Unknown(t *testing.T) {
	if _, err := GetDetector("zscore"); err == nil {
		t.Error("Expected error for unknown detector")
	}
}

func TestHotSAXDetector_FindsInjectedAnomaly(t *testing.T) {
	results, err := DetectAnomalies(context.Background(), "hotsax", createTestSeries(), testConfig())
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("Expected at least one discord")
	}

	first := results[0]
	if first.Index < 38 || first.Index > 42 {
		t.Errorf("Expected first discord near 40, got %d", first.Index)
	}
	if first.Rank != 1 || first.Length != 5 || first.Type != AnomalyTypeDiscord {
		t.Errorf("Unexpected result metadata: %+v", first)
	}
	if first.Score <= 0 {
		t.Errorf("Expected positive score, got %v", first.Score)
	}
}

func TestDetectors_Agree(t *testing.T) {
	series := createTestSeries()
	config := testConfig()

	heuristic, err := DetectAnomalies(context.Background(), "hotsax", series, config)
	if err != nil {
		t.Fatal(err)
	}
	exact, err := DetectAnomalies(context.Background(), "brute_force", series, config)
	if err != nil {
		t.Fatal(err)
	}

	if len(heuristic) == 0 || len(exact) == 0 {
		t.Fatal("Expected discords from both detectors")
	}
	if heuristic[0].Score != exact[0].Score {
		t.Errorf("Top discord score differs: %v vs %v", heuristic[0].Score, exact[0].Score)
	}
}

func TestDetect_InsufficientData(t *testing.T) {
	config := testConfig()
	config.MinDataPoints = 100

	for _, name := range ListDetectors() {
		results, err := DetectAnomalies(context.Background(), name, createTestSeries(), config)
		if err != nil {
			t.Errorf("%s: unexpected error %v", name, err)
		}
		if results != nil {
			t.Errorf("%s: expected nil results, got %v", name, results)
		}
	}
}

func TestDetect_InvalidConfig(t *testing.T) {
	config := testConfig()
	config.WindowSize = 0

	_, err := DetectAnomalies(context.Background(), "hotsax", createTestSeries(), config)
	if !errors.Is(err, discord.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}
