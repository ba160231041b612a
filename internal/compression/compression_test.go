package compression

import (
	"bytes"
	"encoding/json"
	"math/rand/v2"
	"testing"
)

func seriesPayload(n int) []byte {
	values := make([]float64, n)
	for i := range values {
		values[i] = float64(i%10) * 0.5
	}
	data, _ := json.Marshal(map[string]any{"values": values})
	return data
}

func randomPayload(n int) []byte {
	rng := rand.New(rand.NewPCG(1, 2))
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(rng.IntN(256))
	}
	return data
}

func TestCompressors_RoundTrip(t *testing.T) {
	payloads := map[string][]byte{
		"short":        []byte("Hello, World!"),
		"series":       seriesPayload(5000),
		"random":       randomPayload(4096),
		"single byte":  {0x42},
	}

	for _, algo := range []Algorithm{None, Snappy, LZ4, Zstd} {
		compressor, err := GetCompressor(algo)
		if err != nil {
			t.Fatalf("GetCompressor(%s) failed: %v", algo, err)
		}
		if compressor.Algorithm() != algo {
			t.Errorf("Expected algorithm %s, got %s", algo, compressor.Algorithm())
		}

		for name, original := range payloads {
			compressed, err := compressor.Compress(original)
			if err != nil {
				t.Fatalf("%s/%s: Compress failed: %v", algo, name, err)
			}
			decompressed, err := compressor.Decompress(compressed)
			if err != nil {
				t.Fatalf("%s/%s: Decompress failed: %v", algo, name, err)
			}
			if !bytes.Equal(original, decompressed) {
				t.Errorf("%s/%s: decompressed data does not match original", algo, name)
			}
		}
	}
}

func TestCompressors_ShrinkRepetitiveData(t *testing.T) {
	original := seriesPayload(5000)

	for _, algo := range []Algorithm{Snappy, LZ4, Zstd} {
		compressor, _ := GetCompressor(algo)
		compressed, err := compressor.Compress(original)
		if err != nil {
			t.Fatalf("%s: Compress failed: %v", algo, err)
		}
		if len(compressed) >= len(original) {
			t.Errorf("%s: compressed size %d >= original %d", algo, len(compressed), len(original))
		}
	}
}

func TestCompressors_EmptyData(t *testing.T) {
	for _, algo := range []Algorithm{None, Snappy, LZ4, Zstd} {
		compressor, _ := GetCompressor(algo)

		compressed, err := compressor.Compress([]byte{})
		if err != nil {
			t.Fatalf("%s: Compress empty data failed: %v", algo, err)
		}
		if len(compressed) != 0 {
			t.Errorf("%s: expected empty compressed data, got length %d", algo, len(compressed))
		}

		decompressed, err := compressor.Decompress([]byte{})
		if err != nil {
			t.Fatalf("%s: Decompress empty data failed: %v", algo, err)
		}
		if len(decompressed) != 0 {
			t.Errorf("%s: expected empty decompressed data, got length %d", algo, len(decompressed))
		}
	}
}

func TestCompressors_CorruptData(t *testing.T) {
	corrupt := []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}

	for _, algo := range []Algorithm{Snappy, LZ4, Zstd} {
		compressor, _ := GetCompressor(algo)
		if _, err := compressor.Decompress(corrupt); err == nil {
			t.Errorf("%s: expected error for corrupt data", algo)
		}
	}
}

func TestGetCompressor_Unsupported(t *testing.T) {
	if _, err := GetCompressor(Algorithm(99)); err == nil {
		t.Error("Expected error for unsupported algorithm 99, got nil")
	}
}

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		input   string
		want    Algorithm
		wantErr bool
	}{
		{"", None, false},
		{"none", None, false},
		{"Snappy", Snappy, false},
		{" lz4 ", LZ4, false},
		{"zstd", Zstd, false},
		{"gzip", None, true},
	}

	for _, tt := range tests {
		got, err := ParseAlgorithm(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAlgorithm(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAlgorithm(%q) = %s, want %s", tt.input, got, tt.want)
		}
		if !tt.wantErr && tt.input != "" {
			roundTrip, _ := ParseAlgorithm(got.String())
			if roundTrip != got {
				t.Errorf("String/Parse round trip failed for %s", got)
			}
		}
	}
}
