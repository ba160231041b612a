package main

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/soltixdb/hotsax/internal/models"
)

func sampleResponse() *models.DiscordResponse {
	return &models.DiscordResponse{
		Algorithm:    "hotsax",
		Metric:       "euclidean",
		SeriesLength: 60,
		WindowSize:   5,
		PAASize:      3,
		AlphabetSize: 3,
		Requested:    2,
		Discords: []models.DiscordView{
			{Rank: 1, Position: 30, End: 35, Distance: 12.5},
		},
	}
}

func TestWriteReport_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, "json", sampleResponse()))

	var got report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "hotsax", got.Algorithm)
	require.Len(t, got.Discords, 1)
	assert.Equal(t, 30, got.Discords[0].Position)
	assert.Equal(t, 12.5, got.Discords[0].Distance)
}

func TestWriteReport_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, "yaml", sampleResponse()))

	assert.Contains(t, buf.String(), "nn_distance: 12.5")

	var got report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 5, got.WindowSize)
	require.Len(t, got.Discords, 1)
	assert.Equal(t, 35, got.Discords[0].End)
}

func TestWriteReport_Table(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, "table", sampleResponse()))

	out := buf.String()
	assert.Contains(t, out, "RANK")
	assert.Contains(t, out, "12.500000")
	assert.Contains(t, out, "Found 1 of 2 requested discords")
	assert.NotContains(t, out, "START TIME")
}

func TestWriteReport_EmptyTable(t *testing.T) {
	color.NoColor = true
	resp := sampleResponse()
	resp.Discords = nil

	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, "", resp))
	assert.Contains(t, buf.String(), "No discords found")
}

func TestWriteReport_UnknownFormat(t *testing.T) {
	assert.Error(t, writeReport(&bytes.Buffer{}, "xml", sampleResponse()))
}

func TestFindCommand(t *testing.T) {
	values := make([]string, 60)
	for i := range values {
		v := math.Sin(2 * math.Pi * float64(i%10) / 10)
		if i >= 30 && i < 35 {
			v = []float64{9, -8, 10, -9, 8}[i-30]
		}
		values[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	input := "[" + strings.Join(values, ",") + "]"

	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"find", "--window", "5", "--paa", "3", "--alphabet", "3", "--count", "1", "--output", "json"})
	require.NoError(t, rootCmd.Execute())

	var got report
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got.Discords, 1)
	assert.InDelta(t, 30, got.Discords[0].Position, 2)
	assert.Equal(t, 60, got.SeriesLength)
}
