package main

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/soltixdb/hotsax/internal/analytics"
	"github.com/soltixdb/hotsax/internal/models"
	"github.com/soltixdb/hotsax/internal/utils"
)

// inputOptions describes where the series comes from
type inputOptions struct {
	Path       string // "-" or empty reads stdin
	Format     string // csv, json, or empty to infer from the extension
	Column     string // CSV value column, by header name or zero-based index
	TimeColumn string // Optional CSV time column (RFC3339)
	NoHeader   bool
}

// readSeries loads a series into a request, as raw values or as
// timestamped points when times are available.
func readSeries(opts inputOptions, stdin io.Reader) (*models.DiscordRequest, error) {
	var r io.Reader = stdin
	if opts.Path != "" && opts.Path != "-" {
		f, err := os.Open(opts.Path)
		if err != nil {
			return nil, err
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	data, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	switch inputFormat(opts, data) {
	case "json":
		return parseJSONSeries(data)
	default:
		return parseCSVSeries(data, opts)
	}
}

func inputFormat(opts inputOptions, data []byte) string {
	if opts.Format != "" {
		return strings.ToLower(opts.Format)
	}
	switch strings.ToLower(filepath.Ext(opts.Path)) {
	case ".json":
		return "json"
	case ".csv", ".txt":
		return "csv"
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{') {
		return "json"
	}
	return "csv"
}

// parseJSONSeries accepts a number array, an array of {"time","value"}
// points, or a request object carrying "values" or "points".
func parseJSONSeries(data []byte) (*models.DiscordRequest, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var req models.DiscordRequest
		if err := json.Unmarshal(trimmed, &req); err != nil {
			return nil, fmt.Errorf("invalid JSON request: %w", err)
		}
		return &req, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var raw []interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("invalid JSON series: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("JSON series is empty")
	}

	if _, isObject := raw[0].(map[string]interface{}); isObject {
		var points []analytics.TimeSeriesPoint
		if err := json.Unmarshal(trimmed, &points); err != nil {
			return nil, fmt.Errorf("invalid JSON points: %w", err)
		}
		return &models.DiscordRequest{Points: points}, nil
	}

	values, indices := utils.ToFloat64Slice(raw)
	if len(values) != len(raw) {
		return nil, fmt.Errorf("element %d is not a finite number", firstGap(indices))
	}
	return &models.DiscordRequest{Values: values}, nil
}

// firstGap returns the first index missing from an ascending index list
func firstGap(indices []int) int {
	for i, idx := range indices {
		if idx != i {
			return i
		}
	}
	return len(indices)
}

func parseCSVSeries(data []byte, opts inputOptions) (*models.DiscordRequest, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("CSV input is empty")
	}

	var header []string
	if !opts.NoHeader && !numericRow(records[0]) {
		header, records = records[0], records[1:]
	}

	valueCol, err := columnIndex(header, opts.Column, 0)
	if err != nil {
		return nil, err
	}
	timeCol := -1
	if opts.TimeColumn != "" {
		if timeCol, err = columnIndex(header, opts.TimeColumn, -1); err != nil {
			return nil, err
		}
	}

	req := &models.DiscordRequest{}
	for i, rec := range records {
		line := i + 1
		if header != nil {
			line++
		}
		if valueCol >= len(rec) {
			return nil, fmt.Errorf("line %d: missing column %d", line, valueCol)
		}
		v, ok := utils.ToFloat64(rec[valueCol])
		if !ok {
			return nil, fmt.Errorf("line %d: %q is not a finite number", line, rec[valueCol])
		}

		if timeCol < 0 {
			req.Values = append(req.Values, v)
			continue
		}
		if timeCol >= len(rec) {
			return nil, fmt.Errorf("line %d: missing time column %d", line, timeCol)
		}
		ts, err := time.Parse(time.RFC3339, strings.TrimSpace(rec[timeCol]))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		req.Points = append(req.Points, analytics.TimeSeriesPoint{Time: ts, Value: v})
	}
	return req, nil
}

// columnIndex resolves a column by header name or zero-based index
func columnIndex(header []string, column string, def int) (int, error) {
	if column == "" {
		return def, nil
	}
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), column) {
			return i, nil
		}
	}
	idx, err := strconv.Atoi(column)
	if err != nil || idx < 0 {
		return 0, fmt.Errorf("unknown column %q", column)
	}
	return idx, nil
}

func numericRow(row []string) bool {
	for _, cell := range row {
		if _, ok := utils.ToFloat64(cell); ok {
			return true
		}
	}
	return false
}
