package jobs

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/soltixdb/hotsax/internal/compression"
)

// ErrEmptyPayload is returned when decoding an empty message
var ErrEmptyPayload = errors.New("jobs: empty payload")

// Codec serializes jobs and results as JSON behind a one-byte header that
// names the compression algorithm of the body. Decoding honours the header,
// so producers and consumers may use different algorithms.
type Codec struct {
	compressor compression.Compressor
}

// NewCodec creates a codec that compresses with algo
func NewCodec(algo compression.Algorithm) (*Codec, error) {
	c, err := compression.GetCompressor(algo)
	if err != nil {
		return nil, err
	}
	return &Codec{compressor: c}, nil
}

// Algorithm returns the compression algorithm used when encoding
func (c *Codec) Algorithm() compression.Algorithm {
	return c.compressor.Algorithm()
}

// EncodeJob encodes a job
func (c *Codec) EncodeJob(job *Job) ([]byte, error) {
	return c.encode(job)
}

// DecodeJob decodes a job
func (c *Codec) DecodeJob(data []byte) (*Job, error) {
	var job Job
	if err := c.decode(data, &job); err != nil {
		return nil, err
	}
	if job.ID == "" {
		return nil, errors.New("jobs: decoded job has no id")
	}
	return &job, nil
}

// EncodeResult encodes a result
func (c *Codec) EncodeResult(res *Result) ([]byte, error) {
	return c.encode(res)
}

// DecodeResult decodes a result
func (c *Codec) DecodeResult(data []byte) (*Result, error) {
	var res Result
	if err := c.decode(data, &res); err != nil {
		return nil, err
	}
	if res.JobID == "" {
		return nil, errors.New("jobs: decoded result has no job id")
	}
	return &res, nil
}

func (c *Codec) encode(v interface{}) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("jobs: marshal: %w", err)
	}
	body, err := c.compressor.Compress(raw)
	if err != nil {
		return nil, fmt.Errorf("jobs: compress: %w", err)
	}

	out := make([]byte, 1+len(body))
	out[0] = byte(c.compressor.Algorithm())
	copy(out[1:], body)
	return out, nil
}

func (c *Codec) decode(data []byte, v interface{}) error {
	if len(data) == 0 {
		return ErrEmptyPayload
	}

	decompressor, err := compression.GetCompressor(compression.Algorithm(data[0]))
	if err != nil {
		return fmt.Errorf("jobs: %w", err)
	}
	raw, err := decompressor.Decompress(data[1:])
	if err != nil {
		return fmt.Errorf("jobs: decompress: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("jobs: unmarshal: %w", err)
	}
	return nil
}
