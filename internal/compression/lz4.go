package compression

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/pierrec/lz4/v4"
)

// lz4HeaderSize covers the uncompressed and compressed lengths.
// A compressed length of 0 means the payload is stored raw.
const lz4HeaderSize = 8

// LZ4Compressor implements Compressor using LZ4 blocks with a size header
type LZ4Compressor struct{}

// NewLZ4Compressor creates a new LZ4 compressor
func NewLZ4Compressor() *LZ4Compressor {
	return &LZ4Compressor{}
}

// Compress compresses data using LZ4
func (l *LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return data, nil
	}

	buf := make([]byte, lz4HeaderSize+lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, buf[lz4HeaderSize:], nil)
	if err != nil {
		return nil, fmt.Errorf("lz4 compress failed: %w", err)
	}

	binary.LittleEndian.PutUint32(buf[0:], uint32(len(data)))
	if n == 0 {
		// Incompressible
		binary.LittleEndian.PutUint32(buf[4:], 0)
		n = copy(buf[lz4HeaderSize:], data)
		return buf[:lz4HeaderSize+n], nil
	}
	binary.LittleEndian.PutUint32(buf[4:], uint32(n))
	return buf[:lz4HeaderSize+n], nil
}

// Decompress decompresses LZ4 compressed data
func (l *LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return data, nil
	}
	if len(data) < lz4HeaderSize {
		return nil, errors.New("lz4 decompress failed: block too small for header")
	}

	size := binary.LittleEndian.Uint32(data[0:])
	compressed := binary.LittleEndian.Uint32(data[4:])
	body := data[lz4HeaderSize:]

	if compressed == 0 {
		if uint32(len(body)) < size {
			return nil, errors.New("lz4 decompress failed: raw block truncated")
		}
		out := make([]byte, size)
		copy(out, body)
		return out, nil
	}
	if uint32(len(body)) < compressed {
		return nil, errors.New("lz4 decompress failed: compressed block truncated")
	}

	out := make([]byte, size)
	n, err := lz4.UncompressBlock(body[:compressed], out)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompress failed: %w", err)
	}
	if uint32(n) != size {
		return nil, fmt.Errorf("lz4 decompress failed: size mismatch %d != %d", n, size)
	}
	return out, nil
}

// Algorithm returns LZ4
func (l *LZ4Compressor) Algorithm() Algorithm {
	return LZ4
}
