package serialize

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// Compressor handles ZStandard compression for encoded annotations.
// Create once and reuse to eliminate allocations.
type Compressor struct {
	encoder *zstd.Encoder
}

// NewCompressor creates a reusable ZStandard compressor.
// Uses SpeedDefault (level 3) for balanced compression ratio and speed.
// Caller must call Close() when done to release resources.
func NewCompressor() (*Compressor, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}

	return &Compressor{
		encoder: encoder,
	}, nil
}

// Compress compresses data using ZStandard.
// Safe for concurrent use from multiple goroutines.
func (c *Compressor) Compress(data []byte) []byte {
	if len(data) == 0 {
		return []byte{}
	}

	// EncodeAll is goroutine-safe
	return c.encoder.EncodeAll(data, make([]byte, 0, len(data)))
}

// Close releases compressor resources.
func (c *Compressor) Close() error {
	if c.encoder != nil {
		return c.encoder.Close()
	}
	return nil
}

// Decompressor handles ZStandard decompression.
// Create once and reuse to eliminate allocations.
type Decompressor struct {
	decoder *zstd.Decoder
}

// NewDecompressor creates a reusable ZStandard decompressor.
// Caller must call Close() when done to release resources.
func NewDecompressor() (*Decompressor, error) {
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}

	return &Decompressor{
		decoder: decoder,
	}, nil
}

// Decompress decompresses ZStandard data.
// Safe for concurrent use from multiple goroutines.
func (d *Decompressor) Decompress(compressed []byte) ([]byte, error) {
	if len(compressed) == 0 {
		return []byte{}, nil
	}

	// DecodeAll is goroutine-safe
	decompressed, err := d.decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}

	return decompressed, nil
}

// Close releases decompressor resources.
func (d *Decompressor) Close() {
	if d.decoder != nil {
		d.decoder.Close()
	}
}

// Process-wide codec instances; both are safe for concurrent use and live
// for the lifetime of the process.
var (
	sharedCompressor   = sync.OnceValues(NewCompressor)
	sharedDecompressor = sync.OnceValues(NewDecompressor)
)

// Compress compresses data with the shared process-wide compressor.
func Compress(data []byte) ([]byte, error) {
	c, err := sharedCompressor()
	if err != nil {
		return nil, err
	}
	return c.Compress(data), nil
}

// Decompress decompresses data with the shared process-wide decompressor.
func Decompress(data []byte) ([]byte, error) {
	d, err := sharedDecompressor()
	if err != nil {
		return nil, err
	}
	return d.Decompress(data)
}
