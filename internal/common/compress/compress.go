// Package compress provides zlib compression for the compact binary
// envelopes persisted by this module.
package compress

import (
	"bytes"
	"compress/zlib"
	"io"

	"github.com/pkg/errors"
)

// Compressor compresses a byte array.
type Compressor interface {
	Compress(b []byte) ([]byte, error)
}

// Decompressor decompresses a byte array.
type Decompressor interface {
	Decompress(b []byte) ([]byte, error)
}

// NoOpCompressor is a Compressor that does nothing. Useful for tests.
type NoOpCompressor struct{}

func (c *NoOpCompressor) Compress(b []byte) ([]byte, error) {
	return b, nil
}

// NoOpDecompressor is a Decompressor that does nothing. Useful for tests.
type NoOpDecompressor struct{}

func (c *NoOpDecompressor) Decompress(b []byte) ([]byte, error) {
	return b, nil
}

// ZlibCompressor compresses to zlib.
type ZlibCompressor struct{}

func NewZlibCompressor() *ZlibCompressor {
	return &ZlibCompressor{}
}

func (c *ZlibCompressor) Compress(b []byte) ([]byte, error) {
	var buf bytes.Buffer
	writer := zlib.NewWriter(&buf)
	if _, err := writer.Write(b); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := writer.Close(); err != nil {
		return nil, errors.WithStack(err)
	}
	return buf.Bytes(), nil
}

// ZlibDecompressor decompresses zlib.
type ZlibDecompressor struct{}

func NewZlibDecompressor() *ZlibDecompressor {
	return &ZlibDecompressor{}
}

func (d *ZlibDecompressor) Decompress(b []byte) ([]byte, error) {
	reader, err := zlib.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer reader.Close()
	decompressed, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return decompressed, nil
}
