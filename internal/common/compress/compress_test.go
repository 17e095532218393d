package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZlibRoundTrip(t *testing.T) {
	input := bytes.Repeat([]byte("benchstats"), 100)

	compressed, err := NewZlibCompressor().Compress(input)
	require.NoError(t, err)
	assert.Less(t, len(compressed), len(input))

	decompressed, err := NewZlibDecompressor().Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, input, decompressed)
}

func TestZlibDecompressRejectsGarbage(t *testing.T) {
	_, err := NewZlibDecompressor().Decompress([]byte{0xde, 0xad, 0xbe, 0xef})
	assert.Error(t, err)
}

func TestNoOpRoundTrip(t *testing.T) {
	input := []byte("untouched")

	compressed, err := (&NoOpCompressor{}).Compress(input)
	require.NoError(t, err)
	decompressed, err := (&NoOpDecompressor{}).Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, input, decompressed)
}
