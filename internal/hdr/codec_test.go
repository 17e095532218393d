package hdr

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/armadaproject/benchstats/internal/common/compress"
)

func TestCodec_RoundTrip(t *testing.T) {
	h := New()
	for _, v := range []uint64{1, 2, 3, 10, 10, 10, 250, 999, 1500, 30000, 1000000} {
		require.NoError(t, h.Record(v))
	}

	encoded, err := h.Encode()
	require.NoError(t, err)
	decoded, err := Decode(encoded)
	require.NoError(t, err)

	assert.Equal(t, h.Config(), decoded.Config())
	assert.Equal(t, h.TotalCount(), decoded.TotalCount())
	assert.Equal(t, h.Min(), decoded.Min())
	assert.Equal(t, h.Max(), decoded.Max())
	for _, q := range compareQuantiles {
		assert.Equal(t, h.ValueAtQuantile(q), decoded.ValueAtQuantile(q))
	}
}

func TestCodec_RoundTripEmpty(t *testing.T) {
	encoded, err := New().Encode()
	require.NoError(t, err)
	decoded, err := Decode(encoded)
	require.NoError(t, err)

	assert.Equal(t, uint64(0), decoded.TotalCount())
	for _, q := range compareQuantiles {
		assert.Equal(t, uint64(0), decoded.ValueAtQuantile(q))
	}
}

func TestCodec_Deterministic(t *testing.T) {
	h := New()
	for _, v := range []uint64{5, 17, 90000} {
		require.NoError(t, h.Record(v))
	}

	first, err := h.Encode()
	require.NoError(t, err)
	second, err := h.Encode()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCodec_DecodeRejectsBadInput(t *testing.T) {
	valid, err := New().Encode()
	require.NoError(t, err)

	tests := map[string][]byte{
		"empty envelope":    {},
		"unknown version":   append([]byte{0x7f}, valid[1:]...),
		"garbage payload":   {codecVersionV1, 0xde, 0xad, 0xbe, 0xef},
		"truncated payload": valid[:len(valid)/2],
	}
	for name, b := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(b)
			var corrupt *ErrCorruptEncoding
			assert.ErrorAs(t, err, &corrupt)
		})
	}
}

func TestCodec_DecodeRejectsMismatchedBucketCount(t *testing.T) {
	// A payload whose bucket count does not match the bucket layout implied
	// by its configuration must be refused rather than imported.
	payload := make([]byte, 0, 16)
	payload = binary.AppendUvarint(payload, DefaultLowestTrackable)
	payload = binary.AppendUvarint(payload, DefaultHighestTrackable)
	payload = binary.AppendUvarint(payload, DefaultSignificantFigures)
	payload = binary.AppendUvarint(payload, 3)
	for i := 0; i < 3; i++ {
		payload = binary.AppendUvarint(payload, 0)
	}
	compressed, err := compress.NewZlibCompressor().Compress(payload)
	require.NoError(t, err)

	_, err = Decode(append([]byte{codecVersionV1}, compressed...))
	var corrupt *ErrCorruptEncoding
	require.ErrorAs(t, err, &corrupt)
	assert.Contains(t, corrupt.Message, "buckets")
}
