package hdr

import (
	"bytes"
	"encoding/binary"
	"fmt"

	hdrhistogram "github.com/HdrHistogram/hdrhistogram-go"

	"github.com/armadaproject/benchstats/internal/common/compress"
)

// codecVersionV1 identifies the envelope layout written by Encode. The
// version byte is the first byte of every envelope so that readers fail
// closed on formats they do not understand.
//
// V1 layout: one version byte followed by a zlib-compressed payload of
// uvarints: lowest trackable value, highest trackable value, significant
// figures, bucket count, then one count per bucket.
const codecVersionV1 = 0x01

// maxSignificantFigures is the upper bound the underlying histogram
// implementation accepts; used to validate decoded configurations before
// reconstructing a histogram from them.
const maxSignificantFigures = 5

// Encode serializes the histogram into its versioned compact binary
// envelope. The encoding is deterministic: equal histograms produce equal
// envelopes.
func (h *Histogram) Encode() ([]byte, error) {
	snapshot := h.inner.Export()

	payload := make([]byte, 0, 4*len(snapshot.Counts))
	payload = binary.AppendUvarint(payload, uint64(snapshot.LowestTrackableValue))
	payload = binary.AppendUvarint(payload, uint64(snapshot.HighestTrackableValue))
	payload = binary.AppendUvarint(payload, uint64(snapshot.SignificantFigures))
	payload = binary.AppendUvarint(payload, uint64(len(snapshot.Counts)))
	for _, count := range snapshot.Counts {
		payload = binary.AppendUvarint(payload, uint64(count))
	}

	compressed, err := compress.NewZlibCompressor().Compress(payload)
	if err != nil {
		return nil, err
	}
	return append([]byte{codecVersionV1}, compressed...), nil
}

// Decode reconstructs a histogram from an envelope produced by Encode. The
// returned histogram yields the same min, max, and quantile values as the
// histogram the envelope was encoded from. Truncated, malformed, or
// unknown-version envelopes are rejected with *ErrCorruptEncoding.
func Decode(b []byte) (*Histogram, error) {
	if len(b) == 0 {
		return nil, &ErrCorruptEncoding{Message: "empty envelope"}
	}
	if b[0] != codecVersionV1 {
		return nil, &ErrCorruptEncoding{
			Message: fmt.Sprintf("unknown codec version %#x", b[0]),
		}
	}

	payload, err := compress.NewZlibDecompressor().Decompress(b[1:])
	if err != nil {
		return nil, &ErrCorruptEncoding{Message: "decompressing payload", Err: err}
	}

	reader := bytes.NewReader(payload)
	header := make([]uint64, 4)
	for i := range header {
		v, err := binary.ReadUvarint(reader)
		if err != nil {
			return nil, &ErrCorruptEncoding{Message: "truncated header", Err: err}
		}
		header[i] = v
	}
	lowest, highest, sigfigs, numCounts := header[0], header[1], header[2], header[3]

	if lowest < 1 || highest < 2*lowest {
		return nil, &ErrCorruptEncoding{
			Message: fmt.Sprintf("invalid trackable range [%d, %d]", lowest, highest),
		}
	}
	if sigfigs < 1 || sigfigs > maxSignificantFigures {
		return nil, &ErrCorruptEncoding{
			Message: fmt.Sprintf("invalid significant figures %d", sigfigs),
		}
	}

	// Reconstruct the bucket layout implied by the decoded configuration
	// and require the envelope to match it exactly. This bounds the counts
	// allocation and prevents importing a snapshot with a mismatched
	// bucket count.
	expected := hdrhistogram.New(int64(lowest), int64(highest), int(sigfigs)).Export()
	if numCounts != uint64(len(expected.Counts)) {
		return nil, &ErrCorruptEncoding{
			Message: fmt.Sprintf(
				"envelope holds %d buckets but configuration %s implies %d",
				numCounts,
				Config{LowestTrackable: lowest, HighestTrackable: highest, SignificantFigures: int(sigfigs)},
				len(expected.Counts),
			),
		}
	}

	counts := make([]int64, numCounts)
	for i := range counts {
		count, err := binary.ReadUvarint(reader)
		if err != nil {
			return nil, &ErrCorruptEncoding{Message: "truncated bucket counts", Err: err}
		}
		counts[i] = int64(count)
	}
	if reader.Len() != 0 {
		return nil, &ErrCorruptEncoding{
			Message: fmt.Sprintf("%d trailing bytes after bucket counts", reader.Len()),
		}
	}

	inner := hdrhistogram.Import(&hdrhistogram.Snapshot{
		LowestTrackableValue:  int64(lowest),
		HighestTrackableValue: int64(highest),
		SignificantFigures:    int64(sigfigs),
		Counts:                counts,
	})
	return &Histogram{inner: inner}, nil
}
