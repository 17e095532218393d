// Package hdr wraps a high-dynamic-range histogram for recording latency
// observations. The histogram guarantees a fixed number of significant
// decimal digits of precision for any value within its trackable range,
// which makes tail quantiles cheap to query without retaining raw samples.
package hdr

import (
	"fmt"
	"math"

	hdrhistogram "github.com/HdrHistogram/hdrhistogram-go"
)

const (
	// DefaultLowestTrackable is the smallest latency, in milliseconds, the
	// default configuration can distinguish from zero.
	DefaultLowestTrackable = 1
	// DefaultHighestTrackable is the largest latency, in milliseconds, the
	// default configuration can record. 24 hours is far beyond any sane
	// request latency, so out-of-range errors indicate driver bugs.
	DefaultHighestTrackable = 24 * 60 * 60 * 1000
	// DefaultSignificantFigures is the number of significant decimal digits
	// maintained across the trackable range.
	DefaultSignificantFigures = 3
)

// Config holds the precision and range parameters of a histogram.
// Two histograms can only be merged if their configs are equal.
type Config struct {
	LowestTrackable    uint64
	HighestTrackable   uint64
	SignificantFigures int
}

func (c Config) String() string {
	return fmt.Sprintf(
		"{lowest: %d, highest: %d, significant figures: %d}",
		c.LowestTrackable, c.HighestTrackable, c.SignificantFigures,
	)
}

// Histogram is a mergeable distribution of non-negative integer latency
// observations. The zero value is not usable; create instances with New or
// NewWithConfig. A Histogram is owned by a single goroutine while being
// written to and must be treated as immutable once published.
type Histogram struct {
	inner *hdrhistogram.Histogram
}

// New returns an empty histogram with the default trackable range and
// precision.
func New() *Histogram {
	return NewWithConfig(Config{
		LowestTrackable:    DefaultLowestTrackable,
		HighestTrackable:   DefaultHighestTrackable,
		SignificantFigures: DefaultSignificantFigures,
	})
}

// NewWithConfig returns an empty histogram with the given trackable range and
// precision. Significant figures must be between 1 and 5.
func NewWithConfig(config Config) *Histogram {
	return &Histogram{
		inner: hdrhistogram.New(
			int64(config.LowestTrackable),
			int64(config.HighestTrackable),
			config.SignificantFigures,
		),
	}
}

// Config returns the precision and range parameters of the histogram.
func (h *Histogram) Config() Config {
	return Config{
		LowestTrackable:    uint64(h.inner.LowestTrackableValue()),
		HighestTrackable:   uint64(h.inner.HighestTrackableValue()),
		SignificantFigures: int(h.inner.SignificantFigures()),
	}
}

// Record adds one observation to the histogram. Values outside the trackable
// range are rejected with *ErrValueOutOfRange; it is up to the caller to
// clamp or drop such values.
func (h *Histogram) Record(value uint64) error {
	if value > math.MaxInt64 || h.inner.RecordValue(int64(value)) != nil {
		config := h.Config()
		return &ErrValueOutOfRange{
			Value:            value,
			LowestTrackable:  config.LowestTrackable,
			HighestTrackable: config.HighestTrackable,
		}
	}
	return nil
}

// Merge adds all observations recorded into other to h. Merging is
// associative and commutative; quantile results of the merged histogram do
// not depend on merge order. Histograms with different configurations cannot
// be merged and cause *ErrIncompatibleHistograms.
func (h *Histogram) Merge(other *Histogram) error {
	if h.Config() != other.Config() {
		return &ErrIncompatibleHistograms{
			Config:      h.Config(),
			OtherConfig: other.Config(),
		}
	}
	// Identical configurations imply identical bucket layouts, so no
	// observation can fall outside of the receiver's range here.
	h.inner.Merge(other.inner)
	return nil
}

// TotalCount returns the number of recorded observations.
func (h *Histogram) TotalCount() uint64 {
	return uint64(h.inner.TotalCount())
}

// Min returns the minimum recorded value, or 0 if the histogram is empty.
func (h *Histogram) Min() uint64 {
	return uint64(h.inner.Min())
}

// Max returns the maximum recorded value, or 0 if the histogram is empty.
func (h *Histogram) Max() uint64 {
	return uint64(h.inner.Max())
}

// ValueAtQuantile returns the latency value at or below which at least
// fraction q of the recorded observations fall, for q in [0, 1]. Quantiles
// below the minimum recorded value return the minimum and quantiles above
// the maximum return the maximum. An empty histogram returns 0 for every
// quantile. Values of q outside [0, 1] are clamped.
func (h *Histogram) ValueAtQuantile(q float64) uint64 {
	if q < 0 {
		q = 0
	} else if q > 1 {
		q = 1
	}
	return uint64(h.inner.ValueAtQuantile(q * 100))
}
