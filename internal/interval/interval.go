// Package interval provides the bounded-count / bounded-duration /
// unbounded value used to configure how long a benchmarking driver runs.
// It is pure configuration; aggregation and comparison never consume it.
package interval

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

type kind int

const (
	kindCount kind = iota
	kindDuration
	kindUnbounded
)

// Interval is either a bounded number of cycles, a bounded duration, or
// unbounded. Unbounded is an explicit variant rather than a sentinel
// duration, so callers never have to compare against a magic value.
type Interval struct {
	kind     kind
	count    uint64
	duration time.Duration
}

// Count returns an interval bounding a run to n cycles.
func Count(n uint64) Interval {
	return Interval{kind: kindCount, count: n}
}

// Duration returns an interval bounding a run to the given duration.
func Duration(d time.Duration) Interval {
	return Interval{kind: kindDuration, duration: d}
}

// Unbounded returns the interval that never bounds a run.
func Unbounded() Interval {
	return Interval{kind: kindUnbounded}
}

// Parse converts a string into an Interval. It accepts an integer number of
// cycles, a duration in Go syntax (e.g. "90s", "5m"), or the literal
// "unbounded".
func Parse(s string) (Interval, error) {
	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		return Count(n), nil
	}
	if d, err := time.ParseDuration(s); err == nil {
		return Duration(d), nil
	}
	if s == "unbounded" {
		return Unbounded(), nil
	}
	return Interval{}, errors.Errorf(
		"invalid interval %q: requires an integer number of cycles, a duration, or \"unbounded\"", s,
	)
}

// IsUnbounded reports whether the interval never bounds a run.
func (i Interval) IsUnbounded() bool {
	return i.kind == kindUnbounded
}

// AsCount returns the cycle bound, if the interval is a count.
func (i Interval) AsCount() (uint64, bool) {
	return i.count, i.kind == kindCount
}

// AsDuration returns the duration bound, if the interval is a duration.
func (i Interval) AsDuration() (time.Duration, bool) {
	return i.duration, i.kind == kindDuration
}

func (i Interval) String() string {
	switch i.kind {
	case kindCount:
		return fmt.Sprintf("%d cycles", i.count)
	case kindDuration:
		return i.duration.String()
	default:
		return "unbounded"
	}
}
