// Package stats aggregates per-request outcomes of a benchmark run into a
// mergeable snapshot and compares two aggregated snapshots metric by metric.
//
// Each concurrent worker of the benchmarking driver owns one BenchmarkStats
// and records outcomes into it without locking. When workers quiesce (or at
// periodic checkpoints) the partial snapshots are folded into a single
// aggregate with Merge. A snapshot must be treated as immutable once it has
// been serialized or handed to a comparison.
package stats

import (
	"time"

	"github.com/google/uuid"

	"github.com/armadaproject/benchstats/internal/hdr"
)

// BenchmarkStats holds the aggregated statistics of one benchmark run:
// elapsed wall time, success and error counters, and the latency
// distribution of successful requests in milliseconds. Failed requests are
// counted but their latencies are not recorded.
type BenchmarkStats struct {
	runId      string
	recordedAt time.Time
	duration   time.Duration
	numSuccess uint64
	numError   uint64
	latency    *hdr.Histogram
}

// New returns an empty snapshot with a fresh run id and the default latency
// histogram configuration.
func New() *BenchmarkStats {
	return &BenchmarkStats{
		runId:   uuid.NewString(),
		latency: hdr.New(),
	}
}

// RunId returns the identifier assigned to this run.
func (s *BenchmarkStats) RunId() string {
	return s.runId
}

// RecordedAt returns the time at which the run was finalized, or the zero
// time if Finalize has not been called.
func (s *BenchmarkStats) RecordedAt() time.Time {
	return s.recordedAt
}

// Duration returns the elapsed wall time of the run.
func (s *BenchmarkStats) Duration() time.Duration {
	return s.duration
}

// NumSuccess returns the number of successful requests.
func (s *BenchmarkStats) NumSuccess() uint64 {
	return s.numSuccess
}

// NumError returns the number of failed requests.
func (s *BenchmarkStats) NumError() uint64 {
	return s.numError
}

// Latency returns the latency histogram over successful requests.
func (s *BenchmarkStats) Latency() *hdr.Histogram {
	return s.latency
}

// RecordSuccess counts one successful request and records its latency, in
// milliseconds, into the histogram. If the latency is outside the
// histogram's trackable range the observation is rejected with
// *hdr.ErrValueOutOfRange and the success counter is left unchanged, so the
// counter and the histogram sample count always agree. Callers wanting a
// clamping policy instead should clamp before calling.
func (s *BenchmarkStats) RecordSuccess(latencyMs uint64) error {
	if err := s.latency.Record(latencyMs); err != nil {
		return err
	}
	s.numSuccess++
	return nil
}

// RecordError counts one failed request.
func (s *BenchmarkStats) RecordError() {
	s.numError++
}

// Finalize sets the elapsed wall time of the run and stamps the snapshot
// with the current time. Duration is passively recorded; nothing in this
// package enforces it.
func (s *BenchmarkStats) Finalize(duration time.Duration) {
	s.duration = duration
	s.recordedAt = time.Now().UTC().Truncate(time.Second)
}

// Merge folds other into s: counters are added, the histograms are merged,
// and the duration is taken from other. Taking the other snapshot's duration
// is deliberate: the snapshot handed to Merge carries the authoritative
// elapsed time for the combined run, e.g. when folding a final total into a
// running aggregate. This asymmetry means merge order matters for duration
// (last writer wins) but for nothing else; counters and quantiles are
// independent of merge order. Merging histograms with different
// configurations fails with *hdr.ErrIncompatibleHistograms and leaves s
// unchanged.
func (s *BenchmarkStats) Merge(other *BenchmarkStats) error {
	if err := s.latency.Merge(other.latency); err != nil {
		return err
	}
	s.duration = other.duration
	s.numSuccess += other.numSuccess
	s.numError += other.numError
	return nil
}

// Throughput returns the number of successful requests per second of run
// duration. A zero-duration run has no defined throughput and returns
// *ErrDegenerateBaseline.
func (s *BenchmarkStats) Throughput() (float64, error) {
	seconds := s.duration.Seconds()
	if seconds == 0 {
		return 0, &ErrDegenerateBaseline{
			Metric: string(MetricThroughput),
			Reason: "run duration is zero",
		}
	}
	return float64(s.numSuccess) / seconds, nil
}

// ErrorRate returns the fraction of requests that failed. A run with no
// requests at all has no defined error rate and returns
// *ErrDegenerateBaseline.
func (s *BenchmarkStats) ErrorRate() (float64, error) {
	total := s.numSuccess + s.numError
	if total == 0 {
		return 0, &ErrDegenerateBaseline{
			Metric: string(MetricErrorRate),
			Reason: "no requests were recorded",
		}
	}
	return float64(s.numError) / float64(total), nil
}
