package stats

import (
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Metric identifies one of the fixed set of metrics reported by a
// comparison.
type Metric string

const (
	MetricThroughput  Metric = "throughput"
	MetricErrorRate   Metric = "error_rate"
	MetricMinLatency  Metric = "min_latency"
	MetricP25Latency  Metric = "p25_latency"
	MetricP50Latency  Metric = "p50_latency"
	MetricP75Latency  Metric = "p75_latency"
	MetricP90Latency  Metric = "p90_latency"
	MetricP99Latency  Metric = "p99_latency"
	MetricP999Latency Metric = "p99.9_latency"
	MetricMaxLatency  Metric = "max_latency"
)

// Metrics lists all comparison metrics in report order.
var Metrics = []Metric{
	MetricThroughput,
	MetricErrorRate,
	MetricMinLatency,
	MetricP25Latency,
	MetricP50Latency,
	MetricP75Latency,
	MetricP90Latency,
	MetricP99Latency,
	MetricP999Latency,
	MetricMaxLatency,
}

// latencyQuantiles maps the latency metrics backed by a quantile query to
// their quantile. Min and max latency are read off the histogram directly.
var latencyQuantiles = map[Metric]float64{
	MetricP25Latency:  0.25,
	MetricP50Latency:  0.5,
	MetricP75Latency:  0.75,
	MetricP90Latency:  0.9,
	MetricP99Latency:  0.99,
	MetricP999Latency: 0.999,
}

// HigherIsBetter reports the polarity of the metric: true if a larger value
// means a better run. Only throughput is higher-is-better; error rate and
// all latency metrics improve as they decrease.
func (m Metric) HigherIsBetter() bool {
	return m == MetricThroughput
}

// Comparison is the outcome of comparing one metric between an old and a new
// benchmark run. OldValue and NewValue are formatted at two decimals for
// display; Diff, DiffRatio and Speedup keep full precision for programmatic
// use. Speedup is normalized so that a value >= 1.0 always means the new run
// is at least as good as the old one for this metric, regardless of the
// metric's polarity; rendering decides improvement from that single number
// and never re-derives polarity.
type Comparison struct {
	Name      Metric  `json:"name" yaml:"name"`
	OldValue  string  `json:"old_value" yaml:"oldValue"`
	NewValue  string  `json:"new_value" yaml:"newValue"`
	Diff      float64 `json:"diff" yaml:"diff"`
	DiffRatio float64 `json:"diff_ratio" yaml:"diffRatio"`
	Speedup   float64 `json:"speedup" yaml:"speedup"`
}

// MetricComparison is the per-metric result of a comparison: either a
// Comparison or the error that prevented computing one. A degenerate
// baseline in a single metric never aborts the other nine.
type MetricComparison struct {
	Metric     Metric
	Comparison *Comparison
	Err        error
}

// MarshalJSON emits either the comparison itself or the metric name plus the
// error that prevented computing it.
func (mc MetricComparison) MarshalJSON() ([]byte, error) {
	if mc.Err != nil {
		return json.Marshal(map[string]string{
			"name":  string(mc.Metric),
			"error": mc.Err.Error(),
		})
	}
	return json.Marshal(mc.Comparison)
}

// MarshalYAML mirrors MarshalJSON for the yaml formatter.
func (mc MetricComparison) MarshalYAML() (interface{}, error) {
	if mc.Err != nil {
		return map[string]string{
			"name":  string(mc.Metric),
			"error": mc.Err.Error(),
		}, nil
	}
	return mc.Comparison, nil
}

// BenchmarkCmp compares a baseline run against a candidate run. It holds no
// state beyond the two snapshots and may be used concurrently on disjoint
// snapshot pairs.
type BenchmarkCmp struct {
	Old *BenchmarkStats
	New *BenchmarkStats
}

// AllComparisons compares every metric in report order. The returned slice
// always has one entry per metric; metrics that cannot be computed carry
// their error instead of a comparison.
func (c *BenchmarkCmp) AllComparisons() []MetricComparison {
	comparisons := make([]MetricComparison, 0, len(Metrics))
	for _, m := range Metrics {
		comparison, err := c.CompareMetric(m)
		comparisons = append(comparisons, MetricComparison{
			Metric:     m,
			Comparison: comparison,
			Err:        err,
		})
	}
	return comparisons
}

// Err returns all errors that would be reported by AllComparisons combined
// into a single multierror, or nil if every metric is computable.
func (c *BenchmarkCmp) Err() error {
	var result *multierror.Error
	for _, mc := range c.AllComparisons() {
		if mc.Err != nil {
			result = multierror.Append(result, mc.Err)
		}
	}
	return result.ErrorOrNil()
}

// CompareMetric compares a single metric between the two runs. The diff is
// new minus old and the diff ratio is the diff relative to the old value; a
// zero old value makes the ratio undefined and fails with
// *ErrDegenerateBaseline rather than producing Inf or NaN. Speedup is
// 1 + ratio for higher-is-better metrics and 1 / (1 + ratio) for
// lower-is-better ones.
func (c *BenchmarkCmp) CompareMetric(m Metric) (*Comparison, error) {
	oldValue, err := metricValue(c.Old, m)
	if err != nil {
		return nil, err
	}
	newValue, err := metricValue(c.New, m)
	if err != nil {
		return nil, err
	}
	if oldValue == 0 {
		return nil, &ErrDegenerateBaseline{
			Metric: string(m),
			Reason: "old value is zero",
		}
	}

	diff := newValue - oldValue
	diffRatio := diff / oldValue
	var speedup float64
	if m.HigherIsBetter() {
		speedup = 1 + diffRatio
	} else {
		speedup = 1 / (1 + diffRatio)
	}
	return &Comparison{
		Name:      m,
		OldValue:  fmt.Sprintf("%.2f", oldValue),
		NewValue:  fmt.Sprintf("%.2f", newValue),
		Diff:      diff,
		DiffRatio: diffRatio,
		Speedup:   speedup,
	}, nil
}

// metricValue extracts the numeric value of a metric from one snapshot.
func metricValue(s *BenchmarkStats, m Metric) (float64, error) {
	switch m {
	case MetricThroughput:
		return s.Throughput()
	case MetricErrorRate:
		return s.ErrorRate()
	case MetricMinLatency:
		return float64(s.latency.Min()), nil
	case MetricMaxLatency:
		return float64(s.latency.Max()), nil
	default:
		q, ok := latencyQuantiles[m]
		if !ok {
			return 0, fmt.Errorf("unknown metric %q", m)
		}
		return float64(s.latency.ValueAtQuantile(q)), nil
	}
}
