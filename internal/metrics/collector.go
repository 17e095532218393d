// Package metrics exposes a published benchmark snapshot as Prometheus
// metrics, e.g. for scraping the aggregate of a long-running soak test.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/armadaproject/benchstats/internal/stats"
)

const prefix = "benchstats_"

var (
	throughputDesc = prometheus.NewDesc(
		prefix+"throughput_requests_per_second",
		"Successful requests per second of run duration.",
		nil, nil,
	)
	errorRateDesc = prometheus.NewDesc(
		prefix+"error_rate",
		"Fraction of requests that failed.",
		nil, nil,
	)
	requestsDesc = prometheus.NewDesc(
		prefix+"requests_total",
		"Number of requests by result.",
		[]string{"result"}, nil,
	)
	latencyDesc = prometheus.NewDesc(
		prefix+"latency_milliseconds",
		"Latency of successful requests at a given quantile.",
		[]string{"quantile"}, nil,
	)
)

// latencyQuantiles are the quantiles exported per snapshot, matching the
// columns of the summary table.
var latencyQuantiles = []struct {
	label string
	q     float64
}{
	{"0", 0},
	{"0.25", 0.25},
	{"0.5", 0.5},
	{"0.75", 0.75},
	{"0.9", 0.9},
	{"0.99", 0.99},
	{"0.999", 0.999},
	{"1", 1},
}

// SnapshotCollector is a prometheus.Collector over a single published
// snapshot. The snapshot is immutable once published, so collection is
// read-only and requires no coordination. Rates that cannot be computed
// (empty or zero-duration runs) are skipped rather than exported as NaN.
type SnapshotCollector struct {
	snapshot *stats.BenchmarkStats
}

func NewSnapshotCollector(snapshot *stats.BenchmarkStats) *SnapshotCollector {
	return &SnapshotCollector{snapshot: snapshot}
}

func (c *SnapshotCollector) Describe(out chan<- *prometheus.Desc) {
	out <- throughputDesc
	out <- errorRateDesc
	out <- requestsDesc
	out <- latencyDesc
}

func (c *SnapshotCollector) Collect(out chan<- prometheus.Metric) {
	if tps, err := c.snapshot.Throughput(); err == nil {
		out <- prometheus.MustNewConstMetric(throughputDesc, prometheus.GaugeValue, tps)
	}
	if rate, err := c.snapshot.ErrorRate(); err == nil {
		out <- prometheus.MustNewConstMetric(errorRateDesc, prometheus.GaugeValue, rate)
	}
	out <- prometheus.MustNewConstMetric(
		requestsDesc, prometheus.CounterValue, float64(c.snapshot.NumSuccess()), "success",
	)
	out <- prometheus.MustNewConstMetric(
		requestsDesc, prometheus.CounterValue, float64(c.snapshot.NumError()), "error",
	)
	latency := c.snapshot.Latency()
	for _, lq := range latencyQuantiles {
		out <- prometheus.MustNewConstMetric(
			latencyDesc, prometheus.GaugeValue, float64(latency.ValueAtQuantile(lq.q)), lq.label,
		)
	}
}
