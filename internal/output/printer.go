// Package output renders benchmark snapshots and comparisons as tables.
// It consumes the records produced by the stats package and feeds nothing
// back into it; whether a metric improved is decided solely from the
// normalized speedup value.
package output

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/armadaproject/benchstats/internal/stats"
)

// notComputable is rendered for metrics with a degenerate baseline.
const notComputable = "N/A"

// Printer writes human-readable benchmark tables.
type Printer struct {
	// Out is used to write the output. Defaults to standard out, but can be
	// overridden in tests to make assertions on the output.
	Out io.Writer
	// NoColor disables the green/red improvement coloring.
	NoColor bool
}

func NewPrinter() *Printer {
	return &Printer{Out: os.Stdout}
}

// PrintStats writes the 11-column summary row of one benchmark run:
// duration, throughput, error percentage, and the eight latency columns in
// milliseconds. Rates that cannot be computed are rendered as N/A.
func (p *Printer) PrintStats(s *stats.BenchmarkStats) error {
	w := tabwriter.NewWriter(p.Out, 1, 1, 2, ' ', 0)
	fmt.Fprint(w, "duration(s)\ttps\terror%\tmin\tp25\tp50\tp75\tp90\tp99\tp99.9\tmax\n")

	tps := notComputable
	if v, err := s.Throughput(); err == nil {
		tps = fmt.Sprintf("%.2f", v)
	}
	errorPercent := notComputable
	if v, err := s.ErrorRate(); err == nil {
		errorPercent = fmt.Sprintf("%.2f", v*100)
	}

	latency := s.Latency()
	fmt.Fprintf(
		w, "%d\t%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\n",
		int64(s.Duration().Seconds()),
		tps,
		errorPercent,
		latency.Min(),
		latency.ValueAtQuantile(0.25),
		latency.ValueAtQuantile(0.5),
		latency.ValueAtQuantile(0.75),
		latency.ValueAtQuantile(0.9),
		latency.ValueAtQuantile(0.99),
		latency.ValueAtQuantile(0.999),
		latency.Max(),
	)
	return w.Flush()
}

// PrintComparisons writes one 6-column row per metric: name, old, new, diff,
// diff ratio, and speedup. Rows are colored green when the new run is at
// least as good as the old one (speedup >= 1.0) and red otherwise; metrics
// that could not be computed are rendered as N/A without coloring.
func (p *Printer) PrintComparisons(comparisons []stats.MetricComparison) error {
	improved := color.New(color.FgGreen)
	regressed := color.New(color.FgRed)
	if p.NoColor {
		improved.DisableColor()
		regressed.DisableColor()
	}

	w := tabwriter.NewWriter(p.Out, 1, 1, 2, ' ', 0)
	fmt.Fprint(w, "name\told\tnew\tdiff\tdiff_ratio\tspeedup\n")
	for _, mc := range comparisons {
		if mc.Err != nil {
			fmt.Fprintf(
				w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				mc.Metric, notComputable, notComputable, notComputable, notComputable, notComputable,
			)
			continue
		}
		c := mc.Comparison
		verdict := improved
		if c.Speedup < 1.0 {
			verdict = regressed
		}
		fmt.Fprintf(
			w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			c.Name,
			c.OldValue,
			c.NewValue,
			verdict.Sprintf("%.2f", c.Diff),
			verdict.Sprintf("%.2f%%", c.DiffRatio*100),
			verdict.Sprintf("%.2fx", c.Speedup),
		)
	}
	return w.Flush()
}
