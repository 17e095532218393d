package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/armadaproject/benchstats/internal/output"
	"github.com/armadaproject/benchstats/internal/stats"
)

func init() {
	rootCmd.AddCommand(compareCmd)
}

var compareCmd = &cobra.Command{
	Use:   "compare ./path/to/old.json ./path/to/new.json",
	Short: "Compare a candidate benchmark run against a baseline run",
	Long: `Compare a candidate benchmark run against a baseline run.

Reports throughput, error rate, and eight latency percentiles. Every metric
gets a normalized speedup: values >= 1.0 mean the candidate run is at least
as good as the baseline for that metric, regardless of whether the metric
improves by going up or down. Metrics whose baseline denominator is zero are
reported as N/A.
`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		oldRun, err := stats.Load(args[0])
		if err != nil {
			return err
		}
		newRun, err := stats.Load(args[1])
		if err != nil {
			return err
		}

		benchmarkCmp := &stats.BenchmarkCmp{Old: oldRun, New: newRun}
		comparisons := benchmarkCmp.AllComparisons()
		if err := benchmarkCmp.Err(); err != nil {
			log.Debugf("some metrics could not be computed: %s", err)
		}

		switch format := viper.GetString("output"); format {
		case "json", "yaml":
			formatter := output.Formatter(output.JsonFormatter)
			if format == "yaml" {
				formatter = output.YamlFormatter
			}
			b, err := formatter(comparisons)
			if err != nil {
				return err
			}
			log.Info(string(b))
			return nil
		default:
			printer := output.NewPrinter()
			printer.NoColor = viper.GetBool("no-color")
			return printer.PrintComparisons(comparisons)
		}
	},
}
