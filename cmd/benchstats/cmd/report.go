package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/armadaproject/benchstats/internal/output"
	"github.com/armadaproject/benchstats/internal/stats"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report ./path/to/snapshot.json",
	Short: "Render the summary table of one benchmark run snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snapshot, err := stats.Load(args[0])
		if err != nil {
			return err
		}

		switch format := viper.GetString("output"); format {
		case "json", "yaml":
			formatter := output.Formatter(output.JsonFormatter)
			if format == "yaml" {
				formatter = output.YamlFormatter
			}
			b, err := formatter(snapshot)
			if err != nil {
				return err
			}
			log.Info(string(b))
			return nil
		default:
			printer := output.NewPrinter()
			printer.NoColor = viper.GetBool("no-color")
			return printer.PrintStats(snapshot)
		}
	},
}
