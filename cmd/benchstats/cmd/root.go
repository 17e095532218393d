package cmd

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.PersistentFlags().String("output", "table", "Output format. One of: table, json, yaml")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("no-color", rootCmd.PersistentFlags().Lookup("no-color"))
}

var rootCmd = &cobra.Command{
	Use:   "benchstats command",
	Short: "Command line utility to inspect and compare benchmark run snapshots",
	Long: `
Command line utility to inspect and compare benchmark run snapshots.

Snapshots are produced by a benchmarking driver and persisted as JSON or
YAML files. benchstats renders a single snapshot as a summary table, or
compares two snapshots (a baseline and a candidate) metric by metric with a
normalized speedup where values >= 1.0 always mean the candidate is at least
as good.
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
