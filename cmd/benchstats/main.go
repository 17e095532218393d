package main

import (
	"github.com/armadaproject/benchstats/cmd/benchstats/cmd"
	"github.com/armadaproject/benchstats/internal/common/logging"
)

func main() {
	logging.ConfigureCliLogging()
	cmd.Execute()
}
