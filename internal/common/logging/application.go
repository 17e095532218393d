// Package logging configures the global logrus logger for the binaries in
// this repository.
package logging

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// ConfigureCliLogging sets up logging suitable for a command line tool:
// bare messages on standard output, no timestamps or level prefixes.
func ConfigureCliLogging() {
	log.SetFormatter(&CommandLineFormatter{})
	log.SetOutput(os.Stdout)
}

// ConfigureApplicationLogging sets up logging suitable for a long-running
// application: full text formatting with timestamps on standard output.
func ConfigureApplicationLogging() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stdout)
}
