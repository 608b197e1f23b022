// Package logger configures charmbracelet/log for the rhymeserve
// binaries and packages.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// Setup configures the global logger. Output goes to stderr so stdout
// stays clean for IPC frames and result tables. RHYMESERVE_DEBUG forces
// debug logging regardless of config.
func Setup(debug, reportCaller bool) {
	if os.Getenv("RHYMESERVE_DEBUG") != "" {
		debug = true
	}
	log.SetOutput(os.Stderr)
	log.SetReportCaller(reportCaller)
	if debug {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
		log.SetReportTimestamp(false)
	}
}

// New creates a stderr charm log that respects the global log level.
func New(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: false,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}
