package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

var (
	verboseMode bool
	std         = newLogger(os.Stderr)
)

func newLogger(w io.Writer) *log.Logger {
	// Timestamps are only reported in verbose mode, see SetVerbose.
	return log.NewWithOptions(w, log.Options{
		Level:      log.InfoLevel,
		TimeFormat: "2006-01-02 15:04:05",
	})
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(verbose bool) {
	verboseMode = verbose
	if verbose {
		std.SetLevel(log.DebugLevel)
	} else {
		std.SetLevel(log.InfoLevel)
	}
	std.SetReportTimestamp(verbose)
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	return verboseMode
}

// SetOutput redirects all log output to w.
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

// Debugf logs a formatted debug message if verbose mode is enabled.
func Debugf(format string, v ...interface{}) {
	std.Debugf(format, v...)
}

// Infof logs a formatted informational message.
func Infof(format string, v ...interface{}) {
	std.Infof(format, v...)
}

// Warnf logs a formatted warning.
func Warnf(format string, v ...interface{}) {
	std.Warnf(format, v...)
}

// Errorf logs a formatted error message.
func Errorf(format string, v ...interface{}) {
	std.Errorf(format, v...)
}
