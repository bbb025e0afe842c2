package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Verbose controls whether debug messages are being printed.
var Verbose bool

// IndentationLevel controls the amount of indentation of log messages.
var IndentationLevel = 0

var errorOccured = false

var logger = newLogger(os.Stderr)

func newLogger(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
		PadLevelText:           true,
	})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// SetOutput redirects all log messages to `out`.
func SetOutput(out io.Writer) {
	logger.SetOutput(out)
}

// Logger returns the underlying logrus logger, with the level adjusted to the Verbose flag.
func Logger() *logrus.Logger {
	if Verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
	return logger
}

// ErrorOccured reports whether any errors have occured.
func ErrorOccured() bool {
	return errorOccured
}

func indent(format string, a ...interface{}) string {
	msg := fmt.Sprintf(format, a...)
	return strings.Repeat("  ", IndentationLevel) + strings.TrimSuffix(msg, "\n")
}

// Log prints an indented and formatted message.
func Log(format string, a ...interface{}) {
	Logger().Info(indent(format, a...))
}

// Debug prints an indented and formatted debug message if verbose output is selected.
func Debug(format string, a ...interface{}) {
	Logger().Debug(indent(format, a...))
}

// Success prints an indented and formatted success message.
func Success(format string, a ...interface{}) {
	Logger().WithField("status", "success").Info(indent(format, a...))
}

// Warning prints an indented and formatted warning.
func Warning(format string, a ...interface{}) {
	Logger().Warn(indent(format, a...))
}

// Error prints an indented and formatted error message.
func Error(format string, a ...interface{}) {
	errorOccured = true
	Logger().Error(indent(format, a...))
}

// Fatal prints an indented and formatted error message and terminates the program.
func Fatal(format string, a ...interface{}) {
	errorOccured = true
	Logger().Fatal(indent(format, a...))
}
