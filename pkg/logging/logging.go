// Package logging configures the logrus logger shared by the CLI, the document
// service and the sync engine.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var std = New("info", false, os.Stderr)

// New creates a logger with the given level. Unknown levels fall back to info.
func New(level string, json bool, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(ParseLevel(level))

	if json {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "15:04:05",
		})
	}
	return logger
}

// ParseLevel maps debug, info, warn and error to logrus levels
func ParseLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// Configure replaces the process-wide default logger settings
func Configure(level string, json bool) {
	std.SetLevel(ParseLevel(level))
	if json {
		std.SetFormatter(&logrus.JSONFormatter{})
	}
}

// Default returns the process-wide logger
func Default() *logrus.Logger {
	return std
}

// Discard returns a logger that drops everything, for tests
func Discard() *logrus.Logger {
	return New("error", false, io.Discard)
}

// WithComponent returns an entry tagged with the component name
func WithComponent(logger *logrus.Logger, component string) *logrus.Entry {
	if logger == nil {
		logger = std
	}
	return logger.WithField("component", component)
}
