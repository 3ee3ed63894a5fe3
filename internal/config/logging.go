package config

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// NewLogger builds a logger writing to stderr with the configured level.
// Unknown levels fall back to info.
func (c LogConfig) NewLogger(prefix string) *log.Logger {
	return c.NewLoggerTo(os.Stderr, prefix)
}

// NewLoggerTo builds a logger writing to w.
func (c LogConfig) NewLoggerTo(w io.Writer, prefix string) *log.Logger {
	level, err := log.ParseLevel(c.Level)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: c.Timestamps,
		Prefix:          prefix,
		Level:           level,
	})
}
