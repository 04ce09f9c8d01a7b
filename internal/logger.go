package internal

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// NewLogger returns a text logger on w. Verbose enables debug output;
// otherwise only warnings and errors are shown.
func NewLogger(w io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})
	log.SetLevel(logrus.WarnLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// NewFileLogger logs to path, for modes where stdout and stderr belong to a
// protocol. When the file can't be opened, or logging is disabled, log
// output is discarded. The returned closer must be called on shutdown.
func NewFileLogger(path string, enabled, verbose bool) (*logrus.Logger, io.Closer) {
	log := NewLogger(io.Discard, verbose)
	if !enabled {
		return log, io.NopCloser(nil)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return log, io.NopCloser(nil)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return log, io.NopCloser(nil)
	}

	log.SetOutput(f)
	log.SetFormatter(&logrus.JSONFormatter{})
	if !verbose {
		log.SetLevel(logrus.InfoLevel)
	}
	return log, f
}
