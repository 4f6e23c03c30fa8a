package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

const debugFileName = "blockdrop-debug.log"

// DebugPath is where the terminal client writes its log when -debug is set.
func DebugPath() string {
	return filepath.Join(os.TempDir(), debugFileName)
}

// NewServer returns a stderr logger for the servers.
func NewServer(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
}

// NewClient returns the logger for the terminal client. The client owns the
// terminal, so output goes to the debug file or nowhere. The returned closer
// must be called on exit.
func NewClient(debug bool) (*log.Logger, io.Closer, error) {
	if !debug {
		return log.New(io.Discard), nopCloser{}, nil
	}
	file, err := os.OpenFile(DebugPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return log.New(io.Discard), nopCloser{}, err
	}
	return NewFile(file), file, nil
}

// NewFile writes plain text records at debug level to w.
func NewFile(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           log.DebugLevel,
	})
	logger.SetColorProfile(termenv.Ascii)
	return logger
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
