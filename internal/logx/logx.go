// Package logx provides the shared zerolog logger. The TUI owns stdout, so
// diagnostics go to a file in the state directory instead.
package logx

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

var logger = zerolog.Nop()

// Init opens (or creates) the log file under stateDir and installs the file
// logger. On failure logging stays disabled; a client should never refuse to
// run because its log file is unwritable.
func Init(stateDir string) {
	if err := os.MkdirAll(stateDir, 0o750); err != nil {
		return
	}

	f, err := os.OpenFile(filepath.Join(stateDir, "cassa.log"),
		os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return
	}

	logger = zerolog.New(f).With().Timestamp().Logger()
}

// InitWriter installs a logger on an arbitrary writer. Used by tests.
func InitWriter(w io.Writer) {
	logger = zerolog.New(w).With().Timestamp().Logger()
}

// L returns the shared logger.
func L() *zerolog.Logger {
	return &logger
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
