package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures logger construction.
type Options struct {
	// Level is the minimum severity: debug, info, warn, error
	Level string

	// File is the log file path; empty logs to stderr with a console writer
	File string

	// MaxSizeMB and MaxBackups control rotation of the log file
	MaxSizeMB  int
	MaxBackups int
}

// New builds a zerolog logger from the options. File output is JSON with
// size-based rotation; stderr output uses the console writer.
func New(opts Options) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}

	var w io.Writer
	if opts.File != "" {
		w = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			Compress:   true,
		}
	} else {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}

	logger := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return logger, nil
}

// Nop returns a logger that discards everything. Used by tests and in
// quiet mode.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
