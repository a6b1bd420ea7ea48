// Package logging configures the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects the level, format and destination of log output.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // json or text
	File   string // optional rotating log file; stderr is always written
}

// Rotation limits for the log file.
const (
	maxSizeMB  = 10
	maxBackups = 3
	maxAgeDays = 28
)

// ParseLevel maps a level name to a slog.Level.
// PRE: none
// POST: Returns the level or an error for unknown names
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// New builds a logger writing to stderr and, when opts.File is set, to a rotating file.
// The returned closer releases the file and must be called on shutdown.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	var out io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		file := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
			Compress:   true,
		}
		out = io.MultiWriter(os.Stderr, file)
		closer = file
	}

	handler, err := newHandler(out, opts.Format, level)
	if err != nil {
		return nil, nil, err
	}
	return slog.New(handler), closer, nil
}

// Setup installs New's logger as the slog default.
func Setup(opts Options) (io.Closer, error) {
	logger, closer, err := New(opts)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return closer, nil
}

func newHandler(w io.Writer, format string, level slog.Level) (slog.Handler, error) {
	ho := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(format) {
	case "", "json":
		return slog.NewJSONHandler(w, ho), nil
	case "text":
		return slog.NewTextHandler(w, ho), nil
	}
	return nil, fmt.Errorf("unknown log format %q", format)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
