package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options selects level, destination and format of the log output.
type Options struct {
	Level   string
	Logfile string
	Format  string
}

// New builds a logger from the options. Unknown values fall back to the
// defaults and are reported through the returned logger. Output goes to
// stderr unless a log file is given, stdout is left to the menu.
func New(options Options) *slog.Logger {
	var warnings []string

	var opts slog.HandlerOptions
	switch strings.ToLower(options.Level) {
	case "debug":
		opts.Level = slog.LevelDebug
	case "info":
		opts.Level = slog.LevelInfo
	case "", "warn":
		opts.Level = slog.LevelWarn
	case "error":
		opts.Level = slog.LevelError
	default:
		opts.Level = slog.LevelWarn
		warnings = append(warnings, "could not parse logger level "+options.Level)
	}

	var output io.Writer
	switch options.Logfile {
	case "":
		output = os.Stderr
	case os.DevNull:
		return slog.New(slog.DiscardHandler)
	default:
		f, err := os.OpenFile(options.Logfile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			output = os.Stderr
			warnings = append(warnings, "could not open logger output: "+err.Error())
		} else {
			output = f
		}
	}

	var handler slog.Handler
	switch strings.ToLower(options.Format) {
	case "json":
		handler = slog.NewJSONHandler(output, &opts)
	case "", "text":
		handler = slog.NewTextHandler(output, &opts)
	default:
		handler = slog.NewTextHandler(output, &opts)
		warnings = append(warnings, "could not parse logger format "+options.Format)
	}

	logger := slog.New(handler)
	for _, w := range warnings {
		logger.Warn(w)
	}
	return logger
}

// Discard returns a logger that drops every record. Handy in tests.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
