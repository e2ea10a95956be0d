// Package logging builds the zerolog loggers used across phonelens.
//
// There is no package-level logger: callers construct one from a Config and
// pass it down explicitly (or through a context). This keeps tests and
// library consumers in control of where log output goes.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Output destinations accepted by Config.Output.
const (
	OutputStderr = "stderr"
	OutputStdout = "stdout"
	OutputFile   = "file"
)

// Config describes how a logger should be constructed.
type Config struct {
	// Level is a zerolog level name ("trace", "debug", "info", ...).
	// Unparseable values fall back to "info".
	Level string

	// Format is "console" for human-readable output or "json" for
	// structured lines. File output is always JSON.
	Format string

	// Output selects the destination: OutputStderr, OutputStdout or
	// OutputFile.
	Output string

	// File is the log file path when Output is OutputFile.
	File string

	// Caller adds file:line caller annotations.
	Caller bool
}

// PathResult is what NewWithPath returns: the constructed logger plus
// enough detail for the CLI to tell the user where logs went, including
// whether a file destination fell back to stderr.
type PathResult struct {
	Logger         zerolog.Logger
	UsingFile      bool
	FilePath       string
	FallbackUsed   bool
	FallbackReason string

	file *os.File
}

// Close releases the log file handle, if any.
func (r *PathResult) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// New constructs a logger from cfg. File destinations that cannot be opened
// return an error; NewWithPath is the fallback-friendly variant.
func New(cfg Config) (zerolog.Logger, error) {
	result, err := newLogger(cfg, false)
	if err != nil {
		return zerolog.Nop(), err
	}
	return result.Logger, nil
}

// NewWithPath constructs a logger from cfg, falling back to stderr when the
// configured log file cannot be opened. The result records the fallback so
// the caller can warn the user.
func NewWithPath(cfg Config) PathResult {
	result, err := newLogger(cfg, true)
	if err != nil {
		// Unreachable with fallback enabled, but keep the logger usable.
		result = &PathResult{Logger: consoleLogger(parseLevel(cfg.Level), cfg.Caller)}
	}
	return *result
}

func newLogger(cfg Config, fallback bool) (*PathResult, error) {
	level := parseLevel(cfg.Level)
	result := &PathResult{}

	var writer io.Writer
	switch cfg.Output {
	case OutputFile:
		file, err := openLogFile(cfg.File)
		if err != nil {
			if !fallback {
				return nil, err
			}
			result.FallbackUsed = true
			result.FallbackReason = err.Error()
			result.Logger = consoleLogger(level, cfg.Caller)
			return result, nil
		}
		result.UsingFile = true
		result.FilePath = cfg.File
		result.file = file
		writer = file
	case OutputStdout:
		writer = destWriter(os.Stdout, cfg.Format)
	default:
		writer = destWriter(os.Stderr, cfg.Format)
	}

	ctx := zerolog.New(writer).Level(level).With().Timestamp()
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	result.Logger = ctx.Logger()
	return result, nil
}

// destWriter wraps a terminal-facing destination in a console writer unless
// JSON output was requested.
func destWriter(f *os.File, format string) io.Writer {
	if format == "json" {
		return f
	}
	return zerolog.ConsoleWriter{Out: f, TimeFormat: time.RFC3339}
}

func consoleLogger(level zerolog.Level, caller bool) zerolog.Logger {
	ctx := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp()
	if caller {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

func parseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

func openLogFile(path string) (*os.File, error) {
	if path == "" {
		return nil, fmt.Errorf("log file path is empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}

// ComponentLogger returns a child logger tagged with a component name.
// Components are stable identifiers ("cli", "engine", "cache") used to
// filter logs.
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// PrintLogPathMessage tells the user where file logs are going.
func PrintLogPathMessage(w io.Writer, path string) {
	fmt.Fprintf(w, "Logging to file: %s\n", path)
}

// PrintFallbackWarning tells the user why file logging fell back to stderr.
func PrintFallbackWarning(w io.Writer, reason string) {
	fmt.Fprintf(w, "Warning: file logging unavailable (%s), logging to stderr\n", reason)
}
