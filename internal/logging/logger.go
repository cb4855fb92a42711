package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// LevelNone disables console output entirely.
const LevelNone = "none"

// Options describes logger construction parameters.
type Options struct {
	Level  string
	Format string
	// Writer receives console/JSON output; nil means stderr.
	Writer io.Writer
	// File, when set, receives a JSON copy of every record.
	File  string
	RunID string
	// Development forces source locations on every line.
	Development bool
}

var verbosityLevels = []string{LevelNone, "info", "debug", "warn", "error"}

// LevelForVerbosity maps the CLI's 0-4 verbosity scale to a level name:
// 0 none, 1 info, 2 debug, 3 warn, 4 error.
func LevelForVerbosity(v int) (string, error) {
	if v < 0 || v >= len(verbosityLevels) {
		return "", fmt.Errorf("verbosity must be between 0 and %d, got %d", len(verbosityLevels)-1, v)
	}
	return verbosityLevels[v], nil
}

// New constructs a slog logger using the provided options.
func New(opts Options) (*slog.Logger, error) {
	level, enabled, err := parseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	var handlers []slog.Handler
	if enabled {
		levelVar := new(slog.LevelVar)
		levelVar.Set(level)
		writer := opts.Writer
		if writer == nil {
			writer = os.Stderr
		}
		addSource := opts.Development || level <= slog.LevelDebug

		format := strings.ToLower(strings.TrimSpace(opts.Format))
		switch format {
		case "json":
			handlers = append(handlers, newJSONHandler(writer, levelVar, addSource))
		case "console", "":
			handlers = append(handlers, newPrettyHandler(writer, levelVar, addSource))
		default:
			return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
		}
	}

	if path := strings.TrimSpace(opts.File); path != "" {
		file, err := openLogFile(path)
		if err != nil {
			return nil, err
		}
		fileLevel := new(slog.LevelVar)
		fileLevel.Set(min(level, slog.LevelInfo))
		handlers = append(handlers, newJSONHandler(file, fileLevel, true))
	}

	handler := TeeHandler(handlers...)
	if id := strings.TrimSpace(opts.RunID); id != "" {
		handler = newRunIDHandler(handler, id)
	}
	return slog.New(handler), nil
}

// parseLevel returns the slog level for name and whether output is enabled.
func parseLevel(name string) (slog.Level, bool, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case LevelNone, "off":
		return slog.LevelError, false, nil
	case "debug":
		return slog.LevelDebug, true, nil
	case "info", "":
		return slog.LevelInfo, true, nil
	case "warn", "warning":
		return slog.LevelWarn, true, nil
	case "error":
		return slog.LevelError, true, nil
	default:
		return 0, false, fmt.Errorf("log level: unsupported value %q", name)
	}
}

func openLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure log directory: %w", err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o664)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return file, nil
}
