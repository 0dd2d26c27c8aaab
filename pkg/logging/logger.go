package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LevelTrace is below slog's debug level and covers per-mutation graph events.
const LevelTrace = slog.LevelDebug - 4

var (
	logger     *slog.Logger
	out        io.Writer  = os.Stderr
	level      slog.Level = slog.LevelInfo
	jsonOutput bool
)

func init() {
	rebuild()
}

// rebuild installs a new handler for the current output, level and format.
// The compact handler gives readable console output; JSON is for tooling.
func rebuild() {
	opts := &slog.HandlerOptions{Level: level}
	if jsonOutput {
		logger = slog.New(slog.NewJSONHandler(out, opts))
		return
	}
	logger = slog.New(NewCompactHandler(out, opts))
}

// SetOutput redirects log output, keeping the current format and level.
func SetOutput(w io.Writer) {
	out = w
	rebuild()
}

// SetLevel changes the logging level
func SetLevel(l slog.Level) {
	level = l
	rebuild()
}

// SetJSONOutput switches to JSON format output
func SetJSONOutput(l slog.Level) {
	level = l
	jsonOutput = true
	rebuild()
}

// ParseLevel maps a verbosity name to a level. An empty name means info.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown verbosity %q", name)
	}
}

// LevelFromVerbose maps a repeated -v count onto a level, starting at info.
func LevelFromVerbose(count int) slog.Level {
	switch {
	case count <= 0:
		return slog.LevelInfo
	case count == 1:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}

// Logger returns the current logger, e.g. for passing to libraries.
func Logger() *slog.Logger {
	return logger
}

// Trace logs at TRACE level (individual graph mutations)
func Trace(msg string, args ...any) {
	logger.Log(context.Background(), LevelTrace, msg, args...)
}

// Debug logs at DEBUG level (internal component behavior)
func Debug(msg string, args ...any) {
	logger.Debug(msg, args...)
}

// Info logs at INFO level (user-facing operations)
func Info(msg string, args ...any) {
	logger.Info(msg, args...)
}

// Warn logs at WARN level (should be monitored)
func Warn(msg string, args ...any) {
	logger.Warn(msg, args...)
}

// Error logs at ERROR level (logical bugs that shouldn't happen)
func Error(msg string, args ...any) {
	logger.Error(msg, args...)
}

// Fatal logs at ERROR level and exits (unrecoverable bugs)
func Fatal(msg string, args ...any) {
	logger.Error(msg, args...)
	os.Exit(1)
}

// With returns a logger tagged with a component name.
func With(component string) *slog.Logger {
	return logger.With("component", component)
}
