// Package logger provides the leveled console logger used by the CLI.
// Output lines carry [HH:MM:SS] timestamps; level tags are colored when
// writing to a terminal. The logger is safe for concurrent use by the
// batch workers.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Log level constants for filtering.
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// Console writes timestamped, level-filtered log lines to a writer.
// A nil writer silently discards all output.
type Console struct {
	writer      io.Writer
	level       int
	mu          sync.Mutex
	colorOutput bool
}

// NewConsole creates a Console writing to w at the given minimum level.
// Valid levels are trace, debug, info, warn and error (case-insensitive);
// empty or unknown levels default to info. Color is enabled only when w
// is a terminal.
func NewConsole(w io.Writer, level string) *Console {
	return &Console{
		writer:      w,
		level:       levelToInt(normalizeLevel(level)),
		colorOutput: isTerminal(w),
	}
}

// isTerminal reports whether w is a TTY that supports color. The color
// package's NoColor already folds in the NO_COLOR convention.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// normalizeLevel lowercases and validates a level name, defaulting to
// "info".
func normalizeLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))
	switch normalized {
	case "trace", "debug", "info", "warn", "error":
		return normalized
	}
	return "info"
}

func levelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

var levelColors = map[int]*color.Color{
	levelTrace: color.New(color.FgHiBlack),
	levelDebug: color.New(color.FgCyan),
	levelInfo:  color.New(color.FgGreen),
	levelWarn:  color.New(color.FgYellow),
	levelError: color.New(color.FgRed),
}

var levelTags = map[int]string{
	levelTrace: "TRACE",
	levelDebug: "DEBUG",
	levelInfo:  "INFO",
	levelWarn:  "WARN",
	levelError: "ERROR",
}

// logf writes one line if the message level passes the filter.
func (c *Console) logf(level int, format string, args ...interface{}) {
	if c == nil || c.writer == nil || level < c.level {
		return
	}

	tag := levelTags[level]
	if c.colorOutput {
		tag = levelColors[level].Sprint(tag)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.writer, "[%s] %s %s\n",
		time.Now().Format("15:04:05"), tag, fmt.Sprintf(format, args...))
}

// Tracef logs at trace level.
func (c *Console) Tracef(format string, args ...interface{}) { c.logf(levelTrace, format, args...) }

// Debugf logs at debug level.
func (c *Console) Debugf(format string, args ...interface{}) { c.logf(levelDebug, format, args...) }

// Infof logs at info level.
func (c *Console) Infof(format string, args ...interface{}) { c.logf(levelInfo, format, args...) }

// Warnf logs at warn level.
func (c *Console) Warnf(format string, args ...interface{}) { c.logf(levelWarn, format, args...) }

// Errorf logs at error level.
func (c *Console) Errorf(format string, args ...interface{}) { c.logf(levelError, format, args...) }
