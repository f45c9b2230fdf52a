package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Logger wraps slog so callers can chain helpers like WithError.
// The TUI owns stdout, so output goes to a file or nowhere.
type Logger struct {
	*slog.Logger
}

func New(w io.Writer, level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return New(io.Discard, slog.LevelError)
}

// OpenFile logs to path via tea.LogToFile. The caller closes the file.
func OpenFile(path, level string) (*Logger, *os.File, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}
	f, err := tea.LogToFile(path, "todo")
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f, lvl), f, nil
}

func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", s, err)
	}
	return lvl, nil
}

// WithError adds an "error" field; a nil err returns l unchanged.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return &Logger{Logger: l.Logger.With("error", err.Error())}
}

func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}
