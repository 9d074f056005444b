// Package logging provides the terminal slog handler used by the CLI and an
// adapter that lets the scoring engine log through slog.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
)

const (
	colorRed   = "\033[31m"
	colorDim   = "\033[2m"
	colorReset = "\033[0m"
)

// CLIHandler writes one line per record: optional group prefix, message, then key=value attrs.
// Errors print red and debug lines print dim when color is on.
type CLIHandler struct {
	mu     *sync.Mutex
	writer io.Writer
	level  slog.Leveler
	color  bool
	prefix string
	attrs  []slog.Attr
}

// NewCLIHandler creates a handler writing to w at the given level
func NewCLIHandler(w io.Writer, level slog.Leveler, color bool) *CLIHandler {
	return &CLIHandler{
		mu:     &sync.Mutex{},
		writer: w,
		level:  level,
		color:  color,
	}
}

func (h *CLIHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *CLIHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	if h.prefix != "" {
		b.WriteString("[" + h.prefix + "] ")
	}
	b.WriteString(r.Message)

	var attrs []string
	for _, a := range h.attrs {
		attrs = append(attrs, fmt.Sprintf("%s=%v", a.Key, a.Value))
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, fmt.Sprintf("%s=%v", a.Key, a.Value))
		return true
	})
	if len(attrs) > 0 {
		b.WriteString(": " + strings.Join(attrs, " "))
	}

	line := b.String()
	if h.color {
		switch {
		case r.Level >= slog.LevelError:
			line = colorRed + line + colorReset
		case r.Level < slog.LevelInfo:
			line = colorDim + line + colorReset
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintln(h.writer, line)
	return err
}

func (h *CLIHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &next
}

func (h *CLIHandler) WithGroup(name string) slog.Handler {
	next := *h
	if next.prefix != "" {
		next.prefix += "." + name
	} else {
		next.prefix = name
	}
	return &next
}

// NewCLILogger builds a stderr logger for the named level
func NewCLILogger(level string) *slog.Logger {
	return NewLogger(os.Stderr, level)
}

// NewLogger builds a logger writing to w; color is on only when w is a terminal
func NewLogger(w io.Writer, level string) *slog.Logger {
	f, ok := w.(*os.File)
	return slog.New(NewCLIHandler(w, ParseLogLevel(level), ok && isTerminal(f)))
}

// ParseLogLevel converts a string log level to slog.Level.
// Defaults to slog.LevelInfo for unrecognized strings.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
