package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Handler is a minimal slog.Handler writing "[ts] [PID:n] [LEVEL] msg k=v"
// lines to the console and, when configured, to a rotating file.
type Handler struct {
	level   slog.Level
	rotator *FileRotator
	attrs   []slog.Attr
}

// NewHandler creates a handler at the given level. rotator may be nil to
// log to the console only.
func NewHandler(level slog.Level, rotator *FileRotator) *Handler {
	return &Handler{level: level, rotator: rotator}
}

// ParseLevel maps a config level string onto a slog.Level, defaulting to
// info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	message := r.Message

	var attrs []string
	for _, a := range h.attrs {
		attrs = append(attrs, fmt.Sprintf("%s=%v", a.Key, a.Value))
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, fmt.Sprintf("%s=%v", a.Key, a.Value))
		return true
	})
	if len(attrs) > 0 {
		message = message + " " + strings.Join(attrs, " ")
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	level := "INFO"
	switch r.Level {
	case slog.LevelDebug:
		level = "DEBUG"
	case slog.LevelWarn:
		level = "WARN"
	case slog.LevelError:
		level = "ERROR"
	}

	line := fmt.Sprintf("[%s] [PID:%d] [%s] %s", timestamp, os.Getpid(), level, message)

	if h.rotator != nil {
		h.rotator.Write([]byte(line + "\n"))
	}
	fmt.Println(line)

	return nil
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return h
}

// Close flushes and closes the file rotator, if any.
func (h *Handler) Close() error {
	if h.rotator != nil {
		h.rotator.Sync()
		return h.rotator.Close()
	}
	return nil
}
