// Package logging builds the process-wide structured logger, following
// gcsfuse's internal/logger package: a package-level level var, a handler
// factory selecting text or JSON output, and lazily-formatted convenience
// wrappers.
package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

var level = new(slog.LevelVar)

// Format selects the handler's output encoding.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// New builds a *slog.Logger writing to w (os.Stderr if nil) at the given
// format, with its level controlled by SetLevel.
func New(format Format, w *os.File) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if format == FormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// SetLevel updates the level shared by every logger built with New.
func SetLevel(l slog.Level) { level.Set(l) }

// Tracef, Debugf, Infof, Warnf and Errorf are convenience wrappers that
// lazily format their arguments only when the corresponding level is
// enabled, avoiding allocation on the hot enumeration path when logging is
// quiet.
func Tracef(log *slog.Logger, format string, args ...any) { logf(log, slog.LevelDebug-4, format, args...) }
func Debugf(log *slog.Logger, format string, args ...any) { logf(log, slog.LevelDebug, format, args...) }
func Infof(log *slog.Logger, format string, args ...any)  { logf(log, slog.LevelInfo, format, args...) }
func Warnf(log *slog.Logger, format string, args ...any)  { logf(log, slog.LevelWarn, format, args...) }
func Errorf(log *slog.Logger, format string, args ...any) { logf(log, slog.LevelError, format, args...) }

func logf(log *slog.Logger, lvl slog.Level, format string, args ...any) {
	if !log.Enabled(context.Background(), lvl) {
		return
	}
	log.Log(context.Background(), lvl, sprintf(format, args...))
}

func sprintf(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
