package logging

import (
	"context"
	"log/slog"
	"os"
)

// SlogLogger adapts a *slog.Logger to the Logger interface. Construct with
// NewSlogLogger or Default; the zero value has no handler.
type SlogLogger struct {
	l *slog.Logger
}

func NewSlogLogger(l *slog.Logger) *SlogLogger {
	return &SlogLogger{l: l}
}

// Default returns a Logger writing text lines to stderr. Stdout stays free
// for the interactive prompt.
func Default() Logger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

func (s *SlogLogger) Debug(ctx context.Context, msg string, args ...any) {
	s.l.DebugContext(ctx, msg, args...)
}

func (s *SlogLogger) Info(ctx context.Context, msg string, args ...any) {
	s.l.InfoContext(ctx, msg, args...)
}

func (s *SlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	s.l.WarnContext(ctx, msg, args...)
}

func (s *SlogLogger) Error(ctx context.Context, msg string, args ...any) {
	s.l.ErrorContext(ctx, msg, args...)
}

// With returns a child logger carrying the given attributes on every record.
func (s *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{l: s.l.With(args...)}
}
