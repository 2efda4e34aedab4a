package logging

import (
	"context"
	"io"
	"log/slog"
)

// SlogLogger adapts a *slog.Logger to Logger. Loggers built by NewJSONLogger
// share one level with every child returned by With.
type SlogLogger struct {
	l     *slog.Logger
	level *slog.LevelVar
}

func NewSlogLogger(l *slog.Logger) *SlogLogger {
	return &SlogLogger{l: l}
}

// NewJSONLogger writes one JSON object per record to w, with UTC timestamps
// in millisecond precision to match what the store keeps.
func NewJSONLogger(w io.Writer, level slog.Level) *SlogLogger {
	lv := new(slog.LevelVar)
	lv.Set(level)

	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: lv,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				a.Value = slog.StringValue(a.Value.Time().UTC().Format("2006-01-02T15:04:05.000Z07:00"))
			}
			return a
		},
	})
	return &SlogLogger{l: slog.New(h), level: lv}
}

// SetLevel changes the minimum level. It is a no-op for loggers that were
// not built by NewJSONLogger.
func (s *SlogLogger) SetLevel(level slog.Level) {
	if s.level != nil {
		s.level.Set(level)
	}
}

// Enabled reports whether a record at level would be written.
func (s *SlogLogger) Enabled(ctx context.Context, level slog.Level) bool {
	return s.l.Enabled(ctx, level)
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

func (s *SlogLogger) With(args ...any) Logger {
	if len(args) == 0 {
		return s
	}
	return &SlogLogger{l: s.l.With(args...), level: s.level}
}
