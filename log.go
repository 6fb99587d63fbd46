package rb2d

import "log/slog"

// Logger is the injectable logging hook used by a World. It wraps a
// standard library *slog.Logger rather than introducing a process-wide
// global: two Worlds in the same process (e.g. in tests) never share
// mutable logging state.
type Logger struct {
	l *slog.Logger
}

// NewLogger wraps an existing *slog.Logger for use by a World. Passing nil
// falls back to slog.Default().
func NewLogger(l *slog.Logger) Logger {
	if l == nil {
		l = slog.Default()
	}
	return Logger{l: l}
}

func (lg Logger) slog() *slog.Logger {
	if lg.l == nil {
		return slog.Default()
	}
	return lg.l
}

func (lg Logger) debug(msg string, args ...any) { lg.slog().Debug(msg, args...) }
func (lg Logger) warn(msg string, args ...any)  { lg.slog().Warn(msg, args...) }
func (lg Logger) error(msg string, args ...any) { lg.slog().Error(msg, args...) }
