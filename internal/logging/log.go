// Package logging builds the diagnostic logger and carries it through
// context.Context.
package logging

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// New returns a logger writing to w at the given level.
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// Level picks debug level when verbose is set, info otherwise.
func Level(verbose bool) log.Level {
	if verbose {
		return log.DebugLevel
	}
	return log.InfoLevel
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

type ctxKey int

const loggerKey ctxKey = 0

// WithLogger attaches l to ctx.
func WithLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext returns the logger attached to ctx, or log.Default().
func FromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
			return l
		}
	}
	return log.Default()
}

// Timer logs completion of an operation with its elapsed time.
type Timer struct {
	logger *log.Logger
	start  time.Time
}

// StartTimer captures the current time.
func StartTimer(l *log.Logger) *Timer {
	return &Timer{logger: l, start: time.Now()}
}

// Done logs msg with the elapsed duration at debug level.
func (t *Timer) Done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "elapsed", time.Since(t.start).Round(time.Millisecond))
	t.logger.Debug(msg, keyvals...)
}
