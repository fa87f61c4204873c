package logward

import (
	"context"
	"time"

	"logward/core"
	"logward/level"
)

// DurationKey is the metadata key timers record elapsed milliseconds under.
const DurationKey = "duration_ms"

// Timer measures an operation and logs its duration at a captured level.
type Timer struct {
	logger *Logger
	level  level.Level
	start  time.Time
}

// StartTimer captures a high-resolution start instant. The returned timer
// logs at lv when Done is called.
func (l *Logger) StartTimer(lv level.Level) *Timer {
	return &Timer{
		logger: l,
		level:  lv,
		start:  time.Now(),
	}
}

// Elapsed returns milliseconds since the timer started, without logging.
func (t *Timer) Elapsed() float64 {
	return float64(time.Since(t.start)) / float64(time.Millisecond)
}

// Done logs msg at the captured level with the elapsed time merged into
// meta under DurationKey.
func (t *Timer) Done(msg string, meta core.Fields) {
	t.DoneCtx(context.Background(), msg, meta)
}

// DoneCtx is Done carrying a caller context.
func (t *Timer) DoneCtx(ctx context.Context, msg string, meta core.Fields) {
	if meta == nil {
		meta = make(core.Fields, 1)
	}
	meta[DurationKey] = t.Elapsed()
	t.logger.Log(ctx, t.level, msg, meta, nil)
}
