// Package logward is a structured-logging pipeline: typed entries flow
// from a Logger through an ordered middleware chain and fan out to
// independent transports, each behind its own level filter and failure
// boundary.
package logward

import (
	"context"
	"time"

	"logward/core"
	"logward/idgen"
	"logward/level"
	"logward/middleware"
	"logward/transport"

	"github.com/lixenwraith/log"
	"golang.org/x/sync/errgroup"
)

// Options configures logger construction.
type Options struct {
	// Level is the initial threshold name. Unresolvable names fall back
	// to INFO per the registry's lenient policy.
	Level string

	// Transports is the initial sink list.
	Transports []transport.Transport

	// Middleware is the initial chain, run in order.
	Middleware []middleware.Func

	// Context is bound to every entry this logger produces.
	Context core.Fields

	// Clock overrides timestamp generation (epoch milliseconds).
	// Defaults to wall clock.
	Clock func() int64

	// IDGenerator stamps entry IDs. Defaults to random UUIDs; use
	// idgen.Disabled to turn stamping off.
	IDGenerator idgen.Generator

	// StackMinLevel gates stack capture on serialized errors: stacks are
	// included at or above this level. Defaults to ERROR; SILENT disables
	// capture entirely.
	StackMinLevel string

	// Diagnostics receives operator-facing reports about swallowed
	// delivery failures. Defaults to a silent logger.
	Diagnostics *log.Logger
}

// Logger is the ingestion facade. Children created with Child share the
// parent's pipeline - transports, middleware and level - by reference and
// differ only in bound context.
type Logger struct {
	pipe    *pipeline
	context core.Fields
}

// New creates a logger.
func New(opts Options) (*Logger, error) {
	if opts.Clock == nil {
		opts.Clock = func() int64 { return time.Now().UnixMilli() }
	}
	if opts.IDGenerator == nil {
		opts.IDGenerator = idgen.UUID()
	}
	pipe, err := newPipeline(opts)
	if err != nil {
		return nil, err
	}
	return &Logger{
		pipe:    pipe,
		context: opts.Context.Clone(),
	}, nil
}

// Log is the core ingestion path: level pre-check, ID and timestamp
// stamping, error serialization, context binding, then the middleware
// chain terminating in transport fan-out. A middleware panic propagates to
// the caller; delivery failures past fan-out never do.
func (l *Logger) Log(ctx context.Context, lv level.Level, msg string, meta core.Fields, err error) {
	p := l.pipe
	if !level.Passes(lv, p.level()) {
		// Fast path: below threshold, no entry is allocated.
		return
	}

	e := &core.Entry{
		ID:        p.idGen(),
		Level:     int(lv),
		LevelName: lv.String(),
		Message:   msg,
		Timestamp: p.clock(),
		Meta:      meta,
		Context:   l.context.Clone(),
		Ctx:       ctx,
	}
	if err != nil {
		includeStack := p.stackMin != level.Silent && lv >= p.stackMin
		e.Err = core.SerializeError(err, includeStack)
	}

	p.chain()(e)
}

func (l *Logger) Trace(msg string, meta core.Fields) {
	l.Log(context.Background(), level.Trace, msg, meta, nil)
}

func (l *Logger) Debug(msg string, meta core.Fields) {
	l.Log(context.Background(), level.Debug, msg, meta, nil)
}

func (l *Logger) Info(msg string, meta core.Fields) {
	l.Log(context.Background(), level.Info, msg, meta, nil)
}

func (l *Logger) Warn(msg string, meta core.Fields) {
	l.Log(context.Background(), level.Warn, msg, meta, nil)
}

func (l *Logger) Error(msg string, err error, meta core.Fields) {
	l.Log(context.Background(), level.Error, msg, meta, err)
}

func (l *Logger) Fatal(msg string, err error, meta core.Fields) {
	l.Log(context.Background(), level.Fatal, msg, meta, err)
}

// Context-carrying variants propagate scope frames into the chain.

func (l *Logger) TraceCtx(ctx context.Context, msg string, meta core.Fields) {
	l.Log(ctx, level.Trace, msg, meta, nil)
}

func (l *Logger) DebugCtx(ctx context.Context, msg string, meta core.Fields) {
	l.Log(ctx, level.Debug, msg, meta, nil)
}

func (l *Logger) InfoCtx(ctx context.Context, msg string, meta core.Fields) {
	l.Log(ctx, level.Info, msg, meta, nil)
}

func (l *Logger) WarnCtx(ctx context.Context, msg string, meta core.Fields) {
	l.Log(ctx, level.Warn, msg, meta, nil)
}

func (l *Logger) ErrorCtx(ctx context.Context, msg string, err error, meta core.Fields) {
	l.Log(ctx, level.Error, msg, meta, err)
}

func (l *Logger) FatalCtx(ctx context.Context, msg string, err error, meta core.Fields) {
	l.Log(ctx, level.Fatal, msg, meta, err)
}

// Child returns a logger sharing this logger's pipeline - transports,
// middleware and level, including live updates - with extra context
// layered over the parent's. Child keys win on conflict.
func (l *Logger) Child(extra core.Fields) *Logger {
	merged := l.context.Clone()
	if merged == nil && len(extra) > 0 {
		merged = make(core.Fields, len(extra))
	}
	for k, v := range extra {
		merged[k] = v
	}
	return &Logger{pipe: l.pipe, context: merged}
}

// SetLevel changes the shared threshold for this logger, its parent and
// all siblings.
func (l *Logger) SetLevel(lv level.Level) {
	l.pipe.setLevel(lv)
}

// GetLevel returns the shared threshold.
func (l *Logger) GetLevel() level.Level {
	return l.pipe.level()
}

// IsLevelEnabled reports whether entries at lv would pass the threshold.
func (l *Logger) IsLevelEnabled(lv level.Level) bool {
	return level.Passes(lv, l.pipe.level())
}

// AddTransport attaches a sink. Names must be unique.
func (l *Logger) AddTransport(t transport.Transport) error {
	return l.pipe.addTransport(t)
}

// RemoveTransport detaches the named sink, returning it for the caller to
// flush or close, or nil if absent.
func (l *Logger) RemoveTransport(name string) transport.Transport {
	return l.pipe.removeTransport(name)
}

// Use appends a middleware to the chain and returns its removal func.
// In-flight log calls keep whichever composed chain they captured.
func (l *Logger) Use(mw middleware.Func) (remove func()) {
	return l.pipe.use(mw)
}

// Flush drains every transport that supports flushing, concurrently.
// Unlike log-time delivery errors, a flush failure here is surfaced: the
// first error is returned.
func (l *Logger) Flush() error {
	var g errgroup.Group
	for _, t := range l.pipe.snapshot() {
		if f, ok := t.(transport.Flusher); ok {
			g.Go(f.Flush)
		}
	}
	return g.Wait()
}

// Close flushes and closes every transport concurrently. Closing is
// terminal by convention only: no operation is blocked afterward, but
// sinks may reject further writes.
func (l *Logger) Close() error {
	var g errgroup.Group
	for _, t := range l.pipe.snapshot() {
		t := t
		g.Go(func() error {
			if c, ok := t.(transport.Closer); ok {
				return c.Close()
			}
			if f, ok := t.(transport.Flusher); ok {
				return f.Flush()
			}
			return nil
		})
	}
	return g.Wait()
}
