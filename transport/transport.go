// Package transport defines the sink contract and fans entries out to
// independent destinations with per-sink level filtering and fault
// isolation.
package transport

import (
	"logward/core"
	"logward/level"

	"github.com/lixenwraith/log"
)

// Transport is a terminal consumer of log entries. Deliver is the
// steady-state call; implementations that do I/O buffer internally so the
// caller is never blocked on a slow destination.
type Transport interface {
	// Name identifies the transport for add/remove and diagnostics.
	Name() string

	// Level returns the transport's own threshold, or level.Unset to
	// inherit the logger's current level.
	Level() level.Level

	// Deliver consumes one entry. Errors are swallowed at the fan-out
	// boundary; they exist so decorators (batching, retry) can observe
	// failures.
	Deliver(e *core.Entry) error
}

// Flusher is implemented by transports with buffered state to drain.
type Flusher interface {
	Flush() error
}

// Closer is implemented by transports holding resources to release.
// Close implies a final flush.
type Closer interface {
	Close() error
}

// BatchDeliverer is implemented by transports that can consume a whole
// batch in one call. The batching wrapper prefers it over per-entry
// delivery when present.
type BatchDeliverer interface {
	DeliverBatch(entries []*core.Entry) error
}

// Dispatch delivers one entry to every transport whose effective threshold
// it clears. Each delivery runs inside its own failure boundary: a panic or
// returned error from one transport never affects another and never
// propagates to the logging call site.
func Dispatch(e *core.Entry, transports []Transport, loggerLevel level.Level, logger *log.Logger) {
	for _, t := range transports {
		threshold := t.Level()
		if threshold == level.Unset {
			threshold = loggerLevel
		}
		if !level.Passes(level.Level(e.Level), threshold) {
			continue
		}
		deliver(e, t, logger)
	}
}

func deliver(e *core.Entry, t Transport, logger *log.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("msg", "Transport panicked during delivery",
				"component", "dispatch",
				"transport", t.Name(),
				"panic", r)
		}
	}()

	if err := t.Deliver(e); err != nil {
		logger.Warn("msg", "Transport delivery failed",
			"component", "dispatch",
			"transport", t.Name(),
			"error", err)
	}
}
