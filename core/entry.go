// Package core defines the log entry that flows through the pipeline and
// the bounded error serialization attached to it.
package core

import "context"

// Fields is an open key/value map attached to entries and context frames.
type Fields map[string]any

// Clone returns a shallow copy of the map. A nil receiver yields nil.
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Entry represents a single log record flowing through the pipeline.
// Middleware may mutate it in place or replace it wholesale before
// forwarding; once handed to fan-out, no component may assume another has
// not already rewritten it.
type Entry struct {
	// ID is empty when ID generation is disabled.
	ID        string `json:"id,omitempty"`
	Level     int    `json:"level"`
	LevelName string `json:"levelName"`
	Message   string `json:"message"`
	// Timestamp is epoch milliseconds from the configured clock.
	Timestamp int64 `json:"timestamp"`
	// Meta holds per-call key/values supplied at the log site.
	Meta Fields `json:"meta,omitempty"`
	// Context holds key/values bound at logger or child creation time.
	// Omitted from output entirely when empty.
	Context       Fields           `json:"context,omitempty"`
	CorrelationID string           `json:"correlationId,omitempty"`
	Err           *SerializedError `json:"error,omitempty"`

	// Ctx carries the caller's context through the middleware chain so
	// scope frames survive asynchronous hand-offs. Never serialized.
	Ctx context.Context `json:"-"`
}

// Clone returns a copy of the entry with its own Meta and Context maps.
// Used by middleware that forwards a modified copy instead of mutating
// the original.
func (e *Entry) Clone() *Entry {
	out := *e
	out.Meta = e.Meta.Clone()
	out.Context = e.Context.Clone()
	return &out
}
