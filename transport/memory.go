package transport

import (
	"fmt"
	"sync"

	"logward/core"
	"logward/level"
)

// DefaultMemoryCapacity bounds the ring when no capacity is given.
const DefaultMemoryCapacity = 1000

// QueryFilter narrows a memory transport query. Zero values mean
// "no constraint".
type QueryFilter struct {
	// MinLevel keeps entries at or above this weight.
	MinLevel level.Level
	// Since keeps entries with Timestamp >= Since (epoch milliseconds).
	Since int64
	// Limit keeps the most recent Limit entries after the other filters.
	Limit int
}

// MemoryOptions configures a memory transport.
type MemoryOptions struct {
	// Capacity is the fixed ring size. Defaults to DefaultMemoryCapacity.
	Capacity int
	// Level is the transport's own threshold; Unset inherits the logger's.
	Level level.Level
}

// MemoryTransport keeps the last Capacity entries in a fixed ring for
// query-time retrieval. Entries are copied in at delivery; callers treat
// stored entries as immutable afterward.
type MemoryTransport struct {
	name string
	opts MemoryOptions

	mu     sync.Mutex
	buf    []core.Entry
	cursor int
	count  int
}

// NewMemory creates a memory ring transport.
func NewMemory(name string, opts MemoryOptions) (*MemoryTransport, error) {
	if opts.Capacity == 0 {
		opts.Capacity = DefaultMemoryCapacity
	}
	if opts.Capacity < 0 {
		return nil, fmt.Errorf("memory transport capacity must be positive, got %d", opts.Capacity)
	}
	if name == "" {
		name = "memory"
	}
	return &MemoryTransport{
		name: name,
		opts: opts,
		buf:  make([]core.Entry, opts.Capacity),
	}, nil
}

func (m *MemoryTransport) Name() string { return m.name }

func (m *MemoryTransport) Level() level.Level { return m.opts.Level }

// Deliver stores a copy of the entry in O(1), overwriting the oldest slot
// once the ring is full.
func (m *MemoryTransport) Deliver(e *core.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.count < len(m.buf) {
		m.buf[(m.cursor+m.count)%len(m.buf)] = *e
		m.count++
		return nil
	}
	// Full: overwrite the oldest and advance the cursor.
	m.buf[m.cursor] = *e
	m.cursor = (m.cursor + 1) % len(m.buf)
	return nil
}

// Query returns matching entries oldest first. Filters apply in order:
// level floor, timestamp floor, then the tail limit keeping the most
// recent matches.
func (m *MemoryTransport) Query(f QueryFilter) []core.Entry {
	m.mu.Lock()
	ordered := make([]core.Entry, 0, m.count)
	for i := 0; i < m.count; i++ {
		ordered = append(ordered, m.buf[(m.cursor+i)%len(m.buf)])
	}
	m.mu.Unlock()

	filtered := ordered[:0]
	for _, e := range ordered {
		if f.MinLevel != level.Unset && !level.Passes(level.Level(e.Level), f.MinLevel) {
			continue
		}
		if f.Since != 0 && e.Timestamp < f.Since {
			continue
		}
		filtered = append(filtered, e)
	}

	if f.Limit > 0 && len(filtered) > f.Limit {
		filtered = filtered[len(filtered)-f.Limit:]
	}
	return filtered
}

// Size returns the current occupied count, never exceeding capacity.
func (m *MemoryTransport) Size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count
}

// Capacity returns the fixed ring capacity.
func (m *MemoryTransport) Capacity() int {
	return len(m.buf)
}

// Clear resets the ring in O(1) without zeroing storage.
func (m *MemoryTransport) Clear() {
	m.mu.Lock()
	m.cursor = 0
	m.count = 0
	m.mu.Unlock()
}

// Stats returns ring counters.
func (m *MemoryTransport) Stats() map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return map[string]any{
		"type":     "memory",
		"capacity": len(m.buf),
		"size":     m.count,
	}
}
