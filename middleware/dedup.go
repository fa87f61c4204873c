package middleware

import (
	"sync"
	"sync/atomic"
	"time"

	"logward/core"

	"github.com/lixenwraith/log"
)

// DuplicateCountKey is the metadata key carrying the collapsed count on a
// forwarded representative entry.
const DuplicateCountKey = "duplicates"

// Deduper collapses identical entries seen within a time window into one
// forwarded entry carrying the duplicate count. Identity is level plus
// message. The first entry of a window is held back and forwarded when the
// window expires; later duplicates only bump the count.
type Deduper struct {
	window time.Duration
	logger *log.Logger

	mu      sync.Mutex
	pending map[string]*pendingDup
	closed  bool

	// Statistics
	totalSeen      atomic.Uint64
	totalCollapsed atomic.Uint64
}

type pendingDup struct {
	entry *core.Entry
	next  Next
	count int
	timer *time.Timer
}

// NewDeduper creates a dedup window middleware. The returned Deduper must
// be closed to release pending timers and flush held entries.
func NewDeduper(window time.Duration, logger *log.Logger) *Deduper {
	if logger == nil {
		logger = log.NewLogger()
	}
	return &Deduper{
		window:  window,
		logger:  logger,
		pending: make(map[string]*pendingDup),
	}
}

// Func returns the middleware function for the chain.
func (d *Deduper) Func() Func {
	return func(e *core.Entry, next Next) {
		d.totalSeen.Add(1)
		key := e.LevelName + "\x00" + e.Message

		d.mu.Lock()
		if d.closed {
			d.mu.Unlock()
			next(e)
			return
		}
		if p, ok := d.pending[key]; ok {
			p.count++
			d.mu.Unlock()
			d.totalCollapsed.Add(1)
			return
		}
		p := &pendingDup{entry: e, next: next, count: 1}
		p.timer = time.AfterFunc(d.window, func() {
			d.flush(key)
		})
		d.pending[key] = p
		d.mu.Unlock()
	}
}

// flush forwards the held representative for key with its final count.
func (d *Deduper) flush(key string) {
	d.mu.Lock()
	p, ok := d.pending[key]
	if !ok {
		d.mu.Unlock()
		return
	}
	delete(d.pending, key)
	d.mu.Unlock()

	if p.entry.Meta == nil {
		p.entry.Meta = make(core.Fields, 1)
	}
	p.entry.Meta[DuplicateCountKey] = p.count
	p.next(p.entry)
}

// Close stops all window timers and forwards every held entry immediately.
func (d *Deduper) Close() {
	d.mu.Lock()
	d.closed = true
	keys := make([]string, 0, len(d.pending))
	for key, p := range d.pending {
		p.timer.Stop()
		keys = append(keys, key)
	}
	d.mu.Unlock()

	for _, key := range keys {
		d.flush(key)
	}
}

// Stats returns dedup counters.
func (d *Deduper) Stats() map[string]any {
	d.mu.Lock()
	pending := len(d.pending)
	d.mu.Unlock()
	return map[string]any{
		"window_ms":       d.window.Milliseconds(),
		"total_seen":      d.totalSeen.Load(),
		"total_collapsed": d.totalCollapsed.Load(),
		"pending_keys":    pending,
	}
}
