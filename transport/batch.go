package transport

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"logward/core"
	"logward/level"

	retry "github.com/avast/retry-go/v5"
	"github.com/lixenwraith/log"
)

// Batching defaults.
const (
	DefaultBatchSize     = 100
	DefaultFlushInterval = 5 * time.Second
	DefaultRetryDelay    = 500 * time.Millisecond
	DefaultRetryMaxDelay = 30 * time.Second
)

// BatchOptions configures a batching transport.
type BatchOptions struct {
	// BatchSize triggers a flush by count. Defaults to DefaultBatchSize.
	BatchSize int
	// FlushInterval triggers a flush by elapsed time since the first
	// buffered, not-yet-flushed entry. Defaults to DefaultFlushInterval.
	FlushInterval time.Duration
	// MaxRetries enables the retry variant when positive: each outbound
	// send is retried with exponential backoff up to MaxRetries times.
	// Terminal rejections (4xx-class) are never retried.
	MaxRetries int
	// RetryDelay is the base backoff delay, doubling per attempt.
	RetryDelay time.Duration
	// RetryMaxDelay caps the backoff.
	RetryMaxDelay time.Duration
}

// BatchTransport decorates an inner transport with size- and time-triggered
// buffering. A failing entry never blocks or aborts the rest of its batch,
// and delivery failures never propagate to the producer.
type BatchTransport struct {
	inner  Transport
	opts   BatchOptions
	logger *log.Logger

	mu      sync.Mutex
	pending []*core.Entry
	timer   *time.Timer
	closed  bool

	wg sync.WaitGroup

	// Statistics
	totalBuffered atomic.Uint64
	totalBatches  atomic.Uint64
	failedSends   atomic.Uint64
}

// NewBatch wraps inner in a batching transport.
func NewBatch(inner Transport, opts BatchOptions, logger *log.Logger) *BatchTransport {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.FlushInterval <= 0 {
		opts.FlushInterval = DefaultFlushInterval
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = DefaultRetryDelay
	}
	if opts.RetryMaxDelay <= 0 {
		opts.RetryMaxDelay = DefaultRetryMaxDelay
	}
	if logger == nil {
		logger = log.NewLogger()
	}
	return &BatchTransport{
		inner:   inner,
		opts:    opts,
		logger:  logger,
		pending: make([]*core.Entry, 0, opts.BatchSize),
	}
}

func (b *BatchTransport) Name() string { return b.inner.Name() }

func (b *BatchTransport) Level() level.Level { return b.inner.Level() }

// Deliver buffers one entry. Reaching BatchSize flushes immediately and
// cancels any pending timer; otherwise the first buffered entry arms a
// one-shot timer for FlushInterval from now.
func (b *BatchTransport) Deliver(e *core.Entry) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		// Batching has shut down; hand the entry straight through.
		b.sendEntry(e)
		return nil
	}

	b.pending = append(b.pending, e)
	b.totalBuffered.Add(1)

	if len(b.pending) >= b.opts.BatchSize {
		batch := b.swapLocked()
		b.mu.Unlock()

		b.wg.Add(1)
		go func() {
			defer b.wg.Done()
			b.send(batch)
		}()
		return nil
	}

	if b.timer == nil {
		b.timer = time.AfterFunc(b.opts.FlushInterval, b.timerFlush)
	}
	b.mu.Unlock()
	return nil
}

// swapLocked atomically replaces the pending buffer with an empty one and
// cancels the timer. Caller holds b.mu.
func (b *BatchTransport) swapLocked() []*core.Entry {
	batch := b.pending
	b.pending = make([]*core.Entry, 0, b.opts.BatchSize)
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	return batch
}

func (b *BatchTransport) timerFlush() {
	b.mu.Lock()
	b.timer = nil
	if len(b.pending) == 0 {
		b.mu.Unlock()
		return
	}
	batch := b.swapLocked()
	b.mu.Unlock()

	b.send(batch)
}

// Flush cancels any pending timer, delivers everything buffered, waits for
// in-flight background sends, then flushes the inner transport if it
// supports flushing. The inner flush error is surfaced to the caller.
func (b *BatchTransport) Flush() error {
	b.mu.Lock()
	batch := b.swapLocked()
	b.mu.Unlock()

	if len(batch) > 0 {
		b.send(batch)
	}
	b.wg.Wait()

	if f, ok := b.inner.(Flusher); ok {
		return f.Flush()
	}
	return nil
}

// Close flushes buffered entries rather than discarding them, then closes
// the inner transport if it supports closing.
func (b *BatchTransport) Close() error {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()

	err := b.Flush()

	if c, ok := b.inner.(Closer); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// send delivers one captured batch. When the inner transport consumes
// batches natively the whole batch goes out in one call; otherwise entries
// are delivered sequentially, each inside its own failure boundary.
func (b *BatchTransport) send(batch []*core.Entry) {
	b.totalBatches.Add(1)

	if bd, ok := b.inner.(BatchDeliverer); ok {
		if err := b.attempt(func() error { return bd.DeliverBatch(batch) }); err != nil {
			b.failedSends.Add(1)
			b.logger.Error("msg", "Batch delivery failed",
				"component", "batch_transport",
				"transport", b.inner.Name(),
				"batch_size", len(batch),
				"error", err)
		}
		return
	}

	for _, e := range batch {
		b.sendEntry(e)
	}
}

func (b *BatchTransport) sendEntry(e *core.Entry) {
	defer func() {
		if r := recover(); r != nil {
			b.failedSends.Add(1)
			b.logger.Warn("msg", "Inner transport panicked",
				"component", "batch_transport",
				"transport", b.inner.Name(),
				"panic", r)
		}
	}()

	if err := b.attempt(func() error { return b.inner.Deliver(e) }); err != nil {
		b.failedSends.Add(1)
		b.logger.Warn("msg", "Entry delivery failed",
			"component", "batch_transport",
			"transport", b.inner.Name(),
			"error", err)
	}
}

// attempt runs one send, with exponential-backoff retries when configured.
// 4xx-class rejections are terminal: they are returned after the first
// attempt for out-of-band reporting, never retried.
func (b *BatchTransport) attempt(fn func() error) error {
	if b.opts.MaxRetries <= 0 {
		return fn()
	}
	return retry.New(
		retry.Attempts(uint(b.opts.MaxRetries)+1),
		retry.Delay(b.opts.RetryDelay),
		retry.MaxDelay(b.opts.RetryMaxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			var se *StatusError
			if errors.As(err, &se) {
				return !se.Terminal()
			}
			return true
		}),
	).Do(fn)
}

// Stats returns batching counters.
func (b *BatchTransport) Stats() map[string]any {
	b.mu.Lock()
	pending := len(b.pending)
	b.mu.Unlock()
	return map[string]any{
		"type":            "batch",
		"inner":           b.inner.Name(),
		"batch_size":      b.opts.BatchSize,
		"pending_entries": pending,
		"total_batches":   b.totalBatches.Load(),
		"failed_sends":    b.failedSends.Load(),
	}
}
