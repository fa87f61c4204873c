package logward

import (
	"fmt"
	"sync"
	"sync/atomic"

	"logward/core"
	"logward/idgen"
	"logward/level"
	"logward/middleware"
	"logward/transport"

	"github.com/lixenwraith/log"
)

// pipeline is the shared state behind a logger and all of its children:
// the single level threshold, the transport list, the middleware chain and
// the stamping machinery. Parent and child loggers hold the same pipeline
// handle, so a level change through any of them is visible to all.
type pipeline struct {
	levelValue atomic.Int32

	mu  sync.Mutex
	mws []*mwEntry

	// Snapshots read lock-free on every log call so concurrent add/remove
	// never corrupts an in-flight dispatch.
	composed   atomic.Value // middleware.Next
	transports atomic.Value // []transport.Transport

	clock    func() int64
	idGen    idgen.Generator
	stackMin level.Level
	logger   *log.Logger
}

type mwEntry struct {
	fn middleware.Func
}

func newPipeline(opts Options) (*pipeline, error) {
	p := &pipeline{
		clock:    opts.Clock,
		idGen:    opts.IDGenerator,
		stackMin: level.Error,
		logger:   opts.Diagnostics,
	}
	if p.logger == nil {
		p.logger = log.NewLogger()
	}
	if opts.StackMinLevel != "" {
		p.stackMin = level.Parse(opts.StackMinLevel)
	}
	p.levelValue.Store(int32(level.Parse(opts.Level)))

	ts := make([]transport.Transport, 0, len(opts.Transports))
	seen := make(map[string]struct{}, len(opts.Transports))
	for i, t := range opts.Transports {
		if t == nil {
			return nil, fmt.Errorf("transport[%d] is nil", i)
		}
		if _, dup := seen[t.Name()]; dup {
			return nil, fmt.Errorf("duplicate transport name '%s'", t.Name())
		}
		seen[t.Name()] = struct{}{}
		ts = append(ts, t)
	}
	p.transports.Store(ts)

	for _, mw := range opts.Middleware {
		if mw == nil {
			return nil, fmt.Errorf("middleware list contains a nil entry")
		}
		p.mws = append(p.mws, &mwEntry{fn: mw})
	}
	p.rebuildLocked()

	return p, nil
}

func (p *pipeline) level() level.Level {
	return level.Level(p.levelValue.Load())
}

func (p *pipeline) setLevel(lv level.Level) {
	p.levelValue.Store(int32(lv))
}

// chain returns the composed entry point captured for this call.
func (p *pipeline) chain() middleware.Next {
	return p.composed.Load().(middleware.Next)
}

// terminal dispatches to the transport snapshot current at call time.
func (p *pipeline) terminal(e *core.Entry) {
	ts := p.transports.Load().([]transport.Transport)
	transport.Dispatch(e, ts, p.level(), p.logger)
}

// rebuildLocked recomposes the middleware chain. Caller holds p.mu (or is
// the constructor).
func (p *pipeline) rebuildLocked() {
	fns := make([]middleware.Func, len(p.mws))
	for i, ent := range p.mws {
		fns[i] = ent.fn
	}
	p.composed.Store(middleware.Compose(fns, p.terminal))
}

func (p *pipeline) addTransport(t transport.Transport) error {
	if t == nil {
		return fmt.Errorf("transport is nil")
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	cur := p.transports.Load().([]transport.Transport)
	for _, existing := range cur {
		if existing.Name() == t.Name() {
			return fmt.Errorf("duplicate transport name '%s'", t.Name())
		}
	}
	next := make([]transport.Transport, len(cur), len(cur)+1)
	copy(next, cur)
	p.transports.Store(append(next, t))
	return nil
}

func (p *pipeline) removeTransport(name string) transport.Transport {
	p.mu.Lock()
	defer p.mu.Unlock()

	cur := p.transports.Load().([]transport.Transport)
	next := make([]transport.Transport, 0, len(cur))
	var removed transport.Transport
	for _, t := range cur {
		if removed == nil && t.Name() == name {
			removed = t
			continue
		}
		next = append(next, t)
	}
	if removed != nil {
		p.transports.Store(next)
	}
	return removed
}

func (p *pipeline) use(mw middleware.Func) func() {
	ent := &mwEntry{fn: mw}

	p.mu.Lock()
	p.mws = append(p.mws, ent)
	p.rebuildLocked()
	p.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			for i, cur := range p.mws {
				if cur == ent {
					p.mws = append(p.mws[:i], p.mws[i+1:]...)
					break
				}
			}
			p.rebuildLocked()
		})
	}
}

func (p *pipeline) snapshot() []transport.Transport {
	return p.transports.Load().([]transport.Transport)
}
