// Package scope propagates ambient key/values across call frames and
// asynchronous continuations using context.Context as the carrier.
//
// Entering a scope overlays a new frame on top of the parent's (child keys
// win) and the derived context makes the merged frame visible to everything
// invoked under it, including goroutines that inherit the context. Sibling
// scopes entered concurrently never observe each other's frames.
package scope

import (
	"context"
	"sync"

	"logward/core"
)

type ctxKey struct{}

// frame is the mutable key/value store for one logical scope. Merge writes
// into it in place, so access is serialized.
type frame struct {
	mu sync.RWMutex
	kv core.Fields
}

func (f *frame) snapshot() core.Fields {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.kv.Clone()
}

// Enter derives a context carrying a new frame: the parent frame's values
// overlaid with vals, child keys winning on conflict. The parent's frame is
// untouched, so the caller's context remains valid after the scope ends.
func Enter(ctx context.Context, vals core.Fields) context.Context {
	merged := make(core.Fields)
	if parent, ok := ctx.Value(ctxKey{}).(*frame); ok {
		parent.mu.RLock()
		for k, v := range parent.kv {
			merged[k] = v
		}
		parent.mu.RUnlock()
	}
	for k, v := range vals {
		merged[k] = v
	}
	return context.WithValue(ctx, ctxKey{}, &frame{kv: merged})
}

// Run executes fn inside a new scope carrying vals. The frame is visible to
// fn and to everything it transitively invokes with the given context,
// including work resumed after a suspension.
func Run(ctx context.Context, vals core.Fields, fn func(context.Context)) {
	fn(Enter(ctx, vals))
}

// Fields returns a snapshot of the active frame, or nil outside any scope.
func Fields(ctx context.Context) core.Fields {
	if ctx == nil {
		return nil
	}
	f, ok := ctx.Value(ctxKey{}).(*frame)
	if !ok {
		return nil
	}
	return f.snapshot()
}

// Value returns a single key from the active frame.
func Value(ctx context.Context, key string) (any, bool) {
	if ctx == nil {
		return nil, false
	}
	f, ok := ctx.Value(ctxKey{}).(*frame)
	if !ok {
		return nil, false
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.kv[key]
	return v, ok
}

// Merge writes vals into the currently active frame in place, visible to
// the remainder of the scope and to scopes entered under it from that point
// forward. A no-op outside any scope.
func Merge(ctx context.Context, vals core.Fields) {
	if ctx == nil {
		return
	}
	f, ok := ctx.Value(ctxKey{}).(*frame)
	if !ok {
		return
	}
	f.mu.Lock()
	for k, v := range vals {
		f.kv[k] = v
	}
	f.mu.Unlock()
}
