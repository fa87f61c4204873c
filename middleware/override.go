package middleware

import (
	"logward/core"
	"logward/level"
)

// LevelOverride rewrites an entry's level from a metadata key. When the key
// holds a known level name, the entry's level and levelName are rewritten
// together, the key is removed from metadata, and the entry is forwarded.
//
// When the key holds a value that does not map to a known level name the
// entry is dropped outright, key still attached. Downstream consumers
// depend on this no-op-on-unrecognized-input behavior; do not turn it into
// an error or a pass-through.
func LevelOverride(key string) Func {
	return func(e *core.Entry, next Next) {
		raw, ok := e.Meta[key]
		if !ok {
			next(e)
			return
		}
		name, ok := raw.(string)
		if !ok {
			return
		}
		lv, ok := level.Lookup(name)
		if !ok {
			return
		}
		e.Level = int(lv)
		e.LevelName = lv.String()
		delete(e.Meta, key)
		next(e)
	}
}
