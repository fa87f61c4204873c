package middleware

import "logward/core"

// RedactedValue replaces redacted field values.
const RedactedValue = "[REDACTED]"

// Redact forwards a copy of the entry with the named metadata and context
// keys replaced by RedactedValue. The original entry is left untouched, so
// middleware ahead of this one never observes the redaction.
func Redact(keys ...string) Func {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return func(e *core.Entry, next Next) {
		if !hasAny(set, e.Meta) && !hasAny(set, e.Context) {
			next(e)
			return
		}
		out := e.Clone()
		for k := range set {
			if _, ok := out.Meta[k]; ok {
				out.Meta[k] = RedactedValue
			}
			if _, ok := out.Context[k]; ok {
				out.Context[k] = RedactedValue
			}
		}
		next(out)
	}
}

func hasAny(set map[string]struct{}, f core.Fields) bool {
	for k := range set {
		if _, ok := f[k]; ok {
			return true
		}
	}
	return false
}
