package middleware

import (
	"fmt"

	"logward/core"
	"logward/scope"
)

// DefaultCorrelationKey is the frame key consulted for a request
// identifier when the entry does not already carry one.
const DefaultCorrelationKey = "request_id"

// ScopeInject copies the active context frame's values into entry metadata.
// Keys the caller explicitly set on the entry always win over ambient scope
// values. If the frame carries correlationKey and the entry has no
// correlation identifier yet, it is set from that value. An empty
// correlationKey falls back to DefaultCorrelationKey.
func ScopeInject(correlationKey string) Func {
	if correlationKey == "" {
		correlationKey = DefaultCorrelationKey
	}
	return func(e *core.Entry, next Next) {
		frame := scope.Fields(e.Ctx)
		if frame == nil {
			next(e)
			return
		}
		if e.Meta == nil {
			e.Meta = make(core.Fields, len(frame))
		}
		for k, v := range frame {
			if _, exists := e.Meta[k]; !exists {
				e.Meta[k] = v
			}
		}
		if e.CorrelationID == "" {
			if v, ok := frame[correlationKey]; ok {
				e.CorrelationID = fmt.Sprintf("%v", v)
			}
		}
		next(e)
	}
}
