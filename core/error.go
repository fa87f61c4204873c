package core

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// MaxCauseDepth caps cause-chain recursion. Causes past this depth are
// silently truncated so cyclic or pathologically deep chains terminate.
const MaxCauseDepth = 5

// SerializedError is a bounded tree capturing a native error at log time.
type SerializedError struct {
	Message string           `json:"message"`
	Name    string           `json:"name"`
	Stack   string           `json:"stack,omitempty"`
	Code    string           `json:"code,omitempty"`
	Cause   *SerializedError `json:"cause,omitempty"`
}

// Implemented by errors that expose a platform or API error code.
type coder interface {
	Code() string
}

// SerializeError converts err into a SerializedError tree. The stack is
// captured at the call site only when includeStack is true and only on the
// root of the tree. Returns nil for a nil error.
func SerializeError(err error, includeStack bool) *SerializedError {
	if err == nil {
		return nil
	}
	se := serializeError(err, 0)
	if includeStack {
		se.Stack = captureStack(3)
	}
	return se
}

func serializeError(err error, depth int) *SerializedError {
	se := &SerializedError{
		Message: err.Error(),
		Name:    fmt.Sprintf("%T", err),
	}
	if c, ok := err.(coder); ok {
		se.Code = c.Code()
	}

	if depth >= MaxCauseDepth {
		// Truncation point: the tree ends here with no cause.
		return se
	}
	if cause := errors.Unwrap(err); cause != nil {
		se.Cause = serializeError(cause, depth+1)
	}
	return se
}

// captureStack formats the calling goroutine's stack, skipping the
// serialization frames themselves.
func captureStack(skip int) string {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(skip, pcs)
	if n == 0 {
		return ""
	}
	frames := runtime.CallersFrames(pcs[:n])
	var b strings.Builder
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&b, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}
	return b.String()
}
