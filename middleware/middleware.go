// Package middleware defines the interception contract for the pipeline
// and composes ordered middleware into a single entry point.
package middleware

import "logward/core"

// Next forwards an entry to the rest of the chain.
type Next func(*core.Entry)

// Func intercepts one entry. It may mutate the entry in place, replace it
// with a different one when calling next, or drop it by never calling next.
// Dropping is silent: no error, no signal, simply absence of propagation.
type Func func(e *core.Entry, next Next)

// Compose builds a single callable from an ordered middleware list.
// middleware[0] runs first; the last middleware's next is terminal. An
// empty list degenerates to terminal itself.
func Compose(mws []Func, terminal Next) Next {
	chain := terminal
	for i := len(mws) - 1; i >= 0; i-- {
		mw := mws[i]
		next := chain
		chain = func(e *core.Entry) {
			mw(e, next)
		}
	}
	return chain
}
