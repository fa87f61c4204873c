package middleware

import (
	"sync/atomic"

	"logward/core"

	"github.com/lixenwraith/log"
	"golang.org/x/time/rate"
)

// RateLimiter drops entries once the configured budget is exhausted.
type RateLimiter struct {
	limiter *rate.Limiter
	logger  *log.Logger

	// Statistics
	totalProcessed atomic.Uint64
	totalDropped   atomic.Uint64
}

// NewRateLimiter creates a rate-limiting middleware allowing entriesPerSec
// sustained throughput with the given burst.
func NewRateLimiter(entriesPerSec float64, burst int, logger *log.Logger) *RateLimiter {
	if logger == nil {
		logger = log.NewLogger()
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(entriesPerSec), burst),
		logger:  logger,
	}
}

// Func returns the middleware function for the chain.
func (rl *RateLimiter) Func() Func {
	return func(e *core.Entry, next Next) {
		rl.totalProcessed.Add(1)
		if !rl.limiter.Allow() {
			rl.totalDropped.Add(1)
			rl.logger.Debug("msg", "Entry dropped by rate limit",
				"component", "ratelimit_middleware",
				"level", e.LevelName)
			return
		}
		next(e)
	}
}

// Stats returns rate limiter counters.
func (rl *RateLimiter) Stats() map[string]any {
	return map[string]any{
		"total_processed": rl.totalProcessed.Load(),
		"total_dropped":   rl.totalDropped.Load(),
	}
}
