// Package config declares logger assembly in TOML and builds a running
// pipeline from it. Sources are layered defaults -> file -> environment
// (LOGWARD_ prefix) -> CLI arguments.
package config

import (
	"fmt"

	"logward/level"
)

// Config is the root of the declared logger assembly.
type Config struct {
	// Level is the initial threshold name.
	Level string `toml:"level"`
	// StackMinLevel gates stack capture on serialized errors.
	StackMinLevel string `toml:"stack_min_level"`
	// IDGenerator selects "uuid", "sonyflake" or "none".
	IDGenerator string `toml:"id_generator"`
	// Context is bound to every entry.
	Context map[string]any `toml:"context"`

	Transports []TransportConfig  `toml:"transports"`
	Middleware []MiddlewareConfig `toml:"middleware"`
}

// TransportConfig declares one sink.
type TransportConfig struct {
	// Type selects "console", "file", "http" or "memory".
	Type string `toml:"type"`
	// Name identifies the transport; defaults to Type.
	Name string `toml:"name"`
	// Level is the transport's own threshold name; empty inherits the
	// logger's level.
	Level string `toml:"level"`

	// Formatting (console and file).
	Format   string `toml:"format"`
	Pretty   bool   `toml:"pretty"`
	Template string `toml:"template"`

	// Console.
	Target string `toml:"target"`

	// File.
	Directory      string `toml:"directory"`
	FileName       string `toml:"file_name"`
	MaxSizeMB      int64  `toml:"max_size_mb"`
	MaxTotalSizeMB int64  `toml:"max_total_size_mb"`
	RetentionHours int64  `toml:"retention_hours"`

	// HTTP.
	URL            string            `toml:"url"`
	TimeoutSeconds int64             `toml:"timeout_seconds"`
	Headers        map[string]string `toml:"headers"`
	EnableBreaker  bool              `toml:"enable_breaker"`

	// Memory.
	Capacity int `toml:"capacity"`

	// Batching decoration, applicable to any type.
	BatchEnabled    bool  `toml:"batch_enabled"`
	BatchSize       int   `toml:"batch_size"`
	FlushIntervalMS int64 `toml:"flush_interval_ms"`
	MaxRetries      int   `toml:"max_retries"`
	RetryDelayMS    int64 `toml:"retry_delay_ms"`
	RetryMaxDelayMS int64 `toml:"retry_max_delay_ms"`
}

// MiddlewareConfig declares one chain element, run in declaration order.
type MiddlewareConfig struct {
	// Type selects "scope", "override", "dedup", "ratelimit" or "redact".
	Type string `toml:"type"`
	// Key is the correlation frame key (scope) or the override meta key.
	Key string `toml:"key"`
	// WindowMS is the dedup collapse window.
	WindowMS int64 `toml:"window_ms"`
	// EntriesPerSec and Burst configure the rate limiter.
	EntriesPerSec float64 `toml:"entries_per_sec"`
	Burst         int     `toml:"burst"`
	// Keys lists fields the redactor blanks.
	Keys []string `toml:"keys"`
}

func defaults() *Config {
	return &Config{
		Level:         "info",
		StackMinLevel: "error",
		IDGenerator:   "uuid",
		Transports: []TransportConfig{
			{
				Type:   "console",
				Target: "stdout",
				Format: "text",
			},
		},
	}
}

func (c *Config) validate() error {
	if _, ok := level.Lookup(c.Level); c.Level != "" && !ok {
		return fmt.Errorf("unknown level '%s'", c.Level)
	}
	switch c.IDGenerator {
	case "", "uuid", "sonyflake", "none":
	default:
		return fmt.Errorf("unknown id_generator '%s'", c.IDGenerator)
	}

	seen := make(map[string]struct{}, len(c.Transports))
	for i, tc := range c.Transports {
		name := tc.Name
		if name == "" {
			name = tc.Type
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("transports[%d]: duplicate name '%s'", i, name)
		}
		seen[name] = struct{}{}

		switch tc.Type {
		case "console", "file", "memory":
		case "http":
			if tc.URL == "" {
				return fmt.Errorf("transports[%d]: http transport requires url", i)
			}
		default:
			return fmt.Errorf("transports[%d]: unknown type '%s'", i, tc.Type)
		}
	}

	for i, mc := range c.Middleware {
		switch mc.Type {
		case "scope", "redact":
		case "override":
			if mc.Key == "" {
				return fmt.Errorf("middleware[%d]: override requires key", i)
			}
		case "dedup":
			if mc.WindowMS <= 0 {
				return fmt.Errorf("middleware[%d]: dedup requires window_ms > 0", i)
			}
		case "ratelimit":
			if mc.EntriesPerSec <= 0 {
				return fmt.Errorf("middleware[%d]: ratelimit requires entries_per_sec > 0", i)
			}
		default:
			return fmt.Errorf("middleware[%d]: unknown type '%s'", i, mc.Type)
		}
	}
	return nil
}
