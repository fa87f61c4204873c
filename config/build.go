package config

import (
	"fmt"
	"time"

	"logward"
	"logward/core"
	"logward/format"
	"logward/idgen"
	"logward/level"
	"logward/middleware"
	"logward/transport"

	"github.com/lixenwraith/log"
)

// Build assembles a running logger from a validated config. The returned
// cleanup func releases middleware-held resources (dedup window timers)
// and must be called after the logger is closed.
func Build(cfg *Config, logger *log.Logger) (*logward.Logger, func(), error) {
	if logger == nil {
		logger = log.NewLogger()
	}
	if err := cfg.validate(); err != nil {
		return nil, nil, err
	}

	opts := logward.Options{
		Level:         cfg.Level,
		StackMinLevel: cfg.StackMinLevel,
		Context:       core.Fields(cfg.Context),
		Diagnostics:   logger,
	}

	switch cfg.IDGenerator {
	case "", "uuid":
		opts.IDGenerator = idgen.UUID()
	case "sonyflake":
		gen, err := idgen.Sonyflake()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create id generator: %w", err)
		}
		opts.IDGenerator = gen
	case "none":
		opts.IDGenerator = idgen.Disabled
	}

	for i, tc := range cfg.Transports {
		t, err := buildTransport(tc, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("transports[%d]: %w", i, err)
		}
		opts.Transports = append(opts.Transports, t)
	}

	var cleanups []func()
	for i, mc := range cfg.Middleware {
		mw, cleanup, err := buildMiddleware(mc, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("middleware[%d]: %w", i, err)
		}
		opts.Middleware = append(opts.Middleware, mw)
		if cleanup != nil {
			cleanups = append(cleanups, cleanup)
		}
	}

	lg, err := logward.New(opts)
	if err != nil {
		return nil, nil, err
	}
	return lg, func() {
		for _, fn := range cleanups {
			fn()
		}
	}, nil
}

func buildTransport(tc TransportConfig, logger *log.Logger) (transport.Transport, error) {
	name := tc.Name
	if name == "" {
		name = tc.Type
	}
	lv := level.Unset
	if tc.Level != "" {
		lv = level.Parse(tc.Level)
	}

	var inner transport.Transport
	var err error

	switch tc.Type {
	case "console":
		var f format.Formatter
		f, err = format.New(tc.Format, format.Options{
			Pretty:   tc.Pretty,
			Template: tc.Template,
		})
		if err != nil {
			return nil, err
		}
		inner, err = transport.NewConsole(name, transport.ConsoleOptions{
			Target: tc.Target,
			Level:  lv,
		}, f, logger)

	case "file":
		var f format.Formatter
		f, err = format.New(tc.Format, format.Options{
			Pretty:   tc.Pretty,
			Template: tc.Template,
		})
		if err != nil {
			return nil, err
		}
		inner, err = transport.NewFile(name, transport.FileOptions{
			Directory:      tc.Directory,
			FileName:       tc.FileName,
			Level:          lv,
			MaxSizeMB:      tc.MaxSizeMB,
			MaxTotalSizeMB: tc.MaxTotalSizeMB,
			RetentionHours: tc.RetentionHours,
		}, f, logger)

	case "http":
		inner, err = transport.NewHTTP(name, transport.HTTPOptions{
			URL:           tc.URL,
			Level:         lv,
			Timeout:       time.Duration(tc.TimeoutSeconds) * time.Second,
			Headers:       tc.Headers,
			EnableBreaker: tc.EnableBreaker,
		}, logger)

	case "memory":
		inner, err = transport.NewMemory(name, transport.MemoryOptions{
			Capacity: tc.Capacity,
			Level:    lv,
		})

	default:
		return nil, fmt.Errorf("unknown transport type '%s'", tc.Type)
	}
	if err != nil {
		return nil, err
	}

	if tc.BatchEnabled {
		inner = transport.NewBatch(inner, transport.BatchOptions{
			BatchSize:     tc.BatchSize,
			FlushInterval: time.Duration(tc.FlushIntervalMS) * time.Millisecond,
			MaxRetries:    tc.MaxRetries,
			RetryDelay:    time.Duration(tc.RetryDelayMS) * time.Millisecond,
			RetryMaxDelay: time.Duration(tc.RetryMaxDelayMS) * time.Millisecond,
		}, logger)
	}
	return inner, nil
}

func buildMiddleware(mc MiddlewareConfig, logger *log.Logger) (middleware.Func, func(), error) {
	switch mc.Type {
	case "scope":
		return middleware.ScopeInject(mc.Key), nil, nil
	case "override":
		return middleware.LevelOverride(mc.Key), nil, nil
	case "dedup":
		d := middleware.NewDeduper(time.Duration(mc.WindowMS)*time.Millisecond, logger)
		return d.Func(), d.Close, nil
	case "ratelimit":
		rl := middleware.NewRateLimiter(mc.EntriesPerSec, mc.Burst, logger)
		return rl.Func(), nil, nil
	case "redact":
		return middleware.Redact(mc.Keys...), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown middleware type '%s'", mc.Type)
	}
}
