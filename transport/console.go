package transport

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"logward/core"
	"logward/format"
	"logward/level"

	"github.com/lixenwraith/log"
)

// ConsoleOptions configures a console transport.
type ConsoleOptions struct {
	// Target selects "stdout" or "stderr". Defaults to stdout.
	Target string
	// Level is the transport's own threshold; Unset inherits the logger's.
	Level level.Level
}

// ConsoleTransport writes formatted entries to stdout or stderr.
type ConsoleTransport struct {
	name      string
	output    io.Writer
	opts      ConsoleOptions
	formatter format.Formatter
	logger    *log.Logger
	mu        sync.Mutex

	// Statistics
	totalProcessed atomic.Uint64
}

// NewConsole creates a console transport.
func NewConsole(name string, opts ConsoleOptions, formatter format.Formatter, logger *log.Logger) (*ConsoleTransport, error) {
	if formatter == nil {
		return nil, fmt.Errorf("console transport requires a formatter")
	}
	if logger == nil {
		logger = log.NewLogger()
	}

	var output io.Writer
	switch opts.Target {
	case "", "stdout":
		output = os.Stdout
	case "stderr":
		output = os.Stderr
	default:
		return nil, fmt.Errorf("unknown console target: %s", opts.Target)
	}

	if name == "" {
		name = "console"
	}
	return &ConsoleTransport{
		name:      name,
		output:    output,
		opts:      opts,
		formatter: formatter,
		logger:    logger,
	}, nil
}

func (c *ConsoleTransport) Name() string { return c.name }

func (c *ConsoleTransport) Level() level.Level { return c.opts.Level }

// Deliver formats and writes one entry. Writes are serialized so lines
// from concurrent flushes never interleave.
func (c *ConsoleTransport) Deliver(e *core.Entry) error {
	formatted, err := c.formatter.Format(e)
	if err != nil {
		return fmt.Errorf("failed to format entry: %w", err)
	}

	c.mu.Lock()
	_, err = c.output.Write(formatted)
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("console write failed: %w", err)
	}
	c.totalProcessed.Add(1)
	return nil
}

// Stats returns console counters.
func (c *ConsoleTransport) Stats() map[string]any {
	return map[string]any{
		"type":            "console",
		"target":          c.opts.Target,
		"total_processed": c.totalProcessed.Load(),
	}
}
