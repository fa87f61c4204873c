// Package format transforms log entries into wire bytes for transports.
package format

import (
	"fmt"

	"logward/core"
)

// Formatter transforms a log entry into a byte slice.
type Formatter interface {
	// Format returns the encoded entry, terminated by a newline.
	Format(e *core.Entry) ([]byte, error)

	// Name returns the formatter type name.
	Name() string
}

// BatchFormatter is implemented by formatters that can encode a whole
// batch into a single payload.
type BatchFormatter interface {
	Formatter
	FormatBatch(entries []*core.Entry) ([]byte, error)
}

// New creates a Formatter by type name. An empty name defaults to json.
func New(name string, opts Options) (Formatter, error) {
	if name == "" {
		name = "json"
	}
	switch name {
	case "json":
		return NewJSON(opts), nil
	case "text":
		return NewText(opts)
	default:
		return nil, fmt.Errorf("unknown formatter type: %s", name)
	}
}

// Options configures formatter construction.
type Options struct {
	// Pretty enables indented JSON output.
	Pretty bool
	// Template overrides the text formatter's layout.
	Template string
	// TimestampFormat is the time layout used by the text formatter.
	TimestampFormat string
}
