package format

import (
	"fmt"

	"logward/core"

	json "github.com/goccy/go-json"
)

// JSONFormatter encodes entries as single-line JSON objects.
type JSONFormatter struct {
	pretty bool
}

// NewJSON creates a JSON formatter.
func NewJSON(opts Options) *JSONFormatter {
	return &JSONFormatter{pretty: opts.Pretty}
}

// Format encodes one entry, newline terminated.
func (f *JSONFormatter) Format(e *core.Entry) ([]byte, error) {
	var result []byte
	var err error
	if f.pretty {
		result, err = json.MarshalIndent(e, "", "  ")
	} else {
		result, err = json.Marshal(e)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entry: %w", err)
	}
	return append(result, '\n'), nil
}

// Name returns the formatter's type name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// FormatBatch encodes a slice of entries as a single JSON array.
func (f *JSONFormatter) FormatBatch(entries []*core.Entry) ([]byte, error) {
	var result []byte
	var err error
	if f.pretty {
		result, err = json.MarshalIndent(entries, "", "  ")
	} else {
		result, err = json.Marshal(entries)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal batch: %w", err)
	}
	return result, nil
}
