package format

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"logward/core"
)

const (
	defaultTextTemplate    = "[{{FmtTime .Timestamp}}] {{.Level}} {{.Message}}{{if .CorrelationID}} ({{.CorrelationID}}){{end}}"
	defaultTimestampFormat = time.RFC3339
)

// TextFormatter produces human-readable text lines using templates.
type TextFormatter struct {
	template        *template.Template
	timestampFormat string
}

// NewText creates a text formatter. An empty template uses the default
// "[time] LEVEL message" layout.
func NewText(opts Options) (*TextFormatter, error) {
	f := &TextFormatter{
		timestampFormat: opts.TimestampFormat,
	}
	if f.timestampFormat == "" {
		f.timestampFormat = defaultTimestampFormat
	}

	layout := opts.Template
	if layout == "" {
		layout = defaultTextTemplate
	}

	funcMap := template.FuncMap{
		"FmtTime": func(t time.Time) string {
			return t.Format(f.timestampFormat)
		},
		"ToUpper":   strings.ToUpper,
		"ToLower":   strings.ToLower,
		"TrimSpace": strings.TrimSpace,
	}

	tmpl, err := template.New("entry").Funcs(funcMap).Parse(layout)
	if err != nil {
		return nil, fmt.Errorf("invalid template: %w", err)
	}
	f.template = tmpl
	return f, nil
}

// Format renders the entry through the template, newline terminated.
func (f *TextFormatter) Format(e *core.Entry) ([]byte, error) {
	data := map[string]any{
		"Timestamp":     time.UnixMilli(e.Timestamp),
		"Level":         e.LevelName,
		"Message":       e.Message,
		"ID":            e.ID,
		"CorrelationID": e.CorrelationID,
		"Meta":          e.Meta,
		"Context":       e.Context,
		"Error":         e.Err,
	}

	var buf bytes.Buffer
	if err := f.template.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("template execution failed: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Name returns the formatter's type name.
func (f *TextFormatter) Name() string {
	return "text"
}
