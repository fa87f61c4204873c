// Package level defines the severity scale shared by the whole pipeline.
package level

import "strings"

// Level is a numeric severity weight. Higher weights are more severe.
type Level int

const (
	// Unset is the zero value. A transport reporting Unset inherits the
	// logger's current threshold.
	Unset Level = 0

	Trace Level = 10
	Debug Level = 20
	Info  Level = 30
	Warn  Level = 40
	Error Level = 50
	Fatal Level = 60

	// Silent sits above every real level and disables output entirely.
	Silent Level = 70
)

var names = map[string]Level{
	"TRACE":  Trace,
	"DEBUG":  Debug,
	"INFO":   Info,
	"WARN":   Warn,
	"ERROR":  Error,
	"FATAL":  Fatal,
	"SILENT": Silent,
}

// Parse resolves a level name case-insensitively. Unresolvable names fall
// back to Info rather than erroring; callers that need strict resolution
// use Lookup.
func Parse(name string) Level {
	if lv, ok := names[strings.ToUpper(strings.TrimSpace(name))]; ok {
		return lv
	}
	return Info
}

// Lookup resolves a level name case-insensitively, reporting whether the
// name is known.
func Lookup(name string) (Level, bool) {
	lv, ok := names[strings.ToUpper(strings.TrimSpace(name))]
	return lv, ok
}

// String returns the canonical uppercase name for the level.
func (l Level) String() string {
	switch l {
	case Trace:
		return "TRACE"
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	case Fatal:
		return "FATAL"
	case Silent:
		return "SILENT"
	default:
		return "INFO"
	}
}

// Passes reports whether an entry at weight entry clears the threshold.
func Passes(entry, threshold Level) bool {
	return entry >= threshold
}
