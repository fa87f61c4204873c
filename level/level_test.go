package level

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected Level
	}{
		{"Lowercase", "trace", Trace},
		{"Uppercase", "ERROR", Error},
		{"MixedCase", "WaRn", Warn},
		{"Whitespace", "  debug  ", Debug},
		{"Silent", "silent", Silent},
		{"UnknownDefaultsToInfo", "verbose", Info},
		{"EmptyDefaultsToInfo", "", Info},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Parse(tc.input))
		})
	}
}

func TestLookup(t *testing.T) {
	lv, ok := Lookup("fatal")
	assert.True(t, ok)
	assert.Equal(t, Fatal, lv)

	_, ok = Lookup("nope")
	assert.False(t, ok)
}

func TestOrdering(t *testing.T) {
	assert.True(t, Trace < Debug)
	assert.True(t, Debug < Info)
	assert.True(t, Info < Warn)
	assert.True(t, Warn < Error)
	assert.True(t, Error < Fatal)
	assert.True(t, Fatal < Silent)
}

func TestPasses(t *testing.T) {
	assert.True(t, Passes(Error, Info))
	assert.True(t, Passes(Info, Info))
	assert.False(t, Passes(Debug, Info))

	// Silent threshold disables everything, including FATAL.
	assert.False(t, Passes(Fatal, Silent))
}

func TestString(t *testing.T) {
	assert.Equal(t, "TRACE", Trace.String())
	assert.Equal(t, "FATAL", Fatal.String())
	assert.Equal(t, "SILENT", Silent.String())
	assert.Equal(t, "INFO", Level(42).String())
}
