package transport

import (
	"bytes"
	"testing"

	"logward/format"
	"logward/level"

	"github.com/stretchr/testify/assert"
)

func TestNewConsole(t *testing.T) {
	f := format.NewJSON(format.Options{})

	t.Run("Defaults", func(t *testing.T) {
		c, err := NewConsole("", ConsoleOptions{}, f, nil)
		assert.NoError(t, err)
		assert.Equal(t, "console", c.Name())
		assert.Equal(t, level.Unset, c.Level())
	})

	t.Run("UnknownTarget", func(t *testing.T) {
		_, err := NewConsole("c", ConsoleOptions{Target: "socket"}, f, nil)
		assert.Error(t, err)
	})

	t.Run("NilFormatter", func(t *testing.T) {
		_, err := NewConsole("c", ConsoleOptions{}, nil, nil)
		assert.Error(t, err)
	})
}

func TestConsoleDeliver(t *testing.T) {
	f, err := format.NewText(format.Options{Template: "{{.Level}} {{.Message}}"})
	assert.NoError(t, err)

	c, err := NewConsole("c", ConsoleOptions{}, f, nil)
	assert.NoError(t, err)

	var buf bytes.Buffer
	c.output = &buf

	assert.NoError(t, c.Deliver(entryAt(level.Warn, "look out")))
	assert.Equal(t, "WARN look out\n", buf.String())
	assert.Equal(t, uint64(1), c.Stats()["total_processed"])
}
