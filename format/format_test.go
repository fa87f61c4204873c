package format

import (
	"testing"
	"time"

	"logward/core"
	"logward/level"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
)

func testEntry() *core.Entry {
	return &core.Entry{
		ID:        "id-1",
		Level:     int(level.Info),
		LevelName: "INFO",
		Message:   "service started",
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC).UnixMilli(),
		Meta:      core.Fields{"port": 8080},
		Context:   core.Fields{"service": "api"},
	}
}

func TestNew(t *testing.T) {
	f, err := New("", Options{})
	assert.NoError(t, err)
	assert.Equal(t, "json", f.Name())

	f, err = New("text", Options{})
	assert.NoError(t, err)
	assert.Equal(t, "text", f.Name())

	_, err = New("xml", Options{})
	assert.Error(t, err)
}

func TestJSONFormat(t *testing.T) {
	f := NewJSON(Options{})
	out, err := f.Format(testEntry())
	assert.NoError(t, err)
	assert.Equal(t, byte('\n'), out[len(out)-1])

	var decoded map[string]any
	assert.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "id-1", decoded["id"])
	assert.Equal(t, "INFO", decoded["levelName"])
	assert.Equal(t, "service started", decoded["message"])
	assert.Equal(t, float64(8080), decoded["meta"].(map[string]any)["port"])
	assert.Equal(t, "api", decoded["context"].(map[string]any)["service"])

	// Optional fields are omitted entirely when empty.
	assert.NotContains(t, decoded, "correlationId")
	assert.NotContains(t, decoded, "error")
}

func TestJSONFormatOmitsEmptyContext(t *testing.T) {
	e := testEntry()
	e.Context = nil
	out, err := NewJSON(Options{}).Format(e)
	assert.NoError(t, err)

	var decoded map[string]any
	assert.NoError(t, json.Unmarshal(out, &decoded))
	assert.NotContains(t, decoded, "context")
}

func TestJSONFormatBatch(t *testing.T) {
	f := NewJSON(Options{})
	out, err := f.FormatBatch([]*core.Entry{testEntry(), testEntry()})
	assert.NoError(t, err)

	var decoded []map[string]any
	assert.NoError(t, json.Unmarshal(out, &decoded))
	assert.Len(t, decoded, 2)
	assert.Equal(t, "service started", decoded[0]["message"])
}

func TestTextFormat(t *testing.T) {
	t.Run("DefaultTemplate", func(t *testing.T) {
		f, err := NewText(Options{})
		assert.NoError(t, err)

		out, err := f.Format(testEntry())
		assert.NoError(t, err)
		assert.Contains(t, string(out), "INFO service started")
	})

	t.Run("CustomTemplate", func(t *testing.T) {
		f, err := NewText(Options{Template: "{{ToLower .Level}}|{{.Message}}"})
		assert.NoError(t, err)

		out, err := f.Format(testEntry())
		assert.NoError(t, err)
		assert.Equal(t, "info|service started\n", string(out))
	})

	t.Run("CorrelationIDRendered", func(t *testing.T) {
		f, err := NewText(Options{})
		assert.NoError(t, err)

		e := testEntry()
		e.CorrelationID = "r-1"
		out, err := f.Format(e)
		assert.NoError(t, err)
		assert.Contains(t, string(out), "(r-1)")
	})

	t.Run("InvalidTemplate", func(t *testing.T) {
		_, err := NewText(Options{Template: "{{.Message"})
		assert.Error(t, err)
	})
}
