package transport

import (
	"fmt"
	"testing"

	"logward/core"
	"logward/level"

	"github.com/stretchr/testify/assert"
)

func writeN(t *testing.T, m *MemoryTransport, msgs ...string) {
	t.Helper()
	for i, msg := range msgs {
		err := m.Deliver(&core.Entry{
			Level:     int(level.Info),
			LevelName: "INFO",
			Message:   msg,
			Timestamp: int64(i + 1),
		})
		assert.NoError(t, err)
	}
}

func messages(entries []core.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Message
	}
	return out
}

func TestNewMemory(t *testing.T) {
	m, err := NewMemory("", MemoryOptions{})
	assert.NoError(t, err)
	assert.Equal(t, "memory", m.Name())
	assert.Equal(t, DefaultMemoryCapacity, m.Capacity())

	_, err = NewMemory("bad", MemoryOptions{Capacity: -1})
	assert.Error(t, err)
}

func TestMemoryWrapAround(t *testing.T) {
	m, err := NewMemory("ring", MemoryOptions{Capacity: 3})
	assert.NoError(t, err)

	writeN(t, m, "A", "B", "C", "D", "E")

	assert.Equal(t, 3, m.Size())
	got := m.Query(QueryFilter{})
	assert.Equal(t, []string{"C", "D", "E"}, messages(got))
}

func TestMemoryQueryBeforeWrap(t *testing.T) {
	m, _ := NewMemory("ring", MemoryOptions{Capacity: 10})
	writeN(t, m, "A", "B", "C")

	assert.Equal(t, 3, m.Size())
	assert.Equal(t, []string{"A", "B", "C"}, messages(m.Query(QueryFilter{})))
}

func TestMemoryQueryLimitKeepsTail(t *testing.T) {
	m, _ := NewMemory("ring", MemoryOptions{Capacity: 10})
	writeN(t, m, "msg-0", "msg-1", "msg-2", "msg-3", "msg-4")

	got := m.Query(QueryFilter{Limit: 2})
	assert.Equal(t, []string{"msg-3", "msg-4"}, messages(got))
}

func TestMemoryQueryFilters(t *testing.T) {
	m, _ := NewMemory("ring", MemoryOptions{Capacity: 10})
	for i := 0; i < 6; i++ {
		lv := level.Info
		if i%2 == 1 {
			lv = level.Error
		}
		_ = m.Deliver(&core.Entry{
			Level:     int(lv),
			LevelName: lv.String(),
			Message:   fmt.Sprintf("msg-%d", i),
			Timestamp: int64(i),
		})
	}

	t.Run("LevelFloor", func(t *testing.T) {
		got := m.Query(QueryFilter{MinLevel: level.Error})
		assert.Equal(t, []string{"msg-1", "msg-3", "msg-5"}, messages(got))
	})

	t.Run("SinceFloor", func(t *testing.T) {
		got := m.Query(QueryFilter{Since: 4})
		assert.Equal(t, []string{"msg-4", "msg-5"}, messages(got))
	})

	t.Run("Combined", func(t *testing.T) {
		got := m.Query(QueryFilter{MinLevel: level.Error, Since: 2, Limit: 1})
		assert.Equal(t, []string{"msg-5"}, messages(got))
	})
}

func TestMemoryClear(t *testing.T) {
	m, _ := NewMemory("ring", MemoryOptions{Capacity: 3})
	writeN(t, m, "A", "B")

	m.Clear()
	assert.Equal(t, 0, m.Size())
	assert.Empty(t, m.Query(QueryFilter{}))

	// Writes after clear start a fresh logical sequence.
	writeN(t, m, "X", "Y", "Z", "W")
	assert.Equal(t, []string{"Y", "Z", "W"}, messages(m.Query(QueryFilter{})))
}

func TestMemoryCopiesEntriesIn(t *testing.T) {
	m, _ := NewMemory("ring", MemoryOptions{Capacity: 3})
	e := &core.Entry{Level: int(level.Info), Message: "before"}
	_ = m.Deliver(e)

	e.Message = "after"
	assert.Equal(t, []string{"before"}, messages(m.Query(QueryFilter{})))
}
