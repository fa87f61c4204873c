package middleware

import (
	"testing"

	"logward/core"
	"logward/level"

	"github.com/stretchr/testify/assert"
)

func TestLevelOverride(t *testing.T) {
	mw := LevelOverride("level_override")

	run := func(e *core.Entry) (forwarded *core.Entry) {
		mw(e, func(out *core.Entry) { forwarded = out })
		return forwarded
	}

	t.Run("NoKeyForwardsUnchanged", func(t *testing.T) {
		e := &core.Entry{Level: int(level.Info), LevelName: "INFO", Meta: core.Fields{"k": "v"}}
		got := run(e)
		assert.Same(t, e, got)
		assert.Equal(t, int(level.Info), got.Level)
	})

	t.Run("KnownNameRewritesPairAndRemovesKey", func(t *testing.T) {
		e := &core.Entry{
			Level:     int(level.Info),
			LevelName: "INFO",
			Meta:      core.Fields{"level_override": "error"},
		}
		got := run(e)
		assert.NotNil(t, got)
		assert.Equal(t, int(level.Error), got.Level)
		assert.Equal(t, "ERROR", got.LevelName)
		assert.NotContains(t, got.Meta, "level_override")
	})

	t.Run("UnknownNameDropsEntry", func(t *testing.T) {
		e := &core.Entry{
			Level:     int(level.Info),
			LevelName: "INFO",
			Meta:      core.Fields{"level_override": "shouting"},
		}
		got := run(e)
		assert.Nil(t, got)
		// The drop skips cleanup too: the key stays attached.
		assert.Contains(t, e.Meta, "level_override")
	})

	t.Run("NonStringValueDropsEntry", func(t *testing.T) {
		e := &core.Entry{Meta: core.Fields{"level_override": 42}}
		assert.Nil(t, run(e))
	})
}
