package middleware

import (
	"testing"

	"logward/core"

	"github.com/stretchr/testify/assert"
)

func TestRedact(t *testing.T) {
	mw := Redact("password", "token")

	t.Run("RedactsCopyNotOriginal", func(t *testing.T) {
		e := &core.Entry{
			Meta:    core.Fields{"password": "hunter2", "user": "alex"},
			Context: core.Fields{"token": "abc123"},
		}
		var got *core.Entry
		mw(e, func(out *core.Entry) { got = out })

		assert.NotSame(t, e, got)
		assert.Equal(t, RedactedValue, got.Meta["password"])
		assert.Equal(t, RedactedValue, got.Context["token"])
		assert.Equal(t, "alex", got.Meta["user"])

		// The original entry is untouched.
		assert.Equal(t, "hunter2", e.Meta["password"])
		assert.Equal(t, "abc123", e.Context["token"])
	})

	t.Run("NoMatchForwardsOriginal", func(t *testing.T) {
		e := &core.Entry{Meta: core.Fields{"user": "alex"}}
		var got *core.Entry
		mw(e, func(out *core.Entry) { got = out })
		assert.Same(t, e, got)
	})
}
