package idgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabled(t *testing.T) {
	assert.Equal(t, "", Disabled())
}

func TestUUID(t *testing.T) {
	gen := UUID()
	a := gen()
	b := gen()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}

func TestSonyflake(t *testing.T) {
	gen, err := Sonyflake()
	require.NoError(t, err)

	ids := make(map[string]struct{})
	var prev string
	for i := 0; i < 100; i++ {
		id := gen()
		require.NotEmpty(t, id)
		_, dup := ids[id]
		require.False(t, dup)
		ids[id] = struct{}{}
		// Base36 of a monotonically increasing counter sorts by length
		// first, then lexically.
		if prev != "" {
			if len(id) == len(prev) {
				assert.Greater(t, id, prev)
			} else {
				assert.Greater(t, len(id), len(prev))
			}
		}
		prev = id
	}
}
