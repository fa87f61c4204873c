package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type codedError struct {
	msg  string
	code string
}

func (e *codedError) Error() string { return e.msg }
func (e *codedError) Code() string  { return e.code }

func TestSerializeError(t *testing.T) {
	t.Run("Nil", func(t *testing.T) {
		assert.Nil(t, SerializeError(nil, false))
	})

	t.Run("Simple", func(t *testing.T) {
		se := SerializeError(errors.New("boom"), false)
		assert.Equal(t, "boom", se.Message)
		assert.Equal(t, "*errors.errorString", se.Name)
		assert.Empty(t, se.Stack)
		assert.Nil(t, se.Cause)
	})

	t.Run("Code", func(t *testing.T) {
		se := SerializeError(&codedError{msg: "denied", code: "EACCES"}, false)
		assert.Equal(t, "EACCES", se.Code)
	})

	t.Run("CauseChain", func(t *testing.T) {
		root := errors.New("root")
		wrapped := fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", root))

		se := SerializeError(wrapped, false)
		assert.Equal(t, "outer: inner: root", se.Message)
		assert.NotNil(t, se.Cause)
		assert.Equal(t, "inner: root", se.Cause.Message)
		assert.NotNil(t, se.Cause.Cause)
		assert.Equal(t, "root", se.Cause.Cause.Message)
		assert.Nil(t, se.Cause.Cause.Cause)
	})

	t.Run("DepthCap", func(t *testing.T) {
		// A 7-level chain must serialize to no more than 5 cause links.
		err := errors.New("level-0")
		for i := 1; i <= 7; i++ {
			err = fmt.Errorf("level-%d: %w", i, err)
		}

		se := SerializeError(err, false)
		links := 0
		for c := se.Cause; c != nil; c = c.Cause {
			links++
		}
		assert.Equal(t, MaxCauseDepth, links)
	})

	t.Run("StackOnRootOnly", func(t *testing.T) {
		wrapped := fmt.Errorf("outer: %w", errors.New("inner"))
		se := SerializeError(wrapped, true)
		assert.NotEmpty(t, se.Stack)
		assert.Contains(t, se.Stack, "error_test.go")
		assert.Empty(t, se.Cause.Stack)
	})
}

func TestFieldsClone(t *testing.T) {
	assert.Nil(t, Fields(nil).Clone())

	orig := Fields{"a": 1, "b": "two"}
	cp := orig.Clone()
	cp["a"] = 99
	assert.Equal(t, 1, orig["a"])
	assert.Equal(t, "two", cp["b"])
}

func TestEntryClone(t *testing.T) {
	e := &Entry{
		ID:      "id-1",
		Message: "hello",
		Meta:    Fields{"k": "v"},
		Context: Fields{"svc": "api"},
	}
	cp := e.Clone()
	cp.Meta["k"] = "changed"
	cp.Context["svc"] = "worker"

	assert.Equal(t, "v", e.Meta["k"])
	assert.Equal(t, "api", e.Context["svc"])
	assert.Equal(t, "id-1", cp.ID)
}
