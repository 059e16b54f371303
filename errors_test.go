package tester

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRuntimeError(t *testing.T) {
	err := NewRuntimeError(errors.New("fixture tree unreadable"))
	assert.True(t, IsRuntimeError(err))
	assert.False(t, IsTestFailureError(err))
	assert.Contains(t, err.Error(), "runtime error")

	wrapped := fmt.Errorf("starting service: %w", err)
	assert.True(t, IsRuntimeError(wrapped))
}

func TestIsTestFailureError(t *testing.T) {
	err := NewTestFailureError("3 tests failed")
	assert.True(t, IsTestFailureError(err))
	assert.False(t, IsRuntimeError(err))
	assert.Contains(t, err.Error(), "3 tests failed")

	wrapped := fmt.Errorf("run finished: %w", err)
	assert.True(t, IsTestFailureError(wrapped))
}

func TestErrorPredicatesOnNil(t *testing.T) {
	assert.False(t, IsRuntimeError(nil))
	assert.False(t, IsTestFailureError(nil))
}

func TestRuntimeErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	assert.ErrorIs(t, NewRuntimeError(cause), cause)
}
