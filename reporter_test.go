package tester

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/soltools/sol-tester/runner"
	"github.com/soltools/sol-tester/types"
)

func TestGetResultString(t *testing.T) {
	assert.Equal(t, "✓ pass", getResultString(types.TestStatusPass))
	assert.Equal(t, "- skip", getResultString(types.TestStatusSkip))
	assert.Equal(t, "✗ fail", getResultString(types.TestStatusFail))
}

func TestCaseDetails(t *testing.T) {
	assert.Equal(t, "too slow", caseDetails(runner.CaseResult{
		Status: types.TestStatusSkip,
		Reason: "too slow",
	}))
	assert.Equal(t, "snapshot mismatch", caseDetails(runner.CaseResult{
		Status: types.TestStatusFail,
		Err:    errors.New("snapshot mismatch\n--- expected\n+++ actual"),
	}))
	assert.Equal(t, "test failed", caseDetails(runner.CaseResult{
		Status: types.TestStatusFail,
	}))
	assert.Empty(t, caseDetails(runner.CaseResult{Status: types.TestStatusPass}))
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "one", firstLine("one\ntwo\nthree"))
	assert.Equal(t, "short", firstLine("short"))

	long := ""
	for i := 0; i < 20; i++ {
		long += "abcdefgh"
	}
	assert.Len(t, firstLine(long), 73)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "1.5s", formatDuration(1500*time.Millisecond))
	assert.Equal(t, "0.0s", formatDuration(0))
}
