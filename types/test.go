package types

import "time"

// TestStatus represents the possible outcomes of a test execution
type TestStatus string

const (
	TestStatusPass TestStatus = "pass"
	TestStatusFail TestStatus = "fail"
	TestStatusSkip TestStatus = "skip"
)

// TestResult captures the outcome of a single test run
type TestResult struct {
	Status   TestStatus
	Reason   string        // Populated for skipped tests
	Error    error         // Populated for failed tests
	Output   string        // Captured compiler output, kept for failing tests
	Duration time.Duration // Track test execution time
}

// Pass returns a passing result.
func Pass() TestResult {
	return TestResult{Status: TestStatusPass}
}

// Fail returns a failing result carrying the error and any captured output.
func Fail(err error, output string) TestResult {
	return TestResult{Status: TestStatusFail, Error: err, Output: output}
}

// Skip returns a skipped result with a human-readable reason.
func Skip(reason string) TestResult {
	return TestResult{Status: TestStatusSkip, Reason: reason}
}
