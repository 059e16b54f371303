// Package exitcodes defines the standard exit codes used by sol-tester.
package exitcodes

// Exit code constants used by sol-tester
// These constants define the exit codes that the harness uses to indicate
// various states when it exits:
//
// * Success (0): Used when every test passes, or when no tests are selected
// * TestFailure (1): Used when one or more tests fail
// * RuntimeErr (101): Used for harness misconfiguration and I/O failures
const (
	Success     = 0   // All tests pass
	TestFailure = 1   // Test failures
	RuntimeErr  = 101 // Configuration errors or I/O failures
)
