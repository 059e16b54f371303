// Package types contains shared types used across the sol-tester harness.
package types

import "fmt"

// Mode identifies one of the test dialects the harness knows how to run.
type Mode string

// String implements the Stringer interface for Mode
func (m Mode) String() string {
	return string(m)
}

// Mode enum values
const (
	// ModeUI runs the harness's own UI snapshot fixtures.
	ModeUI Mode = "ui"
	// ModeSolcSolidity runs Solidity fixtures borrowed from the upstream
	// solc test corpus.
	ModeSolcSolidity Mode = "solc-solidity"
	// ModeSolcYul runs Yul fixtures borrowed from the upstream solc test
	// corpus.
	ModeSolcYul Mode = "solc-yul"
)

// AllModes returns every mode, in the order suites are assembled.
func AllModes() []Mode {
	return []Mode{ModeUI, ModeSolcSolidity, ModeSolcYul}
}

// ParseMode maps a mode tag to its Mode. An unrecognized tag is a
// configuration error, not a test failure.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeUI, ModeSolcSolidity, ModeSolcYul:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown mode %q (expected one of %q, %q, %q)",
			s, ModeUI, ModeSolcSolidity, ModeSolcYul)
	}
}

// IsConformance reports whether the mode's fixtures and comparison logic are
// borrowed from the upstream solc corpus. Conformance runners manage their
// own output, so no artifact directory is pre-created for them.
func (m Mode) IsConformance() bool {
	return m == ModeSolcSolidity || m == ModeSolcYul
}
