package types

import "context"

// Fixture is a discovered on-disk test input.
type Fixture struct {
	Path    string // Absolute path to the fixture file
	RelPath string // Path relative to the project root, slash-separated
}

// TestCase is the fully-built, ready-to-schedule descriptor of one test
// case. It is constructed once during the build phase and consumed exactly
// once by the executor; the Run closure captures its own immutable snapshot
// of the config, fixture path, and revision, so cases share no mutable
// state with one another.
type TestCase struct {
	Mode     Mode
	Fixture  Fixture
	Revision string // Empty when the fixture declares no revisions
	Name     string // Unique display name: "[mode] relpath" + optional "#revision"

	// IgnoreReason is set when the mode's check function decided at build
	// time that this case must not run. The Run closure is never invoked
	// for ignored cases.
	IgnoreReason string

	Run func(ctx context.Context) TestResult
}

// Ignored reports whether the case was ruled out at build time.
func (c *TestCase) Ignored() bool {
	return c.IgnoreReason != ""
}
