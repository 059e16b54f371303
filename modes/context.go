package modes

import (
	"github.com/soltools/sol-tester/header"
	"github.com/soltools/sol-tester/types"
)

// Context bundles everything a run function needs to execute one case. It
// is built inside the case's run closure, immediately before execution.
type Context struct {
	Config      *types.Config
	File        string // Absolute fixture path
	RelativeDir string // Fixture's parent directory, relative to the project root
	Src         string // Full fixture source text
	Props       *header.Props
	Revision    string // Empty when the fixture declares no revisions
}

// OutputBaseDir returns the case's artifact directory under the build base.
// Revisions of one fixture share the same directory.
func (cx *Context) OutputBaseDir() string {
	return cx.Config.OutputDir(cx.RelativeDir)
}
