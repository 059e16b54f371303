// Package modes maps each test mode to its discovery roots and its
// check/run function pair.
package modes

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/acarl005/stripansi"

	"github.com/soltools/sol-tester/types"
)

// CheckFn decides eagerly, from cheap metadata only, whether a case must be
// skipped. It never invokes the compiler under test.
type CheckFn func(cfg *types.Config, path string) types.TestResult

// RunFn executes one test case and judges its outcome.
type RunFn func(ctx context.Context, cx *Context) types.TestResult

// Fns bundles a mode's check and run functions.
type Fns struct {
	Check CheckFn
	Run   RunFn
}

// For returns the function pair for a mode. The mode set is closed; every
// externally supplied tag goes through types.ParseMode first.
func For(mode types.Mode) Fns {
	switch mode {
	case types.ModeUI:
		return uiFns
	case types.ModeSolcSolidity:
		return solidityFns
	case types.ModeSolcYul:
		return yulFns
	default:
		panic(fmt.Sprintf("unknown mode %q", mode))
	}
}

// DiscoveryRoot returns the fixture root for a mode, relative to the
// project root.
func DiscoveryRoot(mode types.Mode) string {
	switch mode {
	case types.ModeUI:
		return "tests/ui"
	case types.ModeSolcSolidity:
		return "testdata/solidity/test"
	case types.ModeSolcYul:
		return "testdata/solidity/test/libyul"
	default:
		panic(fmt.Sprintf("unknown mode %q", mode))
	}
}

// Extensions returns the file extensions a mode admits. UI and solc-yul
// admit Yul sources in addition to Solidity ones.
func Extensions(mode types.Mode) []string {
	switch mode {
	case types.ModeUI, types.ModeSolcYul:
		return []string{".sol", ".yul"}
	case types.ModeSolcSolidity:
		return []string{".sol"}
	default:
		panic(fmt.Sprintf("unknown mode %q", mode))
	}
}

// UsesSolcHeaders reports whether the mode's fixtures carry solc-dialect
// headers instead of plain directive comments.
func UsesSolcHeaders(mode types.Mode) bool {
	return mode.IsConformance()
}

// runCompiler invokes the compiler under test and returns its combined
// output and exit code. A non-zero exit is a judged outcome, not an error;
// err is non-nil only when the process could not run to completion.
func runCompiler(ctx context.Context, cfg *types.Config, args []string) (output string, code int, err error) {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, cfg.Compiler, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return string(out), -1, fmt.Errorf("compiler invocation did not complete: %w", ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return string(out), exitErr.ExitCode(), nil
		}
		return string(out), -1, fmt.Errorf("invoking compiler %s: %w", cfg.Compiler, err)
	}
	return string(out), 0, nil
}

// normalizeOutput makes compiler output stable across machines: ANSI color
// codes are stripped, CRLF is folded, and the project root is replaced with
// a placeholder.
func normalizeOutput(cfg *types.Config, out string) string {
	s := stripansi.Strip(out)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, cfg.Root, "$ROOT")
	return s
}
