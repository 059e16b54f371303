package modes

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/soltools/sol-tester/header"
	"github.com/soltools/sol-tester/types"
)

var solidityFns = Fns{Check: checkSolidity, Run: runSolidity}

func checkSolidity(cfg *types.Config, path string) types.TestResult {
	return checkConformance(cfg, types.ModeSolcSolidity, path)
}

func runSolidity(ctx context.Context, cx *Context) types.TestResult {
	return runConformance(ctx, cx, nil)
}

// checkConformance skips corpus fixtures ruled out by the manifest or using
// features the harness cannot drive.
func checkConformance(cfg *types.Config, mode types.Mode, path string) types.TestResult {
	if rel, err := filepath.Rel(cfg.Root, path); err == nil {
		if reason, ok := cfg.SkipReason(mode, filepath.ToSlash(rel)); ok {
			return types.Skip(reason)
		}
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return types.Pass()
	}
	if header.IsMultiSource(string(src)) {
		return types.Skip("multi-source fixtures are not supported")
	}
	return types.Pass()
}

// runConformance judges a corpus fixture by exit status: fixtures whose
// expectation block contains errors must be rejected, all others must be
// accepted.
func runConformance(ctx context.Context, cx *Context, extraArgs []string) types.TestResult {
	if v, ok := cx.Props.Settings["EVMVersion"]; ok {
		return types.Skip(fmt.Sprintf("EVMVersion constraint %q is not supported", v))
	}

	args := append([]string{}, extraArgs...)
	args = append(args, cx.File)
	out, code, err := runCompiler(ctx, cx.Config, args)
	if err != nil {
		return types.Fail(err, out)
	}

	wantErrors := cx.Props.ExpectsErrors()
	switch {
	case wantErrors && code == 0:
		return types.Fail(fmt.Errorf("compiler accepted a fixture that expects errors"), normalizeOutput(cx.Config, out))
	case !wantErrors && code != 0:
		return types.Fail(fmt.Errorf("compiler rejected fixture (exit code %d)", code), normalizeOutput(cx.Config, out))
	}
	return types.Pass()
}
