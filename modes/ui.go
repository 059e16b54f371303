package modes

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/soltools/sol-tester/header"
	"github.com/soltools/sol-tester/types"
)

var uiFns = Fns{Check: checkUI, Run: runUI}

// checkUI skips cases ruled out by the manifest or by an unqualified
// "//@ignore" directive. Revision-qualified ignores are resolved at run
// time, once the active revision is known.
func checkUI(cfg *types.Config, path string) types.TestResult {
	if rel, err := filepath.Rel(cfg.Root, path); err == nil {
		if reason, ok := cfg.SkipReason(types.ModeUI, filepath.ToSlash(rel)); ok {
			return types.Skip(reason)
		}
	}
	src, err := os.ReadFile(path)
	if err != nil {
		// Leave unreadable fixtures to the run phase, which reports them
		// as failures.
		return types.Pass()
	}
	if reason := header.Load(string(src), "").IgnoreReason; reason != "" {
		return types.Skip(reason)
	}
	return types.Pass()
}

// runUI invokes the compiler on the fixture and compares its normalized
// output against the expected snapshot kept beside the fixture. In bless
// mode the snapshot is rewritten instead.
func runUI(ctx context.Context, cx *Context) types.TestResult {
	if cx.Props.IgnoreReason != "" {
		return types.Skip(cx.Props.IgnoreReason)
	}

	args := append([]string{}, cx.Props.Flags...)
	args = append(args, cx.File)
	out, code, err := runCompiler(ctx, cx.Config, args)
	if err != nil {
		return types.Fail(err, out)
	}
	actual := normalizeOutput(cx.Config, out)

	if want := cx.Props.ExitCode; want != nil && *want != code {
		return types.Fail(fmt.Errorf("compiler exited with code %d, expected %d", code, *want), actual)
	}

	snapshot := snapshotPath(cx)

	// Keep the actual output in the mirrored build directory for
	// inspection, regardless of the verdict.
	actualPath := filepath.Join(cx.OutputBaseDir(), filepath.Base(snapshot))
	if err := os.WriteFile(actualPath, []byte(actual), 0o644); err != nil {
		return types.Fail(fmt.Errorf("writing actual output: %w", err), actual)
	}

	if cx.Config.Bless {
		return blessSnapshot(snapshot, actual)
	}

	expected := ""
	if data, err := os.ReadFile(snapshot); err == nil {
		expected = string(data)
	} else if !os.IsNotExist(err) {
		return types.Fail(fmt.Errorf("reading expected snapshot: %w", err), actual)
	}

	if expected != actual {
		diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(expected),
			B:        difflib.SplitLines(actual),
			FromFile: "expected",
			ToFile:   "actual",
			Context:  3,
		})
		return types.Fail(errors.New("compiler output differs from expected snapshot"), diff)
	}
	return types.Pass()
}

// snapshotPath returns the expected-output file beside the fixture:
// "<stem>.stderr", or "<stem>@<revision>.stderr" for revisioned cases.
func snapshotPath(cx *Context) string {
	stem := strings.TrimSuffix(cx.File, filepath.Ext(cx.File))
	if cx.Revision != "" {
		return fmt.Sprintf("%s@%s.stderr", stem, cx.Revision)
	}
	return stem + ".stderr"
}

// blessSnapshot overwrites the expected snapshot with the actual output.
// An empty output removes a stale snapshot instead of leaving an empty file.
func blessSnapshot(snapshot, actual string) types.TestResult {
	if actual == "" {
		if err := os.Remove(snapshot); err != nil && !os.IsNotExist(err) {
			return types.Fail(fmt.Errorf("removing stale snapshot: %w", err), "")
		}
		return types.Pass()
	}
	if err := os.WriteFile(snapshot, []byte(actual), 0o644); err != nil {
		return types.Fail(fmt.Errorf("blessing snapshot: %w", err), actual)
	}
	return types.Pass()
}
