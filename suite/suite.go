// Package suite turns discovered fixtures into a sorted sequence of
// ready-to-schedule test case descriptors.
package suite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/log"

	"github.com/soltools/sol-tester/discovery"
	"github.com/soltools/sol-tester/header"
	"github.com/soltools/sol-tester/modes"
	"github.com/soltools/sol-tester/types"
)

// Build assembles the full suite for the active modes: discovery, revision
// fan-out, descriptor construction, and the final byte-wise sort by display
// name. The build phase runs to completion before anything executes; every
// error it returns is a configuration error that aborts the whole run.
func Build(cfg *types.Config, activeModes []types.Mode, logger log.Logger) ([]types.TestCase, error) {
	var cases []types.TestCase
	for _, mode := range activeModes {
		modeCases, err := buildMode(cfg, mode, logger)
		if err != nil {
			return nil, err
		}
		cases = append(cases, modeCases...)
	}

	// Byte-wise ascending by display name, so the run order is reproducible
	// regardless of discovery or mode-iteration order.
	sort.Slice(cases, func(i, j int) bool { return cases[i].Name < cases[j].Name })

	for i := 1; i < len(cases); i++ {
		if cases[i].Name == cases[i-1].Name {
			return nil, fmt.Errorf("duplicate test case name %q", cases[i].Name)
		}
	}

	logger.Info("Assembled test suite", "modes", len(activeModes), "cases", len(cases))
	return cases, nil
}

// buildMode discovers one mode's fixtures and expands them into descriptors.
func buildMode(cfg *types.Config, mode types.Mode, logger log.Logger) ([]types.TestCase, error) {
	root := filepath.Join(cfg.Root, modes.DiscoveryRoot(mode))
	files, err := discovery.Collect(root, modes.Extensions(mode))
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered fixtures", "mode", mode, "root", root, "count", len(files))

	fns := modes.For(mode)
	cases := make([]types.TestCase, 0, len(files))
	for _, file := range files {
		if mode == types.ModeUI {
			revisions, err := header.LoadRevisions(file)
			if err != nil {
				return nil, err
			}
			if len(revisions) > 0 {
				for _, rev := range revisions {
					c, err := buildCase(cfg, mode, fns, file, rev)
					if err != nil {
						return nil, err
					}
					cases = append(cases, c)
				}
				continue
			}
		}

		c, err := buildCase(cfg, mode, fns, file, "")
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, nil
}

// buildCase constructs the descriptor for one (mode, fixture, revision)
// tuple. The check function runs eagerly; the compiler under test does not.
func buildCase(cfg *types.Config, mode types.Mode, fns modes.Fns, file, revision string) (types.TestCase, error) {
	relPath, err := filepath.Rel(cfg.Root, file)
	if err != nil || strings.HasPrefix(relPath, "..") {
		return types.TestCase{}, fmt.Errorf("fixture %s is not under project root %s", file, cfg.Root)
	}
	relPath = filepath.ToSlash(relPath)
	relativeDir := filepath.Dir(relPath)
	if relativeDir == "." || relativeDir == "/" {
		return types.TestCase{}, fmt.Errorf("fixture %s has no parent directory under root", file)
	}

	// Revisions of one fixture share one artifact directory; creation is
	// idempotent, so repeating it per revision is harmless. Conformance
	// runners manage output themselves and get no pre-created directory.
	if !mode.IsConformance() {
		if err := os.MkdirAll(cfg.OutputDir(relativeDir), 0o755); err != nil {
			return types.TestCase{}, fmt.Errorf("creating output directory: %w", err)
		}
	}

	name := fmt.Sprintf("[%s] %s", mode, relPath)
	if revision != "" {
		name += "#" + revision
	}

	var ignoreReason string
	if res := fns.Check(cfg, file); res.Status == types.TestStatusSkip {
		ignoreReason = res.Reason
	}

	// The closure owns its own copies of everything it needs; nothing in it
	// is shared mutable state.
	run := makeRun(cfg, mode, fns.Run, file, relativeDir, revision)

	return types.TestCase{
		Mode:         mode,
		Fixture:      types.Fixture{Path: file, RelPath: relPath},
		Revision:     revision,
		Name:         name,
		IgnoreReason: ignoreReason,
		Run:          run,
	}, nil
}

// makeRun builds the deferred execution closure for one case: read the
// fixture, load its properties, re-create the shared output directory, and
// hand off to the mode's run function.
func makeRun(cfg *types.Config, mode types.Mode, run modes.RunFn, file, relativeDir, revision string) func(context.Context) types.TestResult {
	return func(ctx context.Context) types.TestResult {
		src, err := os.ReadFile(file)
		if err != nil {
			return types.Fail(fmt.Errorf("reading fixture: %w", err), "")
		}

		var props *header.Props
		if modes.UsesSolcHeaders(mode) {
			props = header.LoadSolc(string(src))
		} else {
			props = header.Load(string(src), revision)
		}

		cx := &modes.Context{
			Config:      cfg,
			File:        file,
			RelativeDir: relativeDir,
			Src:         string(src),
			Props:       props,
			Revision:    revision,
		}
		if err := os.MkdirAll(cx.OutputBaseDir(), 0o755); err != nil {
			return types.Fail(fmt.Errorf("creating output directory: %w", err), "")
		}
		return run(ctx, cx)
	}
}
