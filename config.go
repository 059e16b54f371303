package tester

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
	"golang.org/x/mod/modfile"

	"github.com/soltools/sol-tester/flags"
	"github.com/soltools/sol-tester/registry"
	"github.com/soltools/sol-tester/types"
)

// Config holds the application configuration
type Config struct {
	Modes       []types.Mode  // Active modes; all three unless restricted
	RunInterval time.Duration // Interval between test runs
	RunOnce     bool          // Indicates if the service should exit after one test run
	Concurrency int           // Number of test workers (0 = one per logical CPU)
	LogDir      string        // Directory to store per-run logs
	Log         log.Logger

	Harness *types.Config // Immutable per-run settings shared with every build/run step
}

// NewConfig creates a new Config from cli context. The build base directory
// is created eagerly; failure to create it is unrecoverable.
func NewConfig(ctx *cli.Context, logger log.Logger) (*Config, error) {
	if err := flags.CheckRequired(ctx); err != nil {
		return nil, fmt.Errorf("missing required flags: %w", err)
	}

	compiler := ctx.String(flags.Compiler.Name)
	if compiler == "" {
		return nil, errors.New("compiler binary path is required")
	}
	compiler, err := filepath.Abs(compiler)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for compiler '%s': %w", ctx.String(flags.Compiler.Name), err)
	}

	root := ctx.String(flags.Root.Name)
	if root == "" {
		root, err = findRoot()
		if err != nil {
			return nil, err
		}
	} else if root, err = filepath.Abs(root); err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for root '%s': %w", ctx.String(flags.Root.Name), err)
	}

	buildBase := ctx.String(flags.BuildDir.Name)
	if buildBase == "" {
		buildBase = filepath.Join(root, "target", "tester")
	} else if buildBase, err = filepath.Abs(buildBase); err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for build dir '%s': %w", ctx.String(flags.BuildDir.Name), err)
	}
	if err := os.MkdirAll(buildBase, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create build base directory '%s': %w", buildBase, err)
	}

	// Any value other than the literal "0" enables bless mode; absent means
	// disabled.
	blessValue := ctx.String(flags.Bless.Name)
	bless := blessValue != "" && blessValue != "0"

	activeModes := types.AllModes()
	if tag := ctx.String(flags.Mode.Name); tag != "" {
		mode, err := types.ParseMode(tag)
		if err != nil {
			return nil, err
		}
		activeModes = []types.Mode{mode}
	}

	reg, err := registry.NewRegistry(registry.Config{
		Log:          logger,
		ManifestFile: ctx.String(flags.Manifest.Name),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create registry: %w", err)
	}

	runInterval := ctx.Duration(flags.RunInterval.Name)
	runOnce := runInterval == 0

	logDir := ctx.String(flags.LogDir.Name)
	if logDir == "" {
		logDir = filepath.Join(buildBase, "logs")
	} else if logDir, err = filepath.Abs(logDir); err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for log directory '%s': %w", ctx.String(flags.LogDir.Name), err)
	}

	return &Config{
		Modes:       activeModes,
		RunInterval: runInterval,
		RunOnce:     runOnce,
		Concurrency: ctx.Int(flags.Concurrency.Name),
		LogDir:      logDir,
		Log:         logger,
		Harness: &types.Config{
			Compiler:  compiler,
			Root:      root,
			BuildBase: buildBase,
			Bless:     bless,
			Verbose:   ctx.Bool(flags.Verbose.Name),
			Timeout:   ctx.Duration(flags.Timeout.Name),
			Skips:     reg.Rules(),
			Log:       logger,
		},
	}, nil
}

// findRoot walks up from the working directory to the nearest ancestor
// carrying a parseable module manifest, which anchors the project root.
func findRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to determine working directory: %w", err)
	}
	for {
		manifest := filepath.Join(dir, "go.mod")
		if data, err := os.ReadFile(manifest); err == nil {
			if _, perr := modfile.Parse(manifest, data, nil); perr == nil {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("could not locate project root: no go.mod found in any ancestor directory")
		}
		dir = parent
	}
}
