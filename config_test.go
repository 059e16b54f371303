package tester

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/soltools/sol-tester/flags"
	"github.com/soltools/sol-tester/types"
)

// parseConfig runs NewConfig through a real cli invocation so flag
// defaults and env wiring behave exactly as in production.
func parseConfig(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	var cfg *Config
	var cfgErr error
	app := cli.NewApp()
	app.Name = "sol-tester"
	app.Flags = flags.Flags
	app.Action = func(ctx *cli.Context) error {
		cfg, cfgErr = NewConfig(ctx, log.New())
		return nil
	}
	require.NoError(t, app.Run(append([]string{"sol-tester"}, args...)))
	return cfg, cfgErr
}

func projectRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	// TempDir may sit behind a symlink; NewConfig resolves absolute paths,
	// so tests compare against the resolved form.
	resolved, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	return resolved
}

func TestNewConfigDefaults(t *testing.T) {
	root := projectRoot(t)
	cfg, err := parseConfig(t, "--compiler", "/usr/bin/solc", "--root", root)
	require.NoError(t, err)

	assert.Equal(t, types.AllModes(), cfg.Modes)
	assert.True(t, cfg.RunOnce)
	assert.Zero(t, cfg.RunInterval)
	assert.Zero(t, cfg.Concurrency)

	buildBase := filepath.Join(root, "target", "tester")
	assert.Equal(t, buildBase, cfg.Harness.BuildBase)
	assert.DirExists(t, buildBase)
	assert.Equal(t, filepath.Join(buildBase, "logs"), cfg.LogDir)

	assert.Equal(t, "/usr/bin/solc", cfg.Harness.Compiler)
	assert.Equal(t, root, cfg.Harness.Root)
	assert.False(t, cfg.Harness.Bless)
	assert.Empty(t, cfg.Harness.Skips)
}

func TestNewConfigBless(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		bless bool
	}{
		{"absent", nil, false},
		{"zero", []string{"--bless", "0"}, false},
		{"one", []string{"--bless", "1"}, true},
		{"word", []string{"--bless", "true"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--compiler", "/usr/bin/solc", "--root", projectRoot(t)}, tt.args...)
			cfg, err := parseConfig(t, args...)
			require.NoError(t, err)
			assert.Equal(t, tt.bless, cfg.Harness.Bless)
		})
	}
}

func TestNewConfigModeRestriction(t *testing.T) {
	cfg, err := parseConfig(t, "--compiler", "/usr/bin/solc", "--root", projectRoot(t), "--mode", "solc-yul")
	require.NoError(t, err)
	assert.Equal(t, []types.Mode{types.ModeSolcYul}, cfg.Modes)
}

func TestNewConfigUnknownModeIsError(t *testing.T) {
	_, err := parseConfig(t, "--compiler", "/usr/bin/solc", "--root", projectRoot(t), "--mode", "json")
	require.ErrorContains(t, err, "unknown mode")
}

func TestNewConfigRunInterval(t *testing.T) {
	cfg, err := parseConfig(t, "--compiler", "/usr/bin/solc", "--root", projectRoot(t), "--run-interval", "30m")
	require.NoError(t, err)
	assert.False(t, cfg.RunOnce)
	assert.Equal(t, 30*time.Minute, cfg.RunInterval)
}

func TestNewConfigManifest(t *testing.T) {
	root := projectRoot(t)
	manifest := filepath.Join(root, "skips.yaml")
	require.NoError(t, os.WriteFile(manifest, []byte(`
skips:
  - pattern: "tests/ui/slow/"
    reason: "too slow for CI"
`), 0o644))

	cfg, err := parseConfig(t, "--compiler", "/usr/bin/solc", "--root", root, "--manifest", manifest)
	require.NoError(t, err)
	require.Len(t, cfg.Harness.Skips, 1)
	assert.Equal(t, "tests/ui/slow/", cfg.Harness.Skips[0].Pattern)
}

func TestNewConfigTimeout(t *testing.T) {
	cfg, err := parseConfig(t, "--compiler", "/usr/bin/solc", "--root", projectRoot(t), "--timeout", "90s")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, cfg.Harness.Timeout)
}

func TestNewConfigExplicitBuildDir(t *testing.T) {
	root := projectRoot(t)
	buildDir := filepath.Join(root, "out")
	cfg, err := parseConfig(t, "--compiler", "/usr/bin/solc", "--root", root, "--build-dir", buildDir)
	require.NoError(t, err)
	assert.Equal(t, buildDir, cfg.Harness.BuildBase)
	assert.DirExists(t, buildDir)
}

func TestFindRootAnchorsOnModuleManifest(t *testing.T) {
	root := projectRoot(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/project\n\ngo 1.26.0\n"), 0o644))
	nested := filepath.Join(root, "tests", "ui", "deep")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	t.Chdir(nested)

	cfg, err := parseConfig(t, "--compiler", "/usr/bin/solc")
	require.NoError(t, err)
	assert.Equal(t, root, cfg.Harness.Root)
}
