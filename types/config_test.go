package types

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputDirMirrorsRelativeDir(t *testing.T) {
	cfg := &Config{BuildBase: filepath.Join("/build", "base")}
	assert.Equal(t, filepath.Join("/build", "base", "a"), cfg.OutputDir("a"))
	assert.Equal(t, filepath.Join("/build", "base", "tests", "ui", "a"), cfg.OutputDir("tests/ui/a"))
}

func TestSkipReasonDirectoryPrefix(t *testing.T) {
	cfg := &Config{Skips: []SkipRule{
		{Pattern: "tests/ui/slow/", Reason: "slow fixtures"},
	}}

	reason, ok := cfg.SkipReason(ModeUI, "tests/ui/slow/big.sol")
	require.True(t, ok)
	assert.Equal(t, "slow fixtures", reason)

	_, ok = cfg.SkipReason(ModeUI, "tests/ui/fast/small.sol")
	assert.False(t, ok)
}

func TestSkipReasonGlobPattern(t *testing.T) {
	cfg := &Config{Skips: []SkipRule{
		{Pattern: "tests/ui/*/broken.sol", Reason: "known broken"},
	}}

	reason, ok := cfg.SkipReason(ModeUI, "tests/ui/a/broken.sol")
	require.True(t, ok)
	assert.Equal(t, "known broken", reason)

	_, ok = cfg.SkipReason(ModeUI, "tests/ui/a/b/broken.sol")
	assert.False(t, ok, "glob should not cross directory separators")
}

func TestSkipReasonModeFilter(t *testing.T) {
	cfg := &Config{Skips: []SkipRule{
		{Pattern: "testdata/solidity/test/", Modes: []Mode{ModeSolcSolidity}, Reason: "solidity only"},
	}}

	_, ok := cfg.SkipReason(ModeSolcSolidity, "testdata/solidity/test/x.sol")
	assert.True(t, ok)

	_, ok = cfg.SkipReason(ModeSolcYul, "testdata/solidity/test/x.sol")
	assert.False(t, ok)
}

func TestSkipReasonEmptyModesAppliesToAll(t *testing.T) {
	cfg := &Config{Skips: []SkipRule{
		{Pattern: "testdata/solidity/test/", Reason: "everything"},
	}}

	for _, mode := range AllModes() {
		_, ok := cfg.SkipReason(mode, "testdata/solidity/test/x.sol")
		assert.True(t, ok, "mode %s", mode)
	}
}
