package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	for _, tag := range []string{"ui", "solc-solidity", "solc-yul"} {
		mode, err := ParseMode(tag)
		require.NoError(t, err)
		assert.Equal(t, tag, mode.String())
	}
}

func TestParseModeRejectsUnknownTags(t *testing.T) {
	for _, tag := range []string{"", "UI", "solc", "ui ", "json"} {
		_, err := ParseMode(tag)
		require.Error(t, err, "tag %q", tag)
	}
}

func TestIsConformance(t *testing.T) {
	assert.False(t, ModeUI.IsConformance())
	assert.True(t, ModeSolcSolidity.IsConformance())
	assert.True(t, ModeSolcYul.IsConformance())
}

func TestAllModesIsClosed(t *testing.T) {
	modes := AllModes()
	require.Len(t, modes, 3)
	for _, m := range modes {
		_, err := ParseMode(m.String())
		require.NoError(t, err)
	}
}
