package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("contract C {}\n"), 0o644))
}

func TestCollectFiltersByExtension(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "a/b.sol")
	writeFixture(t, root, "a/c.yul")
	writeFixture(t, root, "a/readme.md")
	writeFixture(t, root, "d.sol")

	files, err := Collect(root, []string{".sol"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a", "b.sol"),
		filepath.Join(root, "d.sol"),
	}, files)

	files, err = Collect(root, []string{".sol", ".yul"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a", "b.sol"),
		filepath.Join(root, "a", "c.yul"),
		filepath.Join(root, "d.sol"),
	}, files)
}

func TestCollectIsDeterministic(t *testing.T) {
	root := t.TempDir()
	// Create in non-lexical order; the walk must not care.
	writeFixture(t, root, "z/last.sol")
	writeFixture(t, root, "a/first.sol")
	writeFixture(t, root, "m/middle.sol")
	writeFixture(t, root, "a/second.sol")

	first, err := Collect(root, []string{".sol"})
	require.NoError(t, err)
	second, err := Collect(root, []string{".sol"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{
		filepath.Join(root, "a", "first.sol"),
		filepath.Join(root, "a", "second.sol"),
		filepath.Join(root, "m", "middle.sol"),
		filepath.Join(root, "z", "last.sol"),
	}, first)
}

func TestCollectMissingRootIsFatal(t *testing.T) {
	_, err := Collect(filepath.Join(t.TempDir(), "does-not-exist"), []string{".sol"})
	require.Error(t, err)
}

func TestCollectEmptyTree(t *testing.T) {
	files, err := Collect(t.TempDir(), []string{".sol"})
	require.NoError(t, err)
	assert.Empty(t, files)
}
