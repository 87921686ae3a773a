package core

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
}

func TestDirSize_SumsRegularFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.bin"), 100)
	writeFile(t, filepath.Join(root, "sub", "b.bin"), 250)
	writeFile(t, filepath.Join(root, "sub", "deeper", "c.bin"), 50)

	size, err := DirSize(root)
	require.NoError(t, err)
	assert.Equal(t, int64(400), size)
}

func TestDirSize_SkipsSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on Windows")
	}
	root := t.TempDir()
	outside := t.TempDir()
	writeFile(t, filepath.Join(outside, "big.bin"), 1000)
	writeFile(t, filepath.Join(root, "small.bin"), 10)

	require.NoError(t, os.Symlink(outside, filepath.Join(root, "linkdir")))
	require.NoError(t, os.Symlink(filepath.Join(outside, "big.bin"), filepath.Join(root, "linkfile")))
	// Cycle back to the root itself.
	require.NoError(t, os.Symlink(root, filepath.Join(root, "loop")))

	size, err := DirSize(root)
	require.NoError(t, err)
	assert.Equal(t, int64(10), size)
}

func TestDirSize_UnreadableSubdirectoryIsSkipped(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "visible.bin"), 70)
	writeFile(t, filepath.Join(root, "locked", "hidden.bin"), 500)
	writeFile(t, filepath.Join(root, "open", "also.bin"), 30)

	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Chmod(locked, 0))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	size, err := DirSize(root)
	require.NoError(t, err)
	assert.Equal(t, int64(100), size)
}

func TestDirSize_MissingRoot(t *testing.T) {
	size, err := DirSize(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
	assert.Zero(t, size)
}

func TestSizer_CachesAndForgets(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "one.bin"), 10)

	s := NewSizer(0)
	first, err := s.Size(root)
	require.NoError(t, err)
	assert.Equal(t, int64(10), first)

	writeFile(t, filepath.Join(root, "two.bin"), 5)
	cached, err := s.Size(root)
	require.NoError(t, err)
	assert.Equal(t, int64(10), cached)

	s.Forget(root)
	fresh, err := s.Size(root)
	require.NoError(t, err)
	assert.Equal(t, int64(15), fresh)
}
