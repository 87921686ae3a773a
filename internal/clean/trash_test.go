package clean

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakshaymaurya-felt/dirclean/internal/scan"
)

// freedesktopOnly skips on systems where the trash is the user's real one.
func freedesktopOnly(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		t.Skip("system trash is not redirectable on " + runtime.GOOS)
	}
}

func TestTrashCapabilityWithoutTrash(t *testing.T) {
	c := NoTrash()
	assert.False(t, c.Available())
	assert.ErrorIs(t, c.Put("/anything"), ErrTrashUnavailable)
}

func TestTrashCapabilityWrapsErrors(t *testing.T) {
	boom := errors.New("boom")
	c := NewTrashCapability(&fakeTrash{err: boom})

	assert.True(t, c.Available())
	err := c.Put("/x")
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "move to trash")
}

func TestDetectTrashMovesIntoDataHome(t *testing.T) {
	freedesktopOnly(t)
	data := t.TempDir()
	t.Setenv("XDG_DATA_HOME", data)

	c := DetectTrash()
	require.True(t, c.Available())

	root := t.TempDir()
	writeFiles(t, root, map[string]int{"my cache/a": 3})
	target := filepath.Join(root, "my cache")

	require.NoError(t, c.Put(target))
	assert.NoDirExists(t, target)

	files, err := os.ReadDir(filepath.Join(data, "Trash", "files"))
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestDeleteWithSystemTrash(t *testing.T) {
	freedesktopOnly(t)
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	root := t.TempDir()
	writeFiles(t, root, map[string]int{"build/out.bin": 128})
	target := filepath.Join(root, "build")

	rec := newTestDeleter(DetectTrash(), nil).Delete(context.Background(),
		candidate(target, scan.PatternCategory("build")), Mode{UseTrash: true})

	assert.Equal(t, StatusDeleted, rec.Status)
	assert.True(t, rec.Trashed)
	assert.Equal(t, int64(128), rec.Bytes)
	assert.NoDirExists(t, target)
}
