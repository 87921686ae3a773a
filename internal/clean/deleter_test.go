package clean

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakshaymaurya-felt/dirclean/internal/scan"
)

func TestDeleteRemovesDirectory(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]int{"app/node_modules/a.js": 100, "app/node_modules/lib/b.js": 50})
	target := filepath.Join(root, "app", "node_modules")

	rec := newTestDeleter(NoTrash(), nil).Delete(context.Background(), candidate(target, scan.CategoryNodeModules), Mode{})

	assert.Equal(t, StatusDeleted, rec.Status)
	assert.Equal(t, int64(150), rec.Bytes)
	assert.False(t, rec.Trashed)
	assert.NoDirExists(t, target)
	assert.True(t, rec.Succeeded())
}

func TestDeleteDryRunLeavesFilesystem(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]int{"build/out.bin": 2048})
	target := filepath.Join(root, "build")

	rec := newTestDeleter(NoTrash(), nil).Delete(context.Background(), candidate(target, scan.PatternCategory("build")), Mode{DryRun: true})

	assert.Equal(t, StatusWouldDelete, rec.Status)
	assert.Equal(t, int64(2048), rec.Bytes)
	assert.DirExists(t, target)
	assert.FileExists(t, filepath.Join(target, "out.bin"))
}

func TestDeleteMissingPathFails(t *testing.T) {
	rec := newTestDeleter(NoTrash(), nil).Delete(context.Background(),
		candidate(filepath.Join(t.TempDir(), "gone"), scan.CategorySubdirs), Mode{})

	assert.Equal(t, StatusFailed, rec.Status)
	assert.Zero(t, rec.Bytes)
	assert.Error(t, rec.Reason)
	assert.False(t, rec.Succeeded())
}

func TestDeleteRefusesSymlink(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]int{"real/data.bin": 64})
	link := filepath.Join(root, "link")
	if err := os.Symlink(filepath.Join(root, "real"), link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	rec := newTestDeleter(NoTrash(), nil).Delete(context.Background(), candidate(link, scan.CategorySubdirs), Mode{})

	assert.Equal(t, StatusFailed, rec.Status)
	assert.ErrorIs(t, rec.Reason, ErrLink)
	assert.FileExists(t, filepath.Join(root, "real", "data.bin"))
}

func TestDeleteInteractive(t *testing.T) {
	tests := []struct {
		name    string
		answer  bool
		err     error
		status  Status
		removed bool
	}{
		{name: "yes", answer: true, status: StatusDeleted, removed: true},
		{name: "no", answer: false, status: StatusSkipped},
		{name: "error", err: errors.New("tty closed"), status: StatusSkipped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeFiles(t, root, map[string]int{"cache/x": 10})
			target := filepath.Join(root, "cache")

			var asked ConfirmRequest
			confirm := ConfirmFunc(func(_ context.Context, req ConfirmRequest) (bool, error) {
				asked = req
				return tt.answer, tt.err
			})

			rec := newTestDeleter(NoTrash(), confirm).Delete(context.Background(),
				candidate(target, scan.CategorySubdirs), Mode{Interactive: true})

			assert.Equal(t, tt.status, rec.Status)
			assert.Equal(t, target, asked.Path)
			assert.Equal(t, int64(10), asked.Size)
			if tt.removed {
				assert.NoDirExists(t, target)
				assert.Equal(t, int64(10), rec.Bytes)
			} else {
				assert.DirExists(t, target)
				assert.Zero(t, rec.Bytes)
			}
		})
	}
}

func TestDeleteInteractiveWithoutConfirmerSkips(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]int{"d/f": 1})
	target := filepath.Join(root, "d")

	rec := newTestDeleter(NoTrash(), nil).Delete(context.Background(), candidate(target, scan.CategorySubdirs), Mode{Interactive: true})

	assert.Equal(t, StatusSkipped, rec.Status)
	assert.DirExists(t, target)
}

func TestDeleteUsesTrashWhenAvailable(t *testing.T) {
	root := t.TempDir()
	bin := t.TempDir()
	writeFiles(t, root, map[string]int{"dist/app.js": 300})
	target := filepath.Join(root, "dist")

	trash := &fakeTrash{dir: bin}
	rec := newTestDeleter(NewTrashCapability(trash), nil).Delete(context.Background(),
		candidate(target, scan.PatternCategory("dist")), Mode{UseTrash: true})

	assert.Equal(t, StatusDeleted, rec.Status)
	assert.True(t, rec.Trashed)
	assert.Equal(t, "Moved to trash", rec.StatusText())
	assert.Equal(t, []string{target}, trash.puts)
	assert.NoDirExists(t, target)
	assert.FileExists(t, filepath.Join(bin, "dist", "app.js"))
}

func TestDeleteFallsBackWithoutTrash(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]int{"tmp/x": 5})
	target := filepath.Join(root, "tmp")

	rec := newTestDeleter(NoTrash(), nil).Delete(context.Background(), candidate(target, scan.CategorySubdirs), Mode{UseTrash: true})

	assert.Equal(t, StatusDeleted, rec.Status)
	assert.False(t, rec.Trashed)
	assert.NoDirExists(t, target)
}

func TestDeleteTrashErrorFails(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]int{"tmp/x": 5})
	target := filepath.Join(root, "tmp")

	trash := &fakeTrash{err: errors.New("bin full")}
	rec := newTestDeleter(NewTrashCapability(trash), nil).Delete(context.Background(),
		candidate(target, scan.CategorySubdirs), Mode{UseTrash: true})

	assert.Equal(t, StatusFailed, rec.Status)
	assert.Zero(t, rec.Bytes)
	assert.DirExists(t, target)
}

func TestDeleteRefusesProtectedPath(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]int{"home/user/file": 1})
	home := filepath.Join(root, "home", "user")

	d := NewDeleter(nil, NoTrash(), nil, NewGuard([]string{home}))

	rec := d.Delete(context.Background(), candidate(filepath.Join(root, "home"), scan.CategorySubdirs), Mode{})
	assert.Equal(t, StatusFailed, rec.Status)
	assert.ErrorIs(t, rec.Reason, ErrProtectedPath)
	assert.DirExists(t, home)
}

func TestDeleteEmptyDirectoryCountsZeroBytes(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "empty")
	require.NoError(t, os.Mkdir(target, 0o755))

	rec := newTestDeleter(NoTrash(), nil).Delete(context.Background(), candidate(target, scan.CategoryEmpty), Mode{})

	assert.Equal(t, StatusDeleted, rec.Status)
	assert.Zero(t, rec.Bytes)
	assert.True(t, rec.Succeeded())
}

func TestDeleteZeroBytesFailsForOtherCategories(t *testing.T) {
	rec := OutcomeRecord{Status: StatusDeleted, Category: scan.CategorySubdirs}
	require.False(t, rec.Succeeded())
}
