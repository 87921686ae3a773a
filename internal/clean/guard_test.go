package clean

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuard(t *testing.T) {
	root := t.TempDir()
	home := filepath.Join(root, "home", "user")
	g := NewGuard([]string{home, ""})

	assert.ErrorIs(t, g.Check(home), ErrProtectedPath)
	assert.ErrorIs(t, g.Check(filepath.Join(root, "home")), ErrProtectedPath)
	assert.ErrorIs(t, g.Check(filepath.VolumeName(root)+string(filepath.Separator)), ErrProtectedPath)

	assert.NoError(t, g.Check(filepath.Join(home, "project", "node_modules")))
	assert.NoError(t, g.Check(filepath.Join(root, "other")))
}
