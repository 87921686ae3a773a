package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPrefsDefaultsWhenMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	p, err := LoadPrefs("")
	require.NoError(t, err)
	assert.Equal(t, DefaultLogLevel, p.Log.Level)
	assert.Zero(t, p.Workers)
	assert.False(t, p.Trash)
}

func TestLoadPrefsFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: warn
  file: /tmp/dirclean.log
workers: 3
trash: true
report:
  dir: /tmp/reports
`), 0o644))
	t.Setenv("DIRCLEAN_WORKERS", "6")

	p, err := LoadPrefs(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", p.Log.Level)
	assert.Equal(t, "/tmp/dirclean.log", p.Log.File)
	assert.Equal(t, 6, p.Workers)
	assert.True(t, p.Trash)
	assert.Equal(t, "/tmp/reports", p.Report.Dir)
}

func TestLoadPrefsExplicitMissingFails(t *testing.T) {
	_, err := LoadPrefs(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadPrefsNegativeWorkers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: -1\n"), 0o644))

	_, err := LoadPrefs(path)
	assert.Error(t, err)
}
