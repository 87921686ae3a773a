package report

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakshaymaurya-felt/dirclean/internal/clean"
	"github.com/lakshaymaurya-felt/dirclean/internal/scan"
)

func sample() Data {
	recs := []clean.OutcomeRecord{
		{Path: "/w/a/node_modules", Category: scan.CategoryNodeModules, Bytes: 2048, Status: clean.StatusDeleted},
		{Path: "/w/b/<odd>", Category: scan.CategoryNodeModules, Status: clean.StatusFailed, Reason: errors.New("locked")},
		{Path: "/w/c/node_modules", Category: scan.CategoryNodeModules, Bytes: 10, Status: clean.StatusDeleted, Trashed: true},
	}
	return Data{
		Generated:  time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC),
		Sections:   []Section{FromRecords("Node Modules", recs), {Title: "Empty Directories"}},
		TotalBytes: 2058,
	}
}

func TestFromRecords(t *testing.T) {
	s := sample().Sections[0]
	require.Len(t, s.Items, 3)
	assert.Equal(t, "2.00 KB", s.Items[0].Size)
	assert.Equal(t, "Deleted", s.Items[0].Status)
	assert.Equal(t, "Failed", s.Items[1].Status)
	assert.Equal(t, "locked", s.Items[1].Reason)
	assert.Equal(t, "Moved to trash", s.Items[2].Status)
}

func TestRenderHTML(t *testing.T) {
	out, err := Render("r.html", sample())
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, "Generated on: 2026-03-01 12:30:00")
	assert.Contains(t, html, "Total items processed: 3")
	assert.Contains(t, html, "Total space saved: 2.01 KB")
	assert.Contains(t, html, "<h2>Node Modules</h2>")
	assert.Contains(t, html, "<td>/w/a/node_modules</td>")
	assert.Contains(t, html, "&lt;odd&gt;")
	assert.Contains(t, html, "<h2>Empty Directories</h2>")
	assert.Contains(t, html, "No items found.")
}

func TestRenderJSON(t *testing.T) {
	out, err := Render("r.JSON", sample())
	require.NoError(t, err)

	var back Data
	require.NoError(t, sonic.Unmarshal(out, &back))
	assert.Equal(t, int64(2058), back.TotalBytes)
	assert.Equal(t, "2.01 KB", back.TotalSpace)
	require.Len(t, back.Sections, 2)
	assert.Equal(t, "Node Modules", back.Sections[0].Title)
}

func TestWriteCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "nested", "out.html")

	got, err := Write(path, "", sample())
	require.NoError(t, err)
	assert.Equal(t, path, got)
	assert.FileExists(t, path)
}

func TestWriteFallsBack(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	fallbackDir := t.TempDir()

	got, err := Write(filepath.Join(blocker, "sub", "out.json"), fallbackDir, sample())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(fallbackDir, "out.json"), got)
	assert.FileExists(t, got)
}

func TestWriteFailsTwice(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on a regular file used as a directory")
	}
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, err := Write(filepath.Join(blocker, "out.html"), blocker, sample())
	assert.ErrorIs(t, err, ErrWriteFailed)
}
