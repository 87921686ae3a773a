package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakshaymaurya-felt/dirclean/internal/clean"
	"github.com/lakshaymaurya-felt/dirclean/internal/config"
	"github.com/lakshaymaurya-felt/dirclean/internal/scan"
)

func writeFiles(t *testing.T, root string, files map[string]int) {
	t.Helper()
	for rel, size := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, make([]byte, size), 0o644))
	}
}

func newEngine() *Engine {
	return New(Config{Trash: clean.NoTrash()})
}

func projectRoot(t *testing.T) string {
	root := t.TempDir()
	writeFiles(t, root, map[string]int{
		"web/node_modules/react/index.js":         400,
		"web/node_modules/react/node_modules/x/a": 100,
		"web/src/app.js":                          10,
		"api/node_modules/express/index.js":       300,
		"keep/node_modules/lib/index.js":          200,
		"java/build/classes/A.class":              50,
		"java/src/build.gradle":                   5,
	})
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty", "inner"), 0o755))
	return root
}

func TestCleanNodeModules(t *testing.T) {
	root := projectRoot(t)

	out, err := newEngine().Run(context.Background(), root, NodeModules{}, Options{Exclude: []string{"*keep*"}})
	require.NoError(t, err)

	assert.Equal(t, "Node Modules", out.Title)
	assert.Equal(t, 2, out.Found)
	require.NotNil(t, out.Result)
	assert.Equal(t, 2, out.Result.Count)
	assert.Equal(t, int64(800), out.Result.TotalBytes)
	assert.NoDirExists(t, filepath.Join(root, "web", "node_modules"))
	assert.DirExists(t, filepath.Join(root, "keep", "node_modules"))
	assert.DirExists(t, filepath.Join(root, "web", "src"))
}

func TestCleanDryRunIsIdempotent(t *testing.T) {
	root := projectRoot(t)
	e := newEngine()

	first, err := e.Run(context.Background(), root, Pattern{Patterns: []string{"build"}}, Options{DryRun: true})
	require.NoError(t, err)
	second, err := e.Run(context.Background(), root, Pattern{Patterns: []string{"build"}}, Options{DryRun: true})
	require.NoError(t, err)

	assert.Equal(t, first.Result.TotalBytes, second.Result.TotalBytes)
	assert.Equal(t, 1, first.Result.Count)
	assert.Equal(t, int64(50), first.Result.TotalBytes)
	assert.DirExists(t, filepath.Join(root, "java", "build"))
}

func TestCleanMinSizeUsesSharedSizes(t *testing.T) {
	root := projectRoot(t)
	minSize := int64(350)

	out, err := newEngine().Run(context.Background(), root, NodeModules{}, Options{MinSize: &minSize, DryRun: true})
	require.NoError(t, err)
	require.Len(t, out.Result.Records, 1)
	assert.Equal(t, filepath.Join(root, "web", "node_modules"), out.Result.Records[0].Path)
	assert.Equal(t, int64(500), out.Result.Records[0].Bytes)
}

func TestCleanEmptyDirs(t *testing.T) {
	root := projectRoot(t)

	out, err := newEngine().Run(context.Background(), root, EmptyDirs{}, Options{Parallel: true})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Result.Count)
	assert.Zero(t, out.Result.TotalBytes)
	assert.NoDirExists(t, filepath.Join(root, "empty"))
}

func TestCleanPreset(t *testing.T) {
	root := projectRoot(t)

	out, err := newEngine().Run(context.Background(), root, Preset{Name: "build-artifacts"}, Options{DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, "Preset: build-artifacts", out.Title)
	require.Len(t, out.Result.Records, 1)
	assert.Equal(t, scan.PatternCategory("build"), out.Result.Records[0].Category)

	_, err = newEngine().Run(context.Background(), root, Preset{Name: "nope"}, Options{})
	assert.ErrorIs(t, err, config.ErrUnknownPreset)
}

func TestCleanSelect(t *testing.T) {
	root := projectRoot(t)
	var offered []scan.Candidate

	out, err := newEngine().Run(context.Background(), root, NodeModules{}, Options{
		Select: func(_ context.Context, cs []scan.Candidate) ([]scan.Candidate, error) {
			offered = cs
			return cs[:1], nil
		},
	})
	require.NoError(t, err)

	require.Len(t, offered, 3)
	for _, c := range offered {
		assert.Positive(t, c.Size)
	}
	assert.Equal(t, 3, out.Found)
	assert.Equal(t, 1, out.Result.Count)
	assert.NoDirExists(t, offered[0].Path)
	assert.DirExists(t, offered[1].Path)
}

func TestCleanInvalidExclude(t *testing.T) {
	_, err := newEngine().Run(context.Background(), t.TempDir(), NodeModules{}, Options{Exclude: []string{"[bad"}})
	assert.Error(t, err)
}

func TestCleanCanceled(t *testing.T) {
	root := projectRoot(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := newEngine().Run(ctx, root, NodeModules{}, Options{})
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, out.Result)
	assert.True(t, out.Result.Canceled)
	assert.DirExists(t, filepath.Join(root, "web", "node_modules"))
}

func TestCleanAbortAtPromptIsCanceled(t *testing.T) {
	root := projectRoot(t)
	e := New(Config{
		Trash: clean.NoTrash(),
		Confirmer: clean.ConfirmFunc(func(context.Context, clean.ConfirmRequest) (bool, error) {
			return false, context.Canceled
		}),
	})

	res, found, err := e.Clean(context.Background(), root, NodeModules{}, Options{Interactive: true})
	require.ErrorIs(t, err, context.Canceled)
	assert.True(t, res.Canceled)
	assert.Equal(t, 3, found)
	assert.Len(t, res.Records, 1)
	assert.DirExists(t, filepath.Join(root, "web", "node_modules"))
}

func TestRunAnalyzeAndDiscover(t *testing.T) {
	root := projectRoot(t)
	e := newEngine()

	out, err := e.Run(context.Background(), root, Analyze{Depth: 1}, Options{})
	require.NoError(t, err)
	require.NotNil(t, out.Analysis)
	assert.Nil(t, out.Result)
	assert.Equal(t, filepath.Join(root, "web"), out.Analysis.Ranked[0].Path)

	out, err = e.Run(context.Background(), root, Discover{}, Options{})
	require.NoError(t, err)
	assert.Nil(t, out.Result)
	assert.Empty(t, out.Opportunities)
}

func TestFromProfile(t *testing.T) {
	days := 7.0
	op, opts := FromProfile(config.Profile{
		Name:      "builds",
		Type:      config.TypePattern,
		Patterns:  []string{"dist", "out"},
		OlderThan: &days,
		Trash:     true,
	})

	assert.Equal(t, "Profile: builds", op.Title())
	assert.True(t, Deletes(op))
	assert.True(t, opts.Trash)
	assert.Equal(t, &days, opts.OlderThanDays)

	resolved, err := resolve(op)
	require.NoError(t, err)
	assert.Equal(t, Pattern{Patterns: []string{"dist", "out"}}, resolved)
	assert.Equal(t, "Pattern: dist, out", resolved.Title())
}

func TestReportSections(t *testing.T) {
	root := projectRoot(t)
	e := newEngine()
	r := NewReport(true)

	for _, op := range []Operation{NodeModules{}, EmptyDirs{}, Analyze{}} {
		out, err := e.Run(context.Background(), root, op, Options{DryRun: true})
		require.NoError(t, err)
		r.Add(out)
	}

	d := r.Data()
	require.Len(t, d.Sections, 2)
	assert.Equal(t, "Node Modules", d.Sections[0].Title)
	assert.Equal(t, "Empty Directories", d.Sections[1].Title)
	assert.Equal(t, int64(1000), d.TotalBytes)
	assert.True(t, d.DryRun)

	path, err := r.Write(filepath.Join(t.TempDir(), "r.html"), "")
	require.NoError(t, err)
	assert.FileExists(t, path)
}
