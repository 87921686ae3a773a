package analyze

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/lakshaymaurya-felt/dirclean/internal/core"
	"github.com/lakshaymaurya-felt/dirclean/internal/filter"
)

// Opportunity kinds, in report order.
const (
	KindNodeModules = "node_modules"
	KindBuild       = "build_artifacts"
	KindCache       = "cache_dirs"
	KindTemp        = "temp_files"
	KindLarge       = "large_dirs"
)

// kindSpec describes one opportunity class.
type kindSpec struct {
	kind     string
	title    string
	patterns []string
	minSize  int64
	files    bool // regular files may match too
}

var kinds = []kindSpec{
	{kind: KindNodeModules, title: "Node Modules", patterns: []string{"node_modules"}, minSize: 10 * humanize.MiByte},
	{kind: KindBuild, title: "Build Artifacts", patterns: []string{"build", "dist", "target", "bin", "obj"}, minSize: 5 * humanize.MiByte},
	{kind: KindCache, title: "Cache Dirs", patterns: []string{".cache", ".npm", ".gradle", "__pycache__", ".nuget"}, minSize: 5 * humanize.MiByte},
	{kind: KindTemp, title: "Temp Files", patterns: []string{"tmp", "temp", "*.tmp", "*.bak"}, minSize: humanize.MiByte, files: true},
}

const (
	largeDirMin = 100 * humanize.MiByte
	largeDirTop = 10
)

// Opportunity groups the matches of one class.
type Opportunity struct {
	Kind  string   `json:"kind"`
	Title string   `json:"title"`
	Items []Ranked `json:"items"`
	Total int64    `json:"total"`
}

type compiledKind struct {
	kindSpec
	globs []filter.Pattern
}

func (k compiledKind) matches(name string) bool {
	for _, g := range k.globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// Discover classifies cleanup opportunities below root in one scan. A
// directory matched by a class is not searched again for the same class,
// so totals never count bytes twice. Empty classes are omitted.
func Discover(ctx context.Context, root string) ([]Opportunity, error) {
	compiled := make([]compiledKind, len(kinds))
	for i, k := range kinds {
		globs, err := filter.CompilePatterns(k.patterns)
		if err != nil {
			return nil, err
		}
		compiled[i] = compiledKind{kindSpec: k, globs: globs}
	}

	found := make(map[string][]Ranked, len(kinds)+1)
	fileHits := make(map[string][]Ranked)
	onFile := func(path string, size int64) {
		for _, k := range compiled {
			if k.files && size > k.minSize && k.matches(filepath.Base(path)) {
				fileHits[k.kind] = append(fileHits[k.kind], Ranked{Path: path, Size: size})
			}
		}
	}

	tree, err := NewScanner(onFile).Scan(ctx, root)
	if tree == nil {
		return nil, err
	}

	for _, k := range compiled {
		var matched []string
		tree.Walk(func(e *DirEntry) bool {
			if e.Depth == 0 || !k.matches(e.Name) {
				return true
			}
			matched = append(matched, e.Path)
			if e.Size > k.minSize {
				found[k.kind] = append(found[k.kind], Ranked{Path: e.Path, Size: e.Size, Depth: e.Depth})
			}
			return false
		})
		// A file inside a matched directory is already in that total.
		for _, f := range fileHits[k.kind] {
			if !insideAny(core.NormalizePath(f.Path), matched) {
				found[k.kind] = append(found[k.kind], f)
			}
		}
	}

	var large []Ranked
	tree.Walk(func(e *DirEntry) bool {
		if e.Depth > 0 && e.Size > largeDirMin {
			large = append(large, Ranked{Path: e.Path, Size: e.Size, Depth: e.Depth})
		}
		return e.Size > largeDirMin
	})
	sortRanked(large)
	if len(large) > largeDirTop {
		large = large[:largeDirTop]
	}
	found[KindLarge] = large

	order := make([]kindSpec, 0, len(kinds)+1)
	order = append(order, kinds...)
	order = append(order, kindSpec{kind: KindLarge, title: "Large Dirs"})

	var out []Opportunity
	for _, k := range order {
		items := found[k.kind]
		if len(items) == 0 {
			continue
		}
		sortRanked(items)
		op := Opportunity{Kind: k.kind, Title: k.title, Items: items}
		for _, it := range items {
			op.Total += it.Size
		}
		out = append(out, op)
	}
	return out, err
}

func insideAny(path string, dirs []string) bool {
	for _, d := range dirs {
		if core.IsWithin(path, d) {
			return true
		}
	}
	return false
}

func sortRanked(rs []Ranked) {
	sort.SliceStable(rs, func(i, j int) bool { return rs[i].Size > rs[j].Size })
}
