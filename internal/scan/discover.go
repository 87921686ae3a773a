package scan

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/karrick/godirwalk"
	"github.com/rs/zerolog/log"

	"github.com/lakshaymaurya-felt/dirclean/internal/core"
	"github.com/lakshaymaurya-felt/dirclean/internal/filter"
)

const nodeModulesName = "node_modules"

// ─── node_modules ────────────────────────────────────────────────────────────

// NodeModules returns every directory named exactly "node_modules" beneath
// root. The walk never descends into a node_modules directory, so nested
// package trees are not reported separately.
//
// On cancellation the candidates found so far are returned with ctx's error.
func NodeModules(ctx context.Context, root string, accept Acceptor) ([]Candidate, error) {
	root, err := ResolveRoot(root)
	if err != nil {
		return nil, err
	}
	accept = orAll(accept)

	var out []Candidate
	err = Walk(ctx, root, func(p string, de *godirwalk.Dirent) error {
		if p == root || !de.IsDir() || de.Name() != nodeModulesName {
			return nil
		}
		path := core.NormalizePath(p)
		if accept.Accepts(path) {
			out = append(out, Candidate{Path: path, Size: -1, Category: CategoryNodeModules})
		}
		return filepath.SkipDir
	}, nil)

	log.Debug().Str("root", root).Int("found", len(out)).Msg("node_modules scan finished")
	return out, err
}

// ─── Immediate subdirectories ────────────────────────────────────────────────

// Subdirs returns the immediate child directories of root. Symbolic links
// are not candidates.
func Subdirs(ctx context.Context, root string, accept Acceptor) ([]Candidate, error) {
	root, err := ResolveRoot(root)
	if err != nil {
		return nil, err
	}
	accept = orAll(accept)

	entries, err := godirwalk.ReadDirents(root, nil)
	if err != nil {
		log.Warn().Str("path", root).Err(err).Msg("cannot list directory contents")
		return nil, nil
	}
	sort.Sort(entries)

	var out []Candidate
	for _, de := range entries {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		if !de.IsDir() {
			continue
		}
		path := core.NormalizePath(filepath.Join(root, de.Name()))
		if accept.Accepts(path) {
			out = append(out, Candidate{Path: path, Size: -1, Category: CategorySubdirs})
		}
	}
	return out, nil
}

// ─── Name patterns ───────────────────────────────────────────────────────────

// Patterns returns every directory whose name matches one of patterns. The
// first matching pattern names the candidate's category. A matched directory
// is never searched further, so no candidate lies inside another.
func Patterns(ctx context.Context, root string, patterns []string, accept Acceptor) ([]Candidate, error) {
	compiled, err := filter.CompilePatterns(patterns)
	if err != nil {
		return nil, err
	}
	root, err = ResolveRoot(root)
	if err != nil {
		return nil, err
	}
	accept = orAll(accept)

	var out []Candidate
	err = Walk(ctx, root, func(p string, de *godirwalk.Dirent) error {
		if p == root || !de.IsDir() {
			return nil
		}
		for _, pat := range compiled {
			if !pat.Match(de.Name()) {
				continue
			}
			path := core.NormalizePath(p)
			if accept.Accepts(path) {
				out = append(out, Candidate{Path: path, Size: -1, Category: PatternCategory(pat.String())})
			}
			return filepath.SkipDir
		}
		return nil
	}, nil)

	log.Debug().Str("root", root).Strs("patterns", patterns).Int("found", len(out)).Msg("pattern scan finished")
	return out, err
}

// ─── Empty directories ───────────────────────────────────────────────────────

// emptyState tracks one open directory during the empty-directory walk.
type emptyState struct {
	entries        int // every child: files, links, directories
	emptyChildDirs int // child directories reported as empty candidates
}

// EmptyDirs returns directories that contain no files, directly or in any
// subdirectory. Emptiness propagates upward: a directory holding only empty
// directories is empty too and is reported after them. The root is never
// reported. A child that is unreadable or rejected by accept makes its
// parent non-empty, since removing the parent would take the child along.
func EmptyDirs(ctx context.Context, root string, accept Acceptor) ([]Candidate, error) {
	root, err := ResolveRoot(root)
	if err != nil {
		return nil, err
	}
	accept = orAll(accept)

	open := map[string]*emptyState{}
	var out []Candidate

	pre := func(p string, de *godirwalk.Dirent) error {
		if p != root {
			if parent := open[filepath.Dir(p)]; parent != nil {
				parent.entries++
			}
		}
		if de.IsDir() {
			open[p] = &emptyState{}
		}
		return nil
	}

	post := func(p string, _ *godirwalk.Dirent) error {
		st := open[p]
		delete(open, p)
		if st == nil || p == root || st.entries != st.emptyChildDirs {
			return nil
		}
		path := core.NormalizePath(p)
		if !accept.Accepts(path) {
			return nil
		}
		out = append(out, Candidate{Path: path, Size: 0, Category: CategoryEmpty})
		if parent := open[filepath.Dir(p)]; parent != nil {
			parent.emptyChildDirs++
		}
		return nil
	}

	err = Walk(ctx, root, pre, post)

	log.Debug().Str("root", root).Int("found", len(out)).Msg("empty directory scan finished")
	return out, err
}

func orAll(a Acceptor) Acceptor {
	if a == nil {
		return AcceptAll{}
	}
	return a
}
