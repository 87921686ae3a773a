package core

import (
	"fmt"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/karrick/godirwalk"
	"github.com/rs/zerolog/log"
)

// defaultSizeCacheEntries bounds the per-run size cache.
const defaultSizeCacheEntries = 4096

// Sizer sums regular-file sizes beneath a directory. Results are cached per
// path so the filter and the deleter do not walk the same tree twice in one
// run. A Sizer is safe for concurrent use.
type Sizer struct {
	cache *lru.Cache[string, int64]
}

// NewSizer creates a Sizer holding at most entries cached sizes.
func NewSizer(entries int) *Sizer {
	if entries <= 0 {
		entries = defaultSizeCacheEntries
	}
	cache, err := lru.New[string, int64](entries)
	if err != nil {
		// Only returned for a non-positive size, which is excluded above.
		panic(err)
	}
	return &Sizer{cache: cache}
}

// Size returns the total size of all regular files under path. Symbolic
// links are never followed. Unreadable files contribute 0 and unreadable
// subdirectories are skipped with a warning; the walk always continues.
//
// An error is returned only when path itself cannot be examined. The size
// is 0 in that case.
func (s *Sizer) Size(path string) (int64, error) {
	path = NormalizePath(path)
	if size, ok := s.cache.Get(path); ok {
		return size, nil
	}

	size, err := DirSize(path)
	if err != nil {
		return 0, err
	}
	s.cache.Add(path, size)
	return size, nil
}

// Forget drops a cached size, typically after the directory was removed.
func (s *Sizer) Forget(path string) {
	s.cache.Remove(NormalizePath(path))
}

// DirSize walks path without caching. See Sizer.Size.
func DirSize(path string) (int64, error) {
	info, err := os.Lstat(LongPath(path))
	if err != nil {
		return 0, err
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("%s: not a directory", path)
	}

	var (
		total   int64
		rootErr error
	)

	walkErr := godirwalk.Walk(LongPath(path), &godirwalk.Options{
		Unsorted: true,
		Callback: func(osPathname string, de *godirwalk.Dirent) error {
			// Junctions can surface as plain directories on Windows.
			if isWindows && de.IsDir() && osPathname != LongPath(path) && IsLinkLike(osPathname) {
				return filepath.SkipDir
			}
			if !de.IsRegular() {
				return nil
			}
			fi, statErr := os.Lstat(osPathname)
			if statErr != nil {
				// Vanished or unreadable file: counts as zero.
				return nil
			}
			total += fi.Size()
			return nil
		},
		ErrorCallback: func(osPathname string, err error) godirwalk.ErrorAction {
			if osPathname == LongPath(path) {
				rootErr = err
			}
			log.Warn().Str("path", osPathname).Err(err).Msg("cannot read directory while sizing")
			return godirwalk.SkipNode
		},
	})
	if walkErr != nil {
		return total, walkErr
	}
	if rootErr != nil {
		return 0, rootErr
	}

	return total, nil
}
