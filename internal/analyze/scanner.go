// Package analyze measures disk usage below a directory, ranks the largest
// directories, classifies cleanup opportunities and hosts the candidate
// picker.
package analyze

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/karrick/godirwalk"

	"github.com/lakshaymaurya-felt/dirclean/internal/core"
	"github.com/lakshaymaurya-felt/dirclean/internal/scan"
)

// DirEntry is one directory in the scan tree. Files are folded into their
// directory's size.
type DirEntry struct {
	Path     string      `json:"path"`
	Name     string      `json:"name"`
	Size     int64       `json:"size"`
	Depth    int         `json:"depth"`
	Files    int         `json:"files"`
	Children []*DirEntry `json:"children,omitempty"`
	Parent   *DirEntry   `json:"-"`
	ModTime  time.Time   `json:"mod_time"`

	own int64 // bytes in files directly inside
}

// IsOld returns true if the entry hasn't been modified in 6+ months.
func (e *DirEntry) IsOld() bool {
	return time.Since(e.ModTime) > 180*24*time.Hour
}

// Percentage returns the entry's size as a percentage of its parent's size.
func (e *DirEntry) Percentage(parentSize int64) float64 {
	if parentSize == 0 {
		return 0
	}
	return float64(e.Size) / float64(parentSize) * 100
}

// Walk visits e and its descendants, parents first. Returning false from fn
// skips the entry's children.
func (e *DirEntry) Walk(fn func(*DirEntry) bool) {
	if !fn(e) {
		return
	}
	for _, c := range e.Children {
		c.Walk(fn)
	}
}

// FileFunc observes every regular file seen during a scan.
type FileFunc func(path string, size int64)

// Scanner builds a size tree in one single-threaded walk. Symbolic links
// and junctions are never followed.
type Scanner struct {
	onFile       FileFunc
	mu           sync.Mutex
	warnings     []string
	scannedCount atomic.Int64
}

// NewScanner creates a scanner. onFile may be nil.
func NewScanner(onFile FileFunc) *Scanner {
	return &Scanner{onFile: onFile}
}

// Warnings returns any warnings accumulated during scanning.
func (s *Scanner) Warnings() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.warnings...)
}

// ScannedCount returns the number of entries scanned so far.
func (s *Scanner) ScannedCount() int64 {
	return s.scannedCount.Load()
}

func (s *Scanner) addWarning(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.warnings) < 500 {
		s.warnings = append(s.warnings, msg)
	}
}

// Scan walks rootPath and returns its tree with recursive sizes, children
// sorted largest first. On cancellation the partial tree is returned with
// ctx's error.
func (s *Scanner) Scan(ctx context.Context, rootPath string) (*DirEntry, error) {
	rootPath, err := scan.ResolveRoot(rootPath)
	if err != nil {
		return nil, err
	}

	info, err := os.Lstat(core.LongPath(rootPath))
	if err != nil {
		return nil, err
	}
	root := &DirEntry{Path: rootPath, Name: filepath.Base(rootPath), ModTime: info.ModTime()}
	dirs := map[string]*DirEntry{rootPath: root}

	err = scan.Walk(ctx, rootPath, func(p string, de *godirwalk.Dirent) error {
		if p == rootPath {
			return nil
		}
		s.scannedCount.Add(1)
		parent := dirs[filepath.Dir(p)]
		if parent == nil {
			return nil
		}

		switch {
		case de.IsDir():
			child := &DirEntry{
				Path:   core.NormalizePath(p),
				Name:   de.Name(),
				Depth:  parent.Depth + 1,
				Parent: parent,
			}
			if fi, err := os.Lstat(core.LongPath(p)); err == nil {
				child.ModTime = fi.ModTime()
			}
			parent.Children = append(parent.Children, child)
			dirs[p] = child
		case de.IsRegular():
			fi, err := os.Lstat(core.LongPath(p))
			if err != nil {
				s.addWarning("cannot stat " + p + ": " + err.Error())
				return nil
			}
			parent.own += fi.Size()
			parent.Files++
			if s.onFile != nil {
				s.onFile(core.NormalizePath(p), fi.Size())
			}
		}
		return nil
	}, nil)

	calculateSizes(root)
	return root, err
}

// calculateSizes walks the tree bottom-up, summing sizes from children,
// then sorts each level by size descending.
func calculateSizes(entry *DirEntry) {
	total := entry.own
	for _, child := range entry.Children {
		calculateSizes(child)
		total += child.Size
	}
	entry.Size = total

	sort.SliceStable(entry.Children, func(i, j int) bool {
		return entry.Children[i].Size > entry.Children[j].Size
	})
}
