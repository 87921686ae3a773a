package analyze

import (
	"context"
	"sort"

	"github.com/rs/zerolog/log"
)

const (
	DefaultDepth = 3  // directory levels below the root that are ranked
	DefaultTop   = 20 // entries printed by default
)

// Ranked is one (path, size) pair of an analysis.
type Ranked struct {
	Path  string `json:"path"`
	Size  int64  `json:"size"`
	Depth int    `json:"depth"`
}

// Options controls Analyze.
type Options struct {
	// Depth limits ranking to directories at most this many levels below
	// the root. Zero or less means DefaultDepth.
	Depth int

	// MinSize hides directories smaller than this many bytes.
	MinSize int64
}

// Analysis is the outcome of one Analyze call.
type Analysis struct {
	Root   *DirEntry
	Ranked []Ranked
}

// Analyze scans root and ranks every directory up to opts.Depth levels
// below it, largest first. Ties keep walk order.
func Analyze(ctx context.Context, root string, opts Options) (Analysis, error) {
	depth := opts.Depth
	if depth <= 0 {
		depth = DefaultDepth
	}

	s := NewScanner(nil)
	tree, err := s.Scan(ctx, root)
	if tree == nil {
		return Analysis{}, err
	}
	for _, w := range s.Warnings() {
		log.Warn().Msg(w)
	}
	log.Debug().Str("root", tree.Path).Int64("entries", s.ScannedCount()).Msg("analysis scan finished")
	return Analysis{Root: tree, Ranked: Rank(tree, depth, opts.MinSize)}, err
}

// Rank flattens tree into (path, size) pairs for entries 1..depth levels
// below the root, largest first.
func Rank(tree *DirEntry, depth int, minSize int64) []Ranked {
	var out []Ranked
	tree.Walk(func(e *DirEntry) bool {
		if e.Depth > depth {
			return false
		}
		if e.Depth > 0 && e.Size >= minSize {
			out = append(out, Ranked{Path: e.Path, Size: e.Size, Depth: e.Depth})
		}
		return true
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Size > out[j].Size })
	return out
}
