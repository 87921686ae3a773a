// Package filter decides whether a discovered directory should be processed.
package filter

import (
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lakshaymaurya-felt/dirclean/internal/core"
)

// Spec is the immutable filter configuration. A nil field means "no
// constraint", never zero.
type Spec struct {
	// ExcludePatterns are matched against the full normalized path.
	ExcludePatterns []string

	// MinAgeDays requires the directory's modification time to be at least
	// this many days old.
	MinAgeDays *float64

	// MinSizeBytes requires the recursive size to meet or exceed this value.
	MinSizeBytes *int64
}

// SizeFunc returns the recursive size of a directory.
type SizeFunc func(path string) (int64, error)

// Filter applies a Spec. Build one with New.
type Filter struct {
	exclude []Pattern
	minAge  *time.Duration
	minSize *int64
	size    SizeFunc
	now     func() time.Time
}

// New compiles spec. size computes directory sizes for the min-size gate; it
// is only called when that gate is configured.
func New(spec Spec, size SizeFunc) (*Filter, error) {
	patterns, err := CompilePatterns(spec.ExcludePatterns)
	if err != nil {
		return nil, err
	}

	f := &Filter{
		exclude: patterns,
		minSize: spec.MinSizeBytes,
		size:    size,
		now:     time.Now,
	}
	if spec.MinAgeDays != nil {
		age := time.Duration(*spec.MinAgeDays * float64(24*time.Hour))
		f.minAge = &age
	}
	if f.size == nil {
		f.size = core.DirSize
	}
	return f, nil
}

// Accepts reports whether path passes every gate. Checks run cheapest first
// and stop at the first failure. The age and size gates fail open: when
// the needed information cannot be read the directory is kept.
func (f *Filter) Accepts(path string) bool {
	path = core.NormalizePath(path)

	info, err := os.Lstat(core.LongPath(path))
	if err != nil || !info.IsDir() {
		return false
	}

	for _, p := range f.exclude {
		if p.Match(path) {
			log.Debug().Str("path", path).Str("pattern", p.String()).Msg("excluded by pattern")
			return false
		}
	}

	if f.minAge != nil {
		// Lstat above already carries the mtime.
		if age := f.now().Sub(info.ModTime()); age < *f.minAge {
			log.Debug().Str("path", path).Dur("age", age).Msg("skipped: too recent")
			return false
		}
	}

	if f.minSize != nil && *f.minSize > 0 {
		size, err := f.size(path)
		if err != nil {
			log.Warn().Str("path", path).Err(err).Msg("size unavailable, keeping candidate")
			return true
		}
		if size < *f.minSize {
			log.Debug().Str("path", path).Int64("size", size).Msg("skipped: too small")
			return false
		}
	}

	return true
}
