package clean

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/lakshaymaurya-felt/dirclean/internal/core"
)

// ErrProtectedPath is returned for a path the Deleter must never remove.
var ErrProtectedPath = errors.New("protected path")

// Guard refuses deletion of protected locations: the filesystem root, every
// listed path, and any ancestor of a listed path.
type Guard struct {
	paths []string
}

// NewGuard normalizes paths once. Empty entries are ignored.
func NewGuard(paths []string) Guard {
	g := Guard{paths: make([]string, 0, len(paths))}
	for _, p := range paths {
		if p == "" {
			continue
		}
		g.paths = append(g.paths, core.NormalizePath(p))
	}
	return g
}

// Check returns ErrProtectedPath when path must not be deleted.
func (g Guard) Check(path string) error {
	path = core.NormalizePath(path)
	if filepath.Dir(path) == path {
		return fmt.Errorf("%s is a filesystem root: %w", path, ErrProtectedPath)
	}
	for _, p := range g.paths {
		if core.IsWithin(p, path) {
			return fmt.Errorf("%s contains %s: %w", path, p, ErrProtectedPath)
		}
	}
	return nil
}
