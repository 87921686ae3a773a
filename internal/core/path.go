package core

import (
	"path/filepath"
	"strings"
)

// Windows extended-length path prefixes. The UNC form must be checked first.
const (
	longPathPrefix    = `\\?\`
	longUNCPathPrefix = `\\?\UNC\`
)

// NormalizePath returns the absolute, OS-canonical form of path with any
// extended-length prefix removed. Redundant "." and ".." segments are
// resolved purely lexically; the filesystem is never consulted.
//
// Empty input is returned unchanged. NormalizePath is idempotent.
func NormalizePath(path string) string {
	if path == "" {
		return path
	}

	path = stripLongPathPrefix(path)

	abs, err := filepath.Abs(path)
	if err != nil {
		// Abs only fails when the working directory is unknown.
		abs = filepath.Clean(path)
	}

	return stripLongPathPrefix(abs)
}

// stripLongPathPrefix removes \\?\ and \\?\UNC\ prefixes so every path in a
// run shares one representation.
func stripLongPathPrefix(path string) string {
	switch {
	case strings.HasPrefix(path, longUNCPathPrefix):
		return `\\` + path[len(longUNCPathPrefix):]
	case strings.HasPrefix(path, longPathPrefix):
		return path[len(longPathPrefix):]
	}
	return path
}

// LongPath adds the \\?\ prefix for paths exceeding MAX_PATH on Windows.
// Used only when handing a path to the OS; never stored.
func LongPath(path string) string {
	if !isWindows || len(path) < 260 || strings.HasPrefix(path, longPathPrefix) {
		return path
	}
	if strings.HasPrefix(path, `\\`) {
		return longUNCPathPrefix + filepath.Clean(path)[2:]
	}
	return longPathPrefix + filepath.Clean(path)
}

// IsWithin reports whether path equals root or lies beneath it. Both are
// expected to be normalized.
func IsWithin(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
