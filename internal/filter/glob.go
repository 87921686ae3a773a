package filter

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/gobwas/glob"
)

// Pattern is a compiled shell-style wildcard. With no separators configured,
// "*" matches any run of characters including path separators, so a single
// pattern can be applied to a bare name or to a whole path.
type Pattern struct {
	raw string
	g   glob.Glob
}

// CompilePattern compiles a shell-style pattern ("*", "?", "[a-z]", "[!x]").
func CompilePattern(raw string) (Pattern, error) {
	g, err := glob.Compile(canonical(raw))
	if err != nil {
		return Pattern{}, fmt.Errorf("invalid pattern %q: %w", raw, err)
	}
	return Pattern{raw: raw, g: g}, nil
}

// CompilePatterns compiles every pattern, failing on the first invalid one.
func CompilePatterns(raws []string) ([]Pattern, error) {
	out := make([]Pattern, 0, len(raws))
	for _, r := range raws {
		if strings.TrimSpace(r) == "" {
			continue
		}
		p, err := CompilePattern(r)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Match reports whether s matches the pattern.
func (p Pattern) Match(s string) bool {
	if p.g == nil {
		return false
	}
	return p.g.Match(canonical(s))
}

// String returns the pattern as written.
func (p Pattern) String() string { return p.raw }

// canonical folds separators and case on Windows, where the filesystem is
// case-insensitive and "\" would otherwise be read as a glob escape.
func canonical(s string) string {
	if runtime.GOOS != "windows" {
		return s
	}
	return strings.ToLower(filepath.ToSlash(s))
}
