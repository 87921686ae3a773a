// Package scan enumerates candidate directories beneath a root. Every
// discoverer performs one single-threaded walk, normalizes each match and
// passes it through an Acceptor before returning it.
package scan

// Category tags which discoverer produced a candidate.
type Category string

const (
	CategoryNodeModules Category = "node_modules"
	CategorySubdirs     Category = "subdirs"
	CategoryEmpty       Category = "empty"

	patternPrefix = "pattern:"
)

// PatternCategory returns the tag for a candidate matched by pattern.
func PatternCategory(pattern string) Category {
	return Category(patternPrefix + pattern)
}

// ZeroIsSuccess reports whether removing a candidate of this category that
// frees 0 bytes still counts as a success. Only empty directories qualify.
func (c Category) ZeroIsSuccess() bool {
	return c == CategoryEmpty
}

// Independent reports whether candidates of this category can never nest,
// which makes them safe to delete concurrently. Empty-directory candidates
// are reported deepest first and may contain each other.
func (c Category) Independent() bool {
	return c != CategoryEmpty
}

// Candidate is a discovered directory eligible for deletion. Candidates live
// for one run and are never persisted.
type Candidate struct {
	// Path is normalized and unique within a run.
	Path string

	// Size is the recursive size in bytes, or -1 when not computed yet.
	Size int64

	Category Category
}

// Acceptor decides whether a discovered directory is kept.
// *filter.Filter satisfies it.
type Acceptor interface {
	Accepts(path string) bool
}

// AcceptAll keeps every directory.
type AcceptAll struct{}

func (AcceptAll) Accepts(string) bool { return true }

// Paths returns the candidate paths in order.
func Paths(cs []Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Path
	}
	return out
}
