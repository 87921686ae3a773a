// Package engine resolves an operation into a discoverer, runs the
// discover, filter and delete phases, and shapes the results for reports.
package engine

import (
	"strings"

	"github.com/lakshaymaurya-felt/dirclean/internal/config"
)

// Operation is one of the closed set of things the engine can do. The
// variants are NodeModules, Subdirs, Pattern, EmptyDirs, Analyze, Discover,
// Preset and Profile.
type Operation interface {
	// Title names the operation in summaries and report sections.
	Title() string
	isOperation()
}

// NodeModules deletes every node_modules directory.
type NodeModules struct{}

// Subdirs deletes the immediate subdirectories of the root.
type Subdirs struct{}

// Pattern deletes directories whose name matches any of Patterns.
type Pattern struct {
	Patterns []string
}

// EmptyDirs deletes directories that hold no files at any depth.
type EmptyDirs struct{}

// Analyze ranks directories by size without deleting anything.
type Analyze struct {
	Depth int
}

// Discover lists cleanup opportunities without deleting anything.
type Discover struct{}

// Preset runs a built-in preset by name.
type Preset struct {
	Name string
}

// Profile runs an operation loaded from a profile file.
type Profile struct {
	Name string
	Op   Operation
}

func (NodeModules) Title() string { return "Node Modules" }
func (Subdirs) Title() string     { return "Subdirectories" }
func (p Pattern) Title() string   { return "Pattern: " + strings.Join(p.Patterns, ", ") }
func (EmptyDirs) Title() string   { return "Empty Directories" }
func (Analyze) Title() string     { return "Disk Usage" }
func (Discover) Title() string    { return "Cleanup Opportunities" }
func (p Preset) Title() string    { return "Preset: " + p.Name }
func (p Profile) Title() string   { return "Profile: " + p.Name }

func (NodeModules) isOperation() {}
func (Subdirs) isOperation()     {}
func (Pattern) isOperation()     {}
func (EmptyDirs) isOperation()   {}
func (Analyze) isOperation()     {}
func (Discover) isOperation()    {}
func (Preset) isOperation()      {}
func (Profile) isOperation()     {}

// Deletes reports whether op removes directories.
func Deletes(op Operation) bool {
	switch o := op.(type) {
	case Analyze, Discover:
		return false
	case Profile:
		return Deletes(o.Op)
	}
	return true
}

// resolve replaces presets and profiles with the discoverer they run.
func resolve(op Operation) (Operation, error) {
	switch o := op.(type) {
	case Preset:
		p, err := config.LookupPreset(o.Name)
		if err != nil {
			return nil, err
		}
		return fromType(p.Type, p.Patterns), nil
	case Profile:
		return resolve(o.Op)
	}
	return op, nil
}

func fromType(t config.Type, patterns []string) Operation {
	switch t {
	case config.TypeNodeModules:
		return NodeModules{}
	case config.TypeSubdirs:
		return Subdirs{}
	case config.TypeEmptyDirs:
		return EmptyDirs{}
	default:
		return Pattern{Patterns: patterns}
	}
}

// FromProfile turns a loaded profile into an operation and its options.
func FromProfile(p config.Profile) (Operation, Options) {
	op := Profile{Name: p.Name, Op: fromType(p.Type, p.Patterns)}
	return op, Options{
		DryRun:        p.DryRun,
		Trash:         p.Trash,
		Interactive:   p.Interactive,
		Parallel:      p.Parallel,
		Exclude:       p.Exclude,
		OlderThanDays: p.OlderThan,
		MinSize:       p.MinSize,
	}
}
