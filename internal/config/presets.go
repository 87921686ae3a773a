// Package config holds the built-in presets, cleaning profiles loaded from
// disk, the user preference file and the protected path list.
package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownPreset is returned for a preset name not in the catalogue.
var ErrUnknownPreset = errors.New("unknown preset")

// Type selects which discoverer a preset or profile runs.
type Type string

const (
	TypeNodeModules Type = "node-modules"
	TypeSubdirs     Type = "subdirs"
	TypePattern     Type = "pattern"
	TypeEmptyDirs   Type = "empty-dirs"
)

// Preset is a named, built-in cleaning operation.
type Preset struct {
	// Name is the unique identifier for this preset.
	Name string

	// Type is the discoverer the preset runs.
	Type Type

	// Patterns are the directory-name globs for pattern presets.
	Patterns []string

	// Description is a human-readable description.
	Description string

	// Category groups related presets (e.g., "dev", "cache", "temp").
	Category string

	// RiskLevel is one of "low", "medium", "high".
	RiskLevel string
}

// Presets returns the built-in preset catalogue in display order.
func Presets() []Preset {
	return []Preset{
		// ── Dependencies ────────────────────────────────────────
		{
			Name:        "node-modules",
			Type:        TypeNodeModules,
			Description: "npm/yarn/pnpm dependency folders",
			Category:    "dev",
			RiskLevel:   "low",
		},

		// ── Build Output ────────────────────────────────────────
		{
			Name:        "build-artifacts",
			Type:        TypePattern,
			Patterns:    []string{"build", "dist", "target", "out", "bin", "obj"},
			Description: "Compiler and bundler output directories",
			Category:    "dev",
			RiskLevel:   "medium",
		},

		// ── Caches ──────────────────────────────────────────────
		{
			Name:        "cache-dirs",
			Type:        TypePattern,
			Patterns:    []string{".cache", "__pycache__", ".gradle", ".npm", ".nuget"},
			Description: "Tool and package manager caches",
			Category:    "cache",
			RiskLevel:   "low",
		},

		// ── Temporary ───────────────────────────────────────────
		{
			Name:        "temp-files",
			Type:        TypePattern,
			Patterns:    []string{"tmp", "temp", "*tmp", "*bak"},
			Description: "Temporary and backup directories",
			Category:    "temp",
			RiskLevel:   "medium",
		},
	}
}

// PresetNames returns the catalogue names in display order.
func PresetNames() []string {
	ps := Presets()
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.Name
	}
	return names
}

// LookupPreset finds a preset by name.
func LookupPreset(name string) (Preset, error) {
	for _, p := range Presets() {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %q (available: %s)", ErrUnknownPreset, name, strings.Join(PresetNames(), ", "))
}

// PresetsByCategory groups the catalogue by category. Categories are sorted.
func PresetsByCategory() ([]string, map[string][]Preset) {
	groups := make(map[string][]Preset)
	for _, p := range Presets() {
		groups[p.Category] = append(groups[p.Category], p)
	}
	cats := make([]string, 0, len(groups))
	for c := range groups {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats, groups
}
