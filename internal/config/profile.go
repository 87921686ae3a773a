package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/lakshaymaurya-felt/dirclean/internal/core"
)

var (
	// ErrUnknownProfile is returned when a profile name is not in the file.
	ErrUnknownProfile = errors.New("unknown profile")

	// ErrUnknownProfileType is returned for a profile whose type is missing
	// or not one of the known discoverers.
	ErrUnknownProfileType = errors.New("unknown profile type")
)

// Profile is one named section of a profile file.
type Profile struct {
	Name     string
	Type     Type
	Patterns []string

	Exclude   []string
	OlderThan *float64
	MinSize   *int64

	DryRun      bool
	Trash       bool
	Interactive bool
	Parallel    bool
}

// Profiles is the parsed content of a profile file, keyed by lowercase name.
type Profiles map[string]Profile

// LoadProfiles reads a YAML, TOML or JSON profile file. Every top-level
// table is one profile.
func LoadProfiles(path string) (Profiles, error) {
	// Profile names may contain dots.
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))
	v.SetConfigFile(core.NormalizePath(path))
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read profiles: %w", err)
	}

	profiles := make(Profiles)
	for name, raw := range v.AllSettings() {
		section, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		p, err := parseProfile(name, section)
		if err != nil {
			return nil, err
		}
		profiles[name] = p
	}
	return profiles, nil
}

// Names returns the profile names, sorted.
func (ps Profiles) Names() []string {
	names := make([]string, 0, len(ps))
	for n := range ps {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Lookup finds a profile by name, case-insensitively.
func (ps Profiles) Lookup(name string) (Profile, error) {
	if p, ok := ps[strings.ToLower(name)]; ok {
		return p, nil
	}
	return Profile{}, fmt.Errorf("%w: %q (available: %s)", ErrUnknownProfile, name, strings.Join(ps.Names(), ", "))
}

func parseProfile(name string, section map[string]any) (Profile, error) {
	p := Profile{Name: name}

	switch t := Type(cast.ToString(section["type"])); t {
	case TypeNodeModules, TypeSubdirs, TypePattern, TypeEmptyDirs:
		p.Type = t
	default:
		return Profile{}, fmt.Errorf("profile %s: %w: %q", name, ErrUnknownProfileType, t)
	}

	var err error
	if p.Patterns, err = stringList(section["patterns"]); err != nil {
		return Profile{}, fmt.Errorf("profile %s: patterns: %w", name, err)
	}
	if single := strings.TrimSpace(cast.ToString(section["pattern"])); single != "" {
		p.Patterns = append([]string{single}, p.Patterns...)
	}
	if p.Type == TypePattern && len(p.Patterns) == 0 {
		return Profile{}, fmt.Errorf("profile %s: pattern type needs pattern or patterns", name)
	}

	if p.Exclude, err = stringList(section["exclude"]); err != nil {
		return Profile{}, fmt.Errorf("profile %s: exclude: %w", name, err)
	}

	if raw, ok := section["older_than"]; ok {
		days, err := cast.ToFloat64E(raw)
		if err != nil || days < 0 {
			return Profile{}, fmt.Errorf("profile %s: invalid older_than %v", name, raw)
		}
		p.OlderThan = &days
	}

	if raw, ok := section["min_size"]; ok {
		size, err := sizeValue(raw)
		if err != nil {
			return Profile{}, fmt.Errorf("profile %s: min_size: %w", name, err)
		}
		p.MinSize = &size
	}

	p.DryRun = cast.ToBool(section["dry_run"])
	p.Trash = cast.ToBool(section["trash"])
	p.Interactive = cast.ToBool(section["interactive"])
	p.Parallel = cast.ToBool(section["parallel"])
	return p, nil
}

// stringList accepts a list or a comma-separated string.
func stringList(raw any) ([]string, error) {
	if raw == nil {
		return nil, nil
	}
	if s, ok := raw.(string); ok {
		return SplitList(s), nil
	}
	items, err := cast.ToStringSliceE(raw)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out, nil
}

// SplitList splits a comma-separated value, dropping blank items.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// sizeValue accepts a plain byte count or a size string such as "10MB".
func sizeValue(raw any) (int64, error) {
	if s, ok := raw.(string); ok {
		if n, err := cast.ToInt64E(strings.TrimSpace(s)); err == nil && n >= 0 {
			return n, nil
		}
		return core.ParseSize(s)
	}
	n, err := cast.ToInt64E(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%v: %w", raw, core.ErrInvalidFormat)
	}
	return n, nil
}
