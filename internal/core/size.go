package core

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Size parsing errors. Both are configuration errors and must surface before
// anything on disk is touched.
var (
	ErrInvalidFormat = errors.New("invalid size format")
	ErrUnknownUnit   = errors.New("unknown size unit")
)

// sizeUnits is the binary unit ladder, smallest first.
var sizeUnits = []struct {
	suffix string
	factor float64
}{
	{"B", humanize.Byte},
	{"KB", humanize.KiByte},
	{"MB", humanize.MiByte},
	{"GB", humanize.GiByte},
	{"TB", humanize.TiByte},
	{"PB", humanize.PiByte},
}

// sizePattern matches a non-negative decimal followed by a unit, e.g. "10MB",
// "1.5GB" or "10.50 MB" (the form FormatSize produces).
var sizePattern = regexp.MustCompile(`^(\d+\.?\d*)\s*([A-Z]+)$`)

// FormatSize converts a byte count to a human-readable string with two
// decimals, e.g. "10.50 MB". The ladder stops at PB.
func FormatSize(bytes int64) string {
	value := float64(bytes)
	last := len(sizeUnits) - 1
	for i, u := range sizeUnits {
		if value < 1024 || i == last {
			return fmt.Sprintf("%.2f %s", value, u.suffix)
		}
		value /= 1024
	}
	return "" // unreachable
}

// ParseSize converts a size specification such as "10MB" into bytes. Units
// are case-insensitive. Empty input means "no constraint" and yields 0.
func ParseSize(text string) (int64, error) {
	text = strings.ToUpper(strings.TrimSpace(text))
	if text == "" {
		return 0, nil
	}

	m := sizePattern.FindStringSubmatch(text)
	if m == nil {
		return 0, fmt.Errorf("%w: %q (use a form like 10MB)", ErrInvalidFormat, text)
	}

	number, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, text)
	}

	for _, u := range sizeUnits {
		if u.suffix == m[2] {
			bytes := number * u.factor
			if bytes >= math.MaxInt64 {
				return 0, fmt.Errorf("%w: %q is out of range", ErrInvalidFormat, text)
			}
			return int64(bytes), nil
		}
	}

	return 0, fmt.Errorf("%w: %s (use one of B, KB, MB, GB, TB, PB)", ErrUnknownUnit, m[2])
}
