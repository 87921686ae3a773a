//go:build !windows

package core

import (
	"os"
	"runtime"
	"strings"

	"golang.org/x/sys/unix"
)

const isWindows = false

// PlatformString returns a human-readable OS description for `version`,
// e.g. "linux 6.8.0 (amd64)".
func PlatformString() string {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return runtime.GOOS + " (" + runtime.GOARCH + ")"
	}
	release := strings.TrimRight(string(uts.Release[:]), "\x00")
	return runtime.GOOS + " " + release + " (" + runtime.GOARCH + ")"
}

// IsLinkLike reports whether path is a symbolic link.
func IsLinkLike(path string) bool {
	info, err := os.Lstat(path)
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeSymlink != 0
}
