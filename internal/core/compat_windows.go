//go:build windows

package core

import (
	"fmt"

	"golang.org/x/sys/windows"
)

const isWindows = true

// GetWindowsVersion returns the major, minor, and build numbers of the current Windows version.
// Uses RtlGetNtVersionNumbers which works on all Windows versions without manifest requirements.
func GetWindowsVersion() (major, minor, build uint32) {
	major, minor, build = windows.RtlGetNtVersionNumbers()
	// RtlGetNtVersionNumbers returns build with high bits set; mask them off
	build &= 0xFFFF
	return major, minor, build
}

// PlatformString returns a human-readable OS description for `version`.
// Examples: "Windows 10 (Build 19045)", "Windows 11 (Build 22621)"
func PlatformString() string {
	major, minor, build := GetWindowsVersion()

	var name string
	switch {
	case major == 10 && build >= 22000:
		name = "Windows 11"
	case major == 10:
		name = "Windows 10"
	default:
		name = fmt.Sprintf("Windows %d.%d", major, minor)
	}

	return fmt.Sprintf("%s (Build %d)", name, build)
}

// IsLinkLike reports whether path is a junction or symbolic link
// (FILE_ATTRIBUTE_REPARSE_POINT). Such directories are never descended into
// or counted as candidates.
func IsLinkLike(path string) bool {
	p, err := windows.UTF16PtrFromString(LongPath(path))
	if err != nil {
		return false
	}
	attrs, err := windows.GetFileAttributes(p)
	if err != nil {
		return false
	}
	return attrs&windows.FILE_ATTRIBUTE_REPARSE_POINT != 0
}
