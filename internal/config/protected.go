package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// winDir returns the Windows directory (e.g., C:\Windows).
// Falls back to C:\Windows only if %WINDIR% is not set.
func winDir() string {
	if w := os.Getenv("WINDIR"); w != "" {
		return w
	}
	return `C:\Windows`
}

// programData returns the ProgramData directory (e.g., C:\ProgramData).
func programData() string {
	if p := os.Getenv("PROGRAMDATA"); p != "" {
		return p
	}
	return `C:\ProgramData`
}

// systemDrive returns the system drive letter with backslash (e.g., C:\).
func systemDrive() string {
	if d := os.Getenv("SYSTEMDRIVE"); d != "" {
		return d + `\`
	}
	return `C:\`
}

func programFiles() string {
	if p := os.Getenv("PROGRAMFILES"); p != "" {
		return p
	}
	return `C:\Program Files`
}

func programFilesX86() string {
	if p := os.Getenv("PROGRAMFILES(X86)"); p != "" {
		return p
	}
	return `C:\Program Files (x86)`
}

// ProtectedPaths returns directories that must never be deleted, nor any
// directory containing them. The user's home directory is always included.
func ProtectedPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, home)
	}

	switch runtime.GOOS {
	case "windows":
		w := winDir()
		sd := systemDrive()
		paths = append(paths,
			w,
			filepath.Join(w, "System32"),
			filepath.Join(w, "SysWOW64"),
			filepath.Join(w, "WinSxS"),
			filepath.Join(sd, "Boot"),
			filepath.Join(sd, "EFI"),
			filepath.Join(sd, "Users"),
			filepath.Join(sd, "Recovery"),
			programFiles(),
			programFilesX86(),
			programData(),
		)
	case "darwin":
		paths = append(paths,
			"/Applications", "/Library", "/System", "/Users", "/Volumes",
			"/bin", "/etc", "/private", "/sbin", "/usr", "/var",
		)
	default:
		paths = append(paths,
			"/bin", "/boot", "/dev", "/etc", "/home", "/lib", "/lib64",
			"/opt", "/proc", "/root", "/run", "/sbin", "/srv", "/sys",
			"/usr", "/var",
		)
	}
	return paths
}
