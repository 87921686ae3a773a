package cmd

import "github.com/lakshaymaurya-felt/dirclean/internal/engine"

var subdirsCmd = newDeletingCommand("subdirs",
	"Delete the immediate subdirectories of a directory",
	"Delete every directory directly inside <dir>. Files in <dir> are left alone.",
	engine.Subdirs{})
