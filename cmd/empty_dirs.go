package cmd

import "github.com/lakshaymaurya-felt/dirclean/internal/engine"

var emptyDirsCmd = newDeletingCommand("empty-dirs",
	"Delete directories that contain no files",
	`Delete every directory below <dir> that holds no files at any depth,
deepest first. <dir> itself is never deleted.`,
	engine.EmptyDirs{})
