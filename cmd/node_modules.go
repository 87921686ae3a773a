package cmd

import "github.com/lakshaymaurya-felt/dirclean/internal/engine"

var nodeModulesCmd = newDeletingCommand("node-modules",
	"Delete node_modules folders",
	`Find every node_modules directory below <dir> and delete it. Nested
node_modules inside a match are not listed separately.`,
	engine.NodeModules{})
