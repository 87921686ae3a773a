package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/dirclean/internal/config"
	"github.com/lakshaymaurya-felt/dirclean/internal/engine"
)

var patternFlags cleanFlags

var patternCmd = &cobra.Command{
	Use:   "pattern <dir> <pattern>...",
	Short: "Delete directories whose name matches a glob",
	Long: `Delete every directory below <dir> whose name matches one of the glob
patterns (for example "build" "*.egg-info" or "dist,out"). Matches are not
searched further.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var patterns []string
		for _, a := range args[1:] {
			patterns = append(patterns, config.SplitList(a)...)
		}
		opts, err := patternFlags.options(cmd)
		if err != nil {
			return err
		}
		return runClean(cmd, args[0], engine.Pattern{Patterns: patterns}, opts, patternFlags.report)
	},
}

func init() {
	addCleanFlags(patternCmd, &patternFlags)
}
