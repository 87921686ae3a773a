package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/dirclean/internal/config"
	"github.com/lakshaymaurya-felt/dirclean/internal/engine"
)

var profileFlags cleanFlags

var configCmd = &cobra.Command{
	Use:   "config <file> <profile> <dir>",
	Short: "Run a profile from a profile file",
	Long: `Run a named profile from a YAML, TOML or JSON profile file below <dir>.

Each top-level section is one profile:

  [web]
  type = "pattern"
  patterns = "dist,build"
  exclude = "*/keep/*"
  older_than = 30
  min_size = "10MB"
  dry_run = true

Flags given on the command line override the profile's values.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		profiles, err := config.LoadProfiles(args[0])
		if err != nil {
			return err
		}
		p, err := profiles.Lookup(args[1])
		if err != nil {
			return err
		}

		op, opts := engine.FromProfile(p)
		if !cmd.Flags().Changed("trash") && !p.Trash {
			opts.Trash = prefs.Trash
		}
		if err := profileFlags.apply(cmd, &opts); err != nil {
			return err
		}
		return runClean(cmd, args[2], op, opts, profileFlags.report)
	},
}

func init() {
	addCleanFlags(configCmd, &profileFlags)
}
