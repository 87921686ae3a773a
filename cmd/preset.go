package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/dirclean/internal/config"
	"github.com/lakshaymaurya-felt/dirclean/internal/engine"
	"github.com/lakshaymaurya-felt/dirclean/internal/ui"
)

var (
	presetFlags cleanFlags
	presetList  bool
)

var presetCmd = &cobra.Command{
	Use:   "preset <name> <dir>",
	Short: "Clean with a built-in preset",
	Long:  "Run a built-in preset (node-modules, build-artifacts, cache-dirs, temp-files) below <dir>.",
	Args: func(cmd *cobra.Command, args []string) error {
		if presetList {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(2)(cmd, args)
	},
	ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 0 {
			return config.PresetNames(), cobra.ShellCompDirectiveNoFileComp
		}
		return nil, cobra.ShellCompDirectiveFilterDirs
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if presetList {
			printPresets(cmd)
			return nil
		}

		p, err := config.LookupPreset(args[0])
		if err != nil {
			return err
		}
		opts, err := presetFlags.options(cmd)
		if err != nil {
			return err
		}
		return runClean(cmd, args[1], engine.Preset{Name: p.Name}, opts, presetFlags.report)
	},
}

func init() {
	addCleanFlags(presetCmd, &presetFlags)
	presetCmd.Flags().BoolVar(&presetList, "list", false, "List the available presets")
}

func printPresets(cmd *cobra.Command) {
	w := cmd.OutOrStdout()
	cats, groups := config.PresetsByCategory()
	for _, cat := range cats {
		fmt.Fprintf(w, "\n%s\n", ui.TitleStyle().Render(ui.IconDiamond+" "+cat))
		for _, p := range groups[cat] {
			risk := ui.MutedStyle().Render("risk: " + p.RiskLevel)
			if p.RiskLevel != "low" {
				risk = ui.TagWarningStyle().Render("risk: " + p.RiskLevel)
			}
			fmt.Fprintf(w, "  %-16s %s %s\n", p.Name, p.Description, risk)
		}
	}
}
