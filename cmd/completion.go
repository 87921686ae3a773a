package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion <bash|zsh|fish|powershell>",
	Short: "Set up shell tab completion",
	Long: `Generate a tab completion script for the given shell.

  dirclean completion bash > /etc/bash_completion.d/dirclean
  dirclean completion zsh > "${fpath[1]}/_dirclean"
  dirclean completion fish > ~/.config/fish/completions/dirclean.fish
  dirclean completion powershell | Out-String | Invoke-Expression`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletionV2(w, true)
		case "zsh":
			return rootCmd.GenZshCompletion(w)
		case "fish":
			return rootCmd.GenFishCompletion(w, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(w)
		}
		return fmt.Errorf("unsupported shell %q", args[0])
	},
}
