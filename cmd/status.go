package cmd

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/dirclean/internal/core"
	"github.com/lakshaymaurya-felt/dirclean/internal/status"
	"github.com/lakshaymaurya-felt/dirclean/internal/ui"
)

var (
	statusWatch   bool
	statusRefresh time.Duration
)

var statusCmd = &cobra.Command{
	Use:   "status [dir]",
	Short: "Show free space on the volume holding a directory",
	Long:  "Show total, used and free space of the volume that holds [dir] (default: the current directory).",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		dir = core.NormalizePath(dir)

		if statusWatch {
			if !ui.Interactive() {
				return errors.New("--watch needs an interactive terminal")
			}
			prog := tea.NewProgram(status.NewWatchModel(dir, statusRefresh),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			final, err := prog.Run()
			if err != nil {
				return err
			}
			if m, ok := final.(status.WatchModel); ok && m.Snap == nil && m.Err != nil {
				return m.Err
			}
			return nil
		}

		snap, err := status.Take(dir)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), status.Render(snap, 60))
		return nil
	},
}

func init() {
	statusCmd.Flags().BoolVar(&statusWatch, "watch", false, "Keep refreshing until q is pressed")
	statusCmd.Flags().DurationVar(&statusRefresh, "refresh", time.Second, "Refresh interval for --watch")
}
