package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/dirclean/internal/analyze"
	"github.com/lakshaymaurya-felt/dirclean/internal/core"
	"github.com/lakshaymaurya-felt/dirclean/internal/engine"
	"github.com/lakshaymaurya-felt/dirclean/internal/ui"
)

var discoverCmd = &cobra.Command{
	Use:   "discover <dir>",
	Short: "Find cleanup opportunities",
	Long: `Scan <dir> once and list what could be cleaned: node_modules, build
artifacts, caches, temp files and the largest directories. Nothing is
deleted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := core.NormalizePath(args[0])
		out, err := newEngine(cmd).Run(cmd.Context(), root, engine.Discover{}, engine.Options{})
		canceled := errors.Is(err, context.Canceled)
		if err != nil && !canceled {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintln(w, ui.TitleStyle().Render(ui.IconDiamond+" "+out.Title+" in "+root))
		analyze.PrintOpportunities(w, out.Opportunities)
		if canceled {
			fmt.Fprintln(w, ui.WarningStyle().Render(ui.IconWarning+" canceled, results are partial"))
		}
		return nil
	},
}
