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

var (
	analyzeDepth   int
	analyzeTree    bool
	analyzeMinSize string
	analyzeTop     int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <dir>",
	Short: "Explore disk usage",
	Long:  "Rank the directories below <dir> by size, down to --depth levels. The children of <dir> are level 1.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var minSize int64
		if analyzeMinSize != "" {
			n, err := core.ParseSize(analyzeMinSize)
			if err != nil {
				return fmt.Errorf("--min-size: %w", err)
			}
			minSize = n
		}

		out, err := newEngine(cmd).Run(cmd.Context(), core.NormalizePath(args[0]),
			engine.Analyze{Depth: analyzeDepth}, engine.Options{AnalyzeMinSize: minSize})
		canceled := errors.Is(err, context.Canceled)
		if err != nil && !canceled {
			return err
		}
		w := cmd.OutOrStdout()
		if out.Analysis == nil || out.Analysis.Root == nil {
			if canceled {
				fmt.Fprintln(w, ui.WarningStyle().Render(ui.IconWarning+" canceled"))
				return nil
			}
			return err
		}

		a := out.Analysis
		fmt.Fprintf(w, "%s %s\n", ui.TitleStyle().Render(ui.IconDiamond+" "+a.Root.Path),
			ui.MutedStyle().Render(core.FormatSize(a.Root.Size)))
		if analyzeTree {
			analyze.PrintStaticTree(w, a.Root, analyzeDepth, minSize)
		} else {
			analyze.PrintRanked(w, a.Ranked, analyzeTop)
		}
		if canceled {
			fmt.Fprintln(w, ui.WarningStyle().Render(ui.IconWarning+" canceled, sizes are partial"))
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().IntVar(&analyzeDepth, "depth", analyze.DefaultDepth, "Directory levels below <dir> to rank (its children are level 1)")
	analyzeCmd.Flags().BoolVar(&analyzeTree, "tree", false, "Print a tree instead of a ranked list")
	analyzeCmd.Flags().StringVar(&analyzeMinSize, "min-size", "", "Hide directories smaller than this (e.g. 100MB)")
	analyzeCmd.Flags().IntVar(&analyzeTop, "top", analyze.DefaultTop, "Number of ranked entries to print")
}
