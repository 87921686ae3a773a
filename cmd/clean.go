package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/dirclean/internal/analyze"
	"github.com/lakshaymaurya-felt/dirclean/internal/clean"
	"github.com/lakshaymaurya-felt/dirclean/internal/config"
	"github.com/lakshaymaurya-felt/dirclean/internal/core"
	"github.com/lakshaymaurya-felt/dirclean/internal/engine"
	"github.com/lakshaymaurya-felt/dirclean/internal/scan"
	"github.com/lakshaymaurya-felt/dirclean/internal/status"
	"github.com/lakshaymaurya-felt/dirclean/internal/ui"
)

// cleanFlags is the option set shared by every deleting command.
type cleanFlags struct {
	dryRun      bool
	exclude     []string
	olderThan   float64
	minSize     string
	trash       bool
	interactive bool
	parallel    bool
	report      string
	pick        bool
}

func addCleanFlags(c *cobra.Command, f *cleanFlags) {
	fl := c.Flags()
	fl.BoolVar(&f.dryRun, "dry-run", false, "Preview what would be deleted without deleting")
	fl.StringSliceVar(&f.exclude, "exclude", nil, "Skip paths matching these globs (repeatable, comma-separated)")
	fl.Float64Var(&f.olderThan, "older-than", 0, "Only delete directories not modified for this many days")
	fl.StringVar(&f.minSize, "min-size", "", "Only delete directories at least this large (e.g. 50MB)")
	fl.BoolVar(&f.trash, "trash", false, "Move to the trash instead of deleting permanently")
	fl.BoolVarP(&f.interactive, "interactive", "i", false, "Ask before each deletion")
	fl.BoolVar(&f.parallel, "parallel", false, "Delete independent directories concurrently")
	fl.StringVar(&f.report, "report", "", "Write an HTML (or .json) report to this path")
	fl.BoolVar(&f.pick, "select", false, "Choose the directories to delete in a picker first")
}

// apply overlays the flags the user actually set onto opts.
func (f *cleanFlags) apply(cmd *cobra.Command, opts *engine.Options) error {
	fl := cmd.Flags()
	if fl.Changed("dry-run") {
		opts.DryRun = f.dryRun
	}
	if fl.Changed("trash") {
		opts.Trash = f.trash
	}
	if fl.Changed("interactive") {
		opts.Interactive = f.interactive
	}
	if fl.Changed("parallel") {
		opts.Parallel = f.parallel
	}
	if fl.Changed("exclude") {
		opts.Exclude = append(opts.Exclude, f.exclude...)
	}
	if fl.Changed("older-than") {
		if f.olderThan < 0 {
			return fmt.Errorf("--older-than must not be negative, got %g", f.olderThan)
		}
		days := f.olderThan
		opts.OlderThanDays = &days
	}
	if fl.Changed("min-size") {
		n, err := core.ParseSize(f.minSize)
		if err != nil {
			return fmt.Errorf("--min-size: %w", err)
		}
		opts.MinSize = &n
	}
	if f.pick {
		if !ui.Interactive() {
			return errors.New("--select needs an interactive terminal")
		}
		opts.Select = func(ctx context.Context, cands []scan.Candidate) ([]scan.Candidate, error) {
			return analyze.Pick(ctx, os.Stdin, os.Stdout, cands)
		}
	}
	return nil
}

// options builds the option set for a plain deleting command.
func (f *cleanFlags) options(cmd *cobra.Command) (engine.Options, error) {
	opts := engine.Options{Trash: prefs.Trash}
	if err := f.apply(cmd, &opts); err != nil {
		return engine.Options{}, err
	}
	return opts, nil
}

// newDeletingCommand builds a command that runs op below its single
// directory argument.
func newDeletingCommand(use, short, long string, op engine.Operation) *cobra.Command {
	var f cleanFlags
	c := &cobra.Command{
		Use:   use + " <dir>",
		Short: short,
		Long:  long,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := f.options(cmd)
			if err != nil {
				return err
			}
			return runClean(cmd, args[0], op, opts, f.report)
		},
	}
	addCleanFlags(c, &f)
	return c
}

// ─── Engine wiring ───────────────────────────────────────────────────────────

func newEngine(cmd *cobra.Command) *engine.Engine {
	asker := ui.NewAsker(cmd.InOrStdin(), cmd.OutOrStdout(), ui.Interactive())
	return engine.New(engine.Config{
		Trash: clean.DetectTrash(),
		Confirmer: clean.ConfirmFunc(func(ctx context.Context, req clean.ConfirmRequest) (bool, error) {
			return asker.Ask(ctx, fmt.Sprintf("Delete %s (%s)?", req.Path, core.FormatSize(req.Size)))
		}),
		Protected: config.ProtectedPaths(),
		Workers:   prefs.Workers,
	})
}

// runClean runs one deleting operation, prints its summary and writes the
// report when asked. Cancellation prints what was done and returns nil.
func runClean(cmd *cobra.Command, root string, op engine.Operation, opts engine.Options, reportPath string) error {
	if !engine.Deletes(op) {
		return fmt.Errorf("%s does not delete anything", op.Title())
	}
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	root = core.NormalizePath(root)

	var before *status.Snapshot
	if !opts.DryRun {
		if snap, err := status.Take(root); err == nil {
			before = &snap
		} else {
			log.Debug().Err(err).Str("path", root).Msg("free space unavailable")
		}
	}

	outcome, err := newEngine(cmd).Run(ctx, root, op, opts)
	canceled := errors.Is(err, context.Canceled)
	if err != nil && !canceled {
		return err
	}

	printSummary(out, outcome, opts.DryRun)

	if before != nil && outcome.Result != nil && outcome.Result.Count > 0 {
		if after, err := status.Take(root); err == nil {
			fmt.Fprintln(out, status.RenderDelta(*before, after))
		}
	}

	if reportPath != "" {
		rep := engine.NewReport(opts.DryRun)
		rep.Add(outcome)
		written, err := rep.Write(reportPath, prefs.Report.Dir)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\n", ui.MutedStyle().Render("Report written to "+written))
	}

	if canceled {
		fmt.Fprintln(out, ui.WarningStyle().Render(ui.IconWarning+" canceled, results above are partial"))
	}
	return nil
}

// ─── Summary ─────────────────────────────────────────────────────────────────

func printSummary(w io.Writer, out engine.Outcome, dryRun bool) {
	fmt.Fprintf(w, "\n%s\n", ui.TitleStyle().Render(ui.IconDiamond+" "+out.Title))
	res := out.Result
	if res == nil {
		return
	}
	if out.Found == 0 {
		fmt.Fprintln(w, ui.MutedStyle().Render("  Nothing found."))
		return
	}

	for _, rec := range res.Records {
		switch rec.Status {
		case clean.StatusFailed:
			fmt.Fprintf(w, "  %s %s %s\n", ui.ErrorStyle().Render(ui.IconError), rec.Path,
				ui.MutedStyle().Render(reasonText(rec.Reason)))
		case clean.StatusSkipped:
			fmt.Fprintf(w, "  %s %s %s\n", ui.MutedStyle().Render(ui.IconSkip), rec.Path,
				ui.MutedStyle().Render(reasonText(rec.Reason)))
		default:
			fmt.Fprintf(w, "  %s %10s  %s\n", ui.SuccessStyle().Render(ui.IconSuccess),
				core.FormatSize(rec.Bytes), rec.Path)
		}
	}

	verb := "Deleted"
	if dryRun {
		verb = "Would delete"
	}
	fmt.Fprintf(w, "\n  %s %d of %d directories, %s\n",
		verb, res.Count, out.Found, core.FormatSize(res.TotalBytes))
	if n := res.Skipped(); n > 0 {
		fmt.Fprintf(w, "  %s\n", ui.WarningStyle().Render(fmt.Sprintf("%d skipped", n)))
	}
	if n := res.Failed(); n > 0 {
		fmt.Fprintf(w, "  %s\n", ui.ErrorStyle().Render(fmt.Sprintf("%d failed", n)))
	}
}

func reasonText(err error) string {
	if err == nil {
		return ""
	}
	return "(" + err.Error() + ")"
}
