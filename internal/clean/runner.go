package clean

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/lakshaymaurya-felt/dirclean/internal/core"
	"github.com/lakshaymaurya-felt/dirclean/internal/scan"
)

// ErrHoldsKept is the skip reason for a directory that contains an earlier
// candidate the run kept, for example one the user declined.
var ErrHoldsKept = errors.New("contains a directory that was kept")

// Options controls one batch run.
type Options struct {
	DryRun      bool
	UseTrash    bool
	Interactive bool
	Parallel    bool

	// Workers bounds the pool in parallel mode. Zero means one per CPU.
	Workers int
}

// BatchRunner applies a Deleter to a candidate list. It keeps no state
// between runs.
type BatchRunner struct {
	deleter *Deleter
}

// NewBatchRunner creates a runner around d.
func NewBatchRunner(d *Deleter) *BatchRunner {
	return &BatchRunner{deleter: d}
}

// Run deletes candidates and aggregates the outcomes. Interactive runs and
// runs containing nested categories are always sequential. When ctx is
// cancelled, or the user aborts at a prompt, no new deletions start; the
// result holds what completed. In a sequential run a directory holding an
// earlier skipped or failed candidate is skipped too.
func (r *BatchRunner) Run(ctx context.Context, candidates []scan.Candidate, opts Options) RunResult {
	mode := Mode{DryRun: opts.DryRun, UseTrash: opts.UseTrash, Interactive: opts.Interactive}

	parallel := opts.Parallel && !opts.Interactive && len(candidates) > 1
	if parallel && !independent(candidates) {
		log.Debug().Msg("nested candidates, running sequentially")
		parallel = false
	}

	if parallel {
		return r.runParallel(ctx, candidates, mode, opts.Workers)
	}
	return r.runSequential(ctx, candidates, mode)
}

func (r *BatchRunner) runSequential(ctx context.Context, candidates []scan.Candidate, mode Mode) RunResult {
	var (
		res  RunResult
		kept []string // skipped or failed paths that must survive the run
	)
	for _, c := range candidates {
		if ctx.Err() != nil {
			res.Canceled = true
			break
		}

		var rec OutcomeRecord
		if inner := holdsKept(c.Path, kept); inner != "" {
			rec = r.deleter.skip(OutcomeRecord{Path: core.NormalizePath(c.Path), Category: c.Category},
				fmt.Errorf("%w: %s", ErrHoldsKept, inner))
		} else {
			rec = r.deleter.Delete(ctx, c, mode)
		}
		res.add(rec)

		if rec.Status == StatusSkipped && errors.Is(rec.Reason, context.Canceled) {
			// The user aborted at a prompt.
			res.Canceled = true
			break
		}
		if rec.Status == StatusSkipped || rec.Status == StatusFailed {
			kept = append(kept, rec.Path)
		}
	}
	return res
}

// holdsKept returns the first kept path strictly below dir, or "".
func holdsKept(dir string, kept []string) string {
	dir = core.NormalizePath(dir)
	for _, k := range kept {
		if k != dir && core.IsWithin(k, dir) {
			return k
		}
	}
	return ""
}

func (r *BatchRunner) runParallel(ctx context.Context, candidates []scan.Candidate, mode Mode, workers int) RunResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(chan OutcomeRecord, len(candidates))
	g := new(errgroup.Group)
	g.SetLimit(workers)

	go func() {
		defer close(results)
		for _, c := range candidates {
			if ctx.Err() != nil {
				break
			}
			g.Go(func() error {
				if ctx.Err() != nil {
					return nil
				}
				results <- r.deleter.Delete(ctx, c, mode)
				return nil
			})
		}
		_ = g.Wait()
	}()

	var res RunResult
	for rec := range results {
		res.add(rec)
	}
	res.Canceled = ctx.Err() != nil && len(res.Records) < len(candidates)
	return res
}

func independent(candidates []scan.Candidate) bool {
	for _, c := range candidates {
		if !c.Category.Independent() {
			return false
		}
	}
	return true
}
