package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/lakshaymaurya-felt/dirclean/internal/analyze"
	"github.com/lakshaymaurya-felt/dirclean/internal/clean"
	"github.com/lakshaymaurya-felt/dirclean/internal/core"
	"github.com/lakshaymaurya-felt/dirclean/internal/filter"
	"github.com/lakshaymaurya-felt/dirclean/internal/scan"
)

// Options is the option set shared by every deleting operation.
type Options struct {
	DryRun      bool
	Trash       bool
	Interactive bool
	Parallel    bool

	Exclude       []string
	OlderThanDays *float64
	MinSize       *int64

	// Select, when set, sees the sized candidates before deletion and
	// returns the ones to delete.
	Select func(ctx context.Context, cands []scan.Candidate) ([]scan.Candidate, error)

	// Analyze options.
	AnalyzeMinSize int64
}

// Config wires the engine's collaborators.
type Config struct {
	Trash     clean.TrashCapability
	Confirmer clean.Confirmer
	Protected []string
	Workers   int

	// SizeCacheEntries bounds the directory size cache. Zero uses the
	// default.
	SizeCacheEntries int
}

// Engine runs operations. One Engine serves one process.
type Engine struct {
	sizer   *core.Sizer
	trash   clean.TrashCapability
	runner  *clean.BatchRunner
	workers int
}

// New builds an engine.
func New(cfg Config) *Engine {
	sizer := core.NewSizer(cfg.SizeCacheEntries)
	deleter := clean.NewDeleter(sizer, cfg.Trash, cfg.Confirmer, clean.NewGuard(cfg.Protected))
	return &Engine{
		sizer:   sizer,
		trash:   cfg.Trash,
		runner:  clean.NewBatchRunner(deleter),
		workers: cfg.Workers,
	}
}

// Outcome is the result of Run. Exactly one of Result, Analysis and
// Opportunities is set, depending on the operation.
type Outcome struct {
	Title string

	// Found is the number of candidates discovered before selection.
	Found  int
	Result *clean.RunResult

	Analysis      *analyze.Analysis
	Opportunities []analyze.Opportunity
}

// Run executes op below root. On cancellation it returns what was
// collected together with ctx's error.
func (e *Engine) Run(ctx context.Context, root string, op Operation, opts Options) (Outcome, error) {
	out := Outcome{Title: op.Title()}

	switch o := op.(type) {
	case Analyze:
		a, err := analyze.Analyze(ctx, root, analyze.Options{Depth: o.Depth, MinSize: opts.AnalyzeMinSize})
		out.Analysis = &a
		return out, err
	case Discover:
		ops, err := analyze.Discover(ctx, root)
		out.Opportunities = ops
		return out, err
	}

	res, found, err := e.Clean(ctx, root, op, opts)
	out.Found = found
	out.Result = &res
	return out, err
}

// Candidates resolves op and runs its discoverer through the filter.
func (e *Engine) Candidates(ctx context.Context, root string, op Operation, opts Options) ([]scan.Candidate, error) {
	resolved, err := resolve(op)
	if err != nil {
		return nil, err
	}

	f, err := filter.New(filter.Spec{
		ExcludePatterns: opts.Exclude,
		MinAgeDays:      opts.OlderThanDays,
		MinSizeBytes:    opts.MinSize,
	}, e.sizer.Size)
	if err != nil {
		return nil, err
	}

	switch o := resolved.(type) {
	case NodeModules:
		return scan.NodeModules(ctx, root, f)
	case Subdirs:
		return scan.Subdirs(ctx, root, f)
	case Pattern:
		return scan.Patterns(ctx, root, o.Patterns, f)
	case EmptyDirs:
		return scan.EmptyDirs(ctx, root, f)
	}
	return nil, fmt.Errorf("%s does not delete anything", op.Title())
}

// Clean discovers, filters and deletes. It returns the batch result and the
// number of candidates found before selection.
func (e *Engine) Clean(ctx context.Context, root string, op Operation, opts Options) (clean.RunResult, int, error) {
	if opts.Trash && !e.trash.Available() && !opts.DryRun {
		log.Warn().Msg("trash is not available on this system, continuing with permanent deletion")
	}

	cands, err := e.Candidates(ctx, root, op, opts)
	found := len(cands)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return clean.RunResult{Canceled: true}, found, err
		}
		return clean.RunResult{}, found, err
	}
	log.Info().Str("root", root).Str("operation", op.Title()).Int("candidates", found).Msg("discovery finished")

	if opts.Select != nil && len(cands) > 0 {
		for i := range cands {
			if cands[i].Size < 0 {
				if size, err := e.sizer.Size(cands[i].Path); err == nil {
					cands[i].Size = size
				}
			}
		}
		cands, err = opts.Select(ctx, cands)
		if err != nil {
			return clean.RunResult{}, found, fmt.Errorf("select candidates: %w", err)
		}
	}

	res := e.runner.Run(ctx, cands, clean.Options{
		DryRun:      opts.DryRun,
		UseTrash:    opts.Trash,
		Interactive: opts.Interactive,
		Parallel:    opts.Parallel,
		Workers:     e.workers,
	})
	if res.Canceled {
		if err := ctx.Err(); err != nil {
			return res, found, err
		}
		// Aborted at a confirmation prompt.
		return res, found, context.Canceled
	}
	return res, found, nil
}
