// Package clean removes candidate directories and aggregates the outcomes.
package clean

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/lakshaymaurya-felt/dirclean/internal/core"
	"github.com/lakshaymaurya-felt/dirclean/internal/scan"
)

// ErrDeclined is the skip reason when confirmation is refused.
var ErrDeclined = errors.New("declined by user")

// ErrLink is the failure reason for a candidate that is a symbolic link or
// junction. The link target is never touched.
var ErrLink = errors.New("refusing to delete a link")

// errNoConfirmer is the skip reason for an interactive run without a
// Confirmer. Nothing is deleted without an explicit yes.
var errNoConfirmer = errors.New("no confirmer configured")

// Mode selects how one deletion is carried out.
type Mode struct {
	DryRun      bool
	UseTrash    bool
	Interactive bool
}

// Deleter performs one deletion. It is safe for concurrent use as long as
// its Confirmer is.
type Deleter struct {
	sizer   *core.Sizer
	trash   TrashCapability
	confirm Confirmer
	guard   Guard
}

// NewDeleter wires the collaborators. A nil sizer gets a fresh cache; a nil
// confirmer makes interactive deletions skip.
func NewDeleter(sizer *core.Sizer, trash TrashCapability, confirm Confirmer, guard Guard) *Deleter {
	if sizer == nil {
		sizer = core.NewSizer(0)
	}
	return &Deleter{sizer: sizer, trash: trash, confirm: confirm, guard: guard}
}

// Delete handles one candidate and returns its outcome. Failures are
// recorded on the outcome rather than returned.
func (d *Deleter) Delete(ctx context.Context, c scan.Candidate, mode Mode) OutcomeRecord {
	rec := OutcomeRecord{Path: core.NormalizePath(c.Path), Category: c.Category}

	info, err := os.Lstat(core.LongPath(rec.Path))
	if err != nil {
		return d.fail(rec, fmt.Errorf("path not found: %w", err))
	}
	if core.IsLinkLike(rec.Path) {
		return d.fail(rec, fmt.Errorf("%s: %w", rec.Path, ErrLink))
	}
	if !info.IsDir() {
		return d.fail(rec, fmt.Errorf("%s: %w", rec.Path, scan.ErrNotDirectory))
	}
	if err := d.guard.Check(rec.Path); err != nil {
		return d.fail(rec, err)
	}

	size, err := d.sizer.Size(rec.Path)
	if err != nil {
		return d.fail(rec, fmt.Errorf("compute size: %w", err))
	}

	if mode.Interactive {
		if err := d.ask(ctx, rec.Path, size); err != nil {
			return d.skip(rec, err)
		}
	}

	if mode.DryRun {
		rec.Status = StatusWouldDelete
		rec.Bytes = size
		log.Info().
			Str("path", rec.Path).
			Str("size", core.FormatSize(size)).
			Str("action", "would delete").
			Msg("dry run")
		return rec
	}

	if mode.UseTrash && d.trash.Available() {
		err = d.trash.Put(rec.Path)
		rec.Trashed = err == nil
	} else {
		err = os.RemoveAll(core.LongPath(rec.Path))
	}
	if err != nil {
		return d.fail(rec, err)
	}
	d.sizer.Forget(rec.Path)

	rec.Status = StatusDeleted
	rec.Bytes = size
	log.Info().
		Str("path", rec.Path).
		Str("size", core.FormatSize(size)).
		Str("action", rec.StatusText()).
		Msg("deleted")
	return rec
}

func (d *Deleter) ask(ctx context.Context, path string, size int64) error {
	if d.confirm == nil {
		return errNoConfirmer
	}
	yes, err := d.confirm.Confirm(ctx, ConfirmRequest{Path: path, Size: size})
	if err != nil {
		return fmt.Errorf("confirmation: %w", err)
	}
	if !yes {
		return ErrDeclined
	}
	return nil
}

func (d *Deleter) fail(rec OutcomeRecord, reason error) OutcomeRecord {
	rec.Status = StatusFailed
	rec.Bytes = 0
	rec.Reason = reason
	log.Error().Str("path", rec.Path).Err(reason).Msg("delete failed")
	return rec
}

func (d *Deleter) skip(rec OutcomeRecord, reason error) OutcomeRecord {
	rec.Status = StatusSkipped
	rec.Bytes = 0
	rec.Reason = reason
	log.Info().Str("path", rec.Path).Str("reason", reason.Error()).Msg("skipped")
	return rec
}
