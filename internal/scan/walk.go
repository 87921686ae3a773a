package scan

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/karrick/godirwalk"
	"github.com/rs/zerolog/log"

	"github.com/lakshaymaurya-felt/dirclean/internal/core"
)

// ErrNotDirectory is returned when the scan root is missing or is a file.
var ErrNotDirectory = errors.New("not a directory")

// ResolveRoot normalizes root and checks that it is a directory. A root that
// is itself a symbolic link is resolved so the walk can start.
func ResolveRoot(root string) (string, error) {
	root = core.NormalizePath(root)

	info, err := os.Lstat(core.LongPath(root))
	if err != nil {
		return "", fmt.Errorf("%s: %w", root, ErrNotDirectory)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		resolved, err := filepath.EvalSymlinks(root)
		if err != nil {
			return "", fmt.Errorf("%s: %w", root, ErrNotDirectory)
		}
		root = core.NormalizePath(resolved)
		if info, err = os.Stat(root); err != nil {
			return "", fmt.Errorf("%s: %w", root, ErrNotDirectory)
		}
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s: %w", root, ErrNotDirectory)
	}
	return root, nil
}

// Walk runs one depth-first walk in name order. pre runs parent before
// children and may return filepath.SkipDir to prune a directory; post runs
// after all of a directory's children. Listing failures are logged and the
// walk continues with siblings. Cancelling ctx halts the walk.
func Walk(ctx context.Context, root string, pre, post godirwalk.WalkFunc) error {
	opts := &godirwalk.Options{
		Callback: func(osPathname string, de *godirwalk.Dirent) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if pre == nil {
				return nil
			}
			return pre(osPathname, de)
		},
		PostChildrenCallback: post,
		ErrorCallback: func(osPathname string, err error) godirwalk.ErrorAction {
			if ctx.Err() != nil {
				return godirwalk.Halt
			}
			log.Warn().Str("path", osPathname).Err(err).Msg("cannot list directory, skipping")
			return godirwalk.SkipNode
		},
	}

	if err := godirwalk.Walk(root, opts); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	return nil
}
