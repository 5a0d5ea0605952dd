package finfo

import (
	"context"
	"errors"
	"fmt"

	"github.com/gobeaver/finfo/jsonw"
	"go.uber.org/zap"
)

// Watch writes a report for paths, then writes a fresh report each time the
// inspector signals a change under paths whose name matches filter. Each
// report is flushed as soon as it is complete. Watch returns nil once ctx is
// cancelled.
func (d *Describer) Watch(ctx context.Context, w *jsonw.Writer, paths []string, t *Table, filter string) error {
	watcher, ok := d.fs.(CanWatch)
	if !ok {
		return fmt.Errorf("%w: inspector cannot watch for changes", ErrNotSupported)
	}

	for {
		// Arm the token before describing so no change goes unnoticed.
		token, err := watcher.Watch(ctx, paths, filter)
		if err != nil {
			return err
		}

		if err := d.Describe(ctx, w, paths, t); err != nil {
			return err
		}
		if err := w.Flush(); err != nil {
			return err
		}

		if err := WaitForChange(ctx, token); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
		d.opts.Logger.Debug("change detected", zap.Strings("paths", paths))
	}
}
