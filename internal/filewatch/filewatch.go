// Package filewatch ties a context's lifetime to a set of files.
package filewatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// ErrChanged is the cancel cause of a context returned by UntilChanged when
// a watched file was touched.
var ErrChanged = errors.New("watched file changed")

// UntilChanged returns a context which is cancelled once any of paths is
// written, created, removed or renamed. Permission changes are ignored.
// context.Cause of the returned context wraps ErrChanged in that case.
//
// On error the returned context and cancel func are nil.
func UntilChanged(ctx context.Context, paths ...string) (context.Context, context.CancelFunc, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}

	for _, p := range paths {
		if err := w.Add(p); err != nil {
			w.Close()
			return nil, nil, fmt.Errorf("watch %s: %w", p, err)
		}
	}

	cctx, cancel := context.WithCancelCause(ctx)

	go func() {
		defer w.Close()

		for {
			select {
			case <-cctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if event.Op == fsnotify.Chmod {
					continue
				}
				cancel(fmt.Errorf("%w: %s (%s)", ErrChanged, event.Name, event.Op))
				return
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				cancel(err)
				return
			}
		}
	}()

	return cctx, func() { cancel(nil) }, nil
}
