// Package watch implements the file-watching loop of SPEC_FULL.md §4.9:
// re-run the pipeline whenever either input file changes, serialising
// runs with a mutex because the core "does not accept overlapping runs
// sharing state" (spec.md §5).
package watch

import (
	"context"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/everdiff/everdiff"
)

// Result is delivered to Handler after each run, successful or not.
type Result struct {
	Report *everdiff.Report
	Err    error
}

// Handler receives a Result after every re-run triggered by a write to
// leftPath or rightPath, including the initial run.
type Handler func(Result)

// Run watches leftPath and rightPath for writes, re-invoking
// everdiff.Run under cfg on every change and delivering the outcome to
// handle. It blocks until ctx is cancelled or a non-recoverable watcher
// error occurs.
func Run(ctx context.Context, leftPath, rightPath string, cfg everdiff.Config, handle Handler) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(leftPath); err != nil {
		return err
	}
	if err := watcher.Add(rightPath); err != nil {
		return err
	}

	var mu sync.Mutex
	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		rep, err := runOnce(leftPath, rightPath, cfg)
		handle(Result{Report: rep, Err: err})
	}

	trigger()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				trigger()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}

func runOnce(leftPath, rightPath string, cfg everdiff.Config) (*everdiff.Report, error) {
	leftBytes, err := os.ReadFile(leftPath)
	if err != nil {
		return nil, err
	}
	rightBytes, err := os.ReadFile(rightPath)
	if err != nil {
		return nil, err
	}
	return everdiff.Run(leftBytes, rightBytes, cfg)
}
