package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDelay coalesces the burst of events an editor save produces.
const reloadDelay = 100 * time.Millisecond

// Watch reloads the configuration at path whenever it is written or replaced and passes
// the result to onChange, which runs on the watcher goroutine. A failed reload passes a
// nil config and the error; the caller keeps its previous configuration.
//
// The containing directory is watched rather than the file, so saves that replace the
// file through a rename are seen too. Watch blocks until ctx is done.
//
// Parameters:
//   - ctx: stops the watcher when cancelled
//   - path: the configuration file
//   - onChange: receives each reload result
//
// Returns:
//   - error: a watcher setup error, or nil once ctx is done
func Watch(ctx context.Context, path string, onChange func(*Config, error)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("config: watch %s: %w", path, err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: watch %s: %w", path, err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("config: watch %s: %w", path, err)
	}

	timer := time.NewTimer(reloadDelay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			timer.Reset(reloadDelay)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			onChange(nil, fmt.Errorf("config: watch %s: %w", path, err))
		case <-timer.C:
			onChange(Load(abs))
		}
	}
}
