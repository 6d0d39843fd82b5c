package ltc

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-rectlights/common"
)

// LoaderOption is a functional option for LoadSet.
type LoaderOption func(l *loader)

type loader struct {
	workers int
	logger  *slog.Logger
	open    func(name string) (fs.File, error)
	newPool func(workers, queue int) worker.DynamicWorkerPool
}

func newWorkerPool(workers, queue int) worker.DynamicWorkerPool {
	return worker.NewDynamicWorkerPool(workers, queue, 1*time.Second)
}

// WithWorkers sets how many pool workers decode tables concurrently. Defaults to 3.
//
// Parameters:
//   - n: worker count (minimum 1)
//
// Returns:
//   - LoaderOption: option function to apply
func WithWorkers(n int) LoaderOption {
	return func(l *loader) {
		if n < 1 {
			n = 1
		}
		l.workers = n
	}
}

// WithLogger sets the logger used for fallback warnings.
//
// Parameters:
//   - logger: the logger to use
//
// Returns:
//   - LoaderOption: option function to apply
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *loader) {
		l.logger = logger
	}
}

// WithFS reads the tables from fsys instead of the operating system.
//
// Parameters:
//   - fsys: the file system to read from
//
// Returns:
//   - LoaderOption: option function to apply
func WithFS(fsys fs.FS) LoaderOption {
	return func(l *loader) {
		l.open = fsys.Open
	}
}

// LoadSet decodes the three lookup tables concurrently.
//
// A table whose file does not exist is replaced by Neutral and a warning is logged.
// Any other failure (unreadable or malformed file) is returned, joined with the failures
// of the other tables.
//
// Parameters:
//   - ctx: cancels the wait for outstanding decodes
//   - paths: table file locations
//   - opts: optional configuration functions
//
// Returns:
//   - Set: the loaded tables, never nil members when err is nil
//   - error: decode failures or ctx.Err()
func LoadSet(ctx context.Context, paths Paths, opts ...LoaderOption) (Set, error) {
	l := &loader{
		workers: 3,
		open:    func(name string) (fs.File, error) { return os.Open(name) },
		newPool: newWorkerPool,
	}
	for _, opt := range opts {
		opt(l)
	}
	log := common.LoggerOr(l.logger)

	type job struct {
		name string
		path string
		dst  **Table
	}
	var set Set
	jobs := []job{
		{"matrix", paths.Matrix, &set.Matrix},
		{"amplitude", paths.Amplitude, &set.Amplitude},
		{"filtered", paths.Filtered, &set.Filtered},
	}

	pool := l.newPool(l.workers, len(jobs))

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for id, j := range jobs {
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				t, err := l.load(j.name, j.path)
				if errors.Is(err, fs.ErrNotExist) {
					log.Warn("ltc table missing, using neutral table", "table", j.name, "path", j.path)
					t, err = Neutral(), nil
				}
				if err != nil {
					mu.Lock()
					errs = append(errs, err)
					mu.Unlock()
					return nil, err
				}
				t.Name = j.name
				*j.dst = t
				return t, nil
			},
		})
	}

	// The workers stay parked on the queue after their last task until the pool stops.
	done := make(chan struct{})
	go func() {
		wg.Wait()
		pool.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return Set{}, ctx.Err()
	}

	if err := errors.Join(errs...); err != nil {
		return Set{}, err
	}
	log.Debug("ltc tables loaded",
		"matrix", fmt.Sprintf("%dx%d", set.Matrix.Width, set.Matrix.Height),
		"amplitude", fmt.Sprintf("%dx%d", set.Amplitude.Width, set.Amplitude.Height),
		"filtered", fmt.Sprintf("%dx%d", set.Filtered.Width, set.Filtered.Height),
	)
	return set, nil
}

func (l *loader) load(name, path string) (*Table, error) {
	if path == "" {
		return nil, fs.ErrNotExist
	}
	f, err := l.open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := DecodeDDS(f)
	if err != nil {
		return nil, fmt.Errorf("ltc %s table %q: %w", name, path, err)
	}
	return t, nil
}
