package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-rectlights/common"
	"github.com/Carmen-Shannon/oxy-rectlights/engine/camera"
	"github.com/Carmen-Shannon/oxy-rectlights/engine/frame"
	"github.com/Carmen-Shannon/oxy-rectlights/engine/profiler"
	"github.com/Carmen-Shannon/oxy-rectlights/engine/window"
)

// resizer is implemented by backends whose targets follow the window size.
type resizer interface {
	Resize(width, height int) error
}

// engine implements the Engine interface.
// The window message loop runs on the goroutine that called Run; updates, frames and
// presents run on a single render goroutine.
type engine struct {
	wg sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once
	tasks       chan func()

	window     window.Window
	frame      *frame.Context
	controller camera.CameraController
	logger     *slog.Logger

	profiler *profiler.Profiler

	tickRate         time.Duration
	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	maxFrames        int           // stop after this many rendered frames; 0 = unbounded

	updateCallback func(dt float32)
	drawCallback   func(f *frame.Frame) error

	mu               sync.Mutex
	frames           int
	profilingEnabled bool
	err              error
}

// Engine runs the frame loop of a frame.Context, optionally inside a window.
type Engine interface {
	// Window returns the window, or nil for a headless engine.
	Window() window.Window

	// Frame returns the frame context being rendered.
	Frame() *frame.Context

	// Controller returns the keyboard camera controller fed by the window's key events.
	Controller() camera.CameraController

	// SetUpdateCallback registers the function called once per fixed tick on the render
	// goroutine, before the controller moves the camera.
	//
	// Parameters:
	//   - callback: receives the tick length in seconds
	SetUpdateCallback(callback func(dt float32))

	// SetDrawCallback registers the function that emits each frame's scene geometry.
	//
	// Parameters:
	//   - callback: passed to frame.Context.Render
	SetDrawCallback(callback func(f *frame.Frame) error)

	// Do queues fn to run on the render goroutine before the next update. Use it to change
	// render-goroutine state, such as the light registry, from other goroutines.
	// Returns false if the queue is full or the engine has quit.
	Do(fn func()) bool

	// SetTickRate sets the update rate in ticks per second.
	// Must be called before Run. Values <= 0 select 60.
	SetTickRate(fps float64)

	// SetRenderFrameLimit caps the render rate in frames per second. Must be called before
	// Run. 0 uncaps the loop.
	SetRenderFrameLimit(fps float64)

	// EnableProfiler enables periodic statistics logging. Safe to call while Run is active.
	EnableProfiler()

	// DisableProfiler disables periodic statistics logging.
	DisableProfiler()

	// Frames returns the number of frames rendered so far, skipped frames included.
	Frames() int

	// Run starts the render goroutine and blocks until the window closes, Quit is called,
	// or the frame limit set by WithMaxFrames is reached. Without a window the calling
	// goroutine just waits for the render goroutine.
	//
	// Returns:
	//   - error: a recovered render-goroutine panic, or nil
	Run() error

	// Quit signals the engine to stop. Safe to call multiple times and from any goroutine.
	Quit()
}

// NewEngine creates a new Engine for the given frame context.
//
// Parameters:
//   - ctx: the frame context to render
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
//   - error: an error if ctx is nil
func NewEngine(ctx *frame.Context, options ...EngineBuilderOption) (Engine, error) {
	if ctx == nil {
		return nil, errors.New("engine: nil frame context")
	}
	e := &engine{
		quitChannel: make(chan struct{}),
		tasks:       make(chan func(), 16),
		frame:       ctx,
		tickRate:    time.Second / 60,
	}
	for _, opt := range options {
		opt(e)
	}
	if e.controller == nil {
		e.controller = camera.NewCameraController()
	}
	e.profiler = profiler.NewProfiler(
		profiler.WithFrameStats(ctx.Stats),
		profiler.WithLogger(e.logger),
	)

	if e.window != nil {
		e.window.SetKeyDownCallback(e.controller.KeyDown)
		e.window.SetKeyUpCallback(e.controller.KeyUp)
		e.window.SetResizeCallback(e.resize)
		e.window.SetUpdateCallback(func() {
			select {
			case <-e.quitChannel:
				_ = e.window.Close()
			default:
			}
		})
		if h := e.window.Height(); h > 0 {
			ctx.Camera().SetAspect(float32(e.window.Width()) / float32(h))
		}
	}
	return e, nil
}

func (e *engine) Window() window.Window { return e.window }

func (e *engine) Frame() *frame.Context { return e.frame }

func (e *engine) Controller() camera.CameraController { return e.controller }

func (e *engine) SetUpdateCallback(callback func(dt float32)) {
	e.updateCallback = callback
}

func (e *engine) SetDrawCallback(callback func(f *frame.Frame) error) {
	e.drawCallback = callback
}

func (e *engine) Do(fn func()) bool {
	select {
	case <-e.quitChannel:
		return false
	default:
	}
	select {
	case e.tasks <- fn:
		return true
	default:
		return false
	}
}

func (e *engine) SetTickRate(fps float64) {
	e.tickRate = tickDuration(fps, 60)
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = tickDuration(fps, 0)
}

func (e *engine) EnableProfiler() {
	e.setProfiling(true)
}

func (e *engine) DisableProfiler() {
	e.setProfiling(false)
}

func (e *engine) setProfiling(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = enabled
}

func (e *engine) Frames() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frames
}

func (e *engine) Run() error {
	e.wg.Add(1)
	go e.handleRender()

	if e.window != nil {
		e.window.ProcessMessages()
		e.signalQuit()
		if e.window.IsRunning() {
			_ = e.window.Close()
		}
	}
	e.wg.Wait()

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

// Quit signals all engine goroutines to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

// resize runs on the window goroutine. Zero sizes come from minimized windows.
func (e *engine) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if r, ok := e.frame.Backend().(resizer); ok {
		if err := r.Resize(width, height); err != nil {
			common.LoggerOr(e.logger).Error("resize failed", "width", width, "height", height, "error", err)
		}
	}
	e.frame.Camera().SetAspect(float32(width) / float32(height))
}

// handleRender runs fixed-rate updates and one frame per iteration until quit.
// A panic is recovered, logged with its stack and reported by Run.
func (e *engine) handleRender() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			common.LoggerOr(e.logger).Error("render goroutine recovered from panic",
				"panic", r,
				"stack", string(debug.Stack()),
			)
			e.mu.Lock()
			e.err = fmt.Errorf("engine: render panic: %v", r)
			e.mu.Unlock()
			e.signalQuit()
		}
	}()

	logger := common.LoggerOr(e.logger)
	step := float32(e.tickRate.Seconds())
	last := time.Now()
	var acc time.Duration

	for {
		select {
		case <-e.quitChannel:
			return
		default:
		}

		start := time.Now()
		acc += start.Sub(last)
		last = start

		e.drainTasks()
		// Bound the catch-up after a stall so a long pause does not replay hundreds of ticks.
		acc = min(acc, 8*e.tickRate)
		for acc >= e.tickRate {
			if e.updateCallback != nil {
				e.updateCallback(step)
			}
			e.controller.Update(e.frame.Camera(), step)
			acc -= e.tickRate
		}

		if err := e.frame.Render(e.drawCallback); err != nil {
			if errors.Is(err, frame.ErrFrameSkipped) {
				logger.Debug("frame skipped", "error", err)
			} else {
				logger.Error("render failed", "error", err)
			}
		}
		if err := e.frame.Present(); err != nil {
			logger.Error("present failed", "error", err)
		}

		e.mu.Lock()
		e.frames++
		done := e.maxFrames > 0 && e.frames >= e.maxFrames
		profiling := e.profilingEnabled
		e.mu.Unlock()
		if done {
			e.signalQuit()
			return
		}

		if profiling {
			e.profiler.Tick()
		}

		if e.renderFrameLimit > 0 {
			if remaining := e.renderFrameLimit - time.Since(start); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	}
}

func (e *engine) drainTasks() {
	for {
		select {
		case fn := <-e.tasks:
			fn()
		default:
			return
		}
	}
}

// tickDuration converts a rate to a period, using fallback for non-positive rates.
// A zero fallback yields a zero period.
func tickDuration(fps, fallback float64) time.Duration {
	if fps <= 0 {
		fps = fallback
	}
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
