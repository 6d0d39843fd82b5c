// Command rectlights renders a floor, spinning cubes and rectangular area lights with
// linearly transformed cosines.
//
// Usage:
//
//	rectlights [-config scene.yaml] [-watch] [-headless -frames N] [-log level]
//
// Keys: W/S move, A/D strafe, R/F rise and sink, I/K pitch, J/L yaw, Shift boosts,
// Space pauses the animation and Esc quits.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/Carmen-Shannon/oxy-rectlights/common"
	"github.com/Carmen-Shannon/oxy-rectlights/engine"
	"github.com/Carmen-Shannon/oxy-rectlights/engine/camera"
	"github.com/Carmen-Shannon/oxy-rectlights/engine/config"
	"github.com/Carmen-Shannon/oxy-rectlights/engine/frame"
	"github.com/Carmen-Shannon/oxy-rectlights/engine/ltc"
	"github.com/Carmen-Shannon/oxy-rectlights/engine/renderer"
	"github.com/Carmen-Shannon/oxy-rectlights/engine/window"
)

type options struct {
	configPath string
	watch      bool
	headless   bool
	frames     int
	logLevel   string
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "scene configuration file (.yaml, .yml or .toml)")
	flag.BoolVar(&opts.watch, "watch", false, "reload lights and scene when the configuration file changes")
	flag.BoolVar(&opts.headless, "headless", false, "render without a window or GPU")
	flag.IntVar(&opts.frames, "frames", 0, "stop after this many frames (0 runs until closed)")
	flag.StringVar(&opts.logLevel, "log", "", "log level: debug, info, warn or error")
	flag.Parse()

	if err := run(opts); err != nil {
		common.Logger().Error("rectlights failed", "error", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	// ── Configuration + logging ─────────────────────────────────────────
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			setupLogger(cfg.Log.Level)
			return err
		}
		cfg = loaded
	}
	logger := setupLogger(common.Coalesce(opts.logLevel, cfg.Log.Level))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// ── Backend ─────────────────────────────────────────────────────────
	var (
		backend renderer.Backend
		win     window.Window
		gpu     *renderer.WGPUBackend
		aspect  = float32(cfg.Window.Width) / float32(cfg.Window.Height)
	)
	if opts.headless {
		backend = renderer.NewRecordingBackend(renderer.WithHistory(64))
		if opts.frames == 0 {
			opts.frames = 600
		}
	} else {
		var err error
		win, err = window.NewWindow(
			window.WithTitle(cfg.Window.Title),
			window.WithSize(cfg.Window.Width, cfg.Window.Height),
		)
		if err != nil {
			return err
		}
		gpu, err = renderer.NewWGPUBackend(win.SurfaceDescriptor(), win.Width(), win.Height(),
			renderer.WithPresentMode(cfg.PresentMode()),
			renderer.WithMSAA(renderer.ParseMSAA(cfg.Window.MSAA)),
			renderer.WithForceSoftwareRenderer(cfg.Window.Software),
			renderer.WithLogger(logger),
		)
		if err != nil {
			_ = win.Close()
			if errors.Is(err, renderer.ErrDeviceCreation) {
				return fmt.Errorf("no usable GPU device: %w", err)
			}
			return err
		}
		defer gpu.Release()
		backend = gpu
		aspect = float32(win.Width()) / float32(max(win.Height(), 1))
	}

	// ── LTC tables ──────────────────────────────────────────────────────
	tables, err := ltc.LoadSet(ctx, cfg.LTC, ltc.WithLogger(logger))
	if err != nil {
		return err
	}
	if gpu != nil {
		if err := gpu.UploadLookupTables(tables); err != nil {
			return err
		}
	}

	// ── Frame context + engine ──────────────────────────────────────────
	frameCtx, err := frame.NewContext(backend,
		frame.WithRegistry(registry(cfg)),
		frame.WithCamera(camera.NewCamera(cfg.CameraOptions(aspect)...)),
		frame.WithClearColor(cfg.ClearColor()),
		frame.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	engineOpts := []engine.EngineBuilderOption{
		engine.WithController(camera.NewCameraController(cfg.ControllerOptions()...)),
		engine.WithTickRate(float64(cfg.Engine.TickRate)),
		engine.WithRenderFrameLimit(float64(cfg.Engine.FrameLimit)),
		engine.WithProfiling(cfg.Engine.Profiling),
		engine.WithMaxFrames(opts.frames),
		engine.WithLogger(logger),
	}
	if win != nil {
		engineOpts = append(engineOpts, engine.WithWindow(win))
	}
	eng, err := engine.NewEngine(frameCtx, engineOpts...)
	if err != nil {
		return err
	}

	// ── Scene ───────────────────────────────────────────────────────────
	d := newDemo(cfg)
	eng.SetUpdateCallback(func(float32) {
		d.update(frameCtx.Registry(), eng.Controller())
	})
	eng.SetDrawCallback(d.draw)

	if opts.watch && opts.configPath != "" {
		go watch(ctx, opts.configPath, eng, d, logger)
	}
	go func() {
		<-ctx.Done()
		eng.Quit()
	}()

	logger.Info("rectlights starting",
		"headless", opts.headless,
		"lights", frameCtx.Registry().Counts(),
		"cubes", len(cfg.Scene.Cubes),
	)
	if err := eng.Run(); err != nil {
		return err
	}

	stats := frameCtx.Stats()
	logger.Info("rectlights stopped", "frames_drawn", stats.FramesDrawn, "frames_skipped", stats.FramesSkipped)
	return nil
}

// watch reloads the configuration on change and swaps the lights and scene on the render
// goroutine. Window and engine settings need a restart.
func watch(ctx context.Context, path string, eng engine.Engine, d *demo, logger *slog.Logger) {
	err := config.Watch(ctx, path, func(cfg *config.Config, err error) {
		if err != nil {
			logger.Warn("config reload failed, keeping previous scene", "error", err)
			return
		}
		reg := registry(cfg)
		ok := eng.Do(func() {
			eng.Frame().SetRegistry(reg)
			eng.Frame().SetClearColor(cfg.ClearColor())
			d.load(cfg)
		})
		if ok {
			logger.Info("config reloaded", "path", path)
		}
	})
	if err != nil {
		logger.Warn("config watch stopped", "error", err)
	}
}

func setupLogger(level string) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: common.ParseLogLevel(level),
	}))
	common.SetLogger(logger)
	return logger
}
