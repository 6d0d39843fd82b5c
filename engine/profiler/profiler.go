package profiler

import (
	"log/slog"
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-rectlights/common"
	"github.com/Carmen-Shannon/oxy-rectlights/engine/frame"
)

// Snapshot is one interval's worth of statistics.
type Snapshot struct {
	FPS         float64
	HeapMB      float64
	AllocRateMB float64 // MB allocated per second over the interval
	SysMB       float64
	GCCount     uint32
	LastPauseUs uint64
	MaxPauseUs  uint64

	// Frame counters over the interval, present when a stats source is set.
	FramesDrawn   uint64
	FramesSkipped uint64
	Objects       uint32
}

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	stats     func() frame.Stats
	lastStats frame.Stats
	logger    *slog.Logger
}

// ProfilerOption is a functional option for configuring a Profiler.
type ProfilerOption func(*Profiler)

// WithInterval sets how often statistics are reported. Non-positive values keep the default.
func WithInterval(d time.Duration) ProfilerOption {
	return func(p *Profiler) {
		if d > 0 {
			p.updateInterval = d
		}
	}
}

// WithFrameStats sets the source of drawn/skipped frame counters, usually
// (*frame.Context).Stats.
//
// Parameters:
//   - source: returns the current counters
//
// Returns:
//   - ProfilerOption: option function to apply
func WithFrameStats(source func() frame.Stats) ProfilerOption {
	return func(p *Profiler) {
		p.stats = source
	}
}

// WithLogger sets the logger reports are written to.
func WithLogger(logger *slog.Logger) ProfilerOption {
	return func(p *Profiler) {
		p.logger = logger
	}
}

// NewProfiler creates a new Profiler. The update interval defaults to 1 second.
//
// Parameters:
//   - opts: optional configuration functions
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(opts ...ProfilerOption) *Profiler {
	p := &Profiler{
		lastTime:       time.Now(),
		updateInterval: time.Second,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.stats != nil {
		p.lastStats = p.stats()
	}
	return p
}

// Tick should be called once per frame to track frame timing.
// When the update interval has elapsed it logs FPS, heap usage, allocation rate, GC
// count and pause times, process memory and, with a stats source, the frames drawn and
// skipped during the interval.
//
// Returns:
//   - Snapshot: the interval's statistics, zero when nothing was reported
//   - bool: true if stats were reported this tick
func (p *Profiler) Tick() (Snapshot, bool) {
	p.frameCount++
	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return Snapshot{}, false
	}

	runtime.ReadMemStats(&p.memStats)
	// Alloc is live heap, TotalAlloc only grows and tracks churn, Sys is the OS footprint.
	s := Snapshot{
		FPS:         float64(p.frameCount) / elapsed.Seconds(),
		HeapMB:      float64(p.memStats.Alloc) / 1024 / 1024,
		SysMB:       float64(p.memStats.Sys) / 1024 / 1024,
		AllocRateMB: float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds(),
		GCCount:     p.memStats.NumGC,
	}

	if gcCount := p.memStats.NumGC; gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses.
		s.LastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000
		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			s.MaxPauseUs = max(s.MaxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	attrs := []any{
		"fps", s.FPS,
		"heap_mb", s.HeapMB,
		"alloc_rate_mb_s", s.AllocRateMB,
		"gc", s.GCCount,
		"gc_last_us", s.LastPauseUs,
		"gc_max_us", s.MaxPauseUs,
		"sys_mb", s.SysMB,
	}
	if p.stats != nil {
		cur := p.stats()
		s.FramesDrawn = cur.FramesDrawn - p.lastStats.FramesDrawn
		s.FramesSkipped = cur.FramesSkipped - p.lastStats.FramesSkipped
		s.Objects = cur.Objects
		p.lastStats = cur
		attrs = append(attrs, "drawn", s.FramesDrawn, "skipped", s.FramesSkipped, "objects", s.Objects)
	}
	common.LoggerOr(p.logger).Info("profiler", attrs...)

	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = p.memStats.NumGC
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return s, true
}
