package profiler

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-rectlights/engine/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickWaitsForInterval(t *testing.T) {
	p := NewProfiler(WithInterval(time.Hour))
	for range 10 {
		_, ok := p.Tick()
		assert.False(t, ok)
	}
}

func TestTickReportsFrameDeltas(t *testing.T) {
	stats := frame.Stats{FramesDrawn: 5, FramesSkipped: 1}
	p := NewProfiler(
		WithInterval(time.Millisecond),
		WithFrameStats(func() frame.Stats { return stats }),
	)

	stats.FramesDrawn = 12
	stats.FramesSkipped = 2
	stats.Objects = 3
	time.Sleep(5 * time.Millisecond)

	s, ok := p.Tick()
	require.True(t, ok)
	assert.Greater(t, s.FPS, 0.0)
	assert.Equal(t, uint64(7), s.FramesDrawn)
	assert.Equal(t, uint64(1), s.FramesSkipped)
	assert.Equal(t, uint32(3), s.Objects)

	time.Sleep(5 * time.Millisecond)
	s, ok = p.Tick()
	require.True(t, ok)
	assert.Zero(t, s.FramesDrawn)
}
