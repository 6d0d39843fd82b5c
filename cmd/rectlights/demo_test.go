package main

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-rectlights/common"
	"github.com/Carmen-Shannon/oxy-rectlights/engine/camera"
	"github.com/Carmen-Shannon/oxy-rectlights/engine/config"
	"github.com/Carmen-Shannon/oxy-rectlights/engine/frame"
	"github.com/Carmen-Shannon/oxy-rectlights/engine/renderer"
	"github.com/Carmen-Shannon/oxy-rectlights/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoAnimatesDefaultScene(t *testing.T) {
	cfg := config.Default()
	reg := registry(cfg)
	d := newDemo(cfg)
	ctrl := camera.NewCameraController()

	for range 100 {
		d.update(reg, ctrl)
	}

	rl, ok := reg.RectLight(0)
	require.True(t, ok)
	assert.InDelta(t, 0.1, rl.RotationY, 1e-4)
	assert.InDelta(t, 0.5, rl.RotationZ, 1e-6)

	require.Len(t, d.cubes, 1)
	assert.InDelta(t, 1.0, d.cubes[0].rotation[1], 1e-4)
}

func TestDemoPauseToggle(t *testing.T) {
	cfg := config.Default()
	reg := registry(cfg)
	d := newDemo(cfg)
	ctrl := camera.NewCameraController()

	ctrl.KeyDown(common.KeySpace)
	d.update(reg, ctrl)
	d.update(reg, ctrl)
	assert.True(t, d.paused, "holding space toggles once")
	ctrl.KeyUp(common.KeySpace)
	d.update(reg, ctrl)

	rl, _ := reg.RectLight(0)
	assert.Zero(t, rl.RotationY)

	ctrl.KeyDown(common.KeySpace)
	d.update(reg, ctrl)
	assert.False(t, d.paused)
	assert.NotZero(t, rl.RotationY)
}

func TestDemoFrame(t *testing.T) {
	cfg := config.Default()
	backend := renderer.NewRecordingBackend()
	ctx, err := frame.NewContext(backend, frame.WithRegistry(registry(cfg)))
	require.NoError(t, err)

	d := newDemo(cfg)
	require.NoError(t, ctx.Render(d.draw))

	// Proxy quad, floor and cube.
	assert.Len(t, backend.Vertices(), (4+4+24)*scene.VertexSize)
	assert.Equal(t, uint32(3), ctx.Stats().Objects)
}

func TestDemoReload(t *testing.T) {
	d := newDemo(config.Default())
	cfg := config.Default()
	cfg.Scene.NoFloor = true
	cfg.Scene.Cubes = append(cfg.Scene.Cubes, config.CubeConfig{Scale: [3]float32{1, 1, 1}})
	d.load(cfg)
	assert.False(t, d.floor)
	assert.Len(t, d.cubes, 2)
}

func TestDemoSkipsCubesOutOfView(t *testing.T) {
	cfg := config.Default()
	cfg.Scene.Cubes = append(cfg.Scene.Cubes, config.CubeConfig{
		Position: [3]float32{-4, 1, -40},
		Scale:    [3]float32{1, 1, 1},
	})
	backend := renderer.NewRecordingBackend()
	ctx, err := frame.NewContext(backend,
		frame.WithRegistry(registry(cfg)),
		frame.WithCamera(camera.NewCamera(cfg.CameraOptions(1)...)),
	)
	require.NoError(t, err)

	require.NoError(t, ctx.Render(newDemo(cfg).draw))
	// Proxy, floor and the default cube; the cube behind the camera takes no slot.
	assert.Equal(t, uint32(3), ctx.Stats().Objects)
	assert.Len(t, backend.Vertices(), (4+4+24)*scene.VertexSize)
}
