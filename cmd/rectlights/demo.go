package main

import (
	"github.com/Carmen-Shannon/oxy-rectlights/common"
	"github.com/Carmen-Shannon/oxy-rectlights/engine/camera"
	"github.com/Carmen-Shannon/oxy-rectlights/engine/config"
	"github.com/Carmen-Shannon/oxy-rectlights/engine/frame"
	"github.com/Carmen-Shannon/oxy-rectlights/engine/light"
	"github.com/Carmen-Shannon/oxy-rectlights/engine/scene"
)

// cube is one animated cube: its configuration plus the accumulated rotation.
type cube struct {
	cfg      config.CubeConfig
	rotation [3]float32
}

// demo owns the animated scene state. It lives on the render goroutine.
type demo struct {
	floor     bool
	cubes     []cube
	rectSpins [][2]float32

	paused    bool
	pauseHeld bool
}

func newDemo(cfg *config.Config) *demo {
	d := &demo{}
	d.load(cfg)
	return d
}

// load replaces the scene from cfg, restarting every cube at its configured rotation.
func (d *demo) load(cfg *config.Config) {
	d.floor = !cfg.Scene.NoFloor
	d.cubes = d.cubes[:0]
	for _, c := range cfg.Scene.Cubes {
		d.cubes = append(d.cubes, cube{cfg: c, rotation: c.Rotation})
	}
	d.rectSpins = d.rectSpins[:0]
	for _, r := range cfg.Lights.Rect {
		d.rectSpins = append(d.rectSpins, r.Spin)
	}
}

// registry builds a light registry for cfg.
func registry(cfg *config.Config) light.Registry {
	reg := light.NewRegistry()
	config.Apply(cfg, reg)
	return reg
}

// update advances the animation by one tick. Space toggles the pause.
func (d *demo) update(reg light.Registry, ctrl camera.CameraController) {
	held := ctrl.Pressed(common.KeySpace)
	if held && !d.pauseHeld {
		d.paused = !d.paused
	}
	d.pauseHeld = held
	if d.paused {
		return
	}

	for i, spin := range d.rectSpins {
		rl, ok := reg.RectLight(i)
		if !ok {
			break
		}
		rl.RotationY += spin[0]
		rl.RotationZ += spin[1]
	}
	for i := range d.cubes {
		c := &d.cubes[i]
		for k := range c.rotation {
			c.rotation[k] += c.cfg.Spin[k]
		}
	}
}

// draw emits the floor and the cubes.
func (d *demo) draw(f *frame.Frame) error {
	if d.floor {
		if _, err := f.Floor(common.Identity4()); err != nil {
			return err
		}
	}
	for _, c := range d.cubes {
		radius := scene.CubeRadius * max(c.cfg.Scale[0], c.cfg.Scale[1], c.cfg.Scale[2])
		if !f.InView(c.cfg.Position, radius) {
			continue
		}
		if _, err := f.Cube(c.cfg.Model(c.rotation)); err != nil {
			return err
		}
	}
	return nil
}
