// Package frame drives one rendered frame: it owns the per-frame vertex and index streams,
// routes emissions through the scene builder, packs both uniform blocks and issues the
// single indexed draw on a renderer.Backend.
//
// A Context replaces process-wide renderer state. Everything a frame needs is reachable
// from it and it is owned by one goroutine, normally the engine's render goroutine.
package frame

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-rectlights/common"
	"github.com/Carmen-Shannon/oxy-rectlights/engine/camera"
	"github.com/Carmen-Shannon/oxy-rectlights/engine/light"
	"github.com/Carmen-Shannon/oxy-rectlights/engine/renderer"
	"github.com/Carmen-Shannon/oxy-rectlights/engine/scene"
)

// ErrFrameSkipped is returned by Render when a per-frame upload failed. No draw was issued,
// the vertex and index streams were cleared and the next frame can proceed.
var ErrFrameSkipped = errors.New("frame: skipped")

// DefaultClearColor is the background used when no clear color is configured.
var DefaultClearColor = renderer.Color{R: 0.0, G: 0.2, B: 0.4, A: 1.0}

// Stats is a snapshot of frame counters.
type Stats struct {
	FramesDrawn   uint64
	FramesSkipped uint64

	// Shape of the most recently drawn frame.
	Objects  uint32
	Vertices int
	Indices  int
}

// Context holds the registry, scene builder, camera and backend for a sequence of frames.
// It is not safe for concurrent use except for Stats, which may be read from any goroutine.
type Context struct {
	backend  renderer.Backend
	registry light.Registry
	builder  scene.Builder
	camera   camera.Camera
	clear    renderer.Color
	logger   *slog.Logger

	vertices []scene.Vertex
	indices  []uint32

	drawn    atomic.Uint64
	skipped  atomic.Uint64
	objects  atomic.Uint32
	lastVert atomic.Int64
	lastIdx  atomic.Int64
}

// NewContext creates a frame context drawing through backend.
// Collaborators not supplied through options get fresh defaults: an empty light registry,
// a new scene builder and a camera with default projection.
//
// Parameters:
//   - backend: the backend receiving uploads and draws
//   - opts: optional configuration functions
//
// Returns:
//   - *Context: the new context
//   - error: an error if backend is nil
func NewContext(backend renderer.Backend, opts ...ContextOption) (*Context, error) {
	if backend == nil {
		return nil, errors.New("frame: nil backend")
	}
	c := &Context{
		backend: backend,
		clear:   DefaultClearColor,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.registry == nil {
		c.registry = light.NewRegistry(light.WithLogger(c.logger))
	}
	if c.builder == nil {
		c.builder = scene.NewBuilder(scene.WithLogger(c.logger))
	}
	if c.camera == nil {
		c.camera = camera.NewCamera()
	}
	return c, nil
}

// Registry returns the light registry.
func (c *Context) Registry() light.Registry { return c.registry }

// SetRegistry replaces the light registry, for example after a configuration reload.
// A nil registry is ignored.
func (c *Context) SetRegistry(r light.Registry) {
	if r != nil {
		c.registry = r
	}
}

// Builder returns the scene builder.
func (c *Context) Builder() scene.Builder { return c.builder }

// Camera returns the camera.
func (c *Context) Camera() camera.Camera { return c.camera }

// Backend returns the backend.
func (c *Context) Backend() renderer.Backend { return c.backend }

// ClearColor returns the background color.
func (c *Context) ClearColor() renderer.Color { return c.clear }

// SetClearColor sets the background color used from the next frame on.
func (c *Context) SetClearColor(color renderer.Color) { c.clear = color }

// Stats returns the frame counters.
//
// Returns:
//   - Stats: a snapshot of the counters
func (c *Context) Stats() Stats {
	return Stats{
		FramesDrawn:   c.drawn.Load(),
		FramesSkipped: c.skipped.Load(),
		Objects:       c.objects.Load(),
		Vertices:      int(c.lastVert.Load()),
		Indices:       int(c.lastIdx.Load()),
	}
}

// Render builds and draws one frame.
//
// The sequence is: clear the targets, emit one proxy quad per registered rect light, run
// draw to emit the scene, pack the camera into both uniform blocks, upload the vertex
// stream, the index stream and both uniform blocks, then issue one DrawIndexed over every
// index. The streams are cleared afterwards whatever the outcome.
//
// Transform slots are not reset here. Present resets them, so Render must be followed by
// Present before the next Render.
//
// Parameters:
//   - draw: emits the frame's geometry through the Frame handle, may be nil
//
// Returns:
//   - error: ErrFrameSkipped wrapping the cause when an upload failed, or the error from
//     draw or the backend otherwise
func (c *Context) Render(draw func(*Frame) error) error {
	defer c.clearStreams()
	logger := common.LoggerOr(c.logger)

	if err := c.backend.ClearTargets(c.clear); err != nil {
		return c.fail(err)
	}

	f := &Frame{ctx: c, frustum: common.NewFrustum(c.camera.ViewProjectionMatrix())}
	if _, err := c.builder.EmitRectLightProxies(&c.vertices, &c.indices, c.registry); err != nil {
		f.note(err)
	}
	if draw != nil {
		if err := draw(f); err != nil && !errors.Is(err, scene.ErrObjectCapacity) {
			c.skipped.Add(1)
			return fmt.Errorf("frame: draw: %w", err)
		}
	}
	if f.rejected > 0 {
		logger.Warn("object capacity reached, emissions dropped",
			"max_objects", scene.MaxObjects,
			"rejected", f.rejected,
		)
	}

	c.builder.SetCamera(c.camera.ViewMatrix(), c.camera.ProjectionMatrix())
	transforms := c.builder.Marshal()
	shading := c.registry.Marshal(c.camera.Position())

	if err := c.backend.CreateVertexBuffer(scene.MarshalVertices(c.vertices)); err != nil {
		return c.fail(err)
	}
	if err := c.backend.CreateIndexBuffer(scene.MarshalIndices(c.indices)); err != nil {
		return c.fail(err)
	}
	if err := c.backend.UpdateUniformBlock(renderer.UniformBlockTransform, transforms); err != nil {
		return c.fail(err)
	}
	if err := c.backend.UpdateUniformBlock(renderer.UniformBlockShading, shading); err != nil {
		return c.fail(err)
	}
	if err := c.backend.DrawIndexed(uint32(len(c.indices))); err != nil {
		return c.fail(err)
	}

	c.drawn.Add(1)
	c.objects.Store(c.builder.Objects())
	c.lastVert.Store(int64(len(c.vertices)))
	c.lastIdx.Store(int64(len(c.indices)))
	return nil
}

// Present shows the frame and resets the transform slot counter to zero.
//
// Returns:
//   - error: the backend's present error; the slots are reset either way
func (c *Context) Present() error {
	defer c.builder.Reset()
	return c.backend.Present()
}

// fail counts a skipped frame and classifies err.
func (c *Context) fail(err error) error {
	c.skipped.Add(1)
	if errors.Is(err, renderer.ErrResourceUpload) {
		common.LoggerOr(c.logger).Warn("frame skipped", "error", err)
		return fmt.Errorf("%w: %w", ErrFrameSkipped, err)
	}
	return fmt.Errorf("frame: %w", err)
}

func (c *Context) clearStreams() {
	c.vertices = c.vertices[:0]
	c.indices = c.indices[:0]
}
