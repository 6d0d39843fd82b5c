package frame

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-rectlights/engine/camera"
	"github.com/Carmen-Shannon/oxy-rectlights/engine/light"
	"github.com/Carmen-Shannon/oxy-rectlights/engine/renderer"
	"github.com/Carmen-Shannon/oxy-rectlights/engine/scene"
)

// ContextOption is a functional option for configuring a Context.
type ContextOption func(*Context)

// WithRegistry sets the light registry.
//
// Parameters:
//   - r: the registry whose lights are packed each frame
//
// Returns:
//   - ContextOption: option function to apply
func WithRegistry(r light.Registry) ContextOption {
	return func(c *Context) {
		c.registry = r
	}
}

// WithBuilder sets the scene builder.
//
// Parameters:
//   - b: the builder that allocates transform slots
//
// Returns:
//   - ContextOption: option function to apply
func WithBuilder(b scene.Builder) ContextOption {
	return func(c *Context) {
		c.builder = b
	}
}

// WithCamera sets the camera supplying view, projection and eye position.
//
// Parameters:
//   - cam: the camera
//
// Returns:
//   - ContextOption: option function to apply
func WithCamera(cam camera.Camera) ContextOption {
	return func(c *Context) {
		c.camera = cam
	}
}

// WithClearColor sets the background color.
func WithClearColor(color renderer.Color) ContextOption {
	return func(c *Context) {
		c.clear = color
	}
}

// WithCapacityHint preallocates the vertex and index streams.
//
// Parameters:
//   - vertices: expected vertices per frame
//   - indices: expected indices per frame
//
// Returns:
//   - ContextOption: option function to apply
func WithCapacityHint(vertices, indices int) ContextOption {
	return func(c *Context) {
		c.vertices = make([]scene.Vertex, 0, max(vertices, 0))
		c.indices = make([]uint32, 0, max(indices, 0))
	}
}

// WithLogger sets the logger for frame diagnostics and for the defaults NewContext creates.
func WithLogger(logger *slog.Logger) ContextOption {
	return func(c *Context) {
		c.logger = logger
	}
}
