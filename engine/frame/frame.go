package frame

import (
	"errors"

	"github.com/Carmen-Shannon/oxy-rectlights/common"
	"github.com/Carmen-Shannon/oxy-rectlights/engine/light"
	"github.com/Carmen-Shannon/oxy-rectlights/engine/scene"
)

// Frame is the handle passed to a Render draw function. It appends geometry to the
// context's streams and claims transform slots in emission order.
// A Frame is valid only during the draw call it was passed to.
type Frame struct {
	ctx      *Context
	frustum  common.Frustum
	rejected int
}

// Floor emits the floor plane with the given model matrix.
//
// Parameters:
//   - model: column-major model matrix
//
// Returns:
//   - uint32: the transform slot used
//   - error: scene.ErrObjectCapacity when every slot is taken
func (f *Frame) Floor(model [16]float32) (uint32, error) {
	slot, err := f.ctx.builder.EmitFloor(&f.ctx.vertices, &f.ctx.indices, model)
	return slot, f.note(err)
}

// Cube emits a unit cube with per-face colors and normals.
//
// Parameters:
//   - model: column-major model matrix
//
// Returns:
//   - uint32: the transform slot used
//   - error: scene.ErrObjectCapacity when every slot is taken
func (f *Frame) Cube(model [16]float32) (uint32, error) {
	slot, err := f.ctx.builder.EmitCube(&f.ctx.vertices, &f.ctx.indices, model)
	return slot, f.note(err)
}

// CubeShared emits the 8-vertex shared-corner cube at the origin. It has no normals and
// is drawn unlit in its corner colors.
//
// Returns:
//   - uint32: the transform slot used, holding the identity matrix
//   - error: scene.ErrObjectCapacity when every slot is taken
func (f *Frame) CubeShared() (uint32, error) {
	slot, err := f.ctx.builder.EmitCubeShared(&f.ctx.vertices, &f.ctx.indices)
	return slot, f.note(err)
}

// Registry returns the context's light registry so the draw function can animate lights.
// Proxies for this frame were already emitted; changes show from the next frame.
func (f *Frame) Registry() light.Registry { return f.ctx.registry }

// InView reports whether a bounding sphere intersects the camera's view volume. Draw
// functions use it to skip objects that would otherwise spend a transform slot.
//
// Parameters:
//   - center: sphere center in world space
//   - radius: sphere radius
//
// Returns:
//   - bool: false only if the sphere is certainly outside the view
func (f *Frame) InView(center [3]float32, radius float32) bool {
	return f.frustum.ContainsSphere(center, radius)
}

// Objects returns the number of transform slots claimed so far this frame.
func (f *Frame) Objects() uint32 { return f.ctx.builder.Objects() }

func (f *Frame) note(err error) error {
	if errors.Is(err, scene.ErrObjectCapacity) {
		f.rejected++
	}
	return err
}
