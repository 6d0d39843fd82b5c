// Package scene turns primitive draw requests into vertex and index data and keeps the
// per-frame table of object transforms those vertices refer to.
package scene

import (
	"errors"
	"log/slog"

	"github.com/Carmen-Shannon/oxy-rectlights/common"
	"github.com/Carmen-Shannon/oxy-rectlights/engine/light"
)

// MaxObjects is the number of transform slots available in one frame.
const MaxObjects = 100

// ErrObjectCapacity is returned by a slotted emitter once every transform slot of the
// current frame is in use. Nothing is appended when it is returned.
var ErrObjectCapacity = errors.New("scene: transform slots exhausted")

// Transform is the content of one transform slot.
type Transform struct {
	Model  [16]float32
	Normal [16]float32
}

// Builder appends primitive geometry to caller-owned buffers and allocates one transform
// slot per slotted emission. Emitters never clear the buffers they are given.
// A Builder is owned by the render goroutine and is not safe for concurrent use.
type Builder interface {
	// EmitFloor appends the ground plane: a 200x200 gray quad at y = -1 facing +Y.
	//
	// Parameters:
	//   - v: vertex buffer to append to
	//   - i: index buffer to append to
	//   - model: object-to-world transform for the floor
	//
	// Returns:
	//   - uint32: the transform slot used
	//   - error: ErrObjectCapacity when no slot is left
	EmitFloor(v *[]Vertex, i *[]uint32, model [16]float32) (uint32, error)

	// EmitCube appends a unit cube (corners at ±1) with flat per-face normals and colors.
	//
	// Parameters:
	//   - v: vertex buffer to append to
	//   - i: index buffer to append to
	//   - model: object-to-world transform for the cube
	//
	// Returns:
	//   - uint32: the transform slot used
	//   - error: ErrObjectCapacity when no slot is left
	EmitCube(v *[]Vertex, i *[]uint32, model [16]float32) (uint32, error)

	// EmitCubeShared appends an eight-corner cube with per-corner colors and no normals.
	// The cube sits at the origin: it claims a slot holding the identity transform so
	// its vertices never pick up another object's model matrix.
	//
	// Parameters:
	//   - v: vertex buffer to append to
	//   - i: index buffer to append to
	//
	// Returns:
	//   - uint32: the transform slot used
	//   - error: ErrObjectCapacity when no slot is left
	EmitCubeShared(v *[]Vertex, i *[]uint32) (uint32, error)

	// EmitQuadLightProxy appends the visible emitter quad of a rect light in the light's
	// color. The quad is double-sided and flattened onto the light's plane.
	//
	// Parameters:
	//   - v: vertex buffer to append to
	//   - i: index buffer to append to
	//   - rl: the rect light to visualise
	//
	// Returns:
	//   - uint32: the transform slot used
	//   - error: ErrObjectCapacity when no slot is left
	EmitQuadLightProxy(v *[]Vertex, i *[]uint32, rl light.RectLight) (uint32, error)

	// EmitRectLightProxies emits one proxy per registered rect light in registry order.
	//
	// Parameters:
	//   - v: vertex buffer to append to
	//   - i: index buffer to append to
	//   - reg: the light registry
	//
	// Returns:
	//   - int: number of proxies emitted
	//   - error: ErrObjectCapacity when slots ran out part way through
	EmitRectLightProxies(v *[]Vertex, i *[]uint32, reg light.Registry) (int, error)

	// Reset returns the slot allocator to zero. Slot contents are overwritten lazily.
	Reset()

	// Objects returns the number of slots written since the last Reset.
	Objects() uint32

	// SetCamera stores the view and projection matrices for the next Marshal.
	//
	// Parameters:
	//   - view: world-to-view matrix
	//   - projection: view-to-clip matrix
	SetCamera(view, projection [16]float32)

	// Slot returns the transform written to slot i this frame.
	//
	// Parameters:
	//   - i: slot index
	//
	// Returns:
	//   - Transform: the stored model and normal matrices
	//   - bool: false if i has not been written since the last Reset
	Slot(i int) (Transform, bool)

	// TransformBlock returns a copy of the current transform block.
	TransformBlock() GPUTransformBlock

	// Marshal packs the transform block with the live object count for GPU upload.
	//
	// Returns:
	//   - []byte: GPUTransformBlockSize bytes
	Marshal() []byte
}

type builderImpl struct {
	block  GPUTransformBlock
	next   uint32
	logger *slog.Logger
}

var _ Builder = &builderImpl{}

// NewBuilder creates a Builder with an empty transform table.
//
// Parameters:
//   - opts: optional configuration functions
//
// Returns:
//   - Builder: the new scene builder
func NewBuilder(opts ...BuilderOption) Builder {
	b := &builderImpl{}
	common.Identity(b.block.View[:])
	common.Identity(b.block.Projection[:])
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// slot claims the next transform slot and stores model and its normal matrix there.
func (b *builderImpl) slot(model [16]float32) (uint32, error) {
	if b.next >= MaxObjects {
		common.LoggerOr(b.logger).Debug("transform slot rejected", "max_objects", MaxObjects)
		return 0, ErrObjectCapacity
	}
	idx := b.next
	b.block.Model[idx] = model
	if !common.NormalMatrix(b.block.Normal[idx][:], model[:]) {
		common.LoggerOr(b.logger).Debug("singular model, using cofactor normal matrix", "slot", idx)
	}
	b.next++
	return idx, nil
}

func (b *builderImpl) EmitFloor(v *[]Vertex, i *[]uint32, model [16]float32) (uint32, error) {
	obj, err := b.slot(model)
	if err != nil {
		return 0, err
	}
	base := uint32(len(*v))
	for c, p := range floorCorners {
		*v = append(*v, Vertex{
			Position: p,
			Color:    gray,
			UV:       quadUVs[c],
			Normal:   [3]float32{0, 1, 0},
			Object:   obj,
		})
	}
	*i = appendRebased(*i, base, floorIndices[:])
	return obj, nil
}

func (b *builderImpl) EmitCube(v *[]Vertex, i *[]uint32, model [16]float32) (uint32, error) {
	obj, err := b.slot(model)
	if err != nil {
		return 0, err
	}
	base := uint32(len(*v))
	for _, f := range cubeFaces {
		for _, p := range f.corners {
			*v = append(*v, Vertex{Position: p, Color: f.color, Normal: f.normal, Object: obj})
		}
	}
	*i = appendRebased(*i, base, cubeIndices[:])
	return obj, nil
}

func (b *builderImpl) EmitCubeShared(v *[]Vertex, i *[]uint32) (uint32, error) {
	obj, err := b.slot(common.Identity4())
	if err != nil {
		return 0, err
	}
	base := uint32(len(*v))
	for _, c := range sharedCubeCorners {
		*v = append(*v, Vertex{Position: c.position, Color: c.color, Object: obj})
	}
	*i = appendRebased(*i, base, sharedCubeIndices[:])
	return obj, nil
}

func (b *builderImpl) EmitQuadLightProxy(v *[]Vertex, i *[]uint32, rl light.RectLight) (uint32, error) {
	obj, err := b.slot(ProxyModel(rl))
	if err != nil {
		return 0, err
	}
	base := uint32(len(*v))
	for c, p := range quadCorners {
		*v = append(*v, Vertex{
			Position: p,
			Color:    rl.Color,
			UV:       quadUVs[c],
			Normal:   [3]float32{0, 0, -1},
			Object:   obj,
		})
	}
	*i = appendRebased(*i, base, quadIndices[:])
	return obj, nil
}

func (b *builderImpl) EmitRectLightProxies(v *[]Vertex, i *[]uint32, reg light.Registry) (int, error) {
	emitted := 0
	for n := 0; n < reg.Count(light.KindRect); n++ {
		rl, ok := reg.RectLight(n)
		if !ok {
			break
		}
		if _, err := b.EmitQuadLightProxy(v, i, *rl); err != nil {
			return emitted, err
		}
		emitted++
	}
	return emitted, nil
}

func (b *builderImpl) Reset() {
	b.next = 0
}

func (b *builderImpl) Objects() uint32 {
	return b.next
}

func (b *builderImpl) SetCamera(view, projection [16]float32) {
	b.block.View = view
	b.block.Projection = projection
}

func (b *builderImpl) Slot(i int) (Transform, bool) {
	if i < 0 || i >= int(b.next) {
		return Transform{}, false
	}
	return Transform{Model: b.block.Model[i], Normal: b.block.Normal[i]}, true
}

func (b *builderImpl) TransformBlock() GPUTransformBlock {
	block := b.block
	block.Objects = b.next
	return block
}

func (b *builderImpl) Marshal() []byte {
	b.block.Objects = b.next
	return b.block.Marshal()
}

// ProxyModel returns the object-to-world transform of a rect light's proxy quad:
// scale to the light's half extents with zero depth, rotate by RotationY turns about Y,
// then RotationZ turns about Z, then move to the light's position.
//
// Parameters:
//   - rl: the rect light
//
// Returns:
//   - [16]float32: the model matrix (singular, since the quad has no depth)
func ProxyModel(rl light.RectLight) [16]float32 {
	return common.Compose(
		common.Scale4(rl.Width, rl.Height, 0),
		common.RotateY4(rl.RotationY*common.TwoPi),
		common.RotateZ4(rl.RotationZ*common.TwoPi),
		common.Translate4(rl.Position[0], rl.Position[1], rl.Position[2]),
	)
}

func appendRebased(dst []uint32, base uint32, local []uint32) []uint32 {
	for _, idx := range local {
		dst = append(dst, base+idx)
	}
	return dst
}
