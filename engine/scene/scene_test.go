package scene

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-rectlights/common"
	"github.com/Carmen-Shannon/oxy-rectlights/engine/light"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotsAssignedInEmissionOrder(t *testing.T) {
	b := NewBuilder()
	var v []Vertex
	var idx []uint32

	floor, err := b.EmitFloor(&v, &idx, common.Identity4())
	require.NoError(t, err)
	cube, err := b.EmitCube(&v, &idx, common.Translate4(0, 0, 4))
	require.NoError(t, err)
	proxy, err := b.EmitQuadLightProxy(&v, &idx, light.RectLight{Width: 1, Height: 1})
	require.NoError(t, err)

	assert.Equal(t, []uint32{0, 1, 2}, []uint32{floor, cube, proxy})
	assert.Equal(t, uint32(3), b.Objects())

	for _, vert := range v[0:4] {
		assert.Equal(t, uint32(0), vert.Object)
	}
	for _, vert := range v[4:28] {
		assert.Equal(t, uint32(1), vert.Object)
	}
	for _, vert := range v[28:32] {
		assert.Equal(t, uint32(2), vert.Object)
	}
}

func TestEmitCube(t *testing.T) {
	b := NewBuilder()
	v := []Vertex{{}, {}} // pre-existing content is kept
	idx := []uint32{7}

	obj, err := b.EmitCube(&v, &idx, common.Identity4())
	require.NoError(t, err)

	require.Len(t, v, 2+24)
	require.Len(t, idx, 1+36)
	assert.Equal(t, uint32(7), idx[0])
	for _, i := range idx[1:] {
		assert.GreaterOrEqual(t, i, uint32(2))
		assert.Less(t, i, uint32(26))
	}
	for _, vert := range v[2:] {
		assert.Equal(t, obj, vert.Object)
		// Each face normal points away from the cube center.
		assert.Positive(t, common.Dot3(vert.Position, vert.Normal))
	}
	assert.Equal(t, [3]float32{0, 1, 0}, v[2].Color, "back face is green")
	assert.Equal(t, [3]float32{1, 0, 0}, v[2+20].Color, "front face is red")
}

func TestEmitFloor(t *testing.T) {
	b := NewBuilder()
	var v []Vertex
	var idx []uint32

	_, err := b.EmitFloor(&v, &idx, common.Identity4())
	require.NoError(t, err)
	require.Len(t, v, 4)
	assert.Equal(t, []uint32{0, 2, 1, 0, 3, 2}, idx)
	for _, vert := range v {
		assert.Equal(t, float32(-1), vert.Position[1])
		assert.Equal(t, float32(100), math32.Abs(vert.Position[0]))
		assert.Equal(t, [3]float32{0, 1, 0}, vert.Normal)
		assert.Equal(t, [3]float32{0.5, 0.5, 0.5}, vert.Color)
	}
}

func TestEmitCubeSharedUsesIdentitySlot(t *testing.T) {
	b := NewBuilder()
	var v []Vertex
	var idx []uint32

	// A proxy in slot 0 must not leak its flattened model into the shared cube.
	_, err := b.EmitQuadLightProxy(&v, &idx, light.RectLight{Width: 1, Height: 1})
	require.NoError(t, err)
	v, idx = v[:0], idx[:0]

	obj, err := b.EmitCubeShared(&v, &idx)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), obj)
	assert.Equal(t, uint32(2), b.Objects())
	assert.Len(t, v, 8)
	assert.Len(t, idx, 36)
	for _, vert := range v {
		assert.Equal(t, obj, vert.Object)
		assert.Equal(t, [3]float32{}, vert.Normal)
	}

	slot, ok := b.Slot(int(obj))
	require.True(t, ok)
	assert.Equal(t, common.Identity4(), slot.Model)
	assert.Equal(t, common.Identity4(), slot.Normal)
}

func TestEmitCubeSharedRespectsCapacity(t *testing.T) {
	b := NewBuilder()
	var v []Vertex
	var idx []uint32
	for range MaxObjects {
		_, err := b.EmitCubeShared(&v, &idx)
		require.NoError(t, err)
	}
	_, err := b.EmitCubeShared(&v, &idx)
	require.ErrorIs(t, err, ErrObjectCapacity)
	assert.Len(t, v, 8*MaxObjects)
	assert.Len(t, idx, 36*MaxObjects)
}

func TestEmitQuadLightProxy(t *testing.T) {
	b := NewBuilder()
	var v []Vertex
	var idx []uint32

	rl := light.RectLight{
		Position:  [3]float32{4, 0.3, 5},
		Color:     [3]float32{1, 0.5, 0.25},
		Intensity: 4,
		Width:     2,
		Height:    3,
		RotationY: 0.25,
		RotationZ: 0,
	}
	obj, err := b.EmitQuadLightProxy(&v, &idx, rl)
	require.NoError(t, err)

	require.Len(t, v, 4)
	assert.Equal(t, []uint32{0, 2, 1, 0, 3, 2, 0, 1, 2, 0, 2, 3}, idx)
	for _, vert := range v {
		assert.Equal(t, rl.Color, vert.Color)
		assert.Equal(t, [3]float32{0, 0, -1}, vert.Normal)
	}

	slot, ok := b.Slot(int(obj))
	require.True(t, ok)
	want := common.Compose(
		common.Scale4(2, 3, 0),
		common.RotateY4(0.25*common.TwoPi),
		common.RotateZ4(0),
		common.Translate4(4, 0.3, 5),
	)
	assert.Equal(t, want, slot.Model)

	// Corner (1,1,0) lands at center + rotated half extents.
	corner := common.TransformPoint(slot.Model[:], [3]float32{1, 1, 0})
	assert.InDelta(t, 4, corner[0], 1e-4)
	assert.InDelta(t, 3.3, corner[1], 1e-4)
	assert.InDelta(t, 5-2, corner[2], 1e-4)

	for i, f := range slot.Normal {
		assert.Falsef(t, math32.IsNaN(f) || math32.IsInf(f, 0), "normal matrix element %d", i)
	}
	n := common.Normalize3(common.TransformDirection(slot.Normal[:], [3]float32{0, 0, -1}))
	assert.InDelta(t, -1, n[0], 1e-4)
}

func TestEmitRectLightProxies(t *testing.T) {
	reg := light.NewRegistry()
	reg.AddRectLight([3]float32{1, 0, 0}, [3]float32{1, 0, 0}, 1, 1, 1, 0, 0)
	reg.AddRectLight([3]float32{2, 0, 0}, [3]float32{0, 1, 0}, 1, 1, 1, 0, 0)

	b := NewBuilder()
	var v []Vertex
	var idx []uint32
	n, err := b.EmitRectLightProxies(&v, &idx, reg)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, v, 8)
	assert.Len(t, idx, 24)
	assert.Equal(t, [3]float32{0, 1, 0}, v[4].Color)

	second, ok := b.Slot(1)
	require.True(t, ok)
	assert.Equal(t, float32(2), second.Model[12])
}

func TestObjectCapacity(t *testing.T) {
	b := NewBuilder()
	var v []Vertex
	var idx []uint32

	for n := 0; n < MaxObjects; n++ {
		obj, err := b.EmitCube(&v, &idx, common.Identity4())
		require.NoError(t, err)
		require.Equal(t, uint32(n), obj)
	}
	vLen, iLen := len(v), len(idx)

	_, err := b.EmitCube(&v, &idx, common.Identity4())
	assert.ErrorIs(t, err, ErrObjectCapacity)
	_, err = b.EmitFloor(&v, &idx, common.Identity4())
	assert.ErrorIs(t, err, ErrObjectCapacity)
	_, err = b.EmitQuadLightProxy(&v, &idx, light.RectLight{Width: 1, Height: 1})
	assert.ErrorIs(t, err, ErrObjectCapacity)

	assert.Len(t, v, vLen)
	assert.Len(t, idx, iLen)
	assert.Equal(t, uint32(MaxObjects), b.Objects())
	for _, vert := range v {
		assert.Less(t, vert.Object, uint32(MaxObjects))
	}
}

func TestResetRestartsSlots(t *testing.T) {
	b := NewBuilder()
	var v []Vertex
	var idx []uint32

	for range 5 {
		_, err := b.EmitCube(&v, &idx, common.Identity4())
		require.NoError(t, err)
	}
	b.Reset()
	assert.Zero(t, b.Objects())
	_, ok := b.Slot(0)
	assert.False(t, ok)

	obj, err := b.EmitCube(&v, &idx, common.Translate4(1, 2, 3))
	require.NoError(t, err)
	assert.Zero(t, obj)
}

func TestTransformBlockMarshal(t *testing.T) {
	b := NewBuilder()
	var v []Vertex
	var idx []uint32
	_, err := b.EmitCube(&v, &idx, common.Translate4(7, 8, 9))
	require.NoError(t, err)

	view := common.Translate4(0, 0, -3)
	var proj [16]float32
	common.Perspective(proj[:], 1, 1, 0.5, 500)
	b.SetCamera(view, proj)

	block := b.TransformBlock()
	assert.Equal(t, GPUTransformBlockSize, block.Size())

	buf := b.Marshal()
	require.Len(t, buf, GPUTransformBlockSize)
	f := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
	}
	assert.Equal(t, float32(7), f(12*4))           // model[0] translation x
	assert.Equal(t, float32(-3), f(12800+14*4))    // view translation z
	assert.Equal(t, proj[0], f(12864))             // projection[0]
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(buf[12928:]))
}

func TestVertexMarshal(t *testing.T) {
	vert := Vertex{
		Position: [3]float32{1, 2, 3},
		Color:    [3]float32{4, 5, 6},
		UV:       [2]float32{7, 8},
		Normal:   [3]float32{9, 10, 11},
		Object:   42,
	}
	assert.Equal(t, VertexSize, vert.Size())

	buf := MarshalVertices([]Vertex{{}, vert})
	require.Len(t, buf, 2*VertexSize)
	one := buf[VertexSize:]
	assert.Equal(t, vert.Marshal(), one)
	assert.Equal(t, float32(4), math.Float32frombits(binary.LittleEndian.Uint32(one[12:])))
	assert.Equal(t, float32(7), math.Float32frombits(binary.LittleEndian.Uint32(one[24:])))
	assert.Equal(t, float32(9), math.Float32frombits(binary.LittleEndian.Uint32(one[32:])))
	assert.Equal(t, uint32(42), binary.LittleEndian.Uint32(one[44:]))

	ib := MarshalIndices([]uint32{1, 70000})
	assert.Equal(t, uint32(70000), binary.LittleEndian.Uint32(ib[4:]))
}
