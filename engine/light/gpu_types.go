package light

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUShadingBlockSize is the byte size of the shading-stage uniform block.
const GPUShadingBlockSize = 1792

// GPUPointLight matches the WGSL PointLight struct.
// Size: 32 bytes.
type GPUPointLight struct {
	Position [4]float32 // offset  0: xyz position, w = 1
	Color    [4]float32 // offset 16: rgb color, w = intensity
}

// GPUSpotLight matches the WGSL SpotLight struct.
// Size: 64 bytes.
type GPUSpotLight struct {
	Position  [4]float32 // offset  0: xyz position, w = 1
	Direction [4]float32 // offset 16: xyz cone axis, w = 1
	Color     [4]float32 // offset 32: rgb color, w = intensity
	Cone      [4]float32 // offset 48: inner cosine, outer cosine, unused, unused
}

// GPUDirLight matches the WGSL DirLight struct.
// Size: 32 bytes.
type GPUDirLight struct {
	Direction [4]float32 // offset  0: xyz direction, w = 1
	Color     [4]float32 // offset 16: rgb color, w = intensity
}

// GPURectLight matches the WGSL RectLight struct.
// Size: 48 bytes.
type GPURectLight struct {
	Position [4]float32 // offset  0: xyz center, w = 1
	Color    [4]float32 // offset 16: rgb color, w = intensity
	Params   [4]float32 // offset 32: width, height, rotation Y (turns), rotation Z (turns)
}

// GPUShadingBlock is the fragment-stage uniform block. It is sized for the full Capacity of
// every kind; Counts tells the shader how many entries of each array are live.
//
// Layout:
//
//	vec4<f32>          view_pos   (offset    0)
//	vec4<i32>          counts     (offset   16) point, spot, dir, rect
//	array<PointLight,10> points   (offset   32)
//	array<SpotLight,10>  spots    (offset  352)
//	array<DirLight,10>   dirs     (offset  992)
//	array<RectLight,10>  rects    (offset 1312)
type GPUShadingBlock struct {
	ViewPos [4]float32
	Counts  [4]int32
	Points  [Capacity]GPUPointLight
	Spots   [Capacity]GPUSpotLight
	Dirs    [Capacity]GPUDirLight
	Rects   [Capacity]GPURectLight
}

func newGPUPointLight(l PointLight) GPUPointLight {
	return GPUPointLight{
		Position: vec4(l.Position, 1),
		Color:    vec4(l.Color, l.Intensity),
	}
}

func newGPUSpotLight(l SpotLight) GPUSpotLight {
	return GPUSpotLight{
		Position:  vec4(l.Position, 1),
		Direction: vec4(l.Direction, 1),
		Color:     vec4(l.Color, l.Intensity),
		Cone:      [4]float32{l.InnerCone, l.OuterCone, 0, 0},
	}
}

func newGPUDirLight(l DirLight) GPUDirLight {
	return GPUDirLight{
		Direction: vec4(l.Direction, 1),
		Color:     vec4(l.Color, l.Intensity),
	}
}

func newGPURectLight(l RectLight) GPURectLight {
	return GPURectLight{
		Position: vec4(l.Position, 1),
		Color:    vec4(l.Color, l.Intensity),
		Params:   l.Params(),
	}
}

func vec4(v [3]float32, w float32) [4]float32 {
	return [4]float32{v[0], v[1], v[2], w}
}

// Size returns the size of the GPUShadingBlock struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (1792)
func (b *GPUShadingBlock) Size() int {
	return int(unsafe.Sizeof(*b))
}

// Marshal serializes the block into a little-endian byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 1792-byte buffer ready for GPU upload
func (b *GPUShadingBlock) Marshal() []byte {
	buf := make([]byte, GPUShadingBlockSize)
	off := putVec4(buf, 0, b.ViewPos)
	for _, c := range b.Counts {
		binary.LittleEndian.PutUint32(buf[off:off+4], uint32(c))
		off += 4
	}
	for _, l := range b.Points {
		off = putVec4(buf, off, l.Position)
		off = putVec4(buf, off, l.Color)
	}
	for _, l := range b.Spots {
		off = putVec4(buf, off, l.Position)
		off = putVec4(buf, off, l.Direction)
		off = putVec4(buf, off, l.Color)
		off = putVec4(buf, off, l.Cone)
	}
	for _, l := range b.Dirs {
		off = putVec4(buf, off, l.Direction)
		off = putVec4(buf, off, l.Color)
	}
	for _, l := range b.Rects {
		off = putVec4(buf, off, l.Position)
		off = putVec4(buf, off, l.Color)
		off = putVec4(buf, off, l.Params)
	}
	return buf
}

// putVec4 writes v at off and returns the offset just past it.
func putVec4(buf []byte, off int, v [4]float32) int {
	for i := range v {
		binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(v[i]))
		off += 4
	}
	return off
}
