package scene

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// VertexSize is the packed stride of one Vertex in bytes.
const VertexSize = 48

// GPUTransformBlockSize is the packed size of GPUTransformBlock in bytes.
const GPUTransformBlockSize = 12944

// Vertex is the single vertex schema shared by every emitter and the draw pipeline.
// Matches the WGSL VertexInput struct layout exactly (48 bytes, tightly packed).
type Vertex struct {
	Position [3]float32 // offset  0: object-space position (12 bytes)
	Color    [3]float32 // offset 12: linear RGB albedo (12 bytes)
	UV       [2]float32 // offset 24: texture coordinate (8 bytes)
	Normal   [3]float32 // offset 32: object-space normal (12 bytes)
	Object   uint32     // offset 44: transform slot written the same frame (4 bytes)
}

// Size returns the size of the Vertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (v *Vertex) Size() int {
	return int(unsafe.Sizeof(*v))
}

// Marshal serializes the Vertex into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 48-byte buffer ready for GPU upload.
func (v *Vertex) Marshal() []byte {
	buf := make([]byte, VertexSize)
	v.put(buf)
	return buf
}

func (v *Vertex) put(buf []byte) {
	putFloats(buf[0:12], v.Position[:])
	putFloats(buf[12:24], v.Color[:])
	putFloats(buf[24:32], v.UV[:])
	putFloats(buf[32:44], v.Normal[:])
	binary.LittleEndian.PutUint32(buf[44:48], v.Object)
}

// MarshalVertices packs a vertex slice into one contiguous little-endian buffer.
//
// Parameters:
//   - vertices: the vertices to pack
//
// Returns:
//   - []byte: len(vertices) * VertexSize bytes
func MarshalVertices(vertices []Vertex) []byte {
	buf := make([]byte, len(vertices)*VertexSize)
	for i := range vertices {
		vertices[i].put(buf[i*VertexSize : (i+1)*VertexSize])
	}
	return buf
}

// MarshalIndices packs a uint32 index slice into a little-endian buffer.
//
// Parameters:
//   - indices: the indices to pack
//
// Returns:
//   - []byte: len(indices) * 4 bytes
func MarshalIndices(indices []uint32) []byte {
	buf := make([]byte, len(indices)*4)
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}

// GPUTransformBlock is the GPU-aligned per-frame transform uniform block.
// Matches the WGSL Transforms struct layout exactly.
//
// Layout (std140, column-major mat4x4<f32>):
//
//	offset     0: model[100]
//	offset  6400: normal[100]
//	offset 12800: view
//	offset 12864: projection
//	offset 12928: objects (u32) + 12 bytes padding
//
// Size: 12944 bytes.
type GPUTransformBlock struct {
	Model      [MaxObjects][16]float32
	Normal     [MaxObjects][16]float32
	View       [16]float32
	Projection [16]float32
	Objects    uint32
	_          [3]uint32
}

// Size returns the size of the GPUTransformBlock struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (b *GPUTransformBlock) Size() int {
	return int(unsafe.Sizeof(*b))
}

// Marshal serializes the whole block, including unused slots, for GPU upload.
//
// Returns:
//   - []byte: 12944-byte buffer ready for GPU upload.
func (b *GPUTransformBlock) Marshal() []byte {
	buf := make([]byte, GPUTransformBlockSize)
	off := 0
	for i := range b.Model {
		putFloats(buf[off:off+64], b.Model[i][:])
		off += 64
	}
	for i := range b.Normal {
		putFloats(buf[off:off+64], b.Normal[i][:])
		off += 64
	}
	putFloats(buf[off:off+64], b.View[:])
	off += 64
	putFloats(buf[off:off+64], b.Projection[:])
	off += 64
	binary.LittleEndian.PutUint32(buf[off:off+4], b.Objects)
	return buf
}

func putFloats(buf []byte, values []float32) {
	for i, f := range values {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], math.Float32bits(f))
	}
}
