// Package renderer defines the narrow GPU backend the frame orchestrator draws through,
// along with a WebGPU implementation and an in-memory recording implementation.
package renderer

// UniformBlock identifies one of the fixed-size uniform blocks the draw pipeline reads.
type UniformBlock int

const (
	// UniformBlockTransform is the per-object model/normal matrices plus view, projection
	// and the live object count. Read by the vertex stage.
	UniformBlockTransform UniformBlock = iota

	// UniformBlockShading is the view position, the light counts and the four light
	// tables. Read by the fragment stage.
	UniformBlockShading
)

// String returns the block name used in logs and errors.
func (b UniformBlock) String() string {
	switch b {
	case UniformBlockTransform:
		return "transform"
	case UniformBlockShading:
		return "shading"
	default:
		return "unknown"
	}
}

// Color is a linear RGBA clear color.
type Color struct {
	R, G, B, A float64
}

// Backend is the set of GPU operations one frame needs.
//
// The vertex and index buffers are recreated from scratch each frame. Uniform updates
// replace the whole block. Exactly one indexed draw is issued per frame, between
// ClearTargets and Present.
type Backend interface {
	// CreateVertexBuffer replaces the frame's vertex buffer with data.
	//
	// Parameters:
	//   - data: packed vertices (48-byte stride)
	//
	// Returns:
	//   - error: an *UploadError if the buffer could not be created or written
	CreateVertexBuffer(data []byte) error

	// CreateIndexBuffer replaces the frame's index buffer with data.
	//
	// Parameters:
	//   - data: packed uint32 indices
	//
	// Returns:
	//   - error: an *UploadError if the buffer could not be created or written
	CreateIndexBuffer(data []byte) error

	// UpdateUniformBlock discards the previous contents of block and writes data.
	//
	// Parameters:
	//   - block: the uniform block to update
	//   - data: the complete block contents
	//
	// Returns:
	//   - error: an *UploadError if the write failed or data has the wrong size
	UpdateUniformBlock(block UniformBlock, data []byte) error

	// DrawIndexed draws indexCount indices from the current buffers as a triangle list.
	//
	// Parameters:
	//   - indexCount: number of indices to draw
	//
	// Returns:
	//   - error: an error if the draw could not be encoded or submitted
	DrawIndexed(indexCount uint32) error

	// Present shows the finished frame.
	//
	// Returns:
	//   - error: an error if the surface could not be presented
	Present() error

	// ClearTargets starts a frame by clearing the color target to color and depth to 1.
	//
	// Parameters:
	//   - color: the clear color
	//
	// Returns:
	//   - error: an error if the frame could not be started
	ClearTargets(color Color) error
}
