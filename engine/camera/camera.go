package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-rectlights/common"
)

// Forward is the viewing direction of an unrotated camera.
var Forward = [3]float32{0, 0, 1}

type cameraImpl struct {
	mu *sync.Mutex

	position [3]float32
	rotation [3]float32 // pitch (X), yaw (Y), roll (Z) in radians
	up       [3]float32

	fov    float32
	aspect float32
	near   float32
	far    float32

	viewMatrix           [16]float32
	projectionMatrix     [16]float32
	viewProjectionMatrix [16]float32
}

// Camera is a free-flying perspective camera described by a position and roll-pitch-yaw
// rotation. It looks along its rotated Forward vector with +Y up and projects with
// WebGPU [0, 1] depth. Matrices are recomputed on every mutation.
// Thread-safe for concurrent access.
type Camera interface {
	// Position returns the camera position in world space.
	//
	// Returns:
	//   - [3]float32: the position
	Position() [3]float32

	// Rotation returns the camera rotation.
	//
	// Returns:
	//   - [3]float32: pitch (around X), yaw (around Y) and roll (around Z) in radians
	Rotation() [3]float32

	// Direction returns the unit viewing direction.
	//
	// Returns:
	//   - [3]float32: the rotated Forward vector
	Direction() [3]float32

	// Fov returns the vertical field of view in radians.
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	Aspect() float32

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32

	// ViewMatrix returns the current world-to-view matrix (column-major).
	//
	// Returns:
	//   - [16]float32: the view matrix
	ViewMatrix() [16]float32

	// ProjectionMatrix returns the current view-to-clip matrix (column-major).
	//
	// Returns:
	//   - [16]float32: the projection matrix
	ProjectionMatrix() [16]float32

	// ViewProjectionMatrix returns projection * view.
	//
	// Returns:
	//   - [16]float32: the combined view-projection matrix
	ViewProjectionMatrix() [16]float32

	// SetPosition moves the camera to an absolute position.
	//
	// Parameters:
	//   - position: the new world position
	SetPosition(position [3]float32)

	// SetRotation replaces the camera rotation.
	//
	// Parameters:
	//   - rotation: pitch, yaw and roll in radians
	SetRotation(rotation [3]float32)

	// Move translates the camera in its own frame.
	//
	// Parameters:
	//   - right: distance along the camera's right axis
	//   - up: distance along the camera's up axis
	//   - forward: distance along the viewing direction
	Move(right, up, forward float32)

	// Rotate adds to the camera rotation.
	//
	// Parameters:
	//   - pitch, yaw, roll: angle deltas in radians
	Rotate(pitch, yaw, roll float32)

	// SetFov sets the vertical field of view in radians.
	SetFov(fov float32)

	// SetAspect sets the aspect ratio (width / height).
	SetAspect(aspect float32)

	// SetNear sets the near clipping plane distance.
	SetNear(near float32)

	// SetFar sets the far clipping plane distance.
	SetFar(far float32)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a camera at the origin looking along +Z with a 1 radian field of view,
// a square aspect ratio and clip planes at 0.5 and 500.
//
// Parameters:
//   - options: optional configuration functions
//
// Returns:
//   - Camera: the new camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:     &sync.Mutex{},
		up:     [3]float32{0, 1, 0},
		fov:    1.0,
		aspect: 1.0,
		near:   0.5,
		far:    500.0,
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Position() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) Rotation() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rotation
}

func (c *cameraImpl) Direction() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _, forward := c.basis()
	return forward
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) SetPosition(position [3]float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = position
	c.updateMatrices()
}

func (c *cameraImpl) SetRotation(rotation [3]float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rotation = rotation
	c.updateMatrices()
}

func (c *cameraImpl) Move(right, up, forward float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, u, f := c.basis()
	for i := range c.position {
		c.position[i] += r[i]*right + u[i]*up + f[i]*forward
	}
	c.updateMatrices()
}

func (c *cameraImpl) Rotate(pitch, yaw, roll float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rotation[0] += pitch
	c.rotation[1] += yaw
	c.rotation[2] += roll
	c.updateMatrices()
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.updateMatrices()
}

func (c *cameraImpl) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
	c.updateMatrices()
}

// basis returns the camera's right, up and forward axes in world space.
// Right is forward x up, which in a right-handed frame points to the right of the screen.
func (c *cameraImpl) basis() (right, up, forward [3]float32) {
	rot := common.RollPitchYaw4(c.rotation[0], c.rotation[1], c.rotation[2])
	forward = common.Normalize3(common.TransformDirection(rot[:], Forward))
	up = common.Normalize3(common.TransformDirection(rot[:], c.up))
	right = common.Normalize3(common.Cross3(forward, up))
	return right, up, forward
}

func (c *cameraImpl) updateMatrices() {
	_, up, forward := c.basis()
	common.LookTo(c.viewMatrix[:], c.position, forward, up)
	common.Perspective(c.projectionMatrix[:], c.fov, c.aspect, c.near, c.far)
	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])
}
