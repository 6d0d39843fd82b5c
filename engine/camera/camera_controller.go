package camera

// CameraController drives a Camera from keyboard state.
// The controller owns its key-state table; window callbacks feed it through KeyDown and KeyUp
// and the render loop applies the held keys once per tick with Update.
//
// Bindings: W/S move forward and back, A/D strafe, R/F rise and sink, I/K pitch,
// J/L yaw. Either Shift key multiplies movement by the boost factor.
type CameraController interface {
	// KeyDown marks a key as held.
	//
	// Parameters:
	//   - code: the GLFW key code
	KeyDown(code int)

	// KeyUp marks a key as released.
	//
	// Parameters:
	//   - code: the GLFW key code
	KeyUp(code int)

	// Pressed reports whether a key is currently held.
	//
	// Parameters:
	//   - code: the GLFW key code
	//
	// Returns:
	//   - bool: true while the key is held
	Pressed(code int) bool

	// Update applies the held keys to a camera.
	//
	// Parameters:
	//   - cam: the camera to move
	//   - dt: elapsed time in seconds since the previous update
	//
	// Returns:
	//   - bool: true if any binding moved or turned the camera
	Update(cam Camera, dt float32) bool

	// MoveSpeed returns the movement speed in world units per second.
	MoveSpeed() float32

	// TurnSpeed returns the turn speed in radians per second.
	TurnSpeed() float32

	// Boost returns the movement multiplier applied while Shift is held.
	Boost() float32
}
