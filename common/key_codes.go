package common

// Key codes for the fly-camera bindings. These values match GLFW key codes, which use
// ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyW = 87 // move forward
	KeyS = 83 // move back
	KeyA = 65 // strafe left
	KeyD = 68 // strafe right
	KeyR = 82 // rise
	KeyF = 70 // sink

	KeyI = 73 // pitch up
	KeyK = 75 // pitch down
	KeyJ = 74 // yaw left
	KeyL = 76 // yaw right

	KeySpace = 32  // pause animation
	KeyEsc   = 256 // Escape key (GLFW)
)

// Non-printable modifier keys.
const (
	KeyLeftShift  = 340 // Left Shift (GLFW), movement boost
	KeyRightShift = 344 // Right Shift (GLFW)
)
