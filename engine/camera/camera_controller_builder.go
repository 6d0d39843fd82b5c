package camera

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithMoveSpeed sets the movement speed.
//
// Parameters:
//   - speed: world units per second
//
// Returns:
//   - CameraControllerOption: functional option to set the movement speed
func WithMoveSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.moveSpeed = speed
	}
}

// WithTurnSpeed sets the pitch and yaw speed.
//
// Parameters:
//   - speed: radians per second
//
// Returns:
//   - CameraControllerOption: functional option to set the turn speed
func WithTurnSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.turnSpeed = speed
	}
}

// WithBoost sets the movement multiplier applied while Shift is held.
//
// Parameters:
//   - boost: multiplier, values below 1 slow the camera down
//
// Returns:
//   - CameraControllerOption: functional option to set the boost factor
func WithBoost(boost float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.boost = boost
	}
}
