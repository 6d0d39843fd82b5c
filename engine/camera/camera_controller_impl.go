package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-rectlights/common"
)

// cameraControllerImpl is the keyboard implementation of CameraController.
type cameraControllerImpl struct {
	mu *sync.Mutex

	keys map[int]bool

	moveSpeed float32
	turnSpeed float32
	boost     float32
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a keyboard fly controller.
// Defaults are 5 units per second of movement, 1.5 radians per second of turning and a 4x
// Shift boost.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:        &sync.Mutex{},
		keys:      make(map[int]bool),
		moveSpeed: 5.0,
		turnSpeed: 1.5,
		boost:     4.0,
	}

	for _, option := range options {
		option(cc)
	}
	return cc
}

func (cc *cameraControllerImpl) KeyDown(code int) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.keys[code] = true
}

func (cc *cameraControllerImpl) KeyUp(code int) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	delete(cc.keys, code)
}

func (cc *cameraControllerImpl) Pressed(code int) bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.keys[code]
}

func (cc *cameraControllerImpl) MoveSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.moveSpeed
}

func (cc *cameraControllerImpl) TurnSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.turnSpeed
}

func (cc *cameraControllerImpl) Boost() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.boost
}

func (cc *cameraControllerImpl) Update(cam Camera, dt float32) bool {
	if cam == nil || dt <= 0 {
		return false
	}

	cc.mu.Lock()
	right := cc.axis(common.KeyD, common.KeyA)
	up := cc.axis(common.KeyR, common.KeyF)
	forward := cc.axis(common.KeyW, common.KeyS)
	pitch := cc.axis(common.KeyK, common.KeyI)
	yaw := cc.axis(common.KeyJ, common.KeyL)

	step := cc.moveSpeed * dt
	if cc.keys[common.KeyLeftShift] || cc.keys[common.KeyRightShift] {
		step *= cc.boost
	}
	turn := cc.turnSpeed * dt
	cc.mu.Unlock()

	moved := false
	if right != 0 || up != 0 || forward != 0 {
		cam.Move(right*step, up*step, forward*step)
		moved = true
	}
	if pitch != 0 || yaw != 0 {
		cam.Rotate(pitch*turn, yaw*turn, 0)
		moved = true
	}
	return moved
}

// axis folds a pair of opposing keys into -1, 0 or +1. Caller must hold mu.
func (cc *cameraControllerImpl) axis(positive, negative int) float32 {
	var v float32
	if cc.keys[positive] {
		v++
	}
	if cc.keys[negative] {
		v--
	}
	return v
}
