package camera

import (
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-rectlights/common"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-4

func assertVecNear(t *testing.T, want, got [3]float32) {
	t.Helper()
	for i := range want {
		assert.InDeltaf(t, want[i], got[i], eps, "component %d", i)
	}
}

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()
	assert.Equal(t, float32(1.0), c.Fov())
	assert.Equal(t, float32(1.0), c.Aspect())
	assert.Equal(t, float32(0.5), c.Near())
	assert.Equal(t, float32(500), c.Far())
	assert.Equal(t, [3]float32{}, c.Position())
	assertVecNear(t, Forward, c.Direction())
}

func TestCameraOptions(t *testing.T) {
	c := NewCamera(
		WithPosition(1, 2, 3),
		WithRotation(0.1, 0.2, 0),
		WithFov(0.8),
		WithAspect(16.0/9.0),
		WithNear(0.1),
		WithFar(100),
	)
	assert.Equal(t, [3]float32{1, 2, 3}, c.Position())
	assert.Equal(t, [3]float32{0.1, 0.2, 0}, c.Rotation())
	assert.Equal(t, float32(0.8), c.Fov())
	assert.Equal(t, float32(100), c.Far())

	var want [16]float32
	common.Perspective(want[:], 0.8, 16.0/9.0, 0.1, 100)
	assert.Equal(t, want, c.ProjectionMatrix())
}

func TestViewMatrixLooksAlongDirection(t *testing.T) {
	c := NewCamera(WithPosition(0, 1, -10))
	view := c.ViewMatrix()

	eye := common.TransformPoint(view[:], c.Position())
	assertVecNear(t, [3]float32{}, eye)

	// A point straight ahead lands on the view-space -Z axis.
	ahead := common.TransformPoint(view[:], [3]float32{0, 1, 0})
	assert.InDelta(t, 0, ahead[0], eps)
	assert.InDelta(t, 0, ahead[1], eps)
	assert.InDelta(t, -10, ahead[2], eps)
}

func TestViewProjectionIsProduct(t *testing.T) {
	c := NewCamera(WithPosition(3, 2, 1), WithRotation(-0.3, 1.2, 0))
	view := c.ViewMatrix()
	proj := c.ProjectionMatrix()
	var want [16]float32
	common.Mul4(want[:], proj[:], view[:])
	assert.Equal(t, want, c.ViewProjectionMatrix())
}

func TestDirectionFollowsRotation(t *testing.T) {
	tests := []struct {
		name     string
		rotation [3]float32
		want     [3]float32
	}{
		{"identity", [3]float32{}, [3]float32{0, 0, 1}},
		{"yaw quarter turn", [3]float32{0, math32.Pi / 2, 0}, [3]float32{1, 0, 0}},
		{"pitch down", [3]float32{math32.Pi / 2, 0, 0}, [3]float32{0, -1, 0}},
		{"roll keeps direction", [3]float32{0, 0, 1.3}, [3]float32{0, 0, 1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCamera()
			c.SetRotation(tc.rotation)
			assertVecNear(t, tc.want, c.Direction())
		})
	}
}

func TestMoveUsesLocalAxes(t *testing.T) {
	c := NewCamera(WithRotation(0, math32.Pi/2, 0))
	c.Move(0, 0, 2)
	assertVecNear(t, [3]float32{2, 0, 0}, c.Position())

	c.Move(0, 1, 0)
	assertVecNear(t, [3]float32{2, 1, 0}, c.Position())

	// Right is forward x up, so facing +X the camera's right is +Z.
	c.Move(3, 0, 0)
	assertVecNear(t, [3]float32{2, 1, 3}, c.Position())
}

func TestRotateAccumulates(t *testing.T) {
	c := NewCamera()
	c.Rotate(0.1, 0.2, 0.3)
	c.Rotate(0.1, 0.2, 0.3)
	assertVecNear(t, [3]float32{0.2, 0.4, 0.6}, c.Rotation())
}

func TestSettersRecomputeMatrices(t *testing.T) {
	c := NewCamera()
	before := c.ProjectionMatrix()
	c.SetAspect(2)
	assert.NotEqual(t, before, c.ProjectionMatrix())

	view := c.ViewMatrix()
	c.SetPosition([3]float32{5, 0, 0})
	assert.NotEqual(t, view, c.ViewMatrix())
}

func TestCameraConcurrentAccess(t *testing.T) {
	c := NewCamera()
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				if i%2 == 0 {
					c.Move(0, 0, 0.01)
				} else {
					_ = c.ViewProjectionMatrix()
				}
			}
		}()
	}
	wg.Wait()
	assert.InDelta(t, 4.0, c.Position()[2], 1e-3)
}

func TestControllerKeyState(t *testing.T) {
	cc := NewCameraController()
	assert.False(t, cc.Pressed(common.KeyW))
	cc.KeyDown(common.KeyW)
	assert.True(t, cc.Pressed(common.KeyW))
	cc.KeyUp(common.KeyW)
	assert.False(t, cc.Pressed(common.KeyW))
}

func TestControllerDefaultsAndOptions(t *testing.T) {
	cc := NewCameraController()
	assert.Equal(t, float32(5), cc.MoveSpeed())
	assert.Equal(t, float32(1.5), cc.TurnSpeed())
	assert.Equal(t, float32(4), cc.Boost())

	cc = NewCameraController(WithMoveSpeed(2), WithTurnSpeed(0.5), WithBoost(10))
	assert.Equal(t, float32(2), cc.MoveSpeed())
	assert.Equal(t, float32(0.5), cc.TurnSpeed())
	assert.Equal(t, float32(10), cc.Boost())
}

func TestControllerUpdateBindings(t *testing.T) {
	tests := []struct {
		name     string
		keys     []int
		position [3]float32
		rotation [3]float32
	}{
		{"forward", []int{common.KeyW}, [3]float32{0, 0, 2}, [3]float32{}},
		{"back", []int{common.KeyS}, [3]float32{0, 0, -2}, [3]float32{}},
		{"rise", []int{common.KeyR}, [3]float32{0, 2, 0}, [3]float32{}},
		{"sink", []int{common.KeyF}, [3]float32{0, -2, 0}, [3]float32{}},
		{"strafe right", []int{common.KeyD}, [3]float32{-2, 0, 0}, [3]float32{}},
		{"strafe left", []int{common.KeyA}, [3]float32{2, 0, 0}, [3]float32{}},
		{"boosted", []int{common.KeyW, common.KeyLeftShift}, [3]float32{0, 0, 8}, [3]float32{}},
		{"pitch up", []int{common.KeyI}, [3]float32{}, [3]float32{-1, 0, 0}},
		{"pitch down", []int{common.KeyK}, [3]float32{}, [3]float32{1, 0, 0}},
		{"yaw left", []int{common.KeyJ}, [3]float32{}, [3]float32{0, 1, 0}},
		{"yaw right", []int{common.KeyL}, [3]float32{}, [3]float32{0, -1, 0}},
		{"opposing keys cancel", []int{common.KeyW, common.KeyS}, [3]float32{}, [3]float32{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cc := NewCameraController(WithMoveSpeed(4), WithTurnSpeed(2))
			cam := NewCamera()
			for _, k := range tc.keys {
				cc.KeyDown(k)
			}
			cc.Update(cam, 0.5)
			assertVecNear(t, tc.position, cam.Position())
			assertVecNear(t, tc.rotation, cam.Rotation())
		})
	}
}

func TestControllerUpdateNoop(t *testing.T) {
	cc := NewCameraController()
	cam := NewCamera()
	assert.False(t, cc.Update(cam, 0.016))
	assert.False(t, cc.Update(nil, 0.016))

	cc.KeyDown(common.KeyW)
	assert.False(t, cc.Update(cam, 0))
	require.True(t, cc.Update(cam, 0.1))
	assert.Greater(t, cam.Position()[2], float32(0))
}
