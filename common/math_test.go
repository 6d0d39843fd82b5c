package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-4

func assertMatrixNear(t *testing.T, want, got []float32) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDeltaf(t, want[i], got[i], eps, "element %d", i)
	}
}

func TestMul4Identity(t *testing.T) {
	m := Compose(Scale4(2, 3, 4), RotateY4(0.7), Translate4(1, 2, 3))
	id := Identity4()

	var out [16]float32
	Mul4(out[:], id[:], m[:])
	assertMatrixNear(t, m[:], out[:])

	Mul4(out[:], m[:], id[:])
	assertMatrixNear(t, m[:], out[:])
}

func TestComposeAppliesInOrder(t *testing.T) {
	// Scale first, then translate: (1,0,0) -> (2,0,0) -> (2,5,0)
	m := Compose(Scale4(2, 2, 2), Translate4(0, 5, 0))
	p := TransformPoint(m[:], [3]float32{1, 0, 0})
	assert.InDelta(t, 2, p[0], eps)
	assert.InDelta(t, 5, p[1], eps)
	assert.InDelta(t, 0, p[2], eps)

	// Translate first, then scale: (1,0,0) -> (1,5,0) -> (2,10,0)
	m = Compose(Translate4(0, 5, 0), Scale4(2, 2, 2))
	p = TransformPoint(m[:], [3]float32{1, 0, 0})
	assert.InDelta(t, 2, p[0], eps)
	assert.InDelta(t, 10, p[1], eps)
}

func TestRotations(t *testing.T) {
	tests := []struct {
		name string
		m    [16]float32
		in   [3]float32
		want [3]float32
	}{
		{"x quarter turn", RotateX4(math32.Pi / 2), [3]float32{0, 1, 0}, [3]float32{0, 0, 1}},
		{"y quarter turn", RotateY4(math32.Pi / 2), [3]float32{0, 0, 1}, [3]float32{1, 0, 0}},
		{"z quarter turn", RotateZ4(math32.Pi / 2), [3]float32{1, 0, 0}, [3]float32{0, 1, 0}},
		{"yaw only", RollPitchYaw4(0, math32.Pi/2, 0), [3]float32{0, 0, 1}, [3]float32{1, 0, 0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := TransformDirection(tc.m[:], tc.in)
			for i := range 3 {
				assert.InDelta(t, tc.want[i], got[i], eps)
			}
		})
	}
}

func TestTranspose4(t *testing.T) {
	var m [16]float32
	for i := range m {
		m[i] = float32(i)
	}
	var out [16]float32
	Transpose4(out[:], m[:])
	assert.Equal(t, float32(4), out[1])
	assert.Equal(t, float32(1), out[4])

	Transpose4(out[:], out[:])
	assert.Equal(t, m, out)
}

func TestInvert4(t *testing.T) {
	m := Compose(Scale4(1, 2, 3), RotateZ4(0.3), RotateY4(1.1), Translate4(4, 0.3, 5))
	var inv, prod [16]float32
	require.True(t, Invert4(inv[:], m[:]))
	Mul4(prod[:], m[:], inv[:])
	id := Identity4()
	assertMatrixNear(t, id[:], prod[:])
}

func TestInvert4SingularLeavesOutput(t *testing.T) {
	m := Scale4(1, 1, 0)
	out := Identity4()
	out[3] = 42
	assert.False(t, Invert4(out[:], m[:]))
	assert.Equal(t, float32(42), out[3])
}

func TestNormalMatrixInvertible(t *testing.T) {
	m := Compose(Scale4(2, 0.5, 3), RotateX4(0.4), RotateY4(-0.9), Translate4(1, 2, 3))

	var n, inv, want [16]float32
	require.True(t, NormalMatrix(n[:], m[:]))
	require.True(t, Invert4(inv[:], m[:]))
	Transpose4(want[:], inv[:])
	assertMatrixNear(t, want[:], n[:])
}

func TestNormalMatrixKeepsNormalsOrthogonal(t *testing.T) {
	m := Compose(Scale4(3, 1, 0.25), RotateZ4(0.8), RotateX4(-0.2), Translate4(-1, 4, 2))
	var n [16]float32
	require.True(t, NormalMatrix(n[:], m[:]))

	// A plane spanned by t1, t2 with normal t1 x t2.
	t1 := [3]float32{1, 0.5, 0}
	t2 := [3]float32{0, 0.3, 1}
	normal := Cross3(t1, t2)

	tn := Normalize3(TransformDirection(n[:], normal))
	assert.InDelta(t, 0, Dot3(tn, Normalize3(TransformDirection(m[:], t1))), eps)
	assert.InDelta(t, 0, Dot3(tn, Normalize3(TransformDirection(m[:], t2))), eps)
}

func TestNormalMatrixSingularFallback(t *testing.T) {
	m := Compose(Scale4(2, 3, 0), RotateY4(math32.Pi/2), Translate4(4, 0.3, 5))

	var n [16]float32
	assert.False(t, NormalMatrix(n[:], m[:]))
	for i, v := range n {
		assert.Falsef(t, math32.IsNaN(v) || math32.IsInf(v, 0), "element %d is not finite", i)
	}

	// The proxy normal (0,0,-1) rotated a quarter turn around Y points along -X.
	got := Normalize3(TransformDirection(n[:], [3]float32{0, 0, -1}))
	assert.InDelta(t, -1, got[0], eps)
	assert.InDelta(t, 0, got[1], eps)
	assert.InDelta(t, 0, got[2], eps)
}

func TestLookToMatchesLookAt(t *testing.T) {
	var a, b [16]float32
	LookAt(a[:], -4, 1, -4, -4, 1, 0, 0, 1, 0)
	LookTo(b[:], [3]float32{-4, 1, -4}, [3]float32{0, 0, 4}, [3]float32{0, 1, 0})
	assertMatrixNear(t, a[:], b[:])

	// The eye maps to the view-space origin and the target lies on -Z.
	eye := TransformPoint(a[:], [3]float32{-4, 1, -4})
	assert.InDelta(t, 0, eye[0], eps)
	assert.InDelta(t, 0, eye[2], eps)
	target := TransformPoint(a[:], [3]float32{-4, 1, 0})
	assert.Less(t, target[2], float32(0))
}

func TestPerspectiveDepthRange(t *testing.T) {
	var p [16]float32
	Perspective(p[:], 1.0, 16.0/9.0, 0.5, 500)

	project := func(z float32) float32 {
		clipZ := p[10]*z + p[14]
		clipW := p[11] * z
		return clipZ / clipW
	}
	assert.InDelta(t, 0, project(-0.5), eps)
	assert.InDelta(t, 1, project(-500), eps)
}

func TestNormalize3Zero(t *testing.T) {
	assert.Equal(t, [3]float32{}, Normalize3([3]float32{}))
	n := Normalize3([3]float32{3, 0, 4})
	assert.InDelta(t, 0.6, n[0], eps)
	assert.InDelta(t, 0.8, n[2], eps)
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, 3, Coalesce(0, 0, 3, 4))
	assert.Equal(t, "", Coalesce[string]())
	assert.Equal(t, float32(0.5), Coalesce(float32(0), float32(0.5)))
}

func TestFrustumContainsSphere(t *testing.T) {
	var view, proj, vp [16]float32
	LookTo(view[:], [3]float32{0, 0, 0}, [3]float32{0, 0, 1}, [3]float32{0, 1, 0})
	Perspective(proj[:], 1.0, 1.0, 0.5, 100)
	Mul4(vp[:], proj[:], view[:])
	f := NewFrustum(vp)

	tests := []struct {
		name   string
		center [3]float32
		radius float32
		want   bool
	}{
		{"ahead", [3]float32{0, 0, 10}, 1, true},
		{"behind", [3]float32{0, 0, -10}, 1, false},
		{"straddles near plane", [3]float32{0, 0, 0}, 1, true},
		{"beyond far plane", [3]float32{0, 0, 200}, 1, false},
		{"far to the side", [3]float32{100, 0, 10}, 1, false},
		{"large sphere to the side", [3]float32{100, 0, 10}, 100, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, f.ContainsSphere(tc.center, tc.radius))
		})
	}
}

func TestFrustumPlanesAreNormalized(t *testing.T) {
	var proj [16]float32
	Perspective(proj[:], 1.2, 16.0/9.0, 0.1, 50)
	f := NewFrustum(proj)
	for i, p := range f.Planes {
		assert.InDeltaf(t, 1, Dot3(p.Normal, p.Normal), eps, "plane %d", i)
	}
	// The near plane passes through z = -near in view space.
	assert.InDelta(t, 0, f.Planes[FrustumNear].SignedDistance([3]float32{0, 0, -0.1}), eps)
}
