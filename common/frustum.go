package common

import "github.com/chewxy/math32"

// Plane is the set of points p with Dot3(Normal, p) + Distance = 0.
// Points with a positive signed distance lie on the inner side.
type Plane struct {
	Normal   [3]float32
	Distance float32
}

// SignedDistance returns the distance of p from the plane, positive on the inner side.
func (p Plane) SignedDistance(point [3]float32) float32 {
	return Dot3(p.Normal, point) + p.Distance
}

// Frustum is the six inward-facing planes of a view volume.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// NewFrustum extracts the frustum planes of a column-major projection * view matrix with
// WebGPU clip depth in [0, 1] (Gribb/Hartmann).
//
// Reference: https://www8.cs.umu.se/kurser/5DV051/HT12/lab/plane_extraction.pdf
//
// Parameters:
//   - viewProj: the combined view-projection matrix
//
// Returns:
//   - Frustum: the planes, normalized
func NewFrustum(viewProj [16]float32) Frustum {
	// Row i of a column-major matrix is (m[i], m[4+i], m[8+i], m[12+i]).
	row := func(i int) [4]float32 {
		return [4]float32{viewProj[i], viewProj[4+i], viewProj[8+i], viewProj[12+i]}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)
	add := func(a, b [4]float32) [4]float32 { return [4]float32{a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3]} }
	sub := func(a, b [4]float32) [4]float32 { return [4]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2], a[3] - b[3]} }

	var f Frustum
	for i, eq := range [6][4]float32{
		FrustumLeft:   add(r3, r0),
		FrustumRight:  sub(r3, r0),
		FrustumBottom: add(r3, r1),
		FrustumTop:    sub(r3, r1),
		FrustumNear:   r2, // z_clip >= 0
		FrustumFar:    sub(r3, r2),
	} {
		f.Planes[i] = normalizePlane(eq)
	}
	return f
}

func normalizePlane(eq [4]float32) Plane {
	n := [3]float32{eq[0], eq[1], eq[2]}
	length := math32.Sqrt(Dot3(n, n))
	if length == 0 {
		return Plane{Normal: n, Distance: eq[3]}
	}
	inv := 1 / length
	return Plane{
		Normal:   [3]float32{n[0] * inv, n[1] * inv, n[2] * inv},
		Distance: eq[3] * inv,
	}
}

// ContainsSphere reports whether any part of the sphere lies inside the frustum.
// The test is conservative: spheres near a corner may be reported visible.
//
// Parameters:
//   - center: sphere center in world space
//   - radius: sphere radius
//
// Returns:
//   - bool: false only if the sphere is entirely outside one plane
func (f Frustum) ContainsSphere(center [3]float32, radius float32) bool {
	for _, p := range f.Planes {
		if p.SignedDistance(center) < -radius {
			return false
		}
	}
	return true
}
