package common

import (
	"github.com/chewxy/math32"
)

// TwoPi is a full turn in radians. Rect-light rotation parameters are expressed in turns.
const TwoPi = 2 * math32.Pi

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// Identity4 returns a new identity matrix.
//
// Returns:
//   - [16]float32: the 4x4 identity matrix
func Identity4() [16]float32 {
	var m [16]float32
	Identity(m[:])
	return m
}

// Mul4 multiplies two 4x4 matrices and stores the result in out.
// All matrices are stored in column-major order (OpenGL/WebGPU convention).
// Result: out = a * b, so b is applied to a column vector first.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements, may alias a or b)
//   - a: left-hand matrix (16 elements)
//   - b: right-hand matrix (16 elements)
func Mul4(out, a, b []float32) {
	var buf [16]float32
	for i := 0; i < 4; i++ { // column of B
		for j := 0; j < 4; j++ { // row of A
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += a[k*4+j] * b[i*4+k]
			}
			buf[i*4+j] = sum
		}
	}
	copy(out, buf[:])
}

// Compose multiplies transforms in application order: the first argument is applied to a
// vertex first. Compose(S, R, T) equals T * R * S in column-vector notation, which is the
// same transform a row-vector library writes as S * R * T.
//
// Parameters:
//   - steps: the transforms, first-applied first
//
// Returns:
//   - [16]float32: the combined transform (identity when steps is empty)
func Compose(steps ...[16]float32) [16]float32 {
	out := Identity4()
	for i := range steps {
		Mul4(out[:], steps[i][:], out[:])
	}
	return out
}

// Transpose4 transposes a 4x4 matrix.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements, may alias m)
//   - m: source matrix (16 elements)
func Transpose4(out, m []float32) {
	var buf [16]float32
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			buf[r*4+c] = m[c*4+r]
		}
	}
	copy(out, buf[:])
}

// Translate4 builds a translation matrix.
//
// Parameters:
//   - x, y, z: the translation
//
// Returns:
//   - [16]float32: the translation matrix
func Translate4(x, y, z float32) [16]float32 {
	m := Identity4()
	m[12], m[13], m[14] = x, y, z
	return m
}

// Scale4 builds a scale matrix. A zero factor is allowed and yields a singular matrix.
//
// Parameters:
//   - x, y, z: scale factors along each axis
//
// Returns:
//   - [16]float32: the scale matrix
func Scale4(x, y, z float32) [16]float32 {
	m := Identity4()
	m[0], m[5], m[10] = x, y, z
	return m
}

// RotateX4 builds a rotation of angle radians around the X axis.
func RotateX4(angle float32) [16]float32 {
	s, c := math32.Sincos(angle)
	m := Identity4()
	m[5], m[6] = c, s
	m[9], m[10] = -s, c
	return m
}

// RotateY4 builds a rotation of angle radians around the Y axis.
func RotateY4(angle float32) [16]float32 {
	s, c := math32.Sincos(angle)
	m := Identity4()
	m[0], m[2] = c, -s
	m[8], m[10] = s, c
	return m
}

// RotateZ4 builds a rotation of angle radians around the Z axis.
func RotateZ4(angle float32) [16]float32 {
	s, c := math32.Sincos(angle)
	m := Identity4()
	m[0], m[1] = c, s
	m[4], m[5] = -s, c
	return m
}

// RollPitchYaw4 builds the rotation that applies roll (Z) first, then pitch (X), then yaw (Y).
//
// Parameters:
//   - pitch: rotation around X in radians
//   - yaw: rotation around Y in radians
//   - roll: rotation around Z in radians
//
// Returns:
//   - [16]float32: the rotation matrix Ry * Rx * Rz
func RollPitchYaw4(pitch, yaw, roll float32) [16]float32 {
	var m [16]float32
	BuildModelMatrix(m[:], 0, 0, 0, pitch, yaw, roll, 1, 1, 1)
	return m
}

// Perspective creates a perspective projection matrix for a right-handed view space
// looking down -Z, mapping depth to the WebGPU clip range [0, 1].
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
func Perspective(out []float32, fovY, aspect, near, far float32) {
	f := 1.0 / math32.Tan(fovY/2.0)
	Identity(out)

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	out[15] = 0.0
}

// BuildModelMatrix constructs a 4x4 model matrix from position, Euler rotation, and scale.
// The rotation order is Y * X * Z (yaw-pitch-roll). All matrices are column-major.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - posX, posY, posZ: translation in world space
//   - rotX, rotY, rotZ: rotation angles in radians around each axis
//   - scaleX, scaleY, scaleZ: scale factors along each axis
func BuildModelMatrix(out []float32, posX, posY, posZ, rotX, rotY, rotZ, scaleX, scaleY, scaleZ float32) {
	sx, cx := math32.Sincos(rotX)
	sy, cy := math32.Sincos(rotY)
	sz, cz := math32.Sincos(rotZ)

	// R = Ry * Rx * Rz, column-major
	out[0] = (cy*cz + sy*sx*sz) * scaleX
	out[1] = (cx * sz) * scaleX
	out[2] = (-sy*cz + cy*sx*sz) * scaleX
	out[3] = 0

	out[4] = (cy*-sz + sy*sx*cz) * scaleY
	out[5] = (cx * cz) * scaleY
	out[6] = (sy*sz + cy*sx*cz) * scaleY
	out[7] = 0

	out[8] = (sy * cx) * scaleZ
	out[9] = (-sx) * scaleZ
	out[10] = (cy * cx) * scaleZ
	out[11] = 0

	out[12] = posX
	out[13] = posY
	out[14] = posZ
	out[15] = 1
}

// Invert4 computes the inverse of a 4x4 column-major matrix using the Laplace
// expansion (cofactor) method. If the matrix is singular (determinant exactly 0) the
// output is left unchanged and the function returns false.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - m: source matrix (16 elements, column-major)
//
// Returns:
//   - bool: true if the matrix was successfully inverted, false if singular
func Invert4(out, m []float32) bool {
	// 2x2 sub-determinants of the upper-left and lower-right quadrants.
	s0 := m[0]*m[5] - m[4]*m[1]
	s1 := m[0]*m[6] - m[4]*m[2]
	s2 := m[0]*m[7] - m[4]*m[3]
	s3 := m[1]*m[6] - m[5]*m[2]
	s4 := m[1]*m[7] - m[5]*m[3]
	s5 := m[2]*m[7] - m[6]*m[3]

	c5 := m[10]*m[15] - m[14]*m[11]
	c4 := m[9]*m[15] - m[13]*m[11]
	c3 := m[9]*m[14] - m[13]*m[10]
	c2 := m[8]*m[15] - m[12]*m[11]
	c1 := m[8]*m[14] - m[12]*m[10]
	c0 := m[8]*m[13] - m[12]*m[9]

	det := s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0
	if det == 0 {
		return false
	}

	invDet := 1.0 / det

	var buf [16]float32
	buf[0] = (m[5]*c5 - m[6]*c4 + m[7]*c3) * invDet
	buf[1] = (-m[1]*c5 + m[2]*c4 - m[3]*c3) * invDet
	buf[2] = (m[13]*s5 - m[14]*s4 + m[15]*s3) * invDet
	buf[3] = (-m[9]*s5 + m[10]*s4 - m[11]*s3) * invDet

	buf[4] = (-m[4]*c5 + m[6]*c2 - m[7]*c1) * invDet
	buf[5] = (m[0]*c5 - m[2]*c2 + m[3]*c1) * invDet
	buf[6] = (-m[12]*s5 + m[14]*s2 - m[15]*s1) * invDet
	buf[7] = (m[8]*s5 - m[10]*s2 + m[11]*s1) * invDet

	buf[8] = (m[4]*c4 - m[5]*c2 + m[7]*c0) * invDet
	buf[9] = (-m[0]*c4 + m[1]*c2 - m[3]*c0) * invDet
	buf[10] = (m[12]*s4 - m[13]*s2 + m[15]*s0) * invDet
	buf[11] = (-m[8]*s4 + m[9]*s2 - m[11]*s0) * invDet

	buf[12] = (-m[4]*c3 + m[5]*c1 - m[6]*c0) * invDet
	buf[13] = (m[0]*c3 - m[1]*c1 + m[2]*c0) * invDet
	buf[14] = (-m[12]*s3 + m[13]*s1 - m[14]*s0) * invDet
	buf[15] = (m[8]*s3 - m[9]*s1 + m[10]*s0) * invDet

	copy(out, buf[:])
	return true
}

// NormalMatrix computes the matrix that carries surface normals through the model
// transform m.
//
// For an invertible m the result is exactly transpose(inverse(m)). For a singular m
// (a flattening scale, as on rect-light proxies) the inverse does not exist, so the
// upper 3x3 is replaced by the cofactor matrix of m's upper 3x3 and the translation
// terms are dropped. The cofactor matrix equals det * transpose(inverse) whenever the
// inverse exists, so normals keep their direction and only need renormalizing.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - m: model matrix (16 elements, column-major)
//
// Returns:
//   - bool: true if the exact inverse-transpose was used, false if the cofactor fallback was
func NormalMatrix(out, m []float32) bool {
	var inv [16]float32
	if Invert4(inv[:], m) && finite(inv[:]) {
		Transpose4(out, inv[:])
		return true
	}

	a0 := [3]float32{m[0], m[1], m[2]}
	a1 := [3]float32{m[4], m[5], m[6]}
	a2 := [3]float32{m[8], m[9], m[10]}
	c0 := Cross3(a1, a2)
	c1 := Cross3(a2, a0)
	c2 := Cross3(a0, a1)

	Identity(out)
	out[0], out[1], out[2] = c0[0], c0[1], c0[2]
	out[4], out[5], out[6] = c1[0], c1[1], c1[2]
	out[8], out[9], out[10] = c2[0], c2[1], c2[2]
	return false
}

func finite(m []float32) bool {
	for _, v := range m {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// LookAt creates a right-handed view matrix that positions and orients the camera.
// The resulting matrix transforms world coordinates to view/camera space.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - eyeX, eyeY, eyeZ: camera position in world space
//   - centerX, centerY, centerZ: target point the camera looks at
//   - upX, upY, upZ: up vector defining camera orientation (typically 0,1,0)
func LookAt(out []float32, eyeX, eyeY, eyeZ, centerX, centerY, centerZ, upX, upY, upZ float32) {
	z := Normalize3([3]float32{eyeX - centerX, eyeY - centerY, eyeZ - centerZ})
	x := Normalize3(Cross3([3]float32{upX, upY, upZ}, z))
	y := Cross3(z, x)

	out[0], out[4], out[8], out[12] = x[0], x[1], x[2], -(x[0]*eyeX + x[1]*eyeY + x[2]*eyeZ)
	out[1], out[5], out[9], out[13] = y[0], y[1], y[2], -(y[0]*eyeX + y[1]*eyeY + y[2]*eyeZ)
	out[2], out[6], out[10], out[14] = z[0], z[1], z[2], -(z[0]*eyeX + z[1]*eyeY + z[2]*eyeZ)
	out[3], out[7], out[11], out[15] = 0, 0, 0, 1
}

// LookTo creates a view matrix from an eye position and a viewing direction.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - eye: camera position in world space
//   - dir: viewing direction (need not be normalized, must be non-zero)
//   - up: up vector
func LookTo(out []float32, eye, dir, up [3]float32) {
	d := Normalize3(dir)
	LookAt(out,
		eye[0], eye[1], eye[2],
		eye[0]+d[0], eye[1]+d[1], eye[2]+d[2],
		up[0], up[1], up[2],
	)
}

// TransformPoint applies m to the point p (w = 1) and returns the xyz result.
func TransformPoint(m []float32, p [3]float32) [3]float32 {
	return [3]float32{
		m[0]*p[0] + m[4]*p[1] + m[8]*p[2] + m[12],
		m[1]*p[0] + m[5]*p[1] + m[9]*p[2] + m[13],
		m[2]*p[0] + m[6]*p[1] + m[10]*p[2] + m[14],
	}
}

// TransformDirection applies m to the direction d (w = 0) and returns the xyz result.
func TransformDirection(m []float32, d [3]float32) [3]float32 {
	return [3]float32{
		m[0]*d[0] + m[4]*d[1] + m[8]*d[2],
		m[1]*d[0] + m[5]*d[1] + m[9]*d[2],
		m[2]*d[0] + m[6]*d[1] + m[10]*d[2],
	}
}

// Cross3 returns a x b.
func Cross3(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Dot3 returns a . b.
func Dot3(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Normalize3 returns v scaled to unit length, or the zero vector if v has zero length.
func Normalize3(v [3]float32) [3]float32 {
	length := math32.Sqrt(Dot3(v, v))
	if length == 0 {
		return [3]float32{}
	}
	inv := 1.0 / length
	return [3]float32{v[0] * inv, v[1] * inv, v[2] * inv}
}
