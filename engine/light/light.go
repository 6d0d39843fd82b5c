// Package light holds the fixed-capacity light registry and the shading-stage uniform block
// it serializes into each frame.
package light

import (
	"github.com/chewxy/math32"
)

// Capacity is the number of records each light kind can hold. It matches the array
// lengths declared in the fragment shader's shading block.
const Capacity = 10

// Kind identifies one of the four light record types.
type Kind int

const (
	// KindPoint emits in all directions from a position.
	KindPoint Kind = iota

	// KindSpot emits in a cone from a position along a direction, with inner and outer cone cosines.
	KindSpot

	// KindDir is a distant source with a direction only, like the sun.
	KindDir

	// KindRect is a rectangular area light shaded with linearly transformed cosines and drawn
	// as an emissive quad proxy.
	KindRect

	kindCount
)

// Kinds lists every light kind in shading-block order.
var Kinds = [...]Kind{KindPoint, KindSpot, KindDir, KindRect}

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindSpot:
		return "spot"
	case KindDir:
		return "dir"
	case KindRect:
		return "rect"
	default:
		return "unknown"
	}
}

// PointLight is an omnidirectional light.
type PointLight struct {
	Position  [3]float32
	Color     [3]float32
	Intensity float32
}

// SpotLight is a cone light. InnerCone and OuterCone are cosines of the cone half-angles;
// fragments inside the inner cone receive full intensity and fragments outside the outer
// cone receive none.
type SpotLight struct {
	Position  [3]float32
	Direction [3]float32
	Color     [3]float32
	Intensity float32
	InnerCone float32
	OuterCone float32
}

// DirLight is a directional light with no position.
type DirLight struct {
	Direction [3]float32
	Color     [3]float32
	Intensity float32
}

// RectLight is a rectangular area light.
//
// Width and Height scale the unit proxy quad. RotationY and RotationZ are expressed in
// turns (1.0 is a full revolution) and rotate the quad around its local Y axis and then
// the Z axis before it is moved to Position.
type RectLight struct {
	Position  [3]float32
	Color     [3]float32
	Intensity float32
	Width     float32
	Height    float32
	RotationY float32
	RotationZ float32
}

// Params returns the packed shader parameters {width, height, rotationY, rotationZ}.
func (r RectLight) Params() [4]float32 {
	return [4]float32{r.Width, r.Height, r.RotationY, r.RotationZ}
}

// SpotConeFromDegrees converts inner and outer cone half-angles in degrees into the
// cosines stored on a SpotLight.
//
// Parameters:
//   - innerDeg: inner cone half-angle in degrees
//   - outerDeg: outer cone half-angle in degrees
//
// Returns:
//   - inner: cos(innerDeg)
//   - outer: cos(outerDeg)
func SpotConeFromDegrees(innerDeg, outerDeg float32) (inner, outer float32) {
	return cosDeg(innerDeg), cosDeg(outerDeg)
}

// cosDeg converts an angle in degrees to the cosine of that angle.
func cosDeg(deg float32) float32 {
	return math32.Cos(deg * math32.Pi / 180.0)
}
