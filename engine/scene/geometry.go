package scene

// Mesh tables for the built-in primitives. Positions are in object space and every
// emitter rebases the local indices onto the end of the caller's vertex slice.

var (
	gray    = [3]float32{0.5, 0.5, 0.5}
	red     = [3]float32{1, 0, 0}
	green   = [3]float32{0, 1, 0}
	blue    = [3]float32{0, 0, 1}
	cyan    = [3]float32{0, 1, 1}
	magenta = [3]float32{1, 0, 1}
	yellow  = [3]float32{1, 1, 0}
)

// CubeRadius is the radius of the sphere bounding the cube meshes, which span [-1, 1].
const CubeRadius = 1.7320508

type face struct {
	color   [3]float32
	normal  [3]float32
	corners [4][3]float32
}

// cubeFaces lists the faces in emission order: back, left, right, top, bottom, front.
var cubeFaces = [6]face{
	{green, [3]float32{0, 0, 1}, [4][3]float32{{-1, -1, 1}, {1, -1, 1}, {-1, 1, 1}, {1, 1, 1}}},
	{magenta, [3]float32{-1, 0, 0}, [4][3]float32{{-1, -1, -1}, {-1, 1, -1}, {-1, -1, 1}, {-1, 1, 1}}},
	{cyan, [3]float32{1, 0, 0}, [4][3]float32{{1, -1, -1}, {1, 1, -1}, {1, -1, 1}, {1, 1, 1}}},
	{blue, [3]float32{0, 1, 0}, [4][3]float32{{-1, 1, -1}, {1, 1, -1}, {-1, 1, 1}, {1, 1, 1}}},
	{yellow, [3]float32{0, -1, 0}, [4][3]float32{{-1, -1, -1}, {1, -1, -1}, {-1, -1, 1}, {1, -1, 1}}},
	{red, [3]float32{0, 0, -1}, [4][3]float32{{-1, -1, -1}, {1, -1, -1}, {-1, 1, -1}, {1, 1, -1}}},
}

var cubeIndices = [36]uint32{
	0, 1, 2, 2, 1, 3,
	4, 6, 5, 6, 7, 5,
	8, 9, 10, 10, 9, 11,
	12, 14, 13, 14, 15, 13,
	16, 17, 18, 18, 17, 19,
	20, 22, 21, 22, 23, 21,
}

var sharedCubeCorners = [8]struct {
	position [3]float32
	color    [3]float32
}{
	{[3]float32{-1, -1, -1}, red},
	{[3]float32{1, -1, -1}, green},
	{[3]float32{-1, 1, -1}, blue},
	{[3]float32{1, 1, -1}, yellow},
	{[3]float32{-1, -1, 1}, magenta},
	{[3]float32{1, -1, 1}, cyan},
	{[3]float32{-1, 1, 1}, [3]float32{0, 0, 0}},
	{[3]float32{1, 1, 1}, [3]float32{1, 1, 1}},
}

var sharedCubeIndices = [36]uint32{
	0, 2, 1, 2, 3, 1,
	1, 3, 5, 3, 7, 5,
	2, 6, 3, 3, 6, 7,
	4, 5, 7, 4, 7, 6,
	0, 4, 2, 2, 4, 6,
	0, 1, 4, 1, 5, 4,
}

var floorCorners = [4][3]float32{
	{-100, -1, -100},
	{100, -1, -100},
	{100, -1, 100},
	{-100, -1, 100},
}

var floorIndices = [6]uint32{0, 2, 1, 0, 3, 2}

// quadCorners share their order with quadUVs.
var quadCorners = [4][3]float32{
	{-1, -1, 0},
	{1, -1, 0},
	{1, 1, 0},
	{-1, 1, 0},
}

var quadUVs = [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// quadIndices wind the quad both ways so the proxy is visible from either side.
var quadIndices = [12]uint32{0, 2, 1, 0, 3, 2, 0, 1, 2, 0, 2, 3}
