package light

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-rectlights/common"
)

// registryImpl is the implementation of the Registry interface.
// Each kind is a fixed array plus a live count. Records are never removed or compacted.
type registryImpl struct {
	points [Capacity]PointLight
	spots  [Capacity]SpotLight
	dirs   [Capacity]DirLight
	rects  [Capacity]RectLight

	counts  [kindCount]int
	dropped [kindCount]int

	logger *slog.Logger
}

// Registry holds the scene's lights in fixed-capacity, per-kind tables.
//
// Lights are registered once during scene setup. Adding past Capacity for a kind is a
// defined no-op: the record is dropped without an error and nothing already registered
// is evicted. There is no removal; the registry only grows.
//
// Lookups return a pointer into the registry's own storage together with an ok flag. The
// pointer stays valid for the registry's lifetime and may be used to mutate the record in
// place, for example to animate a rect light's rotation every frame.
//
// The registry is not safe for concurrent use. It is owned by the render goroutine.
type Registry interface {
	// AddPointLight registers a point light. No-op when the point table is full.
	//
	// Parameters:
	//   - position: world-space position
	//   - color: RGB color
	//   - intensity: scalar multiplier, packed into the color's fourth component on the GPU
	AddPointLight(position, color [3]float32, intensity float32)

	// AddSpotLight registers a spot light. No-op when the spot table is full.
	//
	// Parameters:
	//   - position: world-space position
	//   - color: RGB color
	//   - direction: cone axis (stored as given)
	//   - intensity: scalar multiplier
	//   - innerCone: cosine of the inner cone half-angle
	//   - outerCone: cosine of the outer cone half-angle
	AddSpotLight(position, color, direction [3]float32, intensity, innerCone, outerCone float32)

	// AddDirLight registers a directional light. No-op when the directional table is full.
	//
	// Parameters:
	//   - direction: light direction
	//   - color: RGB color
	//   - intensity: scalar multiplier
	AddDirLight(direction, color [3]float32, intensity float32)

	// AddRectLight registers a rectangular area light. No-op when the rect table is full.
	//
	// Parameters:
	//   - position: world-space center of the emitter
	//   - color: RGB color
	//   - intensity: scalar multiplier
	//   - width, height: emitter size, used as the proxy quad's x/y scale
	//   - rotationY: rotation around the local Y axis in turns
	//   - rotationZ: rotation around the Z axis in turns
	AddRectLight(position, color [3]float32, intensity, width, height, rotationY, rotationZ float32)

	// PointLight returns the point light at index i.
	//
	// Parameters:
	//   - i: zero-based index
	//
	// Returns:
	//   - *PointLight: the stored record, nil when absent
	//   - bool: false when i is negative or not below the point count
	PointLight(i int) (*PointLight, bool)

	// SpotLight returns the spot light at index i, or (nil, false) when i is out of range.
	SpotLight(i int) (*SpotLight, bool)

	// DirLight returns the directional light at index i, or (nil, false) when i is out of range.
	DirLight(i int) (*DirLight, bool)

	// RectLight returns the rect light at index i, or (nil, false) when i is out of range.
	RectLight(i int) (*RectLight, bool)

	// Count returns the number of registered lights of the given kind.
	//
	// Parameters:
	//   - kind: the light kind
	//
	// Returns:
	//   - int: the live count, between 0 and Capacity
	Count(kind Kind) int

	// Counts returns the live counts in shading-block order {point, spot, dir, rect}.
	//
	// Returns:
	//   - [4]int32: the count header written ahead of the light arrays
	Counts() [4]int32

	// Dropped returns how many adds of the given kind were ignored because the table was full.
	//
	// Parameters:
	//   - kind: the light kind
	//
	// Returns:
	//   - int: number of dropped adds since construction
	Dropped(kind Kind) int

	// ShadingBlock builds the shading-stage uniform block from the current records.
	// Slots past each kind's count are left zeroed; they are transferred but never read.
	//
	// Parameters:
	//   - viewPos: camera world position, used by the fragment stage for specular terms
	//
	// Returns:
	//   - GPUShadingBlock: the packed block
	ShadingBlock(viewPos [3]float32) GPUShadingBlock

	// Marshal serializes ShadingBlock(viewPos) for upload.
	//
	// Parameters:
	//   - viewPos: camera world position
	//
	// Returns:
	//   - []byte: the shading block bytes (GPUShadingBlockSize long)
	Marshal(viewPos [3]float32) []byte
}

var _ Registry = &registryImpl{}

// NewRegistry creates an empty Registry with any provided options applied.
//
// Parameters:
//   - opts: variadic list of RegistryBuilderOption functions
//
// Returns:
//   - Registry: a new, empty registry
func NewRegistry(opts ...RegistryBuilderOption) Registry {
	r := &registryImpl{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// reserve claims the next index for kind, or reports false when the table is full.
func (r *registryImpl) reserve(kind Kind) (int, bool) {
	if r.counts[kind] >= Capacity {
		r.dropped[kind]++
		common.LoggerOr(r.logger).Debug("light table full, add ignored",
			"kind", kind.String(),
			"capacity", Capacity,
			"dropped", r.dropped[kind],
		)
		return 0, false
	}
	i := r.counts[kind]
	r.counts[kind]++
	return i, true
}

func (r *registryImpl) AddPointLight(position, color [3]float32, intensity float32) {
	i, ok := r.reserve(KindPoint)
	if !ok {
		return
	}
	r.points[i] = PointLight{Position: position, Color: color, Intensity: intensity}
}

func (r *registryImpl) AddSpotLight(position, color, direction [3]float32, intensity, innerCone, outerCone float32) {
	i, ok := r.reserve(KindSpot)
	if !ok {
		return
	}
	r.spots[i] = SpotLight{
		Position:  position,
		Direction: direction,
		Color:     color,
		Intensity: intensity,
		InnerCone: innerCone,
		OuterCone: outerCone,
	}
}

func (r *registryImpl) AddDirLight(direction, color [3]float32, intensity float32) {
	i, ok := r.reserve(KindDir)
	if !ok {
		return
	}
	r.dirs[i] = DirLight{Direction: direction, Color: color, Intensity: intensity}
}

func (r *registryImpl) AddRectLight(position, color [3]float32, intensity, width, height, rotationY, rotationZ float32) {
	i, ok := r.reserve(KindRect)
	if !ok {
		return
	}
	r.rects[i] = RectLight{
		Position:  position,
		Color:     color,
		Intensity: intensity,
		Width:     width,
		Height:    height,
		RotationY: rotationY,
		RotationZ: rotationZ,
	}
}

func (r *registryImpl) PointLight(i int) (*PointLight, bool) {
	if i < 0 || i >= r.counts[KindPoint] {
		return nil, false
	}
	return &r.points[i], true
}

func (r *registryImpl) SpotLight(i int) (*SpotLight, bool) {
	if i < 0 || i >= r.counts[KindSpot] {
		return nil, false
	}
	return &r.spots[i], true
}

func (r *registryImpl) DirLight(i int) (*DirLight, bool) {
	if i < 0 || i >= r.counts[KindDir] {
		return nil, false
	}
	return &r.dirs[i], true
}

func (r *registryImpl) RectLight(i int) (*RectLight, bool) {
	if i < 0 || i >= r.counts[KindRect] {
		return nil, false
	}
	return &r.rects[i], true
}

func (r *registryImpl) Count(kind Kind) int {
	if kind < 0 || kind >= kindCount {
		return 0
	}
	return r.counts[kind]
}

func (r *registryImpl) Counts() [4]int32 {
	return [4]int32{
		int32(r.counts[KindPoint]),
		int32(r.counts[KindSpot]),
		int32(r.counts[KindDir]),
		int32(r.counts[KindRect]),
	}
}

func (r *registryImpl) Dropped(kind Kind) int {
	if kind < 0 || kind >= kindCount {
		return 0
	}
	return r.dropped[kind]
}

func (r *registryImpl) ShadingBlock(viewPos [3]float32) GPUShadingBlock {
	b := GPUShadingBlock{
		ViewPos: [4]float32{viewPos[0], viewPos[1], viewPos[2], 1},
		Counts:  r.Counts(),
	}
	for i := 0; i < r.counts[KindPoint]; i++ {
		b.Points[i] = newGPUPointLight(r.points[i])
	}
	for i := 0; i < r.counts[KindSpot]; i++ {
		b.Spots[i] = newGPUSpotLight(r.spots[i])
	}
	for i := 0; i < r.counts[KindDir]; i++ {
		b.Dirs[i] = newGPUDirLight(r.dirs[i])
	}
	for i := 0; i < r.counts[KindRect]; i++ {
		b.Rects[i] = newGPURectLight(r.rects[i])
	}
	return b
}

func (r *registryImpl) Marshal(viewPos [3]float32) []byte {
	b := r.ShadingBlock(viewPos)
	return b.Marshal()
}
