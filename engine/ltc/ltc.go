// Package ltc holds the linearly transformed cosine lookup tables used to shade rect lights.
//
// Three tables are used: the inverse-matrix table (four coefficients of the inverse LTC
// matrix per roughness and view angle), the amplitude table (the BRDF norm), and the
// pre-filtered table. Each is decoded to RGBA float32 texels for upload.
package ltc

import (
	"encoding/binary"
	"math"
)

// Table is a decoded lookup table stored as tightly packed RGBA float32 texels in row order.
type Table struct {
	Name   string
	Width  uint32
	Height uint32
	Texels []float32
}

// Set groups the three tables bound to the shading pass.
type Set struct {
	Matrix    *Table
	Amplitude *Table
	Filtered  *Table
}

// Paths names the files a Set is loaded from.
type Paths struct {
	Matrix    string `yaml:"matrix" toml:"matrix"`
	Amplitude string `yaml:"amplitude" toml:"amplitude"`
	Filtered  string `yaml:"filtered" toml:"filtered"`
}

// DefaultPaths returns the conventional table file names, relative to the working directory.
func DefaultPaths() Paths {
	return Paths{
		Matrix:    "ltc_mat.dds",
		Amplitude: "ltc_amp.dds",
		Filtered:  "dataFiltered.dds",
	}
}

// Neutral returns a 1x1 table whose single texel is (1, 0, 0, 1).
// Read as an inverse matrix it is the identity, read as an amplitude it is 1, so shading
// degrades to a plain clamped-cosine integral when the real tables are unavailable.
//
// Returns:
//   - *Table: the fallback table
func Neutral() *Table {
	return &Table{
		Name:   "neutral",
		Width:  1,
		Height: 1,
		Texels: []float32{1, 0, 0, 1},
	}
}

// NeutralSet returns a Set built only from neutral tables.
func NeutralSet() Set {
	return Set{Matrix: Neutral(), Amplitude: Neutral(), Filtered: Neutral()}
}

// At returns the texel at (x, y). Coordinates are clamped to the table edges.
//
// Parameters:
//   - x: column
//   - y: row
//
// Returns:
//   - [4]float32: the RGBA texel
func (t *Table) At(x, y int) [4]float32 {
	x = clamp(x, 0, int(t.Width)-1)
	y = clamp(y, 0, int(t.Height)-1)
	i := (y*int(t.Width) + x) * 4
	return [4]float32{t.Texels[i], t.Texels[i+1], t.Texels[i+2], t.Texels[i+3]}
}

// BytesPerRow returns the row pitch of the packed texel data.
func (t *Table) BytesPerRow() uint32 {
	return t.Width * 16
}

// Bytes packs the texels little-endian for a RGBA32Float texture upload.
//
// Returns:
//   - []byte: Width * Height * 16 bytes
func (t *Table) Bytes() []byte {
	buf := make([]byte, len(t.Texels)*4)
	for i, f := range t.Texels {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
