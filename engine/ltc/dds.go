package ltc

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

var (
	// ErrInvalidDDS is returned when the input is not a well-formed DDS file.
	ErrInvalidDDS = errors.New("ltc: invalid dds")

	// ErrUnsupportedFormat is returned for DDS pixel formats other than float RGBA, RG and R.
	ErrUnsupportedFormat = errors.New("ltc: unsupported dds pixel format")
)

const (
	ddsMagic      = 0x20534444 // "DDS "
	ddsHeaderSize = 124
	dx10Size      = 20

	fourCCDX10 = 0x30315844 // "DX10"

	// Legacy D3DFORMAT codes stored directly in the fourCC field.
	d3dfmtA16B16G16R16F = 113
	d3dfmtA32B32G32R32F = 116

	dxgiR32G32B32A32Float = 2
	dxgiR16G16B16A16Float = 10
	dxgiR32G32Float       = 16
	dxgiR32Float          = 41
)

// texelFormat describes how one source texel is stored.
type texelFormat struct {
	channels int
	half     bool
}

func (f texelFormat) bytesPerTexel() int {
	if f.half {
		return f.channels * 2
	}
	return f.channels * 4
}

// DecodeDDS reads the first surface (mip 0, array slice 0) of a DDS file and expands it to
// RGBA float32. Missing channels are filled with 0 and alpha with 1.
//
// Supported pixel formats are the legacy float fourCC codes 113 (RGBA16F) and 116
// (RGBA32F), and the DX10 header formats R32G32B32A32_FLOAT, R16G16B16A16_FLOAT,
// R32G32_FLOAT and R32_FLOAT.
//
// Parameters:
//   - r: the DDS byte stream
//
// Returns:
//   - *Table: the decoded table
//   - error: ErrInvalidDDS or ErrUnsupportedFormat (wrapped) on failure
func DecodeDDS(r io.Reader) (*Table, error) {
	var head [4 + ddsHeaderSize]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrInvalidDDS, err)
	}
	le := binary.LittleEndian
	if le.Uint32(head[0:4]) != ddsMagic {
		return nil, fmt.Errorf("%w: bad magic", ErrInvalidDDS)
	}
	h := head[4:]
	if le.Uint32(h[0:4]) != ddsHeaderSize {
		return nil, fmt.Errorf("%w: header size %d", ErrInvalidDDS, le.Uint32(h[0:4]))
	}
	height := le.Uint32(h[8:12])
	width := le.Uint32(h[12:16])
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: empty surface %dx%d", ErrInvalidDDS, width, height)
	}

	fourCC := le.Uint32(h[80:84])
	var format texelFormat
	switch fourCC {
	case d3dfmtA16B16G16R16F:
		format = texelFormat{channels: 4, half: true}
	case d3dfmtA32B32G32R32F:
		format = texelFormat{channels: 4}
	case fourCCDX10:
		var ext [dx10Size]byte
		if _, err := io.ReadFull(r, ext[:]); err != nil {
			return nil, fmt.Errorf("%w: reading dx10 header: %v", ErrInvalidDDS, err)
		}
		dxgi := le.Uint32(ext[0:4])
		switch dxgi {
		case dxgiR32G32B32A32Float:
			format = texelFormat{channels: 4}
		case dxgiR16G16B16A16Float:
			format = texelFormat{channels: 4, half: true}
		case dxgiR32G32Float:
			format = texelFormat{channels: 2}
		case dxgiR32Float:
			format = texelFormat{channels: 1}
		default:
			return nil, fmt.Errorf("%w: dxgi format %d", ErrUnsupportedFormat, dxgi)
		}
	default:
		return nil, fmt.Errorf("%w: fourCC %d", ErrUnsupportedFormat, fourCC)
	}

	texels := int(width) * int(height)
	raw := make([]byte, texels*format.bytesPerTexel())
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, fmt.Errorf("%w: reading %dx%d surface: %v", ErrInvalidDDS, width, height, err)
	}

	out := make([]float32, texels*4)
	stride := format.bytesPerTexel()
	for t := 0; t < texels; t++ {
		src := raw[t*stride : (t+1)*stride]
		dst := out[t*4 : t*4+4]
		dst[3] = 1
		for c := 0; c < format.channels; c++ {
			if format.half {
				dst[c] = halfToFloat(le.Uint16(src[c*2:]))
			} else {
				dst[c] = math.Float32frombits(le.Uint32(src[c*4:]))
			}
		}
	}

	return &Table{Width: width, Height: height, Texels: out}, nil
}

// halfToFloat widens an IEEE 754 binary16 value to float32.
func halfToFloat(h uint16) float32 {
	sign := uint32(h>>15) << 31
	exp := uint32(h>>10) & 0x1f
	mant := uint32(h) & 0x3ff

	switch {
	case exp == 0 && mant == 0:
		return math.Float32frombits(sign)
	case exp == 0:
		// Subnormal: renormalize into the float32 range.
		e := uint32(127 - 15 + 1)
		for mant&0x400 == 0 {
			mant <<= 1
			e--
		}
		mant &= 0x3ff
		return math.Float32frombits(sign | e<<23 | mant<<13)
	case exp == 0x1f:
		return math.Float32frombits(sign | 0xff<<23 | mant<<13)
	default:
		return math.Float32frombits(sign | (exp+127-15)<<23 | mant<<13)
	}
}
