/*
DESCRIPTION
  descriptor.go implements the buffer-descriptor state machine (C1):
  channel count, datatype, colour space, Bayer/X-Trans filter mask and
  per-channel processed maximum. Every intermediate buffer in the pipeline
  carries a Descriptor, copied by value between pieces.

LICENSE
  Copyright (C) 2026 the Pixelpipe Authors. All Rights Reserved.
*/

package pixel

// Datatype is the scalar storage type of a buffer's samples.
type Datatype uint8

const (
	// DatatypeNone marks a zero-value, unset descriptor.
	DatatypeNone Datatype = iota
	DatatypeFloat32
	DatatypeUint16
)

func (d Datatype) String() string {
	switch d {
	case DatatypeFloat32:
		return "float32"
	case DatatypeUint16:
		return "uint16"
	default:
		return "none"
	}
}

// Size returns the size in bytes of one sample of this datatype.
func (d Datatype) Size() int {
	switch d {
	case DatatypeFloat32:
		return 4
	case DatatypeUint16:
		return 2
	default:
		return 0
	}
}

// Colorspace tags the interpretation of a buffer's channels.
type Colorspace uint8

const (
	ColorspaceNone Colorspace = iota
	ColorspaceRaw
	ColorspaceRGB
	ColorspaceLab
	ColorspaceXYZ
)

func (c Colorspace) String() string {
	switch c {
	case ColorspaceRaw:
		return "raw"
	case ColorspaceRGB:
		return "rgb"
	case ColorspaceLab:
		return "lab"
	case ColorspaceXYZ:
		return "xyz"
	default:
		return "none"
	}
}

// FilterKind distinguishes the colour-filter-array family of a mosaic
// buffer, or the absence of one.
type FilterKind uint8

const (
	FilterNone FilterKind = iota
	FilterBayer
	FilterXTrans
)

// Filters describes the colour-filter-array pattern over a mosaic buffer.
// For Bayer sensors, Mask packs the CFA pattern as two bits per 2x2 cell
// (the same packed-32-bit convention used by raw decoders upstream of this
// pipeline). For X-Trans sensors, XTrans holds the 6x6 pattern of channel
// indices (0=R, 1=G, 2=B).
type Filters struct {
	Kind   FilterKind
	Mask   uint32
	XTrans [6][6]uint8
}

// At returns the CFA channel index (0=R, 1=G, 2=B) for mosaic coordinate
// (x, y). It panics if Kind is FilterNone; callers must check Kind first.
func (f Filters) At(x, y int) uint8 {
	switch f.Kind {
	case FilterBayer:
		cell := (y%2)*2 + x%2
		return uint8((f.Mask >> (uint(cell) * 2)) & 0x3)
	case FilterXTrans:
		return f.XTrans[y%6][x%6]
	default:
		panic("pixel: Filters.At called with FilterNone")
	}
}

// Descriptor is the buffer-type tag tracked by the pipeline: channel
// count, datatype, colour space, CFA filter mask, and per-channel
// processed maximum (the brightest value a channel has observed, used by
// downstream tone modules to normalise). Descriptor is a value type: it is
// copied between pieces, never shared mutably, and producers overwrite it
// via Module.OutputFormat.
type Descriptor struct {
	Channels          int
	Datatype          Datatype
	Colorspace        Colorspace
	Filters           Filters
	ProcessedMaximum  [3]float32
	WhitePoint        float32
}

// Zero returns the zero-value descriptor: no channels, no datatype, no
// colour space. Used as a sentinel "not yet determined" value.
func Zero() Descriptor { return Descriptor{} }

// ForRaw returns the descriptor for a freshly unpacked, single-channel
// mosaic buffer with the given CFA pattern and raw white point.
func ForRaw(filters Filters, whitePoint float32) Descriptor {
	return Descriptor{
		Channels:         1,
		Datatype:         DatatypeFloat32,
		Colorspace:       ColorspaceRaw,
		Filters:          filters,
		ProcessedMaximum: [3]float32{1, 1, 1},
		WhitePoint:       whitePoint,
	}
}

// ForRGB returns the descriptor for a 4-channel (RGBA) working buffer,
// the format used by every module downstream of demosaic.
func ForRGB() Descriptor {
	return Descriptor{
		Channels:         4,
		Datatype:         DatatypeFloat32,
		Colorspace:       ColorspaceRGB,
		ProcessedMaximum: [3]float32{1, 1, 1},
	}
}

// AssertMatches reports a DescriptorMismatch if any field of d diverges
// from what a consumer declared via expected. A zero value in
// expected.Channels or expected.Datatype is treated as "don't care" so a
// module that only cares about colour space need not restate the rest.
func (d Descriptor) AssertMatches(expected Descriptor) error {
	mismatch := false
	if expected.Channels != 0 && expected.Channels != d.Channels {
		mismatch = true
	}
	if expected.Datatype != DatatypeNone && expected.Datatype != d.Datatype {
		mismatch = true
	}
	if expected.Colorspace != ColorspaceNone && expected.Colorspace != d.Colorspace {
		mismatch = true
	}
	if mismatch {
		return &DescriptorMismatch{Expected: expected, Actual: d}
	}
	return nil
}

// BytesPerPixel returns Channels * Datatype.Size().
func (d Descriptor) BytesPerPixel() int {
	return d.Channels * d.Datatype.Size()
}
