/*
DESCRIPTION
  filmic.go implements a simplified filmic tone-mapping curve: normalise
  the working range to the module's black/white points, compress with a
  Reinhard-style rational falloff, then apply a contrast exponent.

LICENSE
  Copyright (C) 2026 the Pixelpipe Authors. All Rights Reserved.
*/

package modules

import (
	"math"

	"github.com/rawforge/pixelpipe/iop"
	"github.com/rawforge/pixelpipe/params"
	"github.com/rawforge/pixelpipe/pixel"
)

const filmicParamsSize = 12

var filmicTable = params.Table{
	{Name: "black", Offset: 0, Type: params.TypeFloat32, Size: 4, SoftMin: -0.1, SoftMax: 0.1},
	{Name: "white", Offset: 4, Type: params.TypeFloat32, Size: 4, SoftMin: 1, SoftMax: 16},
	{Name: "contrast", Offset: 8, Type: params.TypeFloat32, Size: 4, SoftMin: 0.5, SoftMax: 2},
}

// Filmic compresses highlights with a Reinhard-style rational curve.
type Filmic struct {
	iop.Identity
	black, white, contrast float32
}

func NewFilmic() iop.Module { return &Filmic{white: 4, contrast: 1} }

func (*Filmic) OpName() string                     { return "filmic" }
func (*Filmic) DefaultColorspace() pixel.Colorspace { return pixel.ColorspaceRGB }
func (*Filmic) ModuleFlags() iop.Flags             { return iop.AllowTiling }
func (*Filmic) ParamsSize() int                     { return filmicParamsSize }
func (*Filmic) DescriptorTable() params.Table       { return filmicTable }

func (*Filmic) Init() []byte {
	buf := make([]byte, filmicParamsSize)
	putF32(buf, 0, 0)
	putF32(buf, 4, 4)
	putF32(buf, 8, 1)
	return buf
}

func (m *Filmic) CommitParams(p *iop.Piece) error {
	m.black = getF32(p.Params, 0)
	m.white = getF32(p.Params, 4)
	if m.white <= m.black {
		m.white = m.black + 1
	}
	m.contrast = getF32(p.Params, 8)
	if m.contrast <= 0 {
		m.contrast = 1
	}
	return nil
}

func (m *Filmic) curve(v float32) float32 {
	n := (v - m.black) / (m.white - m.black)
	if n < 0 {
		n = 0
	}
	compressed := n / (1 + n)
	return float32(math.Pow(float64(compressed), float64(1/m.contrast)))
}

func (m *Filmic) Process(p *iop.Piece, in, out *pixel.Buffer, roiIn, roiOut pixel.ROI) error {
	for y := 0; y < roiOut.Height; y++ {
		for x := 0; x < roiOut.Width; x++ {
			si, oi := in.At(x, y), out.At(x, y)
			out.Data[oi] = m.curve(in.Data[si])
			out.Data[oi+1] = m.curve(in.Data[si+1])
			out.Data[oi+2] = m.curve(in.Data[si+2])
			out.Data[oi+3] = in.Data[si+3]
		}
	}
	return nil
}
