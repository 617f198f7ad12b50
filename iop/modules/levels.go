/*
DESCRIPTION
  levels.go implements the levels module: clamps to a black/white point
  and applies a gamma remap, the classic three-slider "levels" control.

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

const levelsParamsSize = 12

var levelsTable = params.Table{
	{Name: "black", Offset: 0, Type: params.TypeFloat32, Size: 4, SoftMin: 0, SoftMax: 0.5},
	{Name: "white", Offset: 4, Type: params.TypeFloat32, Size: 4, SoftMin: 0.5, SoftMax: 4},
	{Name: "gamma", Offset: 8, Type: params.TypeFloat32, Size: 4, SoftMin: 0.25, SoftMax: 4},
}

// Levels remaps [black, white] to [0, 1] with a gamma curve.
type Levels struct {
	iop.Identity
	black, white, gamma float32
}

func NewLevels() iop.Module { return &Levels{white: 1, gamma: 1} }

func (*Levels) OpName() string                     { return "levels" }
func (*Levels) DefaultColorspace() pixel.Colorspace { return pixel.ColorspaceRGB }
func (*Levels) ModuleFlags() iop.Flags             { return iop.AllowTiling }
func (*Levels) ParamsSize() int                     { return levelsParamsSize }
func (*Levels) DescriptorTable() params.Table       { return levelsTable }

func (*Levels) Init() []byte {
	buf := make([]byte, levelsParamsSize)
	putF32(buf, 0, 0)
	putF32(buf, 4, 1)
	putF32(buf, 8, 1)
	return buf
}

func (m *Levels) CommitParams(p *iop.Piece) error {
	m.black = getF32(p.Params, 0)
	m.white = getF32(p.Params, 4)
	if m.white <= m.black {
		m.white = m.black + 0.01
	}
	m.gamma = getF32(p.Params, 8)
	if m.gamma <= 0 {
		m.gamma = 1
	}
	return nil
}

func (m *Levels) apply(v float32) float32 {
	n := (v - m.black) / (m.white - m.black)
	if n < 0 {
		n = 0
	}
	if n > 1 {
		n = 1
	}
	return float32(math.Pow(float64(n), 1/float64(m.gamma)))
}

func (m *Levels) Process(p *iop.Piece, in, out *pixel.Buffer, roiIn, roiOut pixel.ROI) error {
	for y := 0; y < roiOut.Height; y++ {
		for x := 0; x < roiOut.Width; x++ {
			si, oi := in.At(x, y), out.At(x, y)
			out.Data[oi] = m.apply(in.Data[si])
			out.Data[oi+1] = m.apply(in.Data[si+1])
			out.Data[oi+2] = m.apply(in.Data[si+2])
			out.Data[oi+3] = in.Data[si+3]
		}
	}
	return nil
}
