/*
DESCRIPTION
  rgbcurve.go implements a single-knob tone curve (a gamma-style midtone
  control), standing in for the source's full spline-control-point
  curve editor: one float, the curve's midtone exponent.

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

const rgbcurveParamsSize = 4

var rgbcurveTable = params.Table{
	{Name: "midtone", Offset: 0, Type: params.TypeFloat32, Size: 4, SoftMin: 0.25, SoftMax: 4},
}

// Rgbcurve applies out = in ^ (1 / midtone) uniformly across channels.
type Rgbcurve struct {
	iop.Identity
	midtone float32
}

func NewRgbcurve() iop.Module { return &Rgbcurve{midtone: 1} }

func (*Rgbcurve) OpName() string                     { return "rgbcurve" }
func (*Rgbcurve) DefaultColorspace() pixel.Colorspace { return pixel.ColorspaceRGB }
func (*Rgbcurve) ModuleFlags() iop.Flags             { return iop.AllowTiling }
func (*Rgbcurve) ParamsSize() int                     { return rgbcurveParamsSize }
func (*Rgbcurve) DescriptorTable() params.Table       { return rgbcurveTable }

func (*Rgbcurve) Init() []byte {
	buf := make([]byte, rgbcurveParamsSize)
	putF32(buf, 0, 1)
	return buf
}

func (m *Rgbcurve) CommitParams(p *iop.Piece) error {
	m.midtone = getF32(p.Params, 0)
	if m.midtone <= 0 {
		m.midtone = 1
	}
	return nil
}

func (m *Rgbcurve) apply(v float32) float32 {
	if v < 0 {
		v = 0
	}
	return float32(math.Pow(float64(v), 1/float64(m.midtone)))
}

func (m *Rgbcurve) Process(p *iop.Piece, in, out *pixel.Buffer, roiIn, roiOut pixel.ROI) error {
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
