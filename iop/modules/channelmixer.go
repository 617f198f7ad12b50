/*
DESCRIPTION
  channelmixer.go implements the channel-mixer module: a free-form 3x3
  matrix applied to each pixel's RGB, the same colormath.Mat3.Apply
  primitive colorin and colorcalib use for their fixed matrices.

LICENSE
  Copyright (C) 2026 the Pixelpipe Authors. All Rights Reserved.
*/

package modules

import (
	"github.com/rawforge/pixelpipe/internal/colormath"
	"github.com/rawforge/pixelpipe/iop"
	"github.com/rawforge/pixelpipe/params"
	"github.com/rawforge/pixelpipe/pixel"
)

const channelmixerParamsSize = 36

var channelmixerTable = func() params.Table {
	names := [9]string{"rr", "rg", "rb", "gr", "gg", "gb", "br", "bg", "bb"}
	t := make(params.Table, 9)
	for i, n := range names {
		t[i] = params.Field{Name: n, Offset: i * 4, Type: params.TypeFloat32, Size: 4, SoftMin: -2, SoftMax: 2}
	}
	return t
}()

// Channelmixer applies a user-defined 3x3 RGB mixing matrix.
type Channelmixer struct {
	iop.Identity
	mat colormath.Mat3
}

func NewChannelmixer() iop.Module { return &Channelmixer{} }

func (*Channelmixer) OpName() string                     { return "channelmixer" }
func (*Channelmixer) DefaultColorspace() pixel.Colorspace { return pixel.ColorspaceRGB }
func (*Channelmixer) ModuleFlags() iop.Flags             { return iop.AllowTiling }
func (*Channelmixer) ParamsSize() int                     { return channelmixerParamsSize }
func (*Channelmixer) DescriptorTable() params.Table       { return channelmixerTable }

func (*Channelmixer) Init() []byte {
	buf := make([]byte, channelmixerParamsSize)
	id := colormath.Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}
	for i, v := range id {
		putF32(buf, i*4, float32(v))
	}
	return buf
}

func (m *Channelmixer) CommitParams(p *iop.Piece) error {
	for i := range m.mat {
		m.mat[i] = float64(getF32(p.Params, i*4))
	}
	return nil
}

func (m *Channelmixer) Process(p *iop.Piece, in, out *pixel.Buffer, roiIn, roiOut pixel.ROI) error {
	for y := 0; y < roiOut.Height; y++ {
		for x := 0; x < roiOut.Width; x++ {
			si, oi := in.At(x, y), out.At(x, y)
			r, g, b := m.mat.Apply(float64(in.Data[si]), float64(in.Data[si+1]), float64(in.Data[si+2]))
			out.Data[oi] = float32(r)
			out.Data[oi+1] = float32(g)
			out.Data[oi+2] = float32(b)
			out.Data[oi+3] = in.Data[si+3]
		}
	}
	return nil
}
