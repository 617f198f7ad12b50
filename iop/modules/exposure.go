/*
DESCRIPTION
  exposure.go implements the exposure module: a black-level subtraction
  followed by a stop (EV) gain, applied uniformly to every RGB channel.

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

const exposureParamsSize = 8

var exposureTable = params.Table{
	{Name: "ev", Offset: 0, Type: params.TypeFloat32, Size: 4, SoftMin: -3, SoftMax: 12},
	{Name: "black", Offset: 4, Type: params.TypeFloat32, Size: 4, SoftMin: -0.1, SoftMax: 0.1},
}

// Exposure applies a black-level offset and a stop gain.
type Exposure struct {
	iop.Identity
	gain  float32
	black float32
}

func NewExposure() iop.Module { return &Exposure{gain: 1} }

func (*Exposure) OpName() string                     { return "exposure" }
func (*Exposure) DefaultColorspace() pixel.Colorspace { return pixel.ColorspaceRGB }
func (*Exposure) ModuleFlags() iop.Flags             { return iop.AllowTiling }
func (*Exposure) ParamsSize() int                     { return exposureParamsSize }
func (*Exposure) DescriptorTable() params.Table       { return exposureTable }

func (*Exposure) Init() []byte {
	buf := make([]byte, exposureParamsSize)
	putF32(buf, 0, 0)
	putF32(buf, 4, 0)
	return buf
}

func (m *Exposure) CommitParams(p *iop.Piece) error {
	ev := getF32(p.Params, 0)
	m.black = getF32(p.Params, 4)
	m.gain = float32(math.Pow(2, float64(ev)))
	return nil
}

func (m *Exposure) Process(p *iop.Piece, in, out *pixel.Buffer, roiIn, roiOut pixel.ROI) error {
	for y := 0; y < roiOut.Height; y++ {
		for x := 0; x < roiOut.Width; x++ {
			si, oi := in.At(x, y), out.At(x, y)
			out.Data[oi] = (in.Data[si] - m.black) * m.gain
			out.Data[oi+1] = (in.Data[si+1] - m.black) * m.gain
			out.Data[oi+2] = (in.Data[si+2] - m.black) * m.gain
			out.Data[oi+3] = in.Data[si+3]
		}
	}
	return nil
}
