/*
DESCRIPTION
  colorbalance.go implements a simplified lift/gamma/gain colour-balance
  wheel: one triplet of floats per stage, applied per RGB channel as
  out = (in*gain + lift*(1-in)) ^ (1/gamma).

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

const colorbalanceParamsSize = 36

var colorbalanceTable = func() params.Table {
	names := [9]string{"lift_r", "lift_g", "lift_b", "gamma_r", "gamma_g", "gamma_b", "gain_r", "gain_g", "gain_b"}
	t := make(params.Table, 9)
	for i, n := range names {
		lo, hi := -0.5, 0.5
		if i >= 3 {
			lo, hi = 0.25, 4
		}
		t[i] = params.Field{Name: n, Offset: i * 4, Type: params.TypeFloat32, Size: 4, SoftMin: lo, SoftMax: hi}
	}
	return t
}()

// Colorbalance applies a per-channel lift/gamma/gain triplet.
type Colorbalance struct {
	iop.Identity
	lift, gamma, gain [3]float32
}

func NewColorbalance() iop.Module { return &Colorbalance{} }

func (*Colorbalance) OpName() string                     { return "colorbalance" }
func (*Colorbalance) DefaultColorspace() pixel.Colorspace { return pixel.ColorspaceRGB }
func (*Colorbalance) ModuleFlags() iop.Flags             { return iop.AllowTiling }
func (*Colorbalance) ParamsSize() int                     { return colorbalanceParamsSize }
func (*Colorbalance) DescriptorTable() params.Table       { return colorbalanceTable }

func (*Colorbalance) Init() []byte {
	buf := make([]byte, colorbalanceParamsSize)
	for i := 0; i < 3; i++ {
		putF32(buf, (3+i)*4, 1) // gamma
		putF32(buf, (6+i)*4, 1) // gain
	}
	return buf
}

func (m *Colorbalance) CommitParams(p *iop.Piece) error {
	for i := 0; i < 3; i++ {
		m.lift[i] = getF32(p.Params, i*4)
		m.gamma[i] = getF32(p.Params, (3+i)*4)
		m.gain[i] = getF32(p.Params, (6+i)*4)
	}
	return nil
}

func (m *Colorbalance) apply(ch int, v float32) float32 {
	out := v*m.gain[ch] + m.lift[ch]*(1-v)
	if out < 0 {
		out = 0
	}
	g := m.gamma[ch]
	if g <= 0 {
		g = 1
	}
	return float32(math.Pow(float64(out), 1/float64(g)))
}

func (m *Colorbalance) Process(p *iop.Piece, in, out *pixel.Buffer, roiIn, roiOut pixel.ROI) error {
	for y := 0; y < roiOut.Height; y++ {
		for x := 0; x < roiOut.Width; x++ {
			si, oi := in.At(x, y), out.At(x, y)
			out.Data[oi] = m.apply(0, in.Data[si])
			out.Data[oi+1] = m.apply(1, in.Data[si+1])
			out.Data[oi+2] = m.apply(2, in.Data[si+2])
			out.Data[oi+3] = in.Data[si+3]
		}
	}
	return nil
}
