/*
DESCRIPTION
  colorcalib.go implements the color-calibration module: a second,
  later-in-chain chromatic-adaptation candidate (§4.8). It claims the CAT
  from the pipeline's chroma coordinator during CommitParams; if granted
  (which only happens when white balance is disabled, since white
  balance's lower iop-order always wins a contested claim) it applies the
  full Bradford adaptation from the as-shot illuminant to D65. If denied,
  it degrades to the identity transform, since white balance has already
  performed the correction upstream.

LICENSE
  Copyright (C) 2026 the Pixelpipe Authors. All Rights Reserved.
*/

package modules

import (
	"strconv"

	"github.com/rawforge/pixelpipe/chroma"
	"github.com/rawforge/pixelpipe/internal/colormath"
	"github.com/rawforge/pixelpipe/iop"
	"github.com/rawforge/pixelpipe/params"
	"github.com/rawforge/pixelpipe/pixel"
)

const colorcalibParamsSize = 4 // strength float32

var colorcalibTable = params.Table{
	{Name: "strength", Offset: 0, Type: params.TypeFloat32, Size: 4, SoftMin: 0, SoftMax: 1},
}

// Colorcalib is the downstream CAT candidate.
type Colorcalib struct {
	iop.Identity
	cat      colormath.Mat3
	active   bool
	strength float32
}

func NewColorcalib() iop.Module { return &Colorcalib{} }

func (*Colorcalib) OpName() string                     { return "colorcalib" }
func (*Colorcalib) DefaultColorspace() pixel.Colorspace { return pixel.ColorspaceRGB }
func (*Colorcalib) ModuleFlags() iop.Flags             { return iop.AllowTiling | iop.OneInstance }
func (*Colorcalib) ParamsSize() int                     { return colorcalibParamsSize }
func (*Colorcalib) DescriptorTable() params.Table       { return colorcalibTable }

func (*Colorcalib) Init() []byte {
	buf := make([]byte, colorcalibParamsSize)
	putF32(buf, 0, 1)
	return buf
}

func (m *Colorcalib) CommitParams(p *iop.Piece) error {
	m.strength = getF32(p.Params, 0)
	m.active = false
	if p.Chroma == nil {
		return nil
	}
	id := "colorcalib#" + strconv.Itoa(p.Instance)
	granted := p.Chroma.ClaimCAT(chroma.Claimant{PieceID: id, IopOrder: p.IopOrder, Instance: p.Instance})
	if !granted {
		return nil
	}
	state := p.Chroma.WhiteBalanceState()
	var asShotXYZ, d65XYZ [3]float64
	for i := 0; i < 3; i++ {
		asShotXYZ[i] = state.AsShot[i]
		d65XYZ[i] = colormath.D65XYZ[i]
	}
	if asShotXYZ == ([3]float64{}) {
		asShotXYZ = colormath.D65XYZ
	}
	m.cat = colormath.BradfordCAT(asShotXYZ, d65XYZ)
	m.active = true
	return nil
}

func (m *Colorcalib) Process(p *iop.Piece, in, out *pixel.Buffer, roiIn, roiOut pixel.ROI) error {
	if !m.active {
		copy(out.Data, in.Data[:len(out.Data)])
		return nil
	}
	for y := 0; y < roiOut.Height; y++ {
		for x := 0; x < roiOut.Width; x++ {
			si, oi := in.At(x, y), out.At(x, y)
			r, g, b := m.cat.Apply(float64(in.Data[si]), float64(in.Data[si+1]), float64(in.Data[si+2]))
			mix := float64(m.strength)
			out.Data[oi] = float32((1-mix)*float64(in.Data[si]) + mix*r)
			out.Data[oi+1] = float32((1-mix)*float64(in.Data[si+1]) + mix*g)
			out.Data[oi+2] = float32((1-mix)*float64(in.Data[si+2]) + mix*b)
			out.Data[oi+3] = in.Data[si+3]
		}
	}
	return nil
}
