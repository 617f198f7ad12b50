/*
DESCRIPTION
  whitebalance.go implements the white-balance module: operating in the
  mosaic domain, very early in the chain (§4.8), it multiplies each raw
  sample by its CFA channel's white-balance coefficient and publishes the
  coefficients to the pipeline's chroma coordinator for color calibration
  (or any other downstream consumer) to read.

LICENSE
  Copyright (C) 2026 the Pixelpipe Authors. All Rights Reserved.
*/

package modules

import (
	"strconv"

	"github.com/rawforge/pixelpipe/chroma"
	"github.com/rawforge/pixelpipe/iop"
	"github.com/rawforge/pixelpipe/params"
	"github.com/rawforge/pixelpipe/pixel"
)

const whitebalanceParamsSize = 16 // 4 x coeff float32

var whitebalanceTable = params.Table{
	{Name: "coeff_0", Offset: 0, Type: params.TypeFloat32, Size: 4, SoftMin: 0.1, SoftMax: 8},
	{Name: "coeff_1", Offset: 4, Type: params.TypeFloat32, Size: 4, SoftMin: 0.1, SoftMax: 8},
	{Name: "coeff_2", Offset: 8, Type: params.TypeFloat32, Size: 4, SoftMin: 0.1, SoftMax: 8},
	{Name: "coeff_3", Offset: 12, Type: params.TypeFloat32, Size: 4, SoftMin: 0.1, SoftMax: 8},
}

// Whitebalance is the mosaic-domain white-balance module. It is the
// default CAT claimant: being earlier in the chain than colorcalib, it
// wins the claim whenever it is enabled.
type Whitebalance struct {
	iop.Identity
	coeffs [4]float32
}

func NewWhitebalance() iop.Module { return &Whitebalance{} }

func (*Whitebalance) OpName() string                     { return "whitebalance" }
func (*Whitebalance) DefaultColorspace() pixel.Colorspace { return pixel.ColorspaceRaw }
func (*Whitebalance) ModuleFlags() iop.Flags             { return iop.AllowTiling | iop.OneInstance }
func (*Whitebalance) ParamsSize() int                     { return whitebalanceParamsSize }
func (*Whitebalance) DescriptorTable() params.Table       { return whitebalanceTable }

func (*Whitebalance) Init() []byte {
	buf := make([]byte, whitebalanceParamsSize)
	for i := 0; i < 4; i++ {
		putF32(buf, i*4, 1)
	}
	return buf
}

func (m *Whitebalance) CommitParams(p *iop.Piece) error {
	buf := p.Params
	for i := 0; i < 4; i++ {
		m.coeffs[i] = getF32(buf, i*4)
	}
	if p.Chroma != nil {
		id := "whitebalance#" + strconv.Itoa(p.Instance)
		p.Chroma.ClaimCAT(chroma.Claimant{PieceID: id, IopOrder: p.IopOrder, Instance: p.Instance})
		var s chroma.State
		for i := 0; i < 4; i++ {
			s.WBCoeffs[i] = float64(m.coeffs[i])
			s.AsShot[i] = float64(m.coeffs[i])
			s.D65Coeffs[i] = float64(m.coeffs[i])
		}
		p.Chroma.PublishWhiteBalance(s)
	}
	return nil
}

func (m *Whitebalance) Process(p *iop.Piece, in, out *pixel.Buffer, roiIn, roiOut pixel.ROI) error {
	for y := 0; y < roiOut.Height; y++ {
		for x := 0; x < roiOut.Width; x++ {
			ch := in.Dsc.Filters.At(roiOut.X+x, roiOut.Y+y)
			out.Data[out.At(x, y)] = in.Data[in.At(x, y)] * m.coeffs[ch]
		}
	}
	return nil
}
