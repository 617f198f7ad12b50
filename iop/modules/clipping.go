/*
DESCRIPTION
  clipping.go implements the clipping module: a symmetric-margin trim,
  structurally identical to crop's ROI contract (a fixed origin shift)
  but parameterised by margin fraction rather than an arbitrary
  rectangle — the orientation/aspect-trim step that conventionally
  follows crop in the chain.

LICENSE
  Copyright (C) 2026 the Pixelpipe Authors. All Rights Reserved.
*/

package modules

import (
	"github.com/rawforge/pixelpipe/iop"
	"github.com/rawforge/pixelpipe/params"
	"github.com/rawforge/pixelpipe/pixel"
)

const clippingParamsSize = 16 // marginX,marginY float32 + imgWidth,imgHeight int32 (hidden)

var clippingTable = params.Table{
	{Name: "margin_x", Offset: 0, Type: params.TypeFloat32, Size: 4, SoftMin: 0, SoftMax: 0.45},
	{Name: "margin_y", Offset: 4, Type: params.TypeFloat32, Size: 4, SoftMin: 0, SoftMax: 0.45},
}

// Clipping trims a symmetric margin from every edge of its input.
type Clipping struct {
	iop.Identity
	originX, originY, width, height int
}

func NewClipping() iop.Module { return &Clipping{} }

func (*Clipping) OpName() string                     { return "clipping" }
func (*Clipping) DefaultColorspace() pixel.Colorspace { return pixel.ColorspaceRGB }
func (*Clipping) ModuleFlags() iop.Flags             { return iop.RoiOutIsFunctionOfIn | iop.OneInstance }
func (*Clipping) ParamsSize() int                     { return clippingParamsSize }
func (*Clipping) DescriptorTable() params.Table       { return clippingTable }

func (*Clipping) Init() []byte {
	return make([]byte, clippingParamsSize)
}

func (m *Clipping) CommitParams(p *iop.Piece) error {
	mx, my := getF32(p.Params, 0), getF32(p.Params, 4)
	imgW, imgH := 0, 0
	if len(p.Params) >= clippingParamsSize {
		imgW = int(getI32(p.Params, 8))
		imgH = int(getI32(p.Params, 12))
	}
	m.originX = int(mx * float32(imgW))
	m.originY = int(my * float32(imgH))
	m.width = imgW - 2*m.originX
	m.height = imgH - 2*m.originY
	if m.width < 1 {
		m.width = imgW
	}
	if m.height < 1 {
		m.height = imgH
	}
	return nil
}

func (m *Clipping) ModifyRoiOut(p *iop.Piece, roiIn pixel.ROI) pixel.ROI {
	shifted := pixel.ROI{X: roiIn.X - m.originX, Y: roiIn.Y - m.originY, Width: roiIn.Width, Height: roiIn.Height, Scale: roiIn.Scale}
	return shifted.Clip(m.width, m.height)
}

func (m *Clipping) ModifyRoiIn(p *iop.Piece, roiOut pixel.ROI) pixel.ROI {
	return pixel.ROI{X: roiOut.X + m.originX, Y: roiOut.Y + m.originY, Width: roiOut.Width, Height: roiOut.Height, Scale: roiOut.Scale}
}

func (m *Clipping) Process(p *iop.Piece, in, out *pixel.Buffer, roiIn, roiOut pixel.ROI) error {
	copy(out.Data, in.Data[:len(out.Data)])
	return nil
}
