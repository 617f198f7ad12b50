/*
DESCRIPTION
  crop.go implements the crop module: the canonical geometric,
  RoiOutIsFunctionOfIn module (§4.4, §4.7). Its crop rectangle is
  specified as fractions of the source image extent; pipeline.Create
  bakes the source image's pixel dimensions into the piece's hidden
  trailing fields, the same convention colorin and vignette use for
  image-derived constants.

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

const cropParamsSize = 24 // cx0,cy0,cx1,cy1 float32 + imgWidth,imgHeight int32 (hidden)

var cropTable = params.Table{
	{Name: "x0", Offset: 0, Type: params.TypeFloat32, Size: 4, SoftMin: 0, SoftMax: 1},
	{Name: "y0", Offset: 4, Type: params.TypeFloat32, Size: 4, SoftMin: 0, SoftMax: 1},
	{Name: "x1", Offset: 8, Type: params.TypeFloat32, Size: 4, SoftMin: 0, SoftMax: 1},
	{Name: "y1", Offset: 12, Type: params.TypeFloat32, Size: 4, SoftMin: 0, SoftMax: 1},
}

// Crop restricts the working region to a fractional rectangle of the
// source image, shifting every downstream module's coordinate frame to
// originate at the crop's top-left corner.
type Crop struct {
	iop.Identity
	originX, originY, width, height int
}

func NewCrop() iop.Module { return &Crop{} }

func (*Crop) OpName() string                     { return "crop" }
func (*Crop) DefaultColorspace() pixel.Colorspace { return pixel.ColorspaceRGB }
func (*Crop) ModuleFlags() iop.Flags             { return iop.RoiOutIsFunctionOfIn | iop.OneInstance }
func (*Crop) ParamsSize() int                     { return cropParamsSize }
func (*Crop) DescriptorTable() params.Table       { return cropTable }

func (*Crop) Init() []byte {
	buf := make([]byte, cropParamsSize)
	putF32(buf, 0, 0)
	putF32(buf, 4, 0)
	putF32(buf, 8, 1)
	putF32(buf, 12, 1)
	return buf
}

func (m *Crop) CommitParams(p *iop.Piece) error {
	x0, y0 := getF32(p.Params, 0), getF32(p.Params, 4)
	x1, y1 := getF32(p.Params, 8), getF32(p.Params, 12)
	imgW, imgH := 0, 0
	if len(p.Params) >= cropParamsSize {
		imgW = int(getI32(p.Params, 16))
		imgH = int(getI32(p.Params, 20))
	}
	m.originX = int(x0 * float32(imgW))
	m.originY = int(y0 * float32(imgH))
	w := int(math.Round(float64((x1 - x0) * float32(imgW))))
	h := int(math.Round(float64((y1 - y0) * float32(imgH))))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	m.width, m.height = w, h
	return nil
}

// ModifyRoiOut converts an upstream (pre-crop) region into this piece's
// output coordinate space: shift by the crop origin and clip to the
// crop's own extent.
func (m *Crop) ModifyRoiOut(p *iop.Piece, roiIn pixel.ROI) pixel.ROI {
	shifted := pixel.ROI{X: roiIn.X - m.originX, Y: roiIn.Y - m.originY, Width: roiIn.Width, Height: roiIn.Height, Scale: roiIn.Scale}
	return shifted.Clip(m.width, m.height)
}

// ModifyRoiIn converts a downstream request (expressed in this piece's
// cropped output space) back into the upstream, pre-crop coordinate
// space by adding the crop origin back in.
func (m *Crop) ModifyRoiIn(p *iop.Piece, roiOut pixel.ROI) pixel.ROI {
	return pixel.ROI{X: roiOut.X + m.originX, Y: roiOut.Y + m.originY, Width: roiOut.Width, Height: roiOut.Height, Scale: roiOut.Scale}
}

// Process is a pure translation: out is already allocated at roiOut's
// extent, and the engine has already supplied in cropped to roiIn, so
// this is a straight copy.
func (m *Crop) Process(p *iop.Piece, in, out *pixel.Buffer, roiIn, roiOut pixel.ROI) error {
	copy(out.Data, in.Data[:len(out.Data)])
	return nil
}
