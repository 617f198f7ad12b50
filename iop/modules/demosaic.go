/*
DESCRIPTION
  demosaic.go implements the demosaic module: the raw -> rgb format
  change (§4.9). It hands the mosaic buffer to gocv's Bayer
  reconstruction rather than hand-rolling bilinear interpolation, the
  same "lean on OpenCV for the pixel kernel, keep the Go side thin"
  division of labour the filter package's motion detectors use.

LICENSE
  Copyright (C) 2026 the Pixelpipe Authors. All Rights Reserved.
*/

package modules

import (
	"github.com/rawforge/pixelpipe/iop"
	"github.com/rawforge/pixelpipe/pixel"

	"gocv.io/x/gocv"
)

// Demosaic is the raw->rgb format-changing module. It has no user
// parameters.
type Demosaic struct {
	iop.Identity
}

func NewDemosaic() iop.Module { return &Demosaic{} }

func (*Demosaic) OpName() string                     { return "demosaic" }
func (*Demosaic) DefaultColorspace() pixel.Colorspace { return pixel.ColorspaceRaw }
func (*Demosaic) ModuleFlags() iop.Flags             { return iop.AllowTiling | iop.OneInstance }
func (*Demosaic) Halo() int                          { return 2 }
func (*Demosaic) ParamsSize() int                    { return 0 }
func (*Demosaic) Init() []byte                       { return nil }
func (*Demosaic) CommitParams(p *iop.Piece) error    { return nil }

func (*Demosaic) OutputFormat(p *iop.Piece, in pixel.Descriptor) pixel.Descriptor {
	out := pixel.ForRGB()
	out.ProcessedMaximum = in.ProcessedMaximum
	out.WhitePoint = in.WhitePoint
	return out
}

// bayerCode maps a CFA mask's top-left cell to the gocv Bayer conversion
// code. This pipeline only distinguishes the four standard Bayer
// phases; X-Trans sensors fall back to the RGGB code, which is wrong for
// the edge pixels of each 6x6 cell but spares this port a bespoke
// X-Trans interpolator.
func bayerCode(f pixel.Filters) gocv.ColorConversionCode {
	if f.Kind != pixel.FilterBayer {
		return gocv.ColorBayerRGToBGR
	}
	switch f.At(0, 0) {
	case 0: // R at (0,0)
		return gocv.ColorBayerRGToBGR
	case 2: // B at (0,0)
		return gocv.ColorBayerBGToBGR
	default: // G at (0,0): distinguish GR vs GB by the next column.
		if f.At(1, 0) == 0 {
			return gocv.ColorBayerGRToBGR
		}
		return gocv.ColorBayerGBToBGR
	}
}

// Process converts the single-channel mosaic tile to a 4-channel RGBA
// tile via gocv's Bayer demosaic, normalising through 16-bit fixed point
// because gocv's Bayer codes are not defined for CV_32F.
func (m *Demosaic) Process(p *iop.Piece, in, out *pixel.Buffer, roiIn, roiOut pixel.ROI) error {
	src := gocv.NewMatWithSize(roiIn.Height, roiIn.Width, gocv.MatTypeCV16UC1)
	defer src.Close()
	for y := 0; y < roiIn.Height; y++ {
		for x := 0; x < roiIn.Width; x++ {
			v := in.Data[in.At(x, y)]
			if v < 0 {
				v = 0
			}
			if v > 1 {
				v = 1
			}
			src.SetUCharAt(y, x*2, byte(uint16(v*65535)&0xff))
			src.SetUCharAt(y, x*2+1, byte(uint16(v*65535)>>8))
		}
	}

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.CvtColor(src, &dst, bayerCode(in.Dsc.Filters))

	// dst is CV_16UC3 BGR, sized roiIn; crop to roiOut (the halo-free
	// interior) and write RGBA float output.
	offX, offY := roiOut.X-roiIn.X, roiOut.Y-roiIn.Y
	for y := 0; y < roiOut.Height; y++ {
		for x := 0; x < roiOut.Width; x++ {
			sx, sy := x+offX, y+offY
			b := float32(dst.GetUShortAt(sy, sx*3+0)) / 65535
			g := float32(dst.GetUShortAt(sy, sx*3+1)) / 65535
			r := float32(dst.GetUShortAt(sy, sx*3+2)) / 65535
			o := out.At(x, y)
			out.Data[o] = r
			out.Data[o+1] = g
			out.Data[o+2] = b
			out.Data[o+3] = 1
		}
	}
	return nil
}
