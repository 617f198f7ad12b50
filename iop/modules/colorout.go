/*
DESCRIPTION
  colorout.go implements the colorout module: the last module of the
  default chain. It divides each colour channel by its processed maximum,
  clamps the result to [0, 1] and resets that maximum to 1, leaving a
  normalised RGB buffer ready
  for encode.Encode's sRGB gamma and 8-bit quantisation.

LICENSE
  Copyright (C) 2026 the Pixelpipe Authors. All Rights Reserved.
*/

package modules

import (
	"github.com/rawforge/pixelpipe/iop"
	"github.com/rawforge/pixelpipe/pixel"
)

// Colorout is the terminal format-normalisation module. It has no user
// parameters.
type Colorout struct {
	iop.Identity
}

func NewColorout() iop.Module { return &Colorout{} }

func (*Colorout) OpName() string                     { return "colorout" }
func (*Colorout) DefaultColorspace() pixel.Colorspace { return pixel.ColorspaceRGB }
func (*Colorout) ModuleFlags() iop.Flags             { return iop.AllowTiling | iop.OneInstance }
func (*Colorout) ParamsSize() int                     { return 0 }
func (*Colorout) Init() []byte                       { return nil }
func (*Colorout) CommitParams(p *iop.Piece) error    { return nil }

func (*Colorout) OutputFormat(p *iop.Piece, in pixel.Descriptor) pixel.Descriptor {
	out := in
	out.ProcessedMaximum = [3]float32{1, 1, 1}
	return out
}

func (*Colorout) Process(p *iop.Piece, in, out *pixel.Buffer, roiIn, roiOut pixel.ROI) error {
	max := in.Dsc.ProcessedMaximum
	for y := 0; y < roiOut.Height; y++ {
		for x := 0; x < roiOut.Width; x++ {
			si, oi := in.At(x, y), out.At(x, y)
			for c := 0; c < 3; c++ {
				v := in.Data[si+c]
				m := max[c]
				if m <= 0 {
					m = 1
				}
				v /= m
				if v < 0 {
					v = 0
				}
				if v > 1 {
					v = 1
				}
				out.Data[oi+c] = v
			}
			out.Data[oi+3] = in.Data[si+3]
		}
	}
	return nil
}
