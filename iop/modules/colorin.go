/*
DESCRIPTION
  colorin.go implements the colorin module: converts demosaiced camera
  RGB into the pipeline's working RGB space (sRGB primaries, D65 white),
  via the camera's own camera-to-XYZ matrix composed with the fixed
  XYZ->sRGB matrix. The camera matrix is baked into the piece's
  parameter bytes at construction time (see pipeline.Create), since it
  is a property of the source image rather than a user-tunable value.

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

// ColorinParamsSize is exported so pipeline.Create can size and populate
// the camera matrix directly into a fresh instance's parameter bytes.
const ColorinParamsSize = 36 // 9 x float32, row-major camera->XYZ

var colorinTable = params.Table{
	{Name: "cam_to_xyz_0", Offset: 0, Type: params.TypeFloat32, Size: 4, SoftMin: -4, SoftMax: 4},
	{Name: "cam_to_xyz_1", Offset: 4, Type: params.TypeFloat32, Size: 4, SoftMin: -4, SoftMax: 4},
	{Name: "cam_to_xyz_2", Offset: 8, Type: params.TypeFloat32, Size: 4, SoftMin: -4, SoftMax: 4},
	{Name: "cam_to_xyz_3", Offset: 12, Type: params.TypeFloat32, Size: 4, SoftMin: -4, SoftMax: 4},
	{Name: "cam_to_xyz_4", Offset: 16, Type: params.TypeFloat32, Size: 4, SoftMin: -4, SoftMax: 4},
	{Name: "cam_to_xyz_5", Offset: 20, Type: params.TypeFloat32, Size: 4, SoftMin: -4, SoftMax: 4},
	{Name: "cam_to_xyz_6", Offset: 24, Type: params.TypeFloat32, Size: 4, SoftMin: -4, SoftMax: 4},
	{Name: "cam_to_xyz_7", Offset: 28, Type: params.TypeFloat32, Size: 4, SoftMin: -4, SoftMax: 4},
	{Name: "cam_to_xyz_8", Offset: 32, Type: params.TypeFloat32, Size: 4, SoftMin: -4, SoftMax: 4},
}

// Colorin converts camera RGB to the pipeline's working RGB space.
type Colorin struct {
	iop.Identity
	toWorking colormath.Mat3
}

func NewColorin() iop.Module { return &Colorin{} }

func (*Colorin) OpName() string                     { return "colorin" }
func (*Colorin) DefaultColorspace() pixel.Colorspace { return pixel.ColorspaceRGB }
func (*Colorin) ModuleFlags() iop.Flags             { return iop.AllowTiling | iop.OneInstance }
func (*Colorin) ParamsSize() int                     { return ColorinParamsSize }
func (*Colorin) DescriptorTable() params.Table       { return colorinTable }

// Init returns the identity camera matrix; pipeline.Create overwrites
// this with the source image's actual camera-to-XYZ matrix before the
// piece's first commit.
func (*Colorin) Init() []byte {
	buf := make([]byte, ColorinParamsSize)
	id := colormath.Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}
	for i, v := range id {
		putF32(buf, i*4, float32(v))
	}
	return buf
}

func (m *Colorin) CommitParams(p *iop.Piece) error {
	var camToXYZ colormath.Mat3
	for i := range camToXYZ {
		camToXYZ[i] = float64(getF32(p.Params, i*4))
	}
	m.toWorking = colormath.Mul(colormath.SRGBFromXYZ, camToXYZ)
	return nil
}

func (m *Colorin) Process(p *iop.Piece, in, out *pixel.Buffer, roiIn, roiOut pixel.ROI) error {
	for y := 0; y < roiOut.Height; y++ {
		for x := 0; x < roiOut.Width; x++ {
			si, oi := in.At(x, y), out.At(x, y)
			r, g, b := m.toWorking.Apply(
				float64(in.Data[si]), float64(in.Data[si+1]), float64(in.Data[si+2]))
			out.Data[oi] = float32(r)
			out.Data[oi+1] = float32(g)
			out.Data[oi+2] = float32(b)
			out.Data[oi+3] = in.Data[si+3]
		}
	}
	return nil
}
