/*
DESCRIPTION
  vignette.go implements a radial vignette: an analytic falloff mask,
  Gaussian-blurred with gocv to avoid banding at the falloff edge, the
  same gocv.GaussianBlur call the teacher's background-subtraction
  filters use for noise smoothing, applied here to a synthetic mask
  instead of a motion frame. AllowTiling with a halo, since the blur
  kernel needs mask samples beyond each tile's own extent.

LICENSE
  Copyright (C) 2026 the Pixelpipe Authors. All Rights Reserved.
*/

package modules

import (
	"image"
	"math"

	"github.com/rawforge/pixelpipe/iop"
	"github.com/rawforge/pixelpipe/params"
	"github.com/rawforge/pixelpipe/pixel"

	"gocv.io/x/gocv"
)

// vignetteParamsSize covers the three user-tunable fields plus two
// hidden int32 fields (image width/height) baked in at piece
// construction time by pipeline.Create, analogous to colorin's camera
// matrix: the vignette centre is a property of the source image, not a
// user parameter, so it is not listed in vignetteTable.
const vignetteParamsSize = 20
const vignetteHalo = 8

var vignetteTable = params.Table{
	{Name: "strength", Offset: 0, Type: params.TypeFloat32, Size: 4, SoftMin: 0, SoftMax: 1},
	{Name: "radius", Offset: 4, Type: params.TypeFloat32, Size: 4, SoftMin: 0.1, SoftMax: 1.5},
	{Name: "feather", Offset: 8, Type: params.TypeFloat32, Size: 4, SoftMin: 0.01, SoftMax: 1},
}

// Vignette darkens the image toward its edges.
type Vignette struct {
	iop.Identity
	strength, radius, feather float32
	imgWidth, imgHeight       int
}

func NewVignette() iop.Module { return &Vignette{radius: 0.9, feather: 0.4} }

func (*Vignette) OpName() string                     { return "vignette" }
func (*Vignette) DefaultColorspace() pixel.Colorspace { return pixel.ColorspaceRGB }
func (*Vignette) ModuleFlags() iop.Flags             { return iop.AllowTiling }
func (*Vignette) Halo() int                           { return vignetteHalo }
func (*Vignette) ParamsSize() int                     { return vignetteParamsSize }
func (*Vignette) DescriptorTable() params.Table       { return vignetteTable }

func (*Vignette) Init() []byte {
	buf := make([]byte, vignetteParamsSize)
	putF32(buf, 0, 0.3)
	putF32(buf, 4, 0.9)
	putF32(buf, 8, 0.4)
	return buf
}

func (m *Vignette) CommitParams(p *iop.Piece) error {
	m.strength = getF32(p.Params, 0)
	m.radius = getF32(p.Params, 4)
	m.feather = getF32(p.Params, 8)
	if m.feather <= 0 {
		m.feather = 0.01
	}
	if len(p.Params) >= vignetteParamsSize {
		m.imgWidth = int(getI32(p.Params, 12))
		m.imgHeight = int(getI32(p.Params, 16))
	}
	return nil
}

// maskValue returns the unblurred analytic falloff at image coordinate
// (x, y), 1 at the centre, (1-strength) beyond radius+feather.
func (m *Vignette) maskValue(x, y, cx, cy, maxDist float32) float32 {
	dx, dy := x-cx, y-cy
	d := float32(math.Sqrt(float64(dx*dx+dy*dy))) / maxDist
	edge := m.radius
	t := (d - edge) / m.feather
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return 1 - t*m.strength
}

func (m *Vignette) Process(p *iop.Piece, in, out *pixel.Buffer, roiIn, roiOut pixel.ROI) error {
	width, height := m.imgWidth, m.imgHeight
	if width == 0 || height == 0 {
		width, height = roiIn.Width, roiIn.Height
	}
	cx, cy := float32(width)/2, float32(height)/2
	maxDist := float32(math.Sqrt(float64(cx*cx + cy*cy)))

	mask := gocv.NewMatWithSize(roiIn.Height, roiIn.Width, gocv.MatTypeCV32FC1)
	defer mask.Close()
	for y := 0; y < roiIn.Height; y++ {
		for x := 0; x < roiIn.Width; x++ {
			v := m.maskValue(float32(roiIn.X+x), float32(roiIn.Y+y), cx, cy, maxDist)
			mask.SetFloatAt(y, x, v)
		}
	}
	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(mask, &blurred, image.Pt(0, 0), float64(vignetteHalo)/2, float64(vignetteHalo)/2, gocv.BorderReplicate)

	offX, offY := roiOut.X-roiIn.X, roiOut.Y-roiIn.Y
	for y := 0; y < roiOut.Height; y++ {
		for x := 0; x < roiOut.Width; x++ {
			g := blurred.GetFloatAt(y+offY, x+offX)
			si, oi := in.At(x, y), out.At(x, y)
			out.Data[oi] = in.Data[si] * g
			out.Data[oi+1] = in.Data[si+1] * g
			out.Data[oi+2] = in.Data[si+2] * g
			out.Data[oi+3] = in.Data[si+3]
		}
	}
	return nil
}
