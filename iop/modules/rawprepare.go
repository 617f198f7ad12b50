/*
DESCRIPTION
  rawprepare.go implements the rawprepare module: the first module in the
  default chain, normalising a freshly unpacked raw mosaic buffer by
  subtracting a per-CFA-channel black level and dividing by a white level,
  so every module downstream of it can assume a [0, 1] normalised mosaic.

LICENSE
  Copyright (C) 2026 the Pixelpipe Authors. All Rights Reserved.
*/

package modules

import (
	"fmt"

	"github.com/rawforge/pixelpipe/iop"
	"github.com/rawforge/pixelpipe/params"
	"github.com/rawforge/pixelpipe/pixel"
)

const rawprepareParamsSize = 20 // 4 x black[ch] float32 + white float32

var rawprepareTable = params.Table{
	{Name: "black_0", Offset: 0, Type: params.TypeFloat32, Size: 4, SoftMin: 0, SoftMax: 1},
	{Name: "black_1", Offset: 4, Type: params.TypeFloat32, Size: 4, SoftMin: 0, SoftMax: 1},
	{Name: "black_2", Offset: 8, Type: params.TypeFloat32, Size: 4, SoftMin: 0, SoftMax: 1},
	{Name: "black_3", Offset: 12, Type: params.TypeFloat32, Size: 4, SoftMin: 0, SoftMax: 1},
	{Name: "white", Offset: 16, Type: params.TypeFloat32, Size: 4, SoftMin: 0.01, SoftMax: 1},
}

// Rawprepare is the raw->raw black/white normalisation module.
type Rawprepare struct {
	iop.Identity
	black [4]float32
	white float32
}

func NewRawprepare() iop.Module { return &Rawprepare{} }

func (*Rawprepare) OpName() string                      { return "rawprepare" }
func (*Rawprepare) DefaultColorspace() pixel.Colorspace  { return pixel.ColorspaceRaw }
func (*Rawprepare) ModuleFlags() iop.Flags              { return iop.AllowTiling | iop.OneInstance }
func (*Rawprepare) ParamsSize() int                     { return rawprepareParamsSize }
func (*Rawprepare) DescriptorTable() params.Table       { return rawprepareTable }
func (*Rawprepare) ParamsVersion() int                  { return 2 }

// UpgradeSteps returns the chain bringing a saved blob from version 1 (a
// single black level shared by every CFA channel) up to the current
// per-channel layout.
func (*Rawprepare) UpgradeSteps() []params.UpgradeFunc {
	return []params.UpgradeFunc{upgradeRawprepareV1ToV2}
}

// upgradeRawprepareV1ToV2 migrates the v1 layout (black float32, white
// float32) to the v2 per-CFA-channel layout (black_0..black_3 float32,
// white float32), replicating the single black level across all four
// channels so the upgraded blob behaves identically to the v1 one.
func upgradeRawprepareV1ToV2(data []byte) ([]byte, error) {
	const v1Size = 8
	if len(data) != v1Size {
		return nil, fmt.Errorf("rawprepare: v1 params must be %d bytes, got %d", v1Size, len(data))
	}
	black := getF32(data, 0)
	white := getF32(data, 4)
	out := make([]byte, rawprepareParamsSize)
	for i := 0; i < 4; i++ {
		putF32(out, i*4, black)
	}
	putF32(out, 16, white)
	return out, nil
}

func (*Rawprepare) Init() []byte {
	buf := make([]byte, rawprepareParamsSize)
	for i := 0; i < 4; i++ {
		putF32(buf, i*4, 0)
	}
	putF32(buf, 16, 1)
	return buf
}

func (m *Rawprepare) CommitParams(p *iop.Piece) error {
	buf := p.Params
	for i := 0; i < 4; i++ {
		m.black[i] = getF32(buf, i*4)
	}
	m.white = getF32(buf, 16)
	if m.white <= 0 {
		m.white = 1
	}
	return nil
}

func (m *Rawprepare) OutputFormat(p *iop.Piece, in pixel.Descriptor) pixel.Descriptor {
	out := in
	out.ProcessedMaximum = [3]float32{1, 1, 1}
	return out
}

// Process is a pointwise op: roiIn and roiOut are the same rectangle (the
// identity ROI contract applies), so the same (x, y) addresses both
// buffers.
func (m *Rawprepare) Process(p *iop.Piece, in, out *pixel.Buffer, roiIn, roiOut pixel.ROI) error {
	span := m.white
	for y := 0; y < roiOut.Height; y++ {
		for x := 0; x < roiOut.Width; x++ {
			ch := in.Dsc.Filters.At(roiOut.X+x, roiOut.Y+y)
			v := in.Data[in.At(x, y)]
			norm := (v - m.black[ch]) / span
			if norm < 0 {
				norm = 0
			}
			out.Data[out.At(x, y)] = norm
		}
	}
	return nil
}
