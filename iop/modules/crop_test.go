package modules

import (
	"testing"

	"github.com/rawforge/pixelpipe/iop"
	"github.com/rawforge/pixelpipe/pixel"
)

func commitCrop(t *testing.T, x0, y0, x1, y1 float32, imgW, imgH int32) *Crop {
	t.Helper()
	m := &Crop{}
	params := m.Init()
	putF32(params, 0, x0)
	putF32(params, 4, y0)
	putF32(params, 8, x1)
	putF32(params, 12, y1)
	putI32(params, 16, imgW)
	putI32(params, 20, imgH)
	p := &iop.Piece{Module: m, Params: params}
	if err := m.CommitParams(p); err != nil {
		t.Fatalf("CommitParams: %v", err)
	}
	return m
}

func TestCropComputesOriginAndExtentFromFractions(t *testing.T) {
	m := commitCrop(t, 0.25, 0.1, 0.75, 0.9, 1000, 1000)
	if m.originX != 250 || m.originY != 100 {
		t.Errorf("origin = (%d,%d), want (250,100)", m.originX, m.originY)
	}
	if m.width != 500 || m.height != 800 {
		t.Errorf("extent = %dx%d, want 500x800", m.width, m.height)
	}
}

func TestCropModifyRoiInThenOutRoundTrips(t *testing.T) {
	m := commitCrop(t, 0.25, 0.25, 0.75, 0.75, 800, 800)
	p := &iop.Piece{Module: m}
	roiOut := pixel.ROI{X: 10, Y: 20, Width: 100, Height: 50}
	roiIn := m.ModifyRoiIn(p, roiOut)
	gotOut := m.ModifyRoiOut(p, roiIn)
	if gotOut != roiOut {
		t.Errorf("ModifyRoiOut(ModifyRoiIn(r)) = %+v, want %+v", gotOut, roiOut)
	}
}

func TestCropModifyRoiInShiftsByOrigin(t *testing.T) {
	m := commitCrop(t, 0.1, 0.2, 0.9, 0.8, 1000, 1000)
	p := &iop.Piece{Module: m}
	roiOut := pixel.ROI{X: 0, Y: 0, Width: 10, Height: 10}
	roiIn := m.ModifyRoiIn(p, roiOut)
	if roiIn.X != m.originX || roiIn.Y != m.originY {
		t.Errorf("roiIn origin = (%d,%d), want (%d,%d)", roiIn.X, roiIn.Y, m.originX, m.originY)
	}
	if roiIn.Width != roiOut.Width || roiIn.Height != roiOut.Height {
		t.Error("crop's ROI shift must preserve width/height, only translate origin")
	}
}

func TestCropDegenerateRectangleFallsBackToMinimumExtent(t *testing.T) {
	m := commitCrop(t, 0.5, 0.5, 0.5, 0.5, 1000, 1000)
	if m.width != 1 || m.height != 1 {
		t.Errorf("degenerate crop rectangle should fall back to a 1x1 extent, got %dx%d", m.width, m.height)
	}
}

func TestCropProcessIsStraightCopy(t *testing.T) {
	m := &Crop{}
	dsc := pixel.ForRGB()
	in, err := pixel.NewBuffer(dsc, 2, 2)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	for i := range in.Data {
		in.Data[i] = float32(i)
	}
	out, err := pixel.NewBuffer(dsc, 2, 2)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	roi := pixel.ROI{Width: 2, Height: 2}
	if err := m.Process(nil, in, out, roi, roi); err != nil {
		t.Fatalf("Process: %v", err)
	}
	for i := range in.Data {
		if out.Data[i] != in.Data[i] {
			t.Fatalf("Process should copy verbatim, index %d: got %v want %v", i, out.Data[i], in.Data[i])
		}
	}
}
