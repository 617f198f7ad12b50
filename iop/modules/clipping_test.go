package modules

import (
	"testing"

	"github.com/rawforge/pixelpipe/iop"
	"github.com/rawforge/pixelpipe/pixel"
)

func commitClipping(t *testing.T, mx, my float32, imgW, imgH int32) *Clipping {
	t.Helper()
	m := &Clipping{}
	params := m.Init()
	putF32(params, 0, mx)
	putF32(params, 4, my)
	putI32(params, 8, imgW)
	putI32(params, 12, imgH)
	p := &iop.Piece{Module: m, Params: params}
	if err := m.CommitParams(p); err != nil {
		t.Fatalf("CommitParams: %v", err)
	}
	return m
}

func TestClippingComputesSymmetricMargin(t *testing.T) {
	m := commitClipping(t, 0.1, 0.2, 1000, 1000)
	if m.originX != 100 || m.originY != 200 {
		t.Errorf("origin = (%d,%d), want (100,200)", m.originX, m.originY)
	}
	if m.width != 800 || m.height != 600 {
		t.Errorf("extent = %dx%d, want 800x600", m.width, m.height)
	}
}

func TestClippingZeroMarginIsFullExtent(t *testing.T) {
	m := commitClipping(t, 0, 0, 640, 480)
	if m.originX != 0 || m.originY != 0 || m.width != 640 || m.height != 480 {
		t.Errorf("zero margin should keep the full image extent, got origin (%d,%d) extent %dx%d", m.originX, m.originY, m.width, m.height)
	}
}

func TestClippingDegenerateMarginFallsBackToFullExtent(t *testing.T) {
	m := commitClipping(t, 0.5, 0.5, 100, 100)
	if m.width != 100 || m.height != 100 {
		t.Errorf("a margin spanning the whole image should fall back to the full extent, got %dx%d", m.width, m.height)
	}
}

func TestClippingModifyRoiInThenOutRoundTrips(t *testing.T) {
	m := commitClipping(t, 0.1, 0.1, 1000, 1000)
	p := &iop.Piece{Module: m}
	roiOut := pixel.ROI{X: 5, Y: 5, Width: 40, Height: 30}
	roiIn := m.ModifyRoiIn(p, roiOut)
	gotOut := m.ModifyRoiOut(p, roiIn)
	if gotOut != roiOut {
		t.Errorf("ModifyRoiOut(ModifyRoiIn(r)) = %+v, want %+v", gotOut, roiOut)
	}
}
