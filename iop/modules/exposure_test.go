package modules

import (
	"testing"

	"github.com/rawforge/pixelpipe/iop"
	"github.com/rawforge/pixelpipe/pixel"
)

func TestExposureZeroEVIsIdentityGain(t *testing.T) {
	m := NewExposure()
	p := &iop.Piece{Module: m, Params: m.Init()}
	if err := m.CommitParams(p); err != nil {
		t.Fatalf("CommitParams: %v", err)
	}
	if m.(*Exposure).gain != 1 {
		t.Errorf("gain at ev=0 = %v, want 1", m.(*Exposure).gain)
	}
}

func TestExposureOneStopDoublesGain(t *testing.T) {
	m := NewExposure()
	params := m.Init()
	putF32(params, 0, 1) // ev = 1
	p := &iop.Piece{Module: m, Params: params}
	if err := m.CommitParams(p); err != nil {
		t.Fatalf("CommitParams: %v", err)
	}
	if got := m.(*Exposure).gain; got != 2 {
		t.Errorf("gain at ev=1 = %v, want 2", got)
	}
}

func TestExposureAppliesBlackThenGainPreservingAlpha(t *testing.T) {
	m := NewExposure()
	params := m.Init()
	putF32(params, 0, 1)    // ev = 1 -> gain 2
	putF32(params, 4, 0.05) // black
	p := &iop.Piece{Module: m, Params: params}
	if err := m.CommitParams(p); err != nil {
		t.Fatalf("CommitParams: %v", err)
	}

	dsc := pixel.ForRGB()
	in, err := pixel.NewBuffer(dsc, 1, 1)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	in.Data[0], in.Data[1], in.Data[2], in.Data[3] = 0.25, 0.25, 0.25, 0.75
	out, err := pixel.NewBuffer(dsc, 1, 1)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	roi := pixel.ROI{Width: 1, Height: 1}
	if err := m.Process(p, in, out, roi, roi); err != nil {
		t.Fatalf("Process: %v", err)
	}
	want := float32((0.25 - 0.05) * 2)
	if out.Data[0] != want {
		t.Errorf("exposed channel = %v, want %v", out.Data[0], want)
	}
	if out.Data[3] != 0.75 {
		t.Errorf("alpha must pass through unchanged, got %v", out.Data[3])
	}
}
