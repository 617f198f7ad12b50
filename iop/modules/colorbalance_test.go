package modules

import (
	"testing"

	"github.com/rawforge/pixelpipe/iop"
	"github.com/rawforge/pixelpipe/pixel"
)

func TestColorbalanceDefaultIsIdentity(t *testing.T) {
	m := NewColorbalance()
	p := &iop.Piece{Module: m, Params: m.Init()}
	if err := m.CommitParams(p); err != nil {
		t.Fatalf("CommitParams: %v", err)
	}

	dsc := pixel.ForRGB()
	in, err := pixel.NewBuffer(dsc, 1, 1)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	in.Data[0], in.Data[1], in.Data[2], in.Data[3] = 0.3, 0.5, 0.7, 1
	out, err := pixel.NewBuffer(dsc, 1, 1)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	roi := pixel.ROI{Width: 1, Height: 1}
	if err := m.Process(p, in, out, roi, roi); err != nil {
		t.Fatalf("Process: %v", err)
	}
	for i := 0; i < 3; i++ {
		if diff := out.Data[i] - in.Data[i]; diff > 1e-6 || diff < -1e-6 {
			t.Errorf("default lift/gamma/gain channel %d: got %v, want ~%v", i, out.Data[i], in.Data[i])
		}
	}
}

func TestColorbalanceClampsNegativeResultToZero(t *testing.T) {
	m := NewColorbalance()
	params := m.Init()
	putF32(params, 0, -1) // lift_r far below the value range, forces a negative pre-gamma result
	p := &iop.Piece{Module: m, Params: params}
	if err := m.CommitParams(p); err != nil {
		t.Fatalf("CommitParams: %v", err)
	}
	if got := m.(*Colorbalance).apply(0, 0); got != 0 {
		t.Errorf("apply with a strongly negative lift should clamp to 0, got %v", got)
	}
}

func TestColorbalanceZeroGammaFallsBackToOne(t *testing.T) {
	m := NewColorbalance()
	params := m.Init()
	putF32(params, 12, 0) // gamma_r = 0
	p := &iop.Piece{Module: m, Params: params}
	if err := m.CommitParams(p); err != nil {
		t.Fatalf("CommitParams: %v", err)
	}
	if got := m.(*Colorbalance).apply(0, 0.5); got != 0.5 {
		t.Errorf("zero gamma should fall back to gamma=1 (no-op exponent), got %v", got)
	}
}

func TestColorbalancePreservesAlpha(t *testing.T) {
	m := NewColorbalance()
	p := &iop.Piece{Module: m, Params: m.Init()}
	if err := m.CommitParams(p); err != nil {
		t.Fatalf("CommitParams: %v", err)
	}
	dsc := pixel.ForRGB()
	in, err := pixel.NewBuffer(dsc, 1, 1)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	in.Data[3] = 0.42
	out, err := pixel.NewBuffer(dsc, 1, 1)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	roi := pixel.ROI{Width: 1, Height: 1}
	if err := m.Process(p, in, out, roi, roi); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if out.Data[3] != 0.42 {
		t.Errorf("alpha = %v, want 0.42", out.Data[3])
	}
}
