package modules

import (
	"testing"

	"github.com/rawforge/pixelpipe/iop"
	"github.com/rawforge/pixelpipe/pixel"
)

func TestChannelmixerIdentityMatrixIsPassthrough(t *testing.T) {
	m := NewChannelmixer()
	p := &iop.Piece{Module: m, Params: m.Init()}
	if err := m.CommitParams(p); err != nil {
		t.Fatalf("CommitParams: %v", err)
	}

	dsc := pixel.ForRGB()
	in, err := pixel.NewBuffer(dsc, 1, 1)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	in.Data[0], in.Data[1], in.Data[2], in.Data[3] = 0.1, 0.2, 0.3, 0.9
	out, err := pixel.NewBuffer(dsc, 1, 1)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	roi := pixel.ROI{Width: 1, Height: 1}
	if err := m.Process(p, in, out, roi, roi); err != nil {
		t.Fatalf("Process: %v", err)
	}
	for i := 0; i < 4; i++ {
		if out.Data[i] != in.Data[i] {
			t.Errorf("identity matrix channel %d: got %v, want %v", i, out.Data[i], in.Data[i])
		}
	}
}

func TestChannelmixerSwapsChannels(t *testing.T) {
	m := NewChannelmixer()
	params := m.Init()
	// Row-major: swap R and G, leave B alone.
	swap := [9]float32{0, 1, 0, 1, 0, 0, 0, 0, 1}
	for i, v := range swap {
		putF32(params, i*4, v)
	}
	p := &iop.Piece{Module: m, Params: params}
	if err := m.CommitParams(p); err != nil {
		t.Fatalf("CommitParams: %v", err)
	}

	dsc := pixel.ForRGB()
	in, err := pixel.NewBuffer(dsc, 1, 1)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	in.Data[0], in.Data[1], in.Data[2], in.Data[3] = 0.2, 0.6, 0.4, 1
	out, err := pixel.NewBuffer(dsc, 1, 1)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	roi := pixel.ROI{Width: 1, Height: 1}
	if err := m.Process(p, in, out, roi, roi); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if out.Data[0] != 0.6 || out.Data[1] != 0.2 || out.Data[2] != 0.4 {
		t.Errorf("swapped R/G output = %v, want [0.6 0.2 0.4]", out.Data[:3])
	}
}
