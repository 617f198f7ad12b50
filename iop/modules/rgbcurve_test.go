package modules

import "testing"

func TestRgbcurveMidtoneOneIsIdentity(t *testing.T) {
	m := &Rgbcurve{midtone: 1}
	for _, v := range []float32{0, 0.3, 0.7, 1} {
		if got := m.apply(v); got != v {
			t.Errorf("apply(%v) = %v, want %v at midtone=1", v, got, v)
		}
	}
}

func TestRgbcurveNegativeInputClampsToZero(t *testing.T) {
	m := &Rgbcurve{midtone: 2}
	if got := m.apply(-1); got != 0 {
		t.Errorf("apply(-1) = %v, want 0", got)
	}
}

func TestRgbcurveNonPositiveMidtoneFallsBackToOne(t *testing.T) {
	m := &Rgbcurve{}
	p := newRawPiece(t, m)
	putF32(p.Params, 0, 0)
	if err := m.CommitParams(p); err != nil {
		t.Fatalf("CommitParams: %v", err)
	}
	if m.midtone != 1 {
		t.Errorf("midtone = %v, want fallback of 1", m.midtone)
	}
}
