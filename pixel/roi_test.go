package pixel

import "testing"

func TestROIEmpty(t *testing.T) {
	cases := []struct {
		roi  ROI
		want bool
	}{
		{ROI{Width: 0, Height: 10}, true},
		{ROI{Width: 10, Height: 0}, true},
		{ROI{Width: 10, Height: 10}, false},
	}
	for _, c := range cases {
		if got := c.roi.Empty(); got != c.want {
			t.Errorf("ROI%+v.Empty() = %v, want %v", c.roi, got, c.want)
		}
	}
}

func TestROIDegenerate(t *testing.T) {
	if (ROI{Width: 0, Height: 0}).Degenerate() {
		t.Error("empty ROI must not be degenerate")
	}
	if !(ROI{Width: 2, Height: 10}).Degenerate() {
		t.Error("sub-minimum width must be degenerate")
	}
	if (ROI{Width: minROIDim, Height: minROIDim}).Degenerate() {
		t.Error("ROI at exactly the minimum dimension must not be degenerate")
	}
}

func TestROIClip(t *testing.T) {
	r := ROI{X: -5, Y: -5, Width: 20, Height: 20}
	got := r.Clip(10, 10)
	want := ROI{X: 0, Y: 0, Width: 10, Height: 10}
	if got != want {
		t.Errorf("Clip = %+v, want %+v", got, want)
	}
}

func TestROIClipOutsideBounds(t *testing.T) {
	r := ROI{X: 100, Y: 100, Width: 10, Height: 10}
	got := r.Clip(10, 10)
	if !got.Empty() {
		t.Errorf("Clip of fully out-of-bounds ROI should be empty, got %+v", got)
	}
}

func TestROIUnion(t *testing.T) {
	a := ROI{X: 0, Y: 0, Width: 10, Height: 10}
	b := ROI{X: 5, Y: 5, Width: 10, Height: 10}
	got := a.Union(b)
	want := ROI{X: 0, Y: 0, Width: 15, Height: 15}
	if got != want {
		t.Errorf("Union = %+v, want %+v", got, want)
	}
}

func TestROIUnionWithEmpty(t *testing.T) {
	a := ROI{X: 1, Y: 2, Width: 3, Height: 4}
	if got := a.Union(ROI{}); got != a {
		t.Errorf("Union with empty ROI should return the other operand unchanged, got %+v", got)
	}
}

func TestROIContains(t *testing.T) {
	outer := ROI{X: 0, Y: 0, Width: 100, Height: 100}
	inner := ROI{X: 10, Y: 10, Width: 20, Height: 20}
	if !outer.Contains(inner) {
		t.Error("outer should contain inner")
	}
	if outer.Contains(ROI{X: 90, Y: 90, Width: 20, Height: 20}) {
		t.Error("outer should not contain a ROI extending past its bounds")
	}
	if !outer.Contains(ROI{}) {
		t.Error("every ROI contains the empty ROI")
	}
}

func TestROIGrow(t *testing.T) {
	r := ROI{X: 10, Y: 10, Width: 10, Height: 10}
	got := r.Grow(3)
	want := ROI{X: 7, Y: 7, Width: 16, Height: 16}
	if got != want {
		t.Errorf("Grow(3) = %+v, want %+v", got, want)
	}
}

// TestBackwardForwardComposition checks the ROI composition invariant
// (§8): for a pure coordinate-shift transform, ModifyRoiIn(ModifyRoiOut(r))
// must contain r. Grow/shrink-by-offset stands in for a concrete module's
// ModifyRoiIn/ModifyRoiOut pair here.
func TestBackwardForwardComposition(t *testing.T) {
	shiftOut := func(r ROI) ROI { return ROI{X: r.X + 5, Y: r.Y + 5, Width: r.Width - 10, Height: r.Height - 10, Scale: r.Scale} }
	shiftIn := func(r ROI) ROI { return ROI{X: r.X - 5, Y: r.Y - 5, Width: r.Width + 10, Height: r.Height + 10, Scale: r.Scale} }

	r := ROI{X: 0, Y: 0, Width: 100, Height: 100}
	out := shiftOut(r)
	back := shiftIn(out)
	if !back.Contains(r) {
		t.Errorf("ModifyRoiIn(ModifyRoiOut(r)) = %+v does not contain r = %+v", back, r)
	}
}
