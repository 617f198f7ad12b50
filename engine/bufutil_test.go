package engine

import (
	"testing"

	"github.com/rawforge/pixelpipe/pixel"
)

func filledBuffer(t *testing.T, w, h int, fill float32) *pixel.Buffer {
	t.Helper()
	buf, err := pixel.NewBuffer(pixel.ForRGB(), w, h)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	for i := range buf.Data {
		buf.Data[i] = fill
	}
	return buf
}

func TestCropWithinBounds(t *testing.T) {
	src := filledBuffer(t, 10, 10, 1)
	dst, err := Crop(src, pixel.ROI{X: 2, Y: 2, Width: 4, Height: 4})
	if err != nil {
		t.Fatalf("Crop: %v", err)
	}
	if dst.Width != 4 || dst.Height != 4 {
		t.Fatalf("unexpected crop size: %dx%d", dst.Width, dst.Height)
	}
	for _, v := range dst.Data {
		if v != 1 {
			t.Fatal("cropped data should match source fill value")
		}
	}
}

func TestCropZeroFillsOutsideSource(t *testing.T) {
	src := filledBuffer(t, 4, 4, 1)
	dst, err := Crop(src, pixel.ROI{X: -2, Y: -2, Width: 4, Height: 4})
	if err != nil {
		t.Fatalf("Crop: %v", err)
	}
	// Bottom-right 2x2 of dst maps to src's top-left 2x2 (value 1); the
	// rest falls outside src and should remain zero.
	ch := dst.Dsc.Channels
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			i := dst.At(x, y)
			want := float32(0)
			if x >= 2 && y >= 2 {
				want = 1
			}
			if dst.Data[i] != want {
				t.Errorf("pixel (%d,%d) = %v, want %v", x, y, dst.Data[i], want)
			}
			_ = ch
		}
	}
}

func TestCropEmptyROI(t *testing.T) {
	src := filledBuffer(t, 4, 4, 1)
	dst, err := Crop(src, pixel.ROI{})
	if err != nil {
		t.Fatalf("Crop: %v", err)
	}
	if !dst.Empty() {
		t.Error("Crop of an empty ROI should yield an empty buffer")
	}
}

func TestPasteWithinBounds(t *testing.T) {
	dst := filledBuffer(t, 8, 8, 0)
	tile := filledBuffer(t, 3, 3, 5)
	Paste(dst, pixel.ROI{X: 0, Y: 0, Width: 8, Height: 8}, tile, pixel.ROI{X: 2, Y: 2, Width: 3, Height: 3})
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			i := dst.At(x, y)
			inTile := x >= 2 && x < 5 && y >= 2 && y < 5
			want := float32(0)
			if inTile {
				want = 5
			}
			if dst.Data[i] != want {
				t.Errorf("pixel (%d,%d) = %v, want %v", x, y, dst.Data[i], want)
			}
		}
	}
}

func TestPasteDropsOutOfBoundsPixels(t *testing.T) {
	dst := filledBuffer(t, 4, 4, 0)
	tile := filledBuffer(t, 4, 4, 9)
	// tileOrigin positions the tile so half of it falls outside dst.
	Paste(dst, pixel.ROI{X: 0, Y: 0, Width: 4, Height: 4}, tile, pixel.ROI{X: 2, Y: 2, Width: 4, Height: 4})
	if dst.Data[dst.At(0, 0)] != 0 {
		t.Error("pixel outside the pasted tile should be unaffected")
	}
	if dst.Data[dst.At(3, 3)] != 9 {
		t.Error("pixel within the overlapping region should be overwritten")
	}
}
