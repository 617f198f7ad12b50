/*
DESCRIPTION
  roi.go implements the region-of-interest algebra (C2): the integer
  origin/extent/scale rectangle that the execution engine propagates
  backward through the pipeline, and the minimum-margin contract that
  geometric modules (crop, clipping) must honour.

LICENSE
  Copyright (C) 2026 the Pixelpipe Authors. All Rights Reserved.
*/

package pixel

// minROIDim is the smallest width or height a ROI may have after a
// geometric transform before the producing module must disable itself for
// the render (see ROI.Degenerate).
const minROIDim = 4

// ROI is an integer rectangle plus a scale factor. Scale == 1 corresponds
// to full image resolution; x and y are always non-negative and width and
// height are always positive for a non-empty ROI.
type ROI struct {
	X, Y          int
	Width, Height int
	Scale         float64
}

// Empty reports whether the ROI has zero area. An empty ROI is a valid,
// non-error value: it signals "render nothing" rather than failure.
func (r ROI) Empty() bool {
	return r.Width == 0 || r.Height == 0
}

// Degenerate reports whether the ROI fell below the minimum usable extent
// after a geometric transform. A module that produces a degenerate ROI
// must disable itself for the render and pass its input through instead.
func (r ROI) Degenerate() bool {
	return !r.Empty() && (r.Width < minROIDim || r.Height < minROIDim)
}

// Clip intersects r with the bounds [0,0]-[width,height), returning the
// clipped ROI. Used to bound requested regions to the image extent.
func (r ROI) Clip(width, height int) ROI {
	x0, y0 := r.X, r.Y
	x1, y1 := r.X+r.Width, r.Y+r.Height
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > width {
		x1 = width
	}
	if y1 > height {
		y1 = height
	}
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return ROI{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0, Scale: r.Scale}
}

// Union returns the smallest ROI enclosing both r and o, at r's scale.
// Used when stitching tile halos back together.
func (r ROI) Union(o ROI) ROI {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	x0 := min(r.X, o.X)
	y0 := min(r.Y, o.Y)
	x1 := max(r.X+r.Width, o.X+o.Width)
	y1 := max(r.Y+r.Height, o.Y+o.Height)
	return ROI{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0, Scale: r.Scale}
}

// Contains reports whether r fully encloses o. Used to check the
// backward-forward composition invariant: modify_roi_in(modify_roi_out(r))
// must contain r.
func (r ROI) Contains(o ROI) bool {
	if o.Empty() {
		return true
	}
	return o.X >= r.X && o.Y >= r.Y &&
		o.X+o.Width <= r.X+r.Width &&
		o.Y+o.Height <= r.Y+r.Height
}

// Grow returns a copy of r expanded by n pixels on every side, used to add
// a tiling halo to a tile's output ROI before asking upstream for input.
func (r ROI) Grow(n int) ROI {
	return ROI{X: r.X - n, Y: r.Y - n, Width: r.Width + 2*n, Height: r.Height + 2*n, Scale: r.Scale}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
