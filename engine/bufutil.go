/*
DESCRIPTION
  bufutil.go provides the small pixel-copy helpers the engine needs to
  move data between the dense per-piece buffers it allocates: cropping a
  source buffer to a requested sub-rectangle (zero-filling outside the
  source's extent, for ROI-at-border clipping) and pasting a tile's
  output back into the buffer covering the whole requested ROI.

LICENSE
  Copyright (C) 2026 the Pixelpipe Authors. All Rights Reserved.
*/

package engine

import "github.com/rawforge/pixelpipe/pixel"

// Crop returns a new buffer holding the pixels of src within roi
// (expressed in src's own pixel coordinates), zero-filling any part of
// roi that falls outside src's extent. The returned buffer carries src's
// descriptor.
func Crop(src *pixel.Buffer, roi pixel.ROI) (*pixel.Buffer, error) {
	if roi.Empty() {
		return &pixel.Buffer{Dsc: src.Dsc}, nil
	}
	dst, err := pixel.NewBuffer(src.Dsc, roi.Width, roi.Height)
	if err != nil {
		return nil, err
	}
	ch := src.Dsc.Channels
	for y := 0; y < roi.Height; y++ {
		sy := roi.Y + y
		if sy < 0 || sy >= src.Height {
			continue
		}
		for x := 0; x < roi.Width; x++ {
			sx := roi.X + x
			if sx < 0 || sx >= src.Width {
				continue
			}
			si := src.At(sx, sy)
			di := dst.At(x, y)
			copy(dst.Data[di:di+ch], src.Data[si:si+ch])
		}
	}
	return dst, nil
}

// Paste copies tile (whose pixel (0,0) corresponds to image coordinate
// tileOrigin) into dst, which is assumed to be anchored at dstOrigin.
// Pixels of tile outside dst's extent are silently dropped, supporting
// halo regions that extend past the final output rectangle.
func Paste(dst *pixel.Buffer, dstOrigin pixel.ROI, tile *pixel.Buffer, tileOrigin pixel.ROI) {
	ch := dst.Dsc.Channels
	for y := 0; y < tile.Height; y++ {
		dy := tileOrigin.Y + y - dstOrigin.Y
		if dy < 0 || dy >= dst.Height {
			continue
		}
		for x := 0; x < tile.Width; x++ {
			dx := tileOrigin.X + x - dstOrigin.X
			if dx < 0 || dx >= dst.Width {
				continue
			}
			si := tile.At(x, y)
			di := dst.At(dx, dy)
			copy(dst.Data[di:di+ch], tile.Data[si:si+ch])
		}
	}
}
