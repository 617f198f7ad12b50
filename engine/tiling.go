/*
DESCRIPTION
  tiling.go implements §4.7's tiling behaviour: when a piece declares
  AllowTiling and the requested ROI exceeds the per-tile memory budget,
  the engine partitions roi_out into tiles with overlapping halos sized by
  the module's declared halo, processes each independently (respecting
  the module's own ROI contract per tile), and stitches the results.

LICENSE
  Copyright (C) 2026 the Pixelpipe Authors. All Rights Reserved.
*/

package engine

import "github.com/rawforge/pixelpipe/pixel"

// DefaultTileBudget is the maximum number of output pixels a single Process call
// may cover before the engine switches to tiling, for pieces that declare
// AllowTiling. It is a host-tunable default; pipeline.Config may override
// it.
const DefaultTileBudget = 1 << 20 // 1 megapixel.

const defaultTileSize = 512

// needsTiling reports whether roiOut exceeds budget pixels.
func needsTiling(roiOut pixel.ROI, budget int) bool {
	return roiOut.Width*roiOut.Height > budget
}

// splitTiles partitions roiOut into a grid of tiles no larger than
// defaultTileSize on a side.
func splitTiles(roiOut pixel.ROI) []pixel.ROI {
	var tiles []pixel.ROI
	for y := 0; y < roiOut.Height; y += defaultTileSize {
		th := defaultTileSize
		if y+th > roiOut.Height {
			th = roiOut.Height - y
		}
		for x := 0; x < roiOut.Width; x += defaultTileSize {
			tw := defaultTileSize
			if x+tw > roiOut.Width {
				tw = roiOut.Width - x
			}
			tiles = append(tiles, pixel.ROI{
				X: roiOut.X + x, Y: roiOut.Y + y,
				Width: tw, Height: th, Scale: roiOut.Scale,
			})
		}
	}
	return tiles
}
