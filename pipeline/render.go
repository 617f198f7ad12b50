/*
DESCRIPTION
  render.go implements the render front-end (C9): the entry points a
  host calls to produce encoded pixels for the whole image or a
  sub-region, at any scale. Every render restores the chroma
  coordinator and the working buffer's descriptor to their initial
  state first (§4.1, §9), so two renders of the same pipeline at
  different parameters never see state bled over from the previous one.

LICENSE
  Copyright (C) 2026 the Pixelpipe Authors. All Rights Reserved.
*/

package pipeline

import (
	"github.com/rawforge/pixelpipe/encode"
	"github.com/rawforge/pixelpipe/engine"
	"github.com/rawforge/pixelpipe/pixel"
)

// Render renders the full image at the given scale (1 = native
// resolution).
func (p *Pipeline) Render(scale float64) (*encode.Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.renderLocked(0, 0, p.image.Width, p.image.Height, scale)
}

// RenderRegion renders the sub-rectangle [x, y, x+w, y+h) of the image
// at the given scale.
func (p *Pipeline) RenderRegion(x, y, w, h int, scale float64) (*encode.Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.renderLocked(x, y, w, h, scale)
}

func (p *Pipeline) renderLocked(x, y, w, h int, scale float64) (*encode.Result, error) {
	if scale <= 0 {
		return nil, &pixel.InvalidArgument{Reason: "scale must be positive"}
	}
	working, err := p.ensureWorking()
	if err != nil {
		return nil, err
	}

	p.chroma.Reset()

	roiOut := pixel.ROI{X: x, Y: y, Width: w, Height: h, Scale: scale}
	if roiOut.Empty() {
		return encode.Encode(&pixel.Buffer{}), nil
	}

	opts := engine.Options{
		Parallelism: int(p.cfg.Parallelism),
		TileBudget:  int(p.cfg.TileBudget),
		Logger:      p.cfg.Logger,
	}
	result, err := engine.Execute(p.pieces, working, p.initialDsc, roiOut, p.cache, p.shutdown, opts)
	if err != nil {
		return nil, err
	}

	if scale != 1 {
		result, err = resample(result, scale)
		if err != nil {
			return nil, err
		}
	}
	return encode.Encode(result), nil
}
