/*
DESCRIPTION
  engine.go implements the execution engine (C7): the recursive,
  ROI-driven evaluator that, given a requested output ROI, computes the
  minimal input ROI at every upstream piece (backward pass), then runs
  each piece's pixel kernel forward from the pipeline's working input
  buffer to the final backbuffer, consulting the result cache and
  respecting tiling and cancellation along the way.

LICENSE
  Copyright (C) 2026 the Pixelpipe Authors. All Rights Reserved.
*/

package engine

import (
	"strconv"
	"sync"

	"github.com/ausocean/utils/logging"

	"github.com/rawforge/pixelpipe/iop"
	"github.com/rawforge/pixelpipe/pixel"
)

// Options configures one Execute call.
type Options struct {
	// Parallelism is the maximum number of worker goroutines the tile
	// scheduler may use. A piece's row loop is not split across
	// goroutines.
	Parallelism int

	// TileBudget is the pixel-count threshold above which an
	// AllowTiling piece is tiled rather than processed in one call.
	TileBudget int

	Logger logging.Logger
}

// planStep is one piece's negotiated ROI pair, computed by the backward
// pass. skip marks a piece that must pass its input through unmodified
// for this render alone, without touching p.Enabled.
type planStep struct {
	roiIn, roiOut pixel.ROI
	skip          bool
}

// plan runs the backward ROI pass (§4.7): starting from the tail piece
// with roiOut as requested, for each piece in reverse order it computes
// roi_in = piece.ModifyRoiIn(roi_out); the previous piece's roi_out is
// this piece's roi_in. A piece whose transformed roi_in falls below the
// minimum usable extent disables itself for this render only and
// passes its input through untouched, logging a diagnostic.
func plan(pieces []*iop.Piece, roiOut pixel.ROI, log logging.Logger) []planStep {
	steps := make([]planStep, len(pieces))
	cur := roiOut
	for i := len(pieces) - 1; i >= 0; i-- {
		p := pieces[i]
		var in pixel.ROI
		skip := false
		switch {
		case !p.Enabled:
			in = cur
		default:
			candidate := p.Module.ModifyRoiIn(p, cur)
			if candidate.Degenerate() {
				skip = true
				in = cur
				if log != nil {
					log.Warning("degenerate ROI after transform, disabling piece for this render",
						"piece", p.Module.OpName(), "width", candidate.Width, "height", candidate.Height)
				}
			} else {
				in = candidate
			}
		}
		steps[i] = planStep{roiIn: in, roiOut: cur, skip: skip}
		cur = in
	}
	return steps
}

// Execute runs the engine for one render_region call. input is the
// pipeline's lazily-unpacked working buffer (full image extent);
// initialDsc is the descriptor snapshot to restore before this render
// (§4.1, §9: format-changing modules require this reset on every render).
// Returns the final backbuffer, or a typed error per §7.
func Execute(
	pieces []*iop.Piece,
	input *pixel.Buffer,
	initialDsc pixel.Descriptor,
	roiOut pixel.ROI,
	cache *Cache,
	shutdown *Shutdown,
	opts Options,
) (*pixel.Buffer, error) {
	if roiOut.Empty() {
		return &pixel.Buffer{Dsc: initialDsc}, nil
	}

	steps := plan(pieces, roiOut, opts.Logger)

	headIn := steps[0].roiIn.Clip(input.Width, input.Height)
	cur, err := Crop(input, headIn)
	if err != nil {
		return nil, err
	}
	cur.Dsc = initialDsc

	for i, p := range pieces {
		if shutdown.Requested() != LevelNone {
			return nil, &pixel.Cancelled{}
		}

		if !p.Enabled || steps[i].skip {
			p.Dsc = cur.Dsc
			continue
		}

		if p.Dirty() {
			if err := p.Module.CommitParams(p); err != nil {
				return nil, &PipelineFailed{PieceID: pieceID(p, i), Cause: err}
			}
			p.ClearDirty()
		}

		outDsc := p.Module.OutputFormat(p, cur.Dsc)
		roiIn, roiOut := steps[i].roiIn, steps[i].roiOut

		key := Key{
			PieceID:   pieceID(p, i),
			RoiIn:     roiIn,
			RoiOut:    roiOut,
			ParamHash: HashParams(p.Params),
			DscHash:   HashDescriptor(cur.Dsc),
		}

		src := cur
		out, dsc, err := cache.Compute(key, func() (*pixel.Buffer, pixel.Descriptor, error) {
			buf, err := runPiece(p, src, outDsc, roiIn, roiOut, shutdown, opts)
			return buf, outDsc, err
		})
		if err != nil {
			return nil, &PipelineFailed{PieceID: key.PieceID, Cause: err}
		}

		cur = out
		cur.Dsc = dsc
		p.Dsc = dsc
	}

	return cur, nil
}

// runPiece dispatches a single piece's Process call, tiling it if the
// module allows tiling and the requested ROI exceeds the configured
// budget.
func runPiece(p *iop.Piece, src *pixel.Buffer, outDsc pixel.Descriptor, roiIn, roiOut pixel.ROI, shutdown *Shutdown, opts Options) (*pixel.Buffer, error) {
	budget := opts.TileBudget
	if budget <= 0 {
		budget = DefaultTileBudget
	}

	if !p.Module.ModuleFlags().Has(iop.AllowTiling) || !needsTiling(roiOut, budget) {
		out, err := pixel.NewBuffer(outDsc, roiOut.Width, roiOut.Height)
		if err != nil {
			return nil, err
		}
		if err := p.Module.Process(p, src, out, roiIn, roiOut); err != nil {
			return nil, err
		}
		return out, nil
	}

	out, err := pixel.NewBuffer(outDsc, roiOut.Width, roiOut.Height)
	if err != nil {
		return nil, err
	}
	halo := p.Module.Halo()
	tiles := splitTiles(roiOut)
	results := make([]*pixel.Buffer, len(tiles))
	errs := make([]error, len(tiles))

	workers := opts.Parallelism
	if workers <= 0 {
		workers = 1
	}
	if workers > len(tiles) {
		workers = len(tiles)
	}

	idxCh := make(chan int, len(tiles))
	for i := range tiles {
		idxCh <- i
	}
	close(idxCh)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range idxCh {
				if shutdown.Requested() == LevelBetweenTiles {
					errs[i] = &pixel.Cancelled{}
					continue
				}
				results[i], errs[i] = processTile(p, src, outDsc, roiIn, tiles[i], halo)
			}
		}()
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, err
		}
		Paste(out, roiOut, results[i], tiles[i])
	}
	return out, nil
}

// processTile runs one tile of a tiled piece's Process, translating the
// module's declared halo into the source buffer's local coordinates.
func processTile(p *iop.Piece, src *pixel.Buffer, outDsc pixel.Descriptor, roiIn, tileOut pixel.ROI, halo int) (*pixel.Buffer, error) {
	tileOutHalo := tileOut.Grow(halo)
	tileIn := p.Module.ModifyRoiIn(p, tileOutHalo)

	// tileIn is expressed in the same coordinate space as roiIn;
	// translate into src's local (0,0)-anchored coordinates.
	local := pixel.ROI{
		X: tileIn.X - roiIn.X, Y: tileIn.Y - roiIn.Y,
		Width: tileIn.Width, Height: tileIn.Height, Scale: tileIn.Scale,
	}
	tileSrc, err := Crop(src, local.Clip(src.Width, src.Height))
	if err != nil {
		return nil, err
	}
	tileSrc.Dsc = src.Dsc

	tileDst, err := pixel.NewBuffer(outDsc, tileOut.Width, tileOut.Height)
	if err != nil {
		return nil, err
	}
	if err := p.Module.Process(p, tileSrc, tileDst, tileIn, tileOut); err != nil {
		return nil, err
	}
	return tileDst, nil
}

// PieceID returns the cache- and error-reporting identifier for p at its
// position index within a pieces slice: the same identifier Execute
// computes internally, exported so callers holding a piece and its
// pipeline position (e.g. to invalidate its cache entries after
// enabling/disabling it) can reproduce it without duplicating the format.
func PieceID(p *iop.Piece, index int) string {
	return p.Module.OpName() + "#" + strconv.Itoa(index) + "#" + strconv.Itoa(p.Instance)
}

func pieceID(p *iop.Piece, index int) string { return PieceID(p, index) }

// PipelineFailed is returned when a module's Process call returns a
// non-recoverable error; it is fatal for the render.
type PipelineFailed struct {
	PieceID string
	Cause   error
}

func (e *PipelineFailed) Error() string {
	return "engine: piece " + e.PieceID + " failed: " + e.Cause.Error()
}

func (e *PipelineFailed) Unwrap() error { return e.Cause }
