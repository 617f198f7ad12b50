/*
DESCRIPTION
  pipeline.go implements the pipeline graph (C6): the ordered list of
  pieces bound to one source image, plus the shared state (chroma
  coordinator, result cache, shutdown flag, lazily unpacked working
  buffer) every render against that image reuses. This generalises the
  teacher's setupPipeline/Revid construction pattern — walk a canonical
  list, construct one stage per entry, wire each stage's destination to
  the next — from a byte-stream transcoding chain to an image-operation
  chain addressed by ROI rather than by io.Writer.

LICENSE
  Copyright (C) 2026 the Pixelpipe Authors. All Rights Reserved.
*/

// Package pipeline implements the pipeline graph (C6) and render
// front-end (C9): constructing a chain of pieces bound to a source
// image from the module catalog, and running renders against it.
package pipeline

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/rawforge/pixelpipe/chroma"
	"github.com/rawforge/pixelpipe/engine"
	"github.com/rawforge/pixelpipe/iop"
	"github.com/rawforge/pixelpipe/params"
	"github.com/rawforge/pixelpipe/pipeline/config"
	"github.com/rawforge/pixelpipe/pixel"
)

// Pipeline is the runtime binding of a module chain to one source
// image. A Pipeline is not safe for concurrent Render/RenderRegion and
// parameter calls without going through its own mutex, which every
// exported method does.
type Pipeline struct {
	mu sync.Mutex

	image *pixel.Image
	cfg   config.Config

	catalog  *iop.Catalog
	registry *params.Registry
	upgrades *params.Upgrades

	pieces []*iop.Piece
	byOp   map[string]*iop.Piece

	chroma   *chroma.Coordinator
	cache    *engine.Cache
	shutdown *engine.Shutdown

	// initialDsc is the buffer-descriptor snapshot restored at the start
	// of every render (§4.1, §9): the format of the freshly unpacked
	// working buffer, before any format-changing module has run.
	initialDsc pixel.Descriptor

	// working is the lazily unpacked, full-extent float32 copy of
	// image.Pix. It is allocated on the first render and reused
	// thereafter; image itself is never mutated.
	working *pixel.Buffer
}

// These are the op names whose parameter bytes embed
// image-derived constants (the camera matrix, image extent) that
// Create writes directly into the piece's default parameters before
// the first commit, the same convention colorin, crop, clipping and
// vignette each document for their own hidden trailing fields.
const (
	opColorin   = "colorin"
	opCrop      = "crop"
	opClipping  = "clipping"
	opVignette  = "vignette"
)

// Create builds a Pipeline for image using catalog's canonical module
// ordering, registry's parameter tables and upgrades' legacy-parameter
// chains. Every module in catalog is instantiated except those the
// catalog reports as Skipped (an infinite IopOrder); only the
// default-enabled subset (named in defaultEnabled) starts enabled.
func Create(image *pixel.Image, cfg config.Config, catalog *iop.Catalog, registry *params.Registry, upgrades *params.Upgrades, defaultEnabled map[string]bool) (*Pipeline, error) {
	if err := image.Valid(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Pipeline{
		image:    image,
		cfg:      cfg,
		catalog:  catalog,
		registry: registry,
		upgrades: upgrades,
		byOp:     make(map[string]*iop.Piece),
		chroma:   chroma.New(),
		cache:    engine.NewCache(cfg.CacheLimit),
		shutdown: &engine.Shutdown{},
	}

	for _, op := range catalog.Names() {
		if catalog.Skipped(op) {
			continue
		}
		reg, _ := catalog.Lookup(op)
		mod := reg.New()

		size, err := registry.ParamsSize(op)
		if err != nil {
			return nil, errors.Wrapf(err, "pipeline: building %q", op)
		}
		initBytes := mod.Init()
		if len(initBytes) != size {
			return nil, fmt.Errorf("pipeline: op %q: Init returned %d bytes, registry declares %d", op, len(initBytes), size)
		}

		bakeImageFields(op, initBytes, image)

		piece := &iop.Piece{
			Module:        mod,
			Chroma:        p.chroma,
			Instance:      0,
			IopOrder:      reg.IopOrder,
			Enabled:       defaultEnabled[op],
			DefaultParams: append([]byte(nil), initBytes...),
		}
		piece.Commit(initBytes)

		p.pieces = append(p.pieces, piece)
		p.byOp[op] = piece
	}

	p.initialDsc = pixel.ForRaw(image.Filters, image.RawWhitePoint)
	if image.Filters.Kind == pixel.FilterNone {
		p.initialDsc = pixel.ForRGB()
	}

	return p, nil
}

// bakeImageFields writes the image-derived constants particular ops
// need directly into their default parameter bytes, before the piece's
// first commit. This is the one place a module's "hidden" trailing
// fields (undeclared in its DescriptorTable, and so unreachable by the
// host parameter API) are populated.
func bakeImageFields(op string, buf []byte, image *pixel.Image) {
	switch op {
	case opColorin:
		for i, v := range image.CameraToXYZ {
			putF32At(buf, i*4, float32(v))
		}
	case opCrop, opClipping:
		// Both modules reserve their last two fields as int32
		// image width/height, immediately after their float fields.
		n := len(buf)
		putI32At(buf, n-8, int32(image.Width))
		putI32At(buf, n-4, int32(image.Height))
	case opVignette:
		n := len(buf)
		putI32At(buf, n-8, int32(image.Width))
		putI32At(buf, n-4, int32(image.Height))
	}
}

// Free releases every piece's data block and clears the pipeline's
// cache. The Pipeline must not be used afterward.
func (p *Pipeline) Free() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var firstErr error
	for i := len(p.pieces) - 1; i >= 0; i-- {
		piece := p.pieces[i]
		if err := piece.Module.CleanupPiece(piece); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	p.cache.Clear()
	p.pieces = nil
	p.byOp = nil
	return firstErr
}

// Shutdown requests cancellation of any in-progress or future render at
// the given granularity.
func (p *Pipeline) Shutdown(level engine.Level) {
	p.shutdown.Request(level)
}

func (p *Pipeline) findPiece(op string) (*iop.Piece, error) {
	piece, ok := p.byOp[op]
	if !ok {
		return nil, &params.NotFound{Op: op}
	}
	return piece, nil
}

// pieceIndex returns target's position within p.pieces, the same index
// Execute uses to build its cache keys' piece identifiers. Returns -1 if
// target is not one of p.pieces (it always should be).
func (p *Pipeline) pieceIndex(target *iop.Piece) int {
	for i, piece := range p.pieces {
		if piece == target {
			return i
		}
	}
	return -1
}
