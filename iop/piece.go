/*
DESCRIPTION
  piece.go implements the pipeline piece (C6 data model): the runtime
  binding of a module instance to one pipeline. A piece owns the data
  block allocated by InitPiece, the module's committed parameter snapshot,
  and a copy of its blend parameters.

LICENSE
  Copyright (C) 2026 the Pixelpipe Authors. All Rights Reserved.
*/

package iop

import (
	"github.com/rawforge/pixelpipe/chroma"
	"github.com/rawforge/pixelpipe/pixel"
)

// Piece is the runtime binding of a module instance to a specific
// pipeline. One piece exists per module instance per pipeline; Data is
// non-nil between InitPiece and CleanupPiece (for modules that need a
// data block at all).
type Piece struct {
	Module Module

	// Chroma is the owning pipeline's chromatic-adaptation coordinator
	// (C8), shared by every piece so that CAT-capable modules (white
	// balance, color calibration) can claim or consult it from inside
	// CommitParams. Pieces that never touch CAT state leave it unused.
	Chroma *chroma.Coordinator

	// Instance and MultiPriority support multiple instances of the same
	// op in one pipeline (darktable-style "multi-instance" modules).
	// pipeline.Create constructs exactly one piece, Instance 0, for each
	// module.
	Instance      int
	MultiPriority int

	// IopOrder is this piece's position in the canonical ordering,
	// copied from the module catalog at construction.
	IopOrder float64

	Enabled bool

	// Params is the committed parameter snapshot, written only via
	// Commit (under the pipeline's mutex) and read by CommitParams and
	// Process.
	Params []byte

	// DefaultParams holds the module's default parameter bytes, set at
	// piece construction and never mutated thereafter.
	DefaultParams []byte

	// BlendParams holds blending parameters, nil if the module does not
	// support blending.
	BlendParams []byte

	// Data is the per-run data block allocated by Module.InitPiece and
	// released by Module.CleanupPiece.
	Data interface{}

	// Dsc is the output buffer descriptor computed by OutputFormat the
	// last time this piece ran.
	Dsc pixel.Descriptor

	dirty bool
}

// Commit copies newParams into p.Params and marks the piece dirty so the
// next render invokes Module.CommitParams before Process. Per §3, commit
// is the only path by which parameters are mutated, and it must happen
// under the pipeline's mutex (enforced by the caller, not by Piece
// itself).
func (p *Piece) Commit(newParams []byte) {
	buf := make([]byte, len(newParams))
	copy(buf, newParams)
	p.Params = buf
	p.dirty = true
}

// Dirty reports whether CommitParams must run again before the next
// Process call.
func (p *Piece) Dirty() bool { return p.dirty }

// ClearDirty marks the piece's parameters as committed; called by the
// engine immediately after a successful Module.CommitParams call.
func (p *Piece) ClearDirty() { p.dirty = false }

// SetEnabled toggles the piece on or off, marking it dirty so the next
// render invokes Module.CommitParams again. It does not touch the result
// cache; Pipeline.EnableModule invalidates the piece's cached entries.
func (p *Piece) SetEnabled(enabled bool) {
	if p.Enabled == enabled {
		return
	}
	p.Enabled = enabled
	p.dirty = true
}
