/*
DESCRIPTION
  module.go defines the IOP module contract (C4): the capability set every
  image-operation module implements. The source's function-pointer vtable
  becomes a Go interface, per this port's design notes preferring a
  polymorphic capability set over a tagged union for extensibility.

LICENSE
  Copyright (C) 2026 the Pixelpipe Authors. All Rights Reserved.
*/

package iop

import (
	"github.com/rawforge/pixelpipe/params"
	"github.com/rawforge/pixelpipe/pixel"
)

// Module is the capability set a concrete image-operation implements.
// Default (identity) behaviour for ModifyRoiOut, ModifyRoiIn and
// OutputFormat is provided by embedding Identity.
type Module interface {
	// OpName returns the module's operation name, the key used
	// throughout the parameter registry and module catalog.
	OpName() string

	// DefaultColorspace is the colour space this module expects on
	// input when used in its default position in the chain.
	DefaultColorspace() pixel.Colorspace

	// ModuleFlags returns the module's static capability bitset.
	ModuleFlags() Flags

	// Halo returns the number of pixels of context this module needs
	// beyond its output ROI on every side when tiled. Modules that do
	// not declare AllowTiling return 0.
	Halo() int

	// ParamsSize returns the byte size of this module's current
	// parameter struct, used to size new instances' parameter buffers.
	ParamsSize() int

	// ParamsVersion returns the current version of this module's
	// parameter struct.
	ParamsVersion() int

	// DescriptorTable returns the field descriptor table registered
	// for this module's parameters.
	DescriptorTable() params.Table

	// UpgradeSteps returns the chain of legacy-parameter upgrade
	// functions, one per hop from version v to v+1, for v in
	// [1, ParamsVersion()).
	UpgradeSteps() []params.UpgradeFunc

	// Init returns the module's default parameter bytes, allocated
	// fresh for a new module instance.
	Init() []byte

	// InitPiece is called when a piece binding this module instance to
	// a pipeline is created. It returns the per-run data block that
	// Process will use, or nil if the module needs none.
	InitPiece() (interface{}, error)

	// CommitParams is called once per dirty parameter snapshot before
	// Process runs. It must translate the piece's current parameter
	// bytes into whatever process-ready form it stores in piece.Data,
	// and may update chroma-adaptation state (§4.8).
	CommitParams(p *Piece) error

	// ModifyRoiOut computes the output region this module will emit
	// given the upstream output region roiIn.
	ModifyRoiOut(p *Piece, roiIn pixel.ROI) pixel.ROI

	// ModifyRoiIn computes the minimal input region needed to produce
	// roiOut.
	ModifyRoiIn(p *Piece, roiOut pixel.ROI) pixel.ROI

	// OutputFormat mutates (returns a modified copy of) the current
	// buffer descriptor to reflect this module's output format.
	OutputFormat(p *Piece, in pixel.Descriptor) pixel.Descriptor

	// Process runs the pixel kernel: reads in according to its
	// declared colour space, writes out, and must preserve alpha when
	// emitting 4 channels.
	Process(p *Piece, in, out *pixel.Buffer, roiIn, roiOut pixel.ROI) error

	// CleanupPiece releases the piece's data block.
	CleanupPiece(p *Piece) error
}

// Identity provides the default, pass-through implementations of the ROI
// and format-negotiation callbacks (§4.4: "identity by default"). Concrete
// modules embed Identity and override only what they need to change.
type Identity struct{}

func (Identity) ModifyRoiOut(p *Piece, roiIn pixel.ROI) pixel.ROI   { return roiIn }
func (Identity) ModifyRoiIn(p *Piece, roiOut pixel.ROI) pixel.ROI   { return roiOut }
func (Identity) OutputFormat(p *Piece, in pixel.Descriptor) pixel.Descriptor { return in }
func (Identity) Halo() int                                         { return 0 }
func (Identity) InitPiece() (interface{}, error)                   { return nil, nil }
func (Identity) CleanupPiece(p *Piece) error                        { return nil }
func (Identity) UpgradeSteps() []params.UpgradeFunc                 { return nil }
func (Identity) DescriptorTable() params.Table                      { return nil }
func (Identity) ParamsVersion() int                                 { return 1 }
