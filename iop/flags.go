/*
DESCRIPTION
  flags.go defines the static module-flags bitset (§3, §4.4): whether a
  module accepts blending, may be tiled, has an output ROI that is a
  strict function of input ROI, is deprecated, or is a singleton.

LICENSE
  Copyright (C) 2026 the Pixelpipe Authors. All Rights Reserved.
*/

package iop

// Flags is the static capability bitset of a module, analogous to the
// source's per-module flags bitfield.
type Flags uint32

const (
	// SupportsBlending indicates the module accepts blending parameters.
	SupportsBlending Flags = 1 << iota

	// AllowTiling indicates the module's Process may be invoked on tiles
	// of the requested ROI rather than the whole region at once.
	AllowTiling

	// OneInstance restricts the module to a single instance per
	// pipeline (e.g. white-balance).
	OneInstance

	// Deprecated marks a module retained only for legacy-parameter
	// compatibility; it is never enabled by default.
	Deprecated

	// RoiOutIsFunctionOfIn marks modules (the crop/clipping family)
	// whose output ROI is a strict function of their input ROI. The
	// engine does not read it: these modules go through the same ROI
	// negotiation as every other module.
	RoiOutIsFunctionOfIn
)

// Has reports whether f includes bit.
func (f Flags) Has(bit Flags) bool { return f&bit != 0 }
