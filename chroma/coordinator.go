/*
DESCRIPTION
  coordinator.go implements the chromatic-adaptation coordinator (C8): the
  pipeline-scoped state describing which piece performs white balance and
  which, if any, piece currently holds the chromatic-adaptation-transform
  (CAT) claim.

  Resolution of the §9 open question ("earlier in pipe" for the CAT claim):
  this port defines "earlier" as lower IopOrder, falling back to lower
  Instance index on an IopOrder tie, matching the general tie-break rule
  §4.5 states for the module ordering itself.

LICENSE
  Copyright (C) 2026 the Pixelpipe Authors. All Rights Reserved.
*/

package chroma

import "sync"

// Claimant identifies a piece competing for the CAT claim.
type Claimant struct {
	PieceID  string
	IopOrder float64
	Instance int
}

// earlier reports whether a is positioned earlier in the pipeline than b:
// lower IopOrder wins; ties break by lower Instance.
func earlier(a, b Claimant) bool {
	if a.IopOrder != b.IopOrder {
		return a.IopOrder < b.IopOrder
	}
	return a.Instance < b.Instance
}

// State is the chroma-adaptation state published by the white-balance
// piece for the color-calibration piece (or any other CAT-capable
// downstream module) to consume.
type State struct {
	WBCoeffs       [4]float64
	AsShot         [4]float64
	D65Coeffs      [4]float64
	LateCorrection bool
}

// Coordinator is pipeline-scoped state, one instance per pipeline: it
// mediates which piece performs the chromatic adaptation transform. Two
// concurrent pipelines hold independent coordinators (§4.8 invariant).
type Coordinator struct {
	mu       sync.Mutex
	claimant *Claimant
	state    State
}

// New returns a fresh, unclaimed Coordinator.
func New() *Coordinator {
	return &Coordinator{}
}

// ClaimCAT is called by a CAT-capable piece during CommitParams. It grants
// the claim if no previous claim exists or if claimant is earlier in the
// pipeline than the incumbent; otherwise it denies the claim and the
// caller must degrade to an identity CAT.
func (c *Coordinator) ClaimCAT(claimant Claimant) (granted bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.claimant == nil || earlier(claimant, *c.claimant) {
		cl := claimant
		c.claimant = &cl
		return true
	}
	return claimant == *c.claimant
}

// Release withdraws pieceID's claim, if it holds one. Called when a piece
// is disabled so a downstream claimant may take over on the next commit.
func (c *Coordinator) Release(pieceID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.claimant != nil && c.claimant.PieceID == pieceID {
		c.claimant = nil
	}
}

// Claimed reports whether any piece currently holds the CAT claim, and if
// so, which one.
func (c *Coordinator) Claimed() (Claimant, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.claimant == nil {
		return Claimant{}, false
	}
	return *c.claimant, true
}

// PublishWhiteBalance is called by the white-balance piece's CommitParams
// to publish its coefficients for the color-calibration piece (or any
// other downstream consumer) to read.
func (c *Coordinator) PublishWhiteBalance(s State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = s
}

// WhiteBalanceState returns the most recently published white-balance
// state.
func (c *Coordinator) WhiteBalanceState() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Reset clears all coordinator state, called when the pipeline's
// descriptor is reset before a render (see initial_dsc restore, §4.1, §9).
func (c *Coordinator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.claimant = nil
	c.state = State{}
}
