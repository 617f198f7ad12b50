/*
DESCRIPTION
  params.go implements the host-facing parameter entry points (§6):
  enabling and disabling modules, and typed get/set access into a
  piece's parameter bytes, delegating to the params.Registry for field
  lookup and bounds, and to params.Upgrades for restoring a saved
  parameter blob from an older version.

LICENSE
  Copyright (C) 2026 the Pixelpipe Authors. All Rights Reserved.
*/

package pipeline

import (
	"strconv"

	"github.com/rawforge/pixelpipe/engine"
)

// EnableModule enables or disables the named module for subsequent
// renders. Disabling a module that currently holds the chromatic-
// adaptation claim releases it, letting a downstream CAT-capable module
// claim it on the next commit.
func (p *Pipeline) EnableModule(op string, enabled bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	piece, err := p.findPiece(op)
	if err != nil {
		return err
	}
	piece.SetEnabled(enabled)
	if !enabled {
		p.chroma.Release(op + "#" + strconv.Itoa(piece.Instance))
	}
	// The enabled flag is not part of a cache Key; flipping it changes
	// whether this piece runs at all, so any entry computed under its
	// old state must not be reused.
	p.cache.InvalidatePiece(engine.PieceID(piece, p.pieceIndex(piece)))
	return nil
}

// SetParamFloat writes value into the named float32 field of op's
// parameters and commits it for the next render.
func (p *Pipeline) SetParamFloat(op, name string, value float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	piece, err := p.findPiece(op)
	if err != nil {
		return err
	}
	buf := append([]byte(nil), piece.Params...)
	if err := p.registry.SetFloat(p.cfg.Logger, buf, op, name, value); err != nil {
		return err
	}
	piece.Commit(buf)
	return nil
}

// GetParamFloat reads the named float32 field of op's current
// parameters.
func (p *Pipeline) GetParamFloat(op, name string) (float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	piece, err := p.findPiece(op)
	if err != nil {
		return 0, err
	}
	return p.registry.GetFloat(piece.Params, op, name)
}

// SetParamInt writes value into the named int32 field of op's
// parameters and commits it for the next render.
func (p *Pipeline) SetParamInt(op, name string, value int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	piece, err := p.findPiece(op)
	if err != nil {
		return err
	}
	buf := append([]byte(nil), piece.Params...)
	if err := p.registry.SetInt(p.cfg.Logger, buf, op, name, value); err != nil {
		return err
	}
	piece.Commit(buf)
	return nil
}

// GetParamInt reads the named int32 field of op's current parameters.
func (p *Pipeline) GetParamInt(op, name string) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	piece, err := p.findPiece(op)
	if err != nil {
		return 0, err
	}
	return p.registry.GetInt(piece.Params, op, name)
}

// SetParamBool writes value into the named bool field of op's
// parameters and commits it for the next render.
func (p *Pipeline) SetParamBool(op, name string, value bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	piece, err := p.findPiece(op)
	if err != nil {
		return err
	}
	buf := append([]byte(nil), piece.Params...)
	if err := p.registry.SetBool(buf, op, name, value); err != nil {
		return err
	}
	piece.Commit(buf)
	return nil
}

// GetParamBool reads the named bool field of op's current parameters.
func (p *Pipeline) GetParamBool(op, name string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	piece, err := p.findPiece(op)
	if err != nil {
		return false, err
	}
	return p.registry.GetBool(piece.Params, op, name)
}

// RestoreParams replaces op's entire parameter blob with data, upgrading
// it from fromVersion to the module's current version first. A failed
// upgrade leaves the piece's existing committed parameters untouched.
func (p *Pipeline) RestoreParams(op string, data []byte, fromVersion int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	piece, err := p.findPiece(op)
	if err != nil {
		return err
	}
	upgraded, err := p.upgrades.Upgrade(op, data, fromVersion)
	if err != nil {
		return err
	}
	piece.Commit(upgraded)
	return nil
}
