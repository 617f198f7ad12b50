/*
DESCRIPTION
  shutdown.go implements the pipeline-scoped cancellation flag (§4.7, §5):
  a two-level atomic signal checked between pieces and between tiles. No
  Module.Process call is ever pre-empted mid-call.

LICENSE
  Copyright (C) 2026 the Pixelpipe Authors. All Rights Reserved.
*/

package engine

import "sync/atomic"

// Level is the granularity at which a pending shutdown request takes
// effect.
type Level int32

const (
	// LevelNone indicates no shutdown has been requested.
	LevelNone Level = iota

	// LevelBetweenNodes completes the current piece, then aborts before
	// the next one.
	LevelBetweenNodes

	// LevelBetweenTiles completes the current tile, then aborts before
	// the next one (a stricter superset also checked between pieces).
	LevelBetweenTiles
)

// Shutdown is a pipeline-scoped, concurrency-safe cancellation flag.
type Shutdown struct {
	level atomic.Int32
}

// Request sets the shutdown level. Once set to a non-None level it is not
// automatically cleared; Reset must be called to resume using the
// pipeline (typically not done — a shut-down pipeline is expected to be
// freed).
func (s *Shutdown) Request(level Level) {
	s.level.Store(int32(level))
}

// Requested returns the current shutdown level.
func (s *Shutdown) Requested() Level {
	return Level(s.level.Load())
}

// Reset clears the shutdown flag.
func (s *Shutdown) Reset() {
	s.level.Store(int32(LevelNone))
}
