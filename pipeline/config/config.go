/*
DESCRIPTION
  config.go contains the render-time host configuration for a pipeline:
  worker parallelism, tile memory budget, cache capacity and logging
  verbosity. This is distinct from per-module user parameters, which flow
  through the params package — Config governs how the engine runs, not
  what any one module does to the pixels.

AUTHORS
  Pixelpipe Authors

LICENSE
  Copyright (C) 2026 the Pixelpipe Authors. All Rights Reserved.
*/

// Package config contains the host-configurable render settings for a
// pipeline.
package config

import "github.com/ausocean/utils/logging"

// Default settings.
const (
	defaultParallelism = 4
	defaultTileBudget  = 1 << 20 // 1 megapixel.
	defaultVerbosity   = logging.Error
)

// Config provides the render-time parameters relevant to a pipeline
// instance. A new Config must be passed to pipeline.Create; the zero
// value is invalid until Validate has applied defaults. Default values
// for these fields are defined as consts above.
type Config struct {
	// Parallelism is the maximum number of worker goroutines the engine's
	// tile scheduler may use. A piece's row loop is not split across
	// goroutines.
	Parallelism uint

	// TileBudget is the pixel-count threshold above which an
	// AllowTiling module is tiled rather than processed in one call.
	TileBudget uint

	// CacheLimit bounds the number of distinct (piece, ROI, params,
	// descriptor) entries the engine's result cache retains; the oldest
	// entries are evicted beyond this limit. A limit of 0 means
	// unbounded.
	CacheLimit uint

	// Logger holds an implementation of the Logger interface. This must
	// be set for the pipeline to work correctly.
	Logger logging.Logger

	// LogLevel is the pipeline logging verbosity level. Valid values are
	// defined by enums from the logging package: logging.Debug,
	// logging.Info, logging.Warning, logging.Error, logging.Fatal.
	LogLevel int8
}

// Validate checks the config fields and defaults settings if particular
// parameters have not been defined.
func (c *Config) Validate() error {
	if c.Parallelism == 0 {
		c.LogInvalidField("Parallelism", defaultParallelism)
		c.Parallelism = defaultParallelism
	}
	if c.TileBudget == 0 {
		c.LogInvalidField("TileBudget", defaultTileBudget)
		c.TileBudget = defaultTileBudget
	}
	if c.LogLevel == 0 {
		c.LogLevel = defaultVerbosity
	}
	return nil
}

// LogInvalidField logs that a config field was bad or unset and has been
// defaulted, in the same "name, value" shape the ambient logger expects
// throughout this module.
func (c *Config) LogInvalidField(name string, def interface{}) {
	if c.Logger == nil {
		return
	}
	c.Logger.Info(name+" bad or unset, defaulting", name, def)
}
