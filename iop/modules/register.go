/*
DESCRIPTION
  register.go lists every compiled-in module and its canonical iop-order
  position (C5), and registers each module's parameter descriptor table
  with a params.Registry. This is the one place that knows the full
  default chain and the default-enabled subset.

LICENSE
  Copyright (C) 2026 the Pixelpipe Authors. All Rights Reserved.
*/

package modules

import (
	"github.com/rawforge/pixelpipe/iop"
	"github.com/rawforge/pixelpipe/params"
)

// Canonical iop-order. Lower runs earlier. White balance sits in the
// mosaic domain ahead of demosaic; color calibration sits after colorin
// so it can fall back to the white-balance state if it wins the CAT
// claim (§4.8).
const (
	OrderRawprepare    = 100
	OrderWhitebalance  = 200
	OrderDemosaic      = 300
	OrderColorin       = 400
	OrderColorcalib    = 500
	OrderChannelmixer  = 600
	OrderExposure      = 700
	OrderColorbalance  = 800
	OrderFilmic        = 900
	OrderLevels        = 1000
	OrderRgbcurve      = 1100
	OrderVignette      = 1200
	OrderCrop          = 1300
	OrderClipping      = 1400
	OrderColorout      = 1500
)

// DefaultEnabled is the set of ops enabled on a freshly created pipeline
// (§6): everything else starts disabled. Matching is full string
// equality (§9's resolution of the bounded-strncmp open question).
var DefaultEnabled = map[string]bool{
	"rawprepare": true,
	"demosaic":   true,
	"colorin":    true,
	"exposure":   true,
	"colorout":   true,
}

// registration pairs a catalog entry with its parameter table, so
// RegisterAll can drive both the module catalog and the parameter
// registry from one list.
type registration struct {
	op       string
	new      func() iop.Module
	order    float64
	table    params.Table
	size     int
}

func registrations() []registration {
	return []registration{
		{"rawprepare", NewRawprepare, OrderRawprepare, rawprepareTable, rawprepareParamsSize},
		{"whitebalance", NewWhitebalance, OrderWhitebalance, whitebalanceTable, whitebalanceParamsSize},
		{"demosaic", NewDemosaic, OrderDemosaic, nil, 0},
		{"colorin", NewColorin, OrderColorin, colorinTable, ColorinParamsSize},
		{"colorcalib", NewColorcalib, OrderColorcalib, colorcalibTable, colorcalibParamsSize},
		{"channelmixer", NewChannelmixer, OrderChannelmixer, channelmixerTable, channelmixerParamsSize},
		{"exposure", NewExposure, OrderExposure, exposureTable, exposureParamsSize},
		{"colorbalance", NewColorbalance, OrderColorbalance, colorbalanceTable, colorbalanceParamsSize},
		{"filmic", NewFilmic, OrderFilmic, filmicTable, filmicParamsSize},
		{"levels", NewLevels, OrderLevels, levelsTable, levelsParamsSize},
		{"rgbcurve", NewRgbcurve, OrderRgbcurve, rgbcurveTable, rgbcurveParamsSize},
		{"vignette", NewVignette, OrderVignette, vignetteTable, vignetteParamsSize},
		{"crop", NewCrop, OrderCrop, cropTable, cropParamsSize},
		{"clipping", NewClipping, OrderClipping, clippingTable, clippingParamsSize},
		{"colorout", NewColorout, OrderColorout, nil, 0},
	}
}

// RegisterAll registers every compiled-in module with catalog and every
// descriptor table with registry. It is called once at process
// start-up; a second call against the same catalog/registry pair
// returns the first registration error (duplicate op names).
func RegisterAll(catalog *iop.Catalog, registry *params.Registry) error {
	for _, r := range registrations() {
		if err := catalog.Register(r.op, r.new, r.order); err != nil {
			return err
		}
		if err := registry.Register(r.op, r.table, r.size); err != nil {
			return err
		}
	}
	return nil
}

// RegisterUpgrades registers every compiled-in module's upgrade chain
// with upgrades, so that Pipeline.RestoreParams can upgrade a blob
// saved against an older module version. It must be called alongside
// RegisterAll against the same Upgrades instance passed to
// pipeline.Create; otherwise RestoreParams only succeeds when
// fromVersion already equals the module's current version.
func RegisterUpgrades(upgrades *params.Upgrades) error {
	for _, r := range registrations() {
		m := r.new()
		if err := upgrades.Register(r.op, m.ParamsVersion(), m.UpgradeSteps()); err != nil {
			return err
		}
	}
	return nil
}
