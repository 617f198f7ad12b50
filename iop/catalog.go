/*
DESCRIPTION
  catalog.go implements the module registry and canonical ordering (C5): a
  process-scoped list of every compiled-in module by operation name, and
  the "v5.0 iop-order" style mapping from op name to canonical float
  position in the chain. The source's embedded singly-linked module
  so-list becomes a contiguous slice with op-name lookup via a map, per
  this port's design notes.

LICENSE
  Copyright (C) 2026 the Pixelpipe Authors. All Rights Reserved.
*/

package iop

import (
	"fmt"
	"math"
	"sort"
)

// Registration is one compiled-in module's catalog entry.
type Registration struct {
	OpName  string
	New     func() Module
	IopOrder float64
}

// Catalog is the process-scoped module registry and canonical ordering.
// It is built once at process init (via Register) and is read-only
// thereafter; it is safe for concurrent use by multiple pipelines.
type Catalog struct {
	byName map[string]Registration
	order  []string // op names sorted by IopOrder, ties by registration order.
}

// NewCatalog returns an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{byName: make(map[string]Registration)}
}

// Register adds a compiled-in module to the catalog. Modules registered
// with iopOrder == +Inf are present in the catalog (so New still works)
// but sort to the end of Names and are skipped by Build, matching §4.5's
// "modules absent from the ordering sort to positive infinity and are
// skipped".
func (c *Catalog) Register(opName string, ctor func() Module, iopOrder float64) error {
	if _, exists := c.byName[opName]; exists {
		return fmt.Errorf("iop: op %q already registered", opName)
	}
	c.byName[opName] = Registration{OpName: opName, New: ctor, IopOrder: iopOrder}
	c.order = append(c.order, opName)
	sort.SliceStable(c.order, func(i, j int) bool {
		return c.byName[c.order[i]].IopOrder < c.byName[c.order[j]].IopOrder
	})
	return nil
}

// Names returns every registered op name in canonical iop-order, modules
// with no declared finite order last.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Lookup returns op's registration, or ok == false if op is unknown to the
// catalog.
func (c *Catalog) Lookup(op string) (Registration, bool) {
	r, ok := c.byName[op]
	return r, ok
}

// New constructs a fresh Module instance for op.
func (c *Catalog) New(op string) (Module, error) {
	r, ok := c.byName[op]
	if !ok {
		return nil, fmt.Errorf("iop: unknown op %q", op)
	}
	return r.New(), nil
}

// Skipped reports whether op's canonical order is +Inf, meaning it is
// present in the catalog but excluded from default chain construction.
func (c *Catalog) Skipped(op string) bool {
	r, ok := c.byName[op]
	return !ok || math.IsInf(r.IopOrder, 1)
}
