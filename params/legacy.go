/*
DESCRIPTION
  legacy.go implements the per-module legacy-parameter-upgrade chain
  (§4.3): a parameter blob presented as (bytes, declared_version) is walked
  hop by hop to the module's current version. Each hop allocates a fresh
  buffer; the predecessor is simply dropped (Go's GC reclaims it, standing
  in for the source's explicit free). Failure at any hop discards the blob
  entirely and the module keeps its defaults.

LICENSE
  Copyright (C) 2026 the Pixelpipe Authors. All Rights Reserved.
*/

package params

import "fmt"

// UpgradeFunc upgrades a parameter blob from one version to the next. It
// must be pure (no side effects beyond its return value), monotone (it
// always moves exactly one version forward), and must not lose
// information present in its input.
type UpgradeFunc func(data []byte) ([]byte, error)

// UnsupportedParamVersion is returned when the upgrade chain for op cannot
// reach the current version from the declared one — either because from
// is newer than currently known, or because a hop is missing.
type UnsupportedParamVersion struct {
	Op       string
	From, To int
}

func (e *UnsupportedParamVersion) Error() string {
	return fmt.Sprintf("params: op %q: cannot upgrade parameters from version %d to %d", e.Op, e.From, e.To)
}

// legacy holds one op's upgrade chain: steps[v-1] upgrades from version v
// to v+1. current is the module's present parameter-struct version.
type legacy struct {
	steps   []UpgradeFunc // steps[v-1] upgrades v -> v+1, for v in [1, current).
	current int
}

// legacies is the process-scoped table of upgrade chains, separate from
// Registry's field tables since not every op needs one.
type legacies struct {
	ops map[string]legacy
}

// Upgrades is a process-scoped registry of per-op upgrade chains. It is
// built once at module registration and is read-only thereafter.
type Upgrades struct {
	inner legacies
}

// NewUpgrades returns an empty Upgrades registry.
func NewUpgrades() *Upgrades {
	return &Upgrades{inner: legacies{ops: make(map[string]legacy)}}
}

// Register declares op's current parameter version and its upgrade chain.
// steps must have length current-1: steps[i] upgrades from version i+1 to
// i+2.
func (u *Upgrades) Register(op string, current int, steps []UpgradeFunc) error {
	if current < 1 {
		return fmt.Errorf("params: op %q: current version must be >= 1", op)
	}
	if len(steps) != current-1 {
		return fmt.Errorf("params: op %q: expected %d upgrade steps for current version %d, got %d",
			op, current-1, current, len(steps))
	}
	u.inner.ops[op] = legacy{steps: steps, current: current}
	return nil
}

// Upgrade walks data from fromVersion to op's current version, one hop at
// a time. If fromVersion equals the current version, data is returned
// unchanged (the upgrade is idempotent on the current version, per §8).
// If op is unknown, or fromVersion is beyond the current version, or any
// hop is missing, Upgrade returns UnsupportedParamVersion and the caller
// must discard data and keep the module's defaults.
func (u *Upgrades) Upgrade(op string, data []byte, fromVersion int) ([]byte, error) {
	l, ok := u.inner.ops[op]
	if !ok {
		return nil, &UnsupportedParamVersion{Op: op, From: fromVersion, To: -1}
	}
	if fromVersion == l.current {
		return data, nil
	}
	if fromVersion < 1 || fromVersion > l.current {
		return nil, &UnsupportedParamVersion{Op: op, From: fromVersion, To: l.current}
	}
	cur := data
	for v := fromVersion; v < l.current; v++ {
		step := l.steps[v-1]
		if step == nil {
			return nil, &UnsupportedParamVersion{Op: op, From: fromVersion, To: l.current}
		}
		next, err := step(cur)
		if err != nil {
			return nil, &UnsupportedParamVersion{Op: op, From: fromVersion, To: l.current}
		}
		cur = next
	}
	return cur, nil
}

// CurrentVersion returns op's current parameter-struct version.
func (u *Upgrades) CurrentVersion(op string) (int, error) {
	l, ok := u.inner.ops[op]
	if !ok {
		return 0, &NotFound{Op: op}
	}
	return l.current, nil
}
