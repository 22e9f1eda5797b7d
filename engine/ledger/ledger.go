// Package ledger implements the bounded resource counters. Every mutation
// path clamps into [0, cap]; callers run the post-mutation hook.
package ledger

import "github.com/nathoo/arkfall/types"

// Kind names a resource counter.
type Kind string

const (
	Energy  Kind = "energy"
	Salvage Kind = "salvage"
	Rations Kind = "rations"
)

// Starting values for a fresh run.
const (
	StartEnergy  = 100
	StartSalvage = 60
	StartRations = 20
)

// New returns the ledger for a fresh run with the given caps.
// Non-positive caps fall back to the defaults.
func New(maxSalvage, maxRations int) types.Resources {
	if maxSalvage <= 0 {
		maxSalvage = types.DefaultMaxSalvage
	}
	if maxRations <= 0 {
		maxRations = types.DefaultMaxRations
	}
	return types.Resources{
		Energy:     StartEnergy,
		Salvage:    clamp(StartSalvage, 0, maxSalvage),
		Rations:    clamp(StartRations, 0, maxRations),
		MaxSalvage: maxSalvage,
		MaxRations: maxRations,
	}
}

// Get returns the current value of a counter.
func Get(r *types.Resources, kind Kind) int {
	switch kind {
	case Energy:
		return r.Energy
	case Salvage:
		return r.Salvage
	case Rations:
		return r.Rations
	default:
		return 0
	}
}

// Cap returns the upper bound of a counter.
func Cap(r *types.Resources, kind Kind) int {
	switch kind {
	case Energy:
		return types.MaxEnergy
	case Salvage:
		return r.MaxSalvage
	case Rations:
		return r.MaxRations
	default:
		return 0
	}
}

// Spend deducts amount iff the counter covers it. On failure the ledger
// is left unchanged. Negative amounts are rejected.
func Spend(r *types.Resources, kind Kind, amount int) bool {
	if amount < 0 {
		return false
	}
	if Get(r, kind) < amount {
		return false
	}
	set(r, kind, Get(r, kind)-amount)
	return true
}

// Adjust adds delta (which may be negative) and clamps the result into
// [0, cap]. Returns the change actually applied.
func Adjust(r *types.Resources, kind Kind, delta int) int {
	before := Get(r, kind)
	set(r, kind, clamp(before+delta, 0, Cap(r, kind)))
	return Get(r, kind) - before
}

// SetCap changes the cap of salvage or rations, clamping the current value
// down if needed. Energy's cap is fixed.
func SetCap(r *types.Resources, kind Kind, cap int) bool {
	if cap < 0 {
		return false
	}
	switch kind {
	case Salvage:
		r.MaxSalvage = cap
	case Rations:
		r.MaxRations = cap
	default:
		return false
	}
	set(r, kind, clamp(Get(r, kind), 0, cap))
	return true
}

// Valid reports whether every counter lies within its bounds.
func Valid(r *types.Resources) bool {
	for _, k := range []Kind{Energy, Salvage, Rations} {
		v := Get(r, k)
		if v < 0 || v > Cap(r, k) {
			return false
		}
	}
	return true
}

func set(r *types.Resources, kind Kind, v int) {
	switch kind {
	case Energy:
		r.Energy = v
	case Salvage:
		r.Salvage = v
	case Rations:
		r.Rations = v
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
