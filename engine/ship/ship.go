// Package ship implements the Ship Systems Ledger: five decks, random
// hazard damage, and the repair economy with its cost modifiers.
package ship

import (
	"github.com/nathoo/arkfall/engine/ledger"
	"github.com/nathoo/arkfall/types"
)

// Decks is the fixed set of ship subsystems, indexed by DeckID.
type Decks = [types.DeckCount]types.Deck

// Base repair costs in salvage.
var defaultRepairCosts = [types.DeckCount]int{
	types.DeckBridge:      50,
	types.DeckLab:         40,
	types.DeckQuarters:    30,
	types.DeckCargo:       25,
	types.DeckEngineering: 60,
}

// Repair failure reasons.
const (
	ReasonUnknownDeck  = "unknown deck"
	ReasonOperational  = "deck already operational"
	ReasonInsufficient = "insufficient salvage"
)

// NewDecks returns all five decks operational at their default costs.
func NewDecks() Decks {
	var d Decks
	for id := types.DeckID(0); id < types.DeckCount; id++ {
		d[id] = types.Deck{ID: id, Status: types.DeckOperational, RepairCost: defaultRepairCosts[id]}
	}
	return d
}

// Parse resolves a deck name such as "engineering".
func Parse(name string) (types.DeckID, bool) {
	for id := types.DeckID(0); id < types.DeckCount; id++ {
		if id.String() == name {
			return id, true
		}
	}
	return 0, false
}

// Names returns the deck names in DeckID order.
func Names() []string {
	names := make([]string, 0, types.DeckCount)
	for id := types.DeckID(0); id < types.DeckCount; id++ {
		names = append(names, id.String())
	}
	return names
}

func valid(id types.DeckID) bool {
	return id >= 0 && id < types.DeckCount
}

// IsOperational reports whether the deck is operational.
func IsOperational(d *Decks, id types.DeckID) bool {
	return valid(id) && d[id].Status == types.DeckOperational
}

// Damaged returns the damaged decks in DeckID order.
func Damaged(d *Decks) []types.DeckID {
	var out []types.DeckID
	for _, deck := range d {
		if deck.Status == types.DeckDamaged {
			out = append(out, deck.ID)
		}
	}
	return out
}

// DamageRandomOperational damages a uniformly chosen operational deck.
// Returns false, and changes nothing, when every deck is already damaged.
func DamageRandomOperational(d *Decks, rng types.Rand) (types.DeckID, bool) {
	var candidates []types.DeckID
	for _, deck := range d {
		if deck.Status == types.DeckOperational {
			candidates = append(candidates, deck.ID)
		}
	}
	if len(candidates) == 0 {
		return 0, false
	}
	id := candidates[rng.Intn(len(candidates))]
	d[id].Status = types.DeckDamaged
	return id, true
}

// RepairCost returns the effective cost of repairing a deck. The engineer
// discount (x0.7) is applied and floored before the engineering-damage
// surcharge (x1.5) on the other decks.
func RepairCost(d *Decks, id types.DeckID, engineerAlive bool) int {
	if !valid(id) {
		return 0
	}
	cost := d[id].RepairCost
	if engineerAlive {
		cost = cost * 7 / 10
	}
	if id != types.DeckEngineering && d[types.DeckEngineering].Status == types.DeckDamaged {
		cost = cost * 3 / 2
	}
	return cost
}

// Repair pays the effective cost from salvage and marks the deck
// operational. All preconditions are checked before anything changes.
func Repair(d *Decks, r *types.Resources, id types.DeckID, engineerAlive bool) (int, string, bool) {
	if !valid(id) {
		return 0, ReasonUnknownDeck, false
	}
	if d[id].Status == types.DeckOperational {
		return 0, ReasonOperational, false
	}
	cost := RepairCost(d, id, engineerAlive)
	if !ledger.Spend(r, ledger.Salvage, cost) {
		return cost, ReasonInsufficient, false
	}
	d[id].Status = types.DeckOperational
	return cost, "", true
}

// CheapestDamagedBase returns the lowest base repair cost among damaged
// decks, or false if none are damaged.
func CheapestDamagedBase(d *Decks) (int, bool) {
	cheapest, found := 0, false
	for _, deck := range d {
		if deck.Status != types.DeckDamaged {
			continue
		}
		if !found || deck.RepairCost < cheapest {
			cheapest, found = deck.RepairCost, true
		}
	}
	return cheapest, found
}
