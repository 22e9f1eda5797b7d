// Package monitor evaluates the lose conditions after every mutation.
package monitor

import (
	"fmt"

	"github.com/nathoo/arkfall/engine/crew"
	"github.com/nathoo/arkfall/engine/ship"
	"github.com/nathoo/arkfall/types"
)

// BreachDecks is how many damaged decks put the hull at risk.
const BreachDecks = 3

// Evaluate returns the terminal signal the state warrants, if any. It does
// not mutate; the caller latches GameOver. Rules in priority order: an
// already-over run raises nothing, then crew loss, then hull breach.
func Evaluate(s *types.State) (types.GameOver, bool) {
	if s.Run.GameOver {
		return types.GameOver{}, false
	}
	if crew.LivingCount(s.Crew) == 0 {
		return types.GameOver{
			Kind:    types.GameOverCrewLoss,
			Title:   "Silent Ship",
			Message: "No one is left aboard. The ark drifts on without a crew.",
		}, true
	}
	damaged := ship.Damaged(&s.Decks)
	if len(damaged) >= BreachDecks {
		cheapest, _ := ship.CheapestDamagedBase(&s.Decks)
		if s.Resources.Salvage < cheapest {
			return types.GameOver{
				Kind:  types.GameOverHullBreach,
				Title: "Hull Breach",
				Message: fmt.Sprintf("%d decks are failing and %d salvage cannot patch even one. The hull gives way.",
					len(damaged), s.Resources.Salvage),
			}, true
		}
	}
	return types.GameOver{}, false
}
