package crew

import (
	"fmt"

	"github.com/nathoo/arkfall/engine/ship"
	"github.com/nathoo/arkfall/types"
)

// negativeTraits maps each personality to the trait it takes on at stress 2.
var negativeTraits = map[types.Personality]types.Trait{
	types.PersonalityVolatile:  types.TraitReckless,
	types.PersonalityWithdrawn: types.TraitDespondent,
	types.PersonalityDefiant:   types.TraitInsubordinate,
	types.PersonalityFixated:   types.TraitParanoid,
}

// Report collects what a stress evaluation did.
type Report struct {
	Output []string
	Events []types.Event
	// CommanderBreakdown is set when the commander reached stress 3; the
	// caller turns it into a terminal signal.
	CommanderBreakdown *types.CrewMember
}

func (r *Report) say(format string, args ...any) {
	r.Output = append(r.Output, fmt.Sprintf(format, args...))
}

func (r *Report) emit(typ types.EventType, m types.CrewMember) {
	r.Events = append(r.Events, types.Event{Type: typ, Crew: &m})
}

// Evaluate runs the stress machine once over every living member.
//
// Below 2 the trait and breakdown latch are cleared. At 2 or more a member
// without a trait takes their personality's negative trait. At 3 the
// breakdown fires once, guarded by BreakdownFired.
func Evaluate(roster []types.CrewMember, decks *ship.Decks, rng types.Rand) Report {
	var rep Report
	for i := range roster {
		m := &roster[i]
		if !m.Alive() {
			continue
		}

		if m.Stress < TraitThreshold {
			if m.Trait != types.TraitNone {
				rep.say("%s shakes off the %s spell.", m.Name, m.Trait)
			}
			m.Trait = types.TraitNone
			m.BreakdownFired = false
			continue
		}

		if m.Trait == types.TraitNone && !m.IsCommander() {
			m.Trait = negativeTraits[m.Personality]
			rep.say("%s is becoming %s.", m.Name, m.Trait)
			rep.emit(types.EventTraitAssigned, *m)
		}

		if m.Stress >= BreakdownThreshold && !m.BreakdownFired {
			m.BreakdownFired = true
			breakdown(m, decks, rng, &rep)
		}
	}
	return rep
}

func breakdown(m *types.CrewMember, decks *ship.Decks, rng types.Rand, rep *Report) {
	if m.IsCommander() {
		snap := *m
		rep.CommanderBreakdown = &snap
		rep.say("%s stops giving orders and stares at the viewport.", m.Name)
		return
	}

	switch m.Personality {
	case types.PersonalityVolatile:
		if id, ok := ship.DamageRandomOperational(decks, rng); ok {
			rep.say("%s snaps and wrecks the %s deck.", m.Name, id)
		} else {
			rep.say("%s snaps, but there is nothing left to break.", m.Name)
		}
		m.Stress = TraitThreshold

	case types.PersonalityWithdrawn:
		injured := Injure(m)
		m.Trait = types.TraitCatatonic
		m.HealCounter = 0
		rep.say("%s goes silent and stops responding. CATATONIC.", m.Name)
		if injured {
			rep.emit(types.EventCrewInjured, *m)
		}

	case types.PersonalityDefiant:
		rep.say("%s is rallying the crew against the commander.", m.Name)
		rep.emit(types.EventMutiny, *m)

	case types.PersonalityFixated:
		m.Trait = types.TraitObsessed
		m.Stress = TraitThreshold
		rep.say("%s locks onto a single idea and will not let go. OBSESSED.", m.Name)
	}
	rep.emit(types.EventBreakdown, *m)
}

// PassiveHeal advances healing for every injured, non-catatonic member
// while quarters are operational. A damaged quarters deck freezes it.
func PassiveHeal(roster []types.CrewMember, quartersOperational bool) []string {
	if !quartersOperational {
		return nil
	}
	var out []string
	for i := range roster {
		m := &roster[i]
		if m.Status != types.CrewInjured || m.Trait == types.TraitCatatonic {
			continue
		}
		m.HealCounter++
		if m.HealCounter >= HealTurns {
			m.Status = types.CrewHealthy
			m.HealCounter = 0
			out = append(out, fmt.Sprintf("%s has recovered in quarters.", m.Name))
		}
	}
	return out
}
