// Package starvation implements the staged consequences of running out of
// rations: warnings, rising stress, forced panic, and finally a death.
package starvation

import (
	"fmt"

	"github.com/nathoo/arkfall/engine/crew"
	"github.com/nathoo/arkfall/engine/ledger"
	"github.com/nathoo/arkfall/types"
)

// Ration thresholds.
const (
	WarnRations     = 5
	LowRationsMax   = 4
	LowRationsMin   = 3
	ShortRationsMax = 2
	ShortRationsMin = 1
)

// Zero-ration ladder steps.
const (
	stepWarning = 1
	stepPanic   = 2
	stepDeath   = 3
)

// Report collects what a ration tick did.
type Report struct {
	Output []string
	Events []types.Event
}

func (r *Report) say(format string, args ...any) {
	r.Output = append(r.Output, fmt.Sprintf(format, args...))
}

// Tick consumes one ration (floored at 0) and applies the ladder. counter
// is the persistent count of consecutive zero-ration ticks; it is reset to
// 0 after a death.
func Tick(res *types.Resources, roster []types.CrewMember, counter *int, rng types.Rand) Report {
	var rep Report
	ledger.Adjust(res, ledger.Rations, -1)

	switch r := res.Rations; {
	case r == WarnRations:
		rep.say("Rations are running low: %d left.", r)
	case r >= LowRationsMin && r <= LowRationsMax:
		rep.say("Rations critically low: %d left. The crew is counting every bite.", r)
	case r >= ShortRationsMin && r <= ShortRationsMax:
		rep.say("Only %d rations left. Hunger is wearing on everyone.", r)
		stressAll(roster, 1)
	case r == 0:
		*counter++
		zeroRations(roster, counter, rng, &rep)
	}
	return rep
}

func zeroRations(roster []types.CrewMember, counter *int, rng types.Rand, rep *Report) {
	switch {
	case *counter == stepWarning:
		rep.say("The last ration is gone. The crew is starving.")
		stressAll(roster, 1)
	case *counter == stepPanic:
		rep.say("Starvation panic spreads through the ship.")
		for _, i := range crew.Living(roster) {
			crew.SetStress(&roster[i], types.MaxStress)
		}
	case *counter >= stepDeath:
		idx, ok := Victim(roster, rng)
		*counter = 0
		if !ok {
			return
		}
		m := &roster[idx]
		crew.Kill(m)
		rep.say("%s has starved to death.", m.Name)
		snap := *m
		rep.Events = append(rep.Events, types.Event{Type: types.EventCrewDied, Crew: &snap})
	}
}

// Victim picks who starves: uniformly among living members already at
// maximum stress, otherwise uniformly among all living members.
func Victim(roster []types.CrewMember, rng types.Rand) (int, bool) {
	if idx, ok := crew.PickRandom(roster, rng, func(m types.CrewMember) bool {
		return m.Stress >= types.MaxStress
	}); ok {
		return idx, true
	}
	return crew.PickRandom(roster, rng, nil)
}

// Replenished resets the zero-ration counter when rations are above zero.
func Replenished(res *types.Resources, counter *int) {
	if res.Rations > 0 {
		*counter = 0
	}
}

func stressAll(roster []types.CrewMember, delta int) {
	for _, i := range crew.Living(roster) {
		crew.AdjustStress(&roster[i], delta)
	}
}
