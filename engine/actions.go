package engine

import (
	"fmt"
	"strings"

	"github.com/nathoo/arkfall/engine/crew"
	"github.com/nathoo/arkfall/engine/encounter"
	"github.com/nathoo/arkfall/engine/events"
	"github.com/nathoo/arkfall/engine/ledger"
	"github.com/nathoo/arkfall/engine/outcome"
	"github.com/nathoo/arkfall/types"
)

// Action costs in energy.
const (
	WarpCost = 20
	ScanCost = 5
	EVACost  = 10

	// EVA salvage yield is EVASalvageMin + [0, EVASalvageRange].
	EVASalvageMin   = 10
	EVASalvageRange = 20

	// Percent injury risk per point of location danger.
	EVARiskPerDanger = 10
)

// warpBarks are muttered by a random crew member after a jump.
var warpBarks = []string{
	"Another sector. Another hope.",
	"My stomach never gets used to that.",
	"Stars look the same out here. They never do.",
	"Let's hope this one has something worth finding.",
}

// actionCost doubles the base cost while anyone aboard is OBSESSED.
func (e *Engine) actionCost(base int) int {
	if crew.AnyTrait(e.State.Crew, types.TraitObsessed) {
		return base * 2
	}
	return base
}

// Warp jumps to the next sector.
func (e *Engine) Warp() types.Result {
	if res, over := e.blocked(); over {
		return res
	}
	res, ok := e.spend(ledger.Energy, e.actionCost(WarpCost))
	if !ok {
		return res
	}
	s := e.State
	s.Run.Sector++
	s.Run.Actions++
	s.Pending = nil
	res.Output = append(res.Output, fmt.Sprintf("The ark jumps to sector %d.", s.Run.Sector))
	e.rationTick(&res)
	e.warpBark()
	e.commit(&res)
	return res
}

func (e *Engine) warpBark() {
	i, ok := crew.PickRandom(e.State.Crew, e.RNG, func(m types.CrewMember) bool {
		return !m.IsCommander() && m.Trait != types.TraitCatatonic
	})
	if !ok {
		return
	}
	e.Outbox.Schedule(events.Deferred{
		Generation: e.State.Run.Generation,
		Delay:      e.opts.BarkDelay,
		Speaker:    e.State.Crew[i].Alias,
		Text:       warpBarks[e.RNG.Intn(len(warpBarks))],
	})
}

// Scan surveys a location and adds to colony knowledge.
func (e *Engine) Scan(loc types.Location) types.Result {
	if res, over := e.blocked(); over {
		return res
	}
	res, ok := e.spend(ledger.Energy, e.actionCost(ScanCost))
	if !ok {
		return res
	}
	e.State.Run.Knowledge++
	e.State.Run.Actions++
	res.Output = append(res.Output,
		fmt.Sprintf("Scan of %s (%s): danger %d, energy %d, salvage %d, rations %d.",
			loc.Name, loc.Category, loc.Danger, loc.EnergyLevel, loc.SalvageLevel, loc.RationLevel),
		"+1 colony knowledge",
	)
	if len(loc.Tags) > 0 {
		res.Output = append(res.Output, "Readings: "+strings.Join(loc.Tags, ", "))
	}
	e.commit(&res)
	return res
}

// EVA sends a team out to salvage a location. Dangerous locations may cost
// an injury to one random living member who is not sedated.
func (e *Engine) EVA(loc types.Location) types.Result {
	if res, over := e.blocked(); over {
		return res
	}
	res, ok := e.spend(ledger.Energy, EVACost)
	if !ok {
		return res
	}
	e.State.Run.Actions++
	gained := e.adjust(ledger.Salvage, EVASalvageMin+e.RNG.Intn(EVASalvageRange+1))
	res.Output = append(res.Output, fmt.Sprintf("The EVA team strips %s for %d salvage.", loc.Name, gained))

	if e.RNG.Roll(100) <= loc.Danger*EVARiskPerDanger {
		i, ok := crew.PickRandom(e.State.Crew, e.RNG, func(m types.CrewMember) bool {
			return !m.Tags.Has(types.TagSedated)
		})
		if ok {
			res.Output = append(res.Output, "Something goes wrong outside.")
			injure(&e.State.Crew[i], &res)
		}
	}
	e.commit(&res)
	return res
}

// Rest spends a ration tick letting the crew recover.
func (e *Engine) Rest() types.Result {
	if res, over := e.blocked(); over {
		return res
	}
	s := e.State
	s.Run.Actions++
	res := types.Result{OK: true, Output: []string{"The crew takes a shift off."}}
	for _, i := range crew.Living(s.Crew) {
		crew.AdjustStress(&s.Crew[i], -1)
	}
	e.rationTick(&res)
	e.commit(&res)
	return res
}

// Encounter draws an entry from the location's category table and presents
// it. Entries with choices stay pending until Choose is called.
func (e *Engine) Encounter(loc types.Location) types.Result {
	if res, over := e.blocked(); over {
		return res
	}
	s := e.State
	if s.Pending != nil {
		return fail(ReasonEncounterPending)
	}
	table, ok := e.Tables[loc.Category]
	if !ok || len(table.Entries) == 0 {
		return fail(ReasonTableUnavailable)
	}
	seen := s.Run.Seen[loc.Category]
	if seen == nil {
		seen = map[string]bool{}
		s.Run.Seen[loc.Category] = seen
	}
	sel, ok := encounter.Select(table.Entries, seen, e.RNG)
	if !ok {
		return fail(ReasonTableUnavailable)
	}

	res := types.Result{OK: true}
	if sel.Repeated {
		res.Output = append(res.Output, fmt.Sprintf("Every %s encounter has been logged before. History repeats.", loc.Category))
		res.Events = append(res.Events, types.Event{Type: types.EventEncounterRepeats})
	}

	entry := sel.Entry
	name := entry.Title
	if len(entry.Names) > 0 {
		name = encounter.UniqueName(encounter.PoolNamer(entry.Names, e.RNG), s.Run.SeenNames)
	}
	res.Output = append(res.Output, fmt.Sprintf("== %s ==", name))
	if entry.Context != "" {
		res.Output = append(res.Output, entry.Context)
	}
	res.Output = append(res.Output, entry.Dialogue...)

	if len(entry.Choices) > 0 {
		s.Pending = &types.PendingEncounter{Category: loc.Category, Entry: entry, Name: name}
		for i, c := range entry.Choices {
			res.Output = append(res.Output, fmt.Sprintf("  %d. %s", i+1, c.Label))
		}
	}
	e.commit(&res)
	return res
}

// Choose applies choice index (0-based) of the pending encounter.
func (e *Engine) Choose(index int) types.Result {
	if res, over := e.blocked(); over {
		return res
	}
	p := e.State.Pending
	if p == nil {
		return fail(ReasonNoEncounter)
	}
	if index < 0 || index >= len(p.Entry.Choices) {
		return fail(ReasonInvalidChoice)
	}
	choice := p.Entry.Choices[index]
	e.State.Pending = nil

	var effects types.Result
	ctx := &effectContext{e: e, res: &effects}
	res := types.Result{OK: true, Output: []string{"> " + choice.Label}}
	if choice.Apply != nil {
		if text := choice.Apply(ctx); text != "" {
			res.Output = append(res.Output, text)
		}
	}
	res.Output = append(res.Output, effects.Output...)
	res.Events = append(res.Events, effects.Events...)
	e.commit(&res)
	return res
}

// AttemptColony ends the run with a landing. success is decided by the
// planet-suitability collaborator.
func (e *Engine) AttemptColony(success bool) (outcome.Report, types.Result) {
	if res, over := e.blocked(); over {
		return outcome.Report{}, res
	}
	report := outcome.Score(outcome.FromState(e.State, success))
	res := types.Result{OK: true}
	if success {
		res.Output = append(res.Output, "The ark settles onto the surface. The colony begins.")
	} else {
		res.Output = append(res.Output, "The landing fails. The planet does not want us.")
	}
	res.Output = append(res.Output, report.Lines()...)

	over := types.GameOver{
		Kind:    types.GameOverColonyEstablished,
		Title:   "Colony Established",
		Message: fmt.Sprintf("Rating %s.", report.Rating),
	}
	if !success {
		over.Kind = types.GameOverColonyFailed
		over.Title = "Colony Failed"
	}
	e.end(&res, over)
	e.commit(&res)
	return report, res
}
