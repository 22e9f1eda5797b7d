package engine

import (
	"strings"
	"testing"

	"github.com/nathoo/arkfall/engine/crew"
	"github.com/nathoo/arkfall/engine/ledger"
	"github.com/nathoo/arkfall/engine/outcome"
	"github.com/nathoo/arkfall/types"
)

// testTables builds two small content tables: a derelict table with a
// single choice encounter and a station table of narrative-only entries.
func testTables() map[types.Category]types.EncounterTable {
	return map[types.Category]types.EncounterTable{
		types.CategoryDerelict: {
			Category: types.CategoryDerelict,
			Entries: []types.EncounterEntry{
				{
					ID: "hulk", Weight: 1, Title: "Drifting Hulk",
					Context: "A gutted freighter tumbles end over end.",
					Choices: []types.Choice{
						{Label: "Strip it", Apply: func(ctx types.EffectContext) string {
							ctx.AdjustSalvage(25)
							return "You strip the hulk for parts."
						}},
						{Label: "Leave it", Apply: func(ctx types.EffectContext) string {
							return ""
						}},
					},
				},
			},
		},
		types.CategoryStation: {
			Category: types.CategoryStation,
			Entries: []types.EncounterEntry{
				{ID: "relay", Weight: 1, Title: "Silent Relay"},
				{ID: "dock", Weight: 1, Title: "Empty Dock"},
			},
		},
	}
}

func newTestEngine() *Engine {
	return New(Options{Seed: 42, Tables: testTables()})
}

func member(e *Engine, id string) *types.CrewMember {
	return &e.State.Crew[crew.Find(e.State.Crew, id)]
}

func hasEvent(res types.Result, typ types.EventType) bool {
	for _, ev := range res.Events {
		if ev.Type == typ {
			return true
		}
	}
	return false
}

func gameOverKind(res types.Result) types.GameOverKind {
	for _, ev := range res.Events {
		if ev.Type == types.EventGameOver && ev.GameOver != nil {
			return ev.GameOver.Kind
		}
	}
	return ""
}

func outputContains(res types.Result, substr string) bool {
	for _, line := range res.Output {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

func TestNew(t *testing.T) {
	e := newTestEngine()
	s := e.State

	if s.Resources.Energy != ledger.StartEnergy || s.Resources.Salvage != ledger.StartSalvage || s.Resources.Rations != ledger.StartRations {
		t.Errorf("unexpected starting resources: %+v", s.Resources)
	}
	if s.Run.Sector != 1 {
		t.Errorf("expected sector 1, got %d", s.Run.Sector)
	}
	if s.Run.Generation != 1 {
		t.Errorf("expected generation 1, got %d", s.Run.Generation)
	}
	if len(s.Crew) != 5 {
		t.Errorf("expected 5 crew, got %d", len(s.Crew))
	}
	for _, c := range types.Categories {
		if s.Run.Seen[c] == nil {
			t.Errorf("seen set for %s not initialised", c)
		}
	}
}

func TestSpendEnergy_Insufficient(t *testing.T) {
	e := newTestEngine()

	res := e.SpendEnergy(150)
	if res.OK {
		t.Fatal("expected failure")
	}
	if res.Reason != "insufficient energy" {
		t.Errorf("unexpected reason %q", res.Reason)
	}
	if e.State.Resources.Energy != 100 {
		t.Errorf("energy should be unchanged, got %d", e.State.Resources.Energy)
	}
	if !hasEvent(res, types.EventInsufficient) {
		t.Error("expected insufficient_resource event")
	}
	if hasEvent(res, types.EventStateChanged) {
		t.Error("failed command should not signal state_changed")
	}
}

func TestSpendEnergy_Success(t *testing.T) {
	e := newTestEngine()

	res := e.SpendEnergy(30)
	if !res.OK {
		t.Fatalf("expected success: %s", res.Reason)
	}
	if e.State.Resources.Energy != 70 {
		t.Errorf("expected 70 energy, got %d", e.State.Resources.Energy)
	}
	if !hasEvent(res, types.EventStateChanged) {
		t.Error("expected state_changed event")
	}
}

func TestResourceBounds(t *testing.T) {
	e := newTestEngine()

	steps := []func() types.Result{
		func() types.Result { return e.GainEnergy(500) },
		func() types.Result { return e.GainSalvage(1000) },
		func() types.Result { return e.GainRations(100) },
		func() types.Result { return e.SpendEnergy(100) },
		func() types.Result { return e.SpendEnergy(1) },
		func() types.Result { return e.SpendSalvage(299) },
		func() types.Result { return e.SpendSalvage(5) },
		func() types.Result { return e.GainEnergy(-5) },
	}
	for i, step := range steps {
		step()
		if !ledger.Valid(&e.State.Resources) {
			t.Fatalf("step %d left resources out of bounds: %+v", i, e.State.Resources)
		}
	}

	r := e.State.Resources
	if r.Energy != 0 || r.Salvage != 1 || r.Rations != types.DefaultMaxRations {
		t.Errorf("unexpected final resources: %+v", r)
	}
}

func TestGainRations_ResetsStarvation(t *testing.T) {
	e := newTestEngine()
	e.State.Resources.Rations = 0
	e.State.Run.Starvation = 2

	e.GainRations(3)
	if e.State.Run.Starvation != 0 {
		t.Errorf("starvation counter should reset, got %d", e.State.Run.Starvation)
	}
}

func TestSetSalvageCap(t *testing.T) {
	e := newTestEngine()

	if res := e.SetSalvageCap(500); !res.OK {
		t.Fatalf("expected success: %s", res.Reason)
	}
	e.GainSalvage(1000)
	if e.State.Resources.Salvage != 500 {
		t.Errorf("expected salvage clamped to new cap 500, got %d", e.State.Resources.Salvage)
	}
}

func TestInstallUpgrade(t *testing.T) {
	e := newTestEngine()

	if res := e.InstallUpgrade("hydroponics"); !res.OK {
		t.Fatalf("expected success: %s", res.Reason)
	}
	if res := e.InstallUpgrade("hydroponics"); res.OK {
		t.Error("duplicate upgrade should fail")
	}
	if len(e.State.Run.Upgrades) != 1 {
		t.Errorf("expected tech level 1, got %d", len(e.State.Run.Upgrades))
	}
}

func TestRepair(t *testing.T) {
	e := newTestEngine()
	e.State.Decks[types.DeckLab].Status = types.DeckDamaged

	if got := e.RepairCost(types.DeckLab); got != 28 {
		t.Errorf("expected engineer-discounted cost 28, got %d", got)
	}
	res := e.Repair(types.DeckLab)
	if !res.OK {
		t.Fatalf("expected success: %s", res.Reason)
	}
	if e.State.Resources.Salvage != 32 {
		t.Errorf("expected 32 salvage, got %d", e.State.Resources.Salvage)
	}

	res = e.Repair(types.DeckLab)
	if res.OK || res.Reason != "deck already operational" {
		t.Errorf("expected already-operational failure, got %+v", res)
	}
}

func TestRepair_Insufficient(t *testing.T) {
	e := newTestEngine()
	e.State.Decks[types.DeckEngineering].Status = types.DeckDamaged
	e.State.Resources.Salvage = 10

	res := e.Repair(types.DeckEngineering)
	if res.OK {
		t.Fatal("expected failure")
	}
	if res.Reason != "insufficient salvage" {
		t.Errorf("unexpected reason %q", res.Reason)
	}
	if e.State.Decks[types.DeckEngineering].Status != types.DeckDamaged {
		t.Error("deck should stay damaged")
	}
	if e.State.Resources.Salvage != 10 {
		t.Errorf("salvage should be unchanged, got %d", e.State.Resources.Salvage)
	}
}

func TestHazard(t *testing.T) {
	e := newTestEngine()

	if res := e.Hazard(); !res.OK {
		t.Fatalf("expected success: %s", res.Reason)
	}
	damaged := 0
	for _, d := range e.State.Decks {
		if d.Status == types.DeckDamaged {
			damaged++
		}
	}
	if damaged != 1 {
		t.Errorf("expected one damaged deck, got %d", damaged)
	}
}

func TestHullBreach(t *testing.T) {
	e := newTestEngine()
	e.State.Decks[types.DeckQuarters].Status = types.DeckDamaged
	e.State.Decks[types.DeckLab].Status = types.DeckDamaged
	e.State.Decks[types.DeckEngineering].Status = types.DeckDamaged
	e.State.Resources.Salvage = 25

	res := e.SpendEnergy(1)
	if got := gameOverKind(res); got != types.GameOverHullBreach {
		t.Fatalf("expected HULL_BREACH, got %q", got)
	}
	if !e.State.Run.GameOver {
		t.Error("game over should be latched")
	}
}

func TestGameOver_ShortCircuits(t *testing.T) {
	e := newTestEngine()
	e.State.Run.GameOver = true

	commands := map[string]func() types.Result{
		"spend":  func() types.Result { return e.SpendEnergy(1) },
		"gain":   func() types.Result { return e.GainSalvage(1) },
		"warp":   e.Warp,
		"rest":   e.Rest,
		"hazard": e.Hazard,
		"ration": e.ConsumeRations,
		"stress": func() types.Result { return e.AdjustStress("reyes", 1) },
	}
	for name, cmd := range commands {
		res := cmd()
		if res.OK || res.Reason != ReasonGameOver {
			t.Errorf("%s: expected game over failure, got %+v", name, res)
		}
	}
	if e.State.Resources.Energy != 100 || e.State.Run.Sector != 1 {
		t.Error("no command should mutate after game over")
	}
}

func TestReset_AfterGameOver(t *testing.T) {
	e := newTestEngine()
	e.State.Run.GameOver = true
	e.State.Resources.Energy = 3

	res := e.Reset()
	if !res.OK {
		t.Fatalf("reset should succeed: %s", res.Reason)
	}
	if e.State.Run.GameOver {
		t.Error("reset should clear game over")
	}
	if e.State.Resources.Energy != 100 {
		t.Errorf("reset should restore energy, got %d", e.State.Resources.Energy)
	}
	if e.Generation() != 2 {
		t.Errorf("expected generation 2, got %d", e.Generation())
	}
	if len(e.Tables) != 2 {
		t.Error("reset should keep content tables")
	}
}

func TestDeliver_GenerationGuard(t *testing.T) {
	e := newTestEngine()

	e.SetStress("reyes", 2)
	if member(e, "reyes").Trait != types.TraitReckless {
		t.Fatalf("expected RECKLESS, got %s", member(e, "reyes").Trait)
	}
	items := e.Outbox.Drain()
	if len(items) == 0 {
		t.Fatal("expected a deferred bark")
	}
	if text, ok := e.Deliver(items[0]); !ok || !strings.Contains(text, "Wrench") {
		t.Errorf("expected bark from Wrench, got %q (%v)", text, ok)
	}

	e.Reset()
	if _, ok := e.Deliver(items[0]); ok {
		t.Error("bark from a previous run should not be delivered")
	}
}

func TestStress_TraitAndBreakdowns(t *testing.T) {
	e := newTestEngine()

	res := e.SetStress("brandt", 3)
	if !hasEvent(res, types.EventMutiny) {
		t.Error("expected mutiny signal")
	}
	if !hasEvent(res, types.EventTraitAssigned) {
		t.Error("expected trait_assigned signal")
	}
	if e.State.Run.GameOver {
		t.Error("mutiny is resolved externally and should not end the run")
	}

	res = e.AdjustStress("okafor", 3)
	if got := gameOverKind(res); got != types.GameOverCommanderBreakdown {
		t.Fatalf("expected COMMANDER_BREAKDOWN, got %q", got)
	}
}

func TestAdjustStress_UnknownCrew(t *testing.T) {
	e := newTestEngine()

	if res := e.AdjustStress("nobody", 1); res.OK || res.Reason != ReasonUnknownCrew {
		t.Errorf("expected unknown crew failure, got %+v", res)
	}
	e.Kill("voss")
	if res := e.AdjustStress("voss", 1); res.OK || res.Reason != ReasonCrewDead {
		t.Errorf("expected dead crew failure, got %+v", res)
	}
}

func TestInjureAndKill(t *testing.T) {
	e := newTestEngine()

	res := e.Injure("sato")
	if !hasEvent(res, types.EventCrewInjured) {
		t.Error("expected crew_injured signal")
	}
	if member(e, "sato").Status != types.CrewInjured {
		t.Error("sato should be injured")
	}

	res = e.Kill("sato")
	if !hasEvent(res, types.EventCrewDied) {
		t.Error("expected crew_died signal")
	}
	if member(e, "sato").Alive() {
		t.Error("sato should be dead")
	}
}

func TestKillAll_CrewLoss(t *testing.T) {
	e := newTestEngine()

	var res types.Result
	for _, id := range []string{"okafor", "reyes", "sato", "brandt", "voss"} {
		res = e.Kill(id)
	}
	if got := gameOverKind(res); got != types.GameOverCrewLoss {
		t.Fatalf("expected CREW_LOSS, got %q", got)
	}
}

func TestRevive(t *testing.T) {
	e := newTestEngine()

	if res := e.Revive("brandt", types.TagHiveMind); res.OK || res.Reason != ReasonNoDead {
		t.Fatalf("expected no dead crew failure, got %+v", res)
	}

	e.Kill("brandt")
	if res := e.Revive("okafor", types.TagHiveMind); res.OK || res.Reason != ReasonNotDead {
		t.Errorf("expected not dead failure, got %+v", res)
	}

	if res := e.Revive("brandt", types.TagHiveMind); !res.OK {
		t.Fatalf("expected success: %s", res.Reason)
	}
	m := member(e, "brandt")
	if !m.Alive() || m.Status != types.CrewHealthy {
		t.Error("brandt should be back and healthy")
	}
	if !m.Tags.Has(types.TagHiveMind) {
		t.Error("revived member should carry the tag")
	}
}

func TestStarvation_PanicBreaksCommander(t *testing.T) {
	e := newTestEngine()
	e.State.Resources.Rations = 1

	res := e.ConsumeRations()
	if e.State.Run.Starvation != 1 {
		t.Fatalf("expected counter 1, got %d", e.State.Run.Starvation)
	}
	if member(e, "okafor").Stress != 1 {
		t.Errorf("expected stress 1, got %d", member(e, "okafor").Stress)
	}
	if e.State.Run.GameOver {
		t.Fatal("first zero-ration tick should not end the run")
	}

	res = e.ConsumeRations()
	if got := gameOverKind(res); got != types.GameOverCommanderBreakdown {
		t.Fatalf("expected panic to break the commander, got %q", got)
	}
}

func TestStarvation_Death(t *testing.T) {
	e := newTestEngine()
	e.Kill("okafor")
	e.State.Resources.Rations = 1

	e.ConsumeRations()
	e.ConsumeRations()
	for _, i := range crew.Living(e.State.Crew) {
		if e.State.Crew[i].Personality == types.PersonalityWithdrawn && e.State.Crew[i].Stress != types.MaxStress {
			t.Errorf("withdrawn member should stay at max stress after panic")
		}
	}

	res := e.ConsumeRations()
	if !hasEvent(res, types.EventCrewDied) {
		t.Fatal("expected a starvation death")
	}
	if e.State.Run.Starvation != 0 {
		t.Errorf("counter should reset after death, got %d", e.State.Run.Starvation)
	}
	if got := crew.LivingCount(e.State.Crew); got != 3 {
		t.Errorf("expected 3 living, got %d", got)
	}
	if e.State.Run.GameOver {
		t.Error("run should continue")
	}
}

func TestWarp(t *testing.T) {
	e := newTestEngine()
	e.State.Pending = &types.PendingEncounter{Name: "stale"}

	res := e.Warp()
	if !res.OK {
		t.Fatalf("expected success: %s", res.Reason)
	}
	s := e.State
	if s.Resources.Energy != 80 {
		t.Errorf("expected 80 energy, got %d", s.Resources.Energy)
	}
	if s.Run.Sector != 2 {
		t.Errorf("expected sector 2, got %d", s.Run.Sector)
	}
	if s.Resources.Rations != 19 {
		t.Errorf("expected 19 rations, got %d", s.Resources.Rations)
	}
	if s.Pending != nil {
		t.Error("warp should clear the pending encounter")
	}
	if s.Run.Actions != 1 {
		t.Errorf("expected 1 action, got %d", s.Run.Actions)
	}
}

func TestObsessionDoublesCosts(t *testing.T) {
	e := newTestEngine()
	voss := member(e, "voss")
	voss.Stress = 2
	voss.Trait = types.TraitObsessed

	e.Warp()
	if e.State.Resources.Energy != 60 {
		t.Errorf("expected obsessed warp to cost 40, energy %d", e.State.Resources.Energy)
	}
	e.Scan(types.Location{Name: "Kepler b", Category: types.CategoryColony})
	if e.State.Resources.Energy != 50 {
		t.Errorf("expected obsessed scan to cost 10, energy %d", e.State.Resources.Energy)
	}
	if e.State.Run.Knowledge != 1 {
		t.Errorf("expected 1 knowledge, got %d", e.State.Run.Knowledge)
	}
}

func TestWarp_Insufficient(t *testing.T) {
	e := newTestEngine()
	e.State.Resources.Energy = 10

	res := e.Warp()
	if res.OK {
		t.Fatal("expected failure")
	}
	if e.State.Run.Sector != 1 || e.State.Run.Actions != 0 {
		t.Error("failed warp should not mutate")
	}
}

func TestEVA_Safe(t *testing.T) {
	e := newTestEngine()

	res := e.EVA(types.Location{Name: "wreck", Danger: 0})
	if !res.OK {
		t.Fatalf("expected success: %s", res.Reason)
	}
	s := e.State
	if s.Resources.Energy != 90 {
		t.Errorf("expected 90 energy, got %d", s.Resources.Energy)
	}
	gained := s.Resources.Salvage - ledger.StartSalvage
	if gained < EVASalvageMin || gained > EVASalvageMin+EVASalvageRange {
		t.Errorf("salvage gain %d out of range", gained)
	}
	if hasEvent(res, types.EventCrewInjured) {
		t.Error("danger 0 should never injure")
	}
}

func TestEVA_SkipsSedated(t *testing.T) {
	e := newTestEngine()
	for i := range e.State.Crew {
		if e.State.Crew[i].ID != "sato" {
			e.State.Crew[i].Tags = e.State.Crew[i].Tags.With(types.TagSedated)
		}
	}

	res := e.EVA(types.Location{Name: "reactor", Danger: 10})
	if !hasEvent(res, types.EventCrewInjured) {
		t.Fatal("danger 10 should always injure")
	}
	if member(e, "sato").Status != types.CrewInjured {
		t.Error("the only unsedated member should be the casualty")
	}
}

func TestRest(t *testing.T) {
	e := newTestEngine()
	member(e, "reyes").Stress = 1

	e.Rest()
	if member(e, "reyes").Stress != 0 {
		t.Errorf("expected stress 0, got %d", member(e, "reyes").Stress)
	}
	if e.State.Resources.Rations != 19 {
		t.Errorf("expected 19 rations, got %d", e.State.Resources.Rations)
	}
}

func TestRest_QuartersDamagedFreezesHealing(t *testing.T) {
	e := newTestEngine()
	e.State.Resources.Salvage = 200
	e.Injure("okafor")
	e.State.Decks[types.DeckQuarters].Status = types.DeckDamaged

	for i := 0; i < crew.HealTurns+1; i++ {
		e.Rest()
	}
	m := member(e, "okafor")
	if m.Status != types.CrewInjured || m.HealCounter != 0 {
		t.Fatalf("healing should be frozen: status %s, counter %d", m.Status, m.HealCounter)
	}

	if res := e.Repair(types.DeckQuarters); !res.OK {
		t.Fatalf("repair failed: %s", res.Reason)
	}
	for i := 0; i < crew.HealTurns-1; i++ {
		e.Rest()
	}
	if m.Status != types.CrewInjured {
		t.Fatalf("recovered too early after %d ticks", crew.HealTurns-1)
	}
	res := e.Rest()
	if m.Status != types.CrewHealthy {
		t.Errorf("expected recovery after %d ticks in working quarters", crew.HealTurns)
	}
	if !outputContains(res, "recovered in quarters") {
		t.Errorf("expected recovery narration, got %v", res.Output)
	}
}

func TestEncounter_Choose(t *testing.T) {
	e := newTestEngine()
	loc := types.Location{Name: "wreck", Category: types.CategoryDerelict}

	res := e.Encounter(loc)
	if !res.OK {
		t.Fatalf("expected success: %s", res.Reason)
	}
	if !outputContains(res, "Drifting Hulk") || !outputContains(res, "1. Strip it") {
		t.Errorf("expected encounter presentation, got %v", res.Output)
	}
	if e.State.Pending == nil {
		t.Fatal("expected a pending encounter")
	}
	if res := e.Encounter(loc); res.OK {
		t.Error("second encounter should wait for a choice")
	}

	if res := e.Choose(5); res.OK || res.Reason != ReasonInvalidChoice {
		t.Errorf("expected invalid choice, got %+v", res)
	}

	res = e.Choose(0)
	if !res.OK {
		t.Fatalf("expected success: %s", res.Reason)
	}
	if e.State.Resources.Salvage != 85 {
		t.Errorf("expected 85 salvage, got %d", e.State.Resources.Salvage)
	}
	if !outputContains(res, "strip the hulk") {
		t.Errorf("expected choice narration, got %v", res.Output)
	}
	if e.State.Pending != nil {
		t.Error("pending encounter should be cleared")
	}
	if res := e.Choose(0); res.OK || res.Reason != ReasonNoEncounter {
		t.Errorf("expected no encounter failure, got %+v", res)
	}
}

func TestEncounter_NoRepeatThenFallback(t *testing.T) {
	e := newTestEngine()
	loc := types.Location{Name: "hub", Category: types.CategoryStation}

	first := e.Encounter(loc)
	second := e.Encounter(loc)
	if hasEvent(first, types.EventEncounterRepeats) || hasEvent(second, types.EventEncounterRepeats) {
		t.Fatal("first two draws should be fresh")
	}
	if len(e.State.Run.Seen[types.CategoryStation]) != 2 {
		t.Fatalf("expected two distinct entries seen, got %v", e.State.Run.Seen[types.CategoryStation])
	}

	third := e.Encounter(loc)
	if !third.OK {
		t.Fatalf("fallback draw should succeed: %s", third.Reason)
	}
	if !hasEvent(third, types.EventEncounterRepeats) {
		t.Error("expected encounter_repeats signal")
	}
}

func TestEncounter_TableUnavailable(t *testing.T) {
	e := newTestEngine()

	res := e.Encounter(types.Location{Category: types.CategoryAnomaly})
	if res.OK || res.Reason != ReasonTableUnavailable {
		t.Errorf("expected unavailable failure, got %+v", res)
	}
}

func TestEffectContext(t *testing.T) {
	e := newTestEngine()
	e.Tables[types.CategoryAnomaly] = types.EncounterTable{
		Category: types.CategoryAnomaly,
		Entries: []types.EncounterEntry{{
			ID: "glow", Weight: 1, Title: "The Glow",
			Choices: []types.Choice{{Label: "Touch it", Apply: func(ctx types.EffectContext) string {
				ctx.AdjustStress(TargetAll, 1)
				ctx.TagCrew("voss", types.TagMachineLink)
				ctx.AddKnowledge(2)
				ctx.Say("The light hums.")
				return ""
			}}},
		}},
	}

	e.Encounter(types.Location{Category: types.CategoryAnomaly})
	res := e.Choose(0)
	if !outputContains(res, "The light hums.") {
		t.Errorf("expected narration, got %v", res.Output)
	}
	for _, m := range e.State.Crew {
		if m.Stress != 1 {
			t.Errorf("%s: expected stress 1, got %d", m.ID, m.Stress)
		}
	}
	if !member(e, "voss").Tags.Has(types.TagMachineLink) {
		t.Error("voss should be tagged")
	}
	if e.State.Run.Knowledge != 2 {
		t.Errorf("expected 2 knowledge, got %d", e.State.Run.Knowledge)
	}
}

func TestEffectContext_Upgrade(t *testing.T) {
	e := newTestEngine()
	e.Tables[types.CategoryStation] = types.EncounterTable{
		Category: types.CategoryStation,
		Entries: []types.EncounterEntry{{
			ID: "dock", Weight: 1, Title: "Dry Dock",
			Choices: []types.Choice{{Label: "Refit", Apply: func(ctx types.EffectContext) string {
				if ctx.InstallUpgrade("cargo_racks") {
					ctx.RaiseSalvageCap(450)
				}
				ctx.InstallUpgrade("cargo_racks")
				ctx.RaiseSalvageCap(100)
				return ""
			}}},
		}},
	}

	e.Encounter(types.Location{Category: types.CategoryStation})
	res := e.Choose(0)
	if !outputContains(res, "Tech level 1") {
		t.Errorf("expected install narration, got %v", res.Output)
	}
	if len(e.State.Run.Upgrades) != 1 {
		t.Errorf("duplicate install should be ignored, got %v", e.State.Run.Upgrades)
	}
	if e.State.Resources.MaxSalvage != 450 {
		t.Errorf("salvage cap should only rise, got %d", e.State.Resources.MaxSalvage)
	}
}

func TestAttemptColony(t *testing.T) {
	e := newTestEngine()
	e.Kill("voss")
	e.InstallUpgrade("hydroponics")
	e.InstallUpgrade("shielding")
	e.State.Run.Knowledge = 3
	for _, i := range crew.Living(e.State.Crew) {
		e.State.Crew[i].Stress = 1
	}

	report, res := e.AttemptColony(true)
	if report.Score != 105 {
		t.Errorf("expected score 105, got %.1f", report.Score)
	}
	if report.Rating != outcome.RatingA {
		t.Errorf("expected rating A, got %s", report.Rating)
	}
	if got := gameOverKind(res); got != types.GameOverColonyEstablished {
		t.Errorf("expected COLONY_ESTABLISHED, got %q", got)
	}
	if !e.State.Run.GameOver {
		t.Error("landing should end the run")
	}
}

func TestAttemptColony_Failed(t *testing.T) {
	e := newTestEngine()

	report, res := e.AttemptColony(false)
	if report.Rating != outcome.RatingF {
		t.Errorf("expected rating F, got %s", report.Rating)
	}
	if got := gameOverKind(res); got != types.GameOverColonyFailed {
		t.Errorf("expected COLONY_FAILED, got %q", got)
	}
}

func TestDeterminism(t *testing.T) {
	run := func() *Engine {
		e := newTestEngine()
		e.EVA(types.Location{Name: "wreck", Danger: 5})
		e.Warp()
		e.Hazard()
		e.Encounter(types.Location{Category: types.CategoryStation})
		return e
	}
	a, b := run(), run()
	if a.State.Resources != b.State.Resources {
		t.Errorf("resources diverged: %+v vs %+v", a.State.Resources, b.State.Resources)
	}
	if a.State.Decks != b.State.Decks {
		t.Error("decks diverged")
	}
	if a.RNG.Position() != b.RNG.Position() {
		t.Errorf("rng position diverged: %d vs %d", a.RNG.Position(), b.RNG.Position())
	}
}
