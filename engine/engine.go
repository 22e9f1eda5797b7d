// Package engine provides the Engine run aggregate: it owns the run state,
// exposes every command, and funnels each mutation through a single commit
// hook (stress machine, lose-condition monitor, state_changed signal).
package engine

import (
	"fmt"
	"time"

	"github.com/nathoo/arkfall/engine/crew"
	"github.com/nathoo/arkfall/engine/events"
	"github.com/nathoo/arkfall/engine/ledger"
	"github.com/nathoo/arkfall/engine/monitor"
	"github.com/nathoo/arkfall/engine/ship"
	"github.com/nathoo/arkfall/engine/starvation"
	"github.com/nathoo/arkfall/types"
)

// Failure reasons returned in types.Result.Reason.
const (
	ReasonGameOver          = "game over"
	ReasonInsufficient      = "insufficient %s"
	ReasonUnknownCrew       = "unknown crew member"
	ReasonCrewDead          = "crew member is dead"
	ReasonNotDead           = "crew member is not dead"
	ReasonNoDead            = "no dead crew"
	ReasonTableUnavailable  = "encounter table unavailable"
	ReasonEncounterPending  = "an encounter is awaiting a choice"
	ReasonNoEncounter       = "no encounter in progress"
	ReasonInvalidChoice     = "invalid choice"
	ReasonInvalidAmount     = "amount must not be negative"
	ReasonDuplicateUpgrade  = "upgrade already installed"
	ReasonNoOperationalDeck = "no operational deck left to damage"
)

// Options configure a run.
type Options struct {
	Seed       int64
	MaxSalvage int
	MaxRations int
	BarkDelay  time.Duration
	Tables     map[types.Category]types.EncounterTable
}

// Engine holds the content tables and the mutable state of one run.
// It has a single writer: the command currently executing.
type Engine struct {
	State  *types.State
	RNG    *RNG
	Tables map[types.Category]types.EncounterTable
	Outbox events.Outbox

	opts Options
}

// New creates an engine with a fresh run.
func New(opts Options) *Engine {
	if opts.BarkDelay <= 0 {
		opts.BarkDelay = events.DefaultDelay
	}
	if opts.Tables == nil {
		opts.Tables = map[types.Category]types.EncounterTable{}
	}
	e := &Engine{
		Tables: opts.Tables,
		RNG:    NewRNG(opts.Seed),
		opts:   opts,
	}
	e.State = e.newState(1)
	return e
}

func (e *Engine) newState(generation uint64) *types.State {
	seen := make(map[types.Category]map[string]bool, len(types.Categories))
	for _, c := range types.Categories {
		seen[c] = map[string]bool{}
	}
	return &types.State{
		Resources: ledger.New(e.opts.MaxSalvage, e.opts.MaxRations),
		Decks:     ship.NewDecks(),
		Crew:      crew.NewRoster(),
		Run: types.Run{
			Sector:     1,
			Seen:       seen,
			SeenNames:  map[string]bool{},
			Generation: generation,
		},
		RNGSeed: e.RNG.Seed(),
	}
}

// Reset starts a new run. Deferred narration from the previous run becomes
// stale. The RNG keeps its sequence.
func (e *Engine) Reset() types.Result {
	e.State = e.newState(e.State.Run.Generation + 1)
	e.Outbox.Drain()
	res := types.Result{OK: true, Output: []string{"A new crew wakes from cryosleep."}}
	e.commit(&res)
	return res
}

// Generation returns the current run generation.
func (e *Engine) Generation() uint64 {
	return e.State.Run.Generation
}

// Deliver returns the text of a deferred narration item if it still belongs
// to the current run. It never mutates gameplay state.
func (e *Engine) Deliver(d events.Deferred) (string, bool) {
	if !events.Current(d, e.Generation()) {
		return "", false
	}
	if d.Speaker == "" {
		return d.Text, true
	}
	return fmt.Sprintf("%s: \"%s\"", d.Speaker, d.Text), true
}

// commit is the post-mutation hook every successful mutating command ends
// with. It runs the stress machine, then the lose-condition monitor, then
// raises state_changed and schedules narration for the signals raised.
func (e *Engine) commit(res *types.Result) {
	s := e.State

	rep := crew.Evaluate(s.Crew, &s.Decks, e.RNG)
	res.Output = append(res.Output, rep.Output...)
	res.Events = append(res.Events, rep.Events...)

	if rep.CommanderBreakdown != nil {
		e.end(res, types.GameOver{
			Kind:    types.GameOverCommanderBreakdown,
			Title:   "Command Collapse",
			Message: fmt.Sprintf("%s can no longer lead. Without a commander the mission falls apart.", rep.CommanderBreakdown.Name),
		})
	}
	if over, ok := monitor.Evaluate(s); ok {
		e.end(res, over)
	}

	res.Events = append(res.Events, types.Event{Type: types.EventStateChanged})
	events.Dispatch(res.Events, s.Run.Generation, e.opts.BarkDelay, &e.Outbox)
}

// end latches the run as over and raises the game_over signal.
func (e *Engine) end(res *types.Result, over types.GameOver) {
	if e.State.Run.GameOver {
		return
	}
	e.State.Run.GameOver = true
	e.State.Pending = nil
	res.Output = append(res.Output, over.Title+": "+over.Message)
	res.Events = append(res.Events, types.Event{Type: types.EventGameOver, GameOver: &over})
}

// blocked short-circuits gameplay commands once the run is over.
func (e *Engine) blocked() (types.Result, bool) {
	if e.State.Run.GameOver {
		return fail(ReasonGameOver), true
	}
	return types.Result{}, false
}

func fail(reason string) types.Result {
	return types.Result{OK: false, Reason: reason, Output: []string{capitalize(reason) + "."}}
}

func insufficient(kind ledger.Kind, need, have int) types.Result {
	res := fail(fmt.Sprintf(ReasonInsufficient, kind))
	res.Output = []string{fmt.Sprintf("Not enough %s: need %d, have %d.", kind, need, have)}
	res.Events = []types.Event{{Type: types.EventInsufficient, Resource: string(kind)}}
	return res
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if c := s[0]; c >= 'a' && c <= 'z' {
		return string(c-'a'+'A') + s[1:]
	}
	return s
}

// spend is the shared gate for resource-costed commands.
func (e *Engine) spend(kind ledger.Kind, amount int) (types.Result, bool) {
	if amount < 0 {
		return fail(ReasonInvalidAmount), false
	}
	r := &e.State.Resources
	if !ledger.Spend(r, kind, amount) {
		return insufficient(kind, amount, ledger.Get(r, kind)), false
	}
	return types.Result{OK: true}, true
}

// adjust applies a clamped change and keeps the starvation counter in step.
func (e *Engine) adjust(kind ledger.Kind, delta int) int {
	applied := ledger.Adjust(&e.State.Resources, kind, delta)
	if kind == ledger.Rations {
		starvation.Replenished(&e.State.Resources, &e.State.Run.Starvation)
	}
	return applied
}

// SpendEnergy deducts energy iff enough is available.
func (e *Engine) SpendEnergy(amount int) types.Result {
	return e.spendCommand(ledger.Energy, amount)
}

// SpendSalvage deducts salvage iff enough is available.
func (e *Engine) SpendSalvage(amount int) types.Result {
	return e.spendCommand(ledger.Salvage, amount)
}

func (e *Engine) spendCommand(kind ledger.Kind, amount int) types.Result {
	if res, over := e.blocked(); over {
		return res
	}
	res, ok := e.spend(kind, amount)
	if !ok {
		return res
	}
	res.Output = append(res.Output, fmt.Sprintf("Spent %d %s.", amount, kind))
	e.commit(&res)
	return res
}

// GainEnergy adds energy, clamped to the cap.
func (e *Engine) GainEnergy(amount int) types.Result {
	return e.gainCommand(ledger.Energy, amount)
}

// GainSalvage adds salvage, clamped to the cap.
func (e *Engine) GainSalvage(amount int) types.Result {
	return e.gainCommand(ledger.Salvage, amount)
}

// GainRations adds rations, clamped to the cap. Restoring rations above
// zero resets the starvation ladder.
func (e *Engine) GainRations(amount int) types.Result {
	return e.gainCommand(ledger.Rations, amount)
}

func (e *Engine) gainCommand(kind ledger.Kind, amount int) types.Result {
	if res, over := e.blocked(); over {
		return res
	}
	if amount < 0 {
		return fail(ReasonInvalidAmount)
	}
	applied := e.adjust(kind, amount)
	res := types.Result{OK: true, Output: []string{fmt.Sprintf("Gained %d %s.", applied, kind)}}
	e.commit(&res)
	return res
}

// SetSalvageCap is the upgrade collaborator's hook for changing the
// salvage cap.
func (e *Engine) SetSalvageCap(limit int) types.Result {
	if res, over := e.blocked(); over {
		return res
	}
	if !e.setSalvageCap(limit) {
		return fail(ReasonInvalidAmount)
	}
	res := types.Result{OK: true, Output: []string{fmt.Sprintf("Salvage capacity is now %d.", limit)}}
	e.commit(&res)
	return res
}

// InstallUpgrade records an installed upgrade; the count is the tech level.
func (e *Engine) InstallUpgrade(id string) types.Result {
	if res, over := e.blocked(); over {
		return res
	}
	if !e.installUpgrade(id) {
		return fail(ReasonDuplicateUpgrade)
	}
	res := types.Result{OK: true, Output: []string{fmt.Sprintf("Installed %s. Tech level %d.", id, len(e.State.Run.Upgrades))}}
	e.commit(&res)
	return res
}

func (e *Engine) setSalvageCap(limit int) bool {
	return ledger.SetCap(&e.State.Resources, ledger.Salvage, limit)
}

// installUpgrade appends id to the installed list unless it is already there.
func (e *Engine) installUpgrade(id string) bool {
	if id == "" {
		return false
	}
	for _, u := range e.State.Run.Upgrades {
		if u == id {
			return false
		}
	}
	e.State.Run.Upgrades = append(e.State.Run.Upgrades, id)
	return true
}

// Repair fixes a damaged deck, paying the effective cost in salvage.
func (e *Engine) Repair(id types.DeckID) types.Result {
	if res, over := e.blocked(); over {
		return res
	}
	s := e.State
	engineer := crew.HasLivingRole(s.Crew, types.TagEngineer)
	cost, reason, ok := ship.Repair(&s.Decks, &s.Resources, id, engineer)
	if !ok {
		if reason == ship.ReasonInsufficient {
			return insufficient(ledger.Salvage, cost, s.Resources.Salvage)
		}
		return fail(reason)
	}
	res := types.Result{OK: true, Output: []string{fmt.Sprintf("The %s deck is back online (%d salvage).", id, cost)}}
	e.commit(&res)
	return res
}

// RepairCost returns the effective repair cost of a deck right now.
func (e *Engine) RepairCost(id types.DeckID) int {
	return ship.RepairCost(&e.State.Decks, id, crew.HasLivingRole(e.State.Crew, types.TagEngineer))
}

// Hazard damages a random operational deck.
func (e *Engine) Hazard() types.Result {
	if res, over := e.blocked(); over {
		return res
	}
	id, ok := ship.DamageRandomOperational(&e.State.Decks, e.RNG)
	if !ok {
		return fail(ReasonNoOperationalDeck)
	}
	res := types.Result{OK: true, Output: []string{fmt.Sprintf("Alarms blare: the %s deck is damaged.", id)}}
	e.commit(&res)
	return res
}

// ConsumeRations applies one ration tick: a ration is eaten, the
// starvation ladder runs, and passive healing advances.
func (e *Engine) ConsumeRations() types.Result {
	if res, over := e.blocked(); over {
		return res
	}
	res := types.Result{OK: true}
	e.rationTick(&res)
	e.commit(&res)
	return res
}

func (e *Engine) rationTick(res *types.Result) {
	s := e.State
	rep := starvation.Tick(&s.Resources, s.Crew, &s.Run.Starvation, e.RNG)
	res.Output = append(res.Output, rep.Output...)
	res.Events = append(res.Events, rep.Events...)
	res.Output = append(res.Output, crew.PassiveHeal(s.Crew, ship.IsOperational(&s.Decks, types.DeckQuarters))...)
}

// member resolves a crew ID for a command, failing on unknown or dead crew.
func (e *Engine) member(id string) (*types.CrewMember, types.Result, bool) {
	i := crew.Find(e.State.Crew, id)
	if i < 0 {
		return nil, fail(ReasonUnknownCrew), false
	}
	m := &e.State.Crew[i]
	if !m.Alive() {
		return nil, fail(ReasonCrewDead), false
	}
	return m, types.Result{}, true
}

// AdjustStress changes a member's stress and runs the resulting trait and
// breakdown transitions.
func (e *Engine) AdjustStress(id string, delta int) types.Result {
	if res, over := e.blocked(); over {
		return res
	}
	m, res, ok := e.member(id)
	if !ok {
		return res
	}
	crew.AdjustStress(m, delta)
	res = types.Result{OK: true, Output: []string{fmt.Sprintf("%s stress: %d.", m.Name, m.Stress)}}
	e.commit(&res)
	return res
}

// SetStress sets a member's stress level and runs the transitions.
func (e *Engine) SetStress(id string, level int) types.Result {
	if res, over := e.blocked(); over {
		return res
	}
	m, res, ok := e.member(id)
	if !ok {
		return res
	}
	crew.SetStress(m, level)
	res = types.Result{OK: true, Output: []string{fmt.Sprintf("%s stress: %d.", m.Name, m.Stress)}}
	e.commit(&res)
	return res
}

// Injure moves a healthy member to INJURED.
func (e *Engine) Injure(id string) types.Result {
	if res, over := e.blocked(); over {
		return res
	}
	m, res, ok := e.member(id)
	if !ok {
		return res
	}
	res = types.Result{OK: true}
	injure(m, &res)
	e.commit(&res)
	return res
}

// Kill marks a living member DEAD.
func (e *Engine) Kill(id string) types.Result {
	if res, over := e.blocked(); over {
		return res
	}
	m, res, ok := e.member(id)
	if !ok {
		return res
	}
	res = types.Result{OK: true}
	kill(m, &res)
	e.commit(&res)
	return res
}

// Revive brings a dead member back HEALTHY, marked with tag. It is the only
// way out of DEAD.
func (e *Engine) Revive(id string, tag types.Tag) types.Result {
	if res, over := e.blocked(); over {
		return res
	}
	s := e.State
	if crew.LivingCount(s.Crew) == len(s.Crew) {
		return fail(ReasonNoDead)
	}
	i := crew.Find(s.Crew, id)
	if i < 0 {
		return fail(ReasonUnknownCrew)
	}
	m := &s.Crew[i]
	if !crew.Revive(m, tag) {
		return fail(ReasonNotDead)
	}
	res := types.Result{OK: true, Output: []string{fmt.Sprintf("%s opens their eyes. Something came back with them. (%s)", m.Name, tag)}}
	e.commit(&res)
	return res
}

func injure(m *types.CrewMember, res *types.Result) {
	if !crew.Injure(m) {
		return
	}
	res.Output = append(res.Output, fmt.Sprintf("%s is injured.", m.Name))
	snap := *m
	res.Events = append(res.Events, types.Event{Type: types.EventCrewInjured, Crew: &snap})
}

func kill(m *types.CrewMember, res *types.Result) {
	if !crew.Kill(m) {
		return
	}
	res.Output = append(res.Output, fmt.Sprintf("%s is dead.", m.Name))
	snap := *m
	res.Events = append(res.Events, types.Event{Type: types.EventCrewDied, Crew: &snap})
}
