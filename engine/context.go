package engine

import (
	"fmt"

	"github.com/nathoo/arkfall/engine/crew"
	"github.com/nathoo/arkfall/engine/ledger"
	"github.com/nathoo/arkfall/engine/ship"
	"github.com/nathoo/arkfall/types"
)

// Crew target selectors understood by effect contexts.
const (
	TargetAll    = "all"
	TargetRandom = "random"
)

// effectContext is the mutation surface handed to encounter choices. It
// writes through to the engine state and collects narration into res; the
// caller runs the commit hook once the choice has been applied.
type effectContext struct {
	e   *Engine
	res *types.Result
}

var _ types.EffectContext = (*effectContext)(nil)

func (c *effectContext) State() *types.State { return c.e.State }

func (c *effectContext) say(format string, args ...any) {
	c.res.Output = append(c.res.Output, fmt.Sprintf(format, args...))
}

func (c *effectContext) Say(text string) {
	if text != "" {
		c.res.Output = append(c.res.Output, text)
	}
}

func (c *effectContext) resource(kind ledger.Kind, delta int) {
	applied := c.e.adjust(kind, delta)
	switch {
	case applied > 0:
		c.say("+%d %s", applied, kind)
	case applied < 0:
		c.say("%d %s", applied, kind)
	}
}

func (c *effectContext) AdjustEnergy(delta int)  { c.resource(ledger.Energy, delta) }
func (c *effectContext) AdjustSalvage(delta int) { c.resource(ledger.Salvage, delta) }
func (c *effectContext) AdjustRations(delta int) { c.resource(ledger.Rations, delta) }

func (c *effectContext) AddKnowledge(n int) {
	if n <= 0 {
		return
	}
	c.e.State.Run.Knowledge += n
	c.say("+%d colony knowledge", n)
}

// targets resolves a crew selector to roster indices of living members.
func (c *effectContext) targets(target string) []int {
	roster := c.e.State.Crew
	switch target {
	case TargetAll:
		return crew.Living(roster)
	case "", TargetRandom:
		if i, ok := crew.PickRandom(roster, c.e.RNG, nil); ok {
			return []int{i}
		}
		return nil
	default:
		if i := crew.Find(roster, target); i >= 0 && roster[i].Alive() {
			return []int{i}
		}
		return nil
	}
}

func (c *effectContext) AdjustStress(target string, delta int) {
	for _, i := range c.targets(target) {
		m := &c.e.State.Crew[i]
		if applied := crew.AdjustStress(m, delta); applied != 0 {
			c.say("%s stress %+d", m.Name, applied)
		}
	}
}

func (c *effectContext) Injure(target string) {
	for _, i := range c.targets(target) {
		injure(&c.e.State.Crew[i], c.res)
	}
}

func (c *effectContext) Kill(target string) {
	for _, i := range c.targets(target) {
		kill(&c.e.State.Crew[i], c.res)
	}
}

func (c *effectContext) Heal(target string) {
	for _, i := range c.targets(target) {
		m := &c.e.State.Crew[i]
		if crew.Heal(m) {
			c.say("%s recovers.", m.Name)
		}
	}
}

func (c *effectContext) TagCrew(target string, tag types.Tag) {
	for _, i := range c.targets(target) {
		m := &c.e.State.Crew[i]
		if !m.Tags.Has(tag) {
			m.Tags = m.Tags.With(tag)
			c.say("%s is now %s.", m.Name, tag)
		}
	}
}

func (c *effectContext) DamageDeck() (types.DeckID, bool) {
	id, ok := ship.DamageRandomOperational(&c.e.State.Decks, c.e.RNG)
	if ok {
		c.say("The %s deck is damaged.", id)
	}
	return id, ok
}

func (c *effectContext) InstallUpgrade(id string) bool {
	if !c.e.installUpgrade(id) {
		return false
	}
	c.say("Installed %s. Tech level %d.", id, len(c.e.State.Run.Upgrades))
	return true
}

func (c *effectContext) RaiseSalvageCap(limit int) {
	r := &c.e.State.Resources
	if limit <= ledger.Cap(r, ledger.Salvage) || !c.e.setSalvageCap(limit) {
		return
	}
	c.say("Salvage capacity is now %d.", limit)
}

func (c *effectContext) Roll(sides int) int { return c.e.RNG.Roll(sides) }
