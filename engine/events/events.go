// Package events implements single-pass dispatch of core signals into
// deferred narration. Handlers produce narration only and never recurse.
package events

import (
	"fmt"
	"time"

	"github.com/nathoo/arkfall/types"
)

// DefaultDelay is how long after the triggering action a bark is shown.
const DefaultDelay = 600 * time.Millisecond

// Deferred is one scheduled line of narration. It belongs to the run
// generation it was scheduled in and is dropped if that run has been reset.
type Deferred struct {
	Generation uint64
	Delay      time.Duration
	Speaker    string
	Text       string
}

// Outbox queues deferred narration until the presentation layer drains it.
// Delivery order between items is not guaranteed.
type Outbox struct {
	items []Deferred
}

// Schedule enqueues a line.
func (o *Outbox) Schedule(d Deferred) {
	o.items = append(o.items, d)
}

// Drain returns and clears everything queued.
func (o *Outbox) Drain() []Deferred {
	items := o.items
	o.items = nil
	return items
}

// Len returns the number of queued items.
func (o *Outbox) Len() int {
	return len(o.items)
}

// Current reports whether d was scheduled by run generation gen.
func Current(d Deferred, gen uint64) bool {
	return d.Generation == gen
}

// barks are the lines a member mutters when taking on a trait.
var barks = map[types.Trait]string{
	types.TraitReckless:      "Let's just punch it. What's the worst that happens?",
	types.TraitDespondent:    "Does it even matter where we land?",
	types.TraitInsubordinate: "Funny how the orders never cost the one giving them.",
	types.TraitParanoid:      "Somebody's been in my terminal. I know it.",
}

// shipAI is the speaker name of the ship's computer.
const shipAI = "ARK"

// Dispatch schedules narration for the signals raised by one command.
func Dispatch(evts []types.Event, gen uint64, delay time.Duration, out *Outbox) {
	for _, e := range evts {
		d, ok := narrate(e)
		if !ok {
			continue
		}
		d.Generation = gen
		d.Delay = delay
		out.Schedule(d)
	}
}

func narrate(e types.Event) (Deferred, bool) {
	switch e.Type {
	case types.EventTraitAssigned:
		if e.Crew == nil {
			return Deferred{}, false
		}
		line, ok := barks[e.Crew.Trait]
		if !ok {
			return Deferred{}, false
		}
		return Deferred{Speaker: e.Crew.Alias, Text: line}, true

	case types.EventCrewDied:
		if e.Crew == nil {
			return Deferred{}, false
		}
		return Deferred{Speaker: shipAI, Text: fmt.Sprintf("Life signs for %s have ceased. Logging.", e.Crew.Name)}, true

	case types.EventMutiny:
		return Deferred{Speaker: shipAI, Text: "Command authority is being contested. Awaiting resolution."}, true

	case types.EventEncounterRepeats:
		return Deferred{Speaker: shipAI, Text: "This sector's records look familiar."}, true

	default:
		return Deferred{}, false
	}
}
