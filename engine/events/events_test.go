package events

import (
	"testing"
	"time"

	"github.com/nathoo/arkfall/types"
)

func TestDispatch_TraitBark(t *testing.T) {
	var out Outbox
	m := types.CrewMember{Name: "Tomas Reyes", Alias: "Wrench", Trait: types.TraitReckless}
	evts := []types.Event{{Type: types.EventTraitAssigned, Crew: &m}}

	Dispatch(evts, 3, time.Second, &out)
	items := out.Drain()
	if len(items) != 1 {
		t.Fatalf("expected 1 deferred line, got %d", len(items))
	}
	d := items[0]
	if d.Speaker != "Wrench" || d.Generation != 3 || d.Delay != time.Second {
		t.Errorf("unexpected deferred: %+v", d)
	}
	if out.Len() != 0 {
		t.Error("Drain should empty the outbox")
	}
}

func TestDispatch_IgnoresStateChanged(t *testing.T) {
	var out Outbox
	Dispatch([]types.Event{{Type: types.EventStateChanged}, {Type: types.EventGameOver}}, 1, DefaultDelay, &out)
	if out.Len() != 0 {
		t.Errorf("expected no narration, got %d", out.Len())
	}
}

func TestDispatch_CrewDied(t *testing.T) {
	var out Outbox
	m := types.CrewMember{Name: "Ivo Brandt"}
	Dispatch([]types.Event{{Type: types.EventCrewDied, Crew: &m}}, 1, DefaultDelay, &out)
	items := out.Drain()
	if len(items) != 1 || items[0].Speaker != shipAI {
		t.Fatalf("expected ship AI commentary, got %+v", items)
	}
}

func TestDispatch_MissingCrewPayload(t *testing.T) {
	var out Outbox
	Dispatch([]types.Event{{Type: types.EventTraitAssigned}, {Type: types.EventCrewDied}}, 1, DefaultDelay, &out)
	if out.Len() != 0 {
		t.Errorf("events without a crew payload must be skipped, got %d", out.Len())
	}
}

func TestCurrent(t *testing.T) {
	d := Deferred{Generation: 2}
	if !Current(d, 2) {
		t.Error("same generation should be current")
	}
	if Current(d, 3) {
		t.Error("older generation must be stale")
	}
}
