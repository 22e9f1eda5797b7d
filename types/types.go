// Package types defines the shared data structures for the Arkfall simulation core.
// This package contains type definitions and trivial accessors only; the
// rules that mutate these values live under engine/.
package types

// Resource bounds.
const (
	MaxEnergy         = 100
	DefaultMaxSalvage = 300
	DefaultMaxRations = 30
	MaxStress         = 3
)

// Resources is the ledger of the three depleting resources.
// 0 <= Energy <= MaxEnergy, 0 <= Salvage <= MaxSalvage, 0 <= Rations <= MaxRations.
type Resources struct {
	Energy     int
	Salvage    int
	Rations    int
	MaxSalvage int // raised by the upgrade collaborator
	MaxRations int
}

// DeckID identifies one of the five ship subsystems.
type DeckID int

const (
	DeckBridge DeckID = iota
	DeckLab
	DeckQuarters
	DeckCargo
	DeckEngineering
	DeckCount
)

var deckNames = [DeckCount]string{"bridge", "lab", "quarters", "cargo", "engineering"}

func (d DeckID) String() string {
	if d < 0 || d >= DeckCount {
		return "unknown"
	}
	return deckNames[d]
}

// DeckStatus is the operational state of a deck.
type DeckStatus int

const (
	DeckOperational DeckStatus = iota
	DeckDamaged
)

// Deck is a single ship subsystem.
type Deck struct {
	ID         DeckID
	Status     DeckStatus
	RepairCost int // base cost in salvage, before modifiers
}

// CrewStatus is the physical condition of a crew member.
type CrewStatus int

const (
	CrewHealthy CrewStatus = iota
	CrewInjured
	CrewDead
)

func (s CrewStatus) String() string {
	switch s {
	case CrewHealthy:
		return "HEALTHY"
	case CrewInjured:
		return "INJURED"
	case CrewDead:
		return "DEAD"
	default:
		return "UNKNOWN"
	}
}

// Personality is the immutable archetype that picks a member's negative
// trait and breakdown. The commander has PersonalityNone.
type Personality int

const (
	PersonalityNone     Personality = iota // commander
	PersonalityVolatile                    // breaks down into sabotage
	PersonalityWithdrawn                   // breaks down into catatonia
	PersonalityDefiant                     // breaks down into mutiny
	PersonalityFixated                     // breaks down into obsession
)

func (p Personality) String() string {
	switch p {
	case PersonalityVolatile:
		return "volatile"
	case PersonalityWithdrawn:
		return "withdrawn"
	case PersonalityDefiant:
		return "defiant"
	case PersonalityFixated:
		return "fixated"
	default:
		return "commander"
	}
}

// Trait is a stress-driven condition. TraitNone means no trait held.
type Trait int

const (
	TraitNone Trait = iota
	TraitReckless
	TraitDespondent
	TraitInsubordinate
	TraitParanoid
	TraitCatatonic
	TraitObsessed
)

func (t Trait) String() string {
	switch t {
	case TraitReckless:
		return "RECKLESS"
	case TraitDespondent:
		return "DESPONDENT"
	case TraitInsubordinate:
		return "INSUBORDINATE"
	case TraitParanoid:
		return "PARANOID"
	case TraitCatatonic:
		return "CATATONIC"
	case TraitObsessed:
		return "OBSESSED"
	default:
		return ""
	}
}

// Tag is a single role or transient status marker.
type Tag uint16

const (
	TagEngineer Tag = 1 << iota
	TagMedic
	TagSecurity
	TagSpecialist
	TagLeader
	TagSedated
	TagConfined
	TagHiveMind
	TagMachineLink
	TagWrongPlaceSurvivor
)

var tagNames = map[Tag]string{
	TagEngineer:           "ENGINEER",
	TagMedic:              "MEDIC",
	TagSecurity:           "SECURITY",
	TagSpecialist:         "SPECIALIST",
	TagLeader:             "LEADER",
	TagSedated:            "SEDATED",
	TagConfined:           "CONFINED",
	TagHiveMind:           "HIVE_MIND",
	TagMachineLink:        "MACHINE_LINK",
	TagWrongPlaceSurvivor: "WRONG_PLACE_SURVIVOR",
}

func (t Tag) String() string { return tagNames[t] }

// TagByName looks up a tag from its upper-case name.
func TagByName(name string) (Tag, bool) {
	for tag, n := range tagNames {
		if n == name {
			return tag, true
		}
	}
	return 0, false
}

// TagSet is a closed set of tags.
type TagSet uint16

// Has reports whether the set contains tag.
func (s TagSet) Has(tag Tag) bool { return s&TagSet(tag) != 0 }

// With returns the set with tag added.
func (s TagSet) With(tag Tag) TagSet { return s | TagSet(tag) }

// Without returns the set with tag removed.
func (s TagSet) Without(tag Tag) TagSet { return s &^ TagSet(tag) }

// CrewMember is one record of the five-member roster.
type CrewMember struct {
	ID             string
	Name           string
	Alias          string
	Age            int
	Portrait       string
	Status         CrewStatus
	Stress         int // 0..MaxStress
	Personality    Personality
	Trait          Trait
	Tags           TagSet
	HealCounter    int
	BreakdownFired bool
}

// Alive reports whether the member is not dead.
func (c CrewMember) Alive() bool { return c.Status != CrewDead }

// IsCommander reports whether the member is the commander.
func (c CrewMember) IsCommander() bool { return c.Personality == PersonalityNone }

// Category names one of the six encounter content tables.
type Category string

const (
	CategoryExodus   Category = "exodus"
	CategoryColony   Category = "colony"
	CategoryDerelict Category = "derelict"
	CategoryAnomaly  Category = "anomaly"
	CategoryAsteroid Category = "asteroid"
	CategoryStation  Category = "station"
)

// Categories lists every encounter category in display order.
var Categories = []Category{
	CategoryExodus, CategoryColony, CategoryDerelict,
	CategoryAnomaly, CategoryAsteroid, CategoryStation,
}

// Run holds the per-run accumulators.
type Run struct {
	Sector     int                          // monotonic
	Knowledge  int                          // colony knowledge, monotonic
	Seen       map[Category]map[string]bool // encountered ids per category
	SeenNames  map[string]bool              // generated display names
	Actions    int                          // monotonic
	GameOver   bool                         // terminal latch
	Starvation int                          // consecutive zero-ration actions
	Upgrades   []string                     // installed upgrades, tech level = len
	Generation uint64                       // bumped on reset, guards deferred narration
}

// Location is an encounterable place supplied by the sector collaborator.
// The core reads only its metrics.
type Location struct {
	ID           string
	Name         string
	Category     Category
	Danger       int // 0..10
	EnergyLevel  int
	SalvageLevel int
	RationLevel  int
	Tags         []string
}

// PendingEncounter is an encounter presented to the player awaiting a choice.
type PendingEncounter struct {
	Category Category
	Entry    EncounterEntry
	Name     string
}

// State is the complete mutable run state.
type State struct {
	Resources Resources
	Decks     [DeckCount]Deck
	Crew      []CrewMember
	Run       Run
	Pending   *PendingEncounter
	RNGSeed   int64
}

// Effect is a single atomic content instruction compiled from Lua.
type Effect struct {
	Type   string
	Params map[string]any
}

// ChoiceEffect applies a choice against the shared state and returns narration.
type ChoiceEffect func(ctx EffectContext) string

// Choice is one option of an encounter.
type Choice struct {
	Label   string
	Effects []Effect // compiled source of Apply, kept for tracing
	Apply   ChoiceEffect
}

// EncounterEntry is one weighted row of a content table. The core never
// inspects Context, Dialogue or Names beyond passing them along.
type EncounterEntry struct {
	ID       string
	Weight   float64
	Title    string
	Context  string
	Dialogue []string
	Names    []string // optional display-name pool
	Choices  []Choice
}

// EncounterTable is the content of one category.
type EncounterTable struct {
	Category Category
	Entries  []EncounterEntry
}

// EffectContext is the mutation surface content effects are allowed to use.
// Crew targets are a crew ID, "all" (every living member) or "random".
type EffectContext interface {
	State() *State
	AdjustEnergy(delta int)
	AdjustSalvage(delta int)
	AdjustRations(delta int)
	AddKnowledge(n int)
	AdjustStress(target string, delta int)
	Injure(target string)
	Kill(target string)
	Heal(target string)
	TagCrew(target string, tag Tag)
	DamageDeck() (DeckID, bool)
	InstallUpgrade(id string) bool
	RaiseSalvageCap(limit int)
	Roll(sides int) int
	Say(text string)
}

// Rand is the random source consumed by the core.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// EventType identifies a signal raised by the core.
type EventType string

const (
	EventStateChanged     EventType = "state_changed"
	EventCrewDied         EventType = "crew_died"
	EventCrewInjured      EventType = "crew_injured"
	EventGameOver         EventType = "game_over"
	EventMutiny           EventType = "mutiny"
	EventInsufficient     EventType = "insufficient_resource"
	EventTraitAssigned    EventType = "trait_assigned"
	EventBreakdown        EventType = "breakdown"
	EventEncounterRepeats EventType = "encounter_repeats"
)

// GameOverKind is the terminal signal raised when a run ends.
type GameOverKind string

const (
	GameOverCrewLoss           GameOverKind = "CREW_LOSS"
	GameOverHullBreach         GameOverKind = "HULL_BREACH"
	GameOverCommanderBreakdown GameOverKind = "COMMANDER_BREAKDOWN"
	GameOverColonyEstablished  GameOverKind = "COLONY_ESTABLISHED"
	GameOverColonyFailed       GameOverKind = "COLONY_FAILED"
)

// GameOver is the payload of an EventGameOver signal.
type GameOver struct {
	Kind    GameOverKind
	Title   string
	Message string
}

// Event is a one-way notification to the presentation collaborator.
type Event struct {
	Type     EventType
	Crew     *CrewMember // snapshot, for crew_* / mutiny / trait / breakdown
	GameOver *GameOver
	Resource string // for insufficient_resource
}

// Result is the output of a single command.
type Result struct {
	OK     bool
	Reason string // set when OK is false
	Output []string
	Events []Event
}
