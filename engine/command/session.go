package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nathoo/arkfall/engine"
	"github.com/nathoo/arkfall/engine/ledger"
	"github.com/nathoo/arkfall/engine/sector"
	"github.com/nathoo/arkfall/engine/ship"
	"github.com/nathoo/arkfall/types"
)

// Failure reasons for commands rejected before reaching the engine.
const (
	ReasonEmpty           = "no command"
	ReasonUnknownVerb     = "unknown command"
	ReasonNoLocation      = "no such location"
	ReasonMissingLocation = "which location?"
	ReasonUnknownDeck     = "unknown deck"
	ReasonBadChoice       = "choose a number"
)

// Intro opens every run.
const Intro = "The ark drifts out of the ruined system. Five crew, one ship, no home."

// Session binds an engine to the locations of the current sector and
// dispatches parsed commands to it. Both front ends drive a Session.
type Session struct {
	Engine    *engine.Engine
	Locations []types.Location
}

// NewSession creates a session and generates the first sector.
func NewSession(e *engine.Engine) *Session {
	s := &Session{Engine: e}
	s.regenerate()
	return s
}

func (s *Session) regenerate() {
	st := s.Engine.State
	s.Locations = sector.Generate(st.Run.Sector, s.Engine.RNG, st.Run.SeenNames)
}

// Execute parses and runs one line of player input.
func (s *Session) Execute(input string) types.Result {
	cmd := Parse(input)
	if cmd.Verb == "" {
		return failure(ReasonEmpty)
	}
	e := s.Engine

	switch cmd.Verb {
	case VerbHelp:
		return info(HelpLines())
	case VerbStatus:
		return info(StatusLines(e.State))
	case VerbCrew:
		return info(CrewLines(e.State))
	case VerbDecks:
		return info(DeckLines(e))
	case VerbLocations:
		return info(s.LocationLines())

	case VerbWarp:
		res := e.Warp()
		if res.OK {
			s.regenerate()
			res.Output = append(res.Output, s.LocationLines()...)
		}
		return res

	case VerbScan, VerbEVA, VerbVisit, VerbColony:
		loc, res, ok := s.locate(cmd.Args)
		if !ok {
			return res
		}
		switch cmd.Verb {
		case VerbScan:
			return e.Scan(loc)
		case VerbEVA:
			return e.EVA(loc)
		case VerbVisit:
			return e.Encounter(loc)
		default:
			_, res := e.AttemptColony(sector.Habitable(loc))
			return res
		}

	case VerbChoose:
		if len(cmd.Args) == 0 {
			return failure(ReasonBadChoice)
		}
		n, err := strconv.Atoi(cmd.Args[0])
		if err != nil {
			return failure(ReasonBadChoice)
		}
		return e.Choose(n - 1)

	case VerbRepair:
		if len(cmd.Args) == 0 {
			return failure(ReasonUnknownDeck)
		}
		id, ok := ship.Parse(cmd.Args[0])
		if !ok {
			res := failure(ReasonUnknownDeck)
			if guess, ok := Suggest(cmd.Args[0], ship.Names()); ok {
				res.Output = append(res.Output, fmt.Sprintf("Did you mean %q?", guess))
			}
			return res
		}
		return e.Repair(id)

	case VerbRest:
		return e.Rest()

	case VerbNew:
		res := e.Reset()
		s.regenerate()
		res.Output = append(res.Output, s.LocationLines()...)
		return res

	default:
		res := failure(ReasonUnknownVerb)
		res.Output = []string{fmt.Sprintf("I don't understand %q.", cmd.Verb)}
		if guess, ok := SuggestVerb(cmd.Verb); ok {
			res.Output = append(res.Output, fmt.Sprintf("Did you mean %q?", guess))
		}
		return res
	}
}

// locate resolves a location argument: a 1-based index or a name prefix.
func (s *Session) locate(args []string) (types.Location, types.Result, bool) {
	if len(args) == 0 {
		return types.Location{}, failure(ReasonMissingLocation), false
	}
	if n, err := strconv.Atoi(args[0]); err == nil {
		if n >= 1 && n <= len(s.Locations) {
			return s.Locations[n-1], types.Result{}, true
		}
		return types.Location{}, failure(ReasonNoLocation), false
	}

	query := strings.Join(args, " ")
	for _, loc := range s.Locations {
		if strings.HasPrefix(strings.ToLower(loc.Name), query) {
			return loc, types.Result{}, true
		}
	}
	return types.Location{}, failure(ReasonNoLocation), false
}

func info(lines []string) types.Result {
	return types.Result{OK: true, Output: lines}
}

func failure(reason string) types.Result {
	return types.Result{OK: false, Reason: reason, Output: []string{reason}}
}

// LocationLines lists the locations of the current sector.
func (s *Session) LocationLines() []string {
	lines := []string{fmt.Sprintf("Sector %d:", s.Engine.State.Run.Sector)}
	for i, loc := range s.Locations {
		lines = append(lines, fmt.Sprintf("  %d. %s [%s] danger %d", i+1, loc.Name, loc.Category, loc.Danger))
	}
	return lines
}

// StatusLines summarises resources and run progress.
func StatusLines(st *types.State) []string {
	r := st.Resources
	return []string{
		fmt.Sprintf("Energy %d/%d  Salvage %d/%d  Rations %d/%d",
			r.Energy, types.MaxEnergy, r.Salvage, r.MaxSalvage, r.Rations, r.MaxRations),
		fmt.Sprintf("Sector %d  Knowledge %d  Tech %d  Actions %d",
			st.Run.Sector, st.Run.Knowledge, len(st.Run.Upgrades), st.Run.Actions),
	}
}

// CrewLines describes every member of the roster.
func CrewLines(st *types.State) []string {
	lines := make([]string, 0, len(st.Crew))
	for _, m := range st.Crew {
		line := fmt.Sprintf("%-14s %-8s stress %d", m.Name, m.Status, m.Stress)
		if m.Trait != types.TraitNone {
			line += " " + m.Trait.String()
		}
		if tags := TagNames(m.Tags); len(tags) > 0 {
			line += " [" + strings.Join(tags, " ") + "]"
		}
		lines = append(lines, line)
	}
	return lines
}

// DeckLines describes every deck with its current repair cost.
func DeckLines(e *engine.Engine) []string {
	lines := make([]string, 0, types.DeckCount)
	for _, d := range e.State.Decks {
		if d.Status == types.DeckOperational {
			lines = append(lines, fmt.Sprintf("%-12s operational", d.ID))
			continue
		}
		lines = append(lines, fmt.Sprintf("%-12s DAMAGED (repair %d)", d.ID, e.RepairCost(d.ID)))
	}
	return lines
}

// TagNames lists the names of the tags in a set.
func TagNames(set types.TagSet) []string {
	var names []string
	for tag := types.TagEngineer; tag <= types.TagWrongPlaceSurvivor; tag <<= 1 {
		if set.Has(tag) {
			names = append(names, tag.String())
		}
	}
	return names
}

// DebugLines dumps run bookkeeping: seed, RNG position, generation and
// anything pending. Resources outside their caps are flagged.
func DebugLines(e *engine.Engine) []string {
	st := e.State
	lines := []string{
		fmt.Sprintf("Seed: %d  RNG position: %d", st.RNGSeed, e.RNG.Position()),
		fmt.Sprintf("Generation: %d  Sector: %d  Actions: %d", st.Run.Generation, st.Run.Sector, st.Run.Actions),
		fmt.Sprintf("Starvation: %d", st.Run.Starvation),
	}
	if r := &st.Resources; !ledger.Valid(r) {
		lines = append(lines, fmt.Sprintf("Resources out of bounds: E%d/%d S%d/%d R%d/%d",
			r.Energy, ledger.Cap(r, ledger.Energy), r.Salvage, ledger.Cap(r, ledger.Salvage),
			r.Rations, ledger.Cap(r, ledger.Rations)))
	}
	if st.Pending != nil {
		lines = append(lines, fmt.Sprintf("Pending: %s/%s", st.Pending.Category, st.Pending.Entry.ID))
	}
	if len(st.Run.Upgrades) > 0 {
		lines = append(lines, fmt.Sprintf("Upgrades: %v", st.Run.Upgrades))
	}
	if st.Run.GameOver {
		lines = append(lines, "Run over.")
	}
	return lines
}

// HelpLines lists the game commands.
func HelpLines() []string {
	return []string{
		"Commands:",
		"  status (st)          Resources and progress",
		"  crew / decks         Roster and ship systems",
		"  locations (l)        Places in this sector",
		"  warp (jump)          Jump to the next sector",
		"  scan <n>             Survey a location",
		"  eva <n>              Salvage a location",
		"  visit <n> (go to)    Make contact with a location",
		"  choose <n> / <n>     Answer the current encounter",
		"  repair <deck>        Repair a damaged deck",
		"  rest                 Let the crew recover",
		"  colony <n> (land)    Attempt to found the colony",
		"  new                  Start a new run",
	}
}
