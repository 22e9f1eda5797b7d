// Package command converts typed player commands into engine calls.
// Intentionally dumb: no NLP, just aliases and pattern matching.
package command

import (
	"sort"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Command is a parsed player command.
type Command struct {
	Verb string
	Args []string
}

// Verbs understood by Session.Execute.
const (
	VerbHelp      = "help"
	VerbStatus    = "status"
	VerbCrew      = "crew"
	VerbDecks     = "decks"
	VerbLocations = "locations"
	VerbWarp      = "warp"
	VerbScan      = "scan"
	VerbEVA       = "eva"
	VerbVisit     = "visit"
	VerbChoose    = "choose"
	VerbRepair    = "repair"
	VerbRest      = "rest"
	VerbColony    = "colony"
	VerbNew       = "new"
)

var verbs = []string{
	VerbHelp, VerbStatus, VerbCrew, VerbDecks, VerbLocations, VerbWarp, VerbScan,
	VerbEVA, VerbVisit, VerbChoose, VerbRepair, VerbRest, VerbColony, VerbNew,
}

var verbAliases = map[string]string{
	// Help
	"h": "help",
	"?": "help",

	// Status
	"st":   "status",
	"stat": "status",
	"res":  "status",

	// Crew / decks
	"roster": "crew",
	"ship":   "decks",
	"deck":   "decks",

	// Locations
	"l":    "locations",
	"look": "locations",
	"map":  "locations",

	// Travel
	"jump": "warp",
	"j":    "warp",

	// Actions
	"survey":    "scan",
	"probe":     "scan",
	"salvage":   "eva",
	"spacewalk": "eva",
	"go":        "visit",
	"explore":   "visit",
	"approach":  "visit",
	"dock":      "visit",
	"c":         "choose",
	"pick":      "choose",
	"fix":       "repair",
	"patch":     "repair",
	"sleep":     "rest",
	"wait":      "rest",
	"z":         "rest",
	"land":      "colony",
	"settle":    "colony",

	// Run
	"restart": "new",
	"reset":   "new",
}

var articles = map[string]bool{
	"the": true, "a": true, "an": true,
}

// Parse converts a raw command string into a Command. A bare number is
// shorthand for choosing that encounter option.
func Parse(input string) Command {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(input)))
	if len(words) == 0 {
		return Command{}
	}

	if len(words) == 1 {
		if _, err := strconv.Atoi(words[0]); err == nil {
			return Command{Verb: VerbChoose, Args: words}
		}
	}

	words = expandMultiWordVerbs(words)

	if alias, ok := verbAliases[words[0]]; ok {
		words[0] = alias
	}

	return Command{Verb: words[0], Args: stripArticles(words[1:])}
}

// expandMultiWordVerbs handles "go to", "land on", "look around" etc.
func expandMultiWordVerbs(words []string) []string {
	if len(words) < 2 {
		return words
	}

	switch words[0] {
	case "go", "head", "fly":
		if words[1] == "to" {
			return append([]string{"visit"}, words[2:]...)
		}
	case "land", "settle":
		if words[1] == "on" || words[1] == "at" {
			return append([]string{"colony"}, words[2:]...)
		}
	case "look":
		if words[1] == "around" {
			return append([]string{"locations"}, words[2:]...)
		}
	case "new":
		if words[1] == "game" || words[1] == "run" {
			return []string{"new"}
		}
	}

	return words
}

func stripArticles(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if !articles[w] {
			result = append(result, w)
		}
	}
	return result
}

// maxSuggestDistance is the furthest edit distance still worth suggesting.
const maxSuggestDistance = 2

// Suggest returns the candidate closest to word by edit distance, if one
// is close enough. Ties go to the alphabetically first candidate.
func Suggest(word string, candidates []string) (string, bool) {
	sorted := append([]string(nil), candidates...)
	sort.Strings(sorted)

	best, bestDist := "", maxSuggestDistance+1
	for _, c := range sorted {
		if d := levenshtein.ComputeDistance(word, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, best != ""
}

// SuggestVerb suggests a canonical verb for a mistyped verb, falling back
// to the longer aliases.
func SuggestVerb(word string) (string, bool) {
	if guess, ok := Suggest(word, verbs); ok {
		return guess, true
	}
	var aliases []string
	for alias := range verbAliases {
		if len(alias) > 2 {
			aliases = append(aliases, alias)
		}
	}
	return Suggest(word, aliases)
}
