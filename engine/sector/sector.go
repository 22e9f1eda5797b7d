// Package sector generates the encounterable locations of a sector. It is
// the location collaborator the front ends use: the core only reads the
// metrics of what it produces.
package sector

import (
	"fmt"

	"github.com/nathoo/arkfall/engine/encounter"
	"github.com/nathoo/arkfall/types"
)

// Size is the number of locations generated per sector.
const Size = 3

// MaxDanger is the upper bound of a location's danger rating.
const MaxDanger = 10

// habitableDanger is the highest danger a colony world can have and still
// take a landing.
const habitableDanger = 5

var namePrefixes = []string{
	"Kepler", "Gliese", "Tau", "Vela", "Lacaille", "Ross", "Wolf", "Luyten", "Proxima", "Teegarden",
}

var nameSuffixes = []string{"b", "c", "d", "e", "f", "II", "III", "IV", "Prime", "Minor"}

var categoryTags = map[types.Category][]string{
	types.CategoryExodus:   {"distress beacon", "engine wake"},
	types.CategoryColony:   {"liquid water", "breathable air", "tectonic activity", "dense biosphere"},
	types.CategoryDerelict: {"hull breach", "cold reactor", "sealed cargo"},
	types.CategoryAnomaly:  {"gravity shear", "radio silence", "temporal echo"},
	types.CategoryAsteroid: {"ice deposits", "heavy metals", "unstable orbit"},
	types.CategoryStation:  {"docking lights", "automated defences", "trade signal"},
}

// Generate returns the locations of sector n. Names already used this run
// are avoided where possible and recorded in seenNames. Danger rises
// slowly with depth.
func Generate(n int, rng types.Rand, seenNames map[string]bool) []types.Location {
	namer := func() string {
		return namePrefixes[rng.Intn(len(namePrefixes))] + " " +
			fmt.Sprint(100+rng.Intn(900)) + nameSuffixes[rng.Intn(len(nameSuffixes))]
	}

	locs := make([]types.Location, 0, Size)
	for i := 0; i < Size; i++ {
		cat := types.Categories[rng.Intn(len(types.Categories))]
		danger := rng.Intn(4) + n/3
		if danger > MaxDanger {
			danger = MaxDanger
		}
		locs = append(locs, types.Location{
			ID:           fmt.Sprintf("s%d-%d", n, i+1),
			Name:         encounter.UniqueName(namer, seenNames),
			Category:     cat,
			Danger:       danger,
			EnergyLevel:  rng.Intn(4),
			SalvageLevel: rng.Intn(4),
			RationLevel:  rng.Intn(4),
			Tags:         pickTags(categoryTags[cat], rng),
		})
	}
	return locs
}

func pickTags(pool []string, rng types.Rand) []string {
	var tags []string
	for _, t := range pool {
		if rng.Intn(2) == 0 {
			tags = append(tags, t)
		}
	}
	return tags
}

// Habitable is the planet-suitability rule: only calm colony worlds take
// a landing.
func Habitable(loc types.Location) bool {
	return loc.Category == types.CategoryColony && loc.Danger <= habitableDanger
}
