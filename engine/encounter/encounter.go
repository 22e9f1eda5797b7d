// Package encounter implements weighted, no-repeat selection over any
// encounter content table, plus bounded-retry display name generation.
// The same algorithm serves every category.
package encounter

import "github.com/nathoo/arkfall/types"

// NameAttempts bounds how many names are generated looking for an unseen one.
const NameAttempts = 10

// Selection is the result of a draw.
type Selection struct {
	Entry types.EncounterEntry
	// Repeated is true when every entry had been seen and the draw fell
	// back to the full table.
	Repeated bool
}

// Select draws one entry from table, preferring entries whose ID is not in
// seen. The chosen ID is recorded in seen. Returns false when the table has
// no selectable entry.
func Select(table []types.EncounterEntry, seen map[string]bool, rng types.Rand) (Selection, bool) {
	var fresh []types.EncounterEntry
	for _, e := range table {
		if e.Weight > 0 && !seen[e.ID] {
			fresh = append(fresh, e)
		}
	}

	candidates, repeated := fresh, false
	if len(candidates) == 0 {
		candidates, repeated = table, true
	}

	entry, ok := draw(candidates, rng)
	if !ok {
		return Selection{}, false
	}
	if seen != nil {
		seen[entry.ID] = true
	}
	return Selection{Entry: entry, Repeated: repeated}, true
}

// draw is a cumulative-weight draw: a value in [0, total) is walked down
// by each weight until it goes non-positive.
func draw(entries []types.EncounterEntry, rng types.Rand) (types.EncounterEntry, bool) {
	total := 0.0
	last := -1
	for i, e := range entries {
		if e.Weight > 0 {
			total += e.Weight
			last = i
		}
	}
	if last < 0 {
		return types.EncounterEntry{}, false
	}

	roll := rng.Float64() * total
	for _, e := range entries {
		if e.Weight <= 0 {
			continue
		}
		roll -= e.Weight
		if roll <= 0 {
			return e, true
		}
	}
	// Float rounding can leave a sliver past the final entry.
	return entries[last], true
}

// UniqueName calls gen until it produces a name not in seen, giving up
// after NameAttempts and keeping the last name. The result is recorded.
func UniqueName(gen func() string, seen map[string]bool) string {
	var name string
	for attempt := 0; attempt < NameAttempts; attempt++ {
		name = gen()
		if !seen[name] {
			break
		}
	}
	if seen != nil {
		seen[name] = true
	}
	return name
}

// PoolNamer returns a generator drawing uniformly from pool.
func PoolNamer(pool []string, rng types.Rand) func() string {
	return func() string {
		if len(pool) == 0 {
			return ""
		}
		return pool[rng.Intn(len(pool))]
	}
}
