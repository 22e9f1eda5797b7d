// Package crew implements the five-member roster, the stress-driven trait
// and breakdown machine, and passive healing.
package crew

import "github.com/nathoo/arkfall/types"

// Stress tiers.
const (
	TraitThreshold     = 2
	BreakdownThreshold = types.MaxStress
	HealTurns          = 3
)

// NewRoster returns the starting crew: a commander plus one member of each
// personality archetype.
func NewRoster() []types.CrewMember {
	return []types.CrewMember{
		{
			ID: "okafor", Name: "Adaeze Okafor", Alias: "Commander", Age: 46, Portrait: "okafor",
			Personality: types.PersonalityNone,
			Tags:        types.TagSet(0).With(types.TagLeader),
		},
		{
			ID: "reyes", Name: "Tomas Reyes", Alias: "Wrench", Age: 38, Portrait: "reyes",
			Personality: types.PersonalityVolatile,
			Tags:        types.TagSet(0).With(types.TagEngineer),
		},
		{
			ID: "sato", Name: "Mira Sato", Alias: "Doc", Age: 41, Portrait: "sato",
			Personality: types.PersonalityWithdrawn,
			Tags:        types.TagSet(0).With(types.TagMedic),
		},
		{
			ID: "brandt", Name: "Ivo Brandt", Alias: "Sarge", Age: 52, Portrait: "brandt",
			Personality: types.PersonalityDefiant,
			Tags:        types.TagSet(0).With(types.TagSecurity),
		},
		{
			ID: "voss", Name: "Lena Voss", Alias: "Prof", Age: 33, Portrait: "voss",
			Personality: types.PersonalityFixated,
			Tags:        types.TagSet(0).With(types.TagSpecialist),
		},
	}
}

// Find returns the index of the member with the given ID, or -1.
func Find(roster []types.CrewMember, id string) int {
	for i := range roster {
		if roster[i].ID == id {
			return i
		}
	}
	return -1
}

// Living returns the indices of every living member.
func Living(roster []types.CrewMember) []int {
	var out []int
	for i := range roster {
		if roster[i].Alive() {
			out = append(out, i)
		}
	}
	return out
}

// LivingCount returns the number of living members.
func LivingCount(roster []types.CrewMember) int {
	return len(Living(roster))
}

// HasLivingRole reports whether any living member carries the tag.
func HasLivingRole(roster []types.CrewMember, tag types.Tag) bool {
	for _, m := range roster {
		if m.Alive() && m.Tags.Has(tag) {
			return true
		}
	}
	return false
}

// AnyTrait reports whether any living member holds the trait.
func AnyTrait(roster []types.CrewMember, trait types.Trait) bool {
	for _, m := range roster {
		if m.Alive() && m.Trait == trait {
			return true
		}
	}
	return false
}

// CountTag returns how many living members carry the tag.
func CountTag(roster []types.CrewMember, tag types.Tag) int {
	n := 0
	for _, m := range roster {
		if m.Alive() && m.Tags.Has(tag) {
			n++
		}
	}
	return n
}

// MeanStress returns the mean stress of the living members, 0 if none.
func MeanStress(roster []types.CrewMember) float64 {
	total, n := 0, 0
	for _, m := range roster {
		if m.Alive() {
			total += m.Stress
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(total) / float64(n)
}

// PickRandom returns the index of a uniformly chosen living member that
// satisfies keep (nil keeps everyone).
func PickRandom(roster []types.CrewMember, rng types.Rand, keep func(types.CrewMember) bool) (int, bool) {
	var candidates []int
	for _, i := range Living(roster) {
		if keep == nil || keep(roster[i]) {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return -1, false
	}
	return candidates[rng.Intn(len(candidates))], true
}

// Injure moves a healthy member to INJURED. Returns false if the member
// was not healthy.
func Injure(m *types.CrewMember) bool {
	if m.Status != types.CrewHealthy {
		return false
	}
	m.Status = types.CrewInjured
	m.HealCounter = 0
	return true
}

// Heal moves an injured member back to HEALTHY.
func Heal(m *types.CrewMember) bool {
	if m.Status != types.CrewInjured {
		return false
	}
	m.Status = types.CrewHealthy
	m.HealCounter = 0
	return true
}

// Kill marks a living member DEAD.
func Kill(m *types.CrewMember) bool {
	if !m.Alive() {
		return false
	}
	m.Status = types.CrewDead
	m.HealCounter = 0
	return true
}

// Revive is the one narrative exception to DEAD being terminal: the member
// returns HEALTHY and unstressed, marked with tag.
func Revive(m *types.CrewMember, tag types.Tag) bool {
	if m.Alive() {
		return false
	}
	m.Status = types.CrewHealthy
	m.Stress = 0
	m.Trait = types.TraitNone
	m.BreakdownFired = false
	m.HealCounter = 0
	m.Tags = m.Tags.With(tag)
	return true
}

// AdjustStress adds delta to a living member's stress, clamped to
// [0, MaxStress]. Returns the change applied.
func AdjustStress(m *types.CrewMember, delta int) int {
	if !m.Alive() {
		return 0
	}
	before := m.Stress
	m.Stress = clampStress(m.Stress + delta)
	return m.Stress - before
}

// SetStress sets a living member's stress, clamped to [0, MaxStress].
func SetStress(m *types.CrewMember, level int) {
	if !m.Alive() {
		return
	}
	m.Stress = clampStress(level)
}

func clampStress(v int) int {
	if v < 0 {
		return 0
	}
	if v > types.MaxStress {
		return types.MaxStress
	}
	return v
}
