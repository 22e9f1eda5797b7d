package encounter

import (
	"math"
	"math/rand"
	"testing"

	"github.com/nathoo/arkfall/types"
)

func table(weights ...float64) []types.EncounterEntry {
	ids := []string{"a", "b", "c", "d", "e"}
	var out []types.EncounterEntry
	for i, w := range weights {
		out = append(out, types.EncounterEntry{ID: ids[i], Weight: w})
	}
	return out
}

// stubRand returns fixed floats in order.
type stubRand struct {
	floats []float64
	ints   []int
}

func (s *stubRand) Float64() float64 {
	f := s.floats[0]
	s.floats = s.floats[1:]
	return f
}

func (s *stubRand) Intn(n int) int {
	i := s.ints[0]
	s.ints = s.ints[1:]
	return i % n
}

func TestSelect_WeightedFairness(t *testing.T) {
	rng := rand.New(rand.NewSource(777))
	tbl := table(1, 1, 2)
	counts := map[string]int{}

	const draws = 100000
	for i := 0; i < draws; i++ {
		// Fresh seen set each draw so the no-repeat filter never applies.
		sel, ok := Select(tbl, map[string]bool{}, rng)
		if !ok {
			t.Fatal("select failed")
		}
		counts[sel.Entry.ID]++
	}

	want := map[string]float64{"a": 0.25, "b": 0.25, "c": 0.50}
	for id, p := range want {
		got := float64(counts[id]) / draws
		if math.Abs(got-p) > 0.01 {
			t.Errorf("%s: frequency %.4f, want %.2f ± 0.01", id, got, p)
		}
	}
}

func TestSelect_CumulativeWalk(t *testing.T) {
	tbl := table(1, 1, 2) // total 4
	tests := []struct {
		roll float64
		want string
	}{
		{0.0, "a"},   // 0 - 1 <= 0
		{0.25, "a"},  // exactly 1 - 1 = 0 -> first reaching wins
		{0.26, "b"},
		{0.5, "b"},
		{0.51, "c"},
		{0.999, "c"},
	}
	for _, tt := range tests {
		sel, _ := Select(tbl, nil, &stubRand{floats: []float64{tt.roll}})
		if sel.Entry.ID != tt.want {
			t.Errorf("roll %.3f: got %s, want %s", tt.roll, sel.Entry.ID, tt.want)
		}
	}
}

func TestSelect_NoRepeatThenFallback(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	tbl := table(1, 1)
	seen := map[string]bool{}

	first, _ := Select(tbl, seen, rng)
	second, _ := Select(tbl, seen, rng)
	if first.Entry.ID == second.Entry.ID {
		t.Fatalf("expected distinct ids, got %s twice", first.Entry.ID)
	}
	if first.Repeated || second.Repeated {
		t.Fatal("first two draws must not be repeats")
	}

	third, ok := Select(tbl, seen, rng)
	if !ok {
		t.Fatal("fallback draw failed")
	}
	if !third.Repeated {
		t.Error("third draw should report repetition")
	}
	if len(seen) != 2 {
		t.Errorf("seen = %v, want 2 ids", seen)
	}
}

func TestSelect_EmptyTable(t *testing.T) {
	if _, ok := Select(nil, map[string]bool{}, rand.New(rand.NewSource(1))); ok {
		t.Error("empty table must fail")
	}
	if _, ok := Select(table(0, 0), map[string]bool{}, rand.New(rand.NewSource(1))); ok {
		t.Error("table without positive weights must fail")
	}
}

func TestUniqueName_AvoidsSeen(t *testing.T) {
	seen := map[string]bool{"Hope": true}
	names := []string{"Hope", "Hope", "Resolve"}
	i := 0
	gen := func() string { n := names[i]; i++; return n }

	if got := UniqueName(gen, seen); got != "Resolve" {
		t.Errorf("UniqueName = %q, want Resolve", got)
	}
	if !seen["Resolve"] {
		t.Error("name should be recorded")
	}
}

func TestUniqueName_BoundedRetry(t *testing.T) {
	seen := map[string]bool{"Hope": true}
	calls := 0
	gen := func() string { calls++; return "Hope" }

	if got := UniqueName(gen, seen); got != "Hope" {
		t.Errorf("UniqueName = %q, want the last duplicate", got)
	}
	if calls != NameAttempts {
		t.Errorf("gen called %d times, want %d", calls, NameAttempts)
	}
}

func TestPoolNamer(t *testing.T) {
	gen := PoolNamer([]string{"x", "y"}, &stubRand{ints: []int{1}})
	if got := gen(); got != "y" {
		t.Errorf("got %q, want y", got)
	}
	if got := PoolNamer(nil, nil)(); got != "" {
		t.Errorf("empty pool gave %q", got)
	}
}
