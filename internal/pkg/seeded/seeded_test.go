package seeded

import "testing"

func TestSameSeedSameSequence(t *testing.T) {
	a := New("signal-hud")
	b := New("signal-hud")

	for i := 0; i < 100; i++ {
		if a.Next() != b.Next() {
			t.Fatalf("sequences diverged at step %d", i)
		}
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := New("feed:row:1")
	b := New("feed:row:2")

	same := 0
	for i := 0; i < 20; i++ {
		if a.Next() == b.Next() {
			same++
		}
	}
	if same == 20 {
		t.Fatal("different seeds produced identical sequences")
	}
}

func TestFloat64Range(t *testing.T) {
	s := New("glow")
	for i := 0; i < 1000; i++ {
		v := s.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("Float64() = %v, out of [0,1)", v)
		}
	}
}

func TestShuffleDeterministic(t *testing.T) {
	order := func(seed string) []int {
		idx := []int{0, 1, 2, 3, 4, 5, 6, 7}
		New(seed).Shuffle(len(idx), func(i, j int) {
			idx[i], idx[j] = idx[j], idx[i]
		})
		return idx
	}

	first := order("ticker")
	second := order("ticker")
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("shuffle not deterministic at %d: %v vs %v", i, first, second)
		}
	}
}
