package game

import (
	"math/rand"
	"testing"

	"pgregory.net/rapid"
)

// TestReelAdjacencyProperty checks that for any construction seed, no two
// adjacent strip positions (wrap-around included) hold the same symbol.
func TestReelAdjacencyProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Int64().Draw(t, "seed")
		r := NewReel(rand.New(rand.NewSource(seed)))

		if hasAdjacentDuplicates(r.symbols) {
			t.Fatalf("seed %d produced adjacent duplicates: %v", seed, r.symbols)
		}
	})
}

// TestReelRotationAdjacencyProperty checks that rotation never disturbs the
// strip arrangement: the adjacency invariant holds at every position.
func TestReelRotationAdjacencyProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Int64().Draw(t, "seed")
		steps := rapid.IntRange(0, 200).Draw(t, "steps")

		r := NewReel(rand.New(rand.NewSource(seed)))
		for i := 0; i < steps; i++ {
			r.Rotate()
			w := r.Window()
			if w[0] == w[1] || w[1] == w[2] {
				t.Fatalf("adjacent duplicate in window %v after %d steps", w, i+1)
			}
		}
	})
}
