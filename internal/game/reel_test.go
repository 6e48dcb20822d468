package game

import (
	"math/rand"
	"testing"
)

func TestReelStripCounts(t *testing.T) {
	r := NewReel(rand.New(rand.NewSource(1)))

	counts := make(map[Symbol]int)
	for _, s := range r.symbols {
		counts[s]++
	}

	for _, sc := range stripCounts {
		if counts[sc.sym] != sc.count {
			t.Errorf("strip has %d x %s, want %d", counts[sc.sym], sc.sym.Name(), sc.count)
		}
	}
	if r.Len() != 25 {
		t.Errorf("strip length = %d, want 25", r.Len())
	}
}

func TestReelRotateWrapsAround(t *testing.T) {
	r := NewReel(rand.New(rand.NewSource(2)))
	start := r.Window()

	for i := 0; i < r.Len(); i++ {
		r.Rotate()
	}
	if r.Window() != start {
		t.Errorf("full rotation changed the window: %v -> %v", start, r.Window())
	}
}

func TestReelWindowOrder(t *testing.T) {
	r := NewReel(rand.New(rand.NewSource(3)))
	r.pos = 5

	w := r.Window()
	if w[0] != r.symbols[4] || w[1] != r.symbols[5] || w[2] != r.symbols[6] {
		t.Errorf("window = %v, want [above current below] around position 5", w)
	}
	if w[1] != r.Payline() {
		t.Errorf("payline %v is not the middle of the window %v", r.Payline(), w)
	}
}

func TestReelWindowAtZeroWrapsBackwards(t *testing.T) {
	r := NewReel(rand.New(rand.NewSource(4)))
	r.pos = 0

	w := r.Window()
	if w[0] != r.symbols[r.Len()-1] {
		t.Errorf("window above at position 0 = %v, want last strip symbol %v", w[0], r.symbols[r.Len()-1])
	}
}

func TestRepairStripResolvesDuplicates(t *testing.T) {
	// Worst case: the multiset fully sorted, maximally clustered.
	strip := make([]Symbol, 0, 25)
	for _, sc := range stripCounts {
		for i := 0; i < sc.count; i++ {
			strip = append(strip, sc.sym)
		}
	}

	repairStrip(strip)
	if hasAdjacentDuplicates(strip) {
		t.Errorf("repair left adjacent duplicates: %v", strip)
	}
}

func TestReelSetTickOnlyWhileSpinning(t *testing.T) {
	rs := NewReelSet(rand.New(rand.NewSource(5)))

	before := rs.Visible()
	rs.Tick()
	if rs.Visible() != before {
		t.Error("Tick rotated reels while not spinning")
	}

	rs.StartSpin()
	rs.Tick()
	if rs.Visible() == before {
		t.Error("Tick did not rotate reels while spinning")
	}
}

func TestReelSetStopSpinIdempotent(t *testing.T) {
	rs := NewReelSet(rand.New(rand.NewSource(6)))
	rs.StartSpin()

	rs.StopSpin()
	state := rs.Visible()
	spinning := rs.Spinning()

	rs.StopSpin()
	if rs.Visible() != state || rs.Spinning() != spinning {
		t.Error("second StopSpin changed state")
	}
}

func TestReelSetPaylineIsMiddleRow(t *testing.T) {
	rs := NewReelSet(rand.New(rand.NewSource(7)))

	grid := rs.Visible()
	line := rs.Payline()
	for i := 0; i < NumReels; i++ {
		if line[i] != grid[i][1] {
			t.Errorf("reel %d payline = %v, middle row = %v", i, line[i], grid[i][1])
		}
	}
}
