package game

import (
	"math/rand"
)

const (
	// NumReels is the number of reels on the machine.
	NumReels = 3

	// WindowSize is the number of symbols visible per reel
	// (above, payline, below).
	WindowSize = 3

	// maxShuffleAttempts bounds the random search for a strip arrangement
	// with no adjacent duplicates before the repair pass takes over.
	maxShuffleAttempts = 100
)

// stripCounts is the weighted symbol distribution of a reel strip. Common
// fruit symbols dominate; the wild appears exactly once per reel.
var stripCounts = []struct {
	sym   Symbol
	count int
}{
	{Cherry, 5},
	{Lemon, 5},
	{Orange, 4},
	{Grape, 3},
	{Diamond, 3},
	{Money, 2},
	{Dice, 2},
	{Star, 1},
}

// Reel is a fixed-length circular strip of symbols with a position cursor.
// The strip is arranged once at construction so that no two adjacent
// positions (wrap-around included) hold the same symbol.
type Reel struct {
	symbols []Symbol
	pos     int
}

// NewReel builds a reel using the weighted strip distribution.
func NewReel(rng *rand.Rand) *Reel {
	return &Reel{symbols: arrangeStrip(rng)}
}

// Rotate advances the reel by exactly one position.
func (r *Reel) Rotate() {
	r.pos = (r.pos + 1) % len(r.symbols)
}

// Window returns the three visible symbols: above, payline, below.
func (r *Reel) Window() [WindowSize]Symbol {
	return [WindowSize]Symbol{r.at(-1), r.at(0), r.at(1)}
}

// Payline returns the symbol currently on the payline (middle row).
func (r *Reel) Payline() Symbol {
	return r.at(0)
}

// Len returns the strip length.
func (r *Reel) Len() int {
	return len(r.symbols)
}

func (r *Reel) at(offset int) Symbol {
	n := len(r.symbols)
	return r.symbols[((r.pos+offset)%n+n)%n]
}

// nudge shifts the position cursor by offset without a spin. Used by the
// engine's cosmetic near-miss adjustment only.
func (r *Reel) nudge(offset int) {
	n := len(r.symbols)
	r.pos = ((r.pos+offset)%n + n) % n
}

// arrangeStrip shuffles the weighted symbol multiset until no two adjacent
// positions match. If the bounded random search fails, a deterministic
// local-swap repair fixes the remaining duplicates.
func arrangeStrip(rng *rand.Rand) []Symbol {
	strip := make([]Symbol, 0)
	for _, sc := range stripCounts {
		for i := 0; i < sc.count; i++ {
			strip = append(strip, sc.sym)
		}
	}

	for attempt := 0; attempt < maxShuffleAttempts; attempt++ {
		rng.Shuffle(len(strip), func(i, j int) {
			strip[i], strip[j] = strip[j], strip[i]
		})
		if !hasAdjacentDuplicates(strip) {
			return strip
		}
	}

	repairStrip(strip)
	return strip
}

// hasAdjacentDuplicates reports whether any two neighbouring strip positions
// (including the wrap-around edge) hold the same symbol.
func hasAdjacentDuplicates(strip []Symbol) bool {
	for i := range strip {
		if strip[i] == strip[(i+1)%len(strip)] {
			return true
		}
	}
	return false
}

// repairStrip resolves adjacent duplicates in place by swapping each
// offending position with the first position where the swap leaves both
// neighbourhoods duplicate-free. The weighted distribution keeps every
// symbol at or below half the strip, so a clean arrangement always exists.
func repairStrip(strip []Symbol) {
	n := len(strip)
	for pass := 0; pass < 4*n && hasAdjacentDuplicates(strip); pass++ {
		for i := 0; i < n; i++ {
			next := (i + 1) % n
			if strip[i] != strip[next] {
				continue
			}
			for j := 0; j < n; j++ {
				if j == i || j == next {
					continue
				}
				strip[next], strip[j] = strip[j], strip[next]
				if cleanAround(strip, next) && cleanAround(strip, j) {
					break
				}
				strip[next], strip[j] = strip[j], strip[next]
			}
		}
	}
}

// cleanAround reports whether position i matches neither of its neighbours.
func cleanAround(strip []Symbol, i int) bool {
	n := len(strip)
	return strip[i] != strip[(i+1)%n] && strip[i] != strip[(i-1+n)%n]
}

// Grid is the full visible window of the machine: one row of WindowSize
// symbols per reel.
type Grid [NumReels][WindowSize]Symbol

// ReelSet owns the machine's reels and their shared spinning flag. All
// reels start and stop together; per-tick rotation is gated by the flag.
type ReelSet struct {
	reels    [NumReels]*Reel
	spinning bool
}

// NewReelSet builds the fixed set of three reels.
func NewReelSet(rng *rand.Rand) *ReelSet {
	rs := &ReelSet{}
	for i := range rs.reels {
		rs.reels[i] = NewReel(rng)
	}
	return rs
}

// StartSpin marks the set as spinning. Idempotent.
func (rs *ReelSet) StartSpin() {
	rs.spinning = true
}

// StopSpin clears the spinning flag. Idempotent.
func (rs *ReelSet) StopSpin() {
	rs.spinning = false
}

// Spinning reports whether the set is currently spinning.
func (rs *ReelSet) Spinning() bool {
	return rs.spinning
}

// Tick rotates every reel by one step while spinning; otherwise a no-op.
func (rs *ReelSet) Tick() {
	if !rs.spinning {
		return
	}
	for _, r := range rs.reels {
		r.Rotate()
	}
}

// Visible returns the 3x3 grid of currently visible symbols.
func (rs *ReelSet) Visible() Grid {
	var g Grid
	for i, r := range rs.reels {
		g[i] = r.Window()
	}
	return g
}

// Payline returns the middle-row symbol of each reel.
func (rs *ReelSet) Payline() Payline {
	var line Payline
	for i, r := range rs.reels {
		line[i] = r.Payline()
	}
	return line
}

// EvaluatePayline scores the current payline against the paytable.
func (rs *ReelSet) EvaluatePayline(bet int64) (win int64, jackpot bool) {
	return Evaluate(rs.Payline(), bet)
}
