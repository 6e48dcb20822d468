package game

import "time"

// SpinResult is the immutable record of one completed spin. Aborted spins
// never produce a result.
type SpinResult struct {
	Symbols       Payline   // payline at settlement
	Bet           int64     // amount wagered
	Win           int64     // amount credited (includes the pool on jackpots)
	Timestamp     time.Time // when the spin settled
	Jackpot       bool      // whether the spin hit the jackpot
	JackpotAmount int64     // pool portion paid out; zero unless Jackpot
}

// History is a bounded, append-only log of completed spins. Once full, the
// oldest entry is evicted first.
type History struct {
	entries []SpinResult
	limit   int
}

// NewHistory creates a history holding at most limit entries.
func NewHistory(limit int) *History {
	if limit < 1 {
		limit = 1
	}
	return &History{limit: limit}
}

// Append records a completed spin, evicting the oldest entry when full.
func (h *History) Append(r SpinResult) {
	if len(h.entries) >= h.limit {
		h.entries = h.entries[1:]
	}
	h.entries = append(h.entries, r)
}

// Len returns the number of recorded spins.
func (h *History) Len() int {
	return len(h.entries)
}

// Results returns a copy of the recorded spins, most recent last.
func (h *History) Results() []SpinResult {
	out := make([]SpinResult, len(h.entries))
	copy(out, h.entries)
	return out
}

// Last returns the most recent result, if any.
func (h *History) Last() (SpinResult, bool) {
	if len(h.entries) == 0 {
		return SpinResult{}, false
	}
	return h.entries[len(h.entries)-1], true
}
