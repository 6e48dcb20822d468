package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"termslots/internal/game"
)

func sampleHistory(start time.Time) []game.SpinResult {
	return []game.SpinResult{
		{Symbols: game.Payline{game.Cherry, game.Lemon, game.Orange}, Bet: 10, Win: 0, Timestamp: start},
		{Symbols: game.Payline{game.Cherry, game.Cherry, game.Cherry}, Bet: 10, Win: 20, Timestamp: start.Add(time.Second)},
		{Symbols: game.Payline{game.Star, game.Star, game.Star}, Bet: 10, Win: 1500, Timestamp: start.Add(2 * time.Second), Jackpot: true, JackpotAmount: 1000},
		{Symbols: game.Payline{game.Grape, game.Lemon, game.Dice}, Bet: 20, Win: 0, Timestamp: start.Add(3 * time.Second)},
	}
}

func TestSummarize(t *testing.T) {
	start := time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC)
	now := start.Add(time.Minute)

	s := Summarize(sampleHistory(start), start, now)

	assert.Equal(t, 4, s.Spins)
	assert.Equal(t, 2, s.Wins)
	assert.Equal(t, 1, s.Jackpots)
	assert.InDelta(t, 0.5, s.WinRate, 1e-9)
	assert.Equal(t, int64(50), s.TotalWagered)
	assert.Equal(t, int64(1520), s.TotalWon)
	assert.Equal(t, int64(1470), s.NetProfit)
	assert.InDelta(t, 30.4, s.RTP, 1e-9)
	assert.Equal(t, int64(1500), s.BiggestWin)
	assert.InDelta(t, 760.0, s.AverageWin, 1e-9)
	assert.Equal(t, time.Minute, s.Duration)
	assert.Equal(t, 4, s.SymbolCounts[game.Cherry])
	assert.Equal(t, 3, s.SymbolCounts[game.Star])
}

func TestSummarizeEmpty(t *testing.T) {
	now := time.Now()
	s := Summarize(nil, now, now)

	assert.Zero(t, s.Spins)
	assert.Zero(t, s.WinRate)
	assert.Zero(t, s.RTP)
	assert.Zero(t, s.AverageWin)
	assert.Zero(t, s.WinStdDev)
}

func TestBalanceSeries(t *testing.T) {
	start := time.Now()
	series := BalanceSeries(1000, sampleHistory(start))

	assert.Equal(t, []int64{1000, 990, 1000, 2490, 2470}, series)
}

func TestSparkline(t *testing.T) {
	assert.Equal(t, "", Sparkline(nil, 10))
	assert.Equal(t, "▁█", Sparkline([]int64{0, 100}, 10))

	// A flat series renders at the floor.
	assert.Equal(t, "▁▁▁", Sparkline([]int64{5, 5, 5}, 10))

	// Longer series are downsampled to the requested width.
	long := make([]int64, 100)
	for i := range long {
		long[i] = int64(i)
	}
	got := Sparkline(long, 10)
	assert.Len(t, []rune(got), 10)
}
