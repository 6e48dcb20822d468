// Package stats derives session statistics from the spin history. It only
// ever consumes read-only copies of engine data.
package stats

import (
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"

	"termslots/internal/game"
)

// Summary aggregates one session's spin history.
type Summary struct {
	Spins        int
	Wins         int
	Jackpots     int
	WinRate      float64 // wins / spins
	TotalWagered int64
	TotalWon     int64
	NetProfit    int64
	RTP          float64 // total won / total wagered
	BiggestWin   int64
	AverageWin   float64 // mean over winning spins
	WinStdDev    float64 // stddev over winning spins
	Duration     time.Duration
	SymbolCounts map[game.Symbol]int // payline appearances per symbol
}

// Summarize computes a Summary over the given history.
func Summarize(history []game.SpinResult, sessionStart, now time.Time) Summary {
	s := Summary{
		Spins:        len(history),
		Duration:     now.Sub(sessionStart),
		SymbolCounts: make(map[game.Symbol]int),
	}

	var winAmounts []float64
	for _, r := range history {
		s.TotalWagered += r.Bet
		s.TotalWon += r.Win
		if r.Jackpot {
			s.Jackpots++
		}
		if r.Win > 0 {
			s.Wins++
			winAmounts = append(winAmounts, float64(r.Win))
		}
		if r.Win > s.BiggestWin {
			s.BiggestWin = r.Win
		}
		for _, sym := range r.Symbols {
			s.SymbolCounts[sym]++
		}
	}

	s.NetProfit = s.TotalWon - s.TotalWagered
	if s.Spins > 0 {
		s.WinRate = float64(s.Wins) / float64(s.Spins)
	}
	if s.TotalWagered > 0 {
		s.RTP = float64(s.TotalWon) / float64(s.TotalWagered)
	}
	if len(winAmounts) > 0 {
		s.AverageWin = stat.Mean(winAmounts, nil)
	}
	if len(winAmounts) > 1 {
		s.WinStdDev = stat.StdDev(winAmounts, nil)
	}
	return s
}

// BalanceSeries reconstructs the running balance after each spin, starting
// from the session's initial balance.
func BalanceSeries(initial int64, history []game.SpinResult) []int64 {
	series := make([]int64, 0, len(history)+1)
	series = append(series, initial)
	balance := initial
	for _, r := range history {
		balance += r.Win - r.Bet
		series = append(series, balance)
	}
	return series
}

// sparkRunes maps normalized values onto eighth-block characters.
var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders a series as a block-character strip at most width cells
// wide, downsampling evenly when the series is longer.
func Sparkline(series []int64, width int) string {
	if len(series) == 0 || width < 1 {
		return ""
	}
	if len(series) > width {
		sampled := make([]int64, width)
		for i := range sampled {
			sampled[i] = series[i*len(series)/width]
		}
		series = sampled
	}

	lo, hi := series[0], series[0]
	for _, v := range series {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	var b strings.Builder
	for _, v := range series {
		idx := 0
		if hi > lo {
			idx = int(int64(len(sparkRunes)-1) * (v - lo) / (hi - lo))
		}
		b.WriteRune(sparkRunes[idx])
	}
	return b.String()
}
