package game

import (
	"math/rand"
	"testing"
	"time"

	"pgregory.net/rapid"
)

// TestBetClampProperty checks the bet invariant under arbitrary adjustment
// sequences: MinBet <= bet <= MaxBet always, and bet <= balance whenever
// the balance can cover the minimum bet.
func TestBetClampProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := testConfig()
		e := NewEngine(cfg, rand.New(rand.NewSource(1)), nil)
		e.balance = rapid.Int64Range(0, 5000).Draw(t, "balance")

		n := rapid.IntRange(1, 20).Draw(t, "adjustments")
		for i := 0; i < n; i++ {
			e.AdjustBet(rapid.Int64Range(-200, 200).Draw(t, "delta"))

			if e.bet < cfg.MinBet || e.bet > cfg.MaxBet {
				t.Fatalf("bet %d outside [%d, %d]", e.bet, cfg.MinBet, cfg.MaxBet)
			}
			if e.balance >= cfg.MinBet && e.bet > e.balance {
				t.Fatalf("bet %d exceeds balance %d", e.bet, e.balance)
			}
		}
	})
}

// TestConservationProperty checks that any completed spin settles exactly
// new_balance = old_balance - bet + win, for arbitrary seeds and bets.
func TestConservationProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := testConfig()
		e := NewEngine(cfg, rand.New(rand.NewSource(rapid.Int64().Draw(t, "seed"))), nil)
		e.AdjustBet(rapid.Int64Range(-20, 100).Draw(t, "betDelta"))

		before := e.balance
		now := time.Unix(0, 0)
		if err := e.StartOrStopAuto(now); err != nil {
			t.Fatalf("StartOrStopAuto: %v", err)
		}
		for i := 0; i < 1000 && e.state != StateIdle; i++ {
			_ = e.Tick(now)
			now = now.Add(time.Millisecond)
		}
		if e.state != StateIdle {
			t.Fatal("spin never settled")
		}

		r, ok := e.history.Last()
		if !ok {
			t.Fatal("no history entry after settled spin")
		}
		if e.balance != before-r.Bet+r.Win {
			t.Fatalf("balance %d != %d - %d + %d", e.balance, before, r.Bet, r.Win)
		}
	})
}

// TestJackpotPoolProperty checks the pool transition for any spin outcome:
// reset to seed on jackpots, grown by the increment otherwise.
func TestJackpotPoolProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := testConfig()
		e := NewEngine(cfg, rand.New(rand.NewSource(rapid.Int64().Draw(t, "seed"))), nil)

		pool := e.jackpot
		now := time.Unix(0, 0)
		if err := e.StartOrStopAuto(now); err != nil {
			t.Fatalf("StartOrStopAuto: %v", err)
		}
		for i := 0; i < 1000 && e.state != StateIdle; i++ {
			_ = e.Tick(now)
			now = now.Add(time.Millisecond)
		}

		r, _ := e.history.Last()
		if r.Jackpot {
			if e.jackpot != cfg.JackpotSeed {
				t.Fatalf("pool %d after jackpot, want seed %d", e.jackpot, cfg.JackpotSeed)
			}
		} else if e.jackpot != pool+cfg.JackpotIncrement {
			t.Fatalf("pool %d, want %d", e.jackpot, pool+cfg.JackpotIncrement)
		}
	})
}
