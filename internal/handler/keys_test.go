package handler

import (
	"math/rand"
	"testing"
	"time"

	"termslots/internal/game"
	"termslots/internal/ui"
)

func newTestHandler() (*KeyHandler, *game.Engine) {
	cfg := game.DefaultConfig()
	cfg.Anim = game.AnimConfig{FastSteps: 2, StaggerSteps: 1, SlowSteps: 1}
	cfg.NearMissChance = 0
	e := game.NewEngine(cfg, rand.New(rand.NewSource(1)), nil)
	return New(e, 10), e
}

func TestHandleQuit(t *testing.T) {
	h, _ := newTestHandler()
	if !h.Handle(ui.KeyQuit, time.Now()) {
		t.Error("quit key did not request exit")
	}
}

func TestHandleBetKeys(t *testing.T) {
	h, e := newTestHandler()
	now := time.Now()

	h.Handle(ui.KeyUp, now)
	if got := e.Snapshot().Bet; got != 20 {
		t.Errorf("bet after up = %d, want 20", got)
	}
	h.Handle(ui.KeyDown, now)
	if got := e.Snapshot().Bet; got != 10 {
		t.Errorf("bet after down = %d, want 10", got)
	}
}

func TestHandleModeKeysFollowView(t *testing.T) {
	h, e := newTestHandler()
	now := time.Now()

	h.Handle(ui.KeyRight, now)
	if got := e.Snapshot().Mode; got != game.ModeFive {
		t.Errorf("mode = %v, want %v", got, game.ModeFive)
	}

	// In the stats view the same keys cycle tabs, not modes.
	h.Handle(ui.KeyTab, now)
	if !h.ShowStats() {
		t.Fatal("tab did not open the stats view")
	}
	h.Handle(ui.KeyRight, now)
	if got := e.Snapshot().Mode; got != game.ModeFive {
		t.Errorf("mode changed from the stats view to %v", got)
	}
	if h.Tab() != ui.TabHistory {
		t.Errorf("tab = %v, want %v", h.Tab(), ui.TabHistory)
	}

	h.Handle(ui.KeyTab, now)
	if h.ShowStats() {
		t.Error("second tab press did not close the stats view")
	}
}

func TestHandleSpaceStartsSpin(t *testing.T) {
	h, e := newTestHandler()

	h.Handle(ui.KeySpace, time.Now())
	if snap := e.Snapshot(); snap.State != game.StateSpinning {
		t.Errorf("state = %v after space, want spinning", snap.State)
	}
}
