// Package handler routes decoded key events to engine mutations and view
// state. It is the only writer of engine state besides the game loop's Tick.
package handler

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"termslots/internal/game"
	"termslots/internal/ui"
)

// KeyHandler applies player intents to the engine and tracks which view
// (machine or statistics) is active.
type KeyHandler struct {
	engine    *game.Engine
	betStep   int64
	showStats bool
	tab       ui.StatsTab
}

// New creates a KeyHandler driving the given engine. betStep is the bet
// delta applied per arrow press.
func New(engine *game.Engine, betStep int64) *KeyHandler {
	if betStep <= 0 {
		betStep = 10
	}
	return &KeyHandler{engine: engine, betStep: betStep}
}

// Handle applies one key event. It returns true when the player quit.
func (h *KeyHandler) Handle(k ui.Key, now time.Time) (quit bool) {
	switch k {
	case ui.KeyQuit:
		h.engine.RequestStop()
		return true
	case ui.KeySpace:
		if err := h.engine.StartOrStopAuto(now); err != nil {
			if errors.Is(err, game.ErrInsufficientFunds) {
				log.Warn().Msg("Spin declined: insufficient funds")
			}
		}
	case ui.KeyUp:
		h.engine.AdjustBet(h.betStep)
	case ui.KeyDown:
		h.engine.AdjustBet(-h.betStep)
	case ui.KeyLeft:
		if h.showStats {
			h.tab = h.tab.Next(-1)
		} else {
			h.engine.CycleMode(-1)
		}
	case ui.KeyRight:
		if h.showStats {
			h.tab = h.tab.Next(1)
		} else {
			h.engine.CycleMode(1)
		}
	case ui.KeyTab:
		h.showStats = !h.showStats
	}
	return false
}

// ShowStats reports whether the statistics view is active.
func (h *KeyHandler) ShowStats() bool {
	return h.showStats
}

// Tab returns the active statistics tab.
func (h *KeyHandler) Tab() ui.StatsTab {
	return h.tab
}
