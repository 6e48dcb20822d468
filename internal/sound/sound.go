// Package sound plays audible cues for game events using the terminal bell.
// It is strictly fire-and-forget: write failures are swallowed and the game
// behaves identically with sound disabled.
package sound

import (
	"io"

	"termslots/internal/game"
)

// Beeper implements game.Notifier by writing BEL characters.
type Beeper struct {
	out     io.Writer
	enabled bool
}

// NewBeeper creates a Beeper writing to out. A disabled Beeper is silent
// but still valid.
func NewBeeper(out io.Writer, enabled bool) *Beeper {
	return &Beeper{out: out, enabled: enabled}
}

// Notify rings the bell for the event. Jackpots get a triple ring, wins a
// double, spin starts a single. Errors are ignored.
func (b *Beeper) Notify(ev game.Event) {
	if !b.enabled || b.out == nil {
		return
	}

	rings := 1
	switch ev {
	case game.EventWin:
		rings = 2
	case game.EventJackpot:
		rings = 3
	}
	for i := 0; i < rings; i++ {
		_, _ = b.out.Write([]byte{'\a'})
	}
}
