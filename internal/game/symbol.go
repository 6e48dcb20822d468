// Package game implements the slot machine core: reels, payline evaluation,
// the spin engine state machine, and the bounded spin history.
package game

// Symbol is one of the eight faces that can appear on a reel.
type Symbol int

const (
	Cherry Symbol = iota
	Lemon
	Orange
	Grape
	Diamond
	Money
	Dice
	Star
)

// Wild substitutes for any other symbol when forming a win. Three wilds on
// the payline trigger the jackpot instead of a regular wild-resolved win.
const Wild = Star

// Symbols lists every symbol in paytable order (lowest multiplier first).
var Symbols = [...]Symbol{Cherry, Lemon, Orange, Grape, Diamond, Money, Dice, Star}

// multipliers maps each symbol to its payout multiplier. Multipliers are
// strictly increasing with rarity.
var multipliers = [...]int64{
	Cherry:  2,
	Lemon:   3,
	Orange:  4,
	Grape:   5,
	Diamond: 10,
	Money:   15,
	Dice:    20,
	Star:    50,
}

var glyphs = [...]string{
	Cherry:  "🍒",
	Lemon:   "🍋",
	Orange:  "🍊",
	Grape:   "🍇",
	Diamond: "💎",
	Money:   "💰",
	Dice:    "🎲",
	Star:    "🌟",
}

var names = [...]string{
	Cherry:  "CHERRY",
	Lemon:   "LEMON",
	Orange:  "ORANGE",
	Grape:   "GRAPE",
	Diamond: "DIAMOND",
	Money:   "MONEY",
	Dice:    "DICE",
	Star:    "STAR",
}

// Multiplier returns the payout multiplier for the symbol.
func (s Symbol) Multiplier() int64 {
	return multipliers[s]
}

// String returns the symbol's terminal glyph.
func (s Symbol) String() string {
	return glyphs[s]
}

// Name returns the symbol's uppercase identifier.
func (s Symbol) Name() string {
	return names[s]
}

// highestRegular returns the non-wild symbol with the largest multiplier.
func highestRegular() Symbol {
	best := Cherry
	for _, s := range Symbols {
		if s != Wild && s.Multiplier() > best.Multiplier() {
			best = s
		}
	}
	return best
}
