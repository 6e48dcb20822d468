package game

// Payline is the middle row of visible symbols, one per reel.
type Payline [NumReels]Symbol

// Evaluate scores a payline against the paytable.
//
// Three wilds trigger the jackpot: the returned win is the base amount
// (bet x wild multiplier) and the caller adds the jackpot pool. Otherwise
// the line wins iff every symbol is either the effective symbol or the
// wild, paying bet x the effective symbol's multiplier.
//
// The effective symbol is the most frequent non-wild symbol on the line.
// Ties resolve to the first such symbol encountered left to right; this
// tie-break is implementation-defined and callers must not rely on it.
//
// Evaluate is pure: it never mutates reels, balance, or the jackpot pool.
func Evaluate(line Payline, bet int64) (win int64, jackpot bool) {
	if line[0] == Wild && line[1] == Wild && line[2] == Wild {
		return bet * Wild.Multiplier(), true
	}

	effective := effectiveSymbol(line)
	for _, s := range line {
		if s != effective && s != Wild {
			return 0, false
		}
	}
	return bet * effective.Multiplier(), false
}

// effectiveSymbol picks the most frequent non-wild symbol on the line,
// first encountered wins on ties. A line of nothing but wilds resolves to
// the highest-paying regular symbol; the all-wild jackpot case is handled
// before this is ever consulted, so that branch is a guard only.
func effectiveSymbol(line Payline) Symbol {
	best := 0
	effective := highestRegular()
	for i, s := range line {
		if s == Wild {
			continue
		}
		n := 0
		for _, t := range line {
			if t == s {
				n++
			}
		}
		if n > best {
			best = n
			effective = line[i]
		}
	}
	return effective
}
