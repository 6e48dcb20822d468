package game

import (
	"errors"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrInsufficientFunds is returned when a spin is requested with less
// balance than the current bet. It is never fatal: single spins decline
// with no state change and auto-spin sequences stop cleanly.
var ErrInsufficientFunds = errors.New("insufficient funds for spin")

// Mode selects how many spins one activation runs.
type Mode int

const (
	ModeSingle Mode = iota
	ModeFive
	ModeTen
	ModeAuto
)

// numModes is the size of the Mode cycle.
const numModes = 4

// unboundedSpins marks the AUTO mode quota.
const unboundedSpins = -1

func (m Mode) String() string {
	switch m {
	case ModeSingle:
		return "Single Spin"
	case ModeFive:
		return "5 Spins"
	case ModeTen:
		return "10 Spins"
	case ModeAuto:
		return "Auto Spin"
	}
	return "Unknown"
}

// quota returns the number of spins one activation of the mode runs.
func (m Mode) quota() int {
	switch m {
	case ModeFive:
		return 5
	case ModeTen:
		return 10
	case ModeAuto:
		return unboundedSpins
	}
	return 1
}

// State is the engine's position in the spin state machine.
type State int

const (
	StateIdle State = iota
	StateSpinning
	StateAutoPending
)

func (s State) String() string {
	switch s {
	case StateSpinning:
		return "spinning"
	case StateAutoPending:
		return "auto-pending"
	}
	return "idle"
}

// Config holds the tunable engine parameters.
type Config struct {
	InitialBalance   int64
	MinBet           int64
	MaxBet           int64
	DefaultBet       int64
	JackpotSeed      int64
	JackpotIncrement int64
	HistorySize      int
	NearMissChance   float64
	Anim             AnimConfig
}

// AnimConfig paces the spin animation. Purely cosmetic: it controls how
// many steps each reel takes and how long the caller should wait between
// steps, never the outcome distribution.
type AnimConfig struct {
	FastSteps        int           // fast-phase steps for the first reel
	StaggerSteps     int           // extra fast steps per later reel
	SlowSteps        int           // decelerating steps per reel
	StepDelay        time.Duration // delay between fast steps
	SlowDelay        time.Duration // delay before the first slow step
	SlowRamp         time.Duration // added delay per further slow step
	DoubleStepChance float64       // chance a fast step advances twice
	InterSpinDelay   time.Duration // pause between auto spins
}

// DefaultConfig mirrors the classic machine settings.
func DefaultConfig() Config {
	return Config{
		InitialBalance:   1000,
		MinBet:           1,
		MaxBet:           100,
		DefaultBet:       10,
		JackpotSeed:      1000,
		JackpotIncrement: 10,
		HistorySize:      1000,
		NearMissChance:   0.2,
		Anim: AnimConfig{
			FastSteps:        20,
			StaggerSteps:     8,
			SlowSteps:        5,
			StepDelay:        50 * time.Millisecond,
			SlowDelay:        100 * time.Millisecond,
			SlowRamp:         50 * time.Millisecond,
			DoubleStepChance: 0.3,
			InterSpinDelay:   200 * time.Millisecond,
		},
	}
}

// animStep is one tick of the compiled spin animation: how far each reel
// advances and how long to wait before the next step.
type animStep struct {
	advance [NumReels]int
	delay   time.Duration
}

// Snapshot is a read-only view of the engine handed to rendering and
// statistics collaborators. They must never reach back into the engine.
type Snapshot struct {
	Grid           Grid
	Balance        int64
	Bet            int64
	Jackpot        int64
	Mode           Mode
	State          State
	SpinsRemaining int
	AutoSpinning   bool
	LastWin        int64
	LastWinText    string
	BiggestWin     int64
	SessionStart   time.Time
}

// Engine owns all mutable game state: balance, bet, jackpot pool, reels,
// history, and the auto-spin state machine. It is driven by Tick from a
// single cooperative loop; RequestStop is the only method safe to call
// from another goroutine.
type Engine struct {
	cfg      Config
	rng      *rand.Rand
	notifier Notifier

	reels   *ReelSet
	history *History

	balance int64
	bet     int64
	jackpot int64
	mode    Mode
	state   State

	autoSpinning   bool
	spinsRemaining int
	stop           atomic.Bool

	lastWin      int64
	lastWinText  string
	biggestWin   int64
	sessionStart time.Time

	// in-flight spin animation
	plan       []animStep
	stepIdx    int
	nextStepAt time.Time
	nextSpinAt time.Time
	betInPlay  int64
}

// amounts formats credit amounts with thousands separators for win banners.
var amounts = message.NewPrinter(language.English)

// NewEngine creates an engine with the given configuration. A nil rng is
// seeded from the clock; a nil notifier is replaced by NopNotifier.
func NewEngine(cfg Config, rng *rand.Rand, notifier Notifier) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}

	e := &Engine{
		cfg:          cfg,
		rng:          rng,
		notifier:     notifier,
		reels:        NewReelSet(rng),
		history:      NewHistory(cfg.HistorySize),
		balance:      cfg.InitialBalance,
		jackpot:      cfg.JackpotSeed,
		mode:         ModeSingle,
		lastWinText:  "No wins yet!",
		sessionStart: time.Now(),
	}
	e.bet = e.clampBet(cfg.DefaultBet)

	log.Info().
		Int64("balance", e.balance).
		Int64("bet", e.bet).
		Int64("jackpot", e.jackpot).
		Msg("Slot machine initialized")
	return e
}

// AdjustBet moves the bet by delta, silently clamped to [MinBet, MaxBet]
// and to the current balance. Never fails.
func (e *Engine) AdjustBet(delta int64) {
	e.bet = e.clampBet(e.bet + delta)
	log.Debug().Int64("bet", e.bet).Msg("Bet adjusted")
}

// clampBet keeps the bet inside [MinBet, MaxBet] and at or below the
// balance. The bet never drops under MinBet: once the balance falls below
// it, spins decline with ErrInsufficientFunds instead of running for free.
func (e *Engine) clampBet(v int64) int64 {
	if v < e.cfg.MinBet {
		v = e.cfg.MinBet
	}
	if v > e.cfg.MaxBet {
		v = e.cfg.MaxBet
	}
	if v > e.balance && e.balance >= e.cfg.MinBet {
		v = e.balance
	}
	return v
}

// CycleMode advances the spin mode by direction (+1 or -1). Mode changes
// are ignored while a spin or an auto-spin sequence is active.
func (e *Engine) CycleMode(direction int) {
	if e.state != StateIdle || e.autoSpinning {
		return
	}
	e.mode = Mode((int(e.mode) + direction%numModes + numModes) % numModes)
	log.Debug().Stringer("mode", e.mode).Msg("Spin mode changed")
}

// StartOrStopAuto toggles spinning. When idle it activates the current
// mode's spin quota and starts the first spin, returning
// ErrInsufficientFunds (with no state change) if the balance cannot cover
// the bet. When a spin or sequence is active it requests a stop instead.
func (e *Engine) StartOrStopAuto(now time.Time) error {
	if e.state != StateIdle || e.autoSpinning {
		e.RequestStop()
		return nil
	}
	if e.balance < e.bet {
		return ErrInsufficientFunds
	}

	e.stop.Store(false)
	e.spinsRemaining = e.mode.quota()
	e.autoSpinning = true
	log.Info().Stringer("mode", e.mode).Int("quota", e.spinsRemaining).Msg("Spin sequence started")
	return e.beginSpin(now)
}

// RequestStop asks the engine to abandon the current spin and any queued
// auto spins. It is checked at every animation step and at the top of every
// auto continuation, and supersedes the remaining quota unconditionally.
// Safe to call from any goroutine.
func (e *Engine) RequestStop() {
	e.stop.Store(true)
}

// Tick advances the engine by at most one animation step, settlement, or
// auto-spin start, depending on state and elapsed time. The caller owns
// frame pacing and rendering. The returned error is ErrInsufficientFunds
// when an auto continuation had to stop; it is informational, never fatal.
func (e *Engine) Tick(now time.Time) error {
	switch e.state {
	case StateSpinning:
		e.tickSpin(now)
	case StateAutoPending:
		return e.tickPending(now)
	}
	return nil
}

func (e *Engine) tickSpin(now time.Time) {
	if e.stop.Load() {
		e.abortSpin()
		return
	}
	if now.Before(e.nextStepAt) {
		return
	}

	if e.stepIdx < len(e.plan) {
		step := e.plan[e.stepIdx]
		for i, n := range step.advance {
			for ; n > 0; n-- {
				e.reels.reels[i].Rotate()
			}
		}
		e.stepIdx++
		if e.stepIdx < len(e.plan) {
			e.nextStepAt = now.Add(step.delay)
			return
		}
	}
	e.settle(now)
}

func (e *Engine) tickPending(now time.Time) error {
	if e.stop.Load() {
		e.endSequence("stopped")
		return nil
	}
	if now.Before(e.nextSpinAt) {
		return nil
	}
	if e.balance < e.bet {
		e.endSequence("insufficient funds")
		return ErrInsufficientFunds
	}
	return e.beginSpin(now)
}

// beginSpin deducts the bet, compiles the animation plan, and enters
// SPINNING. The bet is committed before the outcome is known.
func (e *Engine) beginSpin(now time.Time) error {
	if e.balance < e.bet {
		e.endSequence("insufficient funds")
		return ErrInsufficientFunds
	}

	e.betInPlay = e.bet
	e.balance -= e.betInPlay
	log.Debug().Int64("bet", e.betInPlay).Int64("balance", e.balance).Msg("Bet placed")

	e.notifier.Notify(EventSpinStarted)
	e.reels.StartSpin()
	e.plan = e.compilePlan()
	e.stepIdx = 0
	e.nextStepAt = now
	e.state = StateSpinning
	return nil
}

// compilePlan lays out the whole animation up front: every reel runs a fast
// phase (later reels longer, staggering the stops) and then a short
// decelerating phase with ramping delays. Fast steps may advance twice for
// visual variety, so the total advance is randomized but bounded.
func (e *Engine) compilePlan() []animStep {
	a := e.cfg.Anim

	quotas := [NumReels]int{}
	longestFast := 0
	for i := range quotas {
		fast := a.FastSteps + i*a.StaggerSteps
		quotas[i] = fast + a.SlowSteps
		if fast > longestFast {
			longestFast = fast
		}
	}

	total := longestFast + a.SlowSteps
	plan := make([]animStep, 0, total)
	for k := 0; k < total; k++ {
		var step animStep
		for i, q := range quotas {
			if k >= q {
				continue
			}
			step.advance[i] = 1
			if k < q-a.SlowSteps && e.rng.Float64() < a.DoubleStepChance {
				step.advance[i] = 2
			}
		}
		if k < longestFast {
			step.delay = a.StepDelay
		} else {
			step.delay = a.SlowDelay + time.Duration(k-longestFast)*a.SlowRamp
		}
		plan = append(plan, step)
	}
	return plan
}

// abortSpin handles a stop request mid-animation: the remaining rotation is
// discarded and nothing settles. No win is evaluated, the jackpot pool does
// not move, and no history entry is appended. The bet already deducted is
// not refunded; that mirrors the machine's long-standing behaviour and is a
// deliberate policy, not an oversight.
func (e *Engine) abortSpin() {
	e.reels.StopSpin()
	e.plan = nil
	e.endSequence("spin interrupted")
}

// endSequence clears auto-spin bookkeeping and returns to IDLE.
func (e *Engine) endSequence(reason string) {
	e.autoSpinning = false
	e.spinsRemaining = 0
	e.state = StateIdle
	e.stop.Store(false)
	log.Info().Str("reason", reason).Msg("Spin sequence ended")
}

// settle computes the outcome from the post-animation reel state and
// commits it in one pass: evaluate, move the jackpot pool, credit winnings,
// track the biggest win, append history, then decide on continuation.
func (e *Engine) settle(now time.Time) {
	e.reels.StopSpin()
	e.plan = nil

	line := e.reels.Payline()
	win, jackpot := Evaluate(line, e.betInPlay)

	var poolPaid int64
	if jackpot {
		poolPaid = e.jackpot
		win += poolPaid
		e.jackpot = e.cfg.JackpotSeed
		e.lastWinText = amounts.Sprintf("★ JACKPOT %d | %s ★", win, lineString(line))
		e.notifier.Notify(EventJackpot)
		log.Info().Int64("win", win).Int64("pool", poolPaid).Msg("Jackpot win")
	} else {
		e.jackpot += e.cfg.JackpotIncrement
		if win > 0 {
			e.lastWinText = amounts.Sprintf("▶ Win %d | %s ◀", win, lineString(line))
			e.notifier.Notify(EventWin)
			log.Info().Int64("win", win).Str("symbol", line[0].Name()).Msg("Win")
		} else {
			e.maybeNearMiss(line)
		}
	}

	e.balance += win
	e.lastWin = win
	if win > e.biggestWin {
		e.biggestWin = win
	}

	e.history.Append(SpinResult{
		Symbols:       line,
		Bet:           e.betInPlay,
		Win:           win,
		Timestamp:     now,
		Jackpot:       jackpot,
		JackpotAmount: poolPaid,
	})

	// A losing run can leave the balance under the configured bet.
	e.bet = e.clampBet(e.bet)

	e.continueSequence(now)
}

// continueSequence decides what happens after a settled spin: another spin
// if quota remains (AUTO is unbounded), IDLE otherwise. A stop request or a
// short balance always ends the sequence.
func (e *Engine) continueSequence(now time.Time) {
	if e.spinsRemaining != unboundedSpins {
		e.spinsRemaining--
	}

	switch {
	case e.stop.Load():
		e.endSequence("stopped")
	case e.spinsRemaining == 0:
		e.endSequence("quota complete")
	case e.balance < e.bet:
		e.endSequence("insufficient funds")
	default:
		e.state = StateAutoPending
		e.nextSpinAt = now.Add(e.cfg.Anim.InterSpinDelay)
	}
}

// maybeNearMiss nudges one reel a single step after a losing evaluation so
// the payline visually almost matches, with a small fixed probability. It
// runs strictly after the win is computed and never changes it: a nudge is
// rejected unless the adjusted line still pays nothing and the nudged
// window stays free of duplicate neighbours.
func (e *Engine) maybeNearMiss(line Payline) {
	if e.rng.Float64() >= e.cfg.NearMissChance {
		return
	}

	idx := e.rng.Intn(NumReels)
	target := line[(idx+1)%NumReels]
	reel := e.reels.reels[idx]

	for _, offset := range []int{1, -1} {
		reel.nudge(offset)
		w := reel.Window()
		adjusted := line
		adjusted[idx] = w[1]

		win, jackpot := Evaluate(adjusted, e.betInPlay)
		if w[1] == target && w[1] != w[0] && w[1] != w[2] && win == 0 && !jackpot {
			log.Debug().Int("reel", idx).Int("offset", offset).Msg("Near miss applied")
			return
		}
		reel.nudge(-offset)
	}
}

// Snapshot returns a read-only copy of the current game state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Grid:           e.reels.Visible(),
		Balance:        e.balance,
		Bet:            e.bet,
		Jackpot:        e.jackpot,
		Mode:           e.mode,
		State:          e.state,
		SpinsRemaining: e.spinsRemaining,
		AutoSpinning:   e.autoSpinning,
		LastWin:        e.lastWin,
		LastWinText:    e.lastWinText,
		BiggestWin:     e.biggestWin,
		SessionStart:   e.sessionStart,
	}
}

// History returns a copy of the completed spin log, most recent last.
func (e *Engine) History() []SpinResult {
	return e.history.Results()
}

// InitialBalance returns the session's starting balance.
func (e *Engine) InitialBalance() int64 {
	return e.cfg.InitialBalance
}

func lineString(line Payline) string {
	return line[0].String() + " " + line[1].String() + " " + line[2].String()
}
