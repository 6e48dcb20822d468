package game

// Event identifies a moment worth a sound or visual cue.
type Event int

const (
	EventSpinStarted Event = iota
	EventWin
	EventJackpot
)

// Notifier receives fire-and-forget event cues. Implementations must not
// block and must swallow their own failures; the engine behaves identically
// whether or not a notifier is wired.
type Notifier interface {
	Notify(Event)
}

// NopNotifier discards all events.
type NopNotifier struct{}

// Notify implements Notifier.
func (NopNotifier) Notify(Event) {}
