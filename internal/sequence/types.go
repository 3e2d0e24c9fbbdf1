package sequence

// DefaultEvery is how many ticks each effect stays on the lamp.
const DefaultEvery = 100

// PlayerState enumerates rotation states.
type PlayerState string

const (
	Idle    PlayerState = "idle"
	Running PlayerState = "running"
	Paused  PlayerState = "paused"
)

// Hooks are dependency-injected callbacks into the scheduler.
type Hooks struct {
	// Advance moves the scheduler to its next effect.
	Advance func()
	// Switched is told the tick count at which a switch happened.
	Switched func(tick uint64)
}

// Player counts ticks and advances the scheduler every Every ticks.
type Player struct {
	State PlayerState
	// Every <= 0 holds the current effect forever.
	Every int

	ticks    uint64
	switches int

	hooks Hooks
}
