package tetris

// Event names a cue emitted by the game for audio or haptic feedback.
type Event string

const (
	EventMove     Event = "move"
	EventRotate   Event = "rotate"
	EventDrop     Event = "drop"
	EventLine     Event = "line"
	EventGameOver Event = "gameOver"
	EventReset    Event = "reset"
)

// Sounder receives game events. Implementations must not block and must not
// report failures back to the game.
type Sounder interface {
	Play(Event)
}

type SounderFunc func(Event)

func (f SounderFunc) Play(e Event) { f(e) }

type nopSounder struct{}

func (nopSounder) Play(Event) {}
