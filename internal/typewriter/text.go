package typewriter

import "time"

// HookSpeed is the default tick of a bare Text animation.
const HookSpeed = 30 * time.Millisecond

// Text types a single string: after k ticks the first k characters show.
// It keeps reporting Typing until the tick after the last character.
type Text struct {
	runes  []rune
	speed  time.Duration
	shown  int
	typing bool

	Style Style
}

// NewText builds a Text animation. A zero speed means HookSpeed.
func NewText(text string, speed time.Duration) *Text {
	if speed <= 0 {
		speed = HookSpeed
	}
	return &Text{runes: []rune(text), speed: speed, typing: true}
}

// Display returns the revealed prefix.
func (t *Text) Display() string { return string(t.runes[:t.shown]) }

// Typing reports whether the animation still runs.
func (t *Text) Typing() bool { return t.typing }

func (t *Text) Delay() time.Duration { return t.speed }

func (t *Text) Done() bool { return !t.typing }

func (t *Text) Step() {
	if t.shown < len(t.runes) {
		t.shown++
		return
	}
	t.typing = false
}

func (t *Text) Frame() Frame {
	return Frame{
		Lines:   []Line{{Segment{Text: t.Display(), Style: t.Style}}},
		Cursor:  t.typing,
		Started: true,
		Done:    !t.typing,
	}
}

func (t *Text) Finish() {
	t.shown = len(t.runes)
	t.typing = false
}
