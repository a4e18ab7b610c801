package typewriter

import "time"

// LinePause is the wait between a fully typed line and the next one.
const LinePause = 100 * time.Millisecond

// MultiLine types plain lines one after another, pausing briefly between them.
type MultiLine struct {
	lines []string
	speed time.Duration

	completed []string
	display   string
	lineIdx   int
	charIdx   int
	pausing   bool

	Style Style
}

func NewMultiLine(lines []string, speed time.Duration) *MultiLine {
	if speed <= 0 {
		speed = DefaultSpeed
	}
	return &MultiLine{lines: lines, speed: speed}
}

func (m *MultiLine) Delay() time.Duration {
	if m.pausing {
		return LinePause
	}
	return m.speed
}

func (m *MultiLine) Done() bool { return m.lineIdx >= len(m.lines) }

func (m *MultiLine) Step() {
	if m.Done() {
		return
	}
	if m.pausing {
		m.completed = append(m.completed, m.lines[m.lineIdx])
		m.lineIdx++
		m.charIdx = 0
		m.display = ""
		m.pausing = false
		return
	}

	runes := []rune(m.lines[m.lineIdx])
	if m.charIdx < len(runes) {
		m.display = string(runes[:m.charIdx+1])
		m.charIdx++
		return
	}
	m.pausing = true
}

func (m *MultiLine) Frame() Frame {
	lines := make([]Line, 0, len(m.completed)+1)
	for _, s := range m.completed {
		lines = append(lines, Line{{Text: s, Style: m.Style}})
	}
	if !m.Done() {
		lines = append(lines, Line{{Text: m.display, Style: m.Style}})
	}
	return Frame{Lines: lines, Started: true, Done: m.Done()}
}

func (m *MultiLine) Finish() {
	m.completed = append([]string(nil), m.lines...)
	m.lineIdx = len(m.lines)
	m.charIdx = 0
	m.display = ""
	m.pausing = false
}
