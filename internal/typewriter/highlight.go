package typewriter

import (
	"strings"
	"time"
)

// Highlight styles every occurrence of a phrase.
type Highlight struct {
	Text  string `json:"text"`
	Style Style  `json:"style"`
}

// Highlighted types a sentence after an initial delay. A highlighted phrase
// takes its style only once it is fully visible, so colour pops in when the
// word is finished.
type Highlighted struct {
	runes      []rune
	highlights []Highlight
	speed      time.Duration
	delay      time.Duration

	started  bool
	next     int
	shown    int
	finished bool

	Style Style
}

func NewHighlighted(text string, highlights []Highlight, speed, delay time.Duration) *Highlighted {
	if speed <= 0 {
		speed = HookSpeed
	}
	return &Highlighted{runes: []rune(text), highlights: highlights, speed: speed, delay: delay}
}

func (h *Highlighted) Delay() time.Duration {
	if !h.started {
		return h.delay
	}
	return h.speed
}

func (h *Highlighted) Done() bool { return h.finished }

func (h *Highlighted) Step() {
	if !h.started {
		h.started = true
		return
	}
	if h.next <= len(h.runes) {
		h.shown = h.next
		h.next++
		return
	}
	h.finished = true
}

func (h *Highlighted) Frame() Frame {
	if !h.started {
		return Frame{}
	}
	shown := string(h.runes[:h.shown])
	return Frame{
		Lines:   []Line{SplitHighlights(shown, h.Style, h.highlights)},
		Cursor:  h.shown < len(h.runes),
		Started: true,
		Done:    h.finished,
	}
}

func (h *Highlighted) Finish() {
	h.started = true
	h.shown = len(h.runes)
	h.next = len(h.runes) + 1
	h.finished = true
}

// SplitHighlights cuts text into segments, giving each full occurrence of a
// highlight phrase its style and the rest base. Highlights apply in order;
// text already claimed by an earlier highlight is not split again.
func SplitHighlights(text string, base Style, highlights []Highlight) Line {
	type part struct {
		seg  Segment
		done bool
	}
	parts := []part{{seg: Segment{Text: text, Style: base}}}

	for _, hl := range highlights {
		if hl.Text == "" {
			continue
		}
		var next []part
		for _, p := range parts {
			if p.done {
				next = append(next, p)
				continue
			}
			pieces := strings.Split(p.seg.Text, hl.Text)
			for i, piece := range pieces {
				next = append(next, part{seg: Segment{Text: piece, Style: base}})
				if i < len(pieces)-1 {
					next = append(next, part{seg: Segment{Text: hl.Text, Style: hl.Style}, done: true})
				}
			}
		}
		parts = next
	}

	line := Line{}
	for _, p := range parts {
		if p.seg.Text == "" {
			continue
		}
		line = append(line, p.seg)
	}
	return line
}
