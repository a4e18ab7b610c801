package typewriter

import "time"

// Kind selects how a Block is animated.
type Kind string

const (
	KindRich      Kind = "rich"
	KindText      Kind = "text"
	KindLines     Kind = "lines"
	KindHighlight Kind = "highlight"
	KindStatic    Kind = "static"
)

// Block describes one piece of command output and how it is revealed.
type Block struct {
	Kind       Kind          `json:"kind"`
	Lines      []Line        `json:"lines,omitempty"`
	Text       string        `json:"text,omitempty"`
	Texts      []string      `json:"texts,omitempty"`
	Style      Style         `json:"style"`
	Highlights []Highlight   `json:"highlights,omitempty"`
	Speed      time.Duration `json:"speed,omitempty"`
	Delay      time.Duration `json:"delay,omitempty"`
}

func RichBlock(speed time.Duration, lines ...Line) Block {
	return Block{Kind: KindRich, Lines: lines, Speed: speed}
}

func TextBlock(text string, role Role) Block {
	return Block{Kind: KindText, Text: text, Style: Style{Role: role}, Speed: DefaultSpeed}
}

func LinesBlock(speed time.Duration, texts ...string) Block {
	return Block{Kind: KindLines, Texts: texts, Speed: speed}
}

func HighlightBlock(text string, style Style, speed, delay time.Duration, highlights ...Highlight) Block {
	return Block{Kind: KindHighlight, Text: text, Style: style, Highlights: highlights, Speed: speed, Delay: delay}
}

func StaticBlock(lines ...Line) Block {
	return Block{Kind: KindStatic, Lines: lines}
}

// Animate builds the animation for this block.
func (b Block) Animate() Animation {
	switch b.Kind {
	case KindText:
		t := NewText(b.Text, b.Speed)
		t.Style = b.Style
		return t
	case KindLines:
		m := NewMultiLine(b.Texts, b.Speed)
		m.Style = b.Style
		return m
	case KindHighlight:
		h := NewHighlighted(b.Text, b.Highlights, b.Speed, b.Delay)
		h.Style = b.Style
		return h
	case KindStatic:
		return NewStatic(b.Lines...)
	default:
		return NewRich(b.Lines, b.Speed)
	}
}

// Final returns the fully revealed lines of the block.
func (b Block) Final() []Line {
	switch b.Kind {
	case KindText:
		return []Line{{{Text: b.Text, Style: b.Style}}}
	case KindLines:
		out := make([]Line, len(b.Texts))
		for i, t := range b.Texts {
			out[i] = Line{{Text: t, Style: b.Style}}
		}
		return out
	case KindHighlight:
		return []Line{SplitHighlights(b.Text, b.Style, b.Highlights)}
	default:
		return cloneLines(b.Lines)
	}
}

// Script is the output of one command: blocks revealed in order.
type Script []Block

func (s Script) Animate() Animation {
	children := make([]Animation, len(s))
	for i, b := range s {
		children[i] = b.Animate()
	}
	return NewSequence(children...)
}

func (s Script) Final() []Line {
	out := []Line{}
	for _, b := range s {
		out = append(out, b.Final()...)
	}
	return out
}

func (s Script) Empty() bool { return len(s) == 0 }
