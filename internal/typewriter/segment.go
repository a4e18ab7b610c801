// Package typewriter reveals styled terminal output one character at a time.
//
// Every animation is a small state machine advanced by Step. A Player drives
// it with timers and hands each resulting Frame to a renderer (SSE, ANSI).
package typewriter

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Role is the semantic colour of a segment. Renderers resolve it against the
// active theme.
type Role string

const (
	RolePlain   Role = ""
	RoleAccent  Role = "accent"
	RoleTitle   Role = "title"
	RoleBody    Role = "body"
	RoleSubtle  Role = "subtle"
	RoleMuted   Role = "muted"
	RoleDim     Role = "dim"
	RoleFaint   Role = "faint"
	RoleError   Role = "error"
	RoleWarning Role = "warning"
	RoleSuccess Role = "success"
	RoleLink    Role = "link"
	RolePrompt  Role = "prompt"
	RoleCommand Role = "command"
	RoleOutput  Role = "output"
	RoleBorder  Role = "border"
)

// Roles lists every role, plain first.
var Roles = []Role{
	RolePlain, RoleAccent, RoleTitle, RoleBody, RoleSubtle, RoleMuted, RoleDim, RoleFaint,
	RoleError, RoleWarning, RoleSuccess, RoleLink, RolePrompt, RoleCommand, RoleOutput, RoleBorder,
}

// Style carries the presentational attributes of a segment.
type Style struct {
	Role      Role   `json:"role,omitempty"`
	Bold      bool   `json:"bold,omitempty"`
	Italic    bool   `json:"italic,omitempty"`
	Underline bool   `json:"underline,omitempty"`
	Class     string `json:"class,omitempty"`
}

// Segment is a run of text sharing one style.
type Segment struct {
	Text  string `json:"text"`
	Style Style  `json:"style"`
}

// Line is a list of segments. An empty line renders as a blank row.
type Line []Segment

// Seg is shorthand for a segment with the given role.
func Seg(text string, role Role) Segment {
	return Segment{Text: text, Style: Style{Role: role}}
}

// Bold is shorthand for a bold segment with the given role.
func Bold(text string, role Role) Segment {
	return Segment{Text: text, Style: Style{Role: role, Bold: true}}
}

// Plain is shorthand for an unstyled segment.
func Plain(text string) Segment {
	return Segment{Text: text}
}

// Len counts the characters of the line.
func (l Line) Len() int {
	n := 0
	for _, s := range l {
		n += utf8.RuneCountInString(s.Text)
	}
	return n
}

// String returns the unstyled text of the line.
func (l Line) String() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.Text)
	}
	return b.String()
}

func (l Line) clone() Line {
	if l == nil {
		return Line{}
	}
	out := make(Line, len(l))
	copy(out, l)
	return out
}

func cloneLines(lines []Line) []Line {
	out := make([]Line, len(lines))
	for i, l := range lines {
		out[i] = l.clone()
	}
	return out
}

// Frame is what a viewer sees after a tick.
type Frame struct {
	Lines   []Line `json:"lines"`
	Cursor  bool   `json:"cursor"`
	Started bool   `json:"started"`
	Done    bool   `json:"done"`
}

// Text returns the frame as plain text, one line per row.
func (f Frame) Text() string {
	rows := make([]string, len(f.Lines))
	for i, l := range f.Lines {
		rows[i] = l.String()
	}
	return strings.Join(rows, "\n")
}

// Animation is a reveal state machine.
type Animation interface {
	// Step advances the animation by one tick.
	Step()
	// Delay is the wait before the next Step.
	Delay() time.Duration
	// Frame reports what is currently visible.
	Frame() Frame
	// Done reports whether nothing is left to reveal.
	Done() bool
	// Finish jumps to the fully revealed state.
	Finish()
}
