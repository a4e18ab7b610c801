// Package ansi draws typewriter frames on a colour terminal.
package ansi

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/Zachkp/termfolio/internal/theme"
	tw "github.com/Zachkp/termfolio/internal/typewriter"
)

const (
	cursorUp    = "\x1b[%dA"
	clearToEnd  = "\x1b[J"
	cursorGlyph = "█"
)

// Renderer redraws the frames of one animation in place.
type Renderer struct {
	// Width is the terminal width in columns, used to count rows taken by
	// wrapped lines. Zero means lines never wrap.
	Width int

	out   io.Writer
	theme theme.Theme
	// rows drawn by the previous frame of the current animation
	rows int
}

func NewRenderer(out io.Writer, t theme.Theme) *Renderer {
	return &Renderer{out: out, theme: t}
}

// SetTheme changes the palette for subsequent frames.
func (r *Renderer) SetTheme(t theme.Theme) { r.theme = t }

// Draw replaces the previous frame with f. After the final frame the next
// Draw starts on a fresh row.
func (r *Renderer) Draw(f tw.Frame) error {
	var b strings.Builder
	if r.rows > 0 {
		if r.rows > 1 {
			fmt.Fprintf(&b, cursorUp, r.rows-1)
		}
		b.WriteString("\r" + clearToEnd)
	}

	lines := f.Lines
	if len(lines) == 0 {
		lines = []tw.Line{nil}
	}
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(r.Line(l))
	}
	if f.Cursor {
		b.WriteString(r.paint(tw.Style{}).Sprint(cursorGlyph))
	}

	if f.Done {
		b.WriteByte('\n')
		r.rows = 0
	} else {
		r.rows = r.height(lines, f.Cursor)
	}
	_, err := io.WriteString(r.out, b.String())
	return err
}

// height is the number of terminal rows lines occupy.
func (r *Renderer) height(lines []tw.Line, cursor bool) int {
	if r.Width <= 0 {
		return len(lines)
	}
	rows := 0
	for i, l := range lines {
		w := runewidth.StringWidth(l.String())
		if cursor && i == len(lines)-1 {
			w += runewidth.StringWidth(cursorGlyph)
		}
		// A line that exactly fills the width leaves the cursor on its
		// last row.
		rows += max(1, (w+r.Width-1)/r.Width)
	}
	return rows
}

// Line renders one line with its styles applied.
func (r *Renderer) Line(l tw.Line) string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(r.paint(s.Style).Sprint(s.Text))
	}
	return b.String()
}

// Prompt renders the label the way the page does.
func (r *Renderer) Prompt(label string) string {
	return r.paint(tw.Style{Role: tw.RolePrompt}).Sprint(label) + " "
}

func (r *Renderer) paint(st tw.Style) *color.Color {
	c := color.New()
	if rgb, ok := ParseColor(r.theme.Colors.Role(st.Role)); ok {
		c = color.RGB(rgb[0], rgb[1], rgb[2])
	}
	if st.Bold {
		c.Add(color.Bold)
	}
	if st.Italic {
		c.Add(color.Italic)
	}
	if st.Underline {
		c.Add(color.Underline)
	}
	return c
}

// ParseColor reads #rgb, #rrggbb and rgb()/rgba() values. Alpha is ignored.
func ParseColor(v string) ([3]int, bool) {
	v = strings.TrimSpace(strings.ToLower(v))
	switch {
	case strings.HasPrefix(v, "#"):
		return parseHex(v[1:])
	case strings.HasPrefix(v, "rgba(") || strings.HasPrefix(v, "rgb("):
		open, end := strings.IndexByte(v, '('), strings.LastIndexByte(v, ')')
		if end < open {
			return [3]int{}, false
		}
		parts := strings.Split(v[open+1:end], ",")
		if len(parts) < 3 {
			return [3]int{}, false
		}
		var out [3]int
		for i := 0; i < 3; i++ {
			n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
			if err != nil || n < 0 || n > 255 {
				return [3]int{}, false
			}
			out[i] = n
		}
		return out, true
	}
	return [3]int{}, false
}

func parseHex(h string) ([3]int, bool) {
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return [3]int{}, false
	}
	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return [3]int{}, false
	}
	return [3]int{int(n >> 16 & 0xff), int(n >> 8 & 0xff), int(n & 0xff)}, true
}
