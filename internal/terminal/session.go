// Package terminal interprets the portfolio's command vocabulary and keeps
// per-visitor terminal state.
package terminal

import (
	"strings"
	"sync"
	"time"

	tw "github.com/Zachkp/termfolio/internal/typewriter"
)

// NarrowWidth is the viewport width below which the short prompt is used and
// the window is forced to maximize.
const NarrowWidth = 768

type Mode string

const (
	ModeCommand Mode = "command"
	ModeName    Mode = "name"
	ModeMessage Mode = "message"
)

// Window is the visual state of the terminal window.
type Window struct {
	Maximized bool `json:"maximized"`
	Minimized bool `json:"minimized"`
}

// Entry is one command and its output.
type Entry struct {
	ID      string    `json:"id"`
	Command string    `json:"command"`
	Output  tw.Script `json:"output"`
	// Private entries hold contact form input; they are neither saved nor recalled.
	Private bool      `json:"-"`
	Created time.Time `json:"created"`
}

// Identity names the site in prompts and the welcome banner.
type Identity struct {
	Name      string
	ShortName string
	Version   string
}

// Session is the terminal state of one visitor. Methods lock; the
// dispatcher holds the lock for a whole command.
type Session struct {
	mu sync.Mutex

	ID       string
	Site     Identity
	Entries  []*Entry
	Mode     Mode
	Draft    ContactDraft
	Window   Window
	Theme    string
	Width    int
	Recall   *Recall
	Restored bool
}

// ContactDraft accumulates the interactive contact form.
type ContactDraft struct {
	Name    string
	Message string
}

func NewSession(id string, site Identity, themeName string) *Session {
	return &Session{
		ID:     id,
		Site:   site,
		Mode:   ModeCommand,
		Theme:  themeName,
		Recall: NewRecall(nil),
	}
}

// Resize records the viewport width. Narrow viewports force maximize.
func (s *Session) Resize(width int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resize(width)
}

func (s *Session) resize(width int) {
	s.Width = width
	if width > 0 && width < NarrowWidth {
		s.Window.Maximized = true
	}
}

// Label is the shell prompt for the viewport width, ignoring the input mode.
func (s *Session) Label(width int) string {
	if width > 0 && width < NarrowWidth {
		return "@" + s.Site.ShortName + ":~$"
	}
	return "visitor@" + s.Site.Name + ":~$"
}

// Prompt is the text in front of the input line. A width of zero or less
// means unknown and is treated as wide.
func (s *Session) Prompt(width int) string {
	switch s.Mode {
	case ModeName:
		return "Name: "
	case ModeMessage:
		return "Ask anything: "
	}
	return s.Label(width)
}

// Title is the window title derived from the prompt label.
func (s *Session) Title(width int) string {
	return strings.Replace(s.Label(width), ":~$", ": ~", 1)
}

// Browse walks the recall list: up for older commands, down for newer.
func (s *Session) Browse(up bool) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if up {
		return s.Recall.Up()
	}
	return s.Recall.Down()
}

// Entry returns the entry with the given id.
func (s *Session) Entry(id string) (*Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

// Snapshot is a copy of the session safe to hand to a renderer.
type Snapshot struct {
	ID      string   `json:"id"`
	Entries []*Entry `json:"entries"`
	Mode    Mode     `json:"mode"`
	Label   string   `json:"label"`
	Prompt  string   `json:"prompt"`
	Title   string   `json:"title"`
	Window  Window   `json:"window"`
	Theme   string   `json:"theme"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Session) snapshot() Snapshot {
	entries := make([]*Entry, len(s.Entries))
	copy(entries, s.Entries)
	return Snapshot{
		ID:      s.ID,
		Entries: entries,
		Mode:    s.Mode,
		Label:   s.Label(s.Width),
		Prompt:  s.Prompt(s.Width),
		Title:   s.Title(s.Width),
		Window:  s.Window,
		Theme:   s.Theme,
	}
}
