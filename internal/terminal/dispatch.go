package terminal

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Zachkp/termfolio/internal/contact"
	"github.com/Zachkp/termfolio/internal/content"
	"github.com/Zachkp/termfolio/internal/theme"
	tw "github.com/Zachkp/termfolio/internal/typewriter"
)

const (
	msgSent        = "Message sent successfully! I'll get back to you soon."
	msgSendFailed  = "Failed to send message. Please try again later."
	msgSendErrored = "An error occurred. Please try again later."
)

// SendTimeout bounds a contact message delivery.
const SendTimeout = 30 * time.Second

// UnknownWord is reported for input outside the command vocabulary, so
// metrics and the command log never carry free text.
const UnknownWord = "unknown"

// Result describes what a command changed.
type Result struct {
	// Word is the lower-cased command word, empty for contact form input.
	Word    string
	Entries []*Entry
	Cleared bool
	// ThemeChanged is set when a theme switch succeeded.
	ThemeChanged bool
	// OpenURL is the project link to open in a new tab.
	OpenURL string
	Ignored bool
}

// Dispatcher interprets terminal input.
type Dispatcher struct {
	Content *content.Content
	Sender  contact.Sender
	now     func() time.Time
	newID   func() string
}

func NewDispatcher(c *content.Content, sender contact.Sender) *Dispatcher {
	return &Dispatcher{
		Content: c,
		Sender:  sender,
		now:     time.Now,
		newID:   func() string { return uuid.NewString() },
	}
}

func (d *Dispatcher) entry(command string, output tw.Script) *Entry {
	return &Entry{ID: d.newID(), Command: command, Output: output, Created: d.now()}
}

// Start puts the first entry into an empty session: a session-restore notice
// when saved history exists, the welcome banner otherwise.
func (d *Dispatcher) Start(s *Session, restored bool) *Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	var e *Entry
	if restored {
		e = &Entry{ID: "restore", Command: "session-restore", Output: restoreScript(), Created: d.now()}
	} else {
		e = &Entry{ID: "init", Command: "welcome", Output: welcomeScript(s.Site), Created: d.now()}
	}
	s.Restored = restored
	s.Entries = []*Entry{e}
	return e
}

// Handle runs one line of input against the session. The session is not
// locked while a contact message is being sent.
func (d *Dispatcher) Handle(ctx context.Context, s *Session, input string) (Result, error) {
	s.mu.Lock()
	if strings.TrimSpace(input) == "" {
		s.mu.Unlock()
		return Result{Ignored: true}, nil
	}
	if s.Mode == ModeMessage {
		msg := takeDraft(s, input)
		s.mu.Unlock()

		err := d.send(ctx, msg)

		s.mu.Lock()
		defer s.mu.Unlock()
		return d.sent(s, input, err), nil
	}
	defer s.mu.Unlock()

	if s.Mode == ModeName {
		return d.handleName(s, input), nil
	}

	s.Recall.Push(input)
	res := d.handleCommand(s, input)
	if !res.Cleared {
		s.Entries = append(s.Entries, res.Entries...)
	}
	return res, nil
}

func (d *Dispatcher) handleName(s *Session, input string) Result {
	s.Draft.Name = strings.TrimSpace(input)
	s.Mode = ModeMessage
	e := d.entry(input, nil)
	e.Private = true
	s.Entries = append(s.Entries, e)
	return Result{Entries: []*Entry{e}}
}

// takeDraft completes the contact draft with the message and returns the
// session to command mode.
func takeDraft(s *Session, input string) contact.Message {
	msg := contact.Message{Name: s.Draft.Name, Message: strings.TrimSpace(input)}
	s.Mode = ModeCommand
	s.Draft = ContactDraft{}
	return msg
}

func (d *Dispatcher) sent(s *Session, input string, err error) Result {
	var out tw.Script
	switch {
	case err == nil:
		out = sendOutcome(true, msgSent)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		out = sendOutcome(false, msgSendErrored)
	default:
		out = sendOutcome(false, msgSendFailed)
	}

	e := d.entry(input, out)
	e.Private = true
	s.Entries = append(s.Entries, e)
	return Result{Entries: []*Entry{e}}
}

func (d *Dispatcher) send(ctx context.Context, msg contact.Message) error {
	if d.Sender == nil {
		return contact.ErrNotConfigured
	}
	ctx, cancel := context.WithTimeout(ctx, SendTimeout)
	defer cancel()
	return d.Sender.Send(ctx, msg)
}

func (d *Dispatcher) handleCommand(s *Session, input string) Result {
	cmd := strings.ToLower(strings.TrimSpace(input))
	fields := strings.Fields(cmd)
	res := Result{Word: fields[0]}
	reply := func(out tw.Script) Result {
		res.Entries = []*Entry{d.entry(input, out)}
		return res
	}

	switch {
	case fields[0] == "go" && len(fields) > 1:
		return d.goProject(input, fields[1], res)
	case fields[0] == "theme":
		if len(fields) == 1 {
			return reply(themeList(s.Theme))
		}
		t, ok := theme.Lookup(fields[1])
		if !ok {
			return reply(themeNotFound(fields[1]))
		}
		s.Theme = t.Name
		res.ThemeChanged = true
		return reply(themeSwitched(t))
	case (fields[0] == "exp" || fields[0] == "experience") && len(fields) > 1 && fields[1] == "--tree":
		return reply(tw.Script{tw.RichBlock(ListingSpeed, content.ExperienceTree(d.Content.Experience)...)})
	}

	switch cmd {
	case "help":
		return reply(helpScript())
	case "about":
		return reply(aboutScript(d.Content.Profile))
	case "projects":
		return reply(tw.Script{tw.RichBlock(ListingSpeed, content.ProjectLines(d.Content.Projects)...)})
	case "exp", "experience":
		return reply(tw.Script{tw.RichBlock(ListingSpeed, content.ExperienceTimeline(d.Content.Experience)...)})
	case "contact":
		s.Mode = ModeName
		res.Entries = []*Entry{
			d.entry(input, contactCard(d.Content.Profile.Links)),
			d.entry("contact", tw.Script{say("Please enter your name:")}),
		}
		return res
	case "clear":
		s.Entries = nil
		res.Cleared = true
		return res
	case "maximize", "expand":
		s.Window = Window{Maximized: true}
		return reply(tw.Script{say("Window maximized.")})
	case "minimize":
		if s.Window.Maximized {
			s.Window.Maximized = false
			return reply(tw.Script{say("Window restored to normal size.")})
		}
		s.Window = Window{Minimized: true}
		return reply(tw.Script{say("Window minimized.")})
	case "restore", "unmaximize":
		s.Window = Window{}
		return reply(tw.Script{say("Window restored.")})
	}
	res.Word = UnknownWord
	return reply(notFound(cmd))
}

func (d *Dispatcher) goProject(input, arg string, res Result) Result {
	n, ok := leadingInt(arg)
	projects := d.Content.Projects
	if !ok || n < 1 || n > len(projects) {
		res.Entries = []*Entry{d.entry(input, tw.Script{
			tw.TextBlock(fmt.Sprintf("Project number %s not found. Type 'projects' to see the list.", arg), tw.RoleError),
		})}
		return res
	}
	p := projects[n-1]
	switch {
	case p.HasLink():
		res.OpenURL = p.URL
	case p.Repo != "":
		res.OpenURL = p.Repo
	}
	res.Entries = []*Entry{d.entry(input, tw.Script{say(fmt.Sprintf("Opening %s...", p.Name))})}
	return res
}

// leadingInt reads the optionally signed digits at the start of s, ignoring
// whatever follows them: "2nd" is 2.
func leadingInt(s string) (int, bool) {
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	return n, err == nil
}
