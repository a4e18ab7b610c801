package terminal

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Zachkp/termfolio/internal/store"
	"github.com/Zachkp/termfolio/internal/theme"
)

var (
	ErrUnknownEntry = errors.New("terminal: unknown entry")
	ErrUnknownTheme = errors.New("terminal: unknown theme")
)

// Store is the persistence the manager needs; *store.Store satisfies it.
type Store interface {
	LoadSession(ctx context.Context, id string) (*store.SessionRecord, error)
	SaveTheme(ctx context.Context, id, theme string) error
	SaveHistory(ctx context.Context, id string, items []store.HistoryItem) error
	SaveRecall(ctx context.Context, id string, commands []string) error
	LogCommand(ctx context.Context, command string) error
}

type tracked struct {
	session  *Session
	lastSeen time.Time
}

// Manager keeps live sessions in memory and mirrors them to the store.
// Persistence is best effort: failures are logged and never surface to the
// visitor.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*tracked

	disp         *Dispatcher
	store        Store
	site         Identity
	defaultTheme string
	log          logrus.FieldLogger
	now          func() time.Time

	// Observe, when set, is called with every command word handled.
	Observe func(word string)
}

func NewManager(disp *Dispatcher, st Store, site Identity, defaultTheme string, log logrus.FieldLogger) *Manager {
	return &Manager{
		sessions:     make(map[string]*tracked),
		disp:         disp,
		store:        st,
		site:         site,
		defaultTheme: theme.Resolve(defaultTheme).Name,
		log:          log,
		now:          time.Now,
	}
}

// Session returns the live session for id, loading it from the store or
// starting a fresh one. An empty id always starts a new session.
func (m *Manager) Session(ctx context.Context, id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if t, ok := m.sessions[id]; ok && id != "" {
		t.lastSeen = m.now()
		return t.session
	}
	if id == "" {
		id = uuid.NewString()
	}

	s := m.load(ctx, id)
	m.sessions[id] = &tracked{session: s, lastSeen: m.now()}
	return s
}

func (m *Manager) load(ctx context.Context, id string) *Session {
	s := NewSession(id, m.site, m.defaultTheme)
	if m.store == nil {
		m.disp.Start(s, false)
		return s
	}

	rec, err := m.store.LoadSession(ctx, id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		m.disp.Start(s, false)
		return s
	case err != nil:
		m.log.WithError(err).WithField("session", id).Warn("loading session, starting fresh")
		m.disp.Start(s, false)
		return s
	}

	if rec.Theme != "" {
		s.Theme = theme.Resolve(rec.Theme).Name
	}
	s.Recall = NewRecall(rec.Recall)
	m.disp.Start(s, len(rec.History) > 0)
	return s
}

// Handle runs input in the session and persists the outcome.
func (m *Manager) Handle(ctx context.Context, id, input string) (*Session, Result, error) {
	s := m.Session(ctx, id)
	res, err := m.disp.Handle(ctx, s, input)
	if err != nil || res.Ignored {
		return s, res, err
	}

	if res.Word != "" {
		if m.Observe != nil {
			m.Observe(res.Word)
		}
		m.persist(ctx, s, res)
	}
	return s, res, nil
}

func (m *Manager) persist(ctx context.Context, s *Session, res Result) {
	if m.store == nil {
		return
	}
	log := m.log.WithField("session", s.ID)

	s.mu.Lock()
	items := make([]store.HistoryItem, 0, len(s.Entries))
	for _, e := range s.Entries {
		if !e.Private {
			items = append(items, store.HistoryItem{ID: e.ID, Command: e.Command})
		}
	}
	recall := s.Recall.Items()
	themeName := s.Theme
	s.mu.Unlock()

	if err := m.store.LogCommand(ctx, res.Word); err != nil {
		log.WithError(err).Warn("logging command")
	}
	if err := m.store.SaveHistory(ctx, s.ID, items); err != nil {
		log.WithError(err).Warn("saving history")
	}
	if err := m.store.SaveRecall(ctx, s.ID, recall); err != nil {
		log.WithError(err).Warn("saving recall")
	}
	if res.ThemeChanged {
		if err := m.store.SaveTheme(ctx, s.ID, themeName); err != nil {
			log.WithError(err).Warn("saving theme")
		}
	}
}

// SetTheme switches the theme from outside the command line (the theme picker).
func (m *Manager) SetTheme(ctx context.Context, id, name string) (*Session, error) {
	t, ok := theme.Lookup(name)
	if !ok {
		return nil, ErrUnknownTheme
	}
	s := m.Session(ctx, id)
	s.mu.Lock()
	s.Theme = t.Name
	s.mu.Unlock()

	if m.store != nil {
		if err := m.store.SaveTheme(ctx, s.ID, t.Name); err != nil {
			m.log.WithError(err).WithField("session", s.ID).Warn("saving theme")
		}
	}
	return s, nil
}

// Entry looks up an entry of a live session.
func (m *Manager) Entry(sessionID, entryID string) (*Entry, error) {
	m.mu.Lock()
	t, ok := m.sessions[sessionID]
	m.mu.Unlock()
	if !ok {
		return nil, ErrUnknownEntry
	}
	e, ok := t.session.Entry(entryID)
	if !ok {
		return nil, ErrUnknownEntry
	}
	return e, nil
}

// Sweep drops sessions idle for longer than idle from memory. They are
// reloaded from the store on the next request.
func (m *Manager) Sweep(idle time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := m.now().Add(-idle)
	n := 0
	for id, t := range m.sessions {
		if t.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// Live is the number of sessions held in memory.
func (m *Manager) Live() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
