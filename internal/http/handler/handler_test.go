package handler

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/termfolio/internal/contact"
	"github.com/Zachkp/termfolio/internal/content"
	"github.com/Zachkp/termfolio/internal/http/middleware"
	"github.com/Zachkp/termfolio/internal/logger"
	"github.com/Zachkp/termfolio/internal/store"
	"github.com/Zachkp/termfolio/internal/terminal"
	tw "github.com/Zachkp/termfolio/internal/typewriter"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testSite = terminal.Identity{Name: "demo-portfolio", ShortName: "demo", Version: "1.0.0"}

type fakeSender struct {
	got []contact.Message
	err error
}

func (f *fakeSender) Send(_ context.Context, msg contact.Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	f.got = append(f.got, msg)
	return f.err
}

type fakeStore struct {
	pingErr  error
	statsErr error
	before   []time.Time
}

func (f *fakeStore) Ping(context.Context) error { return f.pingErr }

func (f *fakeStore) Stats(context.Context, time.Time) (*store.Stats, error) {
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	return &store.Stats{
		TotalVisitors: 7,
		TopCommands:   []store.CommandStat{{Command: "help", Count: 3}},
	}, nil
}

func (f *fakeStore) CleanupVisitors(_ context.Context, before time.Time) (int64, error) {
	f.before = append(f.before, before)
	return 2, nil
}

func (f *fakeStore) PruneSessions(_ context.Context, before time.Time) (int64, error) {
	f.before = append(f.before, before)
	return 1, nil
}

type harness struct {
	t      *testing.T
	router *gin.Engine
	sender *fakeSender
	store  *fakeStore
	reg    *prometheus.Registry
	jar    []*http.Cookie
}

func instantPlayer() *tw.Player {
	p := tw.NewPlayer(0)
	p.After = func(time.Duration) <-chan time.Time {
		ch := make(chan time.Time, 1)
		ch <- time.Time{}
		return ch
	}
	return p
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	log := logger.Discard()
	sender := &fakeSender{}
	st := &fakeStore{}
	reg := prometheus.NewRegistry()
	metrics, err := middleware.NewMetrics(reg)
	require.NoError(t, err)

	mgr := terminal.NewManager(terminal.NewDispatcher(content.Default(), sender), nil, testSite, "dark", log)
	mgr.Observe = metrics.ObserveCommand

	cfg := Config{
		Manager:      mgr,
		Sender:       sender,
		Store:        st,
		Gatherer:     reg,
		Metrics:      metrics,
		Admin:        Credentials{Username: "root", Password: "hunter2"},
		Site:         testSite,
		DefaultTheme: "dark",
		Log:          log,
	}
	h := New(cfg)
	h.player = instantPlayer

	r, err := h.Router()
	require.NoError(t, err)

	return &harness{t: t, router: r, sender: sender, store: st, reg: reg}
}

func (h *harness) do(method, path string, body any) *httptest.ResponseRecorder {
	h.t.Helper()
	var rd *bytes.Reader
	switch b := body.(type) {
	case nil:
		rd = bytes.NewReader(nil)
	case string:
		rd = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(h.t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range h.jar {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	h.keep(w)
	return w
}

func (h *harness) form(path string, values url.Values) *httptest.ResponseRecorder {
	h.t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	h.keep(w)
	return w
}

func (h *harness) keep(w *httptest.ResponseRecorder) {
	for _, c := range w.Result().Cookies() {
		kept := false
		for i, old := range h.jar {
			if old.Name == c.Name {
				h.jar[i] = c
				kept = true
			}
		}
		if !kept {
			h.jar = append(h.jar, c)
		}
	}
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

type event struct {
	name string
	data string
}

func events(t *testing.T, body string) []event {
	t.Helper()
	var out []event
	var cur event
	sc := bufio.NewScanner(strings.NewReader(body))
	sc.Buffer(make([]byte, 1024*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "event:"):
			cur.name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			cur.data = strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		case line == "" && cur.name != "":
			out = append(out, cur)
			cur = event{}
		}
	}
	return out
}

func TestHealth(t *testing.T) {
	h := newHarness(t)
	w := h.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())

	h.store.pingErr = errors.New("disk gone")
	w = h.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var body errorPayload
	decode(t, w, &body)
	assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	assert.NotEmpty(t, body.RequestID)
}

func TestNotFoundEnvelope(t *testing.T) {
	h := newHarness(t)
	w := h.do(http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	var body errorPayload
	decode(t, w, &body)
	assert.Equal(t, "NOT_FOUND", body.Error.Code)

	w = h.do(http.MethodDelete, "/api/session", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestIndexRendersPrompt(t *testing.T) {
	h := newHarness(t)
	w := h.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "visitor@demo-portfolio")
	assert.NotEmpty(t, h.jar)
}

type sessionBody struct {
	ID      string          `json:"id"`
	Label   string          `json:"label"`
	Prompt  string          `json:"prompt"`
	Title   string          `json:"title"`
	Theme   string          `json:"theme"`
	Window  terminal.Window `json:"window"`
	Entries []entryView     `json:"entries"`
}

func TestSessionWelcome(t *testing.T) {
	h := newHarness(t)
	w := h.do(http.MethodGet, "/api/session?width=1200", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var s sessionBody
	decode(t, w, &s)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "visitor@demo-portfolio:~$", s.Label)
	assert.Equal(t, "visitor@demo-portfolio: ~", s.Title)
	assert.Equal(t, "dark", s.Theme)
	require.Len(t, s.Entries, 1)
	assert.Equal(t, "welcome", s.Entries[0].Command)

	// same cookie, same session; a narrow viewport changes the label
	w = h.do(http.MethodGet, "/api/session?width=400", nil)
	var again sessionBody
	decode(t, w, &again)
	assert.Equal(t, s.ID, again.ID)
	assert.Equal(t, "@demo:~$", again.Label)
	assert.True(t, again.Window.Maximized)
}

func TestCommandAndStream(t *testing.T) {
	h := newHarness(t)
	h.do(http.MethodGet, "/api/session", nil)

	w := h.do(http.MethodPost, "/api/terminal/command", commandRequest{Input: "help", Width: 1200})
	require.Equal(t, http.StatusOK, w.Code)
	var res struct {
		Entries []entryView `json:"entries"`
		Cleared bool        `json:"cleared"`
		Session sessionBody `json:"session"`
	}
	decode(t, w, &res)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, "help", res.Entries[0].Command)
	assert.False(t, res.Cleared)

	w = h.do(http.MethodGet, "/api/terminal/entries/"+res.Entries[0].ID+"/stream", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

	evs := events(t, w.Body.String())
	require.GreaterOrEqual(t, len(evs), 3)
	assert.Equal(t, "frame", evs[0].name)
	last := evs[len(evs)-1]
	assert.Equal(t, "done", last.name)

	var final tw.Frame
	require.NoError(t, json.Unmarshal([]byte(evs[len(evs)-2].data), &final))
	assert.True(t, final.Done)
	assert.Contains(t, final.Text(), "Available commands:")

	assert.Equal(t, 1.0, counterValue(t, h.reg, "terminal_commands_total", "help"))
}

func TestStreamInstant(t *testing.T) {
	h := newHarness(t)
	h.do(http.MethodGet, "/api/session", nil)

	w := h.do(http.MethodGet, "/api/terminal/entries/init/stream?instant=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	evs := events(t, w.Body.String())
	require.Len(t, evs, 2)
	assert.Equal(t, "frame", evs[0].name)
	assert.Equal(t, "done", evs[1].name)

	var f tw.Frame
	require.NoError(t, json.Unmarshal([]byte(evs[0].data), &f))
	assert.True(t, f.Done)
	assert.Contains(t, f.Text(), "Welcome to demo-portfolio. v1.0.0")
}

func TestStreamUnknownEntry(t *testing.T) {
	h := newHarness(t)
	w := h.do(http.MethodGet, "/api/terminal/entries/missing/stream", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	h.do(http.MethodGet, "/api/session", nil)
	w = h.do(http.MethodGet, "/api/terminal/entries/missing/stream", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCommandBadRequest(t *testing.T) {
	h := newHarness(t)
	w := h.do(http.MethodPost, "/api/terminal/command", "{")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCommandClearAndOpen(t *testing.T) {
	h := newHarness(t)
	h.do(http.MethodGet, "/api/session", nil)

	w := h.do(http.MethodPost, "/api/terminal/command", commandRequest{Input: "clear"})
	var cleared commandResponse
	decode(t, w, &cleared)
	assert.True(t, cleared.Cleared)
	assert.Empty(t, cleared.Entries)

	w = h.do(http.MethodPost, "/api/terminal/command", commandRequest{Input: "go 1"})
	var opened commandResponse
	decode(t, w, &opened)
	assert.NotEmpty(t, opened.OpenURL)
}

func TestRecallAndComplete(t *testing.T) {
	h := newHarness(t)
	h.do(http.MethodGet, "/api/session", nil)
	h.do(http.MethodPost, "/api/terminal/command", commandRequest{Input: "help"})
	h.do(http.MethodPost, "/api/terminal/command", commandRequest{Input: "about"})

	var r struct {
		Input string `json:"input"`
		OK    bool   `json:"ok"`
	}
	decode(t, h.do(http.MethodPost, "/api/terminal/recall", gin.H{"direction": "up"}), &r)
	assert.Equal(t, "about", r.Input)
	assert.True(t, r.OK)
	decode(t, h.do(http.MethodPost, "/api/terminal/recall", gin.H{"direction": "up"}), &r)
	assert.Equal(t, "help", r.Input)

	w := h.do(http.MethodPost, "/api/terminal/recall", gin.H{"direction": "sideways"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var c completeResponse
	decode(t, h.do(http.MethodGet, "/api/terminal/complete?prefix=th", nil), &c)
	assert.Contains(t, c.Candidates, "theme")
	assert.Equal(t, "theme", c.Completion)

	decode(t, h.do(http.MethodGet, "/api/terminal/complete?prefix=", nil), &c)
	assert.Empty(t, c.Candidates)
	assert.Empty(t, c.Completion)
}

func TestThemes(t *testing.T) {
	h := newHarness(t)
	w := h.do(http.MethodGet, "/api/themes", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Default string `json:"default"`
		Themes  []struct {
			Name   string            `json:"name"`
			Colors map[string]string `json:"colors"`
			Roles  map[string]string `json:"roles"`
		} `json:"themes"`
	}
	decode(t, w, &body)
	assert.Equal(t, "dark", body.Default)
	require.NotEmpty(t, body.Themes)
	first := body.Themes[0]
	assert.Equal(t, first.Colors["foreground"], first.Roles[""])
	assert.Equal(t, first.Colors["prompt"], first.Roles["prompt"])
}

func TestSetTheme(t *testing.T) {
	h := newHarness(t)
	h.do(http.MethodGet, "/api/session", nil)

	w := h.do(http.MethodPost, "/api/terminal/theme", gin.H{"name": "nord"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var body struct {
		Theme struct {
			Name string `json:"name"`
		} `json:"theme"`
	}
	decode(t, w, &body)
	assert.Equal(t, "nord", body.Theme.Name)

	var s sessionBody
	decode(t, h.do(http.MethodGet, "/api/session", nil), &s)
	assert.Equal(t, "nord", s.Theme)

	w = h.do(http.MethodPost, "/api/terminal/theme", gin.H{"name": "sepia"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = h.do(http.MethodPost, "/api/terminal/theme", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContact(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodPost, "/api/contact", gin.H{"name": "Ada"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Name and message are required"}`, w.Body.String())

	w = h.do(http.MethodPost, "/api/contact", gin.H{"name": "Ada", "message": "hello"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
	require.Len(t, h.sender.got, 1)
	assert.Equal(t, "Ada", h.sender.got[0].Name)

	h.sender.err = errors.New("relay down")
	w = h.do(http.MethodPost, "/api/contact", gin.H{"name": "Ada", "message": "hello"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to send email"}`, w.Body.String())
}

func TestAdminRequiresLogin(t *testing.T) {
	h := newHarness(t)
	for _, path := range []string{"/admin/dashboard", "/admin/api/stats", "/admin/export/stats"} {
		w := h.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/admin/login", w.Header().Get("Location"), path)
	}
}

func TestAdminLogin(t *testing.T) {
	h := newHarness(t)

	w := h.form("/admin/login", url.Values{"username": {"root"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")

	w = h.form("/admin/login", url.Values{"username": {"root"}, "password": {"hunter2"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/dashboard", w.Header().Get("Location"))

	w = h.do(http.MethodGet, "/admin/dashboard", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "help")

	w = h.do(http.MethodGet, "/admin/api/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats store.Stats
	decode(t, w, &stats)
	assert.Equal(t, int64(7), stats.TotalVisitors)

	w = h.do(http.MethodGet, "/admin/export/stats", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")

	w = h.do(http.MethodPost, "/admin/privacy/cleanup", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"visitors_removed":2,"sessions_removed":1}`, w.Body.String())

	h.store.statsErr = errors.New("locked")
	w = h.do(http.MethodGet, "/admin/api/stats", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	h.do(http.MethodGet, "/admin/logout", nil)
	w = h.do(http.MethodGet, "/admin/dashboard", nil)
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestAdminDisabledWithoutCredentials(t *testing.T) {
	a := newAdmin(&fakeStore{}, Credentials{}, logger.Discard())
	assert.False(t, a.enabled())
	assert.False(t, a.checkCredentials("", ""))
	assert.False(t, a.checkCredentials("admin", "admin123"))
}

func TestCleanupRetention(t *testing.T) {
	st := &fakeStore{}
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	v, s, err := Cleanup(context.Background(), st, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)
	assert.Equal(t, int64(1), s)
	require.Len(t, st.before, 2)
	assert.Equal(t, time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC), st.before[0])
	assert.Equal(t, now.Add(-SessionRetention), st.before[1])
}

func TestMetricsEndpoint(t *testing.T) {
	h := newHarness(t)
	h.do(http.MethodGet, "/health", nil)
	w := h.do(http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func counterValue(t *testing.T, g prometheus.Gatherer, name, label string) float64 {
	t.Helper()
	families, err := g.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, m := range f.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetValue() == label {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}
