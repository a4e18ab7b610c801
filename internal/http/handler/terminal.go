package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/termfolio/internal/terminal"
	"github.com/Zachkp/termfolio/internal/theme"
	tw "github.com/Zachkp/termfolio/internal/typewriter"
)

const (
	sessionCookie = "termfolio_session"
	sessionMaxAge = 30 * 24 * 3600
)

func sessionID(c *gin.Context) string {
	id, err := c.Cookie(sessionCookie)
	if err != nil {
		return ""
	}
	return id
}

func setSessionCookie(c *gin.Context, id string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, id, sessionMaxAge, "/", "", false, true)
}

type entryView struct {
	ID      string    `json:"id"`
	Command string    `json:"command"`
	Lines   []tw.Line `json:"lines"`
}

func viewEntries(entries []*terminal.Entry) []entryView {
	out := make([]entryView, len(entries))
	for i, e := range entries {
		out[i] = entryView{ID: e.ID, Command: e.Command, Lines: e.Output.Final()}
	}
	return out
}

type stateView struct {
	ID     string          `json:"id"`
	Mode   terminal.Mode   `json:"mode"`
	Label  string          `json:"label"`
	Prompt string          `json:"prompt"`
	Title  string          `json:"title"`
	Window terminal.Window `json:"window"`
	Theme  string          `json:"theme"`
}

func viewState(s terminal.Snapshot) stateView {
	return stateView{
		ID:     s.ID,
		Mode:   s.Mode,
		Label:  s.Label,
		Prompt: s.Prompt,
		Title:  s.Title,
		Window: s.Window,
		Theme:  s.Theme,
	}
}

type sessionResponse struct {
	stateView
	Entries []entryView `json:"entries"`
}

// session returns the visitor's terminal, creating it on first visit.
// ?width= reports the viewport width.
func (h *Handler) session(c *gin.Context) {
	s := h.cfg.Manager.Session(c.Request.Context(), sessionID(c))
	if w, err := strconv.Atoi(c.Query("width")); err == nil {
		s.Resize(w)
	}
	setSessionCookie(c, s.ID)

	snap := s.Snapshot()
	c.JSON(http.StatusOK, sessionResponse{stateView: viewState(snap), Entries: viewEntries(snap.Entries)})
}

type commandRequest struct {
	Input string `json:"input"`
	Width int    `json:"width"`
}

type commandResponse struct {
	Entries []entryView `json:"entries"`
	Cleared bool        `json:"cleared"`
	OpenURL string      `json:"open_url,omitempty"`
	Session stateView   `json:"session"`
}

func (h *Handler) command(c *gin.Context) {
	var req commandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "BAD_REQUEST", "invalid command request")
		return
	}

	ctx := c.Request.Context()
	s := h.cfg.Manager.Session(ctx, sessionID(c))
	if req.Width > 0 {
		s.Resize(req.Width)
	}
	s, res, err := h.cfg.Manager.Handle(ctx, s.ID, req.Input)
	if err != nil {
		h.log.WithError(err).Error("handling command")
		writeError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		return
	}
	setSessionCookie(c, s.ID)

	c.JSON(http.StatusOK, commandResponse{
		Entries: viewEntries(res.Entries),
		Cleared: res.Cleared,
		OpenURL: res.OpenURL,
		Session: viewState(s.Snapshot()),
	})
}

// stream plays an entry's output as server-sent events: "frame" after every
// animation step, then "done". ?instant=1 skips straight to the last frame.
func (h *Handler) stream(c *gin.Context) {
	e, err := h.cfg.Manager.Entry(sessionID(c), c.Param("id"))
	if err != nil {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "entry not found")
		return
	}

	anim := e.Output.Animate()
	if c.Query("instant") == "1" {
		anim.Finish()
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	err = h.player().Play(c.Request.Context(), anim, func(f tw.Frame) error {
		c.SSEvent("frame", f)
		c.Writer.Flush()
		return nil
	})
	if err != nil {
		h.log.WithError(err).WithField("entry", e.ID).Debug("stream ended early")
		return
	}
	c.SSEvent("done", gin.H{"id": e.ID})
	c.Writer.Flush()
}

type completeResponse struct {
	Candidates []string `json:"candidates"`
	Completion string   `json:"completion"`
}

func (h *Handler) complete(c *gin.Context) {
	candidates := terminal.Complete(c.Query("prefix"))
	if candidates == nil {
		candidates = []string{}
	}
	c.JSON(http.StatusOK, completeResponse{
		Candidates: candidates,
		Completion: terminal.CommonPrefix(candidates),
	})
}

type recallRequest struct {
	Direction string `json:"direction" binding:"required,oneof=up down"`
}

func (h *Handler) recall(c *gin.Context) {
	var req recallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_DIRECTION", "direction must be up or down")
		return
	}
	s := h.cfg.Manager.Session(c.Request.Context(), sessionID(c))
	setSessionCookie(c, s.ID)

	input, ok := s.Browse(req.Direction == "up")
	c.JSON(http.StatusOK, gin.H{"input": input, "ok": ok})
}

type themeView struct {
	theme.Theme
	Roles map[tw.Role]string `json:"roles"`
}

func viewTheme(t theme.Theme) themeView {
	roles := make(map[tw.Role]string, len(tw.Roles))
	for _, r := range tw.Roles {
		roles[r] = t.Colors.Role(r)
	}
	return themeView{Theme: t, Roles: roles}
}

func (h *Handler) themes(c *gin.Context) {
	all := theme.All()
	views := make([]themeView, len(all))
	for i, t := range all {
		views[i] = viewTheme(t)
	}
	c.JSON(http.StatusOK, gin.H{
		"default": theme.Resolve(h.cfg.DefaultTheme).Name,
		"themes":  views,
	})
}

type themeRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *Handler) setTheme(c *gin.Context) {
	var req themeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "BAD_REQUEST", "theme name is required")
		return
	}
	s, err := h.cfg.Manager.SetTheme(c.Request.Context(), sessionID(c), req.Name)
	if errors.Is(err, terminal.ErrUnknownTheme) {
		writeError(c, http.StatusNotFound, "THEME_NOT_FOUND", "theme not found")
		return
	}
	setSessionCookie(c, s.ID)
	c.JSON(http.StatusOK, gin.H{"theme": viewTheme(theme.Resolve(s.Snapshot().Theme))})
}
