// Package handler wires the HTTP routes of the terminal site.
package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/Zachkp/termfolio/internal/contact"
	"github.com/Zachkp/termfolio/internal/http/middleware"
	"github.com/Zachkp/termfolio/internal/store"
	"github.com/Zachkp/termfolio/internal/terminal"
	"github.com/Zachkp/termfolio/internal/theme"
	tw "github.com/Zachkp/termfolio/internal/typewriter"
	"github.com/Zachkp/termfolio/web"
)

// Store is what the handlers read besides terminal sessions; *store.Store
// satisfies it.
type Store interface {
	Ping(ctx context.Context) error
	Stats(ctx context.Context, now time.Time) (*store.Stats, error)
	CleanupVisitors(ctx context.Context, before time.Time) (int64, error)
	PruneSessions(ctx context.Context, before time.Time) (int64, error)
}

// Config carries the dependencies of the router.
type Config struct {
	Manager      *terminal.Manager
	Sender       contact.Sender
	Store        Store
	Gatherer     prometheus.Gatherer
	Metrics      *middleware.Metrics
	Tracker      *middleware.VisitorTracker
	Admin        Credentials
	Site         terminal.Identity
	DefaultTheme string
	// FrameInterval throttles streamed animation frames.
	FrameInterval time.Duration
	// TypeSpeed is the per-character tick that the default speed maps to.
	TypeSpeed time.Duration
	Log       logrus.FieldLogger
}

type Handler struct {
	cfg    Config
	log    logrus.FieldLogger
	admin  *admin
	player func() *tw.Player
}

// New builds the handler set. Admin routes are registered only when a store
// is configured.
func New(cfg Config) *Handler {
	h := &Handler{
		cfg: cfg,
		log: cfg.Log,
		player: func() *tw.Player {
			p := tw.NewPlayer(cfg.FrameInterval)
			p.Pace = tw.PaceFor(cfg.TypeSpeed)
			return p
		},
	}
	if cfg.Store != nil {
		h.admin = newAdmin(cfg.Store, cfg.Admin, cfg.Log)
	}
	return h
}

// NewRouter returns a gin engine with middleware and every route.
func NewRouter(cfg Config) (*gin.Engine, error) {
	return New(cfg).Router()
}

// Router builds the engine around h.
func (h *Handler) Router() (*gin.Engine, error) {
	cfg := h.cfg
	r := gin.New()
	r.HandleMethodNotAllowed = true

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(cfg.Log))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Handler())
	}
	if cfg.Tracker != nil {
		r.Use(cfg.Tracker.Handler())
	}

	r.StaticFS("/static", web.Static())
	h.Register(r)
	return r, nil
}

// Register attaches the routes to r.
func (h *Handler) Register(r *gin.Engine) {
	r.GET("/", h.index)
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", nil)
	})
	r.GET("/health", h.health)
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	if h.cfg.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api")
	api.GET("/session", h.session)
	api.GET("/themes", h.themes)
	api.POST("/contact", h.contact)

	term := api.Group("/terminal")
	term.POST("/command", h.command)
	term.GET("/entries/:id/stream", h.stream)
	term.GET("/complete", h.complete)
	term.POST("/recall", h.recall)
	term.POST("/theme", h.setTheme)

	if h.admin != nil {
		h.admin.register(r)
	}

	r.NoRoute(notFound)
	r.NoMethod(methodNotAllowed)
}

func (h *Handler) index(c *gin.Context) {
	s := h.cfg.Manager.Session(c.Request.Context(), sessionID(c))
	setSessionCookie(c, s.ID)
	snap := s.Snapshot()
	c.HTML(http.StatusOK, "index.html", gin.H{
		"site":   h.cfg.Site,
		"title":  snap.Title,
		"prompt": snap.Prompt,
		"themes": theme.All(),
	})
}

func (h *Handler) health(c *gin.Context) {
	if h.cfg.Store != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.cfg.Store.Ping(ctx); err != nil {
			h.log.WithError(err).Warn("health check")
			writeError(c, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
