package handler

import (
	"context"
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Zachkp/termfolio/internal/http/middleware"
)

const (
	adminCookie = "admin_token"
	// VisitorRetentionMonths bounds how long hashed visitor rows are kept.
	VisitorRetentionMonths = 12
	// Sessions untouched for this long are pruned alongside visitors.
	SessionRetention = 90 * 24 * time.Hour
)

// Credentials guard the admin dashboard.
type Credentials struct {
	Username string
	Password string
}

type admin struct {
	store    Store
	token    string
	salt     string
	username string
	password string
	log      logrus.FieldLogger
	now      func() time.Time
}

// newAdmin falls back to development credentials in gin debug mode. Outside
// debug mode, login stays disabled until both values are configured.
func newAdmin(st Store, creds Credentials, log logrus.FieldLogger) *admin {
	a := &admin{
		store:    st,
		token:    middleware.RandomToken(),
		salt:     middleware.RandomToken(),
		username: creds.Username,
		password: creds.Password,
		log:      log,
		now:      time.Now,
	}
	if gin.Mode() == gin.DebugMode {
		if a.username == "" {
			a.username = "admin"
			log.Warn("using default admin username, set ADMIN_USERNAME")
		}
		if a.password == "" {
			a.password = "admin123"
			log.Warn("using default admin password, set ADMIN_PASSWORD")
		}
		log.WithField("token", a.token).Debug("admin token")
	}
	if !a.enabled() {
		log.Warn("admin login disabled: credentials not configured")
	}
	return a
}

func (a *admin) enabled() bool {
	return a.username != "" && a.password != ""
}

func (a *admin) checkCredentials(username, password string) bool {
	if !a.enabled() {
		return false
	}
	u := subtle.ConstantTimeCompare([]byte(username), []byte(a.username))
	p := subtle.ConstantTimeCompare([]byte(password), []byte(a.password))
	return u&p == 1
}

func (a *admin) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (a *admin) register(r *gin.Engine) {
	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{"title": "Admin Login"})
	})
	r.POST("/admin/login", a.login)
	r.GET("/admin/logout", a.logout)

	g := r.Group("/admin")
	g.Use(a.requireAuth())
	g.GET("/dashboard", a.dashboard)
	g.GET("/api/stats", a.stats)
	g.GET("/export/stats", a.export)
	g.POST("/privacy/cleanup", a.cleanup)
}

func (a *admin) login(c *gin.Context) {
	visitor := middleware.HashIP(c.ClientIP(), a.salt)
	if !a.checkCredentials(c.PostForm("username"), c.PostForm("password")) {
		a.log.WithField("visitor", visitor).Warn("failed admin login")
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{"error": "Invalid credentials"})
		return
	}
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(adminCookie, a.token, 24*3600, "/admin", "", false, true)
	a.log.WithField("visitor", visitor).Info("admin login")
	c.Redirect(http.StatusFound, "/admin/dashboard")
}

func (a *admin) logout(c *gin.Context) {
	c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
	c.Redirect(http.StatusFound, "/admin/login")
}

func (a *admin) dashboard(c *gin.Context) {
	stats, err := a.store.Stats(c.Request.Context(), a.now())
	if err != nil {
		a.log.WithError(err).Error("loading admin stats")
		c.HTML(http.StatusInternalServerError, "admin-dashboard.html", gin.H{"error": "Failed to load statistics"})
		return
	}
	c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{"stats": stats})
}

func (a *admin) stats(c *gin.Context) {
	stats, err := a.store.Stats(c.Request.Context(), a.now())
	if err != nil {
		a.log.WithError(err).Error("loading admin stats")
		writeError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load statistics")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (a *admin) export(c *gin.Context) {
	stats, err := a.store.Stats(c.Request.Context(), a.now())
	if err != nil {
		a.log.WithError(err).Error("exporting admin stats")
		writeError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load statistics")
		return
	}
	c.Header("Content-Disposition", "attachment; filename=termfolio-stats.json")
	c.JSON(http.StatusOK, stats)
}

func (a *admin) cleanup(c *gin.Context) {
	visitors, sessions, err := Cleanup(c.Request.Context(), a.store, a.now())
	if err != nil {
		a.log.WithError(err).Error("privacy cleanup")
		writeError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "cleanup failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"visitors_removed": visitors, "sessions_removed": sessions})
}

// Cleanup deletes visitor rows and sessions past their retention.
func Cleanup(ctx context.Context, st Store, now time.Time) (visitors, sessions int64, err error) {
	visitors, err = st.CleanupVisitors(ctx, now.AddDate(0, -VisitorRetentionMonths, 0))
	if err != nil {
		return 0, 0, err
	}
	sessions, err = st.PruneSessions(ctx, now.Add(-SessionRetention))
	if err != nil {
		return visitors, 0, err
	}
	return visitors, sessions, nil
}
