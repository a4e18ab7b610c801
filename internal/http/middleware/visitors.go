package middleware

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Zachkp/termfolio/internal/store"
)

// VisitRecorder persists page views; *store.Store satisfies it.
type VisitRecorder interface {
	RecordVisit(ctx context.Context, v store.Visit) error
}

// Paths never tracked: assets, the admin area, probes and streams.
var untrackedPrefixes = []string{
	"/static/", "/images/", "/admin", "/favicon", "/privacy",
	"/metrics", "/health", "/api/",
}

// VisitorTracker records privacy-conscious page views: the client address
// is salted and hashed before it is stored, and Do Not Track is honoured.
type VisitorTracker struct {
	rec  VisitRecorder
	salt string
	log  logrus.FieldLogger
	// Async records in a goroutine so the request is not held up.
	Async bool
}

// NewVisitorTracker uses a random per-process salt, so hashes cannot be
// correlated across restarts.
func NewVisitorTracker(rec VisitRecorder, log logrus.FieldLogger) *VisitorTracker {
	return &VisitorTracker{rec: rec, salt: RandomToken(), log: log, Async: true}
}

// HashIP returns the truncated salted SHA-256 of ip.
func (t *VisitorTracker) HashIP(ip string) string {
	return HashIP(ip, t.salt)
}

func HashIP(ip, salt string) string {
	sum := sha256.Sum256([]byte(ip + salt))
	return hex.EncodeToString(sum[:])[:16]
}

// RandomToken returns 32 random bytes hex encoded.
func RandomToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	return hex.EncodeToString(b)
}

func tracked(path string) bool {
	for _, p := range untrackedPrefixes {
		if strings.HasPrefix(path, p) {
			return false
		}
	}
	return true
}

func (t *VisitorTracker) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if !tracked(path) || c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		v := store.Visit{
			HashedIP:  t.HashIP(c.ClientIP()),
			UserAgent: c.GetHeader("User-Agent"),
			Path:      path,
			Timestamp: time.Now(),
		}
		if t.Async {
			go t.record(v)
		} else {
			t.record(v)
		}
		c.Next()
	}
}

func (t *VisitorTracker) record(v store.Visit) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := t.rec.RecordVisit(ctx, v); err != nil {
		t.log.WithError(err).Warn("recording visitor")
	}
}
