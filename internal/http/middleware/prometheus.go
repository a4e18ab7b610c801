package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors of the site.
type Metrics struct {
	requestCount *prometheus.CounterVec
	commandCount *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests processed.",
			},
			[]string{"method", "path", "status"},
		),
		commandCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "terminal_commands_total",
				Help: "Total number of terminal commands handled, by command word.",
			},
			[]string{"command"},
		),
	}

	for _, c := range []prometheus.Collector{m.requestCount, m.commandCount} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Handler counts requests by route pattern. /metrics itself is not counted.
func (m *Metrics) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		c.Next()

		// Route pattern, e.g. /api/terminal/entries/:id/stream. Unmatched
		// paths share one label.
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.requestCount.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
	}
}

// ObserveCommand counts one terminal command word.
func (m *Metrics) ObserveCommand(word string) {
	m.commandCount.WithLabelValues(word).Inc()
}
