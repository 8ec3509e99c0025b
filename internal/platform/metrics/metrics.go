// Package metrics exposes Prometheus counters for requests and board events.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Board event names recorded by the handlers.
const (
	EventPostCreated  = "post_created"
	EventPostEdited   = "post_edited"
	EventPostDeleted  = "post_deleted"
	EventCommentAdded = "comment_added"
	EventLikeAdded    = "like_added"
	EventLikeRejected = "like_rejected"
	EventSignup       = "signup"
	EventLogin        = "login"
	EventLoginFailed  = "login_failed"
)

// Metrics owns a private registry so tests can create as many as they need.
type Metrics struct {
	registry *prometheus.Registry

	SuccessfulRequests *prometheus.CounterVec
	BadRequests        *prometheus.CounterVec
	Events             *prometheus.CounterVec
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		SuccessfulRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "postboard_successful_requests_total",
				Help: "Total number of successful (2xx/3xx) HTTP requests",
			},
			[]string{"method", "route"},
		),
		BadRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "postboard_unsuccessful_requests_total",
				Help: "Total number of unsuccessful (4xx/5xx) HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		Events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "postboard_events_total",
				Help: "Board and auth events by kind",
			},
			[]string{"event"},
		),
	}

	m.registry.MustRegister(m.SuccessfulRequests, m.BadRequests, m.Events)
	return m
}

// RecordEvent increments the counter for one event kind.
func (m *Metrics) RecordEvent(event string) {
	m.Events.WithLabelValues(event).Inc()
}

// Middleware counts requests by matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		if status < 400 {
			m.SuccessfulRequests.WithLabelValues(c.Request.Method, route).Inc()
			return
		}
		m.BadRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
