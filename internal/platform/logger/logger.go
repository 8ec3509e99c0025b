// Package logger configures the structured logger and the request logging middleware.
package logger

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SlowRequestThreshold marks requests logged at warn level.
const SlowRequestThreshold = 2 * time.Second

// New creates a JSON logger writing to out at the given level.
// An unknown level falls back to info.
func New(out io.Writer, level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(out)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}

// Middleware logs one entry per request once the handler chain has finished.
func Middleware(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		entry := log.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"duration":  duration.String(),
			"remote_ip": c.ClientIP(),
		})
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}

		switch {
		case c.Writer.Status() >= 500:
			entry.Error("request failed")
		case duration > SlowRequestThreshold:
			entry.Warn("slow request detected")
		default:
			entry.Info("request completed")
		}
	}
}
