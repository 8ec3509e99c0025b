// Package middleware resolves the acting user from a bearer token or the session cookie.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"postboard/internal/feature/auth/domain/entity"
	"postboard/internal/feature/auth/usecase"
	"postboard/internal/platform/actor"
)

// Authenticator turns a session id into its user.
type Authenticator interface {
	Authenticate(ctx context.Context, sessionID string) (*entity.User, error)
}

// TokenParser extracts the session id from a bearer token.
type TokenParser interface {
	ParseSessionID(token string) (string, error)
}

// CookieReader extracts the session id from the session cookie.
type CookieReader interface {
	SessionID(r *http.Request) (string, bool)
}

// Resolver builds gin middleware that attaches an actor.Actor to the request.
type Resolver struct {
	auth    Authenticator
	tokens  TokenParser
	cookies CookieReader
	log     logrus.FieldLogger
}

// NewResolver creates a Resolver.
func NewResolver(auth Authenticator, tokens TokenParser, cookies CookieReader, log logrus.FieldLogger) *Resolver {
	return &Resolver{auth: auth, tokens: tokens, cookies: cookies, log: log}
}

// sessionID prefers the Authorization header over the cookie.
// A malformed or invalid bearer token never falls back to the cookie.
func (r *Resolver) sessionID(c *gin.Context) (string, bool) {
	if header := c.GetHeader("Authorization"); header != "" {
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			return "", false
		}
		sid, err := r.tokens.ParseSessionID(token)
		if err != nil {
			r.log.WithFields(logrus.Fields{"error": err, "remote_ip": c.ClientIP()}).Debug("bearer token rejected")
			return "", false
		}
		return sid, true
	}
	return r.cookies.SessionID(c.Request)
}

func (r *Resolver) resolve(c *gin.Context) (actor.Actor, bool) {
	sid, ok := r.sessionID(c)
	if !ok {
		return actor.Actor{}, false
	}
	user, err := r.auth.Authenticate(c.Request.Context(), sid)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrSessionNotFound),
			errors.Is(err, usecase.ErrSessionExpired),
			errors.Is(err, usecase.ErrSessionRevoked),
			errors.Is(err, usecase.ErrUserNotFound):
			r.log.WithFields(logrus.Fields{"error": err, "remote_ip": c.ClientIP()}).Debug("session rejected")
		default:
			r.log.WithFields(logrus.Fields{"error": err, "remote_ip": c.ClientIP()}).Error("session lookup failed")
		}
		return actor.Actor{}, false
	}
	return actor.Actor{ID: user.ID, Username: user.Username, SessionID: sid}, true
}

// Required aborts with 401 unless the request carries a live session.
func (r *Resolver) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		a, ok := r.resolve(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		actor.Set(c, a)
		c.Next()
	}
}

// Optional attaches the actor when there is one and never aborts.
func (r *Resolver) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if a, ok := r.resolve(c); ok {
			actor.Set(c, a)
		}
		c.Next()
	}
}
