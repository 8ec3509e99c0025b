package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"

	"postboard/internal/feature/auth/domain/entity"
	"postboard/internal/feature/auth/usecase"
	"postboard/internal/platform/actor"
)

type fakeAuthenticator struct {
	sessions map[string]*entity.User
	err      error
}

func (f *fakeAuthenticator) Authenticate(ctx context.Context, sessionID string) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.sessions[sessionID]
	if !ok {
		return nil, usecase.ErrSessionNotFound
	}
	return u, nil
}

type fakeTokens struct{}

// ParseSessionID accepts tokens of the form "token-<sid>".
func (fakeTokens) ParseSessionID(token string) (string, error) {
	if len(token) > 6 && token[:6] == "token-" {
		return token[6:], nil
	}
	return "", errors.New("invalid token")
}

type fakeCookies struct{ sid string }

func (f fakeCookies) SessionID(r *http.Request) (string, bool) {
	return f.sid, f.sid != ""
}

func newRouter(auth Authenticator, cookieSID string, required bool) (*gin.Engine, *test.Hook) {
	gin.SetMode(gin.TestMode)
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	resolver := NewResolver(auth, fakeTokens{}, fakeCookies{sid: cookieSID}, log)

	guard := resolver.Optional()
	if required {
		guard = resolver.Required()
	}

	r := gin.New()
	r.GET("/whoami", guard, func(c *gin.Context) {
		a, ok := actor.FromContext(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"anonymous": true})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": a.ID, "username": a.Username, "sid": a.SessionID})
	})
	return r, hook
}

func doRequest(r http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestResolver_Required(t *testing.T) {
	auth := &fakeAuthenticator{sessions: map[string]*entity.User{
		"sid-a": {ID: 1, Username: "alice"},
		"sid-b": {ID: 2, Username: "bob"},
	}}

	tests := []struct {
		name       string
		cookieSID  string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"bearer token", "", "Bearer token-sid-a", http.StatusOK, `{"id":1,"username":"alice","sid":"sid-a"}`},
		{"cookie", "sid-b", "", http.StatusOK, `{"id":2,"username":"bob","sid":"sid-b"}`},
		{"bearer wins over cookie", "sid-b", "Bearer token-sid-a", http.StatusOK, `{"id":1,"username":"alice","sid":"sid-a"}`},
		{"no credentials", "", "", http.StatusUnauthorized, `{"error":"authentication required"}`},
		{"invalid bearer does not fall back", "sid-b", "Bearer garbage", http.StatusUnauthorized, `{"error":"authentication required"}`},
		{"non bearer scheme", "", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, `{"error":"authentication required"}`},
		{"unknown session", "sid-gone", "", http.StatusUnauthorized, `{"error":"authentication required"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newRouter(auth, tt.cookieSID, true)

			w := doRequest(r, tt.header)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestResolver_Optional(t *testing.T) {
	auth := &fakeAuthenticator{sessions: map[string]*entity.User{"sid-a": {ID: 1, Username: "alice"}}}

	r, _ := newRouter(auth, "", false)
	w := doRequest(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"anonymous":true}`, w.Body.String())

	r, _ = newRouter(auth, "sid-a", false)
	w = doRequest(r, "")
	assert.JSONEq(t, `{"id":1,"username":"alice","sid":"sid-a"}`, w.Body.String())
}

func TestResolver_LogsStoreFailures(t *testing.T) {
	r, hook := newRouter(&fakeAuthenticator{err: errors.New("redis down")}, "sid-a", true)

	w := doRequest(r, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	if assert.NotNil(t, hook.LastEntry()) {
		assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
		assert.Equal(t, "session lookup failed", hook.LastEntry().Message)
	}
}

func TestResolver_ExpiredSessionIsDebugOnly(t *testing.T) {
	r, hook := newRouter(&fakeAuthenticator{err: usecase.ErrSessionExpired}, "sid-a", true)

	w := doRequest(r, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	if assert.NotNil(t, hook.LastEntry()) {
		assert.Equal(t, logrus.DebugLevel, hook.LastEntry().Level)
	}
}
