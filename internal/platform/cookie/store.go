// Package cookie carries the server-side session id in a signed browser cookie.
package cookie

import (
	"net/http"
	"time"

	"github.com/gorilla/sessions"
)

// Name is the cookie holding the signed session id.
const Name = "postboard_session"

const sessionIDKey = "sid"

// Store wraps a gorilla CookieStore.
type Store struct {
	store *sessions.CookieStore
}

// NewStore creates a Store signing cookies with secret.
func NewStore(secret []byte, maxAge time.Duration, secure bool) *Store {
	cs := sessions.NewCookieStore(secret)
	cs.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Store{store: cs}
}

// Save writes the session id into the cookie.
func (s *Store) Save(w http.ResponseWriter, r *http.Request, sessionID string) error {
	sess, _ := s.store.Get(r, Name)
	sess.Values[sessionIDKey] = sessionID
	return sess.Save(r, w)
}

// SessionID reads the session id from a valid cookie.
func (s *Store) SessionID(r *http.Request) (string, bool) {
	sess, err := s.store.Get(r, Name)
	if err != nil || sess.IsNew {
		return "", false
	}
	id, ok := sess.Values[sessionIDKey].(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// Clear expires the cookie.
func (s *Store) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, _ := s.store.Get(r, Name)
	sess.Values = map[interface{}]interface{}{}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}
