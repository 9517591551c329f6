package auth

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	SessionName = "upepo_session"
	userIDKey   = "user_id"
	maxAge      = 30 * 24 * 60 * 60
)

var ErrWeakSecret = errors.New("session secret must not be empty")

// Sessions keeps the signed-in user id in a signed cookie.
type Sessions struct {
	store *sessions.CookieStore
}

func NewSessions(secret string, secure bool) (*Sessions, error) {
	if secret == "" {
		return nil, ErrWeakSecret
	}

	store := sessions.NewCookieStore([]byte(secret))
	store.MaxAge(maxAge)
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.Secure = secure
	store.Options.SameSite = http.SameSiteLaxMode

	return &Sessions{store: store}, nil
}

// Store exposes the cookie store so OAuth state can share it.
func (s *Sessions) Store() sessions.Store {
	return s.store
}

func (s *Sessions) SignIn(w http.ResponseWriter, r *http.Request, userID uuid.UUID) error {
	session, _ := s.store.Get(r, SessionName)

	session.Values[userIDKey] = userID.String()
	session.Options.MaxAge = maxAge

	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("error saving session: %w", err)
	}

	return nil
}

func (s *Sessions) SignOut(w http.ResponseWriter, r *http.Request) error {
	session, _ := s.store.Get(r, SessionName)

	delete(session.Values, userIDKey)
	session.Options.MaxAge = -1

	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("error clearing session: %w", err)
	}

	return nil
}

// UserID returns the id recorded at sign-in. A missing, tampered or
// unparsable session yields false.
func (s *Sessions) UserID(r *http.Request) (uuid.UUID, bool) {
	session, err := s.store.Get(r, SessionName)

	if err != nil {
		return uuid.Nil, false
	}

	raw, ok := session.Values[userIDKey].(string)

	if !ok || raw == "" {
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)

	if err != nil {
		return uuid.Nil, false
	}

	return id, true
}
