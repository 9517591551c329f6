package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/oseayemenre/upepo/internal/logger"
	"github.com/oseayemenre/upepo/internal/models"
	"github.com/oseayemenre/upepo/internal/store"
)

type ctxKey int

const userKey ctxKey = iota

func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok && user != nil
}

// UserIDFromContext returns nil for anonymous requests.
func UserIDFromContext(ctx context.Context) *uuid.UUID {
	user, ok := UserFromContext(ctx)

	if !ok {
		return nil
	}

	id := user.ID
	return &id
}

type UserFinder interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// LoadSessionUser resolves the session's user id and puts the user in the request
// context. Requests whose session names no existing user continue anonymously.
func LoadSessionUser(s *Sessions, users UserFinder, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := s.UserID(r)

			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.GetUserByID(r.Context(), id)

			if err != nil {
				if !errors.Is(err, store.ErrUserNotFound) {
					log.Error(err.Error(), "service", "LoadSessionUser")
				}
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}
