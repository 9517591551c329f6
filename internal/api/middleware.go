package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oseayemenre/upepo/internal/auth"
)

type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriterWrapper(w http.ResponseWriter) *responseWriterWrapper {
	return &responseWriterWrapper{ResponseWriter: w, statusCode: http.StatusOK}
}

func (w *responseWriterWrapper) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

func (a *Api) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := newResponseWriterWrapper(w)

		next.ServeHTTP(ww, r)

		duration := time.Since(start)

		route := ""
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			route = rctx.RoutePattern()
		}

		a.metrics.observe(r.Method, route, ww.statusCode, duration)

		a.logger.Info(
			"request",
			"method", r.Method,
			"path", r.URL.String(),
			"status", ww.statusCode,
			"duration", duration.String(),
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)
	})
}

// RequireSession rejects requests without a signed-in user.
func (a *Api) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.UserFromContext(r.Context()); !ok {
			a.logger.Warn("no session user", "status", "permission denied", "path", r.URL.Path)
			respondWithError(w, http.StatusUnauthorized, errUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects anonymous and non-admin callers alike with 401.
func (a *Api) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())

		if !ok || !user.IsAdmin() {
			a.logger.Warn("admin role required", "status", "permission denied", "path", r.URL.Path)
			respondWithError(w, http.StatusUnauthorized, errUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
