package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/oseayemenre/upepo/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestGateMiddleware(t *testing.T) {
	tests := []struct {
		name         string
		admin        bool
		user         *models.User
		expectedCode int
	}{
		{
			name:         "session gate should return 401 for anonymous requests",
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "session gate should let members through",
			user:         memberUser,
			expectedCode: http.StatusOK,
		},
		{
			name:         "admin gate should return 401 for anonymous requests",
			admin:        true,
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "admin gate should return 401 for members",
			admin:        true,
			user:         memberUser,
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "admin gate should let admins through",
			admin:        true,
			user:         adminUser,
			expectedCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestApi(t, &testStore{})

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			gate := a.RequireSession
			if tt.admin {
				gate = a.RequireAdmin
			}

			req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/books", nil), tt.user)
			rr := httptest.NewRecorder()

			gate(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedCode == http.StatusUnauthorized {
				assert.Equal(t, "unauthorized", decodeError(t, rr.Body.Bytes()).Error)
			}
		})
	}
}

func TestLoggingMiddlewareRecordsRoutePattern(t *testing.T) {
	a := newTestApi(t, &testStore{})
	a.metrics = newMetrics(prometheus.NewRegistry())

	router := chi.NewRouter()
	router.Use(a.LoggingMiddleware)
	router.Get("/books/{bookId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/books/4b1a", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.Equal(t, float64(1), testutil.ToFloat64(a.metrics.requests.WithLabelValues(http.MethodGet, "/books/{bookId}", "418")))
}

func TestMetricsObserveNilSafe(t *testing.T) {
	var m *metrics

	assert.NotPanics(t, func() {
		m.observe(http.MethodGet, "/", http.StatusOK, 0)
	})
}
