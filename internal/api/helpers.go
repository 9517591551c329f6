package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oseayemenre/upepo/internal/models"
	"github.com/oseayemenre/upepo/internal/reading"
	"github.com/oseayemenre/upepo/internal/store"
)

var notFoundErrors = []error{
	store.ErrUserNotFound,
	store.ErrBookNotFound,
	store.ErrWeeklyPlanNotFound,
	store.ErrPromptNotFound,
	store.ErrDiscussionNotFound,
	store.ErrCommentNotFound,
	store.ErrLiveSessionNotFound,
	store.ErrQuoteNotFound,
	store.ErrGalleryPostNotFound,
	store.ErrNewsletterNotFound,
	store.ErrSummaryNotFound,
}

var conflictErrors = []error{
	store.ErrUserExists,
	store.ErrWeekNumberTaken,
	store.ErrLiveSessionExists,
}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// respondWithStoreError maps store sentinels onto the error envelope. Anything
// unrecognised is logged and reported as "failed to <action>".
func (a *Api) respondWithStoreError(w http.ResponseWriter, service string, action string, err error) {
	switch {
	case errors.Is(err, store.ErrNothingToUpdate):
		a.logger.Warn(err.Error(), "service", service)
		respondWithFieldErrors(w, []models.FieldError{{Field: "body", Message: err.Error()}})
	case isAny(err, notFoundErrors):
		a.logger.Warn(err.Error(), "service", service)
		respondWithError(w, http.StatusNotFound, err)
	case isAny(err, conflictErrors):
		a.logger.Warn(err.Error(), "service", service)
		respondWithError(w, http.StatusConflict, err)
	default:
		a.logger.Error(err.Error(), "service", service)
		respondWithError(w, http.StatusInternalServerError, fmt.Errorf("failed to %s", action))
	}
}

// idParam parses a uuid path parameter, answering 400 itself when it is malformed.
func (a *Api) idParam(w http.ResponseWriter, r *http.Request, name string, service string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))

	if err != nil {
		a.logger.Warn(fmt.Sprintf("invalid %s: %v", name, err), "service", service)
		respondWithFieldErrors(w, []models.FieldError{{Field: name, Message: "must be a valid id"}})
		return uuid.Nil, false
	}

	return id, true
}

func (a *Api) decodeAndValidate(w http.ResponseWriter, r *http.Request, params any, service string, normalize func()) bool {
	if err := decodeJson(r, params); err != nil {
		a.logger.Warn(err.Error(), "service", service)
		respondWithError(w, http.StatusBadRequest, errInvalidJSON)
		return false
	}

	if normalize != nil {
		normalize()
	}

	if err := validate.Struct(params); err != nil {
		a.logger.Warn(fmt.Sprintf("error validating fields: %v", err), "service", service)
		respondWithValidationError(w, err)
		return false
	}

	return true
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}

	t, err := reading.ParseDate(*s)

	if err != nil {
		return nil, err
	}

	return &t, nil
}

func checkDateOrder(start *time.Time, end *time.Time) []models.FieldError {
	if start != nil && end != nil && end.Before(*start) {
		return []models.FieldError{{Field: "endDate", Message: "must not be before startDate"}}
	}
	return nil
}

func joinThemes(themes []string) string {
	cleaned := make([]string, 0, len(themes))

	for _, t := range themes {
		if t = strings.TrimSpace(t); t != "" {
			cleaned = append(cleaned, t)
		}
	}

	return strings.Join(cleaned, ",")
}

func boolQuery(r *http.Request, key string) bool {
	return r.URL.Query().Get(key) == "true"
}
