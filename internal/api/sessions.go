package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/oseayemenre/upepo/internal/models"
	"github.com/oseayemenre/upepo/internal/sanitize"
)

const pastSessionLimit = 6

// HandleGetLiveSessions godoc
//
//	@Summary		List live sessions
//	@Description	upcoming=true lists scheduled sessions soonest first, past=true the last six, recorded=true those with a video
//	@Tags			sessions
//	@Produce		json
//	@Param			upcoming	query		bool	false	"Only sessions still ahead"
//	@Param			past		query		bool	false	"Only sessions already held"
//	@Param			recorded	query		bool	false	"Only sessions with a recording"
//	@Success		200			{array}		models.LiveSession
//	@Failure		500			{object}	models.ErrorResponse
//	@Router			/sessions [get]
func (a *Api) HandleGetLiveSessions(w http.ResponseWriter, r *http.Request) {
	filter := models.LiveSessionFilter{
		Upcoming: boolQuery(r, "upcoming"),
		Past:     boolQuery(r, "past"),
		Recorded: boolQuery(r, "recorded"),
		Now:      a.clock(),
	}

	if filter.Past {
		filter.Limit = pastSessionLimit
	}

	sessions, err := a.store.ListLiveSessions(r.Context(), filter)

	if err != nil {
		a.respondWithStoreError(w, "HandleGetLiveSessions", "fetch live sessions", err)
		return
	}

	respondWithSuccess(w, http.StatusOK, sessions)
}

// HandleGetLiveSession godoc
//
//	@Summary		Get a live session
//	@Tags			sessions
//	@Produce		json
//	@Param			sessionId	path		string	true	"Session id"
//	@Success		200			{object}	models.LiveSession
//	@Failure		400			{object}	models.ErrorResponse
//	@Failure		404			{object}	models.ErrorResponse
//	@Failure		500			{object}	models.ErrorResponse
//	@Router			/sessions/{sessionId} [get]
func (a *Api) HandleGetLiveSession(w http.ResponseWriter, r *http.Request) {
	id, ok := a.idParam(w, r, "sessionId", "HandleGetLiveSession")
	if !ok {
		return
	}

	session, err := a.store.GetLiveSession(r.Context(), id)

	if err != nil {
		a.respondWithStoreError(w, "HandleGetLiveSession", "fetch live session", err)
		return
	}

	respondWithSuccess(w, http.StatusOK, session)
}

// HandleCreateLiveSession godoc
//
//	@Summary		Schedule a live session
//	@Description	One session per book
//	@Tags			sessions
//	@Accept			json
//	@Produce		json
//	@Param			session	body		models.HandleCreateLiveSessionParams	true	"Session"
//	@Success		201		{object}	models.LiveSession
//	@Failure		400		{object}	models.ErrorResponse
//	@Failure		401		{object}	models.ErrorResponse
//	@Failure		404		{object}	models.ErrorResponse
//	@Failure		409		{object}	models.ErrorResponse
//	@Failure		500		{object}	models.ErrorResponse
//	@Router			/sessions [post]
func (a *Api) HandleCreateLiveSession(w http.ResponseWriter, r *http.Request) {
	var params models.HandleCreateLiveSessionParams

	ok := a.decodeAndValidate(w, r, &params, "HandleCreateLiveSession", func() {
		params.Title = sanitize.Text(params.Title)
		params.Description = sanitize.OptionalText(params.Description)
	})

	if !ok {
		return
	}

	scheduledAt, err := time.Parse(time.RFC3339, params.ScheduledAt)

	if err != nil {
		a.logger.Warn(err.Error(), "service", "HandleCreateLiveSession")
		respondWithFieldErrors(w, []models.FieldError{{Field: "scheduledAt", Message: "must be an RFC 3339 timestamp"}})
		return
	}

	duration := models.DefaultSessionDuration

	if params.Duration != nil {
		duration = *params.Duration
	}

	session, err := a.store.CreateLiveSession(r.Context(), &models.LiveSession{
		BookID:      uuid.MustParse(params.BookID),
		Title:       params.Title,
		Description: params.Description,
		ScheduledAt: scheduledAt,
		Duration:    duration,
		Status:      models.SessionScheduled,
		MeetingLink: params.MeetingLink,
	})

	if err != nil {
		a.respondWithStoreError(w, "HandleCreateLiveSession", "create live session", err)
		return
	}

	respondWithSuccess(w, http.StatusCreated, session)
}

// HandleUpdateLiveSession godoc
//
//	@Summary		Update a live session
//	@Tags			sessions
//	@Accept			json
//	@Produce		json
//	@Param			sessionId	path		string									true	"Session id"
//	@Param			session		body		models.HandleUpdateLiveSessionParams	true	"Fields to change"
//	@Success		200			{object}	models.LiveSession
//	@Failure		400			{object}	models.ErrorResponse
//	@Failure		401			{object}	models.ErrorResponse
//	@Failure		404			{object}	models.ErrorResponse
//	@Failure		500			{object}	models.ErrorResponse
//	@Router			/sessions/{sessionId} [put]
func (a *Api) HandleUpdateLiveSession(w http.ResponseWriter, r *http.Request) {
	id, ok := a.idParam(w, r, "sessionId", "HandleUpdateLiveSession")
	if !ok {
		return
	}

	var params models.HandleUpdateLiveSessionParams

	ok = a.decodeAndValidate(w, r, &params, "HandleUpdateLiveSession", func() {
		params.Title = sanitize.OptionalText(params.Title)
		params.Description = sanitize.OptionalText(params.Description)
		params.Summary = sanitize.OptionalText(params.Summary)
	})

	if !ok {
		return
	}

	patch := &models.LiveSessionPatch{
		Title:          params.Title,
		Description:    params.Description,
		Duration:       params.Duration,
		Status:         params.Status,
		MeetingLink:    params.MeetingLink,
		RecordingLink:  params.RecordingLink,
		VideoURL:       params.VideoURL,
		VideoThumbnail: params.VideoThumbnail,
		Summary:        params.Summary,
	}

	if params.ScheduledAt != nil {
		scheduledAt, err := time.Parse(time.RFC3339, *params.ScheduledAt)

		if err != nil {
			a.logger.Warn(err.Error(), "service", "HandleUpdateLiveSession")
			respondWithFieldErrors(w, []models.FieldError{{Field: "scheduledAt", Message: "must be an RFC 3339 timestamp"}})
			return
		}

		patch.ScheduledAt = &scheduledAt
	}

	session, err := a.store.UpdateLiveSession(r.Context(), id, patch)

	if err != nil {
		a.respondWithStoreError(w, "HandleUpdateLiveSession", "update live session", err)
		return
	}

	respondWithSuccess(w, http.StatusOK, session)
}

// HandleDeleteLiveSession godoc
//
//	@Summary		Cancel a live session
//	@Tags			sessions
//	@Param			sessionId	path		string	true	"Session id"
//	@Success		204			{object}	nil
//	@Failure		400			{object}	models.ErrorResponse
//	@Failure		401			{object}	models.ErrorResponse
//	@Failure		404			{object}	models.ErrorResponse
//	@Failure		500			{object}	models.ErrorResponse
//	@Router			/sessions/{sessionId} [delete]
func (a *Api) HandleDeleteLiveSession(w http.ResponseWriter, r *http.Request) {
	id, ok := a.idParam(w, r, "sessionId", "HandleDeleteLiveSession")
	if !ok {
		return
	}

	if err := a.store.DeleteLiveSession(r.Context(), id); err != nil {
		a.respondWithStoreError(w, "HandleDeleteLiveSession", "delete live session", err)
		return
	}

	respondWithSuccess(w, http.StatusNoContent, nil)
}
