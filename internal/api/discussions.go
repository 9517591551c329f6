package api

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/oseayemenre/upepo/internal/models"
	"github.com/oseayemenre/upepo/internal/sanitize"
	"github.com/oseayemenre/upepo/internal/thread"
)

const discussionListLimit = 100

// HandleGetDiscussions godoc
//
//	@Summary		List discussions
//	@Tags			discussions
//	@Produce		json
//	@Param			bookId	query		string	false	"Only discussions about this book"
//	@Success		200		{array}		models.Discussion
//	@Failure		400		{object}	models.ErrorResponse
//	@Failure		500		{object}	models.ErrorResponse
//	@Router			/discussions [get]
func (a *Api) HandleGetDiscussions(w http.ResponseWriter, r *http.Request) {
	var bookID *uuid.UUID

	if raw := r.URL.Query().Get("bookId"); raw != "" {
		id, err := uuid.Parse(raw)

		if err != nil {
			a.logger.Warn(fmt.Sprintf("invalid bookId: %v", err), "service", "HandleGetDiscussions")
			respondWithFieldErrors(w, []models.FieldError{{Field: "bookId", Message: "must be a valid id"}})
			return
		}

		bookID = &id
	}

	discussions, err := a.store.ListDiscussions(r.Context(), bookID, discussionListLimit)

	if err != nil {
		a.respondWithStoreError(w, "HandleGetDiscussions", "fetch discussions", err)
		return
	}

	respondWithSuccess(w, http.StatusOK, discussions)
}

// HandleGetDiscussion godoc
//
//	@Summary		Get a discussion with its comment tree
//	@Description	Top-level comments newest first, replies oldest first
//	@Tags			discussions
//	@Produce		json
//	@Param			discussionId	path		string	true	"Discussion id"
//	@Success		200				{object}	models.DiscussionDetail
//	@Failure		400				{object}	models.ErrorResponse
//	@Failure		404				{object}	models.ErrorResponse
//	@Failure		500				{object}	models.ErrorResponse
//	@Router			/discussions/{discussionId} [get]
func (a *Api) HandleGetDiscussion(w http.ResponseWriter, r *http.Request) {
	id, ok := a.idParam(w, r, "discussionId", "HandleGetDiscussion")
	if !ok {
		return
	}

	discussion, err := a.store.GetDiscussion(r.Context(), id)

	if err != nil {
		a.respondWithStoreError(w, "HandleGetDiscussion", "fetch discussion", err)
		return
	}

	comments, err := a.store.ListComments(r.Context(), id)

	if err != nil {
		a.respondWithStoreError(w, "HandleGetDiscussion", "fetch discussion", err)
		return
	}

	respondWithSuccess(w, http.StatusOK, models.DiscussionDetail{
		Discussion: *discussion,
		Comments:   thread.Build(comments),
	})
}

// HandleCreateDiscussion godoc
//
//	@Summary		Start a discussion
//	@Tags			discussions
//	@Accept			json
//	@Produce		json
//	@Param			discussion	body		models.HandleCreateDiscussionParams	true	"Discussion"
//	@Success		201			{object}	models.Discussion
//	@Failure		400			{object}	models.ErrorResponse
//	@Failure		401			{object}	models.ErrorResponse
//	@Failure		404			{object}	models.ErrorResponse
//	@Failure		500			{object}	models.ErrorResponse
//	@Router			/discussions [post]
func (a *Api) HandleCreateDiscussion(w http.ResponseWriter, r *http.Request) {
	var params models.HandleCreateDiscussionParams

	ok := a.decodeAndValidate(w, r, &params, "HandleCreateDiscussion", func() {
		params.Title = sanitize.Text(params.Title)
		params.Content = sanitize.Text(params.Content)
	})

	if !ok {
		return
	}

	kind := params.Type

	if kind == "" {
		kind = models.DiscussionGeneral
	}

	discussion, err := a.store.CreateDiscussion(r.Context(), &models.Discussion{
		BookID:   uuid.MustParse(params.BookID),
		Title:    params.Title,
		Content:  params.Content,
		Type:     kind,
		IsPinned: params.IsPinned,
	})

	if err != nil {
		a.respondWithStoreError(w, "HandleCreateDiscussion", "create discussion", err)
		return
	}

	respondWithSuccess(w, http.StatusCreated, discussion)
}

// HandleUpdateDiscussion godoc
//
//	@Summary		Update a discussion
//	@Tags			discussions
//	@Accept			json
//	@Produce		json
//	@Param			discussionId	path		string								true	"Discussion id"
//	@Param			discussion		body		models.HandleUpdateDiscussionParams	true	"Fields to change"
//	@Success		200				{object}	models.Discussion
//	@Failure		400				{object}	models.ErrorResponse
//	@Failure		401				{object}	models.ErrorResponse
//	@Failure		404				{object}	models.ErrorResponse
//	@Failure		500				{object}	models.ErrorResponse
//	@Router			/discussions/{discussionId} [put]
func (a *Api) HandleUpdateDiscussion(w http.ResponseWriter, r *http.Request) {
	id, ok := a.idParam(w, r, "discussionId", "HandleUpdateDiscussion")
	if !ok {
		return
	}

	var params models.HandleUpdateDiscussionParams

	ok = a.decodeAndValidate(w, r, &params, "HandleUpdateDiscussion", func() {
		params.Title = sanitize.OptionalText(params.Title)
		params.Content = sanitize.OptionalText(params.Content)
	})

	if !ok {
		return
	}

	discussion, err := a.store.UpdateDiscussion(r.Context(), id, &models.DiscussionPatch{
		Title:    params.Title,
		Content:  params.Content,
		Type:     params.Type,
		IsPinned: params.IsPinned,
	})

	if err != nil {
		a.respondWithStoreError(w, "HandleUpdateDiscussion", "update discussion", err)
		return
	}

	respondWithSuccess(w, http.StatusOK, discussion)
}

// HandleDeleteDiscussion godoc
//
//	@Summary		Delete a discussion
//	@Tags			discussions
//	@Param			discussionId	path		string	true	"Discussion id"
//	@Success		204				{object}	nil
//	@Failure		400				{object}	models.ErrorResponse
//	@Failure		401				{object}	models.ErrorResponse
//	@Failure		404				{object}	models.ErrorResponse
//	@Failure		500				{object}	models.ErrorResponse
//	@Router			/discussions/{discussionId} [delete]
func (a *Api) HandleDeleteDiscussion(w http.ResponseWriter, r *http.Request) {
	id, ok := a.idParam(w, r, "discussionId", "HandleDeleteDiscussion")
	if !ok {
		return
	}

	if err := a.store.DeleteDiscussion(r.Context(), id); err != nil {
		a.respondWithStoreError(w, "HandleDeleteDiscussion", "delete discussion", err)
		return
	}

	respondWithSuccess(w, http.StatusNoContent, nil)
}
