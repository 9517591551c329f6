package api

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/oseayemenre/upepo/internal/models"
	"github.com/oseayemenre/upepo/internal/sanitize"
	"github.com/oseayemenre/upepo/internal/store"
)

// HandleCreateComment godoc
//
//	@Summary		Comment on a discussion
//	@Description	parentId must name a comment of the same discussion
//	@Tags			comments
//	@Accept			json
//	@Produce		json
//	@Param			comment	body		models.HandleCreateCommentParams	true	"Comment"
//	@Success		201		{object}	models.Comment
//	@Failure		400		{object}	models.ErrorResponse
//	@Failure		401		{object}	models.ErrorResponse
//	@Failure		404		{object}	models.ErrorResponse
//	@Failure		500		{object}	models.ErrorResponse
//	@Router			/comments [post]
func (a *Api) HandleCreateComment(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	var params models.HandleCreateCommentParams

	ok := a.decodeAndValidate(w, r, &params, "HandleCreateComment", func() {
		params.Content = sanitize.Text(params.Content)
	})

	if !ok {
		return
	}

	comment := &models.Comment{
		DiscussionID: uuid.MustParse(params.DiscussionID),
		UserID:       user.ID,
		Content:      params.Content,
	}

	if params.ParentID != nil {
		parent := uuid.MustParse(*params.ParentID)
		comment.ParentID = &parent
	}

	created, err := a.store.CreateComment(r.Context(), comment)

	if err != nil {
		if errors.Is(err, store.ErrParentCommentNotFound) || errors.Is(err, store.ErrParentCommentMismatch) {
			a.logger.Warn(err.Error(), "service", "HandleCreateComment")
			respondWithFieldErrors(w, []models.FieldError{{Field: "parentId", Message: err.Error()}})
			return
		}
		a.respondWithStoreError(w, "HandleCreateComment", "create comment", err)
		return
	}

	respondWithSuccess(w, http.StatusCreated, created)
}

// HandleUpdateComment godoc
//
//	@Summary		Edit a comment
//	@Tags			comments
//	@Accept			json
//	@Produce		json
//	@Param			commentId	path		string								true	"Comment id"
//	@Param			comment		body		models.HandleUpdateCommentParams	true	"Comment"
//	@Success		200			{object}	models.Comment
//	@Failure		400			{object}	models.ErrorResponse
//	@Failure		401			{object}	models.ErrorResponse
//	@Failure		404			{object}	models.ErrorResponse
//	@Failure		500			{object}	models.ErrorResponse
//	@Router			/comments/{commentId} [patch]
func (a *Api) HandleUpdateComment(w http.ResponseWriter, r *http.Request) {
	id, ok := a.idParam(w, r, "commentId", "HandleUpdateComment")
	if !ok {
		return
	}

	var params models.HandleUpdateCommentParams

	ok = a.decodeAndValidate(w, r, &params, "HandleUpdateComment", func() {
		params.Content = sanitize.Text(params.Content)
	})

	if !ok {
		return
	}

	existing, err := a.store.GetComment(r.Context(), id)

	if err != nil {
		a.respondWithStoreError(w, "HandleUpdateComment", "update comment", err)
		return
	}

	if existing.UserID != currentUser(r).ID {
		a.logger.Warn("comment edit by non-author", "service", "HandleUpdateComment", "comment", id.String())
		respondWithError(w, http.StatusUnauthorized, errUnauthorized)
		return
	}

	updated, err := a.store.UpdateComment(r.Context(), id, params.Content)

	if err != nil {
		a.respondWithStoreError(w, "HandleUpdateComment", "update comment", err)
		return
	}

	respondWithSuccess(w, http.StatusOK, updated)
}

// HandleDeleteComment godoc
//
//	@Summary		Delete a comment
//	@Tags			comments
//	@Param			commentId	path		string	true	"Comment id"
//	@Success		204			{object}	nil
//	@Failure		400			{object}	models.ErrorResponse
//	@Failure		401			{object}	models.ErrorResponse
//	@Failure		404			{object}	models.ErrorResponse
//	@Failure		500			{object}	models.ErrorResponse
//	@Router			/comments/{commentId} [delete]
func (a *Api) HandleDeleteComment(w http.ResponseWriter, r *http.Request) {
	id, ok := a.idParam(w, r, "commentId", "HandleDeleteComment")
	if !ok {
		return
	}

	existing, err := a.store.GetComment(r.Context(), id)

	if err != nil {
		a.respondWithStoreError(w, "HandleDeleteComment", "delete comment", err)
		return
	}

	user := currentUser(r)

	if existing.UserID != user.ID && !user.IsAdmin() {
		a.logger.Warn("comment delete by non-author", "service", "HandleDeleteComment", "comment", id.String())
		respondWithError(w, http.StatusUnauthorized, errUnauthorized)
		return
	}

	if err := a.store.DeleteComment(r.Context(), id); err != nil {
		a.respondWithStoreError(w, "HandleDeleteComment", "delete comment", err)
		return
	}

	respondWithSuccess(w, http.StatusNoContent, nil)
}
