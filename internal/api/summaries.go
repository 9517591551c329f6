package api

import (
	"net/http"

	"github.com/oseayemenre/upepo/internal/models"
	"github.com/oseayemenre/upepo/internal/sanitize"
	"github.com/oseayemenre/upepo/internal/store"
)

// HandleGetSummary godoc
//
//	@Summary		Get a book's monthly summary
//	@Description	Answers 404 to non-admins until the summary is published
//	@Tags			summaries
//	@Produce		json
//	@Param			bookId	path		string	true	"Book id"
//	@Success		200		{object}	models.MonthlySummary
//	@Failure		400		{object}	models.ErrorResponse
//	@Failure		404		{object}	models.ErrorResponse
//	@Failure		500		{object}	models.ErrorResponse
//	@Router			/books/{bookId}/summary [get]
func (a *Api) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	bookID, ok := a.idParam(w, r, "bookId", "HandleGetSummary")
	if !ok {
		return
	}

	summary, err := a.store.GetMonthlySummary(r.Context(), bookID)

	if err != nil {
		a.respondWithStoreError(w, "HandleGetSummary", "fetch monthly summary", err)
		return
	}

	if !summary.IsPublished && !currentUser(r).IsAdmin() {
		a.respondWithStoreError(w, "HandleGetSummary", "fetch monthly summary", store.ErrSummaryNotFound)
		return
	}

	respondWithSuccess(w, http.StatusOK, summary)
}

// HandleUpsertSummary godoc
//
//	@Summary		Write a book's monthly summary
//	@Tags			summaries
//	@Accept			json
//	@Produce		json
//	@Param			bookId	path		string								true	"Book id"
//	@Param			summary	body		models.HandleUpsertSummaryParams	true	"Summary"
//	@Success		200		{object}	models.MonthlySummary
//	@Failure		400		{object}	models.ErrorResponse
//	@Failure		401		{object}	models.ErrorResponse
//	@Failure		404		{object}	models.ErrorResponse
//	@Failure		500		{object}	models.ErrorResponse
//	@Router			/books/{bookId}/summary [put]
func (a *Api) HandleUpsertSummary(w http.ResponseWriter, r *http.Request) {
	bookID, ok := a.idParam(w, r, "bookId", "HandleUpsertSummary")
	if !ok {
		return
	}

	var params models.HandleUpsertSummaryParams

	ok = a.decodeAndValidate(w, r, &params, "HandleUpsertSummary", func() {
		params.Content = sanitize.HTML(params.Content)
		params.KeyLessons = optionalHTML(params.KeyLessons)
	})

	if !ok {
		return
	}

	summary, err := a.store.UpsertMonthlySummary(r.Context(), &models.MonthlySummary{
		BookID:      bookID,
		Content:     params.Content,
		KeyLessons:  params.KeyLessons,
		IsPublished: params.IsPublished,
	})

	if err != nil {
		a.respondWithStoreError(w, "HandleUpsertSummary", "save monthly summary", err)
		return
	}

	respondWithSuccess(w, http.StatusOK, summary)
}

// HandleCreateReflection godoc
//
//	@Summary		Reflect on a book's monthly summary
//	@Tags			summaries
//	@Accept			json
//	@Produce		json
//	@Param			bookId		path		string								true	"Book id"
//	@Param			reflection	body		models.HandleCreateReflectionParams	true	"Reflection"
//	@Success		201			{object}	models.Reflection
//	@Failure		400			{object}	models.ErrorResponse
//	@Failure		401			{object}	models.ErrorResponse
//	@Failure		404			{object}	models.ErrorResponse
//	@Router			/books/{bookId}/reflections [post]
func (a *Api) HandleCreateReflection(w http.ResponseWriter, r *http.Request) {
	bookID, ok := a.idParam(w, r, "bookId", "HandleCreateReflection")
	if !ok {
		return
	}

	var params models.HandleCreateReflectionParams

	ok = a.decodeAndValidate(w, r, &params, "HandleCreateReflection", func() {
		params.Content = sanitize.Text(params.Content)
	})

	if !ok {
		return
	}

	summary, err := a.store.GetMonthlySummary(r.Context(), bookID)

	if err != nil {
		a.respondWithStoreError(w, "HandleCreateReflection", "create reflection", err)
		return
	}

	if !summary.IsPublished {
		a.respondWithStoreError(w, "HandleCreateReflection", "create reflection", store.ErrSummaryNotFound)
		return
	}

	isPublic := true

	if params.IsPublic != nil {
		isPublic = *params.IsPublic
	}

	reflection, err := a.store.CreateReflection(r.Context(), &models.Reflection{
		SummaryID: summary.ID,
		UserID:    currentUser(r).ID,
		Content:   params.Content,
		IsPublic:  isPublic,
	})

	if err != nil {
		a.respondWithStoreError(w, "HandleCreateReflection", "create reflection", err)
		return
	}

	respondWithSuccess(w, http.StatusCreated, reflection)
}
