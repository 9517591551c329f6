package api

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/oseayemenre/upepo/internal/auth"
	"github.com/oseayemenre/upepo/internal/models"
	"github.com/oseayemenre/upepo/internal/sanitize"
)

const memberContentLimit = 50

type likesResponse struct {
	Likes int `json:"likes"`
}

// authorFilter reads the optional ?userId= author restriction.
func (a *Api) authorFilter(w http.ResponseWriter, r *http.Request, service string) (*uuid.UUID, bool) {
	raw := r.URL.Query().Get("userId")

	if raw == "" {
		return nil, true
	}

	id, err := uuid.Parse(raw)

	if err != nil {
		a.logger.Warn(fmt.Sprintf("invalid userId: %v", err), "service", service)
		respondWithFieldErrors(w, []models.FieldError{{Field: "userId", Message: "must be a valid id"}})
		return nil, false
	}

	return &id, true
}

// HandleGetQuotes godoc
//
//	@Summary		List quotes
//	@Description	Public quotes plus the caller's own, newest first
//	@Tags			quotes
//	@Produce		json
//	@Param			userId	query		string	false	"Only quotes by this member"
//	@Success		200		{array}		models.Quote
//	@Failure		400		{object}	models.ErrorResponse
//	@Failure		500		{object}	models.ErrorResponse
//	@Router			/quotes [get]
func (a *Api) HandleGetQuotes(w http.ResponseWriter, r *http.Request) {
	author, ok := a.authorFilter(w, r, "HandleGetQuotes")
	if !ok {
		return
	}

	quotes, err := a.store.ListQuotes(r.Context(), models.VisibilityFilter{
		ViewerID: auth.UserIDFromContext(r.Context()),
		AuthorID: author,
		Limit:    memberContentLimit,
	})

	if err != nil {
		a.respondWithStoreError(w, "HandleGetQuotes", "fetch quotes", err)
		return
	}

	respondWithSuccess(w, http.StatusOK, quotes)
}

// HandleCreateQuote godoc
//
//	@Summary		Share a quote
//	@Tags			quotes
//	@Accept			json
//	@Produce		json
//	@Param			quote	body		models.HandleCreateQuoteParams	true	"Quote"
//	@Success		201		{object}	models.Quote
//	@Failure		400		{object}	models.ErrorResponse
//	@Failure		401		{object}	models.ErrorResponse
//	@Failure		404		{object}	models.ErrorResponse
//	@Failure		500		{object}	models.ErrorResponse
//	@Router			/quotes [post]
func (a *Api) HandleCreateQuote(w http.ResponseWriter, r *http.Request) {
	var params models.HandleCreateQuoteParams

	ok := a.decodeAndValidate(w, r, &params, "HandleCreateQuote", func() {
		params.BookTitle = sanitize.Text(params.BookTitle)
		params.BookAuthor = sanitize.Text(params.BookAuthor)
		params.QuoteText = sanitize.Text(params.QuoteText)
		params.Note = sanitize.OptionalText(params.Note)
	})

	if !ok {
		return
	}

	isPublic := true

	if params.IsPublic != nil {
		isPublic = *params.IsPublic
	}

	quote, err := a.store.CreateQuote(r.Context(), &models.Quote{
		UserID:     currentUser(r).ID,
		BookTitle:  params.BookTitle,
		BookAuthor: params.BookAuthor,
		QuoteText:  params.QuoteText,
		PageNumber: params.PageNumber,
		Note:       params.Note,
		IsPublic:   isPublic,
	})

	if err != nil {
		a.respondWithStoreError(w, "HandleCreateQuote", "create quote", err)
		return
	}

	respondWithSuccess(w, http.StatusCreated, quote)
}

// HandleLikeQuote godoc
//
//	@Summary		Like a quote
//	@Tags			quotes
//	@Produce		json
//	@Param			quoteId	path		string	true	"Quote id"
//	@Success		200		{object}	likesResponse
//	@Failure		400		{object}	models.ErrorResponse
//	@Failure		404		{object}	models.ErrorResponse
//	@Failure		500		{object}	models.ErrorResponse
//	@Router			/quotes/{quoteId}/like [post]
func (a *Api) HandleLikeQuote(w http.ResponseWriter, r *http.Request) {
	id, ok := a.idParam(w, r, "quoteId", "HandleLikeQuote")
	if !ok {
		return
	}

	likes, err := a.store.LikeQuote(r.Context(), id, auth.UserIDFromContext(r.Context()))

	if err != nil {
		a.respondWithStoreError(w, "HandleLikeQuote", "like quote", err)
		return
	}

	respondWithSuccess(w, http.StatusOK, likesResponse{Likes: likes})
}

// HandleDeleteQuote godoc
//
//	@Summary		Delete a quote
//	@Description	Owners and admins only
//	@Tags			quotes
//	@Param			quoteId	path		string	true	"Quote id"
//	@Success		204		{object}	nil
//	@Failure		400		{object}	models.ErrorResponse
//	@Failure		401		{object}	models.ErrorResponse
//	@Failure		404		{object}	models.ErrorResponse
//	@Failure		500		{object}	models.ErrorResponse
//	@Router			/quotes/{quoteId} [delete]
func (a *Api) HandleDeleteQuote(w http.ResponseWriter, r *http.Request) {
	id, ok := a.idParam(w, r, "quoteId", "HandleDeleteQuote")
	if !ok {
		return
	}

	quote, err := a.store.GetQuote(r.Context(), id)

	if err != nil {
		a.respondWithStoreError(w, "HandleDeleteQuote", "delete quote", err)
		return
	}

	user := currentUser(r)

	if quote.UserID != user.ID && !user.IsAdmin() {
		a.logger.Warn("quote delete by non-owner", "service", "HandleDeleteQuote", "quote", id.String())
		respondWithError(w, http.StatusUnauthorized, errUnauthorized)
		return
	}

	if err := a.store.DeleteQuote(r.Context(), id); err != nil {
		a.respondWithStoreError(w, "HandleDeleteQuote", "delete quote", err)
		return
	}

	respondWithSuccess(w, http.StatusNoContent, nil)
}
