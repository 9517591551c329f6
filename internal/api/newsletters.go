package api

import (
	"fmt"
	"net/http"

	"github.com/oseayemenre/upepo/internal/models"
	"github.com/oseayemenre/upepo/internal/sanitize"
	"github.com/oseayemenre/upepo/internal/store"
)

const newsletterListLimit = 12

func optionalHTML(s *string) *string {
	if s == nil {
		return nil
	}

	cleaned := sanitize.HTML(*s)
	return &cleaned
}

// HandleGetNewsletters godoc
//
//	@Summary		List newsletters
//	@Description	Published issues newest first; admins may ask for drafts
//	@Tags			newsletters
//	@Produce		json
//	@Param			status	query		string	false	"PUBLISHED (default) or DRAFT"
//	@Success		200		{array}		models.Newsletter
//	@Failure		400		{object}	models.ErrorResponse
//	@Failure		401		{object}	models.ErrorResponse
//	@Failure		500		{object}	models.ErrorResponse
//	@Router			/newsletters [get]
func (a *Api) HandleGetNewsletters(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	if status == "" {
		status = models.NewsletterPublished
	}

	if err := validate.Var(status, "oneof=DRAFT PUBLISHED"); err != nil {
		a.logger.Warn(fmt.Sprintf("invalid status filter: %v", err), "service", "HandleGetNewsletters")
		respondWithFieldErrors(w, []models.FieldError{{Field: "status", Message: "must be one of DRAFT, PUBLISHED"}})
		return
	}

	if status == models.NewsletterDraft && !currentUser(r).IsAdmin() {
		a.logger.Warn("draft listing requires admin", "service", "HandleGetNewsletters")
		respondWithError(w, http.StatusUnauthorized, errUnauthorized)
		return
	}

	newsletters, err := a.store.ListNewsletters(r.Context(), status, newsletterListLimit)

	if err != nil {
		a.respondWithStoreError(w, "HandleGetNewsletters", "fetch newsletters", err)
		return
	}

	respondWithSuccess(w, http.StatusOK, newsletters)
}

// HandleGetNewsletter godoc
//
//	@Summary		Get a newsletter
//	@Tags			newsletters
//	@Produce		json
//	@Param			newsletterId	path		string	true	"Newsletter id"
//	@Success		200				{object}	models.Newsletter
//	@Failure		400				{object}	models.ErrorResponse
//	@Failure		404				{object}	models.ErrorResponse
//	@Failure		500				{object}	models.ErrorResponse
//	@Router			/newsletters/{newsletterId} [get]
func (a *Api) HandleGetNewsletter(w http.ResponseWriter, r *http.Request) {
	id, ok := a.idParam(w, r, "newsletterId", "HandleGetNewsletter")
	if !ok {
		return
	}

	newsletter, err := a.store.GetNewsletter(r.Context(), id)

	if err != nil {
		a.respondWithStoreError(w, "HandleGetNewsletter", "fetch newsletter", err)
		return
	}

	if newsletter.Status != models.NewsletterPublished && !currentUser(r).IsAdmin() {
		a.respondWithStoreError(w, "HandleGetNewsletter", "fetch newsletter", store.ErrNewsletterNotFound)
		return
	}

	respondWithSuccess(w, http.StatusOK, newsletter)
}

// HandleCreateNewsletter godoc
//
//	@Summary		Draft a newsletter
//	@Tags			newsletters
//	@Accept			json
//	@Produce		json
//	@Param			newsletter	body		models.HandleCreateNewsletterParams	true	"Newsletter"
//	@Success		201			{object}	models.Newsletter
//	@Failure		400			{object}	models.ErrorResponse
//	@Failure		401			{object}	models.ErrorResponse
//	@Failure		500			{object}	models.ErrorResponse
//	@Router			/newsletters [post]
func (a *Api) HandleCreateNewsletter(w http.ResponseWriter, r *http.Request) {
	var params models.HandleCreateNewsletterParams

	ok := a.decodeAndValidate(w, r, &params, "HandleCreateNewsletter", func() {
		params.Title = sanitize.Text(params.Title)
		params.Subject = sanitize.Text(params.Subject)
		params.Content = sanitize.HTML(params.Content)
		params.Featured = optionalHTML(params.Featured)
		params.MemberSpotlight = optionalHTML(params.MemberSpotlight)
		params.TopQuotes = optionalHTML(params.TopQuotes)
		params.UpcomingEvents = optionalHTML(params.UpcomingEvents)
	})

	if !ok {
		return
	}

	newsletter, err := a.store.CreateNewsletter(r.Context(), &models.Newsletter{
		Title:           params.Title,
		Subject:         params.Subject,
		Content:         params.Content,
		Featured:        params.Featured,
		MemberSpotlight: params.MemberSpotlight,
		TopQuotes:       params.TopQuotes,
		UpcomingEvents:  params.UpcomingEvents,
	})

	if err != nil {
		a.respondWithStoreError(w, "HandleCreateNewsletter", "create newsletter", err)
		return
	}

	respondWithSuccess(w, http.StatusCreated, newsletter)
}

// HandleUpdateNewsletter godoc
//
//	@Summary		Update a newsletter
//	@Tags			newsletters
//	@Accept			json
//	@Produce		json
//	@Param			newsletterId	path		string								true	"Newsletter id"
//	@Param			newsletter		body		models.HandleUpdateNewsletterParams	true	"Fields to change"
//	@Success		200				{object}	models.Newsletter
//	@Failure		400				{object}	models.ErrorResponse
//	@Failure		401				{object}	models.ErrorResponse
//	@Failure		404				{object}	models.ErrorResponse
//	@Failure		500				{object}	models.ErrorResponse
//	@Router			/newsletters/{newsletterId} [put]
func (a *Api) HandleUpdateNewsletter(w http.ResponseWriter, r *http.Request) {
	id, ok := a.idParam(w, r, "newsletterId", "HandleUpdateNewsletter")
	if !ok {
		return
	}

	var params models.HandleUpdateNewsletterParams

	ok = a.decodeAndValidate(w, r, &params, "HandleUpdateNewsletter", func() {
		params.Title = sanitize.OptionalText(params.Title)
		params.Subject = sanitize.OptionalText(params.Subject)
		params.Content = optionalHTML(params.Content)
		params.Featured = optionalHTML(params.Featured)
		params.MemberSpotlight = optionalHTML(params.MemberSpotlight)
		params.TopQuotes = optionalHTML(params.TopQuotes)
		params.UpcomingEvents = optionalHTML(params.UpcomingEvents)
	})

	if !ok {
		return
	}

	newsletter, err := a.store.UpdateNewsletter(r.Context(), id, &models.NewsletterPatch{
		Title:           params.Title,
		Subject:         params.Subject,
		Content:         params.Content,
		Featured:        params.Featured,
		MemberSpotlight: params.MemberSpotlight,
		TopQuotes:       params.TopQuotes,
		UpcomingEvents:  params.UpcomingEvents,
	})

	if err != nil {
		a.respondWithStoreError(w, "HandleUpdateNewsletter", "update newsletter", err)
		return
	}

	respondWithSuccess(w, http.StatusOK, newsletter)
}

// HandlePublishNewsletter godoc
//
//	@Summary		Publish a newsletter
//	@Description	Publishing again keeps the first publish date
//	@Tags			newsletters
//	@Produce		json
//	@Param			newsletterId	path		string	true	"Newsletter id"
//	@Success		200				{object}	models.Newsletter
//	@Failure		400				{object}	models.ErrorResponse
//	@Failure		401				{object}	models.ErrorResponse
//	@Failure		404				{object}	models.ErrorResponse
//	@Failure		500				{object}	models.ErrorResponse
//	@Router			/newsletters/{newsletterId}/publish [post]
func (a *Api) HandlePublishNewsletter(w http.ResponseWriter, r *http.Request) {
	id, ok := a.idParam(w, r, "newsletterId", "HandlePublishNewsletter")
	if !ok {
		return
	}

	newsletter, err := a.store.PublishNewsletter(r.Context(), id, a.clock())

	if err != nil {
		a.respondWithStoreError(w, "HandlePublishNewsletter", "publish newsletter", err)
		return
	}

	a.logger.Info("newsletter published", "service", "HandlePublishNewsletter", "newsletter", id.String())

	respondWithSuccess(w, http.StatusOK, newsletter)
}
