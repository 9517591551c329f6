package api

import (
	"net/http"

	"github.com/oseayemenre/upepo/internal/models"
	"github.com/oseayemenre/upepo/internal/reading"
	"github.com/oseayemenre/upepo/internal/sanitize"
)

// HandleGetWeeklyPlans godoc
//
//	@Summary		List a book's weekly plans
//	@Tags			weeks
//	@Produce		json
//	@Param			bookId	path		string	true	"Book id"
//	@Success		200		{array}		models.WeeklyPlan
//	@Failure		400		{object}	models.ErrorResponse
//	@Failure		404		{object}	models.ErrorResponse
//	@Failure		500		{object}	models.ErrorResponse
//	@Router			/books/{bookId}/weeks [get]
func (a *Api) HandleGetWeeklyPlans(w http.ResponseWriter, r *http.Request) {
	id, ok := a.idParam(w, r, "bookId", "HandleGetWeeklyPlans")
	if !ok {
		return
	}

	if _, err := a.store.GetBook(r.Context(), id); err != nil {
		a.respondWithStoreError(w, "HandleGetWeeklyPlans", "fetch weekly plans", err)
		return
	}

	plans, err := a.store.ListWeeklyPlans(r.Context(), id)

	if err != nil {
		a.respondWithStoreError(w, "HandleGetWeeklyPlans", "fetch weekly plans", err)
		return
	}

	respondWithSuccess(w, http.StatusOK, plans)
}

// HandleCreateWeeklyPlan godoc
//
//	@Summary		Add a week to a book's reading plan
//	@Description	The range must sit inside the book's dates and must not overlap another week
//	@Tags			weeks
//	@Accept			json
//	@Produce		json
//	@Param			bookId	path		string								true	"Book id"
//	@Param			week	body		models.HandleCreateWeeklyPlanParams	true	"Week"
//	@Success		201		{object}	models.WeeklyPlan
//	@Failure		400		{object}	models.ErrorResponse
//	@Failure		401		{object}	models.ErrorResponse
//	@Failure		404		{object}	models.ErrorResponse
//	@Failure		409		{object}	models.ErrorResponse
//	@Router			/books/{bookId}/weeks [post]
func (a *Api) HandleCreateWeeklyPlan(w http.ResponseWriter, r *http.Request) {
	bookID, ok := a.idParam(w, r, "bookId", "HandleCreateWeeklyPlan")
	if !ok {
		return
	}

	var params models.HandleCreateWeeklyPlanParams

	ok = a.decodeAndValidate(w, r, &params, "HandleCreateWeeklyPlan", func() {
		params.Title = sanitize.Text(params.Title)
		params.Focus = sanitize.OptionalText(params.Focus)
		params.Chapters = sanitize.OptionalText(params.Chapters)
	})

	if !ok {
		return
	}

	start, err := reading.ParseDate(params.StartDate)
	if err != nil {
		respondWithFieldErrors(w, []models.FieldError{{Field: "startDate", Message: err.Error()}})
		return
	}

	end, err := reading.ParseDate(params.EndDate)
	if err != nil {
		respondWithFieldErrors(w, []models.FieldError{{Field: "endDate", Message: err.Error()}})
		return
	}

	plan := &models.WeeklyPlan{
		BookID:     bookID,
		WeekNumber: params.WeekNumber,
		Title:      params.Title,
		Focus:      params.Focus,
		Chapters:   params.Chapters,
		StartDate:  start,
		EndDate:    end,
	}

	if !a.checkWeek(w, r, plan, "HandleCreateWeeklyPlan") {
		return
	}

	created, err := a.store.CreateWeeklyPlan(r.Context(), plan)

	if err != nil {
		a.respondWithStoreError(w, "HandleCreateWeeklyPlan", "create weekly plan", err)
		return
	}

	respondWithSuccess(w, http.StatusCreated, created)
}

// HandleUpdateWeeklyPlan godoc
//
//	@Summary		Update a weekly plan
//	@Tags			weeks
//	@Accept			json
//	@Produce		json
//	@Param			weekId	path		string								true	"Week id"
//	@Param			week	body		models.HandleUpdateWeeklyPlanParams	true	"Fields to change"
//	@Success		200		{object}	models.WeeklyPlan
//	@Failure		400		{object}	models.ErrorResponse
//	@Failure		401		{object}	models.ErrorResponse
//	@Failure		404		{object}	models.ErrorResponse
//	@Failure		409		{object}	models.ErrorResponse
//	@Failure		500		{object}	models.ErrorResponse
//	@Router			/weeks/{weekId} [put]
func (a *Api) HandleUpdateWeeklyPlan(w http.ResponseWriter, r *http.Request) {
	id, ok := a.idParam(w, r, "weekId", "HandleUpdateWeeklyPlan")
	if !ok {
		return
	}

	var params models.HandleUpdateWeeklyPlanParams

	ok = a.decodeAndValidate(w, r, &params, "HandleUpdateWeeklyPlan", func() {
		params.Title = sanitize.OptionalText(params.Title)
		params.Focus = sanitize.OptionalText(params.Focus)
		params.Chapters = sanitize.OptionalText(params.Chapters)
	})

	if !ok {
		return
	}

	patch := &models.WeeklyPlanPatch{
		WeekNumber: params.WeekNumber,
		Title:      params.Title,
		Focus:      params.Focus,
		Chapters:   params.Chapters,
	}

	var err error

	if patch.StartDate, err = parseOptionalDate(params.StartDate); err != nil {
		respondWithFieldErrors(w, []models.FieldError{{Field: "startDate", Message: err.Error()}})
		return
	}

	if patch.EndDate, err = parseOptionalDate(params.EndDate); err != nil {
		respondWithFieldErrors(w, []models.FieldError{{Field: "endDate", Message: err.Error()}})
		return
	}

	if patch.StartDate != nil || patch.EndDate != nil {
		plan, err := a.store.GetWeeklyPlan(r.Context(), id)

		if err != nil {
			a.respondWithStoreError(w, "HandleUpdateWeeklyPlan", "update weekly plan", err)
			return
		}

		if patch.StartDate != nil {
			plan.StartDate = *patch.StartDate
		}

		if patch.EndDate != nil {
			plan.EndDate = *patch.EndDate
		}

		if !a.checkWeek(w, r, plan, "HandleUpdateWeeklyPlan") {
			return
		}
	}

	updated, err := a.store.UpdateWeeklyPlan(r.Context(), id, patch)

	if err != nil {
		a.respondWithStoreError(w, "HandleUpdateWeeklyPlan", "update weekly plan", err)
		return
	}

	respondWithSuccess(w, http.StatusOK, updated)
}

// checkWeek validates the plan's dates against its book and sibling weeks,
// answering the request itself when they do not fit.
func (a *Api) checkWeek(w http.ResponseWriter, r *http.Request, plan *models.WeeklyPlan, service string) bool {
	book, err := a.store.GetBook(r.Context(), plan.BookID)

	if err != nil {
		a.respondWithStoreError(w, service, "save weekly plan", err)
		return false
	}

	existing, err := a.store.ListWeeklyPlans(r.Context(), plan.BookID)

	if err != nil {
		a.respondWithStoreError(w, service, "save weekly plan", err)
		return false
	}

	if details := reading.ValidateWeek(*plan, book, existing); len(details) > 0 {
		a.logger.Warn("weekly plan does not fit the reading calendar", "service", service, "book", plan.BookID.String())
		respondWithFieldErrors(w, details)
		return false
	}

	return true
}

// HandleDeleteWeeklyPlan godoc
//
//	@Summary		Delete a weekly plan
//	@Tags			weeks
//	@Param			weekId	path		string	true	"Week id"
//	@Success		204		{object}	nil
//	@Failure		400		{object}	models.ErrorResponse
//	@Failure		401		{object}	models.ErrorResponse
//	@Failure		404		{object}	models.ErrorResponse
//	@Failure		500		{object}	models.ErrorResponse
//	@Router			/weeks/{weekId} [delete]
func (a *Api) HandleDeleteWeeklyPlan(w http.ResponseWriter, r *http.Request) {
	id, ok := a.idParam(w, r, "weekId", "HandleDeleteWeeklyPlan")
	if !ok {
		return
	}

	if err := a.store.DeleteWeeklyPlan(r.Context(), id); err != nil {
		a.respondWithStoreError(w, "HandleDeleteWeeklyPlan", "delete weekly plan", err)
		return
	}

	respondWithSuccess(w, http.StatusNoContent, nil)
}

// HandleCreatePrompt godoc
//
//	@Summary		Add a discussion prompt to a week
//	@Tags			weeks
//	@Accept			json
//	@Produce		json
//	@Param			weekId	path		string							true	"Week id"
//	@Param			prompt	body		models.HandleCreatePromptParams	true	"Prompt"
//	@Success		201		{object}	models.Prompt
//	@Failure		400		{object}	models.ErrorResponse
//	@Failure		401		{object}	models.ErrorResponse
//	@Failure		404		{object}	models.ErrorResponse
//	@Failure		500		{object}	models.ErrorResponse
//	@Router			/weeks/{weekId}/prompts [post]
func (a *Api) HandleCreatePrompt(w http.ResponseWriter, r *http.Request) {
	weekID, ok := a.idParam(w, r, "weekId", "HandleCreatePrompt")
	if !ok {
		return
	}

	var params models.HandleCreatePromptParams

	ok = a.decodeAndValidate(w, r, &params, "HandleCreatePrompt", func() {
		params.Question = sanitize.Text(params.Question)
	})

	if !ok {
		return
	}

	prompt := &models.Prompt{
		WeeklyPlanID: weekID,
		Question:     params.Question,
	}

	if params.Order != nil {
		prompt.Order = *params.Order
	}

	created, err := a.store.CreatePrompt(r.Context(), prompt)

	if err != nil {
		a.respondWithStoreError(w, "HandleCreatePrompt", "create prompt", err)
		return
	}

	respondWithSuccess(w, http.StatusCreated, created)
}

// HandleDeletePrompt godoc
//
//	@Summary		Delete a prompt
//	@Tags			weeks
//	@Param			promptId	path		string	true	"Prompt id"
//	@Success		204			{object}	nil
//	@Failure		400			{object}	models.ErrorResponse
//	@Failure		401			{object}	models.ErrorResponse
//	@Failure		404			{object}	models.ErrorResponse
//	@Failure		500			{object}	models.ErrorResponse
//	@Router			/prompts/{promptId} [delete]
func (a *Api) HandleDeletePrompt(w http.ResponseWriter, r *http.Request) {
	id, ok := a.idParam(w, r, "promptId", "HandleDeletePrompt")
	if !ok {
		return
	}

	if err := a.store.DeletePrompt(r.Context(), id); err != nil {
		a.respondWithStoreError(w, "HandleDeletePrompt", "delete prompt", err)
		return
	}

	respondWithSuccess(w, http.StatusNoContent, nil)
}
