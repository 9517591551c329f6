package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/oseayemenre/upepo/internal/auth"
	"github.com/oseayemenre/upepo/internal/models"
	"github.com/oseayemenre/upepo/internal/reading"
	"github.com/oseayemenre/upepo/internal/sanitize"
	"github.com/oseayemenre/upepo/internal/store"
)

const (
	bookListLimit = 100
	maxCoverSize  = 3 << 20
)

// HandleGetBooks godoc
//
//	@Summary		List books
//	@Description	Lists books newest first with their weekly plans, live session and discussion count
//	@Tags			books
//	@Produce		json
//	@Param			status	query		string	false	"UPCOMING, CURRENT or COMPLETED"
//	@Success		200		{array}		models.Book
//	@Failure		400		{object}	models.ErrorResponse
//	@Failure		500		{object}	models.ErrorResponse
//	@Router			/books [get]
func (a *Api) HandleGetBooks(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	if err := validate.Var(status, "omitempty,oneof=UPCOMING CURRENT COMPLETED"); err != nil {
		a.logger.Warn(fmt.Sprintf("invalid status filter: %v", err), "service", "HandleGetBooks")
		respondWithFieldErrors(w, []models.FieldError{{Field: "status", Message: "must be one of UPCOMING, CURRENT, COMPLETED"}})
		return
	}

	books, err := a.store.ListBooks(r.Context(), status, bookListLimit)

	if err != nil {
		a.respondWithStoreError(w, "HandleGetBooks", "fetch books", err)
		return
	}

	respondWithSuccess(w, http.StatusOK, books)
}

// HandleCreateBook godoc
//
//	@Summary		Create a book
//	@Tags			books
//	@Accept			json
//	@Produce		json
//	@Param			book	body		models.HandleCreateBookParams	true	"Book"
//	@Success		201		{object}	models.Book
//	@Failure		400		{object}	models.ErrorResponse
//	@Failure		401		{object}	models.ErrorResponse
//	@Failure		500		{object}	models.ErrorResponse
//	@Router			/books [post]
func (a *Api) HandleCreateBook(w http.ResponseWriter, r *http.Request) {
	var params models.HandleCreateBookParams

	ok := a.decodeAndValidate(w, r, &params, "HandleCreateBook", func() {
		params.Title = sanitize.Text(params.Title)
		params.Author = sanitize.Text(params.Author)
		params.Description = sanitize.Text(params.Description)
	})

	if !ok {
		return
	}

	start, err := parseOptionalDate(params.StartDate)
	if err != nil {
		respondWithFieldErrors(w, []models.FieldError{{Field: "startDate", Message: err.Error()}})
		return
	}

	end, err := parseOptionalDate(params.EndDate)
	if err != nil {
		respondWithFieldErrors(w, []models.FieldError{{Field: "endDate", Message: err.Error()}})
		return
	}

	if details := checkDateOrder(start, end); details != nil {
		a.logger.Warn("end date before start date", "service", "HandleCreateBook")
		respondWithFieldErrors(w, details)
		return
	}

	status := params.Status

	if status == "" {
		status = models.BookStatusUpcoming
	}

	book, err := a.store.CreateBook(r.Context(), &models.Book{
		Title:       params.Title,
		Author:      params.Author,
		Description: params.Description,
		CoverImage:  params.CoverImage,
		Themes:      joinThemes(params.Themes),
		Status:      status,
		StartDate:   start,
		EndDate:     end,
	})

	if err != nil {
		a.respondWithStoreError(w, "HandleCreateBook", "create book", err)
		return
	}

	respondWithSuccess(w, http.StatusCreated, book)
}

// HandleGetCurrentBook godoc
//
//	@Summary		Book being read now
//	@Description	Answers null when no book is current
//	@Tags			books
//	@Produce		json
//	@Success		200	{object}	models.Book
//	@Failure		500	{object}	models.ErrorResponse
//	@Router			/books/current [get]
func (a *Api) HandleGetCurrentBook(w http.ResponseWriter, r *http.Request) {
	book, err := a.store.GetCurrentBook(r.Context())

	if err != nil {
		if errors.Is(err, store.ErrBookNotFound) {
			respondWithSuccess(w, http.StatusOK, nil)
			return
		}
		a.respondWithStoreError(w, "HandleGetCurrentBook", "fetch current book", err)
		return
	}

	respondWithSuccess(w, http.StatusOK, book)
}

// HandleGetBook godoc
//
//	@Summary		Get a book
//	@Description	Weekly plans, prompts and live session included; unpublished summaries are shown to admins only
//	@Tags			books
//	@Produce		json
//	@Param			bookId	path		string	true	"Book id"
//	@Success		200		{object}	models.Book
//	@Failure		400		{object}	models.ErrorResponse
//	@Failure		404		{object}	models.ErrorResponse
//	@Failure		500		{object}	models.ErrorResponse
//	@Router			/books/{bookId} [get]
func (a *Api) HandleGetBook(w http.ResponseWriter, r *http.Request) {
	id, ok := a.idParam(w, r, "bookId", "HandleGetBook")
	if !ok {
		return
	}

	book, err := a.store.GetBookDetail(r.Context(), id)

	if err != nil {
		a.respondWithStoreError(w, "HandleGetBook", "fetch book", err)
		return
	}

	if book.MonthlySummary != nil && !book.MonthlySummary.IsPublished && !currentUser(r).IsAdmin() {
		book.MonthlySummary = nil
	}

	respondWithSuccess(w, http.StatusOK, book)
}

// HandleUpdateBook godoc
//
//	@Summary		Update a book
//	@Tags			books
//	@Accept			json
//	@Produce		json
//	@Param			bookId	path		string							true	"Book id"
//	@Param			book	body		models.HandleUpdateBookParams	true	"Fields to change"
//	@Success		200		{object}	models.Book
//	@Failure		400		{object}	models.ErrorResponse
//	@Failure		401		{object}	models.ErrorResponse
//	@Failure		404		{object}	models.ErrorResponse
//	@Failure		500		{object}	models.ErrorResponse
//	@Router			/books/{bookId} [put]
func (a *Api) HandleUpdateBook(w http.ResponseWriter, r *http.Request) {
	id, ok := a.idParam(w, r, "bookId", "HandleUpdateBook")
	if !ok {
		return
	}

	var params models.HandleUpdateBookParams

	ok = a.decodeAndValidate(w, r, &params, "HandleUpdateBook", func() {
		params.Title = sanitize.OptionalText(params.Title)
		params.Author = sanitize.OptionalText(params.Author)
		params.Description = sanitize.OptionalText(params.Description)
	})

	if !ok {
		return
	}

	patch := &models.BookPatch{
		Title:       params.Title,
		Author:      params.Author,
		Description: params.Description,
		CoverImage:  params.CoverImage,
		Status:      params.Status,
	}

	if params.Themes != nil {
		themes := joinThemes(params.Themes)
		patch.Themes = &themes
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
		existing, err := a.store.GetBook(r.Context(), id)

		if err != nil {
			a.respondWithStoreError(w, "HandleUpdateBook", "update book", err)
			return
		}

		start, end := existing.StartDate, existing.EndDate

		if patch.StartDate != nil {
			start = patch.StartDate
		}

		if patch.EndDate != nil {
			end = patch.EndDate
		}

		if details := checkDateOrder(start, end); details != nil {
			a.logger.Warn("end date before start date", "service", "HandleUpdateBook")
			respondWithFieldErrors(w, details)
			return
		}
	}

	book, err := a.store.UpdateBook(r.Context(), id, patch)

	if err != nil {
		a.respondWithStoreError(w, "HandleUpdateBook", "update book", err)
		return
	}

	respondWithSuccess(w, http.StatusOK, book)
}

// HandleDeleteBook godoc
//
//	@Summary		Delete a book
//	@Tags			books
//	@Param			bookId	path		string	true	"Book id"
//	@Success		204		{object}	nil
//	@Failure		400		{object}	models.ErrorResponse
//	@Failure		401		{object}	models.ErrorResponse
//	@Failure		404		{object}	models.ErrorResponse
//	@Failure		500		{object}	models.ErrorResponse
//	@Router			/books/{bookId} [delete]
func (a *Api) HandleDeleteBook(w http.ResponseWriter, r *http.Request) {
	id, ok := a.idParam(w, r, "bookId", "HandleDeleteBook")
	if !ok {
		return
	}

	if err := a.store.DeleteBook(r.Context(), id); err != nil {
		a.respondWithStoreError(w, "HandleDeleteBook", "delete book", err)
		return
	}

	respondWithSuccess(w, http.StatusNoContent, nil)
}

// HandleUploadBookCover godoc
//
//	@Summary		Upload a book cover
//	@Tags			books
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			bookId	path		string	true	"Book id"
//	@Param			cover	formData	file	true	"Cover image (max 3MB)"
//	@Success		200		{object}	models.Book
//	@Failure		400		{object}	models.ErrorResponse
//	@Failure		413		{object}	models.ErrorResponse
//	@Failure		404		{object}	models.ErrorResponse
//	@Failure		500		{object}	models.ErrorResponse
//	@Router			/books/{bookId}/cover [post]
func (a *Api) HandleUploadBookCover(w http.ResponseWriter, r *http.Request) {
	id, ok := a.idParam(w, r, "bookId", "HandleUploadBookCover")
	if !ok {
		return
	}

	data, contentType, ok := a.readImage(w, r, "cover", maxCoverSize, "HandleUploadBookCover")
	if !ok {
		return
	}

	if _, err := a.store.GetBook(r.Context(), id); err != nil {
		a.respondWithStoreError(w, "HandleUploadBookCover", "upload cover", err)
		return
	}

	url, err := a.objectStore.UploadFile(r.Context(), bytes.NewReader(data), "covers/"+id.String(), contentType)

	if err != nil {
		a.logger.Error(err.Error(), "service", "HandleUploadBookCover")
		respondWithError(w, http.StatusInternalServerError, fmt.Errorf("failed to upload cover"))
		return
	}

	if err := a.store.UpdateBookCover(r.Context(), id, url); err != nil {
		a.respondWithStoreError(w, "HandleUploadBookCover", "upload cover", err)
		return
	}

	book, err := a.store.GetBook(r.Context(), id)

	if err != nil {
		a.respondWithStoreError(w, "HandleUploadBookCover", "upload cover", err)
		return
	}

	respondWithSuccess(w, http.StatusOK, book)
}

// readImage reads one multipart file field, enforcing the size limit and
// sniffing the bytes for an image type.
func (a *Api) readImage(w http.ResponseWriter, r *http.Request, field string, limit int64, service string) ([]byte, string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, limit+(1<<20))

	if err := r.ParseMultipartForm(limit); err != nil {
		var maxErr *http.MaxBytesError

		if errors.As(err, &maxErr) {
			a.logger.Warn(fmt.Sprintf("upload too large: %v", err), "service", service)
			respondWithError(w, http.StatusRequestEntityTooLarge, fmt.Errorf("file must not exceed %d MB", limit>>20))
			return nil, "", false
		}

		a.logger.Warn(fmt.Sprintf("error parsing form: %v", err), "service", service)
		respondWithError(w, http.StatusBadRequest, fmt.Errorf("invalid multipart form"))
		return nil, "", false
	}

	file, header, err := r.FormFile(field)

	if err != nil {
		a.logger.Warn(fmt.Sprintf("missing %s file: %v", field, err), "service", service)
		respondWithFieldErrors(w, []models.FieldError{{Field: field, Message: "is required"}})
		return nil, "", false
	}

	defer file.Close()

	if header.Size > limit {
		a.logger.Warn("upload too large", "service", service, "size", header.Size)
		respondWithError(w, http.StatusRequestEntityTooLarge, fmt.Errorf("file must not exceed %d MB", limit>>20))
		return nil, "", false
	}

	data, err := io.ReadAll(file)

	if err != nil {
		a.logger.Error(err.Error(), "service", service)
		respondWithError(w, http.StatusInternalServerError, fmt.Errorf("failed to read upload"))
		return nil, "", false
	}

	mtype := mimetype.Detect(data)

	if !strings.HasPrefix(mtype.String(), "image/") {
		a.logger.Warn(fmt.Sprintf("rejected upload of type %s", mtype.String()), "service", service)
		respondWithFieldErrors(w, []models.FieldError{{Field: field, Message: "must be an image"}})
		return nil, "", false
	}

	return data, mtype.String(), true
}

// HandleGetCurrentWeek godoc
//
//	@Summary		Current week of a book's plan
//	@Description	Answers null when no week covers the date
//	@Tags			books
//	@Produce		json
//	@Param			bookId	path		string	true	"Book id"
//	@Param			date	query		string	false	"YYYY-MM-DD, defaults to today"
//	@Success		200		{object}	models.WeeklyPlan
//	@Failure		400		{object}	models.ErrorResponse
//	@Failure		404		{object}	models.ErrorResponse
//	@Failure		500		{object}	models.ErrorResponse
//	@Router			/books/{bookId}/current-week [get]
func (a *Api) HandleGetCurrentWeek(w http.ResponseWriter, r *http.Request) {
	id, ok := a.idParam(w, r, "bookId", "HandleGetCurrentWeek")
	if !ok {
		return
	}

	day := a.clock()

	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := reading.ParseDate(raw)

		if err != nil {
			a.logger.Warn(err.Error(), "service", "HandleGetCurrentWeek")
			respondWithFieldErrors(w, []models.FieldError{{Field: "date", Message: err.Error()}})
			return
		}

		day = parsed
	}

	if _, err := a.store.GetBook(r.Context(), id); err != nil {
		a.respondWithStoreError(w, "HandleGetCurrentWeek", "fetch current week", err)
		return
	}

	plans, err := a.store.ListWeeklyPlans(r.Context(), id)

	if err != nil {
		a.respondWithStoreError(w, "HandleGetCurrentWeek", "fetch current week", err)
		return
	}

	respondWithSuccess(w, http.StatusOK, reading.CurrentWeek(plans, day))
}

// currentUser is nil for anonymous requests.
func currentUser(r *http.Request) *models.User {
	user, _ := auth.UserFromContext(r.Context())
	return user
}
