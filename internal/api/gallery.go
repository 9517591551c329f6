package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/oseayemenre/upepo/internal/auth"
	"github.com/oseayemenre/upepo/internal/models"
	"github.com/oseayemenre/upepo/internal/sanitize"
)

const maxGalleryImageSize = 5 << 20

// HandleGetGalleryPosts godoc
//
//	@Summary		List gallery posts
//	@Description	Signed-out readers see public posts only
//	@Tags			gallery
//	@Produce		json
//	@Param			category	query		string	false	"Only posts in this category"
//	@Param			userId		query		string	false	"Only posts by this member"
//	@Success		200			{array}		models.GalleryPost
//	@Failure		400			{object}	models.ErrorResponse
//	@Failure		500			{object}	models.ErrorResponse
//	@Router			/gallery [get]
func (a *Api) HandleGetGalleryPosts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	if err := validate.Var(category, "omitempty,oneof=READING_NOOK COFFEE_WINE BOOK_NOTES QUOTES OTHER"); err != nil {
		a.logger.Warn(fmt.Sprintf("invalid category filter: %v", err), "service", "HandleGetGalleryPosts")
		respondWithFieldErrors(w, []models.FieldError{{Field: "category", Message: "must be a known gallery category"}})
		return
	}

	author, ok := a.authorFilter(w, r, "HandleGetGalleryPosts")
	if !ok {
		return
	}

	posts, err := a.store.ListGalleryPosts(r.Context(), models.VisibilityFilter{
		ViewerID: auth.UserIDFromContext(r.Context()),
		AuthorID: author,
		Category: category,
		Limit:    memberContentLimit,
	})

	if err != nil {
		a.respondWithStoreError(w, "HandleGetGalleryPosts", "fetch gallery", err)
		return
	}

	respondWithSuccess(w, http.StatusOK, posts)
}

// HandleCreateGalleryPost godoc
//
//	@Summary		Share a photo in the gallery
//	@Tags			gallery
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			title		formData	string	true	"Title"
//	@Param			description	formData	string	false	"Description"
//	@Param			category	formData	string	true	"READING_NOOK, COFFEE_WINE, BOOK_NOTES, QUOTES or OTHER"
//	@Param			isPublic	formData	bool	false	"Visible to everyone"
//	@Param			image		formData	file	true	"Image (max 5MB)"
//	@Success		201			{object}	models.GalleryPost
//	@Failure		400			{object}	models.ErrorResponse
//	@Failure		401			{object}	models.ErrorResponse
//	@Failure		413			{object}	models.ErrorResponse
//	@Failure		500			{object}	models.ErrorResponse
//	@Router			/gallery [post]
func (a *Api) HandleCreateGalleryPost(w http.ResponseWriter, r *http.Request) {
	data, contentType, ok := a.readImage(w, r, "image", maxGalleryImageSize, "HandleCreateGalleryPost")
	if !ok {
		return
	}

	params := models.HandleCreateGalleryPostParams{
		Title:       sanitize.Text(r.FormValue("title")),
		Description: sanitize.OptionalText(optionalFormValue(r, "description")),
		Category:    r.FormValue("category"),
	}

	if raw := r.FormValue("isPublic"); raw != "" {
		isPublic, err := strconv.ParseBool(raw)

		if err != nil {
			a.logger.Warn(err.Error(), "service", "HandleCreateGalleryPost")
			respondWithFieldErrors(w, []models.FieldError{{Field: "isPublic", Message: "must be true or false"}})
			return
		}

		params.IsPublic = isPublic
	}

	if err := validate.Struct(&params); err != nil {
		a.logger.Warn(fmt.Sprintf("error validating fields: %v", err), "service", "HandleCreateGalleryPost")
		respondWithValidationError(w, err)
		return
	}

	url, err := a.objectStore.UploadFile(r.Context(), bytes.NewReader(data), "gallery/"+uuid.NewString(), contentType)

	if err != nil {
		a.logger.Error(err.Error(), "service", "HandleCreateGalleryPost")
		respondWithError(w, http.StatusInternalServerError, fmt.Errorf("failed to upload image"))
		return
	}

	post, err := a.store.CreateGalleryPost(r.Context(), &models.GalleryPost{
		UserID:      currentUser(r).ID,
		Title:       params.Title,
		Description: params.Description,
		ImageURL:    url,
		Category:    params.Category,
		IsPublic:    params.IsPublic,
	})

	if err != nil {
		a.respondWithStoreError(w, "HandleCreateGalleryPost", "create gallery post", err)
		return
	}

	respondWithSuccess(w, http.StatusCreated, post)
}

func optionalFormValue(r *http.Request, key string) *string {
	if _, ok := r.MultipartForm.Value[key]; !ok {
		return nil
	}

	v := r.FormValue(key)
	return &v
}

// HandleLikeGalleryPost godoc
//
//	@Summary		Like a gallery post
//	@Tags			gallery
//	@Produce		json
//	@Param			postId	path		string	true	"Post id"
//	@Success		200		{object}	likesResponse
//	@Failure		400		{object}	models.ErrorResponse
//	@Failure		404		{object}	models.ErrorResponse
//	@Failure		500		{object}	models.ErrorResponse
//	@Router			/gallery/{postId}/like [post]
func (a *Api) HandleLikeGalleryPost(w http.ResponseWriter, r *http.Request) {
	id, ok := a.idParam(w, r, "postId", "HandleLikeGalleryPost")
	if !ok {
		return
	}

	likes, err := a.store.LikeGalleryPost(r.Context(), id, auth.UserIDFromContext(r.Context()))

	if err != nil {
		a.respondWithStoreError(w, "HandleLikeGalleryPost", "like gallery post", err)
		return
	}

	respondWithSuccess(w, http.StatusOK, likesResponse{Likes: likes})
}

// HandleDeleteGalleryPost godoc
//
//	@Summary		Delete a gallery post
//	@Description	Owners and admins only
//	@Tags			gallery
//	@Param			postId	path		string	true	"Post id"
//	@Success		204		{object}	nil
//	@Failure		400		{object}	models.ErrorResponse
//	@Failure		401		{object}	models.ErrorResponse
//	@Failure		404		{object}	models.ErrorResponse
//	@Failure		500		{object}	models.ErrorResponse
//	@Router			/gallery/{postId} [delete]
func (a *Api) HandleDeleteGalleryPost(w http.ResponseWriter, r *http.Request) {
	id, ok := a.idParam(w, r, "postId", "HandleDeleteGalleryPost")
	if !ok {
		return
	}

	post, err := a.store.GetGalleryPost(r.Context(), id)

	if err != nil {
		a.respondWithStoreError(w, "HandleDeleteGalleryPost", "delete gallery post", err)
		return
	}

	user := currentUser(r)

	if post.UserID != user.ID && !user.IsAdmin() {
		a.logger.Warn("gallery delete by non-owner", "service", "HandleDeleteGalleryPost", "post", id.String())
		respondWithError(w, http.StatusUnauthorized, errUnauthorized)
		return
	}

	if err := a.store.DeleteGalleryPost(r.Context(), id); err != nil {
		a.respondWithStoreError(w, "HandleDeleteGalleryPost", "delete gallery post", err)
		return
	}

	respondWithSuccess(w, http.StatusNoContent, nil)
}
