package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/oseayemenre/upepo/internal/auth"
	"github.com/oseayemenre/upepo/internal/models"
	"github.com/oseayemenre/upepo/internal/sanitize"
	"github.com/oseayemenre/upepo/internal/store"
)

var errInvalidCredentials = errors.New("invalid email or password")

// HandleRegister godoc
//
//	@Summary		Create a member account
//	@Description	Creates a MEMBER and signs them in
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			account	body		models.HandleRegisterParams	true	"Account"
//	@Success		201		{object}	models.User
//	@Header			201		{string}	Set-Cookie	"upepo_session=12345"
//	@Failure		400		{object}	models.ErrorResponse
//	@Failure		409		{object}	models.ErrorResponse
//	@Failure		500		{object}	models.ErrorResponse
//	@Router			/auth/register [post]
func (a *Api) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var params models.HandleRegisterParams

	ok := a.decodeAndValidate(w, r, &params, "HandleRegister", func() {
		params.Name = sanitize.Text(params.Name)
		params.Email = strings.TrimSpace(params.Email)
	})

	if !ok {
		return
	}

	hash, err := auth.HashPassword(params.Password)

	if err != nil {
		a.logger.Error(err.Error(), "service", "HandleRegister")
		respondWithError(w, http.StatusInternalServerError, fmt.Errorf("failed to create account"))
		return
	}

	user, err := a.store.CreateUser(r.Context(), &models.User{
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: &hash,
		Role:         models.RoleMember,
	})

	if err != nil {
		a.respondWithStoreError(w, "HandleRegister", "create account", err)
		return
	}

	if err := a.sessions.SignIn(w, r, user.ID); err != nil {
		a.logger.Error(err.Error(), "service", "HandleRegister")
		respondWithError(w, http.StatusInternalServerError, fmt.Errorf("failed to sign in"))
		return
	}

	respondWithSuccess(w, http.StatusCreated, user)
}

// HandleLogin godoc
//
//	@Summary		Sign in with email and password
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			credentials	body		models.HandleLoginParams	true	"Credentials"
//	@Success		200			{object}	models.User
//	@Header			200			{string}	Set-Cookie	"upepo_session=12345"
//	@Failure		400			{object}	models.ErrorResponse
//	@Failure		401			{object}	models.ErrorResponse
//	@Failure		500			{object}	models.ErrorResponse
//	@Router			/auth/login [post]
func (a *Api) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var params models.HandleLoginParams

	ok := a.decodeAndValidate(w, r, &params, "HandleLogin", func() {
		params.Email = strings.TrimSpace(params.Email)
	})

	if !ok {
		return
	}

	user, err := a.store.GetUserByEmail(r.Context(), params.Email)

	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			a.logger.Warn("login for unknown email", "service", "HandleLogin")
			respondWithError(w, http.StatusUnauthorized, errInvalidCredentials)
			return
		}
		a.respondWithStoreError(w, "HandleLogin", "sign in", err)
		return
	}

	if user.PasswordHash == nil {
		a.logger.Warn("password login for oauth-only account", "service", "HandleLogin")
		respondWithError(w, http.StatusUnauthorized, errInvalidCredentials)
		return
	}

	if err := auth.ComparePassword(params.Password, *user.PasswordHash); err != nil {
		a.logger.Warn("wrong password", "service", "HandleLogin")
		respondWithError(w, http.StatusUnauthorized, errInvalidCredentials)
		return
	}

	if err := a.sessions.SignIn(w, r, user.ID); err != nil {
		a.logger.Error(err.Error(), "service", "HandleLogin")
		respondWithError(w, http.StatusInternalServerError, fmt.Errorf("failed to sign in"))
		return
	}

	respondWithSuccess(w, http.StatusOK, user)
}

// HandleLogout godoc
//
//	@Summary		Sign out
//	@Tags			auth
//	@Success		204	{object}	nil
//	@Failure		500	{object}	models.ErrorResponse
//	@Router			/auth/logout [post]
func (a *Api) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.SignOut(w, r); err != nil {
		a.logger.Error(err.Error(), "service", "HandleLogout")
		respondWithError(w, http.StatusInternalServerError, fmt.Errorf("failed to sign out"))
		return
	}

	respondWithSuccess(w, http.StatusNoContent, nil)
}

// HandleMe godoc
//
//	@Summary		Signed-in member
//	@Tags			auth
//	@Produce		json
//	@Success		200	{object}	models.User
//	@Failure		401	{object}	models.ErrorResponse
//	@Router			/auth/me [get]
func (a *Api) HandleMe(w http.ResponseWriter, r *http.Request) {
	respondWithSuccess(w, http.StatusOK, currentUser(r))
}

// HandleGoogleSignIn godoc
//
//	@Summary		Sign in with google
//	@Tags			auth
//	@Success		307
//	@Router			/auth/google [get]
func (a *Api) HandleGoogleSignIn(w http.ResponseWriter, r *http.Request) {
	auth.BeginGoogle(w, r)
}

// HandleGoogleSignInCallback godoc
//
//	@Summary		Google auth callback url
//	@Tags			auth
//	@Success		302
//	@Failure		401	{object}	models.ErrorResponse
//	@Failure		500	{object}	models.ErrorResponse
//	@Router			/auth/google/callback [get]
func (a *Api) HandleGoogleSignInCallback(w http.ResponseWriter, r *http.Request) {
	gu, err := auth.CompleteGoogle(w, r)

	if err != nil {
		a.logger.Warn(fmt.Sprintf("error completing google sign in: %v", err), "service", "HandleGoogleSignInCallback")
		respondWithError(w, http.StatusUnauthorized, fmt.Errorf("error retrieving user details"))
		return
	}

	name := sanitize.Text(gu.Name)

	if name == "" {
		name = strings.Split(gu.Email, "@")[0]
	}

	user := &models.User{Name: name, Email: gu.Email}

	if gu.AvatarURL != "" {
		user.Image = &gu.AvatarURL
	}

	user, err = a.store.UpsertOAuthUser(r.Context(), user)

	if err != nil {
		a.respondWithStoreError(w, "HandleGoogleSignInCallback", "sign in", err)
		return
	}

	if err := a.sessions.SignIn(w, r, user.ID); err != nil {
		a.logger.Error(err.Error(), "service", "HandleGoogleSignInCallback")
		respondWithError(w, http.StatusInternalServerError, fmt.Errorf("failed to sign in"))
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}
