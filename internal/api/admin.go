package api

import (
	"net/http"

	"github.com/oseayemenre/upepo/internal/models"
)

// HandleGetAdminStats godoc
//
//	@Summary		Dashboard counters
//	@Tags			admin
//	@Produce		json
//	@Success		200	{object}	models.AdminStats
//	@Failure		401	{object}	models.ErrorResponse
//	@Failure		500	{object}	models.ErrorResponse
//	@Router			/admin/stats [get]
func (a *Api) HandleGetAdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.store.GetAdminStats(r.Context(), a.clock())

	if err != nil {
		a.respondWithStoreError(w, "HandleGetAdminStats", "fetch stats", err)
		return
	}

	respondWithSuccess(w, http.StatusOK, stats)
}

// HandleGetMembers godoc
//
//	@Summary		List members
//	@Tags			admin
//	@Produce		json
//	@Success		200	{array}		models.User
//	@Failure		401	{object}	models.ErrorResponse
//	@Failure		500	{object}	models.ErrorResponse
//	@Router			/admin/members [get]
func (a *Api) HandleGetMembers(w http.ResponseWriter, r *http.Request) {
	users, err := a.store.ListUsers(r.Context())

	if err != nil {
		a.respondWithStoreError(w, "HandleGetMembers", "fetch members", err)
		return
	}

	respondWithSuccess(w, http.StatusOK, users)
}

// HandleUpdateMemberRole godoc
//
//	@Summary		Change a member's role
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			userId	path		string							true	"Member id"
//	@Param			role	body		models.HandleUpdateRoleParams	true	"Role"
//	@Success		200		{object}	models.User
//	@Failure		400		{object}	models.ErrorResponse
//	@Failure		401		{object}	models.ErrorResponse
//	@Failure		404		{object}	models.ErrorResponse
//	@Failure		500		{object}	models.ErrorResponse
//	@Router			/admin/members/{userId}/role [patch]
func (a *Api) HandleUpdateMemberRole(w http.ResponseWriter, r *http.Request) {
	id, ok := a.idParam(w, r, "userId", "HandleUpdateMemberRole")
	if !ok {
		return
	}

	var params models.HandleUpdateRoleParams

	if !a.decodeAndValidate(w, r, &params, "HandleUpdateMemberRole", nil) {
		return
	}

	user, err := a.store.SetUserRole(r.Context(), id, params.Role)

	if err != nil {
		a.respondWithStoreError(w, "HandleUpdateMemberRole", "update role", err)
		return
	}

	a.logger.Info("member role changed", "service", "HandleUpdateMemberRole", "user", id.String(), "role", params.Role)

	respondWithSuccess(w, http.StatusOK, user)
}
