package handler

import (
	"net/http"

	"github.com/varlopecar/react-form/shared/api"
	"github.com/varlopecar/react-form/shared/errors"
	"github.com/varlopecar/react-form/shared/middleware"
	"github.com/varlopecar/react-form/shared/utils"
)

func (h *Handler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.NewUsers(users))
}

// PublicUsers lists first names only; it needs no authentication.
func (h *Handler) PublicUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	res := make([]api.PublicUser, len(users))
	for i, u := range users {
		res[i] = api.PublicUser{FirstName: u.FirstName}
	}
	utils.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r)
	if claims == nil {
		utils.WriteErrorAndStatusCode(w, &errors.ErrorWithStatusCode{Message: "Not authenticated", StatusCode: http.StatusUnauthorized})
		return
	}

	user, err := h.users.Get(r.Context(), claims.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.NewUser(user))
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := userIdParam(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.MessageResponse{Message: "User deleted successfully"})
}
