package handler

import (
	"net/http"

	"github.com/varlopecar/react-form/shared/api"
	"github.com/varlopecar/react-form/shared/domain"
	"github.com/varlopecar/react-form/shared/errors"
	"github.com/varlopecar/react-form/shared/utils"
)

const tokenType = "bearer"

// Register answers with the register envelope. Only a malformed body gets a
// plain {"detail"} error.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		writeEnvelopeError(w, err, func(msg string) any { return api.RegisterResponse{Error: msg} })
		return
	}

	user, err := h.auth.Register(r.Context(), domain.User{
		Email:      req.Email,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		BirthDate:  req.BirthDate,
		City:       req.City,
		PostalCode: req.PostalCode,
	}, req.Password)
	if err != nil {
		writeEnvelopeError(w, err, func(msg string) any { return api.RegisterResponse{Error: msg} })
		return
	}

	apiUser := api.NewUser(user)
	utils.WriteJSON(w, http.StatusCreated, api.RegisterResponse{
		Success: true,
		Message: "User registered successfully",
		User:    &apiUser,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		writeEnvelopeError(w, err, func(msg string) any { return api.LoginResponse{Error: msg} })
		return
	}

	token, user, err := h.auth.Login(r.Context(), domain.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		if errors.StatusCode(err) == http.StatusUnauthorized {
			w.Header().Set("WWW-Authenticate", "Bearer")
		}
		writeEnvelopeError(w, err, func(msg string) any { return api.LoginResponse{Error: msg} })
		return
	}

	apiUser := api.NewUser(user)
	utils.WriteJSON(w, http.StatusOK, api.LoginResponse{
		Success:     true,
		AccessToken: token,
		TokenType:   tokenType,
		User:        &apiUser,
	})
}

// writeEnvelopeError writes classified client errors as {"success":false,"error":...}.
// Malformed bodies and server errors keep the plain {"detail"} shape.
func writeEnvelopeError(w http.ResponseWriter, err error, envelope func(msg string) any) {
	code := errors.StatusCode(err)
	if code == http.StatusBadRequest || code >= http.StatusInternalServerError {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, code, envelope(err.Error()))
}
