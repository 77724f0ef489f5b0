package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/varlopecar/react-form/backend/internal/service"
	"github.com/varlopecar/react-form/shared/config"
	"github.com/varlopecar/react-form/shared/domain"
	"github.com/varlopecar/react-form/shared/errors"
)

const Version = "1.0.1"

type Handler struct {
	auth  service.AuthService
	users service.UsersService
	cfg   *config.Config
	now   func() time.Time
}

func New(auth service.AuthService, users service.UsersService, cfg *config.Config) *Handler {
	return &Handler{
		auth:  auth,
		users: users,
		cfg:   cfg,
		now:   time.Now,
	}
}

func userIdParam(r *http.Request) (domain.UserId, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, &errors.ErrorWithStatusCode{Message: "Invalid user id", StatusCode: http.StatusUnprocessableEntity}
	}
	return id, nil
}
