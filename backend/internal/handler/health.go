package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/varlopecar/react-form/shared/api"
	"github.com/varlopecar/react-form/shared/logger"
	"github.com/varlopecar/react-form/shared/utils"
)

// Health always answers 200; the body says whether the database is reachable.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	res := api.HealthResponse{
		Status:    "healthy",
		Database:  "connected",
		Timestamp: h.now().UTC().Format(time.RFC3339),
	}
	if err := h.users.Health(ctx); err != nil {
		logger.Log.Warn("health check failed", "error", err)
		res.Status = "unhealthy"
		res.Database = "disconnected"
		res.Error = err.Error()
	}
	utils.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) Info(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, api.InfoResponse{
		Message: "React Form API",
		Version: Version,
		Status:  "running",
		Endpoints: "register: POST /register; login: POST /login; users: GET /users; " +
			"public-users: GET /public-users; me: GET /me; delete: DELETE /users/{id}; health: GET /health",
	})
}
