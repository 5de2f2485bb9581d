package handlers

import (
	"net/http"
	"time"

	"github.com/pakbaz/todolist/internal/util"
)

type HealthHandler struct {
	Environment string
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	util.JSONResponse(w, http.StatusOK, map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": h.Environment,
	})
}

func (h *HealthHandler) Handler() http.Handler {
	return http.HandlerFunc(h.Handle)
}
