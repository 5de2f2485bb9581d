package handlers

import (
	"net/http"

	"github.com/pakbaz/todolist/internal/services"
	"github.com/pakbaz/todolist/internal/types"
	"github.com/pakbaz/todolist/internal/util"
	"github.com/pakbaz/todolist/models"
)

type ListTodosHandler struct {
	Service services.TodoService
	Logger  models.Logger
}

func (h *ListTodosHandler) Handle(w http.ResponseWriter, r *http.Request) {
	todos, err := h.Service.List(r.Context())
	if err != nil {
		h.Logger.Error("failed to list todos", "error", err)
		util.JSONResponse(w, http.StatusInternalServerError, types.MessageResponse{Success: false, Message: "failed to load todos"})
		return
	}

	util.JSONResponse(w, http.StatusOK, types.ListResponse{
		Success: true,
		Todos:   types.ToViews(todos),
		Count:   len(todos),
	})
}

func (h *ListTodosHandler) Handler() http.Handler {
	return http.HandlerFunc(h.Handle)
}
