package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pakbaz/todolist/internal/services"
	"github.com/pakbaz/todolist/internal/types"
	"github.com/pakbaz/todolist/internal/util"
	"github.com/pakbaz/todolist/models"
)

type UpdateTodoPayload struct {
	IsDone bool `json:"isDone"`
}

// UpdateTodoHandler flips the done state of every todo matching the title
// path parameter.
type UpdateTodoHandler struct {
	Service services.TodoService
	Logger  models.Logger
}

func (h *UpdateTodoHandler) Handle(w http.ResponseWriter, r *http.Request) {
	title := chi.URLParam(r, "title")

	var payload UpdateTodoPayload
	if err := util.ParseJSON(r, &payload); err != nil {
		util.JSONResponse(w, http.StatusBadRequest, types.MessageResponse{Success: false, Message: "invalid request body"})
		return
	}

	updated, err := h.Service.SetDone(r.Context(), title, payload.IsDone)
	if err != nil {
		h.Logger.Error("failed to update todo", "title", title, "error", err)
		util.JSONResponse(w, http.StatusInternalServerError, types.MessageResponse{Success: false, Message: "failed to update todo"})
		return
	}

	if updated == 0 {
		util.JSONResponse(w, http.StatusOK, types.MessageResponse{
			Success: false,
			Message: fmt.Sprintf("no todo found with title %q", title),
		})
		return
	}

	util.JSONResponse(w, http.StatusOK, types.MessageResponse{
		Success: true,
		Message: fmt.Sprintf("todo %q updated", title),
	})
}

func (h *UpdateTodoHandler) Handler() http.Handler {
	return http.HandlerFunc(h.Handle)
}
