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

// DeleteTodoHandler removes every todo matching the title path parameter.
type DeleteTodoHandler struct {
	Service services.TodoService
	Logger  models.Logger
}

func (h *DeleteTodoHandler) Handle(w http.ResponseWriter, r *http.Request) {
	title := chi.URLParam(r, "title")

	removed, err := h.Service.RemoveByTitle(r.Context(), title)
	if err != nil {
		h.Logger.Error("failed to delete todo", "title", title, "error", err)
		util.JSONResponse(w, http.StatusInternalServerError, types.MessageResponse{Success: false, Message: "failed to delete todo"})
		return
	}

	if removed == 0 {
		util.JSONResponse(w, http.StatusOK, types.MessageResponse{
			Success: false,
			Message: fmt.Sprintf("no todo found with title %q", title),
		})
		return
	}

	util.JSONResponse(w, http.StatusOK, types.MessageResponse{
		Success: true,
		Message: fmt.Sprintf("removed %d todo(s) with title %q", removed, title),
	})
}

func (h *DeleteTodoHandler) Handler() http.Handler {
	return http.HandlerFunc(h.Handle)
}
