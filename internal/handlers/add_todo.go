package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/pakbaz/todolist/internal/services"
	"github.com/pakbaz/todolist/internal/types"
	"github.com/pakbaz/todolist/internal/util"
	"github.com/pakbaz/todolist/models"
)

type AddTodoPayload struct {
	Title  string `json:"title" validate:"required"`
	IsDone bool   `json:"isDone"`
}

type AddTodoHandler struct {
	Service services.TodoService
	Logger  models.Logger
}

func (h *AddTodoHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var payload AddTodoPayload
	if err := util.ParseJSON(r, &payload); err != nil {
		util.JSONResponse(w, http.StatusBadRequest, types.MessageResponse{Success: false, Message: "invalid request body"})
		return
	}
	if err := util.Validate.Struct(payload); err != nil {
		util.JSONResponse(w, http.StatusBadRequest, types.MessageResponse{Success: false, Message: "title is required"})
		return
	}

	todo, created, err := h.Service.Add(r.Context(), payload.Title, payload.IsDone)
	switch {
	case errors.Is(err, services.ErrEmptyTitle), errors.Is(err, services.ErrTitleTooLong):
		util.JSONResponse(w, http.StatusBadRequest, types.MessageResponse{Success: false, Message: err.Error()})
		return
	case err != nil:
		h.Logger.Error("failed to add todo", "title", payload.Title, "error", err)
		util.JSONResponse(w, http.StatusInternalServerError, types.MessageResponse{Success: false, Message: "failed to add todo"})
		return
	}

	if !created {
		util.JSONResponse(w, http.StatusOK, types.MessageResponse{
			Success: true,
			Message: fmt.Sprintf("todo %q already exists", todo.Title),
		})
		return
	}

	util.JSONResponse(w, http.StatusCreated, types.MessageResponse{
		Success: true,
		Message: fmt.Sprintf("todo %q added", todo.Title),
	})
}

func (h *AddTodoHandler) Handler() http.Handler {
	return http.HandlerFunc(h.Handle)
}
