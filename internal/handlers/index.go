package handlers

import (
	_ "embed"
	"html/template"
	"net/http"

	"github.com/pakbaz/todolist/internal/services"
	"github.com/pakbaz/todolist/models"
)

//go:embed index.html.tmpl
var indexTemplate string

var indexTmpl = template.Must(template.New("index").Parse(indexTemplate))

// IndexHandler renders the todo list as a plain server-side page.
type IndexHandler struct {
	AppName string
	Service services.TodoService
	Logger  models.Logger
}

func (h *IndexHandler) Handle(w http.ResponseWriter, r *http.Request) {
	todos, err := h.Service.List(r.Context())
	if err != nil {
		h.Logger.Error("failed to render index page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, map[string]any{
		"AppName": h.AppName,
		"Todos":   todos,
	}); err != nil {
		h.Logger.Error("failed to execute index template", "error", err)
	}
}

func (h *IndexHandler) Handler() http.Handler {
	return http.HandlerFunc(h.Handle)
}
