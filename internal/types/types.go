package types

import "github.com/pakbaz/todolist/models"

// TodoView is the wire shape of a todo on both external surfaces.
type TodoView struct {
	Title  string `json:"title"`
	IsDone bool   `json:"isDone"`
}

// ListResponse is the envelope for read operations.
type ListResponse struct {
	Success bool       `json:"success"`
	Todos   []TodoView `json:"todos"`
	Count   int        `json:"count"`
}

// MessageResponse is the envelope for mutating operations. Business-rule
// outcomes like "nothing matched" set Success=false with a message instead of
// a transport error.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func ToViews(todos []models.Todo) []TodoView {
	views := make([]TodoView, 0, len(todos))
	for _, t := range todos {
		views = append(views, TodoView{Title: t.Title, IsDone: t.IsDone})
	}
	return views
}
