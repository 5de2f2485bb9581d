package handlers

import (
	"github.com/pakbaz/todolist/internal/services"
	"github.com/pakbaz/todolist/models"
)

func GetRoutes(config *models.Config, service services.TodoService, logger models.Logger) []models.Route {
	index := &IndexHandler{
		AppName: config.AppName,
		Service: service,
		Logger:  logger,
	}
	list := &ListTodosHandler{
		Service: service,
		Logger:  logger,
	}
	add := &AddTodoHandler{
		Service: service,
		Logger:  logger,
	}
	update := &UpdateTodoHandler{
		Service: service,
		Logger:  logger,
	}
	del := &DeleteTodoHandler{
		Service: service,
		Logger:  logger,
	}
	health := &HealthHandler{
		Environment: config.Environment,
	}

	return []models.Route{
		{
			Method:  "GET",
			Path:    "/",
			Handler: index.Handler(),
		},
		{
			Method:  "GET",
			Path:    "/todos",
			Handler: list.Handler(),
		},
		{
			Method:  "POST",
			Path:    "/todos",
			Handler: add.Handler(),
		},
		{
			Method:  "PUT",
			Path:    "/todos/{title}",
			Handler: update.Handler(),
		},
		{
			Method:  "DELETE",
			Path:    "/todos/{title}",
			Handler: del.Handler(),
		},
		{
			Method:  "GET",
			Path:    "/health",
			Handler: health.Handler(),
		},
	}
}
