package models

import (
	"net/http"
)

type RouteMiddleware func(http.Handler) http.Handler

// Route declares one HTTP endpoint to register on the router.
type Route struct {
	Method     string
	Path       string
	Middleware []RouteMiddleware
	Handler    http.Handler
}

// Handler is the interface implemented by request handlers.
type Handler interface {
	Handle(w http.ResponseWriter, r *http.Request)
}
