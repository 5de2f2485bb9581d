package todolist

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pakbaz/todolist/internal/util"
	"github.com/pakbaz/todolist/models"
)

// Router wraps chi.Router and registers routes described by models.Route.
type Router struct {
	config *models.Config
	logger models.Logger
	router chi.Router
}

// NewRouter creates a new Router with Chi as the underlying router
func NewRouter(config *models.Config, logger models.Logger) *Router {
	r := chi.NewRouter()

	// Set default NotFound handler
	r.NotFound(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		util.JSONResponse(w, http.StatusNotFound, map[string]any{"message": "Not Found"})
	}))

	// Set default MethodNotAllowed handler
	r.MethodNotAllowed(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}))

	return &Router{
		config: config,
		logger: logger,
		router: r,
	}
}

// Get returns the underlying chi.Router for direct access
func (r *Router) Get() chi.Router {
	return r.router
}

// RegisterMiddleware registers global middleware with Chi
func (r *Router) RegisterMiddleware(middleware ...func(http.Handler) http.Handler) {
	for _, mw := range middleware {
		r.router.Use(mw)
	}
}

// RegisterRoute registers a single route with Chi
func (r *Router) RegisterRoute(route models.Route) {
	handler := route.Handler

	// Apply route-scoped middleware if present
	if len(route.Middleware) > 0 {
		for i := len(route.Middleware) - 1; i >= 0; i-- {
			handler = route.Middleware[i](handler)
		}
	}

	switch route.Method {
	case http.MethodGet:
		r.router.Get(route.Path, handler.ServeHTTP)
	case http.MethodPost:
		r.router.Post(route.Path, handler.ServeHTTP)
	case http.MethodPut:
		r.router.Put(route.Path, handler.ServeHTTP)
	case http.MethodPatch:
		r.router.Patch(route.Path, handler.ServeHTTP)
	case http.MethodDelete:
		r.router.Delete(route.Path, handler.ServeHTTP)
	case http.MethodHead:
		r.router.Head(route.Path, handler.ServeHTTP)
	case http.MethodOptions:
		r.router.Options(route.Path, handler.ServeHTTP)
	default:
		r.router.MethodFunc(route.Method, route.Path, handler.ServeHTTP)
	}
}

// RegisterRoutes registers multiple routes
func (r *Router) RegisterRoutes(routes []models.Route) {
	for _, route := range routes {
		r.RegisterRoute(route)
	}
}

// Handler returns the configured HTTP handler
func (r *Router) Handler() http.Handler {
	return r.router
}

// ServeHTTP implements http.Handler for testing and direct use
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
