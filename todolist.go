package todolist

import (
	"context"
	"net/http"

	"github.com/uptrace/bun"

	"github.com/pakbaz/todolist/internal/handlers"
	"github.com/pakbaz/todolist/internal/mcp"
	"github.com/pakbaz/todolist/internal/repositories"
	"github.com/pakbaz/todolist/internal/services"
	"github.com/pakbaz/todolist/models"
)

// Version is reported by the health endpoint and the tool-calling handshake.
const Version = "1.0.0"

// App wires the store, the todo service, and both request surfaces together.
type App struct {
	Config *models.Config

	logger  models.Logger
	db      *bun.DB
	bus     models.EventBus
	service services.TodoService
	router  *Router
}

// New builds a ready-to-serve application: it connects to the database, runs
// migrations, starts the event bus, and registers all routes.
func New(ctx context.Context, config *models.Config) (*App, error) {
	logger := InitLogger(config)

	db, err := InitDatabase(config)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, config, logger, db); err != nil {
		db.Close()
		return nil, err
	}

	bus, err := InitEventBus(config)
	if err != nil {
		db.Close()
		return nil, err
	}

	repo := repositories.NewBunTodoRepository(db)
	service := services.NewTodoService(repo, bus, logger)

	if config.Database.Seed {
		if err := seedTodos(ctx, service, repo, logger); err != nil {
			logger.Warn("failed to seed sample todos", "error", err)
		}
	}

	app := &App{
		Config:  config,
		logger:  logger,
		db:      db,
		bus:     bus,
		service: service,
		router:  NewRouter(config, logger),
	}

	app.router.RegisterRoutes(handlers.GetRoutes(config, service, logger))

	rpc := &mcp.Handler{
		ServerName:    config.AppName,
		ServerVersion: Version,
		Service:       service,
		Logger:        logger,
	}
	app.router.RegisterRoute(models.Route{
		Method:  http.MethodPost,
		Path:    "/mcp",
		Handler: rpc.Handler(),
	})

	return app, nil
}

// Logger returns the application logger.
func (a *App) Logger() models.Logger {
	return a.logger
}

// Service returns the todo service, for embedding the app in a larger program.
func (a *App) Service() services.TodoService {
	return a.service
}

// Handler returns the configured HTTP handler for both surfaces.
func (a *App) Handler() http.Handler {
	return a.router.Handler()
}

// Close releases the event bus and the database connection.
func (a *App) Close() error {
	var firstErr error
	if err := a.bus.Close(); err != nil {
		firstErr = err
	}
	if err := a.db.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// seedTodos inserts a few sample rows into an empty table.
func seedTodos(ctx context.Context, service services.TodoService, repo repositories.TodoRepository, logger models.Logger) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	samples := []struct {
		title  string
		isDone bool
	}{
		{"Buy groceries", false},
		{"Write weekly report", false},
		{"Water the plants", true},
	}

	for _, s := range samples {
		if _, _, err := service.Add(ctx, s.title, s.isDone); err != nil {
			return err
		}
	}

	logger.Info("seeded sample todos", "count", len(samples))

	return nil
}
