package todolist

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/uptrace/bun"

	"github.com/pakbaz/todolist/events"
	internalbootstrap "github.com/pakbaz/todolist/internal/bootstrap"
	internalmigrations "github.com/pakbaz/todolist/internal/migrations"
	"github.com/pakbaz/todolist/models"
)

// InitLogger initializes the logger based on configuration
func InitLogger(config *models.Config) models.Logger {
	return internalbootstrap.InitLogger(internalbootstrap.LoggerOptions{Level: config.Logger.Level})
}

// InitDatabase creates a Bun DB connection based on provider
func InitDatabase(config *models.Config) (*bun.DB, error) {
	return internalbootstrap.InitDatabase(
		internalbootstrap.DatabaseOptions{
			Provider:        config.Database.Provider,
			URL:             config.Database.URL,
			MaxOpenConns:    config.Database.MaxOpenConns,
			MaxIdleConns:    config.Database.MaxIdleConns,
			ConnMaxLifetime: config.Database.ConnMaxLifetime,
		},
		config.Logger.Level,
	)
}

// InitEventBus creates an event bus based on the configuration
func InitEventBus(config *models.Config) (models.EventBus, error) {
	// Default to gochannel if not specified
	provider := config.EventBus.Provider
	if provider == "" {
		provider = events.ProviderGoChannel.String()
	}

	eventBusConfig := config.EventBus
	eventBusConfig.Provider = provider
	if provider == events.ProviderGoChannel.String() && eventBusConfig.GoChannel == nil {
		eventBusConfig.GoChannel = &models.GoChannelConfig{
			BufferSize: 100,
		}
	}

	logger := watermill.NewStdLogger(false, false)

	pubsub, err := events.InitWatermillProvider(&eventBusConfig, logger)
	if err != nil {
		return nil, err
	}

	return events.NewEventBus(config, pubsub), nil
}

// RunMigrations applies all pending schema migrations
func RunMigrations(ctx context.Context, config *models.Config, logger models.Logger, db bun.IDB) error {
	return internalmigrations.Run(ctx, logger, config.Logger.Level, config.Database.Provider, db)
}

// DropMigrations rolls back all applied schema migrations
func DropMigrations(ctx context.Context, config *models.Config, logger models.Logger, db bun.IDB) error {
	return internalmigrations.Drop(ctx, logger, config.Database.Provider, db)
}
