package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pakbaz/todolist/env"
	"github.com/pakbaz/todolist/models"
)

type ConfigOption func(*models.Config)

// NewConfig builds a Config using functional options with sensible defaults.
// Panics if the event bus configuration is invalid.
func NewConfig(options ...ConfigOption) *models.Config {
	// Define sensible defaults first
	config := &models.Config{
		AppName:     "TodoList",
		Environment: "development",
		Port:        "8080",
		Database: models.DatabaseConfig{
			Provider:        "sqlite",
			URL:             "data/todolist.db",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: time.Minute * 10,
		},
		Logger:   models.LoggerConfig{Level: "info"},
		EventBus: models.EventBusConfig{Prefix: "todolist"},
	}

	// Apply the options - they override defaults only if non-zero/non-empty
	for _, option := range options {
		option(config)
	}

	if envValue := os.Getenv(env.EnvGoEnvironment); envValue != "" {
		config.Environment = envValue
	}
	if envValue := os.Getenv(env.EnvPort); envValue != "" {
		config.Port = envValue
	}

	// Validate event bus configuration
	if err := validateEventBusConfig(&config.EventBus); err != nil {
		panic(fmt.Errorf("invalid event bus configuration: %w", err))
	}

	return config
}

func WithAppName(name string) ConfigOption {
	return func(c *models.Config) {
		if name != "" {
			c.AppName = name
		}
	}
}

func WithEnvironment(environment string) ConfigOption {
	return func(c *models.Config) {
		if environment != "" {
			c.Environment = environment
		}
	}
}

func WithPort(port string) ConfigOption {
	return func(c *models.Config) {
		if port != "" {
			c.Port = port
		}
	}
}

func WithDatabase(config models.DatabaseConfig) ConfigOption {
	return func(c *models.Config) {
		if config.Provider != "" {
			c.Database.Provider = config.Provider
		}
		if envValue := os.Getenv(env.EnvDatabaseURL); envValue != "" {
			c.Database.URL = envValue
		} else if config.URL != "" {
			c.Database.URL = config.URL
		}
		if config.MaxOpenConns != 0 {
			c.Database.MaxOpenConns = config.MaxOpenConns
		}
		if config.MaxIdleConns != 0 {
			c.Database.MaxIdleConns = config.MaxIdleConns
		}
		if config.ConnMaxLifetime != 0 {
			c.Database.ConnMaxLifetime = config.ConnMaxLifetime
		}
		c.Database.Seed = config.Seed
	}
}

func WithLogger(config models.LoggerConfig) ConfigOption {
	return func(c *models.Config) {
		if config.Level != "" {
			c.Logger.Level = config.Level
		}
	}
}

func WithEventBus(config models.EventBusConfig) ConfigOption {
	return func(c *models.Config) {
		if config.Provider != "" {
			c.EventBus.Provider = config.Provider
		}
		if config.Prefix != "" {
			c.EventBus.Prefix = config.Prefix
		}
		if config.MaxConcurrentHandlers > 0 {
			c.EventBus.MaxConcurrentHandlers = config.MaxConcurrentHandlers
		}
		if config.GoChannel != nil {
			c.EventBus.GoChannel = config.GoChannel
		}
		if config.SQLite != nil {
			c.EventBus.SQLite = config.SQLite
		}
		if config.PostgreSQL != nil {
			c.EventBus.PostgreSQL = config.PostgreSQL
		}
		if config.Redis != nil {
			c.EventBus.Redis = config.Redis
		}
		if config.Kafka != nil {
			c.EventBus.Kafka = config.Kafka
		}
		if config.NATS != nil {
			c.EventBus.NATS = config.NATS
		}
		if config.RabbitMQ != nil {
			c.EventBus.RabbitMQ = config.RabbitMQ
		}
	}
}

// validateEventBusConfig validates that the event bus provider has the correct configuration
func validateEventBusConfig(config *models.EventBusConfig) error {
	provider := config.Provider
	if provider == "" {
		provider = "gochannel"
	}

	switch provider {
	case "gochannel":
		// In-memory transport needs no configuration

	case "sqlite":
		if config.SQLite == nil {
			return fmt.Errorf("sqlite provider selected but sqlite config is missing")
		}

	case "postgres":
		if config.PostgreSQL == nil {
			return fmt.Errorf("postgres provider selected but postgres config is missing")
		}
		if os.Getenv(env.EnvPostgresURL) == "" && config.PostgreSQL.URL == "" {
			return fmt.Errorf("postgres provider selected but postgres.url is empty and %s env var is not set", env.EnvPostgresURL)
		}

	case "redis":
		if config.Redis == nil {
			return fmt.Errorf("redis provider selected but redis config is missing")
		}
		if os.Getenv(env.EnvRedisURL) == "" && config.Redis.URL == "" {
			return fmt.Errorf("redis provider selected but redis.url is empty and %s env var is not set", env.EnvRedisURL)
		}

	case "kafka":
		if config.Kafka == nil {
			return fmt.Errorf("kafka provider selected but kafka config is missing")
		}
		if os.Getenv(env.EnvKafkaBrokers) == "" && config.Kafka.Brokers == "" {
			return fmt.Errorf("kafka provider selected but kafka.brokers is empty and %s env var is not set", env.EnvKafkaBrokers)
		}

	case "nats":
		if config.NATS == nil {
			return fmt.Errorf("nats provider selected but nats config is missing")
		}
		if os.Getenv(env.EnvNatsURL) == "" && config.NATS.URL == "" {
			return fmt.Errorf("nats provider selected but nats.url is empty and %s env var is not set", env.EnvNatsURL)
		}

	case "rabbitmq":
		if config.RabbitMQ == nil {
			return fmt.Errorf("rabbitmq provider selected but rabbitmq config is missing")
		}
		if os.Getenv(env.EnvRabbitMQURL) == "" && config.RabbitMQ.URL == "" {
			return fmt.Errorf("rabbitmq provider selected but rabbitmq.url is empty and %s env var is not set", env.EnvRabbitMQURL)
		}

	default:
		return fmt.Errorf("unsupported event bus provider: %s", provider)
	}

	return nil
}
