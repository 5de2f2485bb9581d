package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pakbaz/todolist/env"
	"github.com/pakbaz/todolist/models"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv(env.EnvGoEnvironment, "")
	t.Setenv(env.EnvPort, "")

	config := NewConfig()

	assert.Equal(t, "TodoList", config.AppName)
	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, "8080", config.Port)
	assert.Equal(t, "sqlite", config.Database.Provider)
	assert.Equal(t, "data/todolist.db", config.Database.URL)
	assert.Equal(t, 25, config.Database.MaxOpenConns)
	assert.Equal(t, "info", config.Logger.Level)
	assert.Equal(t, "todolist", config.EventBus.Prefix)
}

func TestNewConfig_OptionsOverrideDefaults(t *testing.T) {
	t.Setenv(env.EnvDatabaseURL, "")

	config := NewConfig(
		WithAppName("MyTodos"),
		WithPort("9090"),
		WithDatabase(models.DatabaseConfig{
			Provider:        "sqlite",
			URL:             ":memory:",
			MaxOpenConns:    1,
			ConnMaxLifetime: time.Minute,
			Seed:            true,
		}),
		WithLogger(models.LoggerConfig{Level: "debug"}),
		WithEventBus(models.EventBusConfig{
			Provider:  "gochannel",
			Prefix:    "custom",
			GoChannel: &models.GoChannelConfig{BufferSize: 10},
		}),
	)

	assert.Equal(t, "MyTodos", config.AppName)
	assert.Equal(t, "9090", config.Port)
	assert.Equal(t, ":memory:", config.Database.URL)
	assert.Equal(t, 1, config.Database.MaxOpenConns)
	assert.True(t, config.Database.Seed)
	assert.Equal(t, "debug", config.Logger.Level)
	assert.Equal(t, "custom", config.EventBus.Prefix)
	assert.Equal(t, 10, config.EventBus.GoChannel.BufferSize)
}

func TestNewConfig_EmptyOptionsKeepDefaults(t *testing.T) {
	t.Setenv(env.EnvGoEnvironment, "")
	t.Setenv(env.EnvPort, "")

	config := NewConfig(
		WithAppName(""),
		WithPort(""),
		WithLogger(models.LoggerConfig{}),
	)

	assert.Equal(t, "TodoList", config.AppName)
	assert.Equal(t, "8080", config.Port)
	assert.Equal(t, "info", config.Logger.Level)
}

func TestNewConfig_InvalidEventBusPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewConfig(WithEventBus(models.EventBusConfig{Provider: "carrier-pigeon"}))
	})

	t.Setenv(env.EnvRedisURL, "")
	assert.Panics(t, func() {
		NewConfig(WithEventBus(models.EventBusConfig{Provider: "redis"}))
	})
}
