package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	todolist "github.com/pakbaz/todolist"
	todolistconfig "github.com/pakbaz/todolist/config"
	"github.com/pakbaz/todolist/env"
	todolistmodels "github.com/pakbaz/todolist/models"
)

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// Run the todo list server in standalone mode
func main() {
	if err := godotenv.Load(); err != nil {
		if os.Getenv(env.EnvGoEnvironment) != "production" {
			slog.Debug("no .env file found, using environment variables and defaults")
		}
	}

	// Load configuration from TOML file if available
	tomlConfig := loadConfigFromFile()

	// Build config using functional options pattern to ensure all fields are set
	appConfig := todolistconfig.NewConfig(
		todolistconfig.WithAppName(tomlConfig.AppName),
		todolistconfig.WithEnvironment(tomlConfig.Environment),
		todolistconfig.WithPort(tomlConfig.Port),
		todolistconfig.WithLogger(tomlConfig.Logger),
		todolistconfig.WithDatabase(tomlConfig.Database),
		todolistconfig.WithEventBus(tomlConfig.EventBus),
	)

	ctx := context.Background()

	app, err := todolist.New(ctx, appConfig)
	if err != nil {
		slog.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}

	logger := app.Logger()

	server := &http.Server{
		Addr:    ":" + appConfig.Port,
		Handler: app.Handler(),
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", "app", appConfig.AppName, "port", appConfig.Port, "environment", appConfig.Environment)
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}

	case sig := <-shutdownChan:
		logger.Info("shutdown signal received", "signal", sig)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", "error", err)
		}
	}

	if err := app.Close(); err != nil {
		logger.Error("failed to close application", "error", err)
		os.Exit(1)
	}
}

// loadConfigFromFile attempts to load configuration from TOML file if it exists
func loadConfigFromFile() todolistmodels.Config {
	configPath := getEnv(env.EnvConfigPath, "config.toml")
	var config todolistmodels.Config

	if _, err := os.Stat(configPath); err != nil {
		// File doesn't exist, return empty config - will use env vars and defaults
		return config
	}

	if _, err := toml.DecodeFile(configPath, &config); err != nil {
		slog.Warn("failed to parse TOML config file, using environment variables and defaults", "path", configPath, "error", err)
	}

	return config
}
