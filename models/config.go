package models

import "time"

type Config struct {
	// Core identity
	AppName     string `json:"app_name" toml:"app_name"`
	Environment string `json:"environment" toml:"environment"`
	Port        string `json:"port" toml:"port"`

	Database DatabaseConfig `json:"database" toml:"database"`
	Logger   LoggerConfig   `json:"logger" toml:"logger"`
	EventBus EventBusConfig `json:"event_bus" toml:"event_bus"`
}

type DatabaseConfig struct {
	Provider        string        `json:"provider" toml:"provider"`
	URL             string        `json:"url" toml:"url"`
	MaxOpenConns    int           `json:"max_open_conns" toml:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns" toml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime" toml:"conn_max_lifetime"`
	// Seed inserts a few sample todos into an empty table. Demo convenience only.
	Seed bool `json:"seed" toml:"seed"`
}

type LoggerConfig struct {
	Level string `json:"level" toml:"level"`
}

type EventBusConfig struct {
	Provider string `json:"provider" toml:"provider"`
	// Prefix namespaces bus topics, e.g. "todolist" publishes "todolist.todo.created".
	Prefix                string `json:"prefix" toml:"prefix"`
	MaxConcurrentHandlers int    `json:"max_concurrent_handlers" toml:"max_concurrent_handlers"`

	GoChannel  *GoChannelConfig  `json:"gochannel" toml:"gochannel"`
	SQLite     *SQLiteConfig     `json:"sqlite" toml:"sqlite"`
	PostgreSQL *PostgreSQLConfig `json:"postgres" toml:"postgres"`
	Redis      *RedisConfig      `json:"redis" toml:"redis"`
	Kafka      *KafkaConfig      `json:"kafka" toml:"kafka"`
	NATS       *NatsConfig       `json:"nats" toml:"nats"`
	RabbitMQ   *RabbitMQConfig   `json:"rabbitmq" toml:"rabbitmq"`
}

type GoChannelConfig struct {
	BufferSize int `json:"buffer_size" toml:"buffer_size"`
}

type SQLiteConfig struct {
	DBPath string `json:"db_path" toml:"db_path"`
}

type PostgreSQLConfig struct {
	URL string `json:"url" toml:"url"`
}

type RedisConfig struct {
	URL           string `json:"url" toml:"url"`
	ConsumerGroup string `json:"consumer_group" toml:"consumer_group"`
}

type KafkaConfig struct {
	Brokers       string `json:"brokers" toml:"brokers"`
	ConsumerGroup string `json:"consumer_group" toml:"consumer_group"`
}

type NatsConfig struct {
	URL string `json:"url" toml:"url"`
}

type RabbitMQConfig struct {
	URL string `json:"url" toml:"url"`
}
