// Package config loads the settings shared by the productdesk binaries from
// the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Database drivers understood by the reference backend.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config holds the settings of every binary. Each binary reads the keys it
// needs.
type Config struct {
	AppPort        string
	APIPort        string
	BackendURL     string
	LogLevel       string
	DatabaseDriver string
	DatabaseDSN    string
	RabbitMQURL    string
	RabbitMQQueue  string
	SeedProducts   bool
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("API_PORT", ":8081")
	v.SetDefault("BACKEND_URL", "http://localhost:8081")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_DSN", "catalog.db")
	v.SetDefault("RABBITMQ_URL", "") // empty disables events
	v.SetDefault("RABBITMQ_QUEUE", "product_events")
	v.SetDefault("SEED_PRODUCTS", false)
}

// Load reads the configuration from v, which should already have
// AutomaticEnv and any flag bindings applied.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	cfg := Config{
		AppPort:        v.GetString("APP_PORT"),
		APIPort:        v.GetString("API_PORT"),
		BackendURL:     strings.TrimRight(v.GetString("BACKEND_URL"), "/"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		DatabaseDriver: strings.ToLower(v.GetString("DATABASE_DRIVER")),
		DatabaseDSN:    v.GetString("DATABASE_DSN"),
		RabbitMQURL:    v.GetString("RABBITMQ_URL"),
		RabbitMQQueue:  v.GetString("RABBITMQ_QUEUE"),
		SeedProducts:   v.GetBool("SEED_PRODUCTS"),
	}

	if cfg.BackendURL == "" {
		return Config{}, fmt.Errorf("BACKEND_URL must not be empty")
	}
	switch cfg.DatabaseDriver {
	case DriverPostgres, DriverSQLite, DriverMemory:
	default:
		return Config{}, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}
	return cfg, nil
}

// FromEnv loads the configuration from environment variables.
func FromEnv() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	return Load(v)
}

// EventsEnabled reports whether product events go through RabbitMQ.
func (c Config) EventsEnabled() bool {
	return c.RabbitMQURL != ""
}
