package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/maxviazov/paginater/internal/logger"
	"github.com/maxviazov/paginater/internal/pagination"
)

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

type Config struct {
	App        AppConfig           `mapstructure:"app"`
	Logger     logger.LoggerConfig `mapstructure:"logger" validate:"-"`
	Pagination pagination.Settings `mapstructure:"pagination"`
	Storage    StorageConfig       `mapstructure:"storage"`
	Postgres   PostgresConfig      `mapstructure:"postgres" validate:"-"`
}

type AppConfig struct {
	Name    string `mapstructure:"name" validate:"required"`
	Version string `mapstructure:"version"`
	Env     string `mapstructure:"env" validate:"oneof=dev test staging prod"`
	Port    int    `mapstructure:"port" validate:"min=1,max=65535"`
	// BaseURL prefixes computed links in responses. Empty means relative links.
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
	// AdminToken, when set, lets requests carrying it in X-Admin-Token see private fields.
	AdminToken string `mapstructure:"admin_token"`
}

type StorageConfig struct {
	Driver string `mapstructure:"driver" validate:"oneof=memory postgres"`
	// Seed fills the memory store with demo rows on start.
	Seed bool `mapstructure:"seed"`
}

// PostgresConfig holds connection and pool tuning. Durations are in seconds.
// Credentials are expected from the environment, never from the YAML file.
type PostgresConfig struct {
	Host              string `mapstructure:"host" validate:"required"`
	Port              int    `mapstructure:"port" validate:"min=1,max=65535"`
	User              string `mapstructure:"user" validate:"required"`
	Password          string `mapstructure:"password" validate:"required"`
	DBName            string `mapstructure:"db" validate:"required"`
	SSLMode           string `mapstructure:"sslmode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	MaxConns          int32  `mapstructure:"max_conns" validate:"gte=0"`
	MinConns          int32  `mapstructure:"min_conns" validate:"gte=0"`
	MaxConnLifetime   int    `mapstructure:"max_conn_lifetime" validate:"gte=0"`
	MaxConnIdleTime   int    `mapstructure:"max_conn_idle_time" validate:"gte=0"`
	HealthCheckPeriod int    `mapstructure:"health_check_period" validate:"gte=0"`
}

// PagingConfig is the root of every per-type paging chain.
func (c *Config) PagingConfig() *pagination.Config {
	return pagination.NewConfig(nil, c.Pagination)
}

// Validate checks the loaded config. Postgres settings are only checked when that driver is selected.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("config validation error: %w", err)
	}
	if c.Storage.Driver != DriverPostgres {
		return nil
	}
	if err := v.Struct(c.Postgres); err != nil {
		return fmt.Errorf("postgres config validation error: %w", err)
	}
	if c.Postgres.MinConns > c.Postgres.MaxConns && c.Postgres.MaxConns > 0 {
		return errors.New("postgres config validation error: min_conns exceeds max_conns")
	}
	return nil
}
