package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

var defaults = map[string]any{
	"app.name":        "paginater",
	"app.version":     "0.1.0",
	"app.env":         "dev",
	"app.port":        8080,
	"app.base_url":    "",
	"app.admin_token": "",

	"logger.level":       "",
	"logger.format":      "",
	"logger.env":         "",
	"logger.file_path":   "",
	"logger.with_caller": false,

	"pagination.default_per_page": 25,
	"pagination.max_per_page":     0,
	"pagination.max_pages":        0,

	"storage.driver": DriverMemory,
	"storage.seed":   false,

	"postgres.host":                "localhost",
	"postgres.port":                5432,
	"postgres.user":                "",
	"postgres.password":            "",
	"postgres.db":                  "",
	"postgres.sslmode":             "disable",
	"postgres.max_conns":           10,
	"postgres.min_conns":           1,
	"postgres.max_conn_lifetime":   3600,
	"postgres.max_conn_idle_time":  300,
	"postgres.health_check_period": 30,
}

// secrets may come from the canonical APP_* names or from the names docker images use.
var secrets = map[string][]string{
	"app.admin_token":   {"APP_ADMIN_TOKEN"},
	"postgres.user":     {"APP_POSTGRES_USER", "POSTGRES_USER", "DB_USER"},
	"postgres.password": {"APP_POSTGRES_PASSWORD", "POSTGRES_PASSWORD", "DB_PASSWORD"},
	"postgres.db":       {"APP_POSTGRES_DB", "POSTGRES_DB", "DB_NAME"},
}

// Load reads the YAML file at path (skipped when path is empty), applies APP_* environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	for key, envs := range secrets {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config file not found: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if config.Logger.ServiceName == "" {
		config.Logger.ServiceName = config.App.Name
	}
	if config.Logger.ServiceVersion == "" {
		config.Logger.ServiceVersion = config.App.Version
	}
	if config.Logger.Env == "" {
		config.Logger.Env = config.App.Env
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}
