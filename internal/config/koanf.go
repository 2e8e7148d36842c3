// Ideaboard - Project Idea Sharing Board
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ideaboard

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the config files searched in order; the first hit wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/ideaboard/config.yaml",
	"/etc/ideaboard/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8000,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Database: DatabaseConfig{
			Driver:       DriverDuckDB,
			DSN:          "data/ideaboard.duckdb",
			MaxOpenConns: 10,
			QueryTimeout: 30 * time.Second,
		},
		Security: SecurityConfig{
			JWTIssuer:     "ideaboard",
			TokenTTL:      24 * time.Hour,
			VerboseErrors: false,
			CORSOrigins:   []string{"*"},
			Routes: RoutesConfig{
				UsersRead:     GateAPIToken,
				UsersWrite:    GateBearer,
				IdeasRead:     GateAPIToken,
				IdeasWrite:    GateBasic,
				CommentsRead:  GateAPIToken,
				CommentsWrite: GateBearer,
				Votes:         GateBearer,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration from layered sources:
//  1. built-in defaults
//  2. a YAML file (path argument, CONFIG_PATH, or DefaultConfigPaths)
//  3. environment variables
//
// and validates the result.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated strings when set via env.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
// Unmapped variables are ignored.
var envMappings = map[string]string{
	"http_port":        "server.port",
	"http_host":        "server.host",
	"server_timeout":   "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",
	"node_env":         "server.environment",

	"db_driver":         "database.driver",
	"database_url":      "database.dsn",
	"db_max_open_conns": "database.max_open_conns",
	"db_query_timeout":  "database.query_timeout",

	"jwt_secret":     "security.jwt_secret",
	"jwt_issuer":     "security.jwt_issuer",
	"jwt_expiry":     "security.token_ttl",
	"api_token":      "security.api_token",
	"verbose_errors": "security.verbose_errors",
	"cors_origins":   "security.cors_origins",

	"auth_users_read":     "security.routes.users_read",
	"auth_users_write":    "security.routes.users_write",
	"auth_ideas_read":     "security.routes.ideas_read",
	"auth_ideas_write":    "security.routes.ideas_write",
	"auth_comments_read":  "security.routes.comments_read",
	"auth_comments_write": "security.routes.comments_write",
	"auth_votes":          "security.routes.votes",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps env names to config paths.
//
// Examples:
//   - JWT_SECRET -> security.jwt_secret
//   - DATABASE_URL -> database.dsn
//   - AUTH_IDEAS_WRITE -> security.routes.ideas_write
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
