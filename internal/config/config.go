// Ideaboard - Project Idea Sharing Board
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ideaboard

// Package config loads Ideaboard configuration from built-in defaults, an
// optional YAML file and environment variables, in that order of precedence
// (environment wins). The resulting Config is validated once and treated as
// immutable for the life of the process.
package config

import (
	"net"
	"strconv"
	"strings"
	"time"
)

// Gate names accepted in route configuration.
const (
	GateNone     = "none"
	GateBasic    = "basic"
	GateBearer   = "bearer"
	GateAPIToken = "apitoken"
)

// Database drivers.
const (
	DriverDuckDB   = "duckdb"
	DriverPostgres = "pgx"
)

// Config is the root configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging, production
}

// DatabaseConfig selects the SQL driver and connection target.
type DatabaseConfig struct {
	Driver       string        `koanf:"driver"` // duckdb or pgx
	DSN          string        `koanf:"dsn"`    // file path / ":memory:" for duckdb, URL for pgx
	MaxOpenConns int           `koanf:"max_open_conns"`
	QueryTimeout time.Duration `koanf:"query_timeout"`
}

// SecurityConfig holds authentication settings. All values are read-only
// after startup.
type SecurityConfig struct {
	JWTSecret     string        `koanf:"jwt_secret"`
	JWTIssuer     string        `koanf:"jwt_issuer"`
	TokenTTL      time.Duration `koanf:"token_ttl"`
	APIToken      string        `koanf:"api_token"`
	VerboseErrors bool          `koanf:"verbose_errors"`
	CORSOrigins   []string      `koanf:"cors_origins"`
	Routes        RoutesConfig  `koanf:"routes"`
}

// RoutesConfig selects the gate protecting each route family.
type RoutesConfig struct {
	UsersRead     string `koanf:"users_read"`
	UsersWrite    string `koanf:"users_write"`
	IdeasRead     string `koanf:"ideas_read"`
	IdeasWrite    string `koanf:"ideas_write"`
	CommentsRead  string `koanf:"comments_read"`
	CommentsWrite string `koanf:"comments_write"`
	Votes         string `koanf:"votes"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "production" || env == "prod"
}

// VerboseErrors reports whether internal error text may reach clients.
// It is never true in production.
func (c *Config) VerboseErrors() bool {
	return c.Security.VerboseErrors && !c.IsProduction()
}
