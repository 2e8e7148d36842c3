// Ideaboard - Project Idea Sharing Board
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ideaboard

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/ideaboard/internal/logging"
)

const (
	minJWTSecretLength = 32
	minAPITokenLength  = 16
	maxTokenTTL        = 30 * 24 * time.Hour
)

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("SERVER_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateDatabase() error {
	switch c.Database.Driver {
	case DriverDuckDB, DriverPostgres:
	default:
		return fmt.Errorf("DB_DRIVER must be one of: %s, %s", DriverDuckDB, DriverPostgres)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Database.MaxOpenConns < 0 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must not be negative")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if err := c.validateJWTSecret(); err != nil {
		return err
	}
	if err := c.validateTokenTTL(); err != nil {
		return err
	}
	if err := c.validateRoutes(); err != nil {
		return err
	}
	if err := c.validateAPIToken(); err != nil {
		return err
	}
	if c.Security.VerboseErrors && c.IsProduction() {
		return fmt.Errorf("VERBOSE_ERRORS must not be enabled in production")
	}
	return c.validateCORS()
}

func (c *Config) validateJWTSecret() error {
	if c.Security.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(c.Security.JWTSecret) < minJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", minJWTSecretLength)
	}
	if containsPlaceholder(c.Security.JWTSecret) {
		return fmt.Errorf("JWT_SECRET contains a placeholder value - generate a secure secret with: openssl rand -base64 32")
	}
	return nil
}

func (c *Config) validateTokenTTL() error {
	if c.Security.TokenTTL <= 0 {
		return fmt.Errorf("JWT_EXPIRY must be positive")
	}
	if c.Security.TokenTTL > maxTokenTTL {
		return fmt.Errorf("JWT_EXPIRY must not exceed %s", maxTokenTTL)
	}
	return nil
}

// validateAPIToken requires a token only when some route family uses it.
func (c *Config) validateAPIToken() error {
	if !c.usesGate(GateAPIToken) {
		return nil
	}
	if len(c.Security.APIToken) < minAPITokenLength {
		return fmt.Errorf("API_TOKEN must be at least %d characters when a route uses the apitoken gate", minAPITokenLength)
	}
	if containsPlaceholder(c.Security.APIToken) {
		return fmt.Errorf("API_TOKEN contains a placeholder value")
	}
	return nil
}

func (c *Config) validateRoutes() error {
	for name, gate := range c.Security.Routes.families() {
		switch gate {
		case GateNone, GateBasic, GateBearer, GateAPIToken:
		default:
			return fmt.Errorf("security.routes.%s: unknown gate %q (want none, basic, bearer or apitoken)", name, gate)
		}
	}

	// Writes stamp ownership from the caller, so they need a user identity.
	writes := map[string]string{
		"users_write":    c.Security.Routes.UsersWrite,
		"ideas_write":    c.Security.Routes.IdeasWrite,
		"comments_write": c.Security.Routes.CommentsWrite,
		"votes":          c.Security.Routes.Votes,
	}
	for name, gate := range writes {
		if gate != GateBasic && gate != GateBearer {
			return fmt.Errorf("security.routes.%s must be basic or bearer, got %q", name, gate)
		}
	}
	return nil
}

func (c *Config) validateCORS() error {
	if c.hasWildcardCORS() && c.IsProduction() {
		return fmt.Errorf("CORS_ORIGINS=* (wildcard) is not allowed in production. " +
			"Set specific origins: CORS_ORIGINS=https://yourdomain.com")
	}
	return nil
}

func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// ShouldWarnAboutCORS reports whether startup should log a wildcard CORS warning.
func (c *Config) ShouldWarnAboutCORS() bool {
	return c.hasWildcardCORS()
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

func (c *Config) usesGate(gate string) bool {
	for _, g := range c.Security.Routes.families() {
		if g == gate {
			return true
		}
	}
	return false
}

func (r RoutesConfig) families() map[string]string {
	return map[string]string{
		"users_read":     r.UsersRead,
		"users_write":    r.UsersWrite,
		"ideas_read":     r.IdeasRead,
		"ideas_write":    r.IdeasWrite,
		"comments_read":  r.CommentsRead,
		"comments_write": r.CommentsWrite,
		"votes":          r.Votes,
	}
}

// placeholderPatterns flag values copied from sample configs.
var placeholderPatterns = []string{
	"REPLACE",
	"CHANGEME",
	"CHANGE_ME",
	"YOUR_SECRET",
	"PLACEHOLDER",
	"TODO",
	"FIXME",
	"EXAMPLE",
}

func containsPlaceholder(value string) bool {
	upper := strings.ToUpper(value)
	for _, p := range placeholderPatterns {
		if strings.Contains(upper, p) {
			return true
		}
	}
	return false
}
