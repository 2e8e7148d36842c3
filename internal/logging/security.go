// Ideaboard - Project Idea Sharing Board
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ideaboard

package logging

import (
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// SecurityEvent is a security-relevant occurrence written to the audit stream.
// It never holds plaintext passwords or full tokens.
type SecurityEvent struct {
	Event   string // login_success, login_failure, registration, auth_rejected, integrity_failure
	UserID  int64
	Email   string
	Gate    string // basic, bearer, apitoken
	Reason  string
	Path    string
	IP      string
	Success bool
}

// SecurityLogger writes authentication events with sensitive values masked.
type SecurityLogger struct {
	logger zerolog.Logger
}

// NewSecurityLogger creates a security logger on top of the global logger.
func NewSecurityLogger() *SecurityLogger {
	return &SecurityLogger{logger: WithComponent("auth")}
}

// NewSecurityLoggerWithLogger creates a security logger on top of l.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewSecurityLoggerWithLogger(l zerolog.Logger) *SecurityLogger {
	return &SecurityLogger{logger: l.With().Str("component", "auth").Logger()}
}

// LogEvent writes event. Failures are logged at warn level.
func (l *SecurityLogger) LogEvent(ctx context.Context, event *SecurityEvent) {
	e := l.logger.Info()
	if !event.Success {
		e = l.logger.Warn()
	}
	e = e.Str("event", event.Event).Bool("success", event.Success)

	if id := RequestIDFromContext(ctx); id != "" {
		e = e.Str("request_id", id)
	}
	if event.UserID != 0 {
		e = e.Str("user_id", strconv.FormatInt(event.UserID, 10))
	}
	if event.Email != "" {
		e = e.Str("email", SanitizeEmail(event.Email))
	}
	if event.Gate != "" {
		e = e.Str("gate", event.Gate)
	}
	if event.Reason != "" {
		e = e.Str("reason", event.Reason)
	}
	if event.Path != "" {
		e = e.Str("path", event.Path)
	}
	if event.IP != "" {
		e = e.Str("ip", event.IP)
	}
	e.Msg("security event")
}

// LogLoginSuccess records a successful password login.
func (l *SecurityLogger) LogLoginSuccess(ctx context.Context, userID int64, email, ip string) {
	l.LogEvent(ctx, &SecurityEvent{Event: "login_success", UserID: userID, Email: email, IP: ip, Success: true})
}

// LogLoginFailure records a failed login. reason is internal and never sent to clients.
func (l *SecurityLogger) LogLoginFailure(ctx context.Context, email, ip, reason string) {
	l.LogEvent(ctx, &SecurityEvent{Event: "login_failure", Email: email, IP: ip, Reason: reason})
}

// LogRegistration records a new account.
func (l *SecurityLogger) LogRegistration(ctx context.Context, userID int64, email, ip string) {
	l.LogEvent(ctx, &SecurityEvent{Event: "registration", UserID: userID, Email: email, IP: ip, Success: true})
}

// LogAuthRejected records a request stopped by a gate.
func (l *SecurityLogger) LogAuthRejected(ctx context.Context, gate, reason, path, ip string) {
	l.LogEvent(ctx, &SecurityEvent{Event: "auth_rejected", Gate: gate, Reason: reason, Path: path, IP: ip})
}

// LogIntegrityFailure records an unreadable stored credential. It is logged at
// error level with the underlying cause.
func (l *SecurityLogger) LogIntegrityFailure(ctx context.Context, gate, email string, err error) {
	e := l.logger.Error().Err(err).Str("event", "integrity_failure").Str("gate", gate).Str("email", SanitizeEmail(email))
	if id := RequestIDFromContext(ctx); id != "" {
		e = e.Str("request_id", id)
	}
	e.Msg("stored credential is unreadable")
}

// SanitizeToken masks a token, keeping only its first and last 4 characters.
func SanitizeToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 12 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// SanitizeEmail masks the local part of an address.
// Example: "john.doe@example.com" -> "jo***@example.com"
func SanitizeEmail(email string) string {
	if email == "" {
		return ""
	}
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return "***"
	}
	local, domain := email[:at], email[at:]
	if len(local) <= 2 {
		return "***" + domain
	}
	return local[:2] + "***" + domain
}
