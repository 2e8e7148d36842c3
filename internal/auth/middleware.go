// Ideaboard - Project Idea Sharing Board
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ideaboard

package auth

import (
	"fmt"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/ideaboard/internal/config"
	"github.com/tomtom215/ideaboard/internal/logging"
	"github.com/tomtom215/ideaboard/internal/metrics"
	"github.com/tomtom215/ideaboard/internal/models"
)

// GateOptions controls how a gate reports failures.
type GateOptions struct {
	// VerboseErrors turns store failures into a 500 carrying the cause.
	// Callers must pass Config.VerboseErrors(), which is false in production.
	VerboseErrors bool

	Security *logging.SecurityLogger
}

// Gate wraps an Authenticator as chi middleware. Rejected requests receive
// the error envelope and never reach next; a request whose context was
// canceled during authentication receives nothing at all.
func Gate(a Authenticator, opts GateOptions) func(http.Handler) http.Handler {
	security := opts.Security
	if security == nil {
		security = logging.NewSecurityLogger()
	}
	gate := a.Name()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			id, err := a.Authenticate(ctx, r)
			if err == nil {
				metrics.RecordAuthAttempt(gate, metrics.OutcomeSuccess)
				next.ServeHTTP(w, r.WithContext(WithIdentity(ctx, id)))
				return
			}

			rej, ok := AsRejection(err)
			if !ok {
				rej = reject(KindStoreFailure, err)
			}
			metrics.RecordAuthAttempt(gate, rej.Kind.outcome())

			switch rej.Kind {
			case KindCanceled:
				logging.Ctx(ctx).Debug().Str("gate", gate).Msg("Request canceled during authentication")
				return
			case KindStoreFailure:
				logging.Ctx(ctx).Error().Err(rej.Cause).Str("gate", gate).Msg("Credential store failure")
				if opts.VerboseErrors {
					WriteError(w, http.StatusInternalServerError, models.ErrCodeInternalError, causeMessage(rej))
					return
				}
			}

			security.LogAuthRejected(ctx, gate, rej.Kind.String(), r.URL.Path, r.RemoteAddr)
			if c, ok := a.(Challenger); ok {
				w.Header().Set("WWW-Authenticate", c.Challenge())
			}
			WriteError(w, http.StatusUnauthorized, rej.Code, rej.Message)
		})
	}
}

func causeMessage(rej *Rejection) string {
	if rej.Cause == nil {
		return rej.Message
	}
	return rej.Cause.Error()
}

// WriteError writes the error envelope. Equal arguments always produce
// identical bodies.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	body, err := json.Marshal(models.ErrorEnvelope{Error: models.APIError{Code: code, Message: message}})
	if err != nil {
		body = []byte(`{"error":{"code":"INTERNAL_ERROR","message":"server error"}}`)
		status = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// Gates builds per-route middleware from gate names in configuration.
type Gates struct {
	authenticators map[string]Authenticator
	opts           GateOptions
}

// NewGates registers the authenticators available to routes. A nil
// authenticator leaves its gate unavailable.
func NewGates(opts GateOptions, authenticators ...Authenticator) *Gates {
	g := &Gates{authenticators: make(map[string]Authenticator, len(authenticators)), opts: opts}
	for _, a := range authenticators {
		if a != nil {
			g.authenticators[a.Name()] = a
		}
	}
	return g
}

// For returns the middleware for a configured gate name. "none" passes
// requests through untouched.
func (g *Gates) For(name string) (func(http.Handler) http.Handler, error) {
	if name == config.GateNone {
		return func(next http.Handler) http.Handler { return next }, nil
	}
	a, ok := g.authenticators[name]
	if !ok {
		return nil, fmt.Errorf("gate %q is not configured", name)
	}
	return Gate(a, g.opts), nil
}
