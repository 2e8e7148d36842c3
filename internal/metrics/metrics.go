// Ideaboard - Project Idea Sharing Board
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ideaboard

// Package metrics holds the Prometheus collectors for Ideaboard. All
// collectors register with the default registry through promauto and are
// exposed by promhttp at /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ideaboard"

// Auth outcomes used as the "outcome" label.
const (
	OutcomeSuccess   = "success"
	OutcomeMissing   = "missing"
	OutcomeMalformed = "malformed"
	OutcomeInvalid   = "invalid"
	OutcomeIntegrity = "integrity"
	OutcomeStore     = "store_error"
	OutcomeCanceled  = "canceled"
	OutcomeTaken     = "email_taken"
	OutcomePolicy    = "policy"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "API request duration in seconds",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "api_active_requests",
			Help:      "Current number of active API requests",
		},
	)

	// Auth Metrics
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_attempts_total",
			Help:      "Gate authentication attempts by gate and outcome",
		},
		[]string{"gate", "outcome"},
	)

	Logins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Login attempts by outcome",
		},
		[]string{"outcome"},
	)

	Registrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Registration attempts by outcome",
		},
		[]string{"outcome"},
	)

	// bcrypt at cost 12 is expected around 200-300ms.
	PasswordHashDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "password_hash_duration_seconds",
			Help:      "Time spent computing or verifying bcrypt hashes",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.2, 0.3, 0.5, 1, 2},
		},
	)

	// Database Metrics
	DatabaseUp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "database_up",
			Help:      "1 when the last database ping succeeded, 0 otherwise",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordAuthAttempt counts one gate decision.
func RecordAuthAttempt(gate, outcome string) {
	AuthAttempts.WithLabelValues(gate, outcome).Inc()
}

// RecordLogin counts one login attempt.
func RecordLogin(outcome string) {
	Logins.WithLabelValues(outcome).Inc()
}

// RecordRegistration counts one registration attempt.
func RecordRegistration(outcome string) {
	Registrations.WithLabelValues(outcome).Inc()
}

// ObservePasswordHash records the time spent in one bcrypt operation.
func ObservePasswordHash(d time.Duration) {
	PasswordHashDuration.Observe(d.Seconds())
}

// SetDatabaseUp records the result of the latest database ping.
func SetDatabaseUp(up bool) {
	if up {
		DatabaseUp.Set(1)
		return
	}
	DatabaseUp.Set(0)
}
