// Ideaboard - Project Idea Sharing Board
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ideaboard

/*
Package middleware provides infrastructure HTTP middleware: request ID
tracking, Prometheus instrumentation and structured access logging.

All middleware has the chi signature func(http.Handler) http.Handler and is
mounted by the api router ahead of the authentication gates:

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)

Authentication lives in internal/auth; this package never inspects
credentials and never logs the Authorization header.
*/
package middleware
