// Ideaboard - Project Idea Sharing Board
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ideaboard

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/ideaboard/internal/logging"
	"github.com/tomtom215/ideaboard/internal/metrics"
)

// Pinger is satisfied by *database.DB.
type Pinger interface {
	Ping(ctx context.Context) error
}

// DBMonitorService pings the database on an interval and publishes the
// result as the ideaboard_database_up gauge. Only state changes are logged.
type DBMonitorService struct {
	db       Pinger
	interval time.Duration
	timeout  time.Duration
	log      zerolog.Logger
}

// NewDBMonitorService creates a monitor. A non-positive interval becomes 30s.
func NewDBMonitorService(db Pinger, interval time.Duration) *DBMonitorService {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &DBMonitorService{
		db:       db,
		interval: interval,
		timeout:  min(interval, 5*time.Second),
		log:      logging.WithComponent("db-monitor"),
	}
}

// Serve implements suture.Service. It pings once immediately.
func (s *DBMonitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	up := s.check(ctx, true)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			up = s.check(ctx, up)
		}
	}
}

func (s *DBMonitorService) check(ctx context.Context, wasUp bool) bool {
	pingCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := s.db.Ping(pingCtx)
	if ctx.Err() != nil {
		return wasUp
	}
	up := err == nil
	metrics.SetDatabaseUp(up)

	switch {
	case wasUp && !up:
		s.log.Error().Err(err).Msg("Database unreachable")
	case !wasUp && up:
		s.log.Info().Msg("Database reachable again")
	}
	return up
}

// String names the service in supervisor events.
func (s *DBMonitorService) String() string {
	return "db-monitor"
}
