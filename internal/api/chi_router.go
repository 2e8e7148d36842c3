// Ideaboard - Project Idea Sharing Board
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ideaboard

package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/ideaboard/internal/auth"
	"github.com/tomtom215/ideaboard/internal/config"
	"github.com/tomtom215/ideaboard/internal/middleware"
	"github.com/tomtom215/ideaboard/internal/models"
)

// Router wires handlers, gates and middleware into a chi mux.
type Router struct {
	handler       *Handler
	gates         *auth.Gates
	routes        config.RoutesConfig
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. Gate names come from security.routes.
func NewRouter(handler *Handler, gates *auth.Gates, cfg *config.Config) *Router {
	mwCfg := DefaultChiMiddlewareConfig()
	mwCfg.CORSAllowedOrigins = cfg.Security.CORSOrigins
	return &Router{
		handler:       handler,
		gates:         gates,
		routes:        cfg.Security.Routes,
		chiMiddleware: NewChiMiddleware(mwCfg),
	}
}

// gateSet resolves each route family to its middleware once.
type gateSet struct {
	usersRead, usersWrite       func(http.Handler) http.Handler
	ideasRead, ideasWrite       func(http.Handler) http.Handler
	commentsRead, commentsWrite func(http.Handler) http.Handler
	votes                       func(http.Handler) http.Handler
}

func (router *Router) resolveGates() (*gateSet, error) {
	var errs []error
	get := func(family, name string) func(http.Handler) http.Handler {
		mw, err := router.gates.For(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", family, err))
		}
		return mw
	}

	rc := router.routes
	gs := &gateSet{
		usersRead:     get("users_read", rc.UsersRead),
		usersWrite:    get("users_write", rc.UsersWrite),
		ideasRead:     get("ideas_read", rc.IdeasRead),
		ideasWrite:    get("ideas_write", rc.IdeasWrite),
		commentsRead:  get("comments_read", rc.CommentsRead),
		commentsWrite: get("comments_write", rc.CommentsWrite),
		votes:         get("votes", rc.Votes),
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return gs, nil
}

// SetupChi configures all HTTP routes using Chi router.
func (router *Router) SetupChi() (http.Handler, error) {
	g, err := router.resolveGates()
	if err != nil {
		return nil, err
	}
	h := router.handler

	r := chi.NewRouter()

	// Global middleware, applied to all routes in order
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())
	r.Use(middleware.PrometheusMetrics)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, models.ErrCodeNotFound, msgRouteNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, errCodeMethodNotAllowed, msgMethodNotAllowed)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(SecurityHeaders())

		r.Get("/health", h.Health)
		r.Post("/auth/login", h.Login)

		r.Route("/users", func(r chi.Router) {
			r.Post("/", h.Register)
			r.With(g.usersRead).Get("/", h.ListUsers)
			r.With(g.usersRead).Get("/{id}", h.GetUser)
			r.With(g.usersWrite).Patch("/{id}", h.UpdateUser)
			r.With(g.usersWrite).Delete("/{id}", h.DeleteUser)
		})

		r.Route("/ideas", func(r chi.Router) {
			r.With(g.ideasRead).Get("/", h.ListIdeas)
			r.With(g.ideasRead).Get("/{id}", h.GetIdea)
			r.With(g.ideasWrite).Post("/", h.CreateIdea)
			r.With(g.ideasWrite).Patch("/{id}", h.UpdateIdea)
			r.With(g.ideasWrite).Delete("/{id}", h.DeleteIdea)
		})

		r.Route("/comments", func(r chi.Router) {
			r.With(g.commentsRead).Get("/", h.ListComments)
			r.With(g.commentsRead).Get("/{id}", h.GetComment)
			r.With(g.commentsWrite).Post("/", h.CreateComment)
			r.With(g.commentsWrite).Patch("/{id}", h.UpdateComment)
			r.With(g.commentsWrite).Delete("/{id}", h.DeleteComment)
		})

		for prefix, kind := range map[string]models.VoteKind{
			"/idea/vote":    models.VoteOnIdea,
			"/comment/vote": models.VoteOnComment,
		} {
			r.Route(prefix, func(r chi.Router) {
				r.Use(g.votes)
				r.Get("/", h.ListVotes(kind))
				r.Post("/", h.CreateVote(kind))
				r.Get("/{id}", h.GetVote(kind))
				r.Patch("/{id}", h.UpdateVote(kind))
				r.Delete("/{id}", h.DeleteVote(kind))
			})
		}
	})

	return r, nil
}
