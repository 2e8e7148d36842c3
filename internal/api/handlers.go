// Ideaboard - Project Idea Sharing Board
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ideaboard

package api

import (
	"context"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/tomtom215/ideaboard/internal/auth"
	"github.com/tomtom215/ideaboard/internal/config"
	"github.com/tomtom215/ideaboard/internal/models"
)

// Store is the persistence used by the handlers. *database.DB implements it.
type Store interface {
	Ping(ctx context.Context) error

	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, p *models.UserPatch) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error

	ListIdeas(ctx context.Context) ([]models.Idea, error)
	GetIdea(ctx context.Context, id int64) (*models.Idea, error)
	CreateIdea(ctx context.Context, author int64, in *models.NewIdea) (*models.Idea, error)
	UpdateIdea(ctx context.Context, id int64, p *models.IdeaPatch) (*models.Idea, error)
	DeleteIdea(ctx context.Context, id int64) error

	ListComments(ctx context.Context) ([]models.Comment, error)
	GetComment(ctx context.Context, id int64) (*models.Comment, error)
	CreateComment(ctx context.Context, userID int64, in *models.NewComment) (*models.Comment, error)
	UpdateComment(ctx context.Context, id int64, p *models.CommentPatch) (*models.Comment, error)
	DeleteComment(ctx context.Context, id int64) error

	ListVotes(ctx context.Context, kind models.VoteKind) ([]models.Vote, error)
	GetVote(ctx context.Context, kind models.VoteKind, id int64) (*models.Vote, error)
	CreateVote(ctx context.Context, kind models.VoteKind, userID, target int64, value int) (*models.Vote, error)
	UpdateVote(ctx context.Context, kind models.VoteKind, id int64, value int) (*models.Vote, error)
	DeleteVote(ctx context.Context, kind models.VoteKind, id int64) error
}

// Handler serves the REST API.
type Handler struct {
	store     Store
	auth      *auth.Service
	verbose   bool
	sanitizer *bluemonday.Policy
	startTime time.Time
}

// NewHandler creates the API handler. Internal error text reaches clients
// only when cfg.VerboseErrors() is true.
func NewHandler(store Store, svc *auth.Service, cfg *config.Config) *Handler {
	return &Handler{
		store:     store,
		auth:      svc,
		verbose:   cfg.VerboseErrors(),
		sanitizer: bluemonday.UGCPolicy(),
		startTime: time.Now(),
	}
}
