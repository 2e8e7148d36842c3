// Ideaboard - Project Idea Sharing Board
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ideaboard

package models

import "time"

// DefaultIdeaStatus is assigned when a new idea does not set one.
const DefaultIdeaStatus = "Idea"

// Idea is a project idea. Votes is the sum of its idea_vote rows.
type Idea struct {
	ID             int64     `json:"id"`
	ProjectTitle   string    `json:"project_title"`
	ProjectSummary string    `json:"project_summary"`
	DateSubmitted  time.Time `json:"date_submitted"`
	Status         string    `json:"status"`
	Github         string    `json:"github"`
	Author         int64     `json:"author"`
	Votes          int64     `json:"votes"`
}

// NewIdea is the create payload. The author is taken from the caller.
type NewIdea struct {
	ProjectTitle   string `json:"project_title" validate:"required,max=200"`
	ProjectSummary string `json:"project_summary" validate:"required,max=5000"`
	Status         string `json:"status" validate:"omitempty,max=50"`
	Github         string `json:"github" validate:"omitempty,max=500"`
}

// IdeaPatch updates a subset of idea fields.
type IdeaPatch struct {
	ProjectTitle   *string `json:"project_title,omitempty" validate:"omitempty,min=1,max=200"`
	ProjectSummary *string `json:"project_summary,omitempty" validate:"omitempty,min=1,max=5000"`
	Status         *string `json:"status,omitempty" validate:"omitempty,min=1,max=50"`
	Github         *string `json:"github,omitempty" validate:"omitempty,max=500"`
}

// Empty reports whether the patch changes nothing.
func (p *IdeaPatch) Empty() bool {
	return p.ProjectTitle == nil && p.ProjectSummary == nil && p.Status == nil && p.Github == nil
}

// Comment is a comment on an idea. Votes is the sum of its comment_vote rows.
type Comment struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	ProjectID     int64     `json:"project_id"`
	CommentText   string    `json:"comment_text"`
	DateSubmitted time.Time `json:"date_submitted"`
	Votes         int64     `json:"votes"`
}

// NewComment is the create payload. The user id is taken from the caller.
type NewComment struct {
	ProjectID   int64  `json:"project_id" validate:"required,gt=0"`
	CommentText string `json:"comment_text" validate:"required,max=2000"`
}

// CommentPatch updates comment text.
type CommentPatch struct {
	CommentText *string `json:"comment_text,omitempty" validate:"omitempty,min=1,max=2000"`
}

// Empty reports whether the patch changes nothing.
func (p *CommentPatch) Empty() bool {
	return p.CommentText == nil
}
