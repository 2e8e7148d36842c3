// Ideaboard - Project Idea Sharing Board
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ideaboard

package models

// VoteKind selects the vote table.
type VoteKind string

const (
	VoteOnIdea    VoteKind = "idea"
	VoteOnComment VoteKind = "comment"
)

// Table returns the backing table name.
func (k VoteKind) Table() string {
	if k == VoteOnComment {
		return "comment_vote"
	}
	return "idea_vote"
}

// TargetColumn returns the column referencing the voted-on row.
func (k VoteKind) TargetColumn() string {
	if k == VoteOnComment {
		return "comment"
	}
	return "idea"
}

// Vote is an up (+1) or down (-1) vote on an idea or comment.
// Target holds the idea id or comment id depending on the kind.
type Vote struct {
	ID         int64 `json:"id"`
	Vote       int   `json:"vote"`
	Target     int64 `json:"-"`
	VoteByUser int64 `json:"vote_by_user"`
}

// IdeaVote is the JSON shape of an idea vote.
type IdeaVote struct {
	ID         int64 `json:"id"`
	Vote       int   `json:"vote"`
	Idea       int64 `json:"idea"`
	VoteByUser int64 `json:"vote_by_user"`
}

// CommentVote is the JSON shape of a comment vote.
type CommentVote struct {
	ID         int64 `json:"id"`
	Vote       int   `json:"vote"`
	Comment    int64 `json:"comment"`
	VoteByUser int64 `json:"vote_by_user"`
}

// NewIdeaVote is the create payload for idea votes.
type NewIdeaVote struct {
	Vote   int   `json:"vote" validate:"required,oneof=-1 1"`
	IdeaID int64 `json:"idea_id" validate:"required,gt=0"`
}

// NewCommentVote is the create payload for comment votes.
type NewCommentVote struct {
	Vote      int   `json:"vote" validate:"required,oneof=-1 1"`
	CommentID int64 `json:"comment_id" validate:"required,gt=0"`
}

// VotePatch changes the vote value.
type VotePatch struct {
	Vote *int `json:"vote" validate:"omitempty,oneof=-1 1"`
}
