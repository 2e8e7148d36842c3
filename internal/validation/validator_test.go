// Ideaboard - Project Idea Sharing Board
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ideaboard

package validation

import (
	"testing"

	"github.com/tomtom215/ideaboard/internal/models"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 == nil {
		t.Fatal("GetValidator() should not return nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
}

func TestValidateStruct_MissingFields(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		wantMsg string
	}{
		{
			name:    "login without email",
			input:   &models.LoginRequest{Password: "x"},
			wantMsg: "Missing 'email' in request body",
		},
		{
			name:    "login without password",
			input:   &models.LoginRequest{Email: "a@b.co"},
			wantMsg: "Missing 'password' in request body",
		},
		{
			name:    "registration reports first missing field in order",
			input:   &models.NewUser{Email: "a@b.co"},
			wantMsg: "Missing 'first_name' in request body",
		},
		{
			name:    "registration missing nickname",
			input:   &models.NewUser{FirstName: "A", LastName: "B", Email: "a@b.co", Password: "x"},
			wantMsg: "Missing 'nickname' in request body",
		},
		{
			name:    "idea missing summary",
			input:   &models.NewIdea{ProjectTitle: "t"},
			wantMsg: "Missing 'project_summary' in request body",
		},
		{
			name:    "vote missing",
			input:   &models.NewIdeaVote{IdeaID: 1},
			wantMsg: "Missing 'vote' in request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(tt.input)
			if verr == nil {
				t.Fatal("expected validation error")
			}
			apiErr := verr.ToAPIError()
			if apiErr.Code != CodeValidationError {
				t.Errorf("code = %q, want %q", apiErr.Code, CodeValidationError)
			}
			if apiErr.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", apiErr.Message, tt.wantMsg)
			}
		})
	}
}

func TestValidateStruct_Valid(t *testing.T) {
	inputs := []any{
		&models.LoginRequest{Email: "a@b.co", Password: "pw"},
		&models.NewIdea{ProjectTitle: "t", ProjectSummary: "s"},
		&models.NewCommentVote{Vote: -1, CommentID: 3},
		&models.IdeaPatch{},
	}
	for _, in := range inputs {
		if verr := ValidateStruct(in); verr != nil {
			t.Errorf("ValidateStruct(%T) = %v, want nil", in, verr)
		}
	}
}

func TestValidateStruct_ParamMessages(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		wantTag string
		wantMsg string
	}{
		{
			name:    "vote out of range",
			input:   &models.NewIdeaVote{Vote: 5, IdeaID: 1},
			wantTag: "oneof",
			wantMsg: "'vote' must be one of: -1 1",
		},
		{
			name:    "negative project id",
			input:   &models.NewComment{ProjectID: -2, CommentText: "x"},
			wantTag: "gt",
			wantMsg: "'project_id' must be greater than 0",
		},
		{
			name:    "empty patched title",
			input:   &models.IdeaPatch{ProjectTitle: new(string)},
			wantTag: "min",
			wantMsg: "'project_title' must be at least 1 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(tt.input)
			if verr == nil {
				t.Fatal("expected validation error")
			}
			first := verr.Errors()[0]
			if first.Tag() != tt.wantTag {
				t.Errorf("tag = %q, want %q", first.Tag(), tt.wantTag)
			}
			if first.Error() != tt.wantMsg {
				t.Errorf("message = %q, want %q", first.Error(), tt.wantMsg)
			}
		})
	}
}
