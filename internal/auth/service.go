// Ideaboard - Project Idea Sharing Board
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ideaboard

package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/samber/oops"

	"github.com/tomtom215/ideaboard/internal/database"
	"github.com/tomtom215/ideaboard/internal/logging"
	"github.com/tomtom215/ideaboard/internal/metrics"
	"github.com/tomtom215/ideaboard/internal/models"
	"github.com/tomtom215/ideaboard/internal/validation"
)

// Client-facing service messages.
const (
	MsgIncorrectCredentials = "Incorrect email or password"
	MsgEmailTaken           = "Email already taken"
)

var (
	// ErrIncorrectCredentials covers both an unknown email and a wrong password.
	ErrIncorrectCredentials = errors.New("incorrect email or password")

	// ErrEmailTaken is returned when registering an email already in use.
	ErrEmailTaken = errors.New("email already taken")
)

// UserStore is the persistence the login and registration flows need.
type UserStore interface {
	CredentialStore
	CreateUser(ctx context.Context, u *models.User, passwordHash string) error
}

// Service implements login and registration.
type Service struct {
	store    UserStore
	hasher   PasswordHasher
	tokens   *TokenManager
	security *logging.SecurityLogger
	decoy    string
}

// NewService creates the login and registration service.
func NewService(store UserStore, hasher PasswordHasher, tokens *TokenManager, security *logging.SecurityLogger) *Service {
	if security == nil {
		security = logging.NewSecurityLogger()
	}
	return &Service{
		store:    store,
		hasher:   hasher,
		tokens:   tokens,
		security: security,
		decoy:    decoyHash(hasher),
	}
}

// Login checks email and password and returns a signed token whose subject
// is the lowercased email.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	ip := logging.ClientIPFromContext(ctx)
	email = strings.ToLower(email)
	if email == "" || password == "" {
		metrics.RecordLogin(metrics.OutcomeInvalid)
		return "", ErrIncorrectCredentials
	}

	cred, err := s.store.FindCredentialByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrCredentialNotFound) {
			verifyDecoy(s.hasher, s.decoy, password)
			metrics.RecordLogin(metrics.OutcomeInvalid)
			s.security.LogLoginFailure(ctx, email, ip, "unknown email")
			return "", ErrIncorrectCredentials
		}
		metrics.RecordLogin(metrics.OutcomeStore)
		return "", oops.Code("LOGIN_LOOKUP_FAILED").Wrapf(err, "find credential")
	}

	match, err := s.hasher.Verify(password, cred.PasswordHash)
	if err != nil {
		metrics.RecordLogin(metrics.OutcomeIntegrity)
		s.security.LogIntegrityFailure(ctx, "login", cred.Email, err)
		return "", oops.Code(CodeInvalidHash).Wrapf(err, "verify stored hash")
	}
	if !match {
		metrics.RecordLogin(metrics.OutcomeInvalid)
		s.security.LogLoginFailure(ctx, email, ip, "password mismatch")
		return "", ErrIncorrectCredentials
	}

	token, err := s.tokens.Issue(cred.Email, UserClaims{UserID: cred.ID, FirstName: cred.FirstName})
	if err != nil {
		return "", oops.Code("TOKEN_ISSUE_FAILED").Wrap(err)
	}

	metrics.RecordLogin(metrics.OutcomeSuccess)
	s.security.LogLoginSuccess(ctx, cred.ID, cred.Email, ip)
	return token, nil
}

// Register validates in, stores a new account with a bcrypt hash of the
// password and returns the stored user. Errors are a
// *validation.RequestValidationError, a *PolicyError, ErrEmailTaken or an
// internal failure.
func (s *Service) Register(ctx context.Context, in *models.NewUser) (*models.User, error) {
	if verr := validation.ValidateStruct(in); verr != nil {
		metrics.RecordRegistration(metrics.OutcomeInvalid)
		return nil, verr
	}
	if err := ValidateEmail(in.Email); err != nil {
		metrics.RecordRegistration(metrics.OutcomePolicy)
		return nil, err
	}
	if err := ValidatePassword(in.Password); err != nil {
		metrics.RecordRegistration(metrics.OutcomePolicy)
		return nil, err
	}

	email := strings.ToLower(in.Email)
	_, err := s.store.FindCredentialByEmail(ctx, email)
	switch {
	case err == nil:
		metrics.RecordRegistration(metrics.OutcomeTaken)
		return nil, ErrEmailTaken
	case !errors.Is(err, ErrCredentialNotFound):
		metrics.RecordRegistration(metrics.OutcomeStore)
		return nil, oops.Code("REGISTER_LOOKUP_FAILED").Wrapf(err, "check existing email")
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, oops.Code(CodeHashFailed).Wrapf(err, "hash password")
	}

	u := &models.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     email,
		Nickname:  in.Nickname,
	}
	if err := s.store.CreateUser(ctx, u, hash); err != nil {
		if errors.Is(err, database.ErrDuplicateEmail) {
			metrics.RecordRegistration(metrics.OutcomeTaken)
			return nil, ErrEmailTaken
		}
		metrics.RecordRegistration(metrics.OutcomeStore)
		return nil, oops.Code("REGISTER_INSERT_FAILED").Wrapf(err, "create user")
	}

	metrics.RecordRegistration(metrics.OutcomeSuccess)
	s.security.LogRegistration(ctx, u.ID, u.Email, logging.ClientIPFromContext(ctx))
	return u, nil
}
