// Ideaboard - Project Idea Sharing Board
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ideaboard

package auth

import (
	"context"
	"errors"

	"github.com/tomtom215/ideaboard/internal/metrics"
	"github.com/tomtom215/ideaboard/internal/models"
)

// RejectionKind classifies why a gate refused a request.
type RejectionKind int

const (
	KindMissingCredential RejectionKind = iota + 1
	KindMalformedCredential
	KindInvalidCredential
	KindIntegrityFailure
	KindStoreFailure
	KindCanceled
)

var kindNames = map[RejectionKind]string{
	KindMissingCredential:   "missing_credential",
	KindMalformedCredential: "malformed_credential",
	KindInvalidCredential:   "invalid_credential",
	KindIntegrityFailure:    "integrity_failure",
	KindStoreFailure:        "store_failure",
	KindCanceled:            "canceled",
}

func (k RejectionKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

func (k RejectionKind) outcome() string {
	switch k {
	case KindMissingCredential:
		return metrics.OutcomeMissing
	case KindMalformedCredential:
		return metrics.OutcomeMalformed
	case KindIntegrityFailure:
		return metrics.OutcomeIntegrity
	case KindStoreFailure:
		return metrics.OutcomeStore
	case KindCanceled:
		return metrics.OutcomeCanceled
	default:
		return metrics.OutcomeInvalid
	}
}

// Rejection is the error returned by an Authenticator. Code and Message are
// what the client sees; Cause is for logs only.
type Rejection struct {
	Kind    RejectionKind
	Code    string
	Message string
	Cause   error
}

func (r *Rejection) Error() string {
	if r.Cause != nil {
		return r.Kind.String() + ": " + r.Cause.Error()
	}
	return r.Kind.String() + ": " + r.Message
}

func (r *Rejection) Unwrap() error {
	return r.Cause
}

// AsRejection extracts a *Rejection from err.
func AsRejection(err error) (*Rejection, bool) {
	var rej *Rejection
	ok := errors.As(err, &rej)
	return rej, ok
}

func missing(message string) *Rejection {
	return &Rejection{Kind: KindMissingCredential, Code: models.ErrCodeMissingCredentials, Message: message}
}

func reject(kind RejectionKind, cause error) *Rejection {
	return &Rejection{Kind: kind, Code: models.ErrCodeUnauthorized, Message: MsgUnauthorized, Cause: cause}
}

// lookupCredential resolves email, separating an unknown account from a
// broken store and from a caller who went away.
func lookupCredential(ctx context.Context, store CredentialStore, email string) (*models.Credential, error) {
	cred, err := store.FindCredentialByEmail(ctx, email)
	switch {
	case err == nil:
		return cred, nil
	case errors.Is(ctx.Err(), context.Canceled):
		return nil, reject(KindCanceled, ctx.Err())
	case errors.Is(err, ErrCredentialNotFound):
		return nil, reject(KindInvalidCredential, err)
	default:
		return nil, reject(KindStoreFailure, err)
	}
}
