package models

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// Sentinel errors shared by repositories and services. Handlers translate
// them to HTTP statuses in exactly one place.
var (
	ErrInvalid      = errors.New("invalid request")
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// ErrInvalidCredentials is a failed login with a known phone. It is a
	// 400-class rejection of the request body; 401 stays reserved for
	// missing or invalid bearer tokens.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AsRepoError normalizes driver-level errors: unique-index violations become
// ErrConflict and missing documents become ErrNotFound, so callers never see
// mongo internals.
func AsRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrConflict
	default:
		return err
	}
}
