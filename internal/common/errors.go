// Package common defines shared constants and sentinel errors used across
// client and server layers of bookit. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal             = errors.New("internal error")
	ErrorInvalidLoginPassword = errors.New("invalid email or password")

	// Credential errors.
	ErrInvalidToken   = errors.New("invalid token")
	ErrMalformedToken = errors.New("malformed token")
	ErrTokenExpired   = errors.New("token expired")

	// Durable client storage could not be read or written.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
