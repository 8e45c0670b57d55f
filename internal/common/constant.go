// Package common contains shared constants and sentinel errors used across
// bookit components.
package common

const (
	// TokenStorageKey is the fixed key the bearer credential is stored under.
	TokenStorageKey = "token"

	// AuthorizationHeaderName is the HTTP header carrying the bearer credential.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the credential in the Authorization header value.
	BearerPrefix = "Bearer "
)
