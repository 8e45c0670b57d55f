package client

import (
	"context"

	"github.com/dmitrijs2005/bookit/internal/client/models"
)

// Client is the transport-agnostic contract of the marketplace auth API.
//
// Calls that need a bearer credential read it from ctx (see
// WithAccessToken); the client itself keeps no credential state.
type Client interface {
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Register(ctx context.Context, payload models.RegisterPayload) (*models.AuthResponse, error)
	FetchCurrentUser(ctx context.Context) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, patch models.ProfilePatch) (*models.UserProfile, error)
	ChangePassword(ctx context.Context, currentPassword, newPassword string) (string, error)
	Close() error
}

type accessTokenKey struct{}

// WithAccessToken returns a child context carrying token for the requests
// made with it.
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, accessTokenKey{}, token)
}

// AccessTokenFromContext returns the token set by WithAccessToken, if any.
func AccessTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(accessTokenKey{}).(string)
	return token, ok && token != ""
}
