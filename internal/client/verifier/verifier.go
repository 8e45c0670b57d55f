// Package verifier decodes the stored bearer credential and decides whether
// it is still usable. It never verifies signatures (the client holds no
// key) and performs no I/O, so results depend only on the token and the
// supplied time.
package verifier

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/bookit/internal/client/models"
	"github.com/dmitrijs2005/bookit/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the credential fields the client cares about.
type Claims struct {
	UserID    string
	UserType  models.Role
	ExpiresAt int64 // epoch seconds
}

// tokenClaims mirrors the server's JWT payload.
type tokenClaims struct {
	UserID   string `json:"id"`
	UserType string `json:"userType"`
	jwt.RegisteredClaims
}

var parser = jwt.NewParser()

// Decode parses token without checking its signature. It fails with
// common.ErrMalformedToken when the token is not a JWT or carries no exp.
func Decode(token string) (*Claims, error) {
	tc := &tokenClaims{}
	if _, _, err := parser.ParseUnverified(token, tc); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedToken, err)
	}
	if tc.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: missing exp claim", common.ErrMalformedToken)
	}

	userID := tc.UserID
	if userID == "" {
		userID = tc.Subject
	}

	return &Claims{
		UserID:    userID,
		UserType:  models.Role(tc.UserType),
		ExpiresAt: tc.ExpiresAt.Unix(),
	}, nil
}

// IsExpired reports whether claims expired strictly before now, at
// one-second resolution.
func IsExpired(claims *Claims, now time.Time) bool {
	return claims.ExpiresAt < now.Unix()
}

// Check decodes token and rejects it when expired.
func Check(token string, now time.Time) (*Claims, error) {
	claims, err := Decode(token)
	if err != nil {
		return nil, err
	}
	if IsExpired(claims, now) {
		return claims, common.ErrTokenExpired
	}
	return claims, nil
}
