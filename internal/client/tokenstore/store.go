// Package tokenstore persists the single bearer credential of a bookit
// session under a fixed key.
//
// Stores do not look inside the token. Any backend failure is wrapped with
// common.ErrStorageUnavailable so the session layer can treat it as "no
// token" without knowing the backend.
package tokenstore

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bookit/internal/common"
)

// Store is a key/value accessor for the one stored credential.
//
// Read returns ("", nil) when nothing is stored. Save overwrites any
// previous credential. Clear is idempotent.
type Store interface {
	Save(ctx context.Context, token string) error
	Read(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s token: %v", common.ErrStorageUnavailable, op, err)
}
