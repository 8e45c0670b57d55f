// Package metadata is a small key/value table in the local client database.
package metadata

import (
	"context"
)

// Repository stores string values under unique keys. Get returns ("", nil)
// for an absent key.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
