package tokenstore

import (
	"context"

	"github.com/dmitrijs2005/bookit/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/bookit/internal/common"
)

// SQLiteStore keeps the credential in the local metadata table.
type SQLiteStore struct {
	repo metadata.Repository
}

func NewSQLiteStore(repo metadata.Repository) *SQLiteStore {
	return &SQLiteStore{repo: repo}
}

func (s *SQLiteStore) Save(ctx context.Context, token string) error {
	if err := s.repo.Set(ctx, common.TokenStorageKey, token); err != nil {
		return unavailable("save", err)
	}
	return nil
}

func (s *SQLiteStore) Read(ctx context.Context) (string, error) {
	token, err := s.repo.Get(ctx, common.TokenStorageKey)
	if err != nil {
		return "", unavailable("read", err)
	}
	return token, nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, common.TokenStorageKey); err != nil {
		return unavailable("clear", err)
	}
	return nil
}
