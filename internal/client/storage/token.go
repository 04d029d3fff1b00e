package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/fittrack/internal/client/models"
	"github.com/dmitrijs2005/fittrack/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/fittrack/internal/dbx"
)

// TokenStore persists the credential token and the profile it was issued
// for, so a session survives a restart.
type TokenStore interface {
	// Load returns ("", nil, nil) when nothing is stored. The user may be nil
	// even when a token is present.
	Load(ctx context.Context) (string, *models.User, error)
	Save(ctx context.Context, token string, user *models.User) error
	Clear(ctx context.Context) error
}

type SQLiteTokenStore struct {
	db *sql.DB
}

func NewSQLiteTokenStore(db *sql.DB) *SQLiteTokenStore {
	return &SQLiteTokenStore{db: db}
}

var _ TokenStore = (*SQLiteTokenStore)(nil)

func (s *SQLiteTokenStore) Load(ctx context.Context) (string, *models.User, error) {
	saved, err := metadata.NewSQLiteRepository(s.db).Lookup(ctx, metadata.SessionKeys...)
	if err != nil {
		return "", nil, err
	}

	tok := string(saved[metadata.KeyToken])
	if tok == "" {
		return "", nil, nil
	}

	raw := saved[metadata.KeyUser]
	if len(raw) == 0 {
		return tok, nil, nil
	}

	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		// a damaged profile cache is not fatal, it is fetched again
		return tok, nil, nil
	}
	return tok, &u, nil
}

// Save writes the token and the profile together. A nil user removes a
// previously cached profile.
func (s *SQLiteTokenStore) Save(ctx context.Context, token string, user *models.User) error {
	if user == nil {
		return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			repo := metadata.NewSQLiteRepository(tx)
			if err := repo.Put(ctx, map[string][]byte{metadata.KeyToken: []byte(token)}); err != nil {
				return err
			}
			return repo.Delete(ctx, metadata.KeyUser)
		})
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	return metadata.NewSQLiteRepository(s.db).Put(ctx, map[string][]byte{
		metadata.KeyToken: []byte(token),
		metadata.KeyUser:  raw,
	})
}

func (s *SQLiteTokenStore) Clear(ctx context.Context) error {
	return metadata.NewSQLiteRepository(s.db).Delete(ctx, metadata.SessionKeys...)
}
