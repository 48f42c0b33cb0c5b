// Package tokenstore persists the single-slot access token in the client's
// local database. The token's presence is the sole source of truth for
// "was previously authenticated".
package tokenstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/abshirdev/finledger/internal/dbx"
)

// accessTokenKey is the fixed storage key for the persisted bearer token.
const accessTokenKey = "access_token"

// Store is the persisted-token contract.
//
// Token returns "" (and no error) when no token is stored. Save overwrites
// any previous token; only one session can be current at a time.
type Store interface {
	Token(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// SQLiteStore keeps the token in the metadata table managed by localdb.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Token(ctx context.Context) (string, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM metadata WHERE key = ?`, accessTokenKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load access token: %w", err)
	}
	return string(value), nil
}

func (s *SQLiteStore) Save(ctx context.Context, token string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO metadata (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, accessTokenKey, []byte(token))
		if err != nil {
			return fmt.Errorf("failed to save access token: %w", err)
		}
		return nil
	})
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM metadata WHERE key = ?`, accessTokenKey)
	if err != nil {
		return fmt.Errorf("failed to clear access token: %w", err)
	}
	return nil
}
