package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// StoreToken records an issued token pair for later refresh.
func (s *Store) StoreToken(ctx context.Context, username, tokenID, refreshTokenID string, expiration time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tokens (username, token_id, refresh_token_id, expiration)
		VALUES (?, ?, ?, ?)`,
		username,
		tokenID,
		refreshTokenID,
		expiration,
	)
	return err
}

// ConsumeToken deletes a stored token pair and returns its expiration.
// Refresh tokens are single use.
func (s *Store) ConsumeToken(ctx context.Context, username, tokenID, refreshTokenID string) (time.Time, error) {
	var expiration time.Time
	err := s.db.QueryRowContext(ctx, `
		DELETE FROM tokens
		WHERE username = ?
			AND token_id = ?
			AND refresh_token_id = ?
		RETURNING expiration`,
		username,
		tokenID,
		refreshTokenID,
	).Scan(&expiration)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, ErrNotFound
	}
	return expiration, err
}
