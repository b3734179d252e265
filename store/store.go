package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Devvify/dynamic-survey-management/model"
)

var (
	ErrNotFound = errors.New("not found")

	// ErrSurveyHasSubmissions blocks deletion of a survey that answers
	// still reference.
	ErrSurveyHasSubmissions = errors.New("survey has submissions")
)

// Store persists surveys and submissions. The clock is injected so
// timestamps stay out of ambient state.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

func New(db *sql.DB) *Store {
	return NewWithClock(db, time.Now)
}

func NewWithClock(db *sql.DB, now func() time.Time) *Store {
	return &Store{db: db, now: now}
}

// Page selects a slice of a listing. Zero values mean first page, default
// size.
type Page struct {
	Number int
	Size   int
}

const defaultPageSize = 10

func (p Page) limitOffset() (limit, offset int) {
	limit = p.Size
	if limit < 1 {
		limit = defaultPageSize
	}
	number := p.Number
	if number < 1 {
		number = 1
	}
	return limit, (number - 1) * limit
}

func (s *Store) UserByUsername(ctx context.Context, username string) (u model.User, err error) {
	err = s.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, role
		FROM users
		WHERE username = ?`,
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrNotFound
	}
	return
}

// UpsertUser creates or re-keys a user. Used by the startup bootstrap.
func (s *Store) UpsertUser(ctx context.Context, username string, passwordHash []byte, role string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (username, password_hash, role)
		VALUES (?, ?, ?)
		ON CONFLICT (username) DO UPDATE
		SET password_hash = excluded.password_hash,
			role = excluded.role`,
		username,
		passwordHash,
		role,
	)
	return err
}
