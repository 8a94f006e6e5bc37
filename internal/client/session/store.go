package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"github.com/dmitrijs2005/fueltrack/internal/client/migrations"
	"github.com/dmitrijs2005/fueltrack/internal/client/models"
	"github.com/pressly/goose/v3"
)

// Storage keys. The store holds exactly these two entries.
const (
	keyAuthToken = "auth_token"
	keyUserData  = "user_data"
)

// Store persists the session credential and the cached profile snapshot in
// a local key-value table. Absence is a valid, expected state: read
// operations return zero values, never errors, for missing data.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// RunMigrations applies the embedded schema migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		log.Fatal("failed to set goose dialect:", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// OpenStore opens (creating if needed) the local database at dsn, applies
// migrations and returns a ready Store.
func OpenStore(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("failed to migrate local store: %w", err)
	}

	return NewStore(db), nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get session[%s]: %w", key, err)
	}
	return value, nil
}

func (s *Store) set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set session[%s]: %w", key, err)
	}
	return nil
}

// Token returns the stored bearer token, or "" when none is stored.
func (s *Store) Token(ctx context.Context) (string, error) {
	return s.get(ctx, keyAuthToken)
}

// SetToken stores the bearer token.
func (s *Store) SetToken(ctx context.Context, token string) error {
	return s.set(ctx, keyAuthToken, token)
}

// RemoveToken deletes the bearer token together with the cached profile.
// A session without a token has no business keeping the profile mirror.
func (s *Store) RemoveToken(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM session WHERE key IN (?, ?)`, keyAuthToken, keyUserData)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// CachedProfile returns the cached user-profile snapshot. A missing or
// corrupt value is reported as absent (nil, nil), not as an error.
func (s *Store) CachedProfile(ctx context.Context) (*models.User, error) {
	raw, err := s.get(ctx, keyUserData)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	var u models.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, nil
	}
	return &u, nil
}

// SetCachedProfile stores the profile snapshot. The cache is a read-through
// mirror of the backend; it is never the source of truth.
func (s *Store) SetCachedProfile(ctx context.Context, u *models.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("failed to serialize profile: %w", err)
	}
	return s.set(ctx, keyUserData, string(raw))
}
