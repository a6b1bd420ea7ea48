package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"diaconisas/internal/adapters/storage"
	domain "diaconisas/internal/domain/account"
)

// ErrUsernameTaken is returned when inserting a second account with the same username.
var ErrUsernameTaken = errors.New("username already registered")

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new account SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByUsername retrieves an Account by username.
// PRE: username is non-empty
// POST: Returns the entity or an error wrapping storage.ErrNotFound
func (s *SQLiteStore) GetByUsername(ctx context.Context, username string) (domain.Account, error) {
	query := "SELECT id, username, password_hash, created_at, failed_logins, locked_until FROM account WHERE username = ?"
	row := s.db.QueryRowContext(ctx, query, username)

	var entity domain.Account
	var createdAt string
	var lockedUntil sql.NullString
	err := row.Scan(&entity.ID, &entity.Username, &entity.PasswordHash, &createdAt, &entity.FailedLogins, &lockedUntil)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Account{}, fmt.Errorf("account %s: %w", username, storage.ErrNotFound)
	}
	if err != nil {
		return domain.Account{}, err
	}
	if entity.CreatedAt, err = storage.ParseTime(createdAt); err != nil {
		return domain.Account{}, err
	}
	if entity.LockedUntil, err = storage.ParseTime(lockedUntil.String); err != nil {
		return domain.Account{}, err
	}
	return entity, nil
}

// Save persists an Account to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update); a username clash with another id returns ErrUsernameTaken
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Account) error {
	query := `INSERT INTO account (id, username, password_hash, created_at, failed_logins, locked_until)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			password_hash=excluded.password_hash,
			failed_logins=excluded.failed_logins,
			locked_until=excluded.locked_until`

	var lockedUntil any
	if !entity.LockedUntil.IsZero() {
		lockedUntil = storage.FormatTime(entity.LockedUntil)
	}

	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.Username,
		entity.PasswordHash,
		storage.FormatTime(entity.CreatedAt),
		entity.FailedLogins,
		lockedUntil,
	)
	if err != nil && storage.IsUniqueViolation(err) {
		return fmt.Errorf("%w: %s", ErrUsernameTaken, entity.Username)
	}
	return err
}

// Count returns the number of accounts.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM account").Scan(&count)
	return count, err
}
