package friend

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"diaconisas/internal/adapters/storage"
	domain "diaconisas/internal/domain/friend"
)

const selectColumns = "SELECT id, nombre, de_donde_viene, fecha_registro FROM friend"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new friend SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Friend by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error wrapping storage.ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Friend, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id)
	entity, err := scanFriend(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Friend{}, fmt.Errorf("friend %s: %w", id, storage.ErrNotFound)
	}
	return entity, err
}

// Save persists a Friend to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update); fecha_registro is kept from the first insert
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Friend) error {
	query := `INSERT INTO friend (id, nombre, de_donde_viene, fecha_registro)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			nombre=excluded.nombre,
			de_donde_viene=excluded.de_donde_viene`
	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.Nombre,
		entity.DeDondeViene,
		storage.FormatTime(entity.FechaRegistro),
	)
	return err
}

// Delete removes a Friend. Attendance rows referencing the friend are kept.
// PRE: id is non-empty
// POST: Entity with given id is removed, or storage.ErrNotFound is returned
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM friend WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("friend %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

// Count returns the total number of friends.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM friend").Scan(&count)
	return count, err
}

// List retrieves Friends, most recently registered first.
// POST: Returns matching entities, never nil
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Friend, error) {
	query := selectColumns
	var args []any
	if filter.Search != "" {
		query += " WHERE nombre LIKE ? OR de_donde_viene LIKE ?"
		term := "%" + filter.Search + "%"
		args = append(args, term, term)
	}
	query += " ORDER BY fecha_registro DESC, nombre COLLATE NOCASE"

	limit := filter.Limit
	if limit <= 0 {
		limit = -1
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]domain.Friend, 0)
	for rows.Next() {
		entity, err := scanFriend(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

func scanFriend(scan func(dest ...any) error) (domain.Friend, error) {
	var entity domain.Friend
	var registered string
	if err := scan(&entity.ID, &entity.Nombre, &entity.DeDondeViene, &registered); err != nil {
		return domain.Friend{}, err
	}
	t, err := storage.ParseTime(registered)
	if err != nil {
		return domain.Friend{}, fmt.Errorf("friend %s fecha_registro: %w", entity.ID, err)
	}
	entity.FechaRegistro = t
	return entity, nil
}
