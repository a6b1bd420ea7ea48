package member

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"diaconisas/internal/adapters/storage"
	domain "diaconisas/internal/domain/member"
)

const selectColumns = "SELECT id, nombre, apellido, direccion, telefono, fecha_registro FROM member"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new member SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Member by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error wrapping storage.ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Member, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id)
	entity, err := scanMember(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Member{}, fmt.Errorf("member %s: %w", id, storage.ErrNotFound)
	}
	return entity, err
}

// Save persists a Member to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update); fecha_registro is never overwritten
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Member) error {
	query := `INSERT INTO member (id, nombre, apellido, direccion, telefono, fecha_registro)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			nombre=excluded.nombre,
			apellido=excluded.apellido,
			direccion=excluded.direccion,
			telefono=excluded.telefono`
	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.Nombre,
		entity.Apellido,
		entity.Direccion,
		entity.Telefono,
		storage.FormatTime(entity.FechaRegistro),
	)
	return err
}

// Delete removes a Member from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed, or storage.ErrNotFound is returned
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM member WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("member %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

// Count returns the total number of members.
// POST: Returns count >= 0
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM member").Scan(&count)
	return count, err
}

// List retrieves Members ordered by nombre, apellido.
// PRE: filter has valid parameters
// POST: Returns matching entities, never nil
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Member, error) {
	query := selectColumns
	var args []any
	if filter.Search != "" {
		query += " WHERE nombre LIKE ? OR apellido LIKE ? OR telefono LIKE ?"
		term := "%" + filter.Search + "%"
		args = append(args, term, term, term)
	}
	query += " ORDER BY nombre COLLATE NOCASE, apellido COLLATE NOCASE"

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

	results := make([]domain.Member, 0)
	for rows.Next() {
		entity, err := scanMember(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

func scanMember(scan func(dest ...any) error) (domain.Member, error) {
	var entity domain.Member
	var registered string
	if err := scan(
		&entity.ID,
		&entity.Nombre,
		&entity.Apellido,
		&entity.Direccion,
		&entity.Telefono,
		&registered,
	); err != nil {
		return domain.Member{}, err
	}
	t, err := storage.ParseTime(registered)
	if err != nil {
		return domain.Member{}, fmt.Errorf("member %s fecha_registro: %w", entity.ID, err)
	}
	entity.FechaRegistro = t
	return entity, nil
}
