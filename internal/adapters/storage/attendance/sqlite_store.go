package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"diaconisas/internal/adapters/storage"
	domain "diaconisas/internal/domain/attendance"
	"diaconisas/internal/domain/person"

	"github.com/google/uuid"
)

const selectColumns = "SELECT id, tipo, person_id, person_name, fecha, presente, created_at FROM attendance"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db  storage.SQLDB
	now func() time.Time
}

// NewSQLiteStore creates a new attendance SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db, now: time.Now}
}

// Upsert writes r keyed on (kind, person_id, fecha).
// PRE: r has been validated
// POST: Exactly one row exists for the key; an existing row keeps its id and created_at
// INVARIANT: a legacy "visitor" row for the same friend and date is rewritten, not duplicated
func (s *SQLiteStore) Upsert(ctx context.Context, r domain.Record) (domain.Record, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Record{}, err
	}
	defer tx.Rollback()

	labels := Labels(r.Kind)
	if len(labels) == 0 {
		return domain.Record{}, domain.ErrInvalidKind
	}

	query := "SELECT id, created_at FROM attendance WHERE tipo IN (" + placeholders(len(labels)) + ") AND person_id = ? AND fecha = ? ORDER BY created_at LIMIT 1"
	args := append(toArgs(labels), r.PersonID, r.Date)

	var existingID, createdAt string
	err = tx.QueryRowContext(ctx, query, args...).Scan(&existingID, &createdAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if r.ID == "" {
			r.ID = uuid.New().String()
		}
		if r.CreatedAt.IsZero() {
			r.CreatedAt = s.now()
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO attendance (id, tipo, person_id, person_name, fecha, presente, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
			r.ID, r.Kind.String(), r.PersonID, r.PersonName, r.Date, r.Present, storage.FormatTime(r.CreatedAt),
		)
		if err != nil {
			return domain.Record{}, fmt.Errorf("insert attendance %s: %w", r.Key(), err)
		}
	case err != nil:
		return domain.Record{}, err
	default:
		_, err = tx.ExecContext(ctx,
			"UPDATE attendance SET tipo = ?, person_name = ?, presente = ? WHERE id = ?",
			r.Kind.String(), r.PersonName, r.Present, existingID,
		)
		if err != nil {
			return domain.Record{}, fmt.Errorf("update attendance %s: %w", r.Key(), err)
		}
		r.ID = existingID
		if r.CreatedAt, err = storage.ParseTime(createdAt); err != nil {
			return domain.Record{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.Record{}, err
	}
	return r, nil
}

// List returns matching records ordered by fecha then creation time.
// POST: Returns matching entities, never nil
func (s *SQLiteStore) List(ctx context.Context, filter Filter) ([]domain.Record, error) {
	where, args := whereClause(filter)
	query := selectColumns + where + " ORDER BY fecha, created_at, id"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]domain.Record, 0)
	for rows.Next() {
		var r domain.Record
		var tipo, createdAt string
		if err := rows.Scan(&r.ID, &tipo, &r.PersonID, &r.PersonName, &r.Date, &r.Present, &createdAt); err != nil {
			return nil, err
		}
		if r.Kind, err = person.ParseKind(tipo); err != nil {
			return nil, fmt.Errorf("attendance %s: %w", r.ID, err)
		}
		if r.CreatedAt, err = storage.ParseTime(createdAt); err != nil {
			return nil, fmt.Errorf("attendance %s created_at: %w", r.ID, err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// Count returns the number of matching records.
func (s *SQLiteStore) Count(ctx context.Context, filter Filter) (int, error) {
	where, args := whereClause(filter)
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM attendance"+where, args...).Scan(&count)
	return count, err
}

// whereClause builds the WHERE clause and args for List/Count queries.
func whereClause(filter Filter) (string, []any) {
	var conds []string
	var args []any

	if filter.Date != "" {
		conds = append(conds, "fecha = ?")
		args = append(args, filter.Date)
	}
	if filter.Start != "" {
		conds = append(conds, "fecha >= ?")
		args = append(args, filter.Start)
	}
	if filter.End != "" {
		conds = append(conds, "fecha <= ?")
		args = append(args, filter.End)
	}
	if labels := Labels(filter.Kind); len(labels) > 0 {
		conds = append(conds, "tipo IN ("+placeholders(len(labels))+")")
		args = append(args, toArgs(labels)...)
	}
	if filter.PersonID != "" {
		conds = append(conds, "person_id = ?")
		args = append(args, filter.PersonID)
	}
	if filter.PresentOnly {
		conds = append(conds, "presente = 1")
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func toArgs(values []string) []any {
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}
	return args
}
