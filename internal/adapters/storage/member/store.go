package member

import (
	"context"

	domain "diaconisas/internal/domain/member"
)

// Store persists Member state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Member, error)
	Save(ctx context.Context, value domain.Member) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Member, error)
	Count(ctx context.Context) (int, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Limit  int
	Offset int
	Search string // matches nombre, apellido or telefono
}

// IsZero reports whether the filter selects the whole roster.
func (f ListFilter) IsZero() bool {
	return f == ListFilter{}
}
