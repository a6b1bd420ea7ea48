package friend

import (
	"context"

	domain "diaconisas/internal/domain/friend"
)

// Store persists Friend state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Friend, error)
	Save(ctx context.Context, value domain.Friend) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Friend, error)
	Count(ctx context.Context) (int, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Limit  int
	Offset int
	Search string // matches nombre or de_donde_viene
}

// IsZero reports whether the filter selects the whole roster.
func (f ListFilter) IsZero() bool {
	return f == ListFilter{}
}
