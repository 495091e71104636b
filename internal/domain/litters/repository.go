package litters

import (
	"context"
	"time"
)

type Repository interface {
	// Create falla con ErrConflict si el id ya existe.
	Create(ctx context.Context, l Litter) error
	GetByID(ctx context.Context, id string) (Litter, error)
	Update(ctx context.Context, l Litter) error
	ListByMother(ctx context.Context, motherID string, filter ListFilter) ([]Litter, error)
	ListIDsByMother(ctx context.Context, motherID string) ([]string, error)
	// Delete es no-op si el id no existe (lo usa el cascade de mothers).
	Delete(ctx context.Context, id string) error
}

// ListFilter filtra por fecha de nacimiento, ambos extremos inclusivos.
type ListFilter struct {
	From *time.Time
	To   *time.Time
}
