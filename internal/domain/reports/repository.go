package reports

import "context"

type Repository interface {
	// Create falla con ErrConflict si el nombre ya está tomado.
	Create(ctx context.Context, r Report) error
	GetByName(ctx context.Context, name string) (Report, error)
	// Update persiste por ID (surrogate), no por nombre.
	Update(ctx context.Context, r Report) error
	// Rename muta el índice de nombres en una sola operación atómica.
	// ErrNotFound si oldName no existe, ErrConflict si newName ya existe.
	Rename(ctx context.Context, oldName, newName string) error
	DeleteByName(ctx context.Context, name string) error
}
