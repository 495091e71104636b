package offspring

import "context"

type Repository interface {
	// Create falla con ErrConflict si el id ya existe.
	Create(ctx context.Context, o Offspring) error
	GetByID(ctx context.Context, id string) (Offspring, error)
	Update(ctx context.Context, o Offspring) error
	// Rename re-keya el registro de oldID a o.ID en una sola operación
	// atómica del storage (nada de delete+insert con ventana intermedia).
	// ErrNotFound si oldID no existe, ErrConflict si o.ID ya está tomado.
	Rename(ctx context.Context, oldID string, o Offspring) error
	ListByLitter(ctx context.Context, litterID string) ([]Offspring, error)
	// DeleteByLitter borra todas las crías de la camada y devuelve cuántas
	// borró; 0 si la camada no tenía crías (lo usa el cascade de mothers).
	DeleteByLitter(ctx context.Context, litterID string) (int, error)
}
