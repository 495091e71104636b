package mothers

import "context"

type Repository interface {
	// Create falla con ErrConflict si el id ya existe.
	Create(ctx context.Context, m Mother) error
	// Ensure crea la madre si no existe; no-op si ya existe.
	Ensure(ctx context.Context, m Mother) error
	GetByID(ctx context.Context, id string) (Mother, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Mother, error)
	// ReserveNextSequence devuelve el valor actual e incrementa el almacenado
	// en una sola operación atómica del storage. Un read-then-write acá es un
	// defecto: bajo Record concurrente para la misma madre emite duplicados.
	ReserveNextSequence(ctx context.Context, id string) (int64, error)
	Delete(ctx context.Context, id string) error
}

// LitterPurger y OffspringPurger existen para que Remove pueda cascadear
// sin ciclos de imports entre módulos (litters/offspring importan mothers).
// Borrar algo que ya no existe es no-op: el cascade es best-effort y un
// retry debe poder completarlo.
type LitterPurger interface {
	ListIDsByMother(ctx context.Context, motherID string) ([]string, error)
	Delete(ctx context.Context, litterID string) error
}

type OffspringPurger interface {
	DeleteByLitter(ctx context.Context, litterID string) (int, error)
}
