package offspring

import "time"

// Offspring representa una cría individual, perteneciente a exactamente
// una camada existente.
type Offspring struct {
	ID       string // suministrado por el caller; renombrable
	LitterID string // debe referenciar una camada existente; mutable

	Sex   Sex
	Notes string

	// IsAlive arranca en true; la muerte solo lo baja a false.
	IsAlive bool
	// SurvivedToWeaning arranca en false y es monótono: una vez true,
	// una muerte posterior no lo revoca.
	SurvivedToWeaning bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
