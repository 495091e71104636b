package litters

import "time"

// Litter representa una camada: un grupo de crías nacidas juntas de una
// madre en una fecha. El id se deriva de la secuencia por madre y es
// inmutable una vez asignado.
type Litter struct {
	ID       string // "<motherID>-<secuencia>"
	MotherID string // inmutable: el id codifica (madre, secuencia)

	// FatherID nil = padre no especificado. Se modela como opcional real
	// en vez de un string centinela para no chocar con un id legítimo.
	FatherID *string

	BirthDate          time.Time
	ReportedLitterSize int
	Notes              string

	CreatedAt time.Time
	UpdatedAt time.Time
}
