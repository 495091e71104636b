package reports

import "time"

// Report es un agregado de entradas de performance reproductiva, con nombre
// único renombrable. El registro vive bajo un surrogate interno (ID): el
// rename solo muta el índice por nombre, nunca re-keya el registro.
type Report struct {
	ID          string // uuid interno, estable
	Name        string // único por reporte; renombrable
	OwnerUserID string

	GeneratedAt time.Time // último merge

	// TargetMothers es un set monótono creciente: un merge solo agrega.
	TargetMothers []string
	// Results conserva el orden de inserción; a lo sumo una entrada por
	// string exacto (dedupe por igualdad).
	Results []string

	// Summary es la narrativa cacheada del summarizer externo; "" hasta
	// que se invoque, y se vacía cuando Results/TargetMothers cambian.
	Summary string

	CreatedAt time.Time
}
