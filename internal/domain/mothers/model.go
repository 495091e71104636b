package mothers

import "time"

// Mother representa una hembra reproductora registrada en el sistema.
// Puede crearse explícitamente (register) o implícitamente al registrar
// la primera camada de un id desconocido.
type Mother struct {
	ID          string
	OwnerUserID string

	Notes string

	// NextLitterSequence es el próximo número de camada a emitir (>= 1).
	// Solo lo muta la reserva de secuencia; nunca se reutiliza un número
	// ya emitido, aunque el insert de la camada falle (hueco aceptable).
	NextLitterSequence int64

	CreatedAt time.Time
}
