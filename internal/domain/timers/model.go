package timers

import "time"

// Timer es un registro de cooldown, con clave compuesta
// (jugador, acción). Si no existe registro, la acción está disponible.
type Timer struct {
	PlayerID string
	Action   string

	NextAvailable time.Time
}

// ActiveTimer es la vista de un cooldown todavía corriendo.
type ActiveTimer struct {
	Action           string
	SecondsRemaining int
	NextAvailable    time.Time
}
