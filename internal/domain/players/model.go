package players

import "time"

const (
	// Valores iniciales de un jugador nuevo.
	StartingCoins    = 100
	StartingLocation = "Whiskerton"
)

// Player representa al jugador (el actor externo de la plataforma de
// chat). El ID es el id de actor que entrega la plataforma, no lo
// generamos nosotros.
type Player struct {
	ID       string
	Username string

	Level      int
	Experience int
	Coins      int

	CurrentLocation string

	CreatedAt time.Time
}
