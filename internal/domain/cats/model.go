package cats

import "time"

// Stats es el bloque de stats actual de un gato. Se deriva de los stats
// base de la raza al generarlo y después muta solo por level-ups; nunca
// se recalcula desde raza+nivel.
type Stats struct {
	Health  int
	Attack  int
	Defense int
	Speed   int
}

// Cat representa un gato coleccionable. PlayerID vacío = gato salvaje
// (todavía sin dueño, efímero hasta que alguien lo capture).
type Cat struct {
	ID       string
	PlayerID string

	Name  string
	Breed string

	Level      int
	Experience int
	Stats      Stats

	IsActive bool

	CreatedAt time.Time
}

// Owned indica si el gato tiene dueño.
func (c Cat) Owned() bool {
	return c.PlayerID != ""
}
