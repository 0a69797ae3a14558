package cats

// LevelThreshold es el multiplicador de experiencia por nivel para
// gatos. Distinto del umbral de jugadores (1000), no unificar.
const LevelThreshold = 800

// AddExperience suma experiencia y aplica todos los level-ups
// pendientes. Cada nivel ganado sube cada stat un +10% (truncado),
// compuesto sobre el valor ya subido: dos niveles en una llamada
// componen dos veces.
//
// Devuelve true si subió al menos un nivel. No persiste; el caller
// guarda el gato después.
func (c *Cat) AddExperience(amount int) bool {
	if amount < 0 {
		return false
	}

	c.Experience += amount
	leveledUp := false

	// Experiencia para el próximo nivel = nivel actual * 800.
	for c.Experience >= c.Level*LevelThreshold {
		c.Experience -= c.Level * LevelThreshold
		c.Level++

		c.Stats.Health += int(float64(c.Stats.Health) * 0.1)
		c.Stats.Attack += int(float64(c.Stats.Attack) * 0.1)
		c.Stats.Defense += int(float64(c.Stats.Defense) * 0.1)
		c.Stats.Speed += int(float64(c.Stats.Speed) * 0.1)

		leveledUp = true
	}

	return leveledUp
}
