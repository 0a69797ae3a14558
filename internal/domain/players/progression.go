package players

// LevelThreshold es el multiplicador de experiencia por nivel para
// jugadores. Distinto del umbral de gatos (800), no unificar.
const LevelThreshold = 1000

// AddExperience suma experiencia y aplica a lo sumo UN level-up por
// llamada: la experiencia sobrante queda bankeada para la próxima
// llamada. Los gatos sí multi-levelean (cats.AddExperience); la
// asimetría es intencional, no unificar.
func (p *Player) AddExperience(amount int) bool {
	if amount < 0 {
		return false
	}

	p.Experience += amount

	// Experiencia para el próximo nivel = nivel actual * 1000.
	for p.Experience >= p.Level*LevelThreshold {
		p.Experience -= p.Level * LevelThreshold
		p.Level++
		return true
	}

	return false
}

// CanAfford indica si el jugador puede pagar un monto.
func (p *Player) CanAfford(amount int) bool {
	return p.Coins >= amount
}
