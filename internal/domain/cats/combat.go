package cats

import (
	"errors"
	"math/rand"
)

var (
	ErrZeroDefense = errors.New("defender defense must be positive")
	ErrBadPower    = errors.New("move power must be positive")
)

// DamageCalc calcula el daño de un ataque. Varianza y crítico son
// rolls inyectables (se fijan en tests para resultados exactos).
type DamageCalc struct {
	varianceRoll func() float64 // U[0.8,1.2)
	critRoll     func() float64 // U[0,1)
}

func NewDamageCalc() *DamageCalc {
	return &DamageCalc{
		varianceRoll: func() float64 {
			return 0.8 + rand.Float64()*0.4
		},
		critRoll: rand.Float64,
	}
}

// Damage aplica la fórmula (attack * power) / defense, con varianza
// ±20% y 10% de chance de crítico x1.5 (multiplicativo con la
// varianza). El resultado se trunca a entero no negativo.
func (d *DamageCalc) Damage(attacker, defender Stats, movePower int) (int, error) {
	if movePower <= 0 {
		return 0, ErrBadPower
	}
	if defender.Defense <= 0 {
		return 0, ErrZeroDefense
	}

	base := float64(attacker.Attack*movePower) / float64(defender.Defense)

	variance := d.varianceRoll()
	if d.critRoll() < 0.1 {
		variance *= 1.5
	}

	return int(base * variance), nil
}
