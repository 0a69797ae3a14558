package cats

import (
	"fmt"
	"math/rand"

	"whiskerverse/internal/domain/catalog"
)

// Pesos de tier, en el orden de catalog.RarityOrder
// (common, uncommon, rare, epic, legendary). Suman 1.0 y definen las
// drop rates del juego; cambiarlos rompe el balance.
var rarityWeights = []float64{0.50, 0.25, 0.15, 0.08, 0.02}

const wildCatName = "Wild Cat"

// Generator produce gatos sin dueño con raza sorteada por rareza y
// stats base con varianza acotada. Es puro: persistir el resultado es
// responsabilidad del caller (Capture / StartAdventure).
type Generator struct {
	catalog *catalog.Catalog

	// Rolls inyectables para tests (mismo patrón que el `now` de los
	// services).
	tierRoll  func() float64 // U[0,1)
	breedPick func(n int) int
	statRoll  func() float64 // U[0.9,1.1)
}

func NewGenerator(c *catalog.Catalog) *Generator {
	return &Generator{
		catalog:   c,
		tierRoll:  rand.Float64,
		breedPick: rand.Intn,
		statRoll: func() float64 {
			return 0.9 + rand.Float64()*0.2
		},
	}
}

// Generate crea un gato salvaje. Si rarity es vacía, sortea el tier con
// los pesos por defecto; si viene forzada (p.ej. starter común), usa
// ese tier directo.
func (g *Generator) Generate(rarity catalog.Rarity) (Cat, error) {
	if rarity == "" {
		rarity = g.rollRarity()
	}

	pool := g.catalog.Breeds(rarity)
	if len(pool) == 0 {
		return Cat{}, fmt.Errorf("%w: rarity %q has no breeds", catalog.ErrBadCatalog, rarity)
	}

	breed := pool[g.breedPick(len(pool))]
	def, err := g.catalog.Get(breed)
	if err != nil {
		return Cat{}, err
	}

	return Cat{
		Name:       wildCatName,
		Breed:      breed,
		Level:      1,
		Experience: 0,
		Stats:      g.rollStats(def.Stats),
	}, nil
}

// ValidateWild chequea que un gato salvaje sea uno que este generador
// pudo haber producido: raza del catálogo, nivel 1 y cada stat dentro
// de la varianza ±10% de la base de la raza. Los gatos salvajes llegan
// por el wire antes de capturarse; sin este chequeo un cliente puede
// inventar razas o stats.
func (g *Generator) ValidateWild(c Cat) error {
	def, err := g.catalog.Get(c.Breed)
	if err != nil {
		return err
	}

	if c.Level > 1 {
		return fmt.Errorf("wild cat level %d: wild cats are level 1", c.Level)
	}

	checks := []struct {
		name string
		base int
		got  int
	}{
		{"health", def.Stats.Health, c.Stats.Health},
		{"attack", def.Stats.Attack, c.Stats.Attack},
		{"defense", def.Stats.Defense, c.Stats.Defense},
		{"speed", def.Stats.Speed, c.Stats.Speed},
	}
	for _, s := range checks {
		lo := int(float64(s.base) * 0.9)
		hi := int(float64(s.base) * 1.1)
		if s.got < lo || s.got > hi {
			return fmt.Errorf("wild cat %s %d outside [%d,%d] for breed %q", s.name, s.got, lo, hi, c.Breed)
		}
	}

	return nil
}

func (g *Generator) rollRarity() catalog.Rarity {
	roll := g.tierRoll()

	acc := 0.0
	for i, r := range catalog.RarityOrder {
		acc += rarityWeights[i]
		if roll < acc {
			return r
		}
	}
	// roll == 0.999…: redondeo acumulado, cae en el último tier.
	return catalog.RarityOrder[len(catalog.RarityOrder)-1]
}

// rollStats aplica ±10% por stat, truncando hacia abajo (nunca se
// redondea para arriba).
func (g *Generator) rollStats(base catalog.BaseStats) Stats {
	return Stats{
		Health:  int(float64(base.Health) * g.statRoll()),
		Attack:  int(float64(base.Attack) * g.statRoll()),
		Defense: int(float64(base.Defense) * g.statRoll()),
		Speed:   int(float64(base.Speed) * g.statRoll()),
	}
}
