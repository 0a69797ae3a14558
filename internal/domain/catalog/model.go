package catalog

// Rarity define los cinco niveles de rareza, en orden.
// @Enum common, uncommon, rare, epic, legendary
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// RarityOrder es el orden canónico de tiers. Los pesos del generador
// dependen de este orden, no cambiarlo.
var RarityOrder = []Rarity{
	RarityCommon,
	RarityUncommon,
	RarityRare,
	RarityEpic,
	RarityLegendary,
}

// BaseStats es el bloque de stats base de una raza.
type BaseStats struct {
	Health  int
	Attack  int
	Defense int
	Speed   int
}

// BreedDefinition representa una fila del catálogo de razas.
type BreedDefinition struct {
	Name   string
	Rarity Rarity
	Stats  BaseStats
}
