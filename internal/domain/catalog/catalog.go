package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrBadCatalog   = errors.New("invalid catalog")
	ErrUnknownBreed = errors.New("unknown breed")
)

// Catalog es la tabla estática raza -> {rarity, stats base}.
// Se construye una vez al arranque; el lookup raza -> rarity es un
// mapa directo (no se re-escanean las listas por tier).
type Catalog struct {
	byBreed  map[string]BreedDefinition
	byRarity map[Rarity][]string
}

// New valida y arma el catálogo a partir de las definiciones.
// Falla si hay tiers vacíos, razas duplicadas o stats no positivos
// (el servicio no debe arrancar con un catálogo roto).
func New(defs []BreedDefinition) (*Catalog, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("%w: no breeds", ErrBadCatalog)
	}

	c := &Catalog{
		byBreed:  make(map[string]BreedDefinition, len(defs)),
		byRarity: make(map[Rarity][]string),
	}

	valid := map[Rarity]bool{}
	for _, r := range RarityOrder {
		valid[r] = true
	}

	for _, d := range defs {
		if d.Name == "" {
			return nil, fmt.Errorf("%w: breed without name", ErrBadCatalog)
		}
		if !valid[d.Rarity] {
			return nil, fmt.Errorf("%w: breed %q has unknown rarity %q", ErrBadCatalog, d.Name, d.Rarity)
		}
		if _, dup := c.byBreed[d.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate breed %q", ErrBadCatalog, d.Name)
		}
		if d.Stats.Health <= 0 || d.Stats.Attack <= 0 || d.Stats.Defense <= 0 || d.Stats.Speed <= 0 {
			return nil, fmt.Errorf("%w: breed %q has non-positive stats", ErrBadCatalog, d.Name)
		}

		c.byBreed[d.Name] = d
		c.byRarity[d.Rarity] = append(c.byRarity[d.Rarity], d.Name)
	}

	// Invariante: todos los tiers no vacíos.
	for _, r := range RarityOrder {
		if len(c.byRarity[r]) == 0 {
			return nil, fmt.Errorf("%w: rarity %q has no breeds", ErrBadCatalog, r)
		}
	}

	return c, nil
}

// Get devuelve la definición de una raza.
func (c *Catalog) Get(breed string) (BreedDefinition, error) {
	d, ok := c.byBreed[breed]
	if !ok {
		return BreedDefinition{}, fmt.Errorf("%w: %q", ErrUnknownBreed, breed)
	}
	return d, nil
}

// RarityOf devuelve la rareza de una raza en O(1).
func (c *Catalog) RarityOf(breed string) (Rarity, error) {
	d, ok := c.byBreed[breed]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownBreed, breed)
	}
	return d.Rarity, nil
}

// Breeds devuelve las razas de un tier, en el orden del catálogo.
func (c *Catalog) Breeds(r Rarity) []string {
	return c.byRarity[r]
}

// Len devuelve el total de razas cargadas.
func (c *Catalog) Len() int {
	return len(c.byBreed)
}
