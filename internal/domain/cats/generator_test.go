package cats

import (
	"errors"
	"testing"

	"whiskerverse/internal/domain/catalog"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]catalog.BreedDefinition{
		{Name: "Alley Cat", Rarity: catalog.RarityCommon, Stats: catalog.BaseStats{Health: 100, Attack: 10, Defense: 10, Speed: 10}},
		{Name: "Siamese", Rarity: catalog.RarityUncommon, Stats: catalog.BaseStats{Health: 95, Attack: 14, Defense: 10, Speed: 15}},
		{Name: "Bengal", Rarity: catalog.RarityRare, Stats: catalog.BaseStats{Health: 105, Attack: 15, Defense: 11, Speed: 16}},
		{Name: "Celestial", Rarity: catalog.RarityEpic, Stats: catalog.BaseStats{Health: 130, Attack: 18, Defense: 16, Speed: 15}},
		{Name: "Star Whisperer", Rarity: catalog.RarityLegendary, Stats: catalog.BaseStats{Health: 140, Attack: 25, Defense: 18, Speed: 22}},
	})
	if err != nil {
		t.Fatalf("catalog.New returned error: %v", err)
	}
	return c
}

func TestGenerate_ForcedRarity(t *testing.T) {
	g := NewGenerator(testCatalog(t))
	g.statRoll = func() float64 { return 1.0 }

	c, err := g.Generate(catalog.RarityLegendary)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if c.Breed != "Star Whisperer" {
		t.Fatalf("expected Star Whisperer, got %s", c.Breed)
	}
	if c.Name != "Wild Cat" {
		t.Fatalf("expected wild cat name, got %q", c.Name)
	}
	if c.Level != 1 || c.Experience != 0 {
		t.Fatalf("expected fresh level 1 cat, got level=%d exp=%d", c.Level, c.Experience)
	}
	if c.Owned() {
		t.Fatalf("wild cat must not have an owner")
	}
	if c.Stats != (Stats{Health: 140, Attack: 25, Defense: 18, Speed: 22}) {
		t.Fatalf("expected base stats with roll 1.0, got %#v", c.Stats)
	}
}

func TestGenerate_StatVarianceBounds(t *testing.T) {
	g := NewGenerator(testCatalog(t))

	// Roll mínimo: cada stat queda en floor(base*0.9).
	g.statRoll = func() float64 { return 0.9 }
	c, err := g.Generate(catalog.RarityCommon)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if c.Stats != (Stats{Health: 90, Attack: 9, Defense: 9, Speed: 9}) {
		t.Fatalf("unexpected stats at min roll: %#v", c.Stats)
	}

	// Roll cerca del máximo: floor(base*1.1) como techo.
	g.statRoll = func() float64 { return 1.0999 }
	c, err = g.Generate(catalog.RarityCommon)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if c.Stats.Health > 110 || c.Stats.Attack > 11 || c.Stats.Defense > 11 || c.Stats.Speed > 11 {
		t.Fatalf("stats above variance ceiling: %#v", c.Stats)
	}
	if c.Stats.Health < 90 {
		t.Fatalf("stats below variance floor: %#v", c.Stats)
	}
}

func TestGenerate_RarityCutoffs(t *testing.T) {
	// Los pesos acumulados son 0.50 / 0.75 / 0.90 / 0.98 / 1.0: cada
	// roll tiene que caer en el tier que le corresponde.
	cases := []struct {
		roll float64
		want catalog.Rarity
	}{
		{0.0, catalog.RarityCommon},
		{0.49, catalog.RarityCommon},
		{0.50, catalog.RarityUncommon},
		{0.74, catalog.RarityUncommon},
		{0.75, catalog.RarityRare},
		{0.89, catalog.RarityRare},
		{0.90, catalog.RarityEpic},
		{0.97, catalog.RarityEpic},
		{0.98, catalog.RarityLegendary},
		{0.9999, catalog.RarityLegendary},
	}

	g := NewGenerator(testCatalog(t))
	g.statRoll = func() float64 { return 1.0 }

	for _, tc := range cases {
		roll := tc.roll
		g.tierRoll = func() float64 { return roll }

		c, err := g.Generate("")
		if err != nil {
			t.Fatalf("Generate(roll=%v) returned error: %v", tc.roll, err)
		}

		got, err := g.catalog.RarityOf(c.Breed)
		if err != nil {
			t.Fatalf("RarityOf returned error: %v", err)
		}
		if got != tc.want {
			t.Fatalf("roll %v: expected %s, got %s", tc.roll, tc.want, got)
		}
	}
}

func TestGenerate_UnknownRarity(t *testing.T) {
	g := NewGenerator(testCatalog(t))

	_, err := g.Generate(catalog.Rarity("mythic"))
	if !errors.Is(err, catalog.ErrBadCatalog) {
		t.Fatalf("expected ErrBadCatalog, got %v", err)
	}
}
