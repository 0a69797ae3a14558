package catalog

import (
	"embed"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

//go:embed data/breeds.csv
var defaultData embed.FS

// LoadCSV lee el catálogo desde una fuente tabular:
// breed,rarity,health,attack,defense,speed (con header).
func LoadCSV(r io.Reader) (*Catalog, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadCatalog, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: empty table", ErrBadCatalog)
	}

	defs := make([]BreedDefinition, 0, len(rows)-1)
	for i, row := range rows[1:] { // saltar header
		if len(row) != 6 {
			return nil, fmt.Errorf("%w: row %d has %d columns, want 6", ErrBadCatalog, i+2, len(row))
		}

		stats, err := parseStats(row[2:6])
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrBadCatalog, i+2, err)
		}

		defs = append(defs, BreedDefinition{
			Name:   strings.TrimSpace(row[0]),
			Rarity: Rarity(strings.ToLower(strings.TrimSpace(row[1]))),
			Stats:  stats,
		})
	}

	return New(defs)
}

// Default carga la tabla embebida en el binario.
func Default() (*Catalog, error) {
	f, err := defaultData.Open("data/breeds.csv")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadCatalog, err)
	}
	defer f.Close()
	return LoadCSV(f)
}

func parseStats(cols []string) (BaseStats, error) {
	vals := make([]int, 4)
	for i, c := range cols {
		n, err := strconv.Atoi(strings.TrimSpace(c))
		if err != nil {
			return BaseStats{}, fmt.Errorf("stat %q not a number", c)
		}
		vals[i] = n
	}
	return BaseStats{
		Health:  vals[0],
		Attack:  vals[1],
		Defense: vals[2],
		Speed:   vals[3],
	}, nil
}
