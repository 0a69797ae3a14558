package postgres

import (
	"context"
	"database/sql"
	"strings"

	"whiskerverse/internal/domain/cats"
)

type CatsRepo struct {
	db *sql.DB
}

func NewCatsRepo(db *sql.DB) *CatsRepo {
	return &CatsRepo{db: db}
}

func (r *CatsRepo) Create(ctx context.Context, c cats.Cat) error {
	_, err := q(ctx, r.db).ExecContext(ctx, `
		INSERT INTO cats (
			id, player_id,
			name, breed,
			level, experience,
			health, attack, defense, speed,
			is_active, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		c.ID,
		c.PlayerID,
		c.Name,
		c.Breed,
		c.Level,
		c.Experience,
		c.Stats.Health,
		c.Stats.Attack,
		c.Stats.Defense,
		c.Stats.Speed,
		c.IsActive,
		c.CreatedAt,
	)
	return wrapStoreErr(err)
}

func (r *CatsRepo) Update(ctx context.Context, c cats.Cat) error {
	res, err := q(ctx, r.db).ExecContext(ctx, `
		UPDATE cats
		SET
			name = $2,
			level = $3,
			experience = $4,
			health = $5,
			attack = $6,
			defense = $7,
			speed = $8,
			is_active = $9
		WHERE id = $1
	`,
		c.ID,
		c.Name,
		c.Level,
		c.Experience,
		c.Stats.Health,
		c.Stats.Attack,
		c.Stats.Defense,
		c.Stats.Speed,
		c.IsActive,
	)
	if err != nil {
		return wrapStoreErr(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CatsRepo) GetByID(ctx context.Context, id string) (cats.Cat, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return cats.Cat{}, ErrNotFound
	}

	row := q(ctx, r.db).QueryRowContext(ctx, `
		SELECT
			id, player_id,
			name, breed,
			level, experience,
			health, attack, defense, speed,
			is_active, created_at
		FROM cats
		WHERE id = $1
	`, id)

	return scanCat(row)
}

func (r *CatsRepo) ListByPlayer(ctx context.Context, playerID string) ([]cats.Cat, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return nil, nil
	}

	rows, err := q(ctx, r.db).QueryContext(ctx, `
		SELECT
			id, player_id,
			name, breed,
			level, experience,
			health, attack, defense, speed,
			is_active, created_at
		FROM cats
		WHERE player_id = $1
		ORDER BY created_at ASC
	`, playerID)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	defer rows.Close()

	out := make([]cats.Cat, 0)
	for rows.Next() {
		c, err := scanCatRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}

	return out, wrapStoreErr(rows.Err())
}

func (r *CatsRepo) GetActive(ctx context.Context, playerID string) (cats.Cat, error) {
	row := q(ctx, r.db).QueryRowContext(ctx, `
		SELECT
			id, player_id,
			name, breed,
			level, experience,
			health, attack, defense, speed,
			is_active, created_at
		FROM cats
		WHERE player_id = $1 AND is_active = TRUE
		LIMIT 1
	`, playerID)

	return scanCat(row)
}

func (r *CatsRepo) UpdateName(ctx context.Context, id, playerID, name string) error {
	res, err := q(ctx, r.db).ExecContext(ctx, `
		UPDATE cats SET name = $1 WHERE id = $2 AND player_id = $3
	`, name, id, playerID)
	if err != nil {
		return wrapStoreErr(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetActive: primero desactivar todos los gatos del jugador, después
// activar el elegido. El caller envuelve esto en WithinTx; acá ambos
// statements salen por el querier del contexto.
func (r *CatsRepo) SetActive(ctx context.Context, id, playerID string) error {
	qr := q(ctx, r.db)

	if _, err := qr.ExecContext(ctx, `
		UPDATE cats SET is_active = FALSE WHERE player_id = $1
	`, playerID); err != nil {
		return wrapStoreErr(err)
	}

	res, err := qr.ExecContext(ctx, `
		UPDATE cats SET is_active = TRUE WHERE id = $1 AND player_id = $2
	`, id, playerID)
	if err != nil {
		return wrapStoreErr(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCat(row *sql.Row) (cats.Cat, error) {
	c, err := scanInto(row)
	if err == sql.ErrNoRows {
		return cats.Cat{}, ErrNotFound
	}
	if err != nil {
		return cats.Cat{}, wrapStoreErr(err)
	}
	return c, nil
}

func scanCatRows(rows *sql.Rows) (cats.Cat, error) {
	c, err := scanInto(rows)
	if err != nil {
		return cats.Cat{}, wrapStoreErr(err)
	}
	return c, nil
}

func scanInto(s rowScanner) (cats.Cat, error) {
	var c cats.Cat
	err := s.Scan(
		&c.ID,
		&c.PlayerID,
		&c.Name,
		&c.Breed,
		&c.Level,
		&c.Experience,
		&c.Stats.Health,
		&c.Stats.Attack,
		&c.Stats.Defense,
		&c.Stats.Speed,
		&c.IsActive,
		&c.CreatedAt,
	)
	return c, err
}
