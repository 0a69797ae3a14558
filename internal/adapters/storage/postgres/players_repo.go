package postgres

import (
	"context"
	"database/sql"
	"strings"

	"whiskerverse/internal/domain/players"
)

type PlayersRepo struct {
	db *sql.DB
}

func NewPlayersRepo(db *sql.DB) *PlayersRepo {
	return &PlayersRepo{db: db}
}

func (r *PlayersRepo) Create(ctx context.Context, p players.Player) error {
	_, err := q(ctx, r.db).ExecContext(ctx, `
		INSERT INTO players (
			id, username, level, experience, coins, current_location, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		p.ID,
		p.Username,
		p.Level,
		p.Experience,
		p.Coins,
		p.CurrentLocation,
		p.CreatedAt,
	)
	return wrapStoreErr(err)
}

func (r *PlayersRepo) GetByID(ctx context.Context, id string) (players.Player, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return players.Player{}, ErrNotFound
	}

	row := q(ctx, r.db).QueryRowContext(ctx, `
		SELECT id, username, level, experience, coins, current_location, created_at
		FROM players
		WHERE id = $1
	`, id)

	var p players.Player
	err := row.Scan(
		&p.ID,
		&p.Username,
		&p.Level,
		&p.Experience,
		&p.Coins,
		&p.CurrentLocation,
		&p.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return players.Player{}, ErrNotFound
	}
	if err != nil {
		return players.Player{}, wrapStoreErr(err)
	}
	return p, nil
}

func (r *PlayersRepo) Update(ctx context.Context, p players.Player) error {
	res, err := q(ctx, r.db).ExecContext(ctx, `
		UPDATE players
		SET
			username = $2,
			level = $3,
			experience = $4,
			coins = $5,
			current_location = $6
		WHERE id = $1
	`,
		p.ID,
		p.Username,
		p.Level,
		p.Experience,
		p.Coins,
		p.CurrentLocation,
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
