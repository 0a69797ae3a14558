package postgres

import (
	"context"
	"database/sql"
	"time"

	"whiskerverse/internal/domain/timers"
)

type TimersRepo struct {
	db *sql.DB
}

func NewTimersRepo(db *sql.DB) *TimersRepo {
	return &TimersRepo{db: db}
}

func (r *TimersRepo) Get(ctx context.Context, playerID, action string) (timers.Timer, error) {
	row := q(ctx, r.db).QueryRowContext(ctx, `
		SELECT player_id, action, next_available
		FROM timers
		WHERE player_id = $1 AND action = $2
	`, playerID, action)

	var t timers.Timer
	err := row.Scan(&t.PlayerID, &t.Action, &t.NextAvailable)
	if err == sql.ErrNoRows {
		return timers.Timer{}, ErrNotFound
	}
	if err != nil {
		return timers.Timer{}, wrapStoreErr(err)
	}
	return t, nil
}

func (r *TimersRepo) Upsert(ctx context.Context, t timers.Timer) error {
	_, err := q(ctx, r.db).ExecContext(ctx, `
		INSERT INTO timers (player_id, action, next_available)
		VALUES ($1, $2, $3)
		ON CONFLICT (player_id, action)
		DO UPDATE SET next_available = EXCLUDED.next_available
	`, t.PlayerID, t.Action, t.NextAvailable)
	return wrapStoreErr(err)
}

func (r *TimersRepo) Delete(ctx context.Context, playerID, action string) error {
	// Sin error si no existía.
	_, err := q(ctx, r.db).ExecContext(ctx, `
		DELETE FROM timers WHERE player_id = $1 AND action = $2
	`, playerID, action)
	return wrapStoreErr(err)
}

func (r *TimersRepo) ListByPlayer(ctx context.Context, playerID string) ([]timers.Timer, error) {
	rows, err := q(ctx, r.db).QueryContext(ctx, `
		SELECT player_id, action, next_available
		FROM timers
		WHERE player_id = $1
		ORDER BY action ASC
	`, playerID)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	defer rows.Close()

	out := make([]timers.Timer, 0)
	for rows.Next() {
		var t timers.Timer
		if err := rows.Scan(&t.PlayerID, &t.Action, &t.NextAvailable); err != nil {
			return nil, wrapStoreErr(err)
		}
		out = append(out, t)
	}

	return out, wrapStoreErr(rows.Err())
}

// ResetAll: un solo UPDATE al epoch, atómico en el store. No hace
// falta lock a nivel app.
func (r *TimersRepo) ResetAll(ctx context.Context) error {
	_, err := q(ctx, r.db).ExecContext(ctx, `
		UPDATE timers SET next_available = $1
	`, time.Unix(0, 0).UTC())
	return wrapStoreErr(err)
}
