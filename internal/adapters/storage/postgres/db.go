package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"whiskerverse/internal/ports/storage"
)

// ErrNotFound alias del sentinel del port: los services matchean
// storage.ErrNotFound sin importar el adapter.
var ErrNotFound = storage.ErrNotFound

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	// defaults razonables (ajustable luego)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// EnsureSchema crea las tablas si no existen. El índice parcial sobre
// cats refuerza en el store el invariante "a lo sumo un gato activo
// por jugador".
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS players (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL,
			level INT NOT NULL DEFAULT 1,
			experience INT NOT NULL DEFAULT 0,
			coins INT NOT NULL DEFAULT 100,
			current_location TEXT NOT NULL DEFAULT 'Whiskerton',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS cats (
			id TEXT PRIMARY KEY,
			player_id TEXT REFERENCES players(id),
			name TEXT NOT NULL,
			breed TEXT NOT NULL,
			level INT NOT NULL DEFAULT 1,
			experience INT NOT NULL DEFAULT 0,
			health INT NOT NULL,
			attack INT NOT NULL,
			defense INT NOT NULL,
			speed INT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS cats_one_active_per_player
			ON cats (player_id) WHERE is_active`,
		`CREATE TABLE IF NOT EXISTS timers (
			player_id TEXT NOT NULL,
			action TEXT NOT NULL,
			next_available TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (player_id, action)
		)`,
		`CREATE TABLE IF NOT EXISTS items (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL,
			rarity TEXT NOT NULL DEFAULT 'common',
			value INT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS inventory (
			player_id TEXT NOT NULL,
			item_id TEXT NOT NULL REFERENCES items(id),
			quantity INT NOT NULL DEFAULT 1,
			PRIMARY KEY (player_id, item_id)
		)`,
	}

	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}
