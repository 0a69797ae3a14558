package timers

import "context"

type Repository interface {
	Get(ctx context.Context, playerID, action string) (Timer, error)
	Upsert(ctx context.Context, t Timer) error
	Delete(ctx context.Context, playerID, action string) error
	ListByPlayer(ctx context.Context, playerID string) ([]Timer, error)

	// ResetAll pisa el next_available de TODOS los registros con el
	// epoch (todo queda disponible ya). Debe ser atómico en el store.
	ResetAll(ctx context.Context) error
}
