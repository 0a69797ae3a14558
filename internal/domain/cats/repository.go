package cats

import "context"

type Repository interface {
	Create(ctx context.Context, c Cat) error
	GetByID(ctx context.Context, id string) (Cat, error)
	ListByPlayer(ctx context.Context, playerID string) ([]Cat, error)
	GetActive(ctx context.Context, playerID string) (Cat, error)
	Update(ctx context.Context, c Cat) error
	UpdateName(ctx context.Context, id, playerID, name string) error

	// SetActive desactiva todos los gatos del jugador y activa el
	// indicado. Las dos escrituras deben ejecutarse dentro de la
	// transacción del contexto (ver ports/storage.TxRunner).
	SetActive(ctx context.Context, id, playerID string) error
}
