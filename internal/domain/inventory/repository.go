package inventory

import "context"

type Repository interface {
	CreateItem(ctx context.Context, it Item) error
	GetItem(ctx context.Context, itemID string) (Item, error)
	ListByPlayer(ctx context.Context, playerID string) ([]PlayerItem, error)

	// AddToPlayer suma cantidad al slot (jugador, ítem), creándolo si
	// no existe (upsert de cantidad).
	AddToPlayer(ctx context.Context, playerID, itemID string, qty int) error
}
