package postgres

import (
	"context"
	"database/sql"

	"whiskerverse/internal/domain/inventory"
)

type InventoryRepo struct {
	db *sql.DB
}

func NewInventoryRepo(db *sql.DB) *InventoryRepo {
	return &InventoryRepo{db: db}
}

func (r *InventoryRepo) CreateItem(ctx context.Context, it inventory.Item) error {
	_, err := q(ctx, r.db).ExecContext(ctx, `
		INSERT INTO items (id, name, description, type, rarity, value)
		VALUES ($1,$2,$3,$4,$5,$6)
	`,
		it.ID,
		it.Name,
		it.Description,
		it.Type,
		it.Rarity,
		it.Value,
	)
	return wrapStoreErr(err)
}

func (r *InventoryRepo) GetItem(ctx context.Context, itemID string) (inventory.Item, error) {
	row := q(ctx, r.db).QueryRowContext(ctx, `
		SELECT id, name, description, type, rarity, value
		FROM items
		WHERE id = $1
	`, itemID)

	var it inventory.Item
	err := row.Scan(&it.ID, &it.Name, &it.Description, &it.Type, &it.Rarity, &it.Value)
	if err == sql.ErrNoRows {
		return inventory.Item{}, ErrNotFound
	}
	if err != nil {
		return inventory.Item{}, wrapStoreErr(err)
	}
	return it, nil
}

func (r *InventoryRepo) ListByPlayer(ctx context.Context, playerID string) ([]inventory.PlayerItem, error) {
	rows, err := q(ctx, r.db).QueryContext(ctx, `
		SELECT i.id, i.name, i.description, i.type, i.rarity, i.value, inv.quantity
		FROM inventory inv
		JOIN items i ON inv.item_id = i.id
		WHERE inv.player_id = $1
		ORDER BY i.name ASC
	`, playerID)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	defer rows.Close()

	out := make([]inventory.PlayerItem, 0)
	for rows.Next() {
		var pi inventory.PlayerItem
		if err := rows.Scan(
			&pi.Item.ID,
			&pi.Item.Name,
			&pi.Item.Description,
			&pi.Item.Type,
			&pi.Item.Rarity,
			&pi.Item.Value,
			&pi.Quantity,
		); err != nil {
			return nil, wrapStoreErr(err)
		}
		out = append(out, pi)
	}

	return out, wrapStoreErr(rows.Err())
}

func (r *InventoryRepo) AddToPlayer(ctx context.Context, playerID, itemID string, qty int) error {
	_, err := q(ctx, r.db).ExecContext(ctx, `
		INSERT INTO inventory (player_id, item_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (player_id, item_id)
		DO UPDATE SET quantity = inventory.quantity + EXCLUDED.quantity
	`, playerID, itemID, qty)
	return wrapStoreErr(err)
}
