package memory

import (
	"context"
	"errors"
	"maps"
	"sort"
	"strings"
	"sync"

	"whiskerverse/internal/domain/inventory"
)

type slotKey struct {
	playerID string
	itemID   string
}

type inventoryRepo struct {
	mu    sync.RWMutex
	items map[string]inventory.Item
	slots map[slotKey]int
}

func NewInventoryRepo() inventory.Repository {
	return &inventoryRepo{
		items: make(map[string]inventory.Item),
		slots: make(map[slotKey]int),
	}
}

func (r *inventoryRepo) snapshot() func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	savedItems := maps.Clone(r.items)
	savedSlots := maps.Clone(r.slots)
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.items = savedItems
		r.slots = savedSlots
	}
}

func (r *inventoryRepo) CreateItem(ctx context.Context, it inventory.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(it.ID) == "" {
		return errors.New("item id required")
	}
	if _, exists := r.items[it.ID]; exists {
		return errors.New("item already exists")
	}
	r.items[it.ID] = it
	return nil
}

func (r *inventoryRepo) GetItem(ctx context.Context, itemID string) (inventory.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	it, ok := r.items[itemID]
	if !ok {
		return inventory.Item{}, ErrNotFound
	}
	return it, nil
}

func (r *inventoryRepo) ListByPlayer(ctx context.Context, playerID string) ([]inventory.PlayerItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]inventory.PlayerItem, 0)
	for k, qty := range r.slots {
		if k.playerID != playerID {
			continue
		}
		it, ok := r.items[k.itemID]
		if !ok {
			continue
		}
		out = append(out, inventory.PlayerItem{Item: it, Quantity: qty})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Item.Name < out[j].Item.Name
	})

	return out, nil
}

func (r *inventoryRepo) AddToPlayer(ctx context.Context, playerID, itemID string, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[itemID]; !ok {
		return ErrNotFound
	}
	r.slots[slotKey{playerID, itemID}] += qty
	return nil
}
