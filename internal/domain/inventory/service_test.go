package inventory

import (
	"context"
	"errors"
	"testing"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	items map[string]Item
	owned map[string]map[string]int
}

func newTestRepo() *testRepo {
	return &testRepo{
		items: map[string]Item{},
		owned: map[string]map[string]int{},
	}
}

func (r *testRepo) CreateItem(ctx context.Context, it Item) error {
	r.items[it.ID] = it
	return nil
}

func (r *testRepo) GetItem(ctx context.Context, itemID string) (Item, error) {
	it, ok := r.items[itemID]
	if !ok {
		return Item{}, errRepoNotFound
	}
	return it, nil
}

func (r *testRepo) ListByPlayer(ctx context.Context, playerID string) ([]PlayerItem, error) {
	out := make([]PlayerItem, 0)
	for itemID, qty := range r.owned[playerID] {
		out = append(out, PlayerItem{Item: r.items[itemID], Quantity: qty})
	}
	return out, nil
}

func (r *testRepo) AddToPlayer(ctx context.Context, playerID, itemID string, qty int) error {
	if r.owned[playerID] == nil {
		r.owned[playerID] = map[string]int{}
	}
	r.owned[playerID][itemID] += qty
	return nil
}

// -------------------------
// Tests
// -------------------------

func TestService_DefineItem(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	it, err := svc.DefineItem(context.Background(), Item{
		Name:   "  Catnip  ",
		Type:   TypePotion,
		Rarity: "common",
		Value:  10,
	})
	if err != nil {
		t.Fatalf("DefineItem returned error: %v", err)
	}
	if it.ID == "" {
		t.Fatalf("expected generated id")
	}
	if it.Name != "Catnip" {
		t.Fatalf("expected trimmed name, got %q", it.Name)
	}
}

func TestService_DefineItem_RequiresNameAndType(t *testing.T) {
	svc := NewService(newTestRepo())

	if _, err := svc.DefineItem(context.Background(), Item{Type: TypePotion}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without name, got %v", err)
	}
	if _, err := svc.DefineItem(context.Background(), Item{Name: "Catnip"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without type, got %v", err)
	}
}

func TestService_Grant_AccumulatesQuantity(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	it, err := svc.DefineItem(context.Background(), Item{Name: "Yarn Ball", Type: TypeMisc})
	if err != nil {
		t.Fatalf("DefineItem returned error: %v", err)
	}

	if err := svc.Grant(context.Background(), "player-1", it.ID, 2); err != nil {
		t.Fatalf("Grant returned error: %v", err)
	}
	if err := svc.Grant(context.Background(), "player-1", it.ID, 3); err != nil {
		t.Fatalf("Grant returned error: %v", err)
	}

	items, err := svc.ListByPlayer(context.Background(), "player-1")
	if err != nil {
		t.Fatalf("ListByPlayer returned error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 inventory slot, got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Fatalf("expected accumulated quantity 5, got %d", items[0].Quantity)
	}
}

func TestService_Grant_UnknownItem(t *testing.T) {
	svc := NewService(newTestRepo())

	if err := svc.Grant(context.Background(), "player-1", "nope", 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_Grant_RejectsNonPositiveQty(t *testing.T) {
	svc := NewService(newTestRepo())

	if err := svc.Grant(context.Background(), "player-1", "item-1", 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
