package inventory

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"whiskerverse/internal/ports/storage"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("item not found")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// DefineItem registra una definición de ítem nueva.
func (s *Service) DefineItem(ctx context.Context, in Item) (Item, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || in.Type == "" {
		return Item{}, ErrInvalidInput
	}

	in.ID = uuid.NewString()
	if err := s.repo.CreateItem(ctx, in); err != nil {
		return Item{}, err
	}
	return in, nil
}

// Grant entrega qty unidades de un ítem a un jugador.
func (s *Service) Grant(ctx context.Context, playerID, itemID string, qty int) error {
	playerID = strings.TrimSpace(playerID)
	itemID = strings.TrimSpace(itemID)

	if playerID == "" || itemID == "" || qty <= 0 {
		return ErrInvalidInput
	}

	if _, err := s.repo.GetItem(ctx, itemID); err != nil {
		if errors.Is(err, storage.ErrUnavailable) {
			return err
		}
		return ErrNotFound
	}

	return s.repo.AddToPlayer(ctx, playerID, itemID, qty)
}

func (s *Service) ListByPlayer(ctx context.Context, playerID string) ([]PlayerItem, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByPlayer(ctx, playerID)
}
