package timers

import (
	"context"
	"errors"
	"strings"
	"time"

	"whiskerverse/internal/ports/storage"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
)

// Authorizer decide si un actor puede ejecutar operaciones admin
// (hoy: solo ResetAll). El service no conoce el admin id; recibe el
// predicado ya armado desde la config.
type Authorizer func(playerID string) bool

type Service struct {
	repo  Repository
	admin Authorizer
	now   func() time.Time
}

func NewService(repo Repository, admin Authorizer) *Service {
	if admin == nil {
		admin = func(string) bool { return false }
	}
	return &Service{
		repo:  repo,
		admin: admin,
		now:   time.Now,
	}
}

// IsAvailable responde si la acción está disponible: sin registro, o
// con next_available ya alcanzado.
func (s *Service) IsAvailable(ctx context.Context, playerID, action string) (bool, error) {
	t, err := s.repo.Get(ctx, playerID, action)
	if err != nil {
		// Solo el miss explícito significa "sin cooldown"; cualquier
		// otro error del repo se propaga.
		if errors.Is(err, storage.ErrNotFound) {
			return true, nil
		}
		return false, err
	}
	return !s.now().Before(t.NextAvailable), nil
}

// SecondsRemaining devuelve los segundos que faltan (0 si ya está
// disponible). Trunca hacia abajo para no desbloquear antes de tiempo.
func (s *Service) SecondsRemaining(ctx context.Context, playerID, action string) (int, error) {
	t, err := s.repo.Get(ctx, playerID, action)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}

	now := s.now()
	if !now.Before(t.NextAvailable) {
		return 0, nil
	}
	return int(t.NextAvailable.Sub(now).Seconds()), nil
}

// Arm activa el cooldown: next_available = now + seconds. Upsert
// idempotente sobre (jugador, acción).
func (s *Service) Arm(ctx context.Context, playerID, action string, seconds int) (time.Time, error) {
	playerID = strings.TrimSpace(playerID)
	action = strings.TrimSpace(action)

	if playerID == "" || action == "" || seconds < 0 {
		return time.Time{}, ErrInvalidInput
	}

	next := s.now().Add(time.Duration(seconds) * time.Second)
	err := s.repo.Upsert(ctx, Timer{
		PlayerID:      playerID,
		Action:        action,
		NextAvailable: next,
	})
	if err != nil {
		return time.Time{}, err
	}
	return next, nil
}

// Clear borra el registro. Sin error si no existía.
func (s *Service) Clear(ctx context.Context, playerID, action string) error {
	return s.repo.Delete(ctx, playerID, action)
}

// ListActive devuelve solo los cooldowns todavía corriendo del
// jugador. El orden no está especificado pero es estable para un
// snapshot dado.
func (s *Service) ListActive(ctx context.Context, playerID string) ([]ActiveTimer, error) {
	all, err := s.repo.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]ActiveTimer, 0, len(all))
	for _, t := range all {
		if !t.NextAvailable.After(now) {
			continue
		}
		out = append(out, ActiveTimer{
			Action:           t.Action,
			SecondsRemaining: int(t.NextAvailable.Sub(now).Seconds()),
			NextAvailable:    t.NextAvailable,
		})
	}
	return out, nil
}

// ResetAll resetea los cooldowns de TODOS los jugadores (operación
// admin, la única mutación cross-actor del sistema).
func (s *Service) ResetAll(ctx context.Context, actorID string) error {
	if !s.admin(actorID) {
		return ErrUnauthorized
	}
	return s.repo.ResetAll(ctx)
}
