package cats

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"whiskerverse/internal/domain/catalog"
	"whiskerverse/internal/ports/storage"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("cat not found")
	ErrNotOwner     = errors.New("you don't own this cat")
)

type Service struct {
	repo Repository
	gen  *Generator
	tx   storage.TxRunner
	now  func() time.Time
}

func NewService(repo Repository, gen *Generator, tx storage.TxRunner) *Service {
	return &Service{
		repo: repo,
		gen:  gen,
		tx:   tx,
		now:  time.Now,
	}
}

// GenerateWild crea un gato salvaje sin persistirlo. Rarity vacía =
// sortear tier.
func (s *Service) GenerateWild(rarity catalog.Rarity) (Cat, error) {
	return s.gen.Generate(rarity)
}

// Capture asigna el gato salvaje al jugador y lo persiste. La chance
// de captura (50%) es política del caller: acá ya se decidió atrapar.
func (s *Service) Capture(ctx context.Context, playerID string, wild Cat) (Cat, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return Cat{}, ErrInvalidInput
	}
	if wild.Owned() {
		return Cat{}, ErrInvalidInput
	}
	if strings.TrimSpace(wild.Breed) == "" {
		return Cat{}, ErrInvalidInput
	}
	if wild.Level < 1 {
		wild.Level = 1
	}

	// El payload del gato salvaje viene del cliente: solo se persiste
	// si el generador pudo haberlo producido.
	if err := s.gen.ValidateWild(wild); err != nil {
		return Cat{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	wild.ID = uuid.NewString()
	wild.PlayerID = playerID
	wild.IsActive = false
	wild.CreatedAt = s.now()

	if err := s.repo.Create(ctx, wild); err != nil {
		return Cat{}, err
	}
	return wild, nil
}

// ValidateWild chequea que el payload de un gato salvaje sea uno que
// el generador pudo haber producido. Los handlers lo llaman antes de
// decidir la captura para rechazar payloads fabricados con 400.
func (s *Service) ValidateWild(wild Cat) error {
	if wild.Level < 1 {
		wild.Level = 1
	}
	if err := s.gen.ValidateWild(wild); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

// Rename cambia el nombre si el gato pertenece al jugador. No toca el
// flag de activo.
func (s *Service) Rename(ctx context.Context, catID, playerID, newName string) (Cat, error) {
	catID = strings.TrimSpace(catID)
	playerID = strings.TrimSpace(playerID)
	newName = strings.TrimSpace(newName)

	if catID == "" || playerID == "" || newName == "" {
		return Cat{}, ErrInvalidInput
	}

	c, err := s.owned(ctx, catID, playerID)
	if err != nil {
		return Cat{}, err
	}

	if err := s.repo.UpdateName(ctx, catID, playerID, newName); err != nil {
		return Cat{}, err
	}

	c.Name = newName
	return c, nil
}

// SetActive cambia el gato activo del jugador. Desactivar el resto y
// activar el elegido corre en una sola transacción: dos switches
// concurrentes del mismo jugador no pueden dejar dos activos.
func (s *Service) SetActive(ctx context.Context, catID, playerID string) (Cat, error) {
	catID = strings.TrimSpace(catID)
	playerID = strings.TrimSpace(playerID)

	if catID == "" || playerID == "" {
		return Cat{}, ErrInvalidInput
	}

	c, err := s.owned(ctx, catID, playerID)
	if err != nil {
		return Cat{}, err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		return s.repo.SetActive(ctx, catID, playerID)
	})
	if err != nil {
		return Cat{}, err
	}

	c.IsActive = true
	return c, nil
}

// GrantExperience suma experiencia al gato y persiste el resultado.
// Devuelve el gato actualizado y si subió de nivel.
func (s *Service) GrantExperience(ctx context.Context, catID, playerID string, amount int) (Cat, bool, error) {
	if amount < 0 {
		return Cat{}, false, ErrInvalidInput
	}

	c, err := s.owned(ctx, catID, playerID)
	if err != nil {
		return Cat{}, false, err
	}

	leveledUp := c.AddExperience(amount)
	if err := s.repo.Update(ctx, c); err != nil {
		return Cat{}, false, err
	}
	return c, leveledUp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Cat, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrUnavailable) {
			return Cat{}, err
		}
		return Cat{}, ErrNotFound
	}
	return c, nil
}

func (s *Service) ListByPlayer(ctx context.Context, playerID string) ([]Cat, error) {
	return s.repo.ListByPlayer(ctx, playerID)
}

// GetActive devuelve el gato activo del jugador, o ErrNotFound si no
// tiene ninguno activo.
func (s *Service) GetActive(ctx context.Context, playerID string) (Cat, error) {
	c, err := s.repo.GetActive(ctx, playerID)
	if err != nil {
		if errors.Is(err, storage.ErrUnavailable) {
			return Cat{}, err
		}
		return Cat{}, ErrNotFound
	}
	return c, nil
}

// owned busca el gato y valida pertenencia.
func (s *Service) owned(ctx context.Context, catID, playerID string) (Cat, error) {
	c, err := s.repo.GetByID(ctx, catID)
	if err != nil {
		if errors.Is(err, storage.ErrUnavailable) {
			return Cat{}, err
		}
		return Cat{}, ErrNotFound
	}
	if c.PlayerID != playerID {
		return Cat{}, ErrNotOwner
	}
	return c, nil
}
