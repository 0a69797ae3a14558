package players

import (
	"context"
	"errors"
	"strings"
	"time"

	"whiskerverse/internal/domain/catalog"
	"whiskerverse/internal/domain/cats"
	"whiskerverse/internal/domain/inventory"
	"whiskerverse/internal/ports/storage"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("player not found")
	ErrAlreadyStarted = errors.New("adventure already started")
)

type Service struct {
	repo Repository
	cats *cats.Service
	inv  *inventory.Service
	tx   storage.TxRunner
	now  func() time.Time
}

func NewService(repo Repository, catsSvc *cats.Service, invSvc *inventory.Service, tx storage.TxRunner) *Service {
	return &Service{
		repo: repo,
		cats: catsSvc,
		inv:  invSvc,
		tx:   tx,
		now:  time.Now,
	}
}

// Profile agrega todo lo que muestra la ficha del jugador.
type Profile struct {
	Player    Player
	ActiveCat *cats.Cat
	Cats      []cats.Cat
	Inventory []inventory.PlayerItem
}

// GetOrCreate busca el jugador o lo crea con los valores iniciales
// (nivel 1, 0 exp, 100 coins, Whiskerton).
func (s *Service) GetOrCreate(ctx context.Context, playerID, username string) (Player, error) {
	playerID = strings.TrimSpace(playerID)
	username = strings.TrimSpace(username)

	if playerID == "" || username == "" {
		return Player{}, ErrInvalidInput
	}

	p, err := s.repo.GetByID(ctx, playerID)
	if err == nil {
		return p, nil
	}
	if errors.Is(err, storage.ErrUnavailable) {
		return Player{}, err
	}

	p = Player{
		ID:              playerID,
		Username:        username,
		Level:           1,
		Experience:      0,
		Coins:           StartingCoins,
		CurrentLocation: StartingLocation,
		CreatedAt:       s.now(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return Player{}, err
	}
	return p, nil
}

// StartAdventure inicializa al jugador con su primer gato: crea (o
// busca) el jugador, genera un starter forzado a común, lo persiste y
// lo deja activo. Todo en una transacción: si algo falla no queda ni
// jugador ni gato a medias.
func (s *Service) StartAdventure(ctx context.Context, playerID, username, catName string) (Player, cats.Cat, error) {
	playerID = strings.TrimSpace(playerID)
	username = strings.TrimSpace(username)
	catName = strings.TrimSpace(catName)

	if playerID == "" || username == "" || catName == "" {
		return Player{}, cats.Cat{}, ErrInvalidInput
	}

	var (
		p       Player
		starter cats.Cat
	)

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		p, err = s.GetOrCreate(ctx, playerID, username)
		if err != nil {
			return err
		}

		existing, err := s.cats.ListByPlayer(ctx, playerID)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return ErrAlreadyStarted
		}

		wild, err := s.cats.GenerateWild(catalog.RarityCommon)
		if err != nil {
			return err
		}
		wild.Name = catName

		starter, err = s.cats.Capture(ctx, playerID, wild)
		if err != nil {
			return err
		}

		starter, err = s.cats.SetActive(ctx, starter.ID, playerID)
		return err
	})
	if err != nil {
		return Player{}, cats.Cat{}, err
	}

	return p, starter, nil
}

// GetProfile arma el perfil completo: jugador, gato activo, colección
// e inventario. Devuelve ErrNotFound si el jugador no empezó.
func (s *Service) GetProfile(ctx context.Context, playerID string) (Profile, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return Profile{}, ErrInvalidInput
	}

	p, err := s.repo.GetByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, storage.ErrUnavailable) {
			return Profile{}, err
		}
		return Profile{}, ErrNotFound
	}

	prof := Profile{Player: p}

	if active, err := s.cats.GetActive(ctx, playerID); err == nil {
		prof.ActiveCat = &active
	} else if errors.Is(err, storage.ErrUnavailable) {
		return Profile{}, err
	}

	prof.Cats, err = s.cats.ListByPlayer(ctx, playerID)
	if err != nil {
		return Profile{}, err
	}

	prof.Inventory, err = s.inv.ListByPlayer(ctx, playerID)
	if err != nil {
		return Profile{}, err
	}

	return prof, nil
}

// GrantExperience suma experiencia al jugador (a lo sumo un level-up
// por llamada, ver AddExperience) y persiste.
func (s *Service) GrantExperience(ctx context.Context, playerID string, amount int) (Player, bool, error) {
	if amount < 0 {
		return Player{}, false, ErrInvalidInput
	}

	p, err := s.get(ctx, playerID)
	if err != nil {
		return Player{}, false, err
	}

	leveledUp := p.AddExperience(amount)
	if err := s.repo.Update(ctx, p); err != nil {
		return Player{}, false, err
	}
	return p, leveledUp, nil
}

// AddCoins suma (o resta, con monto negativo) coins. El balance nunca
// queda bajo cero.
func (s *Service) AddCoins(ctx context.Context, playerID string, amount int) (Player, error) {
	p, err := s.get(ctx, playerID)
	if err != nil {
		return Player{}, err
	}

	if p.Coins+amount < 0 {
		return Player{}, ErrInvalidInput
	}

	p.Coins += amount
	if err := s.repo.Update(ctx, p); err != nil {
		return Player{}, err
	}
	return p, nil
}

// MoveTo cambia la ubicación actual del jugador.
func (s *Service) MoveTo(ctx context.Context, playerID, location string) (Player, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return Player{}, ErrInvalidInput
	}

	p, err := s.get(ctx, playerID)
	if err != nil {
		return Player{}, err
	}

	p.CurrentLocation = location
	if err := s.repo.Update(ctx, p); err != nil {
		return Player{}, err
	}
	return p, nil
}

func (s *Service) get(ctx context.Context, playerID string) (Player, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return Player{}, ErrInvalidInput
	}

	p, err := s.repo.GetByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, storage.ErrUnavailable) {
			return Player{}, err
		}
		return Player{}, ErrNotFound
	}
	return p, nil
}
