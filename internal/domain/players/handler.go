package players

import (
	"encoding/json"
	"errors"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"whiskerverse/internal/domain/cats"
	"whiskerverse/internal/domain/timers"
	"whiskerverse/internal/middleware"
	"whiskerverse/internal/ports/storage"
)

const (
	encounterAction = "encounter"

	// Chance fija de captura. Es política del comando, no del
	// Collection Manager: el service solo persiste capturas ya
	// decididas.
	catchChance = 0.5
)

// EncounterOptions configura el flujo de encuentros.
type EncounterOptions struct {
	// CooldownSeconds resuelve el cooldown de una acción (viene de la
	// config). nil => sin cooldown.
	CooldownSeconds func(action string) int

	// CatchRoll es el roll U[0,1) de captura; se pinea en tests.
	CatchRoll func() float64
}

func RegisterRoutes(r chi.Router, svc *Service, catsSvc *cats.Service, timersSvc *timers.Service, opts EncounterOptions) {
	if opts.CatchRoll == nil {
		opts.CatchRoll = rand.Float64
	}
	if opts.CooldownSeconds == nil {
		opts.CooldownSeconds = func(string) int { return 0 }
	}

	r.Post("/adventure/start", startAdventureHandler(svc))
	r.Get("/me/profile", profileHandler(svc))

	r.Route("/encounters", func(er chi.Router) {
		er.Post("/", encounterHandler(svc, catsSvc, timersSvc, opts))
		er.Post("/catch", catchHandler(svc, catsSvc, opts))
	})
}

type startAdventureRequest struct {
	CatName string `json:"cat_name"`
}

type playerResponse struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	Level           int       `json:"level"`
	Experience      int       `json:"experience"`
	NextLevelAt     int       `json:"next_level_at"`
	Coins           int       `json:"coins"`
	CurrentLocation string    `json:"current_location"`
	CreatedAt       time.Time `json:"created_at"`
}

type ownedCatResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Breed      string `json:"breed"`
	Level      int    `json:"level"`
	Experience int    `json:"experience"`
	Health     int    `json:"health"`
	Attack     int    `json:"attack"`
	Defense    int    `json:"defense"`
	Speed      int    `json:"speed"`
	IsActive   bool   `json:"is_active"`
}

type wildCatResponse struct {
	Name    string `json:"name"`
	Breed   string `json:"breed"`
	Level   int    `json:"level"`
	Health  int    `json:"health"`
	Attack  int    `json:"attack"`
	Defense int    `json:"defense"`
	Speed   int    `json:"speed"`
}

type profileResponse struct {
	Player    playerResponse     `json:"player"`
	ActiveCat *ownedCatResponse  `json:"active_cat,omitempty"`
	TotalCats int                `json:"total_cats"`
	Inventory []inventoryItemRow `json:"inventory"`
}

type inventoryItemRow struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Rarity   string `json:"rarity"`
	Quantity int    `json:"quantity"`
}

type startAdventureResponse struct {
	Player playerResponse   `json:"player"`
	Cat    ownedCatResponse `json:"cat"`
}

type encounterResponse struct {
	WildCat       wildCatResponse `json:"wild_cat"`
	NextAvailable time.Time       `json:"next_available"`
}

type catchRequest struct {
	WildCat wildCatResponse `json:"wild_cat"`
}

type catchResponse struct {
	Caught  bool              `json:"caught"`
	Message string            `json:"message"`
	Cat     *ownedCatResponse `json:"cat,omitempty"`
}

func startAdventureHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.PlayerID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// El body es opcional: sin nombre se usa el default.
		var req startAdventureRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		catName := strings.TrimSpace(req.CatName)
		if catName == "" {
			catName = claims.Username + "'s First Cat"
		}

		p, starter, err := svc.StartAdventure(r.Context(), claims.PlayerID, claims.Username, catName)
		if err != nil {
			if errors.Is(err, ErrAlreadyStarted) {
				http.Error(w, "adventure already started", http.StatusConflict)
				return
			}
			writePlayerError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, startAdventureResponse{
			Player: toPlayerResponse(p),
			Cat:    toOwnedCatResponse(starter),
		})
	}
}

func profileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.PlayerID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		prof, err := svc.GetProfile(r.Context(), claims.PlayerID)
		if err != nil {
			writePlayerError(w, err)
			return
		}

		resp := profileResponse{
			Player:    toPlayerResponse(prof.Player),
			TotalCats: len(prof.Cats),
			Inventory: make([]inventoryItemRow, 0, len(prof.Inventory)),
		}
		if prof.ActiveCat != nil {
			ac := toOwnedCatResponse(*prof.ActiveCat)
			resp.ActiveCat = &ac
		}
		for _, pi := range prof.Inventory {
			resp.Inventory = append(resp.Inventory, inventoryItemRow{
				Name:     pi.Item.Name,
				Type:     string(pi.Item.Type),
				Rarity:   pi.Item.Rarity,
				Quantity: pi.Quantity,
			})
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// encounterHandler: requiere aventura empezada y gato activo, chequea
// el cooldown, genera el gato salvaje y arma el cooldown.
func encounterHandler(svc *Service, catsSvc *cats.Service, timersSvc *timers.Service, opts EncounterOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.PlayerID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		prof, err := svc.GetProfile(r.Context(), claims.PlayerID)
		if err != nil {
			writePlayerError(w, err)
			return
		}
		if prof.ActiveCat == nil {
			http.Error(w, "you need an active cat to go on encounters", http.StatusConflict)
			return
		}

		available, err := timersSvc.IsAvailable(r.Context(), claims.PlayerID, encounterAction)
		if err != nil {
			writePlayerError(w, err)
			return
		}
		if !available {
			remaining, _ := timersSvc.SecondsRemaining(r.Context(), claims.PlayerID, encounterAction)
			w.Header().Set("Retry-After", strconv.Itoa(remaining))
			http.Error(w, "encounter on cooldown", http.StatusTooManyRequests)
			return
		}

		wild, err := catsSvc.GenerateWild("")
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		next, err := timersSvc.Arm(r.Context(), claims.PlayerID, encounterAction, opts.CooldownSeconds(encounterAction))
		if err != nil {
			writePlayerError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, encounterResponse{
			WildCat:       toWildCatResponse(wild),
			NextAvailable: next,
		})
	}
}

// catchHandler aplica la chance fija de captura y, si sale, captura el
// gato a nombre del jugador.
func catchHandler(svc *Service, catsSvc *cats.Service, opts EncounterOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.PlayerID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req catchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.WildCat.Breed) == "" {
			http.Error(w, "wild_cat.breed required", http.StatusBadRequest)
			return
		}

		prof, err := svc.GetProfile(r.Context(), claims.PlayerID)
		if err != nil {
			writePlayerError(w, err)
			return
		}

		wild := cats.Cat{
			Name:       prof.Player.Username + "'s " + req.WildCat.Breed,
			Breed:      req.WildCat.Breed,
			Level:      req.WildCat.Level,
			Experience: 0,
			Stats: cats.Stats{
				Health:  req.WildCat.Health,
				Attack:  req.WildCat.Attack,
				Defense: req.WildCat.Defense,
				Speed:   req.WildCat.Speed,
			},
		}

		// Se valida el payload ANTES del roll: un gato fabricado se
		// rechaza siempre, no solo cuando el roll sale captura.
		if err := catsSvc.ValidateWild(wild); err != nil {
			writePlayerError(w, err)
			return
		}

		if opts.CatchRoll() >= catchChance {
			writeJSON(w, http.StatusOK, catchResponse{
				Caught:  false,
				Message: "Oh no! The cat ran away!",
			})
			return
		}

		caught, err := catsSvc.Capture(r.Context(), claims.PlayerID, wild)
		if err != nil {
			writePlayerError(w, err)
			return
		}

		cr := toOwnedCatResponse(caught)
		writeJSON(w, http.StatusCreated, catchResponse{
			Caught:  true,
			Message: "Success! You caught the " + caught.Breed + "!",
			Cat:     &cr,
		})
	}
}

func writePlayerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "you haven't started your adventure yet", http.StatusNotFound)
	case errors.Is(err, ErrInvalidInput) || errors.Is(err, cats.ErrInvalidInput):
		http.Error(w, "invalid input", http.StatusBadRequest)
	case errors.Is(err, storage.ErrUnavailable):
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toPlayerResponse(p Player) playerResponse {
	return playerResponse{
		ID:              p.ID,
		Username:        p.Username,
		Level:           p.Level,
		Experience:      p.Experience,
		NextLevelAt:     p.Level * LevelThreshold,
		Coins:           p.Coins,
		CurrentLocation: p.CurrentLocation,
		CreatedAt:       p.CreatedAt,
	}
}

func toOwnedCatResponse(c cats.Cat) ownedCatResponse {
	return ownedCatResponse{
		ID:         c.ID,
		Name:       c.Name,
		Breed:      c.Breed,
		Level:      c.Level,
		Experience: c.Experience,
		Health:     c.Stats.Health,
		Attack:     c.Stats.Attack,
		Defense:    c.Stats.Defense,
		Speed:      c.Stats.Speed,
		IsActive:   c.IsActive,
	}
}

func toWildCatResponse(c cats.Cat) wildCatResponse {
	return wildCatResponse{
		Name:    c.Name,
		Breed:   c.Breed,
		Level:   c.Level,
		Health:  c.Stats.Health,
		Attack:  c.Stats.Attack,
		Defense: c.Stats.Defense,
		Speed:   c.Stats.Speed,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

