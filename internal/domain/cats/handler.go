package cats

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"whiskerverse/internal/middleware"
	"whiskerverse/internal/ports/storage"
)

// Cantidad de gatos por página en la ficha de colección.
const pageSize = 5

func RegisterRoutes(r chi.Router, svc *Service) {
	// Colección del jugador (paginada)
	r.Get("/me/cats", listCatsHandler(svc))

	r.Route("/cats", func(cr chi.Router) {
		cr.Post("/{catID}/activate", activateCatHandler(svc))
		cr.Patch("/{catID}/name", renameCatHandler(svc))
	})
}

type catResponse struct {
	ID         string    `json:"id"`
	PlayerID   string    `json:"player_id,omitempty"`
	Name       string    `json:"name"`
	Breed      string    `json:"breed"`
	Level      int       `json:"level"`
	Experience int       `json:"experience"`
	Health     int       `json:"health"`
	Attack     int       `json:"attack"`
	Defense    int       `json:"defense"`
	Speed      int       `json:"speed"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

type catPageResponse struct {
	Cats       []catResponse `json:"cats"`
	Page       int           `json:"page"`
	TotalPages int           `json:"total_pages"`
	TotalCats  int           `json:"total_cats"`
}

type renameCatRequest struct {
	Name string `json:"name"`
}

func listCatsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.PlayerID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		all, err := svc.ListByPlayer(r.Context(), claims.PlayerID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		page := 1
		if v := strings.TrimSpace(r.URL.Query().Get("page")); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				page = n
			}
		}

		totalPages := (len(all) + pageSize - 1) / pageSize
		if totalPages == 0 {
			totalPages = 1
		}
		if page > totalPages {
			page = totalPages
		}

		start := (page - 1) * pageSize
		end := start + pageSize
		if start > len(all) {
			start = len(all)
		}
		if end > len(all) {
			end = len(all)
		}

		out := make([]catResponse, 0, end-start)
		for _, c := range all[start:end] {
			out = append(out, toCatResponse(c))
		}

		writeJSON(w, http.StatusOK, catPageResponse{
			Cats:       out,
			Page:       page,
			TotalPages: totalPages,
			TotalCats:  len(all),
		})
	}
}

func activateCatHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.PlayerID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		catID := chi.URLParam(r, "catID")
		c, err := svc.SetActive(r.Context(), catID, claims.PlayerID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toCatResponse(c))
	}
}

func renameCatHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.PlayerID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req renameCatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		catID := chi.URLParam(r, "catID")
		c, err := svc.Rename(r.Context(), catID, claims.PlayerID, req.Name)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toCatResponse(c))
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "cat not found", http.StatusNotFound)
	case errors.Is(err, ErrNotOwner):
		http.Error(w, "you don't own this cat", http.StatusForbidden)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, "invalid input", http.StatusBadRequest)
	case errors.Is(err, storage.ErrUnavailable):
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toCatResponse(c Cat) catResponse {
	return catResponse{
		ID:         c.ID,
		PlayerID:   c.PlayerID,
		Name:       c.Name,
		Breed:      c.Breed,
		Level:      c.Level,
		Experience: c.Experience,
		Health:     c.Stats.Health,
		Attack:     c.Stats.Attack,
		Defense:    c.Stats.Defense,
		Speed:      c.Stats.Speed,
		IsActive:   c.IsActive,
		CreatedAt:  c.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
