package timers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"whiskerverse/internal/middleware"
	"whiskerverse/internal/ports/storage"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/me/timers", listTimersHandler(svc))
	r.Post("/admin/timers/reset", resetTimersHandler(svc))
}

type activeTimerResponse struct {
	Action           string    `json:"action"`
	SecondsRemaining int       `json:"seconds_remaining"`
	NextAvailable    time.Time `json:"next_available"`
}

type timerListResponse struct {
	Timers []activeTimerResponse `json:"timers"`
}

func listTimersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.PlayerID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		active, err := svc.ListActive(r.Context(), claims.PlayerID)
		if err != nil {
			writeTimerError(w, err)
			return
		}

		resp := timerListResponse{Timers: make([]activeTimerResponse, 0, len(active))}
		for _, t := range active {
			resp.Timers = append(resp.Timers, activeTimerResponse{
				Action:           t.Action,
				SecondsRemaining: t.SecondsRemaining,
				NextAvailable:    t.NextAvailable,
			})
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func resetTimersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.PlayerID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.ResetAll(r.Context(), claims.PlayerID); err != nil {
			writeTimerError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
	}
}

func writeTimerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		http.Error(w, "admin only", http.StatusForbidden)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, "invalid input", http.StatusBadRequest)
	case errors.Is(err, storage.ErrUnavailable):
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
