package inventory

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"whiskerverse/internal/middleware"
	"whiskerverse/internal/ports/storage"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/me/inventory", listInventoryHandler(svc))
}

type playerItemResponse struct {
	ItemID      string `json:"item_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type"`
	Rarity      string `json:"rarity"`
	Quantity    int    `json:"quantity"`
}

type inventoryResponse struct {
	Items []playerItemResponse `json:"items"`
}

func listInventoryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.PlayerID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByPlayer(r.Context(), claims.PlayerID)
		if err != nil {
			if errors.Is(err, storage.ErrUnavailable) {
				http.Error(w, "store unavailable", http.StatusServiceUnavailable)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		resp := inventoryResponse{Items: make([]playerItemResponse, 0, len(items))}
		for _, pi := range items {
			resp.Items = append(resp.Items, playerItemResponse{
				ItemID:      pi.Item.ID,
				Name:        pi.Item.Name,
				Description: pi.Item.Description,
				Type:        string(pi.Item.Type),
				Rarity:      pi.Item.Rarity,
				Quantity:    pi.Quantity,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
