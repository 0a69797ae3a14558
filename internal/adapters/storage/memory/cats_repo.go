package memory

import (
	"context"
	"errors"
	"maps"
	"sort"
	"strings"
	"sync"

	"whiskerverse/internal/domain/cats"
	"whiskerverse/internal/ports/storage"
)

// ErrNotFound alias del sentinel del port: los services matchean
// storage.ErrNotFound sin importar el adapter.
var ErrNotFound = storage.ErrNotFound

type catsRepo struct {
	mu   sync.RWMutex
	byID map[string]cats.Cat
}

func NewCatsRepo() cats.Repository {
	return &catsRepo{
		byID: make(map[string]cats.Cat),
	}
}

func (r *catsRepo) snapshot() func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	saved := maps.Clone(r.byID)
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.byID = saved
	}
}

func (r *catsRepo) Create(ctx context.Context, c cats.Cat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(c.ID) == "" {
		return errors.New("cat id required")
	}
	if _, exists := r.byID[c.ID]; exists {
		return errors.New("cat already exists")
	}
	r.byID[c.ID] = c
	return nil
}

func (r *catsRepo) GetByID(ctx context.Context, id string) (cats.Cat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return cats.Cat{}, ErrNotFound
	}
	return c, nil
}

func (r *catsRepo) ListByPlayer(ctx context.Context, playerID string) ([]cats.Cat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]cats.Cat, 0)
	for _, c := range r.byID {
		if c.PlayerID == playerID {
			out = append(out, c)
		}
	}

	// Orden estable por created_at asc (consistencia en dev/tests)
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (r *catsRepo) GetActive(ctx context.Context, playerID string) (cats.Cat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.byID {
		if c.PlayerID == playerID && c.IsActive {
			return c, nil
		}
	}
	return cats.Cat{}, ErrNotFound
}

func (r *catsRepo) Update(ctx context.Context, c cats.Cat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[c.ID]; !exists {
		return ErrNotFound
	}
	r.byID[c.ID] = c
	return nil
}

func (r *catsRepo) UpdateName(ctx context.Context, id, playerID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, exists := r.byID[id]
	if !exists || c.PlayerID != playerID {
		return ErrNotFound
	}
	c.Name = name
	r.byID[id] = c
	return nil
}

func (r *catsRepo) SetActive(ctx context.Context, id, playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	target, exists := r.byID[id]
	if !exists || target.PlayerID != playerID {
		return ErrNotFound
	}

	for cid, c := range r.byID {
		if c.PlayerID == playerID && c.IsActive {
			c.IsActive = false
			r.byID[cid] = c
		}
	}

	target.IsActive = true
	r.byID[id] = target
	return nil
}
