package memory

import (
	"context"
	"maps"
	"sort"
	"sync"
	"time"

	"whiskerverse/internal/domain/timers"
)

type timerKey struct {
	playerID string
	action   string
}

type timersRepo struct {
	mu    sync.RWMutex
	byKey map[timerKey]timers.Timer
}

func NewTimersRepo() timers.Repository {
	return &timersRepo{
		byKey: make(map[timerKey]timers.Timer),
	}
}

func (r *timersRepo) snapshot() func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	saved := maps.Clone(r.byKey)
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.byKey = saved
	}
}

func (r *timersRepo) Get(ctx context.Context, playerID, action string) (timers.Timer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byKey[timerKey{playerID, action}]
	if !ok {
		return timers.Timer{}, ErrNotFound
	}
	return t, nil
}

func (r *timersRepo) Upsert(ctx context.Context, t timers.Timer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byKey[timerKey{t.PlayerID, t.Action}] = t
	return nil
}

func (r *timersRepo) Delete(ctx context.Context, playerID, action string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byKey, timerKey{playerID, action})
	return nil
}

func (r *timersRepo) ListByPlayer(ctx context.Context, playerID string) ([]timers.Timer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]timers.Timer, 0)
	for k, t := range r.byKey {
		if k.playerID == playerID {
			out = append(out, t)
		}
	}

	// Orden estable por acción (el orden no es contrato, la
	// estabilidad sí)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Action < out[j].Action
	})

	return out, nil
}

func (r *timersRepo) ResetAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	epoch := time.Unix(0, 0).UTC()
	for k, t := range r.byKey {
		t.NextAvailable = epoch
		r.byKey[k] = t
	}
	return nil
}
