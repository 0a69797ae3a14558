package memory

import (
	"context"
	"sync"

	"whiskerverse/internal/ports/storage"
)

type txCtxKey struct{}

// snapshotter la implementan los repos en memoria: snapshot copia el
// estado actual y devuelve el closure que lo restaura.
type snapshotter interface {
	snapshot() func()
}

// TxRunner en memoria: serializa los scopes con un mutex y toma un
// snapshot de cada repo al abrir el scope externo. Si fn falla (o
// entra en pánico) se restauran los snapshots, así el scope es
// todo-o-nada igual que en Postgres.
type TxRunner struct {
	mu     sync.Mutex
	stores []snapshotter
}

// NewTxRunner arma el runner sobre los repos dados. Los que no saben
// snapshot se ignoran.
func NewTxRunner(stores ...any) *TxRunner {
	r := &TxRunner{}
	for _, s := range stores {
		if snap, ok := s.(snapshotter); ok {
			r.stores = append(r.stores, snap)
		}
	}
	return r
}

func (r *TxRunner) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	// Scope anidado: ya estamos dentro del lock y del snapshot.
	if ctx.Value(txCtxKey{}) != nil {
		return fn(ctx)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	restores := make([]func(), 0, len(r.stores))
	for _, s := range r.stores {
		restores = append(restores, s.snapshot())
	}
	rollback := func() {
		for i := len(restores) - 1; i >= 0; i-- {
			restores[i]()
		}
	}

	defer func() {
		if p := recover(); p != nil {
			rollback()
			panic(p)
		}
		if err != nil {
			rollback()
		}
	}()

	return fn(context.WithValue(ctx, txCtxKey{}, struct{}{}))
}

var _ storage.TxRunner = (*TxRunner)(nil)
