package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"whiskerverse/internal/domain/cats"
	"whiskerverse/internal/domain/players"
)

func TestWithinTx_RollbackOnError(t *testing.T) {
	playersRepo := NewPlayersRepo()
	catsRepo := NewCatsRepo()
	tx := NewTxRunner(playersRepo, catsRepo)

	ctx := context.Background()
	boom := errors.New("boom")

	err := tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := playersRepo.Create(ctx, players.Player{ID: "p1", Username: "misha", Level: 1}); err != nil {
			return err
		}
		if err := catsRepo.Create(ctx, cats.Cat{ID: "c1", PlayerID: "p1", Breed: "Tabby", Level: 1}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithinTx err = %v, quería boom", err)
	}

	// Nada del scope fallido debe quedar visible.
	if _, err := playersRepo.GetByID(ctx, "p1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("player p1 sobrevivió al rollback: err = %v", err)
	}
	if _, err := catsRepo.GetByID(ctx, "c1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("cat c1 sobrevivió al rollback: err = %v", err)
	}
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	playersRepo := NewPlayersRepo()
	tx := NewTxRunner(playersRepo)

	ctx := context.Background()
	err := tx.WithinTx(ctx, func(ctx context.Context) error {
		return playersRepo.Create(ctx, players.Player{ID: "p1", Username: "misha", Level: 1})
	})
	if err != nil {
		t.Fatalf("WithinTx: %v", err)
	}

	if _, err := playersRepo.GetByID(ctx, "p1"); err != nil {
		t.Fatalf("GetByID tras commit: %v", err)
	}
}

func TestWithinTx_NestedScopeJoins(t *testing.T) {
	playersRepo := NewPlayersRepo()
	tx := NewTxRunner(playersRepo)

	ctx := context.Background()
	boom := errors.New("boom")

	err := tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := playersRepo.Create(ctx, players.Player{ID: "p1", Username: "misha", Level: 1}); err != nil {
			return err
		}
		// El scope anidado se une al externo; su escritura cae con el
		// rollback del externo.
		if err := tx.WithinTx(ctx, func(ctx context.Context) error {
			return playersRepo.Create(ctx, players.Player{ID: "p2", Username: "nube", Level: 1})
		}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithinTx err = %v, quería boom", err)
	}

	if _, err := playersRepo.GetByID(ctx, "p1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("p1 sobrevivió al rollback: err = %v", err)
	}
	if _, err := playersRepo.GetByID(ctx, "p2"); !errors.Is(err, ErrNotFound) {
		t.Errorf("p2 (scope anidado) sobrevivió al rollback: err = %v", err)
	}
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	playersRepo := NewPlayersRepo()
	tx := NewTxRunner(playersRepo)

	ctx := context.Background()
	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("el pánico debería propagarse")
			}
		}()
		_ = tx.WithinTx(ctx, func(ctx context.Context) error {
			if err := playersRepo.Create(ctx, players.Player{ID: "p1", Username: "misha", Level: 1}); err != nil {
				return err
			}
			panic("boom")
		})
	}()

	if _, err := playersRepo.GetByID(ctx, "p1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("p1 sobrevivió al pánico: err = %v", err)
	}

	// El lock debe quedar libre tras el pánico.
	done := make(chan struct{})
	go func() {
		_ = tx.WithinTx(ctx, func(ctx context.Context) error { return nil })
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("el runner quedó trabado tras el pánico")
	}
}
