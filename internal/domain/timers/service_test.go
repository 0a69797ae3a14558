package timers

import (
	"context"
	"errors"
	"testing"
	"time"

	"whiskerverse/internal/ports/storage"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testKey struct {
	playerID string
	action   string
}

type testRepo struct {
	byKey map[testKey]Timer
}

func newTestRepo() *testRepo {
	return &testRepo{byKey: map[testKey]Timer{}}
}

func (r *testRepo) Get(ctx context.Context, playerID, action string) (Timer, error) {
	t, ok := r.byKey[testKey{playerID, action}]
	if !ok {
		return Timer{}, storage.ErrNotFound
	}
	return t, nil
}

func (r *testRepo) Upsert(ctx context.Context, t Timer) error {
	r.byKey[testKey{t.PlayerID, t.Action}] = t
	return nil
}

func (r *testRepo) Delete(ctx context.Context, playerID, action string) error {
	delete(r.byKey, testKey{playerID, action})
	return nil
}

func (r *testRepo) ListByPlayer(ctx context.Context, playerID string) ([]Timer, error) {
	out := make([]Timer, 0)
	for k, t := range r.byKey {
		if k.playerID == playerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *testRepo) ResetAll(ctx context.Context) error {
	epoch := time.Unix(0, 0).UTC()
	for k, t := range r.byKey {
		t.NextAvailable = epoch
		r.byKey[k] = t
	}
	return nil
}

func testService(repo Repository, admin Authorizer) (*Service, time.Time) {
	svc := NewService(repo, admin)
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	return svc, now
}

// -------------------------
// Tests
// -------------------------

func TestService_NoRecordMeansAvailable(t *testing.T) {
	svc, _ := testService(newTestRepo(), nil)

	available, err := svc.IsAvailable(context.Background(), "player-1", "encounter")
	if err != nil {
		t.Fatalf("IsAvailable returned error: %v", err)
	}
	if !available {
		t.Fatalf("action without record must be available")
	}

	secs, err := svc.SecondsRemaining(context.Background(), "player-1", "encounter")
	if err != nil {
		t.Fatalf("SecondsRemaining returned error: %v", err)
	}
	if secs != 0 {
		t.Fatalf("expected 0 seconds remaining, got %d", secs)
	}
}

type failingRepo struct {
	*testRepo
	err error
}

func (r *failingRepo) Get(ctx context.Context, playerID, action string) (Timer, error) {
	return Timer{}, r.err
}

func TestService_RepoFailureIsNotAvailability(t *testing.T) {
	boom := errors.New("boom")
	svc, _ := testService(&failingRepo{testRepo: newTestRepo(), err: boom}, nil)

	// Un repo roto no puede leerse como "disponible": eso saltearía
	// cooldowns armados cada vez que el store falla.
	available, err := svc.IsAvailable(context.Background(), "player-1", "encounter")
	if !errors.Is(err, boom) {
		t.Fatalf("expected repo error to surface, got %v", err)
	}
	if available {
		t.Fatalf("failing repo must not report available")
	}

	if _, err := svc.SecondsRemaining(context.Background(), "player-1", "encounter"); !errors.Is(err, boom) {
		t.Fatalf("expected repo error to surface, got %v", err)
	}
}

func TestService_ArmBlocksUntilExpiry(t *testing.T) {
	repo := newTestRepo()
	svc, now := testService(repo, nil)

	next, err := svc.Arm(context.Background(), "player-1", "encounter", 30)
	if err != nil {
		t.Fatalf("Arm returned error: %v", err)
	}
	if !next.Equal(now.Add(30 * time.Second)) {
		t.Fatalf("unexpected next_available %v", next)
	}

	available, err := svc.IsAvailable(context.Background(), "player-1", "encounter")
	if err != nil {
		t.Fatalf("IsAvailable returned error: %v", err)
	}
	if available {
		t.Fatalf("armed action must be blocked")
	}

	secs, err := svc.SecondsRemaining(context.Background(), "player-1", "encounter")
	if err != nil {
		t.Fatalf("SecondsRemaining returned error: %v", err)
	}
	if secs != 30 {
		t.Fatalf("expected 30 seconds remaining, got %d", secs)
	}

	// Pasado el cooldown, vuelve a estar disponible.
	svc.now = func() time.Time { return now.Add(31 * time.Second) }

	available, err = svc.IsAvailable(context.Background(), "player-1", "encounter")
	if err != nil {
		t.Fatalf("IsAvailable returned error: %v", err)
	}
	if !available {
		t.Fatalf("expired cooldown must be available")
	}
}

func TestService_SecondsRemaining_TruncatesDown(t *testing.T) {
	repo := newTestRepo()
	svc, now := testService(repo, nil)

	if _, err := svc.Arm(context.Background(), "player-1", "encounter", 30); err != nil {
		t.Fatalf("Arm returned error: %v", err)
	}

	// A medio segundo del arm quedan 29.5s => 29.
	svc.now = func() time.Time { return now.Add(500 * time.Millisecond) }

	secs, err := svc.SecondsRemaining(context.Background(), "player-1", "encounter")
	if err != nil {
		t.Fatalf("SecondsRemaining returned error: %v", err)
	}
	if secs != 29 {
		t.Fatalf("expected 29 seconds (truncated), got %d", secs)
	}
}

func TestService_KeysAreIndependent(t *testing.T) {
	repo := newTestRepo()
	svc, _ := testService(repo, nil)

	if _, err := svc.Arm(context.Background(), "player-1", "encounter", 30); err != nil {
		t.Fatalf("Arm returned error: %v", err)
	}

	// Misma acción, otro jugador.
	available, err := svc.IsAvailable(context.Background(), "player-2", "encounter")
	if err != nil {
		t.Fatalf("IsAvailable returned error: %v", err)
	}
	if !available {
		t.Fatalf("other player's key must not be blocked")
	}

	// Mismo jugador, otra acción.
	available, err = svc.IsAvailable(context.Background(), "player-1", "train")
	if err != nil {
		t.Fatalf("IsAvailable returned error: %v", err)
	}
	if !available {
		t.Fatalf("other action must not be blocked")
	}
}

func TestService_ArmRejectsBadInput(t *testing.T) {
	svc, _ := testService(newTestRepo(), nil)

	if _, err := svc.Arm(context.Background(), "", "encounter", 30); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty player, got %v", err)
	}
	if _, err := svc.Arm(context.Background(), "player-1", "encounter", -1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative seconds, got %v", err)
	}
}

func TestService_Clear(t *testing.T) {
	repo := newTestRepo()
	svc, _ := testService(repo, nil)

	if _, err := svc.Arm(context.Background(), "player-1", "encounter", 30); err != nil {
		t.Fatalf("Arm returned error: %v", err)
	}
	if err := svc.Clear(context.Background(), "player-1", "encounter"); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}

	available, err := svc.IsAvailable(context.Background(), "player-1", "encounter")
	if err != nil {
		t.Fatalf("IsAvailable returned error: %v", err)
	}
	if !available {
		t.Fatalf("cleared action must be available")
	}
}

func TestService_ListActive_OnlyRunning(t *testing.T) {
	repo := newTestRepo()
	svc, now := testService(repo, nil)

	if _, err := svc.Arm(context.Background(), "player-1", "encounter", 30); err != nil {
		t.Fatalf("Arm returned error: %v", err)
	}
	if _, err := svc.Arm(context.Background(), "player-1", "train", 600); err != nil {
		t.Fatalf("Arm returned error: %v", err)
	}

	// El primero expira, el segundo sigue corriendo.
	svc.now = func() time.Time { return now.Add(60 * time.Second) }

	active, err := svc.ListActive(context.Background(), "player-1")
	if err != nil {
		t.Fatalf("ListActive returned error: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("expected 1 active timer, got %d", len(active))
	}
	if active[0].Action != "train" {
		t.Fatalf("expected train to remain active, got %s", active[0].Action)
	}
	if active[0].SecondsRemaining != 540 {
		t.Fatalf("expected 540 seconds remaining, got %d", active[0].SecondsRemaining)
	}
}

func TestService_ResetAll_AdminOnly(t *testing.T) {
	repo := newTestRepo()
	admin := func(playerID string) bool { return playerID == "admin-1" }
	svc, _ := testService(repo, admin)

	if _, err := svc.Arm(context.Background(), "player-1", "encounter", 300); err != nil {
		t.Fatalf("Arm returned error: %v", err)
	}
	if _, err := svc.Arm(context.Background(), "player-2", "train", 600); err != nil {
		t.Fatalf("Arm returned error: %v", err)
	}

	if err := svc.ResetAll(context.Background(), "player-1"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for non-admin, got %v", err)
	}

	if err := svc.ResetAll(context.Background(), "admin-1"); err != nil {
		t.Fatalf("ResetAll returned error: %v", err)
	}

	// Todo el mundo queda disponible, no solo el admin.
	for _, tc := range []struct{ player, action string }{
		{"player-1", "encounter"},
		{"player-2", "train"},
	} {
		available, err := svc.IsAvailable(context.Background(), tc.player, tc.action)
		if err != nil {
			t.Fatalf("IsAvailable returned error: %v", err)
		}
		if !available {
			t.Fatalf("%s/%s must be available after reset", tc.player, tc.action)
		}
	}
}

func TestService_ResetAll_NoAuthorizerDeniesEveryone(t *testing.T) {
	svc, _ := testService(newTestRepo(), nil)

	if err := svc.ResetAll(context.Background(), "anyone"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized without authorizer, got %v", err)
	}
}
