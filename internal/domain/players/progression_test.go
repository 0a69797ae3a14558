package players

import "testing"

func TestAddExperience_SingleLevelPerCall(t *testing.T) {
	p := Player{Level: 1}

	// 1->2 cuesta 1000; el resto queda bankeado aunque alcance para
	// otro nivel.
	if !p.AddExperience(3500) {
		t.Fatalf("3500 exp at level 1 must level up")
	}
	if p.Level != 2 {
		t.Fatalf("expected exactly one level per call, got level %d", p.Level)
	}
	if p.Experience != 2500 {
		t.Fatalf("expected banked exp 2500, got %d", p.Experience)
	}

	// La siguiente llamada cobra el banco: 2500 >= 2*1000.
	if !p.AddExperience(0) {
		t.Fatalf("banked exp must level up on next call")
	}
	if p.Level != 3 || p.Experience != 500 {
		t.Fatalf("expected level 3 exp 500, got level=%d exp=%d", p.Level, p.Experience)
	}
}

func TestAddExperience_NoLevelUp(t *testing.T) {
	p := Player{Level: 1}

	if p.AddExperience(999) {
		t.Fatalf("999 exp at level 1 must not level up")
	}
	if p.Level != 1 || p.Experience != 999 {
		t.Fatalf("unexpected state: level=%d exp=%d", p.Level, p.Experience)
	}
}

func TestAddExperience_NegativeIgnored(t *testing.T) {
	p := Player{Level: 1, Experience: 500}

	if p.AddExperience(-200) {
		t.Fatalf("negative amount must not level up")
	}
	if p.Experience != 500 {
		t.Fatalf("negative amount must not change experience, got %d", p.Experience)
	}
}

func TestCanAfford(t *testing.T) {
	p := Player{Coins: 100}

	if !p.CanAfford(100) {
		t.Fatalf("expected to afford exactly 100")
	}
	if p.CanAfford(101) {
		t.Fatalf("must not afford 101 with 100 coins")
	}
}
