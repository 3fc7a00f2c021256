package game

import (
	"testing"

	"github.com/peterkuimelis/duelcore/internal/catalog"
	"github.com/peterkuimelis/duelcore/internal/log"
)

func monster(atk, def int, pos Position) *CardInstance {
	return &CardInstance{
		Card:       &catalog.Card{ID: "test", Name: "Test", Kind: catalog.KindMonster, Level: 4, ATK: atk, DEF: def},
		Position:   pos,
		EquippedTo: -1,
	}
}

func TestResolveBattleAttackPosition(t *testing.T) {
	stats := []int{0, 500, 1200, 1800, 1800, 3000}
	for _, a := range stats {
		for _, d := range stats {
			r := ResolveBattle(monster(a, 0, PositionAttack), monster(d, 0, PositionAttack))
			switch {
			case a > d:
				if !r.DefenderDestroyed || r.AttackerDestroyed || r.DefenderDamage != a-d || r.AttackerDamage != 0 {
					t.Errorf("%d vs %d: got %+v", a, d, r)
				}
			case a < d:
				if !r.AttackerDestroyed || r.DefenderDestroyed || r.AttackerDamage != d-a || r.DefenderDamage != 0 {
					t.Errorf("%d vs %d: got %+v", a, d, r)
				}
			default:
				if !r.AttackerDestroyed || !r.DefenderDestroyed || r.AttackerDamage != 0 || r.DefenderDamage != 0 {
					t.Errorf("%d vs %d: got %+v", a, d, r)
				}
			}
		}
	}
}

func TestResolveBattleDefensePosition(t *testing.T) {
	stats := []int{0, 500, 1200, 1800, 2000, 3000}
	for _, a := range stats {
		for _, d := range stats {
			// Defender ATK is deliberately high to prove it is ignored.
			r := ResolveBattle(monster(a, 0, PositionAttack), monster(9999, d, PositionDefense))
			if r.AttackerDamage != 0 || r.DefenderDamage != 0 || r.AttackerDestroyed {
				t.Errorf("%d vs DEF %d: got %+v", a, d, r)
			}
			if r.DefenderDestroyed != (a > d) {
				t.Errorf("%d vs DEF %d: defender destroyed = %v", a, d, r.DefenderDestroyed)
			}
		}
	}
}

func TestResolveBattleDirect(t *testing.T) {
	for _, a := range []int{0, 100, 1800, 3000} {
		r := ResolveBattle(monster(a, 0, PositionAttack), nil)
		if r != (BattleResult{DefenderDamage: a}) {
			t.Errorf("direct %d: got %+v", a, r)
		}
	}
}

// TestScenarioSentinelBeatsPunk: P1 summons an 1800 ATK monster, P2
// summons a 1200 ATK monster, and on turn 3 P1 attacks it.
func TestScenarioSentinelBeatsPunk(t *testing.T) {
	s := newTestDuel(t, []string{"chrome_sentinel"}, []string{"street_punk"}, noDeckOut)
	if s.Players[0].LifePoints != 8000 || s.Players[1].LifePoints != 8000 {
		t.Fatalf("starting life points %d/%d", s.Players[0].LifePoints, s.Players[1].LifePoints)
	}

	s = toPhase(t, s, PhaseMain1)
	s = apply(t, s, Summon(0, handID(t, s, 0, "chrome_sentinel"), 0))
	s = apply(t, s, EndTurn())

	s = toPhase(t, s, PhaseMain1)
	s = apply(t, s, Summon(1, handID(t, s, 1, "street_punk"), 0))
	s = apply(t, s, EndTurn())

	s = toPhase(t, s, PhaseBattle)
	s = apply(t, s, PrepareAttack(0, 0, 0))
	if aw := s.Awaiting(); aw.Kind != AwaitAttackResponse || aw.Player != 1 {
		t.Fatalf("expected P2 to be asked for a response, got %s for %s", aw.Kind, aw.Player)
	}
	s = apply(t, s, Battle(0, 0, 0))

	if s.Players[1].Monsters[0] != nil {
		t.Error("P2's monster should have left zone 0")
	}
	if !graveyardHas(s, 1, "street_punk") {
		t.Error("Street Punk should be in P2's graveyard")
	}
	if lp := s.Players[1].LifePoints; lp != 7400 {
		t.Errorf("P2 LP = %d, want 7400", lp)
	}
	if lp := s.Players[0].LifePoints; lp != 8000 {
		t.Errorf("P1 LP = %d, want 8000", lp)
	}
	if s.Blocked() {
		t.Errorf("still awaiting %s", s.Awaiting().Kind)
	}
	t.Logf("\n%s", log.FormatAll(s.Log))
}

func TestNoAttackOnFirstTurn(t *testing.T) {
	s := newTestDuel(t, nil, nil)
	s = putMonster(t, s, 0, 0, "filler_unit", PositionAttack, false)
	s = toPhase(t, s, PhaseBattle)
	reject(t, s, PrepareAttack(0, 0, -1))
}

func TestAttackOncePerTurn(t *testing.T) {
	s := newTestDuel(t, nil, []string{"chrome_sentinel"}, noDeckOut)
	s = passTurns(t, s, 2)
	s = putMonster(t, s, 0, 0, "chrome_sentinel", PositionAttack, false)
	s = toPhase(t, s, PhaseBattle)
	s = apply(t, s, Battle(0, 0, -1))
	if lp := s.Players[1].LifePoints; lp != 6200 {
		t.Fatalf("P2 LP = %d, want 6200", lp)
	}
	reject(t, s, Battle(0, 0, -1))
	reject(t, s, PrepareAttack(0, 0, -1))
}

func TestDirectAttackPastDefensePosition(t *testing.T) {
	s := newTestDuel(t, nil, nil, noDeckOut)
	s = passTurns(t, s, 2)
	s = putMonster(t, s, 0, 0, "chrome_sentinel", PositionAttack, false)
	s = putMonster(t, s, 1, 3, "circuit_golem", PositionDefense, true)
	s = toPhase(t, s, PhaseBattle)
	reject(t, s, PrepareAttack(0, 0, 2))
	s = apply(t, s, Battle(0, 0, -1))
	if lp := s.Players[1].LifePoints; lp != 8000-1800 {
		t.Errorf("P2 LP = %d, want %d", lp, 8000-1800)
	}
	if s.Players[1].Monsters[3] == nil {
		t.Error("defense position monster should stay on the field")
	}
}

func TestDirectAttackBlockedByAttackPosition(t *testing.T) {
	s := newTestDuel(t, nil, nil, noDeckOut)
	s = passTurns(t, s, 2)
	s = putMonster(t, s, 0, 0, "chrome_sentinel", PositionAttack, false)
	s = putMonster(t, s, 1, 1, "street_punk", PositionAttack, false)
	s = toPhase(t, s, PhaseBattle)
	reject(t, s, PrepareAttack(0, 0, -1))
	reject(t, s, Battle(0, 0, -1))
}

func TestFaceDownDefenderIsFlipped(t *testing.T) {
	s := newTestDuel(t, nil, nil, noDeckOut)
	s = passTurns(t, s, 2)
	s = putMonster(t, s, 0, 0, "chrome_sentinel", PositionAttack, false)
	s = putMonster(t, s, 1, 0, "circuit_golem", PositionDefense, true)
	s = toPhase(t, s, PhaseBattle)
	s = apply(t, s, Battle(0, 0, 0))

	golem := s.Players[1].Monsters[0]
	if golem == nil || golem.FaceDown {
		t.Fatal("Circuit Golem should survive face-up")
	}
	if s.Players[0].Monsters[0] == nil {
		t.Fatal("attacker should survive against a higher DEF")
	}
	if s.Players[0].LifePoints != 8000 || s.Players[1].LifePoints != 8000 {
		t.Errorf("no damage expected, got %d/%d", s.Players[0].LifePoints, s.Players[1].LifePoints)
	}
}

func TestBattleDestructionQueuesGraveyardTrigger(t *testing.T) {
	s := newTestDuel(t, nil, []string{"scout_drone"}, noDeckOut)
	s = passTurns(t, s, 2)
	s = putMonster(t, s, 0, 0, "chrome_sentinel", PositionAttack, false)
	s = putMonster(t, s, 1, 0, "scout_drone", PositionAttack, false)
	s = toPhase(t, s, PhaseBattle)
	s = apply(t, s, Battle(0, 0, 0))

	aw := s.Awaiting()
	if aw.Kind != AwaitEffectConfirm || aw.Player != 1 || aw.Trigger.SourceCardID != "scout_drone" {
		t.Fatalf("expected P2 scout drone trigger, got %+v", aw)
	}
	if s.Players[1].LifePoints != 7200 {
		t.Errorf("P2 LP = %d, want 7200", s.Players[1].LifePoints)
	}
}

func TestNullSignalNegatesAttack(t *testing.T) {
	s := newTestDuel(t, nil, []string{"null_signal", "filler_unit", "filler_unit", "filler_unit", "filler_unit", "filler_unit", "decoy_drone"}, noDeckOut)
	s = passTurns(t, s, 2)
	s = putMonster(t, s, 0, 0, "chrome_sentinel", PositionAttack, false)
	s = toPhase(t, s, PhaseBattle)
	s = apply(t, s, PrepareAttack(0, 0, -1))
	s = apply(t, s, NegateAttack(1, handIndexOf(t, s, 1, "null_signal")))

	if s.Pending.Attack != nil {
		t.Fatal("attack should be cancelled")
	}
	if s.Players[1].LifePoints != 8000 {
		t.Errorf("P2 LP = %d, want 8000", s.Players[1].LifePoints)
	}
	if !graveyardHas(s, 1, "null_signal") {
		t.Error("Null Signal should be in the graveyard")
	}
	if aw := s.Awaiting(); aw.Kind != AwaitEffectConfirm || aw.Trigger.Filter != "drone" {
		t.Fatalf("expected Null Signal's search trigger, got %+v", aw)
	}
	if !s.Attacked[0][0] {
		t.Error("a negated attack still uses the monster's attack")
	}
}

func TestNegateAttackRequiresHandTrap(t *testing.T) {
	s := newTestDuel(t, nil, nil, noDeckOut)
	s = passTurns(t, s, 2)
	s = putMonster(t, s, 0, 0, "chrome_sentinel", PositionAttack, false)
	s = toPhase(t, s, PhaseBattle)
	s = apply(t, s, PrepareAttack(0, 0, -1))
	reject(t, s, NegateAttack(1, 0))
	reject(t, s, NegateAttack(0, 0))
}

func TestDecoyDroneHumanChoice(t *testing.T) {
	for _, use := range []bool{true, false} {
		s := newTestDuel(t, nil, []string{"decoy_drone"}, noDeckOut)
		s = passTurns(t, s, 2)
		s = putMonster(t, s, 0, 0, "chrome_sentinel", PositionAttack, false)
		s = toPhase(t, s, PhaseBattle)
		s = apply(t, s, PrepareAttack(0, 0, -1))
		s = apply(t, s, Battle(0, 0, -1))

		aw := s.Awaiting()
		if aw.Kind != AwaitShieldChoice || aw.Player != 1 || aw.Shield.Damage != 1800 {
			t.Fatalf("expected shield prompt for 1800, got %+v", aw)
		}
		reject(t, s, EndTurn())
		s = apply(t, s, ShieldChoice(1, use))

		want := 8000
		if !use {
			want = 6200
		}
		if lp := s.Players[1].LifePoints; lp != want {
			t.Errorf("use=%v: P2 LP = %d, want %d", use, lp, want)
		}
		if graveyardHas(s, 1, "decoy_drone") != use {
			t.Errorf("use=%v: decoy drone graveyard state wrong", use)
		}
		if s.Blocked() {
			t.Errorf("use=%v: still awaiting %s", use, s.Awaiting().Kind)
		}
	}
}

func TestDecoyDroneAutomaticForAI(t *testing.T) {
	s := newTestDuel(t, nil, []string{"decoy_drone"}, noDeckOut, aiOpponent)
	s = passTurns(t, s, 2)
	s = putMonster(t, s, 0, 0, "chrome_sentinel", PositionAttack, false)
	s = toPhase(t, s, PhaseBattle)
	s = apply(t, s, Battle(0, 0, -1))

	if s.Awaiting().Kind != AwaitNone {
		t.Fatalf("AI defender should not be prompted, awaiting %s", s.Awaiting().Kind)
	}
	if s.Players[1].LifePoints != 8000 {
		t.Errorf("P2 LP = %d, want 8000", s.Players[1].LifePoints)
	}
	if !graveyardHas(s, 1, "decoy_drone") {
		t.Error("decoy drone should have been discarded")
	}
}

func TestPhaseShifterBouncesAttacker(t *testing.T) {
	s := newTestDuel(t, nil, nil, noDeckOut)
	s = passTurns(t, s, 2)
	s = putMonster(t, s, 0, 0, "chrome_sentinel", PositionAttack, false)
	s = putMonster(t, s, 1, 1, "phase_shifter", PositionAttack, false)
	s = toPhase(t, s, PhaseBattle)
	s = apply(t, s, Battle(0, 0, 1))

	if s.Players[1].Monsters[1] == nil {
		t.Fatal("Phase Shifter should not be destroyed")
	}
	if s.Players[0].Monsters[0] != nil {
		t.Fatal("attacker should have left the field")
	}
	handID(t, s, 0, "chrome_sentinel")
	if s.Players[1].LifePoints != 7000 {
		t.Errorf("P2 LP = %d, want 7000", s.Players[1].LifePoints)
	}
}

func TestReflectorArrayRespondsToAttack(t *testing.T) {
	s := newTestDuel(t, nil, nil, noDeckOut)
	s = passTurns(t, s, 2)
	s = putMonster(t, s, 0, 0, "chrome_sentinel", PositionAttack, false)
	s = putMonster(t, s, 0, 1, "steel_juggernaut", PositionAttack, false)
	s = putMonster(t, s, 0, 2, "circuit_golem", PositionDefense, false)
	s = putSpellTrap(t, s, 1, 0, "reflector_array")
	s = toPhase(t, s, PhaseMain1)
	reject(t, s, ActivateFromField(1, 0, nil))

	s = toPhase(t, s, PhaseBattle)
	s = apply(t, s, PrepareAttack(0, 1, -1))
	s = apply(t, s, ActivateFromField(1, 0, nil))

	if s.Pending.Attack != nil {
		t.Error("attack should be cancelled once the attacker is destroyed")
	}
	if s.Players[0].Monsters[0] != nil || s.Players[0].Monsters[1] != nil {
		t.Error("attack position monsters should be destroyed")
	}
	if s.Players[0].Monsters[2] == nil {
		t.Error("defense position monster should survive")
	}
	if !graveyardHas(s, 1, "reflector_array") {
		t.Error("trap should go to the graveyard after resolving")
	}
	if s.Players[1].LifePoints != 8000 {
		t.Errorf("P2 LP = %d", s.Players[1].LifePoints)
	}
}

func TestAttackerCannotAnswerOwnAttack(t *testing.T) {
	s := newTestDuel(t, nil, nil, noDeckOut)
	s = passTurns(t, s, 2)
	s = putMonster(t, s, 0, 0, "chrome_sentinel", PositionAttack, false)
	s = putSpellTrap(t, s, 0, 0, "reflector_array")
	s = toPhase(t, s, PhaseBattle)
	s = apply(t, s, PrepareAttack(0, 0, -1))
	reject(t, s, ActivateFromField(0, 0, nil))
	reject(t, s, SetPhase(PhaseMain2))
}
