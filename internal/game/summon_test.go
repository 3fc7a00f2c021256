package game

import (
	"testing"

	"github.com/peterkuimelis/duelcore/internal/log"
)

func TestTributesRequired(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{1, 0}, {4, 0}, {5, 1}, {6, 1}, {7, 2}, {8, 2}, {12, 2},
	}
	for _, tt := range tests {
		if got := TributesRequired(tt.level); got != tt.want {
			t.Errorf("TributesRequired(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestNormalSummonOncePerTurn(t *testing.T) {
	s := newTestDuel(t, []string{"chrome_sentinel", "street_punk"}, nil)
	reject(t, s, Summon(0, handID(t, s, 0, "chrome_sentinel"), 0)) // draw phase

	s = toPhase(t, s, PhaseMain1)
	s = apply(t, s, Summon(0, handID(t, s, 0, "chrome_sentinel"), 0))
	if s.NormalSummonAvailable {
		t.Fatal("summon flag should be consumed")
	}
	if c := s.Players[0].Monsters[0]; c == nil || c.Position != PositionAttack || c.FaceDown {
		t.Fatalf("expected face-up attack monster in zone 0, got %v", c)
	}
	if CanNormalSummon(s, 0, s.Catalog().MustLookup("street_punk")) {
		t.Error("second summon should not be allowed")
	}
	reject(t, s, Summon(0, handID(t, s, 0, "street_punk"), 1))

	s = toPhase(t, s, PhaseMain2)
	reject(t, s, Summon(0, handID(t, s, 0, "street_punk"), 1))
}

func TestSummonRejectsOccupiedZone(t *testing.T) {
	s := newTestDuel(t, []string{"chrome_sentinel"}, nil)
	s = putMonster(t, s, 0, 0, "filler_unit", PositionAttack, false)
	s = toPhase(t, s, PhaseMain1)
	reject(t, s, Summon(0, handID(t, s, 0, "chrome_sentinel"), 0))
	apply(t, s, Summon(0, handID(t, s, 0, "chrome_sentinel"), 1))
}

func TestSummonOpponentCannotActOnYourTurn(t *testing.T) {
	s := newTestDuel(t, nil, []string{"street_punk"})
	s = toPhase(t, s, PhaseMain1)
	reject(t, s, Summon(1, handID(t, s, 1, "street_punk"), 0))
}

func TestTributeSummon(t *testing.T) {
	s := newTestDuel(t, []string{"titan_core", "cobalt_knight"}, nil)
	s = toPhase(t, s, PhaseMain1)
	titan := handID(t, s, 0, "titan_core")

	if CanNormalSummon(s, 0, s.Catalog().MustLookup("titan_core")) {
		t.Fatal("level 7 should need two monsters on the field")
	}
	reject(t, s, Summon(0, titan, 0))

	s = putMonster(t, s, 0, 1, "plasma_sprite", PositionAttack, false)
	s = putMonster(t, s, 0, 3, "street_punk", PositionDefense, true)

	reject(t, s, Summon(0, titan, 0, 1))       // too few
	reject(t, s, Summon(0, titan, 0, 1, 1))    // duplicate
	reject(t, s, Summon(0, titan, 0, 1, 2))    // empty tribute zone
	reject(t, s, Summon(0, titan, 4, 1, 3, 0)) // too many

	s = apply(t, s, Summon(0, titan, 3, 1, 3))
	if c := s.Players[0].Monsters[3]; c == nil || c.Card.ID != "titan_core" {
		t.Fatalf("titan core should be in zone 3, got %v", c)
	}
	if s.Players[0].Monsters[1] != nil {
		t.Error("tributed zone 1 should be empty")
	}
	if !graveyardHas(s, 0, "plasma_sprite") || !graveyardHas(s, 0, "street_punk") {
		t.Error("tributes should be in the graveyard")
	}
	if got := len(log.OfType(s.Log, log.EventTributeSummon)); got != 1 {
		t.Errorf("expected one tribute summon event, got %d", got)
	}
}

func TestTributeQueuesGraveyardTrigger(t *testing.T) {
	s := newTestDuel(t, []string{"cobalt_knight", "filler_unit", "filler_unit", "filler_unit", "filler_unit", "neon_stalker"}, nil)
	s = putMonster(t, s, 0, 0, "scout_drone", PositionAttack, false)
	s = toPhase(t, s, PhaseMain1)
	s = apply(t, s, Summon(0, handID(t, s, 0, "cobalt_knight"), 0, 0))

	aw := s.Awaiting()
	if aw.Kind != AwaitEffectConfirm || aw.Trigger.SourceCardID != "scout_drone" {
		t.Fatalf("expected scout drone trigger after tribute, got %+v", aw)
	}
	reject(t, s, SetPhase(PhaseBattle))

	s = apply(t, s, ConfirmEffect(true))
	aw = s.Awaiting()
	if aw.Kind != AwaitDeckSearch {
		t.Fatalf("expected deck search, got %s", aw.Kind)
	}
	var stalker int
	for _, id := range aw.Search.Candidates {
		c, _, _ := s.Find(id)
		if c.Card.ATK > 1500 {
			t.Errorf("candidate %s exceeds the ATK filter", c)
		}
		if c.Card.ID == "neon_stalker" {
			stalker = id
		}
	}
	if stalker == 0 {
		t.Fatal("neon stalker should be a candidate")
	}
	reject(t, s, SelectSearch(0, s.Players[0].Hand[0].ID))
	s = apply(t, s, SelectSearch(0, stalker))
	handID(t, s, 0, "neon_stalker")
	if s.Blocked() {
		t.Errorf("still awaiting %s", s.Awaiting().Kind)
	}
}

func TestSearcherFizzlesWithoutCandidates(t *testing.T) {
	s := newTestDuel(t, []string{"recon_operative"}, nil)
	s = toPhase(t, s, PhaseMain1)
	deckBefore := make([]int, len(s.Players[0].Deck))
	for i, c := range s.Players[0].Deck {
		deckBefore[i] = c.ID
	}

	s = apply(t, s, Summon(0, handID(t, s, 0, "recon_operative"), 0))
	if s.Blocked() {
		t.Fatalf("no prompt expected, awaiting %s", s.Awaiting().Kind)
	}
	if s.NormalSummonAvailable {
		t.Error("summon flag should be consumed")
	}
	if s.Players[0].Monsters[0] == nil {
		t.Error("summon should complete")
	}
	if len(s.Players[0].Deck) != len(deckBefore) {
		t.Fatalf("deck size changed")
	}
	for i, c := range s.Players[0].Deck {
		if c.ID != deckBefore[i] {
			t.Fatalf("deck order changed at %d", i)
		}
	}
	if !hasEvent(s, log.EventTriggerFizzled) {
		t.Error("expected a fizzle log entry")
	}
}

func TestSearcherOnNormalSummon(t *testing.T) {
	s := newTestDuel(t, []string{"recon_operative", "filler_unit", "filler_unit", "filler_unit", "filler_unit", "filler_unit", "decoy_drone"}, nil)
	s = toPhase(t, s, PhaseMain1)
	s = apply(t, s, Summon(0, handID(t, s, 0, "recon_operative"), 2))
	if aw := s.Awaiting(); aw.Kind != AwaitEffectConfirm || aw.Player != 0 {
		t.Fatalf("expected confirm prompt, got %+v", aw)
	}

	declined := apply(t, s, ConfirmEffect(false))
	if declined.Blocked() || len(declined.Players[0].Deck) != len(s.Players[0].Deck) {
		t.Error("declining should leave the deck alone")
	}

	s = apply(t, s, ConfirmEffect(true))
	s = apply(t, s, CancelSearch(0))
	if s.Blocked() {
		t.Errorf("cancel should close the search, awaiting %s", s.Awaiting().Kind)
	}
}

func TestDeckSearchBelongsToSearcher(t *testing.T) {
	s := newTestDuel(t, []string{"recon_operative", "filler_unit", "filler_unit", "filler_unit", "filler_unit", "filler_unit", "decoy_drone"}, nil)
	s = toPhase(t, s, PhaseMain1)
	s = apply(t, s, Summon(0, handID(t, s, 0, "recon_operative"), 2))
	s = apply(t, s, ConfirmEffect(true))
	candidate := s.Pending.Search.Candidates[0]

	reject(t, s, CancelSearch(1))
	reject(t, s, SelectSearch(1, candidate))
	s = apply(t, s, SelectSearch(0, candidate))
	if c, loc, _ := s.Find(candidate); loc.Player != 0 || loc.Zone != ZoneHand {
		t.Errorf("%s should be in P1's hand, found at %+v", c, loc)
	}
}

func TestSetMonsterFaceDown(t *testing.T) {
	s := newTestDuel(t, []string{"circuit_golem"}, nil)
	s = toPhase(t, s, PhaseMain1)
	s = apply(t, s, SetMonster(0, handID(t, s, 0, "circuit_golem"), 4))
	c := s.Players[0].Monsters[4]
	if c == nil || !c.FaceDown || c.Position != PositionDefense || c.SetOnTurn != 1 {
		t.Fatalf("expected face-down defense set on turn 1, got %+v", c)
	}
}

func TestChangePosition(t *testing.T) {
	s := newTestDuel(t, []string{"circuit_golem", "chrome_sentinel"}, nil, noDeckOut)
	s = toPhase(t, s, PhaseMain1)
	s = apply(t, s, SetMonster(0, handID(t, s, 0, "circuit_golem"), 0))
	reject(t, s, ChangePosition(0, 0, nil)) // set this turn

	s = passTurns(t, s, 2)
	s = toPhase(t, s, PhaseMain1)
	def := PositionDefense
	reject(t, s, ChangePosition(0, 0, &def)) // face-down can only flip to attack

	s = apply(t, s, ChangePosition(0, 0, nil))
	c := s.Players[0].Monsters[0]
	if c.FaceDown || c.Position != PositionAttack {
		t.Fatalf("expected flip to face-up attack, got %+v", c)
	}
	reject(t, s, ChangePosition(0, 0, nil)) // once per turn

	s = passTurns(t, s, 2)
	s = toPhase(t, s, PhaseMain1)
	atk := PositionAttack
	reject(t, s, ChangePosition(0, 0, &atk)) // already attack
	s = apply(t, s, ChangePosition(0, 0, nil))
	if s.Players[0].Monsters[0].Position != PositionDefense {
		t.Error("toggle should switch to defense")
	}
}

func TestChangePositionAfterAttack(t *testing.T) {
	s := newTestDuel(t, nil, nil, noDeckOut)
	s = passTurns(t, s, 2)
	s = putMonster(t, s, 0, 0, "chrome_sentinel", PositionAttack, false)
	s = toPhase(t, s, PhaseBattle)
	s = apply(t, s, Battle(0, 0, -1))
	s = toPhase(t, s, PhaseMain2)
	reject(t, s, ChangePosition(0, 0, nil))
}
