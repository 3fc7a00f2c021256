package ai

import (
	"testing"

	"github.com/peterkuimelis/duelcore/internal/catalog"
	"github.com/peterkuimelis/duelcore/internal/game"
	"github.com/peterkuimelis/duelcore/internal/log"
)

// topFirst keeps deck lists in order.
type topFirst struct{}

func (topFirst) Intn(n int) int { return n - 1 }

func pad(ids ...string) []string {
	for len(ids) < 20 {
		ids = append(ids, "filler_unit")
	}
	return ids
}

func newDuel(t *testing.T, p1, p2 []string) *game.State {
	t.Helper()
	s, err := game.NewDuel(game.Config{
		Decks:     [2][]string{pad(p1...), pad(p2...)},
		AI:        [2]bool{true, true},
		NoDeckOut: true,
		Shuffler:  topFirst{},
	})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func step(t *testing.T, s *game.State, ev game.Event) *game.State {
	t.Helper()
	next := game.Dispatch(s, ev)
	if next == s {
		t.Fatalf("%s rejected\n%s", ev.Kind, log.FormatAll(s.Log))
	}
	return next
}

func handIndex(t *testing.T, s *game.State, p game.PlayerID, id string) int {
	t.Helper()
	for i, c := range s.Players[p].Hand {
		if c.Card.ID == id {
			return i
		}
	}
	t.Fatalf("%s not in hand", id)
	return -1
}

func place(t *testing.T, s *game.State, p game.PlayerID, id string, zone int, pos game.Position, faceDown bool) *game.State {
	t.Helper()
	next := game.PlaceMonster(s, p, handIndex(t, s, p, id), zone, pos, faceDown)
	if next == s {
		t.Fatalf("could not place %s", id)
	}
	return next
}

func decide(t *testing.T, s *game.State) game.Event {
	t.Helper()
	ev, ok := Decide(s)
	if !ok {
		t.Fatal("no decision")
	}
	if ev.Source == nil || *ev.Source != log.SourceAI {
		t.Error("AI intents should carry the AI log source")
	}
	return ev
}

func TestDecideAdvancesEarlyPhases(t *testing.T) {
	s := newDuel(t, nil, nil)
	ev := decide(t, s)
	if ev.Kind != game.EventSetPhase || ev.Phase != game.PhaseStandby {
		t.Fatalf("draw phase: got %s %s", ev.Kind, ev.Phase)
	}
	s = step(t, s, ev)
	ev = decide(t, s)
	if ev.Kind != game.EventSetPhase || ev.Phase != game.PhaseMain1 {
		t.Fatalf("standby: got %s %s", ev.Kind, ev.Phase)
	}
}

func TestDecideSummonsFirstLegalMonster(t *testing.T) {
	s := newDuel(t, []string{"apex_dragon", "greed_protocol", "chrome_sentinel", "street_punk"}, nil)
	s = step(t, s, game.SetPhase(game.PhaseMain1))
	ev := decide(t, s)
	chrome := s.Players[0].Hand[handIndex(t, s, 0, "chrome_sentinel")].ID
	if ev.Kind != game.EventSummon || ev.Card != chrome || ev.Zone != 0 || ev.FaceDown {
		t.Fatalf("expected chrome sentinel summon to zone 0, got %+v", ev)
	}
	s = step(t, s, ev)

	ev = decide(t, s)
	if ev.Kind != game.EventSetPhase || ev.Phase != game.PhaseBattle {
		t.Errorf("after summoning, advance: got %s", ev.Kind)
	}
}

func TestDecideTributeSummon(t *testing.T) {
	s := newDuel(t, []string{"titan_core", "street_punk", "plasma_sprite"}, nil)
	s = place(t, s, 0, "street_punk", 2, game.PositionAttack, false)
	s = place(t, s, 0, "plasma_sprite", 4, game.PositionAttack, false)
	s = step(t, s, game.SetPhase(game.PhaseMain1))
	ev := decide(t, s)
	if ev.Kind != game.EventSummon || len(ev.Tributes) != 2 || ev.Tributes[0] != 2 || ev.Tributes[1] != 4 || ev.Zone != 2 {
		t.Fatalf("expected titan core tributing zones 2 and 4, got %+v", ev)
	}
	s = step(t, s, ev)
	if c := s.Players[0].Monsters[2]; c == nil || c.Card.ID != "titan_core" {
		t.Errorf("zone 2 = %v", c)
	}
}

func battleReady(t *testing.T, p1, p2 []string) *game.State {
	t.Helper()
	s := newDuel(t, p1, p2)
	s = step(t, s, game.EndTurn())
	s = step(t, s, game.EndTurn())
	return s
}

func TestDecideAttackTargets(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, s *game.State) *game.State
		want  int
	}{
		{"empty field attacks directly", func(t *testing.T, s *game.State) *game.State { return s }, -1},
		{"weaker attack position monster", func(t *testing.T, s *game.State) *game.State {
			s = place(t, s, 1, "apex_dragon", 0, game.PositionAttack, false)
			return place(t, s, 1, "street_punk", 3, game.PositionAttack, false)
		}, 3},
		{"only defense position monsters attacks directly", func(t *testing.T, s *game.State) *game.State {
			return place(t, s, 1, "circuit_golem", 0, game.PositionDefense, true)
		}, -1},
		{"breakable defense position monster", func(t *testing.T, s *game.State) *game.State {
			s = place(t, s, 1, "apex_dragon", 0, game.PositionAttack, false)
			s = place(t, s, 1, "circuit_golem", 1, game.PositionDefense, false)
			return place(t, s, 1, "street_punk", 2, game.PositionDefense, false)
		}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := battleReady(t, []string{"chrome_sentinel"}, []string{"apex_dragon", "street_punk", "circuit_golem"})
			s = place(t, s, 0, "chrome_sentinel", 0, game.PositionAttack, false)
			s = tt.setup(t, s)
			s = step(t, s, game.SetPhase(game.PhaseBattle))
			ev := decide(t, s)
			if ev.Kind != game.EventPrepareAttack || ev.AttackerZone != 0 || ev.DefenderZone != tt.want {
				t.Fatalf("got %+v, want attack into %d", ev, tt.want)
			}
		})
	}
}

func TestDecideSkipsHiddenAndStrongerMonsters(t *testing.T) {
	s := battleReady(t, []string{"chrome_sentinel"}, []string{"apex_dragon", "street_punk"})
	s = place(t, s, 0, "chrome_sentinel", 0, game.PositionAttack, false)
	s = place(t, s, 1, "apex_dragon", 0, game.PositionAttack, false)
	s = place(t, s, 1, "street_punk", 1, game.PositionDefense, true)
	s = step(t, s, game.SetPhase(game.PhaseBattle))
	ev := decide(t, s)
	if ev.Kind != game.EventSetPhase || ev.Phase != game.PhaseMain2 {
		t.Fatalf("no safe target: expected to leave battle, got %+v", ev)
	}
}

func TestChooseSearch(t *testing.T) {
	s := newDuel(t, nil, []string{"filler_unit", "filler_unit", "filler_unit", "filler_unit", "filler_unit",
		"plasma_sprite", "neon_stalker", "street_punk", "chrome_sentinel"})
	deck := s.Players[1].Deck
	ids := []int{deck[0].ID, deck[1].ID, deck[2].ID, deck[3].ID}

	id, ok := ChooseSearch(s, &game.DeckSearch{Player: 1, Filter: "atk_1500", Candidates: ids[:3]})
	if !ok || id != deck[1].ID {
		t.Errorf("highest ATK: got %d, want neon stalker %d", id, deck[1].ID)
	}
	id, _ = ChooseSearch(s, &game.DeckSearch{Player: 1, Filter: "def_1500", Candidates: []int{ids[0], ids[2], ids[3]}})
	if id != deck[3].ID {
		t.Errorf("highest DEF: got %d, want chrome sentinel %d", id, deck[3].ID)
	}
	id, _ = ChooseSearch(s, &game.DeckSearch{Player: 1, Filter: "drone", Candidates: []int{ids[2], ids[0]}})
	if id != ids[2] {
		t.Errorf("first candidate: got %d", id)
	}
	if _, ok := ChooseSearch(s, &game.DeckSearch{}); ok {
		t.Error("empty search should report no choice")
	}
}

func TestConfirmEffect(t *testing.T) {
	if !ConfirmEffect(nil, &game.Trigger{SourceCardID: "scout_drone"}) {
		t.Error("search triggers should be taken")
	}
	if ConfirmEffect(nil, nil) {
		t.Error("nil trigger")
	}
}

func attackOn(t *testing.T, s *game.State, attacker string, defZone int) *game.State {
	t.Helper()
	s = place(t, s, 0, attacker, 0, game.PositionAttack, false)
	s = step(t, s, game.SetPhase(game.PhaseBattle))
	return step(t, s, game.PrepareAttack(0, 0, defZone))
}

func TestRespondToAttackNegatesThreat(t *testing.T) {
	s := battleReady(t, []string{"chrome_sentinel"}, []string{"null_signal"})
	s = attackOn(t, s, "chrome_sentinel", -1)
	ev := decide(t, s)
	if ev.Kind != game.EventNegateAttack || ev.Player != 1 || ev.HandIndex != handIndex(t, s, 1, "null_signal") {
		t.Fatalf("expected negate, got %+v", ev)
	}
	s = step(t, s, ev)
	if s.Players[1].LifePoints != game.StartingLifePoints {
		t.Error("negated attack dealt damage")
	}
}

func TestRespondToAttackLetsHarmlessAttackThrough(t *testing.T) {
	s := battleReady(t, []string{"street_punk"}, []string{"null_signal", "circuit_golem"})
	s = place(t, s, 1, "circuit_golem", 2, game.PositionDefense, false)
	s = attackOn(t, s, "street_punk", 2)
	ev := decide(t, s)
	if ev.Kind != game.EventBattle || ev.AttackerZone != 0 || ev.DefenderZone != 2 {
		t.Fatalf("expected the attack to resolve, got %+v", ev)
	}
}

func TestRespondToAttackWithTrap(t *testing.T) {
	s := newDuel(t, []string{"chrome_sentinel"}, []string{"reflector_array"})
	s = step(t, s, game.EndTurn())
	s = step(t, s, game.SetPhase(game.PhaseMain1))
	s = step(t, s, game.SetSpellTrap(1, s.Players[1].Hand[handIndex(t, s, 1, "reflector_array")].ID, 0))
	s = step(t, s, game.EndTurn())
	s = attackOn(t, s, "chrome_sentinel", -1)

	ev := decide(t, s)
	if ev.Kind != game.EventActivateFromField || ev.Zone != 0 {
		t.Fatalf("expected reflector array, got %+v", ev)
	}
	s = step(t, s, ev)
	if s.Players[0].MonsterCount() != 0 || s.Blocked() {
		t.Error("attacker should be destroyed and the attack cancelled")
	}
}

func TestAIVersusAIFinishes(t *testing.T) {
	decks := catalog.DefaultDecks()
	s, err := game.NewDuel(game.Config{
		Decks: [2][]string{decks.Decks[0].Expand(), decks.Decks[1].Expand()},
		AI:    [2]bool{true, true},
		Seed:  7,
	})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10000 && !s.Over(); i++ {
		ev, ok := Decide(s)
		if !ok {
			t.Fatalf("no decision at turn %d (%s, awaiting %s)", s.Turn, s.Phase, s.Awaiting().Kind)
		}
		next := game.Dispatch(s, ev)
		if next == s {
			t.Fatalf("AI chose an illegal %s at turn %d\n%s", ev.Kind, s.Turn, log.FormatAll(s.Log))
		}
		if err := game.CheckZones(next); err != nil {
			t.Fatal(err)
		}
		s = next
	}
	if !s.Over() {
		t.Fatalf("duel did not finish by turn %d", s.Turn)
	}
}
