package net

import (
	"testing"

	"github.com/peterkuimelis/duelcore/internal/game"
)

type topFirst struct{}

func (topFirst) Intn(n int) int { return n - 1 }

func pad(ids ...string) []string {
	for len(ids) < 20 {
		ids = append(ids, "filler_unit")
	}
	return ids
}

func newState(t *testing.T, p1, p2 []string) *game.State {
	t.Helper()
	s, err := game.NewDuel(game.Config{
		Decks:     [2][]string{pad(p1...), pad(p2...)},
		NoDeckOut: true,
		Shuffler:  topFirst{},
	})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestBuildStateViewHidesOpponentSecrets(t *testing.T) {
	s := newState(t, []string{"street_punk", "light_barrier"}, nil)
	s = game.PlaceMonster(s, 0, 0, 2, game.PositionDefense, true)
	s = game.PlaceSpellTrap(s, 0, 0, 1, true)

	own := BuildStateView(s, 0)
	if z := own.You.Monsters[2]; z.Name != "Street Punk" || !z.FaceDown {
		t.Errorf("own set monster = %+v", z)
	}
	if z := own.You.SpellTraps[1]; z.Name != "Light Barrier" || !z.FaceDown {
		t.Errorf("own set spell = %+v", z)
	}
	if len(own.You.Hand) != game.InitialHandSize-2 {
		t.Errorf("own hand = %d cards", len(own.You.Hand))
	}

	other := BuildStateView(s, 1)
	if z := other.Opponent.Monsters[2]; z.Name != "" || z.ATK != 0 || !z.FaceDown || z.Position != "DEF" {
		t.Errorf("opponent set monster leaks: %+v", z)
	}
	if z := other.Opponent.SpellTraps[1]; z.Name != "" || !z.FaceDown {
		t.Errorf("opponent set spell leaks: %+v", z)
	}
	if other.Opponent.Hand != nil {
		t.Error("opponent hand should be hidden")
	}
	if other.Opponent.HandCount != game.InitialHandSize-2 {
		t.Errorf("opponent hand count = %d", other.Opponent.HandCount)
	}
	if !other.Opponent.Monsters[0].Empty {
		t.Error("zone 1 should be empty")
	}
}

func TestBuildStateViewTurnAndPrompt(t *testing.T) {
	s := newState(t, nil, nil)
	v := BuildStateView(s, 0)
	if !v.IsYourTurn || !v.YourMove || v.Awaiting != "none" || v.Phase != "Draw Phase" {
		t.Errorf("P1 view = %+v", v)
	}
	if v.Prompt != "" {
		t.Errorf("prompt = %q, want none", v.Prompt)
	}
	if o := BuildStateView(s, 1); o.IsYourTurn || o.YourMove {
		t.Errorf("P2 view = %+v", o)
	}
}

func TestResult(t *testing.T) {
	s := newState(t, nil, nil)
	if Result(s) != "" {
		t.Error("running duel has no result")
	}
	s = game.SetLifePoints(s, 1, 0, "test")
	if Result(s) == "" {
		t.Error("finished duel should describe the win")
	}
	if v := BuildStateView(s, 0); v.Winner != "P1" || v.YourMove {
		t.Errorf("winner view = %+v", v)
	}
}

func TestActionViewsAreNumberedInOrder(t *testing.T) {
	s := newState(t, nil, nil)
	views := ActionViews(game.Actions(s, 0))
	if len(views) == 0 {
		t.Fatal("expected actions")
	}
	for i, v := range views {
		if v.Index != i || v.Desc == "" {
			t.Errorf("view %d = %+v", i, v)
		}
	}
}
