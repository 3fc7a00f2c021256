package game

import (
	"testing"

	"github.com/peterkuimelis/duelcore/internal/log"
)

// noShuffle keeps decks in list order: Fisher–Yates never swaps when
// Intn(n) returns n-1.
type noShuffle struct{}

func (noShuffle) Intn(n int) int { return n - 1 }

// makePaddedDeck fills a deck list with vanilla filler up to size. The
// first five ids form the opening hand.
func makePaddedDeck(ids []string, size int) []string {
	deck := append([]string(nil), ids...)
	for len(deck) < size {
		deck = append(deck, "filler_unit")
	}
	return deck
}

func newTestDuel(t *testing.T, p1, p2 []string, mods ...func(*Config)) *State {
	t.Helper()
	cfg := Config{
		Decks:    [2][]string{makePaddedDeck(p1, 20), makePaddedDeck(p2, 20)},
		Shuffler: noShuffle{},
	}
	for _, m := range mods {
		m(&cfg)
	}
	s, err := NewDuel(cfg)
	if err != nil {
		t.Fatalf("NewDuel: %v", err)
	}
	return s
}

func noDeckOut(c *Config) { c.NoDeckOut = true }

func aiOpponent(c *Config) { c.AI[1] = true }

// apply dispatches ev and fails the test if it was rejected.
func apply(t *testing.T, s *State, ev Event) *State {
	t.Helper()
	next := Dispatch(s, ev)
	if next == s {
		t.Fatalf("%s was rejected (turn %d, %s, awaiting %s)\n%s", ev.Kind, s.Turn, s.Phase, s.Awaiting().Kind, log.FormatAll(s.Log))
	}
	if err := CheckZones(next); err != nil {
		t.Fatalf("after %s: %v", ev.Kind, err)
	}
	return next
}

// reject asserts that ev is a no-op in s.
func reject(t *testing.T, s *State, ev Event) {
	t.Helper()
	if next := Dispatch(s, ev); next != s {
		t.Fatalf("%s should have been rejected\n%s", ev.Kind, log.FormatAll(next.Log))
	}
}

// handID returns the instance id of the first hand card with the card id.
func handID(t *testing.T, s *State, p PlayerID, cardID string) int {
	t.Helper()
	for _, c := range s.Players[p].Hand {
		if c.Card.ID == cardID {
			return c.ID
		}
	}
	t.Fatalf("%s has no %s in hand", p, cardID)
	return 0
}

func handIndexOf(t *testing.T, s *State, p PlayerID, cardID string) int {
	t.Helper()
	return s.Players[p].HandIndex(handID(t, s, p, cardID))
}

// takeCard pulls a card out of p's deck or hand for board fixtures, and
// mints a new instance when neither holds one.
func takeCard(t *testing.T, d *State, p PlayerID, cardID string) *CardInstance {
	t.Helper()
	pl := d.Players[p]
	for i, c := range pl.Deck {
		if c.Card.ID == cardID {
			return d.take(Location{Player: p, Zone: ZoneDeck, Index: i})
		}
	}
	for i, c := range pl.Hand {
		if c.Card.ID == cardID {
			return d.take(Location{Player: p, Zone: ZoneHand, Index: i})
		}
	}
	card, ok := d.Catalog().Lookup(cardID)
	if !ok {
		t.Fatalf("unknown card %s", cardID)
	}
	return d.newInstance(card, p)
}

// putMonster places a fixture monster that is allowed to act this turn.
func putMonster(t *testing.T, s *State, p PlayerID, zone int, cardID string, pos Position, faceDown bool) *State {
	t.Helper()
	d := s.clone()
	c := takeCard(t, d, p, cardID)
	d.placeMonster(p, zone, c, pos, faceDown)
	c.SetOnTurn = 0
	return d
}

// putSpellTrap sets a fixture card face-down as if set on an earlier turn.
func putSpellTrap(t *testing.T, s *State, p PlayerID, zone int, cardID string) *State {
	t.Helper()
	d := s.clone()
	c := takeCard(t, d, p, cardID)
	d.placeSpellTrap(p, zone, c, true)
	c.SetOnTurn = 0
	return d
}

// putGraveyard drops a card into its owner's graveyard without triggers.
func putGraveyard(t *testing.T, s *State, p PlayerID, cardID string) *State {
	t.Helper()
	d := s.clone()
	c := takeCard(t, d, p, cardID)
	c.resetForZone()
	d.Players[p].Graveyard = append(d.Players[p].Graveyard, c)
	return d
}

// toPhase jumps the current turn forward to ph.
func toPhase(t *testing.T, s *State, ph Phase) *State {
	t.Helper()
	if s.Phase == ph {
		return s
	}
	return apply(t, s, SetPhase(ph))
}

// passTurns ends the given number of turns without acting.
func passTurns(t *testing.T, s *State, n int) *State {
	t.Helper()
	for i := 0; i < n; i++ {
		s = apply(t, s, EndTurn())
	}
	return s
}

func graveyardHas(s *State, p PlayerID, cardID string) bool {
	for _, c := range s.Players[p].Graveyard {
		if c.Card.ID == cardID {
			return true
		}
	}
	return false
}

func hasEvent(s *State, typ log.EventType) bool {
	return len(log.OfType(s.Log, typ)) > 0
}
