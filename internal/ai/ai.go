// Package ai is the built-in opponent: a deterministic policy that maps a
// duel state to the next intent, using the same event vocabulary as a human.
package ai

import (
	"github.com/peterkuimelis/duelcore/internal/game"
)

// Decide returns the intent for the player whose input s is waiting on.
// ok is false when that player has nothing to do.
func Decide(s *game.State) (game.Event, bool) {
	if s.Over() {
		return game.Event{}, false
	}
	aw := s.Awaiting()
	p := aw.Player
	var (
		ev game.Event
		ok = true
	)
	switch aw.Kind {
	case game.AwaitDeckSearch:
		if id, found := ChooseSearch(s, aw.Search); found {
			ev = game.SelectSearch(p, id)
		} else {
			ev = game.CancelSearch(p)
		}
	case game.AwaitEffectConfirm:
		ev = game.ConfirmEffect(ConfirmEffect(s, aw.Trigger))
	case game.AwaitShieldChoice:
		ev = game.ShieldChoice(p, true)
	case game.AwaitAttackResponse:
		ev = RespondToAttack(s)
	default:
		ev, ok = turnAction(s)
	}
	if !ok {
		return game.Event{}, false
	}
	src := aiSource
	ev.Source = &src
	return ev, true
}

// turnAction is the current player's move when nothing is pending.
func turnAction(s *game.State) (game.Event, bool) {
	p := s.Current
	switch s.Phase {
	case game.PhaseDraw:
		return game.SetPhase(game.PhaseStandby), true
	case game.PhaseStandby:
		return game.SetPhase(game.PhaseMain1), true
	case game.PhaseMain1:
		if ev, ok := summon(s, p); ok {
			return ev, true
		}
		return game.SetPhase(game.PhaseBattle), true
	case game.PhaseBattle:
		if ev, ok := attack(s, p); ok {
			return ev, true
		}
		return game.SetPhase(game.PhaseMain2), true
	case game.PhaseMain2:
		if ev, ok := summon(s, p); ok {
			return ev, true
		}
		return game.EndTurn(), true
	default:
		return game.EndTurn(), true
	}
}

// summon picks the first hand monster that can be normal summoned in
// attack position.
func summon(s *game.State, p game.PlayerID) (game.Event, bool) {
	pl := s.Players[p]
	for _, c := range pl.Hand {
		if !c.Card.IsMonster() || !game.CanNormalSummon(s, p, c.Card) {
			continue
		}
		zone, tributes, ok := game.SummonPlacement(pl, c.Card)
		if !ok {
			continue
		}
		ev := game.Summon(p, c.ID, zone, tributes...)
		if game.Dispatch(s, ev) != s {
			return ev, true
		}
	}
	return game.Event{}, false
}

// attack declares the next attack: each ready attacker in zone order goes
// direct when the opponent has no attack position monster, else at the
// first weaker attack position monster, else at the first face-up defense
// position monster it can destroy. Face-down monsters are never picked
// because their stats are hidden.
func attack(s *game.State, p game.PlayerID) (game.Event, bool) {
	opp := s.Opponent(p)
	for zone, m := range s.Players[p].Monsters {
		if m == nil || m.FaceDown || m.Position != game.PositionAttack || s.Attacked[p][zone] {
			continue
		}
		var ev game.Event
		switch target := pickTarget(opp, m.Card.ATK); {
		case !opp.HasAttackPositionMonster():
			ev = game.PrepareAttack(p, zone, -1)
		case target >= 0:
			ev = game.PrepareAttack(p, zone, target)
		default:
			continue
		}
		if game.Dispatch(s, ev) != s {
			return ev, true
		}
	}
	return game.Event{}, false
}

func pickTarget(opp *game.Player, atk int) int {
	for i, c := range opp.Monsters {
		if c != nil && !c.FaceDown && c.Position == game.PositionAttack && c.Card.ATK < atk {
			return i
		}
	}
	for i, c := range opp.Monsters {
		if c != nil && !c.FaceDown && c.Position == game.PositionDefense && c.Card.DEF < atk {
			return i
		}
	}
	return -1
}
