package ai

import (
	"github.com/peterkuimelis/duelcore/internal/game"
	"github.com/peterkuimelis/duelcore/internal/log"
)

var aiSource = log.SourceAI

// ConfirmEffect decides whether to use an optional trigger. Every optional
// trigger in the pool is a deck search, and the AI takes all of them; the
// choice of card is made by ChooseSearch.
func ConfirmEffect(s *game.State, t *game.Trigger) bool {
	return t != nil
}

// ChooseSearch picks a deck card for a search: the highest ATK for an
// attack-limited search, the highest DEF for a defense-limited one, and the
// first candidate otherwise. Ties keep the earlier candidate.
func ChooseSearch(s *game.State, search *game.DeckSearch) (int, bool) {
	if search == nil || len(search.Candidates) == 0 {
		return 0, false
	}
	stat := func(c *game.CardInstance) int { return 0 }
	switch search.Filter {
	case "atk_1500":
		stat = func(c *game.CardInstance) int { return c.Card.ATK }
	case "def_1500":
		stat = func(c *game.CardInstance) int { return c.Card.DEF }
	}
	best, bestStat := 0, -1
	for _, id := range search.Candidates {
		c, _, ok := s.Find(id)
		if !ok {
			continue
		}
		if v := stat(c); v > bestStat {
			best, bestStat = id, v
		}
	}
	return best, best != 0
}

// RespondToAttack answers an attack on the AI. A negating hand trap is used
// when the attack would destroy the defender or deal damage; otherwise the
// first set battle trap that can be activated is; otherwise the attack
// resolves.
func RespondToAttack(s *game.State) game.Event {
	aw := s.Awaiting()
	a := aw.Attack
	p := aw.Player
	resolve := game.Battle(a.Attacker, a.AttackerZone, a.DefenderZone)

	attacker := s.Players[a.Attacker].Monsters[a.AttackerZone]
	var defender *game.CardInstance
	if !a.Direct() {
		defender = s.Players[p].Monsters[a.DefenderZone]
	}
	threat := true
	if attacker != nil {
		r := game.ResolveBattle(attacker, defender)
		threat = r.DefenderDestroyed || r.DefenderDamage > 0
	}

	pl := s.Players[p]
	if threat {
		for i, c := range pl.Hand {
			if e, ok := game.EffectFor(c.Card.ID); ok && e.HandTrap == game.HandTrapNegateAttack {
				if ev := game.NegateAttack(p, i); game.Dispatch(s, ev) != s {
					return ev
				}
			}
		}
	}
	for zone, c := range pl.SpellTraps {
		if c == nil || !c.FaceDown {
			continue
		}
		if e, ok := game.EffectFor(c.Card.ID); !ok || !e.BattlePhaseOnly {
			continue
		}
		if ev := game.ActivateFromField(p, zone, nil); game.Dispatch(s, ev) != s {
			return ev
		}
	}
	return resolve
}
