package game

import (
	"fmt"

	"github.com/peterkuimelis/duelcore/internal/catalog"
)

// Action is a legal intent together with a human-readable description.
type Action struct {
	Event Event  `json:"event"`
	Desc  string `json:"desc"`
}

func (a Action) String() string {
	if a.Desc != "" {
		return a.Desc
	}
	return string(a.Event.Kind)
}

// Actions lists the intents player p can submit in s. Every listed event is
// accepted by Dispatch. Summons use the first free zone and the first
// occupied zones as tributes; attack responses include letting the attack
// resolve.
func Actions(s *State, p PlayerID) []Action {
	if s.Over() || !p.valid() {
		return nil
	}
	var out []Action
	add := func(ev Event, format string, args ...any) {
		if Dispatch(s, ev) == s {
			return
		}
		out = append(out, Action{Event: ev, Desc: fmt.Sprintf(format, args...)})
	}

	aw := s.Awaiting()
	switch aw.Kind {
	case AwaitDeckSearch:
		if aw.Player != p {
			return nil
		}
		for _, id := range aw.Search.Candidates {
			c, _, _ := s.Find(id)
			add(SelectSearch(p, id), "Add %s (ATK %d / DEF %d) to hand", c.Card.Name, c.Card.ATK, c.Card.DEF)
		}
		add(CancelSearch(p), "Cancel search")
		return out
	case AwaitEffectConfirm:
		if aw.Player != p {
			return nil
		}
		add(ConfirmEffect(true), "Activate %s effect", aw.Trigger.SourceName)
		add(ConfirmEffect(false), "Decline %s effect", aw.Trigger.SourceName)
		return out
	case AwaitShieldChoice:
		if aw.Player != p {
			return nil
		}
		c, _, _ := s.Find(aw.Shield.Card)
		add(ShieldChoice(p, true), "Discard %s to take no damage (%d)", c.Card.Name, aw.Shield.Damage)
		add(ShieldChoice(p, false), "Take %d damage", aw.Shield.Damage)
		return out
	case AwaitAttackResponse:
		if aw.Player != p {
			return nil
		}
		for i, c := range s.Players[p].Hand {
			add(NegateAttack(p, i), "Discard %s to negate the attack", c.Card.Name)
		}
		out = append(out, fieldActivations(s, p)...)
		a := aw.Attack
		add(Battle(a.Attacker, a.AttackerZone, a.DefenderZone), "No response")
		return out
	}

	out = append(out, fieldActivations(s, p)...)
	if p != s.Current {
		return out
	}
	out = append(out, mainPhaseActions(s, p)...)
	out = append(out, attackActions(s, p)...)
	for ph := s.Phase + 1; ph < PhaseEnd; ph++ {
		add(SetPhase(ph), "Enter %s", ph)
	}
	add(EndTurn(), "End Turn")
	return out
}

func fieldActivations(s *State, p PlayerID) []Action {
	var out []Action
	for zone, c := range s.Players[p].SpellTraps {
		if c == nil || !c.FaceDown {
			continue
		}
		ev := ActivateFromField(p, zone, nil)
		if Dispatch(s, ev) != s {
			out = append(out, Action{Event: ev, Desc: fmt.Sprintf("Activate %s in Spell/Trap Zone %d", c.Card.Name, zone+1)})
		}
	}
	return out
}

func mainPhaseActions(s *State, p PlayerID) []Action {
	if !s.Phase.isMain() {
		return nil
	}
	var out []Action
	pl := s.Players[p]
	for _, c := range pl.Hand {
		switch {
		case c.Card.IsMonster():
			zone, tributes, ok := SummonPlacement(pl, c.Card)
			if !ok {
				continue
			}
			if ev := Summon(p, c.ID, zone, tributes...); Dispatch(s, ev) != s {
				if len(tributes) > 0 {
					out = append(out, Action{Event: ev, Desc: fmt.Sprintf("Tribute Summon %s (ATK %d), tributing %d", c.Card.Name, c.Card.ATK, len(tributes))})
				} else {
					out = append(out, Action{Event: ev, Desc: fmt.Sprintf("Normal Summon %s (ATK %d) to Zone %d", c.Card.Name, c.Card.ATK, zone+1)})
				}
			}
			if ev := SetMonster(p, c.ID, zone, tributes...); Dispatch(s, ev) != s {
				out = append(out, Action{Event: ev, Desc: fmt.Sprintf("Set %s in Zone %d", c.Card.Name, zone+1)})
			}
		default:
			if ev := ActivateSpell(p, c.ID, nil); c.Card.IsSpell() && Dispatch(s, ev) != s {
				out = append(out, Action{Event: ev, Desc: fmt.Sprintf("Activate %s", c.Card.Name)})
			}
			if zone := pl.FreeSpellTrapZone(); zone >= 0 {
				out = append(out, Action{Event: SetSpellTrap(p, c.ID, zone), Desc: fmt.Sprintf("Set %s in Spell/Trap Zone %d", c.Card.Name, zone+1)})
			}
		}
	}
	for zone, c := range pl.Monsters {
		if c == nil {
			continue
		}
		ev := ChangePosition(p, zone, nil)
		if Dispatch(s, ev) == s {
			continue
		}
		if c.FaceDown {
			out = append(out, Action{Event: ev, Desc: fmt.Sprintf("Flip %s in Zone %d", c.Card.Name, zone+1)})
		} else {
			out = append(out, Action{Event: ev, Desc: fmt.Sprintf("Change %s to %s position", c.Card.Name, c.Position.Toggle())})
		}
	}
	return out
}

func attackActions(s *State, p PlayerID) []Action {
	if s.Phase != PhaseBattle {
		return nil
	}
	var out []Action
	opp := s.Opponent(p)
	for zone, m := range s.Players[p].Monsters {
		if !canAttack(s, p, zone) {
			continue
		}
		if !opp.HasAttackPositionMonster() {
			out = append(out, Action{
				Event: PrepareAttack(p, zone, -1),
				Desc:  fmt.Sprintf("Direct attack with %s (ATK %d)", m.Card.Name, m.Card.ATK),
			})
		}
		for dz, d := range opp.Monsters {
			if d == nil {
				continue
			}
			target := d.DisplayString()
			if d.FaceDown {
				target = fmt.Sprintf("face-down monster in Zone %d", dz+1)
			}
			out = append(out, Action{
				Event: PrepareAttack(p, zone, dz),
				Desc:  fmt.Sprintf("Attack with %s → %s", m.Card.Name, target),
			})
		}
	}
	return out
}

// SummonPlacement picks the destination and tributes for normal summoning
// card: the first free zone, or the first occupied zones as tributes with
// the first of them as the destination.
func SummonPlacement(pl *Player, card *catalog.Card) (zone int, tributes []int, ok bool) {
	need := TributesRequired(card.Level)
	if need == 0 {
		zone = pl.FreeMonsterZone()
		return zone, nil, zone >= 0
	}
	occupied := pl.OccupiedMonsterZones()
	if len(occupied) < need {
		return -1, nil, false
	}
	tributes = occupied[:need]
	return tributes[0], tributes, true
}
