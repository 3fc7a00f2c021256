package game

import (
	"fmt"

	"github.com/peterkuimelis/duelcore/internal/log"
)

// BattleResult is the outcome of one damage calculation. Damage fields are
// battle damage dealt to that side's player.
type BattleResult struct {
	AttackerDestroyed bool
	DefenderDestroyed bool
	AttackerDamage    int
	DefenderDamage    int
}

// ResolveBattle computes a battle between attacker and defender. A nil
// defender is a direct attack. Face-down defenders are compared by their
// defense position stats; callers flip them first.
func ResolveBattle(attacker, defender *CardInstance) BattleResult {
	atk := attacker.Card.ATK
	if defender == nil {
		return BattleResult{DefenderDamage: atk}
	}
	var r BattleResult
	if defender.Position == PositionAttack {
		def := defender.Card.ATK
		switch {
		case atk > def:
			r.DefenderDestroyed = true
			r.DefenderDamage = atk - def
		case atk < def:
			r.AttackerDestroyed = true
			r.AttackerDamage = def - atk
		default:
			r.AttackerDestroyed = true
			r.DefenderDestroyed = true
		}
		return r
	}
	// Attacking a defense position monster never deals damage.
	if atk > defender.Card.DEF {
		r.DefenderDestroyed = true
	}
	return r
}

// canAttack checks the attacker side of an attack declaration.
func canAttack(s *State, p PlayerID, zone int) bool {
	if !p.valid() || p != s.Current || s.Phase != PhaseBattle || s.Turn <= 1 {
		return false
	}
	if s.Barrier != nil && s.Barrier.Affected == p {
		return false
	}
	if zone < 0 || zone >= ZoneCount || s.Attacked[p][zone] {
		return false
	}
	c := s.Players[p].Monsters[zone]
	return c != nil && !c.FaceDown && c.Position == PositionAttack
}

// declaration builds an attack from an event, or ok=false if illegal.
func declaration(s *State, ev Event) (AttackDecl, bool) {
	p := ev.Player
	if !canAttack(s, p, ev.AttackerZone) {
		return AttackDecl{}, false
	}
	opp := s.Opponent(p)
	decl := AttackDecl{
		Attacker:     p,
		AttackerZone: ev.AttackerZone,
		AttackerCard: s.Players[p].Monsters[ev.AttackerZone].ID,
		DefenderZone: -1,
	}
	if ev.DefenderZone < 0 {
		if opp.HasAttackPositionMonster() {
			return AttackDecl{}, false
		}
		return decl, true
	}
	if ev.DefenderZone >= ZoneCount || opp.Monsters[ev.DefenderZone] == nil {
		return AttackDecl{}, false
	}
	decl.DefenderZone = ev.DefenderZone
	decl.DefenderCard = opp.Monsters[ev.DefenderZone].ID
	return decl, true
}

func (s *State) declareAttack(decl AttackDecl) {
	s.Attacked[decl.Attacker][decl.AttackerZone] = true
	attacker := s.Players[decl.Attacker].Monsters[decl.AttackerZone]
	if decl.Direct() {
		s.emit(log.NewDirectAttackDeclareEvent(s.Turn, int(decl.Attacker), attacker.Card.Name))
	} else {
		defender := s.Players[decl.Defender()].Monsters[decl.DefenderZone]
		name := defender.Card.Name
		if defender.FaceDown {
			name = "face-down monster"
		}
		s.emit(log.NewAttackDeclareEvent(s.Turn, int(decl.Attacker), attacker.Card.Name, name))
	}
	a := decl
	s.Pending.Attack = &a
}

func applyPrepareAttack(s *State, ev Event) *State {
	if s.Blocked() {
		return nil
	}
	decl, ok := declaration(s, ev)
	if !ok {
		return nil
	}
	d := s.clone()
	d.source = ev.sourceIn(d, ev.Player)
	d.declareAttack(decl)
	return d
}

// applyBattle resolves the pending attack, or declares and resolves in one
// step when no attack is pending.
func applyBattle(s *State, ev Event) *State {
	aw := s.Awaiting()
	switch aw.Kind {
	case AwaitAttackResponse:
		a := aw.Attack
		if a.AttackerZone != ev.AttackerZone || a.DefenderZone != normalizeDefender(ev.DefenderZone) {
			return nil
		}
		d := s.clone()
		d.source = d.sourceFor(a.Attacker)
		d.resolveAttack()
		return d
	case AwaitNone:
		decl, ok := declaration(s, ev)
		if !ok {
			return nil
		}
		d := s.clone()
		d.source = ev.sourceIn(d, ev.Player)
		d.declareAttack(decl)
		d.resolveAttack()
		return d
	}
	return nil
}

func normalizeDefender(zone int) int {
	if zone < 0 {
		return -1
	}
	return zone
}

// settleAttack cancels the pending attack if either participant is gone.
func (s *State) settleAttack() {
	a := s.Pending.Attack
	if a == nil {
		return
	}
	attacker := s.Players[a.Attacker].Monsters[a.AttackerZone]
	if attacker == nil || attacker.ID != a.AttackerCard {
		s.emit(log.NewAttackNegatedEvent(s.Turn, int(a.Attacker), "attacker", "attacker left the field"))
		s.Pending.Attack = nil
		s.Pending.Shield = nil
		return
	}
	if a.Direct() {
		return
	}
	defender := s.Players[a.Defender()].Monsters[a.DefenderZone]
	if defender == nil || defender.ID != a.DefenderCard {
		s.emit(log.NewAttackNegatedEvent(s.Turn, int(a.Attacker), attacker.Card.Name, "attack target left the field"))
		s.Pending.Attack = nil
		s.Pending.Shield = nil
	}
}

// shieldInHand returns the hand index of a zero-damage hand trap, or -1.
func shieldInHand(pl *Player) int {
	for i, c := range pl.Hand {
		if e, ok := EffectFor(c.Card.ID); ok && e.HandTrap == HandTrapZeroDamage {
			return i
		}
	}
	return -1
}

// resolveAttack runs damage calculation for the pending attack. Order:
// destroyed monsters go to the graveyard (queuing their triggers), then
// battle damage is applied, then the duel checks for a winner.
func (s *State) resolveAttack() {
	s.settleAttack()
	a := s.Pending.Attack
	if a == nil {
		return
	}
	attackerSide := s.Players[a.Attacker]
	defenderSide := s.Players[a.Defender()]
	attacker := attackerSide.Monsters[a.AttackerZone]

	var defender *CardInstance
	if !a.Direct() {
		defender = defenderSide.Monsters[a.DefenderZone]
		if defender.FaceDown {
			defender.FaceDown = false
			s.emit(log.NewFlipEvent(s.Turn, s.phaseName(), int(a.Defender()), defender.Card.Name))
		}
	}

	result := ResolveBattle(attacker, defender)

	if result.DefenderDamage > 0 && !a.ShieldDecided {
		if hi := shieldInHand(defenderSide); hi >= 0 {
			if s.IsAI(a.Defender()) {
				a.ShieldDecided, a.ShieldUsed = true, true
				s.discard(a.Defender(), hi)
			} else {
				s.Pending.Shield = &ShieldPrompt{
					Player: a.Defender(),
					Card:   defenderSide.Hand[hi].ID,
					Damage: result.DefenderDamage,
				}
				return
			}
		}
	}
	if a.ShieldUsed {
		result.DefenderDamage = 0
	}

	bounce := false
	if defender != nil && result.DefenderDestroyed {
		if e, ok := EffectFor(defender.Card.ID); ok && e.BouncesAttacker {
			result.DefenderDestroyed = false
			bounce = !result.AttackerDestroyed
		}
	}

	s.emit(log.NewDamageCalcEvent(s.Turn, int(a.Attacker), damageSummary(attacker, defender, result)))

	if result.AttackerDestroyed {
		s.emit(log.NewBattleDestroyEvent(s.Turn, int(a.Attacker), attacker.Card.Name))
		c := s.vacateMonster(a.Attacker, a.AttackerZone)
		s.toGraveyard(c, "destroyed by battle")
	} else if bounce {
		s.returnToHand(a.Attacker, a.AttackerZone, defender.Card.Name)
	}
	if result.DefenderDestroyed {
		s.emit(log.NewBattleDestroyEvent(s.Turn, int(a.Defender()), defender.Card.Name))
		c := s.vacateMonster(a.Defender(), a.DefenderZone)
		s.toGraveyard(c, "destroyed by battle")
	}

	s.damage(a.Attacker, result.AttackerDamage, "battle damage")
	s.damage(a.Defender(), result.DefenderDamage, "battle damage")

	s.Pending.Attack = nil
	s.Pending.Shield = nil
}

func damageSummary(attacker, defender *CardInstance, r BattleResult) string {
	if defender == nil {
		return fmt.Sprintf("%s attacks directly for %d", attacker.Card.Name, r.DefenderDamage)
	}
	def := defender.Card.ATK
	if defender.Position == PositionDefense {
		def = defender.Card.DEF
	}
	return fmt.Sprintf("%s (ATK %d) vs %s (%s %d)", attacker.Card.Name, attacker.Card.ATK, defender.Card.Name, defender.Position, def)
}

// applyNegateAttack discards a negating hand trap to stop the pending attack.
func applyNegateAttack(s *State, ev Event) *State {
	aw := s.Awaiting()
	if aw.Kind != AwaitAttackResponse || ev.Player != aw.Player {
		return nil
	}
	pl := s.Players[ev.Player]
	if ev.HandIndex < 0 || ev.HandIndex >= len(pl.Hand) {
		return nil
	}
	if e, ok := EffectFor(pl.Hand[ev.HandIndex].Card.ID); !ok || e.HandTrap != HandTrapNegateAttack {
		return nil
	}

	d := s.clone()
	d.source = ev.sourceIn(d, ev.Player)
	a := d.Pending.Attack
	attacker := d.Players[a.Attacker].Monsters[a.AttackerZone]
	d.Pending.Attack = nil
	card := d.discard(ev.Player, ev.HandIndex)
	d.emit(log.NewAttackNegatedEvent(d.Turn, int(ev.Player), attacker.Card.Name, card.Card.Name))
	return d
}

// applyShieldChoice answers a pending shield prompt and finishes the battle.
func applyShieldChoice(s *State, ev Event) *State {
	aw := s.Awaiting()
	if aw.Kind != AwaitShieldChoice || ev.Player != aw.Player {
		return nil
	}
	d := s.clone()
	d.source = ev.sourceIn(d, ev.Player)
	prompt := d.Pending.Shield
	d.Pending.Shield = nil
	a := d.Pending.Attack
	a.ShieldDecided = true
	if ev.Use {
		if hi := d.Players[prompt.Player].HandIndex(prompt.Card); hi >= 0 {
			d.discard(prompt.Player, hi)
			a.ShieldUsed = true
		}
	}
	d.resolveAttack()
	return d
}
