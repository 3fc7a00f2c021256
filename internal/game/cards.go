package game

import (
	"github.com/peterkuimelis/duelcore/internal/log"
)

func init() {
	register("greed_protocol", greedProtocol())
	register("reboot_protocol", rebootProtocol())
	register("void_purge", voidPurge())
	register("overload_strike", overloadStrike())
	register("light_barrier", lightBarrier())
	register("ice_breaker", iceBreaker())
	register("emp_cascade", empCascade())
	register("hostile_takeover", hostileTakeover())
	register("resurrection_protocol", resurrectionProtocol())
	register("blackout_patch", blackoutPatch())
	register("arc_storm", arcStorm())
	register("pinpoint_strike", pinpointStrike())
	register("reflector_array", reflectorArray())

	register("scout_drone", scoutDrone())
	register("archive_witch", archiveWitch())
	register("recon_operative", reconOperative())
	register("phase_shifter", phaseShifter())
	register("decoy_drone", decoyDrone())
	register("null_signal", nullSignal())
}

// --- Target helpers ---

func graveyardMonsterAt(s *State, t Target) *CardInstance {
	if !t.Player.valid() {
		return nil
	}
	gy := s.Players[t.Player].Graveyard
	if t.Index < 0 || t.Index >= len(gy) || !gy[t.Index].Card.IsMonster() {
		return nil
	}
	return gy[t.Index]
}

func firstGraveyardMonster(s *State, p PlayerID) (Target, bool) {
	for i, c := range s.Players[p].Graveyard {
		if c.Card.IsMonster() {
			return Target{Player: p, Index: i}, true
		}
	}
	return Target{}, false
}

func hasFaceUpMonster(pl *Player) bool {
	for _, c := range pl.Monsters {
		if c != nil && !c.FaceDown {
			return true
		}
	}
	return false
}

func firstFaceUpMonster(pl *Player) (int, bool) {
	for i, c := range pl.Monsters {
		if c != nil && !c.FaceDown {
			return i, true
		}
	}
	return -1, false
}

func spellTrapAt(s *State, t Target) *CardInstance {
	if !t.Player.valid() || t.Index < 0 || t.Index >= ZoneCount {
		return nil
	}
	return s.Players[t.Player].SpellTraps[t.Index]
}

func opponentMonsterAt(s *State, p PlayerID, t Target) *CardInstance {
	if t.Player != p.Opponent() || t.Index < 0 || t.Index >= ZoneCount {
		return nil
	}
	return s.Players[t.Player].Monsters[t.Index]
}

func anyMonsters(s *State) bool {
	return s.Players[0].MonsterCount()+s.Players[1].MonsterCount() > 0
}

// specialSummon places a card that has already left its zone into p's
// first free monster zone. It returns the zone, or -1 if there was none.
func (s *State) specialSummon(p PlayerID, card *CardInstance, pos Position) int {
	zone := s.Players[p].FreeMonsterZone()
	if zone < 0 {
		s.toGraveyard(card, "no free zone")
		return -1
	}
	s.placeMonster(p, zone, card, pos, false)
	s.emit(log.NewSpecialSummonEvent(s.Turn, s.phaseName(), int(p), card.Card.Name, card.Card.ATK, zone))
	return zone
}

// reanimate summons the graveyard monster at t to p's field in attack
// position and returns the zone it landed in.
func (s *State) reanimate(p PlayerID, t *Target) int {
	if t == nil || graveyardMonsterAt(s, *t) == nil {
		return -1
	}
	card := s.take(Location{Player: t.Player, Zone: ZoneGraveyard, Index: t.Index})
	return s.specialSummon(p, card, PositionAttack)
}

func noEffect(s *State, link *ChainLink) {
	s.emit(log.NewNoEffectEvent(s.Turn, s.phaseName(), int(link.Controller), link.Card.Card.Name))
}

// --- Spells ---

// greedProtocol: Normal Spell. Draw 2 cards.
func greedProtocol() *Effect {
	return &Effect{
		Hook: HookActivation,
		CanActivate: func(s *State, p PlayerID, self *CardInstance) bool {
			return len(s.Players[p].Deck) >= 2
		},
		Resolve: func(s *State, link *ChainLink) {
			for i := 0; i < 2; i++ {
				s.draw(link.Controller)
			}
		},
	}
}

// rebootProtocol: Normal Spell. Special Summon a monster from either
// graveyard in attack position. With nothing to target it does nothing.
func rebootProtocol() *Effect {
	return &Effect{
		Hook:   HookActivation,
		Target: TargetGraveyard,
		CanActivate: func(s *State, p PlayerID, self *CardInstance) bool {
			return s.Players[p].FreeMonsterZone() >= 0
		},
		DefaultTarget: func(s *State, p PlayerID, self *CardInstance) (Target, bool) {
			if t, ok := firstGraveyardMonster(s, p); ok {
				return t, true
			}
			return firstGraveyardMonster(s, p.Opponent())
		},
		ValidTarget: func(s *State, p PlayerID, self *CardInstance, t Target) bool {
			return graveyardMonsterAt(s, t) != nil
		},
		Resolve: func(s *State, link *ChainLink) {
			if s.reanimate(link.Controller, link.Target) < 0 {
				noEffect(s, link)
			}
		},
	}
}

// voidPurge: Normal Spell. Destroy all monsters on the field.
func voidPurge() *Effect {
	return &Effect{
		Hook: HookActivation,
		CanActivate: func(s *State, p PlayerID, self *CardInstance) bool {
			return anyMonsters(s)
		},
		Resolve: func(s *State, link *ChainLink) {
			s.destroyMonsters(link.Controller, nil, link.Card.Card.Name)
			s.destroyMonsters(link.Controller.Opponent(), nil, link.Card.Card.Name)
		},
	}
}

// overloadStrike: Normal Spell. Destroy all monsters the opponent controls.
func overloadStrike() *Effect {
	return &Effect{
		Hook: HookActivation,
		CanActivate: func(s *State, p PlayerID, self *CardInstance) bool {
			return s.Opponent(p).MonsterCount() > 0
		},
		Resolve: func(s *State, link *ChainLink) {
			s.destroyMonsters(link.Controller.Opponent(), nil, link.Card.Card.Name)
		},
	}
}

// lightBarrier: Normal Spell that stays on the field. The opponent cannot
// declare attacks until the end of their third turn after activation.
func lightBarrier() *Effect {
	return &Effect{
		Hook:      HookActivation,
		NeedsZone: true,
		CanActivate: func(s *State, p PlayerID, self *CardInstance) bool {
			return s.Barrier == nil
		},
		Resolve: func(s *State, link *ChainLink) {
			s.Barrier = &TimedEffect{
				Card:      link.Card.ID,
				Name:      link.Card.Card.Name,
				Owner:     link.Controller,
				Zone:      link.Zone,
				Affected:  link.Controller.Opponent(),
				TurnsLeft: 3,
			}
		},
	}
}

// iceBreaker: Quick-Play Spell. Destroy 1 spell/trap on the field.
func iceBreaker() *Effect {
	return &Effect{
		Hook:   HookActivation,
		Target: TargetSpellTrap,
		CanActivate: func(s *State, p PlayerID, self *CardInstance) bool {
			for _, pl := range s.Players {
				for _, c := range pl.SpellTraps {
					if c != nil && c.ID != self.ID {
						return true
					}
				}
			}
			return false
		},
		DefaultTarget: func(s *State, p PlayerID, self *CardInstance) (Target, bool) {
			for _, side := range []PlayerID{p.Opponent(), p} {
				for i, c := range s.Players[side].SpellTraps {
					if c != nil && c.ID != self.ID {
						return Target{Player: side, Index: i}, true
					}
				}
			}
			return Target{}, false
		},
		ValidTarget: func(s *State, p PlayerID, self *CardInstance, t Target) bool {
			c := spellTrapAt(s, t)
			return c != nil && c.ID != self.ID
		},
		Resolve: func(s *State, link *ChainLink) {
			if link.Target == nil {
				noEffect(s, link)
				return
			}
			c := spellTrapAt(s, *link.Target)
			if c == nil || c.ID == link.Card.ID {
				noEffect(s, link)
				return
			}
			s.destroySpellTrap(link.Target.Player, link.Target.Index, link.Card.Card.Name)
		},
	}
}

// empCascade: Normal Spell. Destroy all spells and traps on the field.
func empCascade() *Effect {
	return &Effect{
		Hook: HookActivation,
		CanActivate: func(s *State, p PlayerID, self *CardInstance) bool {
			for _, pl := range s.Players {
				for _, c := range pl.SpellTraps {
					if c != nil && c.ID != self.ID {
						return true
					}
				}
			}
			return false
		},
		Resolve: func(s *State, link *ChainLink) {
			s.destroySpellTraps(link.Controller, link.Card.ID, link.Card.Card.Name)
			s.destroySpellTraps(link.Controller.Opponent(), link.Card.ID, link.Card.Card.Name)
		},
	}
}

// hostileTakeover: Normal Spell. Take control of 1 face-up opponent
// monster until the end of this turn.
func hostileTakeover() *Effect {
	return &Effect{
		Hook:   HookActivation,
		Target: TargetOpponentMonster,
		CanActivate: func(s *State, p PlayerID, self *CardInstance) bool {
			return s.Players[p].FreeMonsterZone() >= 0 && hasFaceUpMonster(s.Opponent(p))
		},
		DefaultTarget: func(s *State, p PlayerID, self *CardInstance) (Target, bool) {
			if i, ok := firstFaceUpMonster(s.Opponent(p)); ok {
				return Target{Player: p.Opponent(), Index: i}, true
			}
			return Target{}, false
		},
		ValidTarget: func(s *State, p PlayerID, self *CardInstance, t Target) bool {
			c := opponentMonsterAt(s, p, t)
			return c != nil && !c.FaceDown
		},
		Resolve: func(s *State, link *ChainLink) {
			if link.Target == nil {
				noEffect(s, link)
				return
			}
			if c := opponentMonsterAt(s, link.Controller, *link.Target); c == nil || c.FaceDown {
				noEffect(s, link)
				return
			}
			s.takeControl(link.Controller, link.Target.Index)
		},
	}
}

// resurrectionProtocol: Equip Spell. Pay 800 LP; Special Summon a monster
// from your graveyard in attack position and equip it with this card. When
// this card leaves the field, destroy that monster.
func resurrectionProtocol() *Effect {
	const cost = 800
	return &Effect{
		Hook:          HookActivation,
		Target:        TargetGraveyard,
		NeedsZone:     true,
		BindsEquipped: true,
		CanActivate: func(s *State, p PlayerID, self *CardInstance) bool {
			_, hasTarget := firstGraveyardMonster(s, p)
			return s.Players[p].LifePoints > cost && hasTarget && s.Players[p].FreeMonsterZone() >= 0
		},
		Cost: func(s *State, p PlayerID, self *CardInstance) {
			s.setLifePoints(p, s.Players[p].LifePoints-cost, "paid for "+self.Card.Name)
		},
		DefaultTarget: func(s *State, p PlayerID, self *CardInstance) (Target, bool) {
			return firstGraveyardMonster(s, p)
		},
		ValidTarget: func(s *State, p PlayerID, self *CardInstance, t Target) bool {
			return t.Player == p && graveyardMonsterAt(s, t) != nil
		},
		Resolve: func(s *State, link *ChainLink) {
			zone := s.reanimate(link.Controller, link.Target)
			if zone < 0 {
				noEffect(s, link)
				return
			}
			s.attachEquip(link.Controller, link.Zone, zone)
		},
	}
}

// blackoutPatch: Quick-Play Spell. Change 1 face-up opponent monster to
// face-down defense position.
func blackoutPatch() *Effect {
	return &Effect{
		Hook:   HookActivation,
		Target: TargetOpponentMonster,
		CanActivate: func(s *State, p PlayerID, self *CardInstance) bool {
			return hasFaceUpMonster(s.Opponent(p))
		},
		DefaultTarget: func(s *State, p PlayerID, self *CardInstance) (Target, bool) {
			if i, ok := firstFaceUpMonster(s.Opponent(p)); ok {
				return Target{Player: p.Opponent(), Index: i}, true
			}
			return Target{}, false
		},
		ValidTarget: func(s *State, p PlayerID, self *CardInstance, t Target) bool {
			c := opponentMonsterAt(s, p, t)
			return c != nil && !c.FaceDown
		},
		Resolve: func(s *State, link *ChainLink) {
			if link.Target == nil {
				noEffect(s, link)
				return
			}
			c := opponentMonsterAt(s, link.Controller, *link.Target)
			if c == nil || c.FaceDown {
				noEffect(s, link)
				return
			}
			c.FaceDown = true
			c.Position = PositionDefense
			s.emit(log.NewFlipFaceDownEvent(s.Turn, s.phaseName(), int(link.Controller), c.Card.Name))
		},
	}
}

// arcStorm: Normal Spell. Discard 1 card; destroy all opponent monsters.
func arcStorm() *Effect {
	return &Effect{
		Hook:         HookActivation,
		NeedsDiscard: true,
		CanActivate: func(s *State, p PlayerID, self *CardInstance) bool {
			return s.Opponent(p).MonsterCount() > 0
		},
		Resolve: func(s *State, link *ChainLink) {
			s.destroyMonsters(link.Controller.Opponent(), nil, link.Card.Card.Name)
		},
	}
}

// pinpointStrike: Normal Spell. Destroy the opponent's face-up monster
// with the lowest ATK; the first zone wins ties.
func pinpointStrike() *Effect {
	return &Effect{
		Hook: HookActivation,
		CanActivate: func(s *State, p PlayerID, self *CardInstance) bool {
			return hasFaceUpMonster(s.Opponent(p))
		},
		Resolve: func(s *State, link *ChainLink) {
			opp := link.Controller.Opponent()
			lowest := -1
			for i, c := range s.Players[opp].Monsters {
				if c == nil || c.FaceDown {
					continue
				}
				if lowest < 0 || c.Card.ATK < s.Players[opp].Monsters[lowest].Card.ATK {
					lowest = i
				}
			}
			if lowest < 0 {
				noEffect(s, link)
				return
			}
			s.destroyMonster(opp, lowest, link.Card.Card.Name)
		},
	}
}

// --- Traps ---

// reflectorArray: Normal Trap. When an opponent's monster declares an
// attack: destroy all attack position monsters the opponent controls.
func reflectorArray() *Effect {
	return &Effect{
		Hook:            HookActivation,
		BattlePhaseOnly: true,
		CanActivate: func(s *State, p PlayerID, self *CardInstance) bool {
			return s.Pending.Attack != nil && s.Pending.Attack.Attacker == p.Opponent()
		},
		Resolve: func(s *State, link *ChainLink) {
			s.destroyMonsters(link.Controller.Opponent(), func(c *CardInstance) bool {
				return !c.FaceDown && c.Position == PositionAttack
			}, link.Card.Card.Name)
		},
	}
}

// --- Monsters ---

// scoutDrone: when sent to the graveyard, search a monster with <= 1500 ATK.
func scoutDrone() *Effect {
	return &Effect{Hook: HookSentToGraveyard, Search: "atk_1500"}
}

// archiveWitch: when sent to the graveyard, search a monster with <= 1500 DEF.
func archiveWitch() *Effect {
	return &Effect{Hook: HookSentToGraveyard, Search: "def_1500"}
}

// reconOperative: when normal summoned, search a Drone card.
func reconOperative() *Effect {
	return &Effect{Hook: HookNormalSummon, Search: "drone"}
}

func phaseShifter() *Effect {
	return &Effect{BouncesAttacker: true}
}

// decoyDrone: discard from the hand to take no battle damage.
func decoyDrone() *Effect {
	return &Effect{HandTrap: HandTrapZeroDamage, Speed: 2}
}

// nullSignal: discard from the hand to negate an attack. When sent to the
// graveyard, search a Drone card.
func nullSignal() *Effect {
	return &Effect{
		HandTrap: HandTrapNegateAttack,
		Speed:    2,
		Hook:     HookSentToGraveyard,
		Search:   "drone",
	}
}
