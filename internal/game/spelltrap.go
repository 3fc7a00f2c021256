package game

import (
	"github.com/peterkuimelis/duelcore/internal/catalog"
	"github.com/peterkuimelis/duelcore/internal/log"
)

func applySetSpellTrap(s *State, ev Event) *State {
	p := ev.Player
	if !p.valid() || p != s.Current || !s.Phase.isMain() || s.Blocked() {
		return nil
	}
	pl := s.Players[p]
	hi := pl.HandIndex(ev.Card)
	if hi < 0 || pl.Hand[hi].Card.IsMonster() {
		return nil
	}
	if ev.Zone < 0 || ev.Zone >= ZoneCount || pl.SpellTraps[ev.Zone] != nil {
		return nil
	}

	d := s.clone()
	d.source = ev.sourceIn(d, p)
	card := d.Players[p].removeFromHand(hi)
	d.placeSpellTrap(p, ev.Zone, card, true)
	d.emit(log.NewSetSpellTrapEvent(d.Turn, d.phaseName(), int(p), ev.Zone))
	return d
}

// canActivateFromHand checks the timing of a spell played from the hand.
func canActivateFromHand(s *State, card *catalog.Card) bool {
	if card.Spell == catalog.SpellQuickPlay {
		return s.Phase.isMain() || s.Phase == PhaseBattle
	}
	return s.Phase.isMain()
}

// effectAllows runs the effect's own activation conditions.
func effectAllows(s *State, p PlayerID, self *CardInstance, eff *Effect) bool {
	if eff == nil {
		return true
	}
	if eff.BattlePhaseOnly && s.Phase != PhaseBattle {
		return false
	}
	if eff.CanActivate != nil && !eff.CanActivate(s, p, self) {
		return false
	}
	return true
}

// pickDiscard returns the hand index to discard for a discard cost: the
// requested instance, or the first other card in hand when none was
// requested. It returns -1 when the request names the activating card or a
// card not in hand.
func pickDiscard(pl *Player, self *CardInstance, requested int) int {
	if requested == self.ID {
		return -1
	}
	if requested != 0 {
		return pl.HandIndex(requested)
	}
	for i, c := range pl.Hand {
		if c.ID != self.ID {
			return i
		}
	}
	return -1
}

func applyActivateSpell(s *State, ev Event) *State {
	p := ev.Player
	if !p.valid() || p != s.Current || s.Blocked() {
		return nil
	}
	pl := s.Players[p]
	hi := pl.HandIndex(ev.Card)
	if hi < 0 {
		return nil
	}
	self := pl.Hand[hi]
	if !self.Card.IsSpell() || !canActivateFromHand(s, self.Card) {
		return nil
	}
	eff, _ := EffectFor(self.Card.ID)
	placed := eff != nil && eff.NeedsZone
	if placed && pl.FreeSpellTrapZone() < 0 {
		return nil
	}
	if !effectAllows(s, p, self, eff) {
		return nil
	}
	discardID := 0
	if eff != nil && eff.NeedsDiscard {
		di := pickDiscard(pl, self, ev.Discard)
		if di < 0 {
			return nil
		}
		discardID = pl.Hand[di].ID
	}
	target, ok := resolveTarget(s, eff, p, self, ev.Target)
	if !ok {
		return nil
	}

	d := s.clone()
	d.source = ev.sourceIn(d, p)
	dpl := d.Players[p]
	card := dpl.removeFromHand(hi)
	zone := -1
	if placed {
		zone = dpl.FreeSpellTrapZone()
		d.placeSpellTrap(p, zone, card, false)
	}
	d.emit(log.NewActivateEvent(d.Turn, d.phaseName(), int(p), card.Card.Name))
	if discardID != 0 {
		d.discard(p, dpl.HandIndex(discardID))
	}
	if eff != nil && eff.Cost != nil {
		eff.Cost(d, p, card)
	}

	chain := &Chain{}
	d.addToChain(chain, ChainLink{Card: card, Effect: eff, Controller: p, Target: target, Zone: zone})
	d.resolveChain(chain)
	d.settleAttack()
	return d
}

func applyActivateFromField(s *State, ev Event) *State {
	p := ev.Player
	if !p.valid() || ev.Zone < 0 || ev.Zone >= ZoneCount {
		return nil
	}
	pl := s.Players[p]
	self := pl.SpellTraps[ev.Zone]
	if self == nil || !self.FaceDown {
		return nil
	}

	responding := false
	switch aw := s.Awaiting(); aw.Kind {
	case AwaitNone:
	case AwaitAttackResponse:
		if aw.Player != p {
			return nil
		}
		responding = true
	default:
		return nil
	}
	if responding && SpellSpeed(self.Card) < MinResponseSpeed {
		return nil
	}

	switch {
	case self.Card.IsTrap(), self.Card.Spell == catalog.SpellQuickPlay:
		if self.SetOnTurn >= s.Turn {
			return nil
		}
	default:
		if p != s.Current || !s.Phase.isMain() {
			return nil
		}
	}

	eff, _ := EffectFor(self.Card.ID)
	if !effectAllows(s, p, self, eff) {
		return nil
	}
	discardID := 0
	if eff != nil && eff.NeedsDiscard {
		di := pickDiscard(pl, self, ev.Discard)
		if di < 0 {
			return nil
		}
		discardID = pl.Hand[di].ID
	}
	target, ok := resolveTarget(s, eff, p, self, ev.Target)
	if !ok {
		return nil
	}

	d := s.clone()
	d.source = ev.sourceIn(d, p)
	card := d.Players[p].SpellTraps[ev.Zone]
	card.FaceDown = false
	d.emit(log.NewActivateEvent(d.Turn, d.phaseName(), int(p), card.Card.Name))
	if discardID != 0 {
		d.discard(p, d.Players[p].HandIndex(discardID))
	}
	if eff != nil && eff.Cost != nil {
		eff.Cost(d, p, card)
	}

	chain := &Chain{}
	d.addToChain(chain, ChainLink{Card: card, Effect: eff, Controller: p, Target: target, Zone: ev.Zone})
	d.resolveChain(chain)
	d.settleAttack()
	return d
}
