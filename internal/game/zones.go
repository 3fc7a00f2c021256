package game

import (
	"github.com/peterkuimelis/duelcore/internal/log"
)

// vacateMonster empties a monster zone and settles everything tied to it:
// per-zone turn flags, any equip card attached to that zone and a borrow
// record for the card.
func (s *State) vacateMonster(p PlayerID, zone int) *CardInstance {
	pl := s.Players[p]
	card := pl.Monsters[zone]
	if card == nil {
		return nil
	}
	pl.Monsters[zone] = nil
	s.Attacked[p][zone] = false
	s.PositionChanged[p][zone] = false
	s.detachEquipsFrom(p, zone)
	s.dropBorrow(card.ID)
	return card
}

// dropBorrow forgets the borrow record for a card. It builds a new slice so
// callers ranging over the old one are unaffected.
func (s *State) dropBorrow(id int) {
	var keep []Borrow
	for _, b := range s.Borrowed {
		if b.Card != id {
			keep = append(keep, b)
		}
	}
	s.Borrowed = keep
}

// vacateSpellTrap empties a spell/trap zone. Leaving the field ends any
// lingering effect or equip link the card had.
func (s *State) vacateSpellTrap(p PlayerID, zone int) *CardInstance {
	pl := s.Players[p]
	card := pl.SpellTraps[zone]
	if card == nil {
		return nil
	}
	pl.SpellTraps[zone] = nil
	if s.Barrier != nil && s.Barrier.Card == card.ID {
		s.Barrier = nil
	}
	if card.EquippedTo >= 0 {
		target := card.EquippedTo
		card.EquippedTo = -1
		s.onEquipLost(p, target, card)
	}
	return card
}

// toGraveyard puts a card that has already left its zone into its owner's
// graveyard and evaluates its graveyard trigger.
func (s *State) toGraveyard(card *CardInstance, reason string) {
	card.resetForZone()
	owner := s.Players[card.Owner]
	owner.Graveyard = append(owner.Graveyard, card)
	s.emit(log.NewSendToGraveyardEvent(s.Turn, s.phaseName(), int(card.Owner), card.Card.Name, reason))
	s.probeTrigger(HookSentToGraveyard, card, card.Owner)
}

func (s *State) destroyMonster(p PlayerID, zone int, reason string) {
	card := s.vacateMonster(p, zone)
	if card == nil {
		return
	}
	s.emit(log.NewDestroyEvent(s.Turn, s.phaseName(), int(p), card.Card.Name, reason))
	s.toGraveyard(card, reason)
}

func (s *State) destroySpellTrap(p PlayerID, zone int, reason string) {
	card := s.vacateSpellTrap(p, zone)
	if card == nil {
		return
	}
	s.emit(log.NewDestroyEvent(s.Turn, s.phaseName(), int(p), card.Card.Name, reason))
	s.toGraveyard(card, reason)
}

// destroyMonsters destroys every monster of p accepted by match, walking the
// zones from the last index to the first. Each destroyed monster's trigger
// is evaluated before the next one is destroyed.
func (s *State) destroyMonsters(p PlayerID, match func(*CardInstance) bool, reason string) int {
	n := 0
	for zone := ZoneCount - 1; zone >= 0; zone-- {
		card := s.Players[p].Monsters[zone]
		if card == nil || (match != nil && !match(card)) {
			continue
		}
		s.destroyMonster(p, zone, reason)
		n++
	}
	return n
}

// destroySpellTraps destroys every spell/trap of p except the one with id skip.
func (s *State) destroySpellTraps(p PlayerID, skip int, reason string) int {
	n := 0
	for zone := ZoneCount - 1; zone >= 0; zone-- {
		card := s.Players[p].SpellTraps[zone]
		if card == nil || card.ID == skip {
			continue
		}
		s.destroySpellTrap(p, zone, reason)
		n++
	}
	return n
}

// discard moves a hand card to the graveyard.
func (s *State) discard(p PlayerID, handIndex int) *CardInstance {
	pl := s.Players[p]
	if handIndex < 0 || handIndex >= len(pl.Hand) {
		return nil
	}
	card := pl.removeFromHand(handIndex)
	s.emit(log.NewDiscardEvent(s.Turn, s.phaseName(), int(p), card.Card.Name))
	s.toGraveyard(card, "discarded")
	return card
}

// returnToHand bounces a monster to its owner's hand.
func (s *State) returnToHand(p PlayerID, zone int, reason string) {
	card := s.vacateMonster(p, zone)
	if card == nil {
		return
	}
	card.resetForZone()
	owner := s.Players[card.Owner]
	owner.Hand = append(owner.Hand, card)
	s.emit(log.NewReturnToHandEvent(s.Turn, s.phaseName(), int(card.Owner), card.Card.Name, reason))
}

// placeMonster puts a card into an empty monster zone.
func (s *State) placeMonster(p PlayerID, zone int, card *CardInstance, pos Position, faceDown bool) {
	card.Position = pos
	card.FaceDown = faceDown
	card.SetOnTurn = s.Turn
	card.EquippedTo = -1
	s.Players[p].Monsters[zone] = card
	s.Attacked[p][zone] = false
	s.PositionChanged[p][zone] = false
}

func (s *State) placeSpellTrap(p PlayerID, zone int, card *CardInstance, faceDown bool) {
	card.Position = PositionAttack
	card.FaceDown = faceDown
	card.SetOnTurn = s.Turn
	card.EquippedTo = -1
	s.Players[p].SpellTraps[zone] = card
}

// locateField finds a card on the field by instance id.
func (s *State) locateField(id int) (Location, bool) {
	for p, pl := range s.Players {
		for i, c := range pl.Monsters {
			if c != nil && c.ID == id {
				return Location{PlayerID(p), ZoneMonster, i}, true
			}
		}
		for i, c := range pl.SpellTraps {
			if c != nil && c.ID == id {
				return Location{PlayerID(p), ZoneSpellTrap, i}, true
			}
		}
	}
	return Location{}, false
}
