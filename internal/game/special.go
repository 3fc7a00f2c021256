package game

import (
	"github.com/peterkuimelis/duelcore/internal/log"
)

// takeControl moves the opponent's monster at zone to p's first free zone
// and records it for return at the end of the turn.
func (s *State) takeControl(p PlayerID, zone int) {
	opp := p.Opponent()
	free := s.Players[p].FreeMonsterZone()
	if free < 0 {
		return
	}
	card := s.Players[opp].Monsters[zone]
	if card == nil {
		return
	}
	pos, faceDown := card.Position, card.FaceDown
	s.vacateMonster(opp, zone)
	s.Players[p].Monsters[free] = card
	card.Position, card.FaceDown = pos, faceDown
	s.Attacked[p][free] = false
	s.PositionChanged[p][free] = false
	s.Borrowed = append(s.Borrowed, Borrow{
		Card:       card.ID,
		Owner:      opp,
		OwnerZone:  zone,
		Controller: p,
		Zone:       free,
	})
	s.emit(log.NewChangeControlEvent(s.Turn, s.phaseName(), int(p), card.Card.Name, int(p)))
}

// returnBorrowed gives back monsters p borrowed this turn. A record is
// dropped as soon as its card leaves the zone, so only monsters still in
// place come back. If the original zone is taken the card uses the owner's
// first free zone, and the graveyard when the owner's field is full.
func (s *State) returnBorrowed(p PlayerID) {
	var keep []Borrow
	borrowed := s.Borrowed
	for _, b := range borrowed {
		if b.Controller != p {
			keep = append(keep, b)
			continue
		}
		card := s.Players[p].Monsters[b.Zone]
		if card == nil || card.ID != b.Card {
			continue
		}
		pos, faceDown := card.Position, card.FaceDown
		s.vacateMonster(p, b.Zone)
		owner := s.Players[b.Owner]
		zone := b.OwnerZone
		if owner.Monsters[zone] != nil {
			zone = owner.FreeMonsterZone()
		}
		if zone < 0 {
			s.toGraveyard(card, "no zone to return to")
			continue
		}
		owner.Monsters[zone] = card
		card.Position, card.FaceDown = pos, faceDown
		s.emit(log.NewChangeControlEvent(s.Turn, s.phaseName(), int(b.Owner), card.Card.Name, int(b.Owner)))
	}
	s.Borrowed = keep
}
