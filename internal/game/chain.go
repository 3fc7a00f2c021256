package game

import (
	"github.com/peterkuimelis/duelcore/internal/catalog"
	"github.com/peterkuimelis/duelcore/internal/log"
)

// MinResponseSpeed is the spell speed needed to respond to an attack.
const MinResponseSpeed = 2

// SpellSpeed returns the card's speed: normal spells 1, quick-play spells
// and normal/continuous traps 2, counter traps 3. Monsters are 1 unless
// their effect says otherwise.
func SpellSpeed(card *catalog.Card) int {
	if e, ok := EffectFor(card.ID); ok && e.Speed > 0 {
		return e.Speed
	}
	switch card.Kind {
	case catalog.KindSpell:
		if card.Spell == catalog.SpellQuickPlay {
			return 2
		}
		return 1
	case catalog.KindTrap:
		if card.Trap == catalog.TrapCounter {
			return 3
		}
		return 2
	}
	return 1
}

// CanChain reports whether next may be chained on top of top. A nil top
// starts a new chain.
func CanChain(top, next *catalog.Card) bool {
	if top == nil {
		return true
	}
	return SpellSpeed(next) >= SpellSpeed(top)
}

// ChainLink represents a single link in a chain.
type ChainLink struct {
	Index      int
	Card       *CardInstance
	Effect     *Effect
	Controller PlayerID
	Target     *Target
	// Zone is the spell/trap zone the card occupies while resolving, or -1.
	Zone int
}

// Chain is a stack of activations resolved last-in first-out.
type Chain struct {
	Links []ChainLink
}

// Top returns the most recent link, or nil.
func (c *Chain) Top() *ChainLink {
	if len(c.Links) == 0 {
		return nil
	}
	return &c.Links[len(c.Links)-1]
}

func (c *Chain) Len() int {
	return len(c.Links)
}

// Push adds a link if its speed allows it. It returns false otherwise.
func (c *Chain) Push(link ChainLink) bool {
	var top *catalog.Card
	if t := c.Top(); t != nil {
		top = t.Card.Card
	}
	if !CanChain(top, link.Card.Card) {
		return false
	}
	link.Index = len(c.Links) + 1
	c.Links = append(c.Links, link)
	return true
}

// addToChain pushes a link and logs it.
func (s *State) addToChain(c *Chain, link ChainLink) bool {
	if !c.Push(link) {
		return false
	}
	top := c.Top()
	s.emit(log.NewChainLinkEvent(s.Turn, s.phaseName(), int(top.Controller), top.Card.Card.Name, top.Index))
	return true
}

// resolveChain resolves the chain in LIFO order (last link resolves first).
func (s *State) resolveChain(c *Chain) {
	for i := len(c.Links) - 1; i >= 0; i-- {
		if s.Over() {
			break
		}
		link := &c.Links[i]
		s.emit(log.NewChainResolveEvent(s.Turn, s.phaseName(), int(link.Controller), link.Card.Card.Name, link.Index))
		if link.Effect == nil || link.Effect.Resolve == nil {
			s.emit(log.NewNoEffectEvent(s.Turn, s.phaseName(), int(link.Controller), link.Card.Card.Name))
		} else {
			link.Effect.Resolve(s, link)
		}
		s.afterResolution(link)
	}
	c.Links = nil
}

// afterResolution sends spent spells and traps to the graveyard. Cards
// that stay on the field keep their zone; an equip that never attached
// has nothing to stay for.
func (s *State) afterResolution(link *ChainLink) {
	if link.Zone < 0 {
		if !link.Card.Card.IsMonster() {
			s.toGraveyard(link.Card, "resolved")
		}
		return
	}
	pl := s.Players[link.Controller]
	card := pl.SpellTraps[link.Zone]
	if card == nil || card.ID != link.Card.ID {
		return
	}
	stays := link.Effect != nil && link.Effect.NeedsZone
	if stays && link.Card.Card.Spell == catalog.SpellEquip && card.EquippedTo < 0 {
		stays = false
	}
	if !stays {
		s.vacateSpellTrap(link.Controller, link.Zone)
		s.toGraveyard(card, "resolved")
	}
}
