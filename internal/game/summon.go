package game

import (
	"github.com/peterkuimelis/duelcore/internal/catalog"
	"github.com/peterkuimelis/duelcore/internal/log"
)

// TributesRequired returns how many monsters must be tributed to normal
// summon a monster of the given level.
func TributesRequired(level int) int {
	switch {
	case level >= 7:
		return 2
	case level >= 5:
		return 1
	default:
		return 0
	}
}

// CanNormalSummon reports whether p may normal summon card right now: it is
// p's main phase, the once-per-turn summon is unused, nothing is pending,
// and p has enough monsters to tribute (or a free zone when none are needed).
func CanNormalSummon(s *State, p PlayerID, card *catalog.Card) bool {
	if !p.valid() || s.Over() || card == nil || !card.IsMonster() {
		return false
	}
	if p != s.Current || !s.Phase.isMain() || !s.NormalSummonAvailable || s.Blocked() {
		return false
	}
	pl := s.Players[p]
	need := TributesRequired(card.Level)
	if need == 0 {
		return pl.FreeMonsterZone() >= 0
	}
	return pl.MonsterCount() >= need
}

// ValidTributes reports whether tributes and zone are a legal choice for
// normal summoning card: the count matches exactly, every tribute zone is
// occupied and listed once, and zone is empty or freed by a tribute.
func ValidTributes(s *State, p PlayerID, card *catalog.Card, tributes []int, zone int) bool {
	if !p.valid() || card == nil {
		return false
	}
	return validTributes(s.Players[p], TributesRequired(card.Level), tributes, zone)
}

func validTributes(pl *Player, need int, tributes []int, zone int) bool {
	if len(tributes) != need {
		return false
	}
	seen := map[int]bool{}
	for _, t := range tributes {
		if t < 0 || t >= ZoneCount || pl.Monsters[t] == nil || seen[t] {
			return false
		}
		seen[t] = true
	}
	if zone < 0 || zone >= ZoneCount {
		return false
	}
	return pl.Monsters[zone] == nil || seen[zone]
}

func applySummon(s *State, ev Event) *State {
	p := ev.Player
	if !p.valid() {
		return nil
	}
	pl := s.Players[p]
	hi := pl.HandIndex(ev.Card)
	if hi < 0 {
		return nil
	}
	card := pl.Hand[hi]
	if !CanNormalSummon(s, p, card.Card) {
		return nil
	}
	if !validTributes(pl, TributesRequired(card.Card.Level), ev.Tributes, ev.Zone) {
		return nil
	}
	set := ev.FaceDown || (ev.Position != nil && *ev.Position == PositionDefense)

	d := s.clone()
	d.source = ev.sourceIn(d, p)
	var tributed []string
	for _, t := range ev.Tributes {
		name := d.Players[p].Monsters[t].Card.Name
		tributed = append(tributed, name)
		c := d.vacateMonster(p, t)
		d.toGraveyard(c, "tributed")
	}
	dpl := d.Players[p]
	summoned := dpl.removeFromHand(dpl.HandIndex(ev.Card))
	d.NormalSummonAvailable = false

	if set {
		d.placeMonster(p, ev.Zone, summoned, PositionDefense, true)
		d.emit(log.NewSetMonsterEvent(d.Turn, d.phaseName(), int(p), ev.Zone))
		return d
	}
	d.placeMonster(p, ev.Zone, summoned, PositionAttack, false)
	if len(tributed) > 0 {
		d.emit(log.NewTributeSummonEvent(d.Turn, d.phaseName(), int(p), summoned.Card.Name, summoned.Card.ATK, ev.Zone, tributed))
	} else {
		d.emit(log.NewNormalSummonEvent(d.Turn, d.phaseName(), int(p), summoned.Card.Name, summoned.Card.ATK, ev.Zone))
	}
	d.probeTrigger(HookNormalSummon, summoned, p)
	return d
}

// applyChangePosition switches a monster between attack and defense, or
// flips a face-down monster face-up in attack position. A monster can
// change once per turn, not on the turn it was placed and not after it
// attacked.
func applyChangePosition(s *State, ev Event) *State {
	p := ev.Player
	if !p.valid() || p != s.Current || !s.Phase.isMain() || s.Blocked() {
		return nil
	}
	if ev.Zone < 0 || ev.Zone >= ZoneCount {
		return nil
	}
	card := s.Players[p].Monsters[ev.Zone]
	if card == nil || card.SetOnTurn == s.Turn {
		return nil
	}
	if s.PositionChanged[p][ev.Zone] || s.Attacked[p][ev.Zone] {
		return nil
	}
	next := PositionAttack
	if !card.FaceDown {
		next = PositionDefense
		if card.Position == PositionDefense {
			next = PositionAttack
		}
	}
	if ev.Position != nil {
		next = *ev.Position
	}
	if card.FaceDown && next != PositionAttack {
		return nil
	}
	if !card.FaceDown && next == card.Position {
		return nil
	}

	d := s.clone()
	d.source = ev.sourceIn(d, p)
	c := d.Players[p].Monsters[ev.Zone]
	if c.FaceDown {
		c.FaceDown = false
		d.emit(log.NewFlipEvent(d.Turn, d.phaseName(), int(p), c.Card.Name))
	}
	c.Position = next
	d.PositionChanged[p][ev.Zone] = true
	d.emit(log.NewChangePositionEvent(d.Turn, d.phaseName(), int(p), c.Card.Name, next.String()))
	return d
}
