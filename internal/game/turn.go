package game

import (
	"github.com/peterkuimelis/duelcore/internal/log"
)

// applyDraw accepts no explicit draw: the draw-phase draw already happened
// when the turn was handed over, and turn 1 has none.
func applyDraw(s *State, ev Event) *State {
	return nil
}

// applySetPhase moves forward to a later phase of the same turn.
func applySetPhase(s *State, ev Event) *State {
	if ev.Phase <= s.Phase || ev.Phase > PhaseEnd || s.Blocked() {
		return nil
	}
	d := s.clone()
	d.source = ev.sourceIn(d, d.Current)
	d.enterPhase(ev.Phase)
	return d
}

func (s *State) enterPhase(ph Phase) {
	s.Phase = ph
	s.emit(log.NewPhaseChangeEvent(s.Turn, s.phaseName(), int(s.Current)))
}

func applyEndTurn(s *State, ev Event) *State {
	if s.Blocked() {
		return nil
	}
	d := s.clone()
	d.source = ev.sourceIn(d, d.Current)
	d.endTurn()
	return d
}

// endTurn runs end-of-turn cleanup and hands the turn to the opponent,
// entering their draw phase with the automatic draw.
func (s *State) endTurn() {
	cur := s.Current
	if s.Phase != PhaseEnd {
		s.enterPhase(PhaseEnd)
	}
	s.returnBorrowed(cur)
	s.tickBarrier(cur)

	s.NormalSummonAvailable = true
	s.Attacked = [2][ZoneCount]bool{}
	s.PositionChanged = [2][ZoneCount]bool{}

	s.Current = cur.Opponent()
	s.Turn++
	s.Phase = PhaseDraw
	s.source = s.sourceFor(s.Current)
	s.emit(log.NewTurnEvent(s.Turn, int(s.Current)))
	s.draw(s.Current)
}

// tickBarrier counts down a lingering barrier at the end of each turn of
// the player it affects and destroys its card when the count reaches zero.
func (s *State) tickBarrier(ending PlayerID) {
	b := s.Barrier
	if b == nil || b.Affected != ending {
		return
	}
	b.TurnsLeft--
	if b.TurnsLeft > 0 {
		return
	}
	owner, zone := b.Owner, b.Zone
	s.Barrier = nil
	if c := s.Players[owner].SpellTraps[zone]; c != nil && c.ID == b.Card {
		s.destroySpellTrap(owner, zone, "countdown expired")
	}
}
