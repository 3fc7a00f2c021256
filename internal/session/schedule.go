package session

import (
	"time"

	"github.com/peterkuimelis/duelcore/internal/ai"
	"github.com/peterkuimelis/duelcore/internal/game"
)

// Actor returns the player an intent acts for. Intents without a player
// field belong to whoever the state is waiting on; resolving a pending
// attack belongs to the defender.
func Actor(st *game.State, ev game.Event) game.PlayerID {
	aw := st.Awaiting()
	switch ev.Kind {
	case game.EventSetPhase, game.EventEndTurn, game.EventEffectConfirmYes, game.EventEffectConfirmNo:
		return aw.Player
	case game.EventBattle:
		if aw.Kind == game.AwaitAttackResponse {
			return aw.Player
		}
	case game.EventDeckSearchSelect, game.EventDeckSearchCancel:
		if aw.Kind == game.AwaitDeckSearch {
			return aw.Player
		}
	case game.EventReset:
		return AnySeat
	}
	return ev.Player
}

// schedule replaces any outstanding timer with the deferred move the
// current state calls for. Must be called with mu held.
func (s *Session) schedule() {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	st := s.state
	if s.closed {
		return
	}
	switch deferredMove(st) {
	case moveAI:
		s.after(s.opts.AIDelay, ai.Decide)
	case moveResolveAttack:
		s.after(s.opts.AttackResponseDelay, resolveAttack)
	case moveAdvance:
		s.after(s.opts.AutoAdvanceDelay, advance)
	}
}

type move int

const (
	moveNone move = iota
	moveAI
	moveResolveAttack
	moveAdvance
)

func deferredMove(st *game.State) move {
	if st.Over() {
		return moveNone
	}
	aw := st.Awaiting()
	switch {
	case st.IsAI(aw.Player):
		return moveAI
	case aw.Kind == game.AwaitAttackResponse && !canRespond(st, aw.Player):
		return moveResolveAttack
	case aw.Kind == game.AwaitNone && (st.Phase == game.PhaseDraw || st.Phase == game.PhaseStandby):
		return moveAdvance
	}
	return moveNone
}

// Automatic reports whether the session will make the next move in st on
// its own. Front ends hide the awaited player's actions while it does.
func Automatic(st *game.State) bool {
	return deferredMove(st) != moveNone
}

// after runs decide against the state current when the timer fires. A
// timer whose generation is stale does nothing.
func (s *Session) after(d time.Duration, decide func(*game.State) (game.Event, bool)) {
	gen := s.gen
	s.timer = time.AfterFunc(d, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed || gen != s.gen {
			return
		}
		ev, ok := decide(s.state)
		if !ok {
			return
		}
		if !s.apply(ev) {
			s.log.Warn("deferred move rejected", "kind", string(ev.Kind), "turn", s.state.Turn)
		}
	})
}

// canRespond reports whether the defender has any answer to the pending
// attack besides letting it resolve.
func canRespond(st *game.State, p game.PlayerID) bool {
	for _, a := range game.Actions(st, p) {
		if a.Event.Kind != game.EventBattle {
			return true
		}
	}
	return false
}

func resolveAttack(st *game.State) (game.Event, bool) {
	aw := st.Awaiting()
	if aw.Kind != game.AwaitAttackResponse {
		return game.Event{}, false
	}
	a := aw.Attack
	return game.Battle(a.Attacker, a.AttackerZone, a.DefenderZone), true
}

// advance moves a human player through the draw and standby phases.
func advance(st *game.State) (game.Event, bool) {
	if st.Blocked() {
		return game.Event{}, false
	}
	switch st.Phase {
	case game.PhaseDraw:
		return game.SetPhase(game.PhaseStandby), true
	case game.PhaseStandby:
		return game.SetPhase(game.PhaseMain1), true
	}
	return game.Event{}, false
}
