package game

import (
	"github.com/peterkuimelis/duelcore/internal/log"
)

// probeTrigger queues a searching trigger for card if it has one for hook.
// A trigger whose search would find nothing fizzles instead of prompting.
func (s *State) probeTrigger(hook Hook, card *CardInstance, controller PlayerID) {
	eff, ok := EffectFor(card.Card.ID)
	if !ok || eff.Hook != hook || eff.Search == "" {
		return
	}
	if len(SearchCandidates(s, controller, eff.Search)) == 0 {
		s.emit(log.NewTriggerFizzledEvent(s.Turn, s.phaseName(), int(controller), card.Card.Name))
		return
	}
	s.Pending.Effects = append(s.Pending.Effects, Trigger{
		Player:       controller,
		Filter:       eff.Search,
		SourceCardID: card.Card.ID,
		SourceName:   card.Card.Name,
	})
	s.emit(log.NewTriggerQueuedEvent(s.Turn, s.phaseName(), int(controller), card.Card.Name))
}

func applyEffectConfirm(s *State, ev Event, yes bool) *State {
	aw := s.Awaiting()
	if aw.Kind != AwaitEffectConfirm {
		return nil
	}
	d := s.clone()
	d.source = d.sourceFor(aw.Player)
	trig := d.Pending.Effects[0]
	d.Pending.Effects = d.Pending.Effects[1:]
	if !yes {
		return d
	}
	candidates := SearchCandidates(d, trig.Player, trig.Filter)
	if len(candidates) == 0 {
		d.emit(log.NewTriggerFizzledEvent(d.Turn, d.phaseName(), int(trig.Player), trig.SourceName))
		return d
	}
	d.Pending.Search = &DeckSearch{
		Player:     trig.Player,
		Filter:     trig.Filter,
		SourceName: trig.SourceName,
		Candidates: candidates,
	}
	return d
}

func applyDeckSearchSelect(s *State, ev Event) *State {
	search := s.Pending.Search
	if search == nil || ev.Player != search.Player {
		return nil
	}
	legal := false
	for _, id := range search.Candidates {
		if id == ev.Card {
			legal = true
			break
		}
	}
	if !legal || s.Players[search.Player].DeckIndex(ev.Card) < 0 {
		return nil
	}
	d := s.clone()
	d.source = d.sourceFor(search.Player)
	d.Pending.Search = nil
	d.searchDeck(search.Player, ev.Card, search.SourceName)
	return d
}

func applyDeckSearchCancel(s *State, ev Event) *State {
	if s.Pending.Search == nil || ev.Player != s.Pending.Search.Player {
		return nil
	}
	d := s.clone()
	d.source = d.sourceFor(s.Pending.Search.Player)
	d.Pending.Search = nil
	return d
}

// resolveTarget picks the explicit target if it is legal, falls back to the
// effect's default target, and reports ok=false for an illegal explicit one.
func resolveTarget(s *State, eff *Effect, p PlayerID, self *CardInstance, explicit *Target) (*Target, bool) {
	if eff == nil || eff.Target == TargetNone {
		return nil, true
	}
	if explicit != nil {
		if eff.ValidTarget != nil && !eff.ValidTarget(s, p, self, *explicit) {
			return nil, false
		}
		t := *explicit
		return &t, true
	}
	if eff.DefaultTarget == nil {
		return nil, true
	}
	if t, ok := eff.DefaultTarget(s, p, self); ok {
		return &t, true
	}
	return nil, true
}
