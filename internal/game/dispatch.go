package game

import (
	"github.com/peterkuimelis/duelcore/internal/log"
)

// EventKind names a player intent or engine event.
type EventKind string

const (
	EventDraw              EventKind = "draw"
	EventSetPhase          EventKind = "set_phase"
	EventSummon            EventKind = "summon"
	EventSetSpellTrap      EventKind = "set_spell_trap"
	EventActivateSpell     EventKind = "activate_spell"
	EventActivateFromField EventKind = "activate_spell_from_field"
	EventPrepareAttack     EventKind = "prepare_attack"
	EventBattle            EventKind = "battle"
	EventNegateAttack      EventKind = "negate_attack"
	EventChangePosition    EventKind = "change_position"
	EventEffectConfirmYes  EventKind = "effect_confirm_yes"
	EventEffectConfirmNo   EventKind = "effect_confirm_no"
	EventDeckSearchSelect  EventKind = "deck_search_select"
	EventDeckSearchCancel  EventKind = "deck_search_cancel"
	EventShieldChoice      EventKind = "shield_choice"
	EventEndTurn           EventKind = "end_turn"
	EventReset             EventKind = "reset"
)

// Event is one input to Dispatch. Which fields matter depends on Kind.
// Card ids are instance ids.
type Event struct {
	Kind   EventKind `json:"kind"`
	Player PlayerID  `json:"player"`
	Phase  Phase     `json:"phase,omitempty"`

	// Card is the acting card: a hand card, or a deck card for a search.
	Card int `json:"card,omitempty"`
	// Zone is the destination zone for placements or the field zone of the
	// card being activated or repositioned.
	Zone     int       `json:"zone"`
	Tributes []int     `json:"tributes,omitempty"`
	Position *Position `json:"position,omitempty"`
	FaceDown bool      `json:"faceDown,omitempty"`
	Target   *Target   `json:"target,omitempty"`
	// Discard picks the hand card paid for a discard cost.
	Discard int `json:"discard,omitempty"`

	AttackerZone int `json:"attackerZone"`
	// DefenderZone is -1 for a direct attack.
	DefenderZone int  `json:"defenderZone"`
	HandIndex    int  `json:"handIndex"`
	Use          bool `json:"use,omitempty"`

	Source *log.Source `json:"source,omitempty"`
}

// sourceIn returns the log source for entries caused by ev.
func (ev Event) sourceIn(s *State, actor PlayerID) log.Source {
	if ev.Source != nil {
		return *ev.Source
	}
	return s.sourceFor(actor)
}

// Dispatch applies ev to s and returns the next state. Every event is
// accepted: one that is illegal in s returns s itself, unchanged. After a
// winner is set only reset has any effect.
func Dispatch(s *State, ev Event) *State {
	if ev.Kind == EventReset {
		next, err := NewDuel(*s.cfg)
		if err != nil {
			return s
		}
		return next
	}
	if s.Over() {
		return s
	}

	var next *State
	switch ev.Kind {
	case EventDraw:
		next = applyDraw(s, ev)
	case EventSetPhase:
		next = applySetPhase(s, ev)
	case EventSummon:
		next = applySummon(s, ev)
	case EventSetSpellTrap:
		next = applySetSpellTrap(s, ev)
	case EventActivateSpell:
		next = applyActivateSpell(s, ev)
	case EventActivateFromField:
		next = applyActivateFromField(s, ev)
	case EventPrepareAttack:
		next = applyPrepareAttack(s, ev)
	case EventBattle:
		next = applyBattle(s, ev)
	case EventNegateAttack:
		next = applyNegateAttack(s, ev)
	case EventChangePosition:
		next = applyChangePosition(s, ev)
	case EventEffectConfirmYes:
		next = applyEffectConfirm(s, ev, true)
	case EventEffectConfirmNo:
		next = applyEffectConfirm(s, ev, false)
	case EventDeckSearchSelect:
		next = applyDeckSearchSelect(s, ev)
	case EventDeckSearchCancel:
		next = applyDeckSearchCancel(s, ev)
	case EventShieldChoice:
		next = applyShieldChoice(s, ev)
	case EventEndTurn:
		next = applyEndTurn(s, ev)
	}
	if next == nil {
		return s
	}
	return next
}

// --- Event constructors ---

func Draw(p PlayerID) Event {
	return Event{Kind: EventDraw, Player: p}
}

func SetPhase(ph Phase) Event {
	return Event{Kind: EventSetPhase, Phase: ph}
}

// Summon normal summons a hand card face-up in attack position.
func Summon(p PlayerID, card, zone int, tributes ...int) Event {
	return Event{Kind: EventSummon, Player: p, Card: card, Zone: zone, Tributes: tributes}
}

// SetMonster normal summons a hand card face-down in defense position.
func SetMonster(p PlayerID, card, zone int, tributes ...int) Event {
	return Event{Kind: EventSummon, Player: p, Card: card, Zone: zone, Tributes: tributes, FaceDown: true}
}

func SetSpellTrap(p PlayerID, card, zone int) Event {
	return Event{Kind: EventSetSpellTrap, Player: p, Card: card, Zone: zone, FaceDown: true}
}

func ActivateSpell(p PlayerID, card int, target *Target) Event {
	return Event{Kind: EventActivateSpell, Player: p, Card: card, Target: target}
}

func ActivateFromField(p PlayerID, zone int, target *Target) Event {
	return Event{Kind: EventActivateFromField, Player: p, Zone: zone, Target: target}
}

func PrepareAttack(p PlayerID, attackerZone, defenderZone int) Event {
	return Event{Kind: EventPrepareAttack, Player: p, AttackerZone: attackerZone, DefenderZone: defenderZone}
}

func Battle(p PlayerID, attackerZone, defenderZone int) Event {
	return Event{Kind: EventBattle, Player: p, AttackerZone: attackerZone, DefenderZone: defenderZone}
}

func NegateAttack(p PlayerID, handIndex int) Event {
	return Event{Kind: EventNegateAttack, Player: p, HandIndex: handIndex}
}

// ChangePosition toggles the monster's position when pos is nil.
func ChangePosition(p PlayerID, zone int, pos *Position) Event {
	return Event{Kind: EventChangePosition, Player: p, Zone: zone, Position: pos}
}

func ConfirmEffect(yes bool) Event {
	if yes {
		return Event{Kind: EventEffectConfirmYes}
	}
	return Event{Kind: EventEffectConfirmNo}
}

func SelectSearch(p PlayerID, card int) Event {
	return Event{Kind: EventDeckSearchSelect, Player: p, Card: card}
}

func CancelSearch(p PlayerID) Event {
	return Event{Kind: EventDeckSearchCancel, Player: p}
}

func ShieldChoice(p PlayerID, use bool) Event {
	return Event{Kind: EventShieldChoice, Player: p, Use: use}
}

func EndTurn() Event {
	return Event{Kind: EventEndTurn}
}

func Reset() Event {
	return Event{Kind: EventReset}
}
