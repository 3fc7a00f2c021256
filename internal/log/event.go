package log

import (
	"encoding/json"
	"fmt"
	"strings"
)

// EventType enumerates all observable duel events.
type EventType int

const (
	EventPhaseChange EventType = iota
	EventNewTurn
	EventDraw
	EventNormalSummon
	EventTributeSummon
	EventSetMonster
	EventSetSpellTrap
	EventSpecialSummon
	EventChangePosition
	EventFlip
	EventFlipFaceDown
	EventAttackDeclare
	EventDirectAttackDeclare
	EventAttackNegated
	EventDamageCalc
	EventBattleDestroy
	EventReturnToHand
	EventActivate
	EventChainLink
	EventChainResolve
	EventDestroy
	EventSendToGraveyard
	EventDiscard
	EventAddToHand
	EventLifePoints
	EventChangeControl
	EventTriggerQueued
	EventTriggerFizzled
	EventShuffle
	EventNoEffect
	EventWin
)

func (e EventType) String() string {
	switch e {
	case EventPhaseChange:
		return "PhaseChange"
	case EventNewTurn:
		return "NewTurn"
	case EventDraw:
		return "Draw"
	case EventNormalSummon:
		return "NormalSummon"
	case EventTributeSummon:
		return "TributeSummon"
	case EventSetMonster:
		return "SetMonster"
	case EventSetSpellTrap:
		return "SetSpellTrap"
	case EventSpecialSummon:
		return "SpecialSummon"
	case EventChangePosition:
		return "ChangePosition"
	case EventFlip:
		return "Flip"
	case EventFlipFaceDown:
		return "FlipFaceDown"
	case EventAttackDeclare:
		return "AttackDeclare"
	case EventDirectAttackDeclare:
		return "DirectAttackDeclare"
	case EventAttackNegated:
		return "AttackNegated"
	case EventDamageCalc:
		return "DamageCalc"
	case EventBattleDestroy:
		return "BattleDestroy"
	case EventReturnToHand:
		return "ReturnToHand"
	case EventActivate:
		return "Activate"
	case EventChainLink:
		return "ChainLink"
	case EventChainResolve:
		return "ChainResolve"
	case EventDestroy:
		return "Destroy"
	case EventSendToGraveyard:
		return "SendToGraveyard"
	case EventDiscard:
		return "Discard"
	case EventAddToHand:
		return "AddToHand"
	case EventLifePoints:
		return "LifePoints"
	case EventChangeControl:
		return "ChangeControl"
	case EventTriggerQueued:
		return "TriggerQueued"
	case EventTriggerFizzled:
		return "TriggerFizzled"
	case EventShuffle:
		return "Shuffle"
	case EventNoEffect:
		return "NoEffect"
	case EventWin:
		return "Win"
	default:
		return "Unknown"
	}
}

func (e EventType) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.String())
}

func (e *EventType) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	for t := EventPhaseChange; t <= EventWin; t++ {
		if t.String() == v {
			*e = t
			return nil
		}
	}
	return fmt.Errorf("unknown event type %q", v)
}

// Source says whether a log entry was caused by a human or by the AI.
type Source int

const (
	SourcePlayer Source = iota
	SourceAI
)

func (s Source) String() string {
	if s == SourceAI {
		return "ai"
	}
	return "player"
}

func (s Source) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Source) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch strings.ToLower(v) {
	case "ai":
		*s = SourceAI
	case "player", "":
		*s = SourcePlayer
	default:
		return fmt.Errorf("unknown log source %q", v)
	}
	return nil
}

// GameEvent represents a single observable event in a duel.
type GameEvent struct {
	Seq     int       `json:"seq"`     // monotonic sequence number
	Turn    int       `json:"turn"`    // which turn (1-based)
	Phase   string    `json:"phase"`   // current phase name (e.g. "Main Phase 1")
	Player  int       `json:"player"`  // acting player (0 or 1)
	Source  Source    `json:"source"`  // player or ai
	Type    EventType `json:"type"`    // event type
	Card    string    `json:"card"`    // card name (if applicable)
	Details string    `json:"details"` // human-readable text
}
