package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging duel events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	return OfType(l.events, t)
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// OfType filters events by type.
func OfType(events []GameEvent, t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// --- Formatting ---

// PlayerName returns "P1" or "P2" for display.
func PlayerName(p int) string {
	return fmt.Sprintf("P%d", p+1)
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	phase := e.Phase
	if phase == "" {
		phase = "          "
	}
	// Pad phase to 16 chars for alignment
	for len(phase) < 16 {
		phase += " "
	}
	marker := " "
	if e.Source == SourceAI {
		marker = "*"
	}

	return fmt.Sprintf("T%-2d %s|%s %s", e.Turn, phase, marker, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewPhaseChangeEvent(turn int, phase string, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventPhaseChange,
		Details: fmt.Sprintf("Phase → %s", phase),
	}
}

func NewTurnEvent(turn int, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Draw Phase",
		Player:  player,
		Type:    EventNewTurn,
		Details: fmt.Sprintf("=== Turn %d (%s) ===", turn, PlayerName(player)),
	}
}

func NewDrawEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDraw,
		Card:    cardName,
		Details: fmt.Sprintf("%s draws %s", PlayerName(player), cardName),
	}
}

func NewNormalSummonEvent(turn int, phase string, player int, cardName string, atk int, zone int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventNormalSummon,
		Card:    cardName,
		Details: fmt.Sprintf("%s normal summons %s (ATK %d) to Monster Zone %d", PlayerName(player), cardName, atk, zone+1),
	}
}

func NewTributeSummonEvent(turn int, phase string, player int, cardName string, atk int, zone int, tributes []string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventTributeSummon,
		Card:    cardName,
		Details: fmt.Sprintf("%s tribute summons %s (ATK %d) to Monster Zone %d (tributed: %s)", PlayerName(player), cardName, atk, zone+1, strings.Join(tributes, ", ")),
	}
}

func NewSetMonsterEvent(turn int, phase string, player int, zone int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventSetMonster,
		Details: fmt.Sprintf("%s sets a monster in Monster Zone %d", PlayerName(player), zone+1),
	}
}

func NewSetSpellTrapEvent(turn int, phase string, player int, zone int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventSetSpellTrap,
		Details: fmt.Sprintf("%s sets a card in Spell/Trap Zone %d", PlayerName(player), zone+1),
	}
}

func NewSpecialSummonEvent(turn int, phase string, player int, cardName string, atk int, zone int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventSpecialSummon,
		Card:    cardName,
		Details: fmt.Sprintf("%s special summons %s (ATK %d) to Monster Zone %d", PlayerName(player), cardName, atk, zone+1),
	}
}

func NewChangePositionEvent(turn int, phase string, player int, cardName string, newPos string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventChangePosition,
		Card:    cardName,
		Details: fmt.Sprintf("%s changes %s to %s position", PlayerName(player), cardName, newPos),
	}
}

func NewFlipEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventFlip,
		Card:    cardName,
		Details: fmt.Sprintf("%s is flipped face-up", cardName),
	}
}

func NewFlipFaceDownEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventFlipFaceDown,
		Card:    cardName,
		Details: fmt.Sprintf("%s is flipped face-down", cardName),
	}
}

func NewAttackDeclareEvent(turn int, player int, attacker string, defender string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Battle Phase",
		Player:  player,
		Type:    EventAttackDeclare,
		Card:    attacker,
		Details: fmt.Sprintf("%s declares attack: %s → %s", PlayerName(player), attacker, defender),
	}
}

func NewDirectAttackDeclareEvent(turn int, player int, attacker string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Battle Phase",
		Player:  player,
		Type:    EventDirectAttackDeclare,
		Card:    attacker,
		Details: fmt.Sprintf("%s declares direct attack with %s", PlayerName(player), attacker),
	}
}

func NewAttackNegatedEvent(turn int, player int, attacker string, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Battle Phase",
		Player:  player,
		Type:    EventAttackNegated,
		Card:    attacker,
		Details: fmt.Sprintf("Attack by %s is negated (%s)", attacker, reason),
	}
}

func NewDamageCalcEvent(turn int, player int, details string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Battle Phase",
		Player:  player,
		Type:    EventDamageCalc,
		Details: details,
	}
}

func NewBattleDestroyEvent(turn int, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Battle Phase",
		Player:  player,
		Type:    EventBattleDestroy,
		Card:    cardName,
		Details: fmt.Sprintf("%s is destroyed by battle", cardName),
	}
}

func NewReturnToHandEvent(turn int, phase string, player int, cardName string, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventReturnToHand,
		Card:    cardName,
		Details: fmt.Sprintf("%s returns to %s's hand (%s)", cardName, PlayerName(player), reason),
	}
}

func NewActivateEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventActivate,
		Card:    cardName,
		Details: fmt.Sprintf("%s activates %s", PlayerName(player), cardName),
	}
}

func NewChainLinkEvent(turn int, phase string, player int, cardName string, chainIndex int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventChainLink,
		Card:    cardName,
		Details: fmt.Sprintf("Chain Link %d: %s activates %s", chainIndex, PlayerName(player), cardName),
	}
}

func NewChainResolveEvent(turn int, phase string, player int, cardName string, chainIndex int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventChainResolve,
		Card:    cardName,
		Details: fmt.Sprintf("Chain Link %d resolves: %s", chainIndex, cardName),
	}
}

func NewDestroyEvent(turn int, phase string, player int, cardName string, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDestroy,
		Card:    cardName,
		Details: fmt.Sprintf("%s is destroyed (%s)", cardName, reason),
	}
}

func NewSendToGraveyardEvent(turn int, phase string, player int, cardName string, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventSendToGraveyard,
		Card:    cardName,
		Details: fmt.Sprintf("%s is sent to %s's Graveyard (%s)", cardName, PlayerName(player), reason),
	}
}

func NewDiscardEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDiscard,
		Card:    cardName,
		Details: fmt.Sprintf("%s discards %s", PlayerName(player), cardName),
	}
}

func NewAddToHandEvent(turn int, phase string, player int, cardName string, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventAddToHand,
		Card:    cardName,
		Details: fmt.Sprintf("%s is added to %s's hand (%s)", cardName, PlayerName(player), reason),
	}
}

func NewLifePointsEvent(turn int, phase string, player int, oldLP, newLP int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventLifePoints,
		Details: fmt.Sprintf("%s LP: %d → %d (%s)", PlayerName(player), oldLP, newLP, reason),
	}
}

func NewChangeControlEvent(turn int, phase string, player int, cardName string, newController int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventChangeControl,
		Card:    cardName,
		Details: fmt.Sprintf("%s control changes to %s", cardName, PlayerName(newController)),
	}
}

func NewTriggerQueuedEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventTriggerQueued,
		Card:    cardName,
		Details: fmt.Sprintf("%s's effect triggers for %s", cardName, PlayerName(player)),
	}
}

func NewTriggerFizzledEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventTriggerFizzled,
		Card:    cardName,
		Details: fmt.Sprintf("%s's effect has no valid targets", cardName),
	}
}

func NewShuffleEvent(turn int, phase string, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventShuffle,
		Details: fmt.Sprintf("%s shuffled their deck", PlayerName(player)),
	}
}

func NewNoEffectEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventNoEffect,
		Card:    cardName,
		Details: fmt.Sprintf("%s resolves with no effect", cardName),
	}
}

func NewWinEvent(turn int, phase string, winner int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  winner,
		Type:    EventWin,
		Details: fmt.Sprintf("%s wins! (%s)", PlayerName(winner), reason),
	}
}
