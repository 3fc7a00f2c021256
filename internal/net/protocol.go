package net

import "github.com/peterkuimelis/duelcore/internal/game"

// Message types for the JSON protocol over TCP. The web and MCP front ends
// reuse the same views.

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"`

	// For "update"
	State   *StateView   `json:"state,omitempty"`
	Events  []EventView  `json:"events,omitempty"`
	Actions []ActionView `json:"actions,omitempty"`

	// For "game_over"
	Winner int    `json:"winner,omitempty"`
	Result string `json:"result,omitempty"`

	// For "error"
	Error string `json:"error,omitempty"`
}

// EventView is a simplified log entry for the client.
type EventView struct {
	Seq     int    `json:"seq"`
	Turn    int    `json:"turn"`
	Phase   string `json:"phase"`
	Player  int    `json:"player"`
	AI      bool   `json:"ai,omitempty"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Details string `json:"details"`
}

// ActionView is a numbered action choice.
type ActionView struct {
	Index int    `json:"index"`
	Desc  string `json:"desc"`
}

// CardView describes a visible card.
type CardView struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind"`
	ATK  int    `json:"atk,omitempty"`
	DEF  int    `json:"def,omitempty"`
	Text string `json:"text,omitempty"`
}

// StateView is the duel from one player's perspective.
type StateView struct {
	You        PlayerView   `json:"you"`
	Opponent   PlayerView   `json:"opponent"`
	Turn       int          `json:"turn"`
	Phase      string       `json:"phase"`
	IsYourTurn bool         `json:"is_your_turn"`
	Awaiting   string       `json:"awaiting"`
	YourMove   bool         `json:"your_move"`
	Prompt     string       `json:"prompt,omitempty"`
	Barrier    *BarrierView `json:"barrier,omitempty"`
	Winner     string       `json:"winner,omitempty"`
}

// BarrierView shows an active attack barrier.
type BarrierView struct {
	Name      string `json:"name"`
	Affected  string `json:"affected"`
	TurnsLeft int    `json:"turns_left"`
}

// PlayerView shows one side of the board.
type PlayerView struct {
	Name           string      `json:"name"`
	LP             int         `json:"lp"`
	HandCount      int         `json:"hand_count"`
	Hand           []CardView  `json:"hand,omitempty"` // only for "you"
	Monsters       [5]ZoneView `json:"monsters"`
	SpellTraps     [5]ZoneView `json:"spell_traps"`
	Graveyard      []string    `json:"graveyard,omitempty"`
	GraveyardCount int         `json:"graveyard_count"`
	DeckCount      int         `json:"deck_count"`
}

// ZoneView describes a single zone on the field.
type ZoneView struct {
	Empty    bool   `json:"empty,omitempty"`
	FaceDown bool   `json:"face_down,omitempty"`
	Name     string `json:"name,omitempty"`
	ATK      int    `json:"atk,omitempty"`
	DEF      int    `json:"def,omitempty"`
	Position string `json:"position,omitempty"` // "ATK" or "DEF"
	Equipped bool   `json:"equipped,omitempty"`
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "action": an index into the last update's actions.
	Index int `json:"index,omitempty"`

	// For "intent": a raw event, for clients that build their own.
	Intent *game.Event `json:"intent,omitempty"`

	// For "join" (initial handshake)
	DeckNumber int `json:"deck_number,omitempty"`
}
