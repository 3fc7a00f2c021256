package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	stdnet "net"
	"time"

	"github.com/peterkuimelis/duelcore/internal/catalog"
	"github.com/peterkuimelis/duelcore/internal/game"
	"github.com/peterkuimelis/duelcore/internal/net"
	"github.com/peterkuimelis/duelcore/internal/session"
)

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	GameID   string           `json:"game_id,omitempty"`
	Events   []net.EventView  `json:"events"`
	State    *net.StateView   `json:"state,omitempty"`
	Actions  []net.ActionView `json:"actions,omitempty"`
	GameOver bool             `json:"game_over"`
	Winner   string           `json:"winner,omitempty"`
	Result   string           `json:"result,omitempty"`
	Port     string           `json:"port,omitempty"`
}

// GameConfig selects decks and the opponent for a new game.
type GameConfig struct {
	Deck     int
	Opponent string // "ai" or "human"
	OppDeck  int
	Player   game.PlayerID
	Seed     int64
}

// GameSession is one MCP duel: the agent's seat plus an opponent that is
// either the built-in AI or a human connected over TCP.
type GameSession struct {
	sess  *session.Session
	agent *AgentSeat
	human *net.NetworkController
	ln    stdnet.Listener
	conn  stdnet.Conn
}

// NewGameSession creates a duel. For a human opponent it listens on port
// and blocks until they run `duel join`.
func NewGameSession(ctx context.Context, decks *catalog.DeckFile, cat *catalog.Catalog, opts session.Options, gc GameConfig, port string) (*GameSession, error) {
	if gc.OppDeck == 0 {
		gc.OppDeck = 2
	}
	gs := &GameSession{}
	if gc.Opponent == "human" {
		deck, err := gs.acceptHuman(port)
		if err != nil {
			return nil, err
		}
		if deck != 0 {
			gc.OppDeck = deck
		}
	}

	cfg := game.Config{Catalog: cat, Seed: gc.Seed}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	opp := gc.Player.Opponent()
	for p, n := range map[game.PlayerID]int{gc.Player: gc.Deck, opp: gc.OppDeck} {
		d, err := decks.DeckByNumber(n)
		if err != nil {
			gs.Close()
			return nil, fmt.Errorf("load deck for %s: %w", p, err)
		}
		cfg.Decks[p] = d.Expand()
	}
	cfg.AI[opp] = gc.Opponent != "human"

	sess, err := session.New(cfg, opts)
	if err != nil {
		gs.Close()
		return nil, fmt.Errorf("new duel: %w", err)
	}
	gs.sess = sess
	gs.agent = NewAgentSeat(sess, gc.Player)
	if gs.conn != nil {
		gs.human = net.NewNetworkController(gs.conn, sess, opp)
		go gs.human.Serve(context.WithoutCancel(ctx))
	}
	sess.Start()
	return gs, nil
}

// acceptHuman waits for one TCP client and returns its deck choice.
func (gs *GameSession) acceptHuman(port string) (int, error) {
	ln, err := stdnet.Listen("tcp", ":"+port)
	if err != nil {
		return 0, fmt.Errorf("listen on port %s: %w", port, err)
	}
	conn, err := ln.Accept()
	if err != nil {
		ln.Close()
		return 0, fmt.Errorf("accept: %w", err)
	}
	gs.ln, gs.conn = ln, conn

	var joinMsg net.ClientMessage
	if err := json.NewDecoder(conn).Decode(&joinMsg); err != nil {
		gs.Close()
		return 0, fmt.Errorf("read join message: %w", err)
	}
	return joinMsg.DeckNumber, nil
}

// ID returns the session id.
func (gs *GameSession) ID() string {
	return gs.sess.ID
}

// Close ends the duel and releases the TCP resources.
func (gs *GameSession) Close() {
	if gs.agent != nil {
		gs.agent.Close()
	}
	if gs.sess != nil {
		gs.sess.Close()
	}
	if gs.conn != nil {
		gs.conn.Close()
	}
	if gs.ln != nil {
		gs.ln.Close()
	}
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	if resp.Events == nil {
		resp.Events = []net.EventView{}
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
