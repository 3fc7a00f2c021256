package mcp

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/duelcore/internal/catalog"
	"github.com/peterkuimelis/duelcore/internal/game"
	"github.com/peterkuimelis/duelcore/internal/session"
)

// Manager holds the games of one MCP server process.
type Manager struct {
	Decks   *catalog.DeckFile
	Catalog *catalog.Catalog
	Options session.Options
	// Port is the TCP port a human opponent joins on.
	Port string

	mu      sync.Mutex
	games   map[string]*GameSession
	current string
}

// NewManager creates an empty manager.
func NewManager(decks *catalog.DeckFile, cat *catalog.Catalog, opts session.Options, port string) *Manager {
	return &Manager{
		Decks:   decks,
		Catalog: cat,
		Options: opts,
		Port:    port,
		games:   make(map[string]*GameSession),
	}
}

// RegisterTools adds all game tools to the MCP server.
func (m *Manager) RegisterTools(s *server.MCPServer) {
	s.AddTool(startGameTool(), m.handleStartGame)
	s.AddTool(takeActionTool(), m.handleTakeAction)
	s.AddTool(submitIntentTool(), m.handleSubmitIntent)
	s.AddTool(getGameStateTool(), m.handleGetGameState)
}

// --- Tool definitions ---

func startGameTool() mcp.Tool {
	return mcp.NewTool("start_game",
		mcp.WithDescription("Start a new duel and wait for your first move. Returns the game id, the log so far, "+
			"the board from your side and the numbered actions you can take. Against a human opponent the call "+
			"blocks until they connect with `duel join --addr localhost:<port> --deck N`."),
		mcp.WithNumber("deck", mcp.Required(), mcp.Description("Your deck number (1-indexed from the deck list)")),
		mcp.WithNumber("player", mcp.Description("Which player you are: 0 = goes first (default), 1 = goes second")),
		mcp.WithString("opponent", mcp.Enum("ai", "human"), mcp.Description("Who you play against (default ai)")),
		mcp.WithNumber("opponent_deck", mcp.Description("Deck number for an AI opponent (default 2)")),
		mcp.WithNumber("seed", mcp.Description("Shuffle seed; 0 picks one")),
	)
}

func takeActionTool() mcp.Tool {
	return mcp.NewTool("take_action",
		mcp.WithDescription("Take one of the numbered actions from the last response, then wait for your next move."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index into the actions list")),
		mcp.WithString("game_id", mcp.Description("Game to act in (default: the latest)")),
	)
}

func submitIntentTool() mcp.Tool {
	return mcp.NewTool("submit_intent",
		mcp.WithDescription("Submit a raw intent as JSON, e.g. {\"kind\":\"summon\",\"player\":0,\"card\":12,\"zone\":0}, "+
			"then wait for your next move. Use this for targets or tributes the action list does not offer."),
		mcp.WithString("intent", mcp.Required(), mcp.Description("The intent as a JSON object")),
		mcp.WithString("game_id", mcp.Description("Game to act in (default: the latest)")),
	)
}

func getGameStateTool() mcp.Tool {
	return mcp.NewTool("get_game_state",
		mcp.WithDescription("Get the current board, unseen log entries and your actions without waiting. Read-only."),
		mcp.WithString("game_id", mcp.Description("Game to inspect (default: the latest)")),
	)
}

// --- Tool handlers ---

func (m *Manager) handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	gc := GameConfig{
		Deck:     request.GetInt("deck", 0),
		Player:   game.PlayerID(request.GetInt("player", 0)),
		Opponent: request.GetString("opponent", "ai"),
		OppDeck:  request.GetInt("opponent_deck", 0),
		Seed:     int64(request.GetInt("seed", 0)),
	}
	if gc.Deck < 1 {
		return mcp.NewToolResultError("deck must be >= 1"), nil
	}
	if gc.Player != 0 && gc.Player != 1 {
		return mcp.NewToolResultError("player must be 0 or 1"), nil
	}
	if gc.Opponent != "ai" && gc.Opponent != "human" {
		return mcp.NewToolResultError("opponent must be ai or human"), nil
	}

	gs, err := NewGameSession(ctx, m.Decks, m.Catalog, m.Options, gc, m.Port)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start game: %v", err), nil
	}
	m.mu.Lock()
	m.games[gs.ID()] = gs
	m.current = gs.ID()
	m.mu.Unlock()

	resp, err := m.waitAndRespond(ctx, gs)
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for first decision: %v", err), nil
	}
	if gc.Opponent == "human" {
		resp.Port = m.Port
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (m *Manager) handleTakeAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	gs, errResult := m.lookup(request)
	if errResult != nil {
		return errResult, nil
	}
	index := request.GetInt("index", -1)
	if err := gs.agent.Act(index); err != nil {
		return mcp.NewToolResultErrorf("Action %d: %v. Call get_game_state for the current actions.", index, err), nil
	}
	resp, err := m.waitAndRespond(ctx, gs)
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for next decision: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (m *Manager) handleSubmitIntent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	gs, errResult := m.lookup(request)
	if errResult != nil {
		return errResult, nil
	}
	var ev game.Event
	if err := json.Unmarshal([]byte(request.GetString("intent", "")), &ev); err != nil {
		return mcp.NewToolResultErrorf("Invalid intent JSON: %v", err), nil
	}
	if err := gs.agent.Submit(ev); err != nil {
		return mcp.NewToolResultErrorf("Intent %s rejected: %v", ev.Kind, err), nil
	}
	resp, err := m.waitAndRespond(ctx, gs)
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for next decision: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (m *Manager) handleGetGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	gs, errResult := m.lookup(request)
	if errResult != nil {
		return errResult, nil
	}
	resp := gs.agent.Snapshot(gs.sess.State())
	resp.GameID = gs.ID()
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (m *Manager) lookup(request mcp.CallToolRequest) (*GameSession, *mcp.CallToolResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := request.GetString("game_id", m.current)
	if id == "" {
		return nil, mcp.NewToolResultError("No game is running. Use start_game first.")
	}
	gs, ok := m.games[id]
	if !ok {
		return nil, mcp.NewToolResultErrorf("Unknown game %q.", id)
	}
	return gs, nil
}

// waitAndRespond blocks until the agent has a move and finishes the game
// when it is over.
func (m *Manager) waitAndRespond(ctx context.Context, gs *GameSession) (*ToolResponse, error) {
	st, err := gs.agent.Wait(ctx)
	if err != nil {
		return nil, err
	}
	resp := gs.agent.Snapshot(st)
	resp.GameID = gs.ID()
	if resp.GameOver {
		m.mu.Lock()
		delete(m.games, gs.ID())
		if m.current == gs.ID() {
			m.current = ""
		}
		m.mu.Unlock()
		gs.Close()
	}
	return resp, nil
}

// Close ends every running game.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, gs := range m.games {
		gs.Close()
		delete(m.games, id)
	}
	m.current = ""
}
