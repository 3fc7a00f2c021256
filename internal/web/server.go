package web

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/peterkuimelis/duelcore/internal/catalog"
	"github.com/peterkuimelis/duelcore/internal/game"
	dnet "github.com/peterkuimelis/duelcore/internal/net"
	"github.com/peterkuimelis/duelcore/internal/session"
)

// CardInfo is the JSON representation of a card for the /api/cards endpoint.
type CardInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Subtype  string `json:"subtype,omitempty"`
	Level    int    `json:"level,omitempty"`
	ATK      int    `json:"atk,omitempty"`
	DEF      int    `json:"def,omitempty"`
	Text     string `json:"text,omitempty"`
	Scripted bool   `json:"scripted,omitempty"`
}

// startMessage is the first websocket message from the browser. "start"
// begins a duel against the AI; "connect" proxies to a TCP game server.
type startMessage struct {
	Type       string `json:"type"`
	DeckNumber int    `json:"deck_number"`
	AIDeck     int    `json:"ai_deck"`
	Seed       int64  `json:"seed"`
	Addr       string `json:"addr"`
}

// Server is the duel web server.
type Server struct {
	catalog *catalog.Catalog
	decks   *catalog.DeckFile
	opts    session.Options
	log     *slog.Logger
	mux     *http.ServeMux
}

// NewServer creates a new web server.
func NewServer(cat *catalog.Catalog, decks *catalog.DeckFile, opts session.Options, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		catalog: cat,
		decks:   decks,
		opts:    opts,
		log:     logger,
		mux:     http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /api/decks", s.handleDecks)
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	var cards []CardInfo
	for _, c := range s.catalog.All() {
		ci := CardInfo{
			ID:    c.ID,
			Name:  c.Name,
			Kind:  c.Kind.String(),
			Level: c.Level,
			ATK:   c.ATK,
			DEF:   c.DEF,
			Text:  c.Text,
		}
		switch {
		case c.IsSpell():
			ci.Subtype = c.Spell.String()
		case c.IsTrap():
			ci.Subtype = c.Trap.String()
		}
		_, ci.Scripted = game.EffectFor(c.ID)
		cards = append(cards, ci)
	}
	writeJSON(w, cards)
}

func (s *Server) handleDecks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, deckInfos(s.decks, s.catalog))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		s.log.Warn("websocket accept", "error", err)
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()

	var start startMessage
	if err := wsjson.Read(ctx, wsConn, &start); err != nil {
		s.log.Warn("websocket read start", "error", err)
		return
	}

	switch start.Type {
	case "start":
		err = s.playAI(ctx, wsConn, start)
	case "connect":
		err = s.proxy(ctx, wsConn, start)
	default:
		wsConn.Close(websocket.StatusPolicyViolation, "expected start or connect message")
		return
	}
	if err != nil {
		s.log.Info("websocket duel ended", "error", err)
		wsjson.Write(ctx, wsConn, dnet.ServerMessage{Type: "error", Error: err.Error()})
		wsConn.Close(websocket.StatusInternalError, "duel failed")
		return
	}
	wsConn.Close(websocket.StatusNormalClosure, "game ended")
}

// playAI runs a duel between the browser (P1) and the built-in AI (P2).
func (s *Server) playAI(ctx context.Context, wsConn *websocket.Conn, start startMessage) error {
	cfg, err := s.duelConfig(start)
	if err != nil {
		return err
	}
	sess, err := session.New(cfg, s.opts)
	if err != nil {
		return fmt.Errorf("new duel: %w", err)
	}
	defer sess.Close()
	s.log.Info("duel started", "session", sess.ID, "deck", start.DeckNumber, "ai_deck", start.AIDeck)

	conn := websocket.NetConn(ctx, wsConn, websocket.MessageText)
	ctrl := dnet.NewNetworkController(conn, sess, 0)
	sess.Start()
	return ctrl.Serve(ctx)
}

func (s *Server) duelConfig(start startMessage) (game.Config, error) {
	cfg := game.Config{Catalog: s.catalog, Seed: start.Seed}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if start.DeckNumber == 0 {
		start.DeckNumber = 1
	}
	if start.AIDeck == 0 {
		start.AIDeck = 2
	}
	for i, n := range []int{start.DeckNumber, start.AIDeck} {
		d, err := s.decks.DeckByNumber(n)
		if err != nil {
			return cfg, err
		}
		cfg.Decks[i] = d.Expand()
	}
	cfg.AI[1] = true
	return cfg, nil
}

// proxy relays between the browser and a TCP game server.
func (s *Server) proxy(ctx context.Context, wsConn *websocket.Conn, start startMessage) error {
	tcpConn, err := net.Dial("tcp", start.Addr)
	if err != nil {
		return fmt.Errorf("could not connect to game server at %s: %w", start.Addr, err)
	}
	defer tcpConn.Close()

	if err := json.NewEncoder(tcpConn).Encode(dnet.ClientMessage{Type: "join", DeckNumber: start.DeckNumber}); err != nil {
		return fmt.Errorf("send join: %w", err)
	}

	done := make(chan struct{})

	// TCP → WebSocket (server messages to browser)
	go func() {
		defer close(done)
		dec := json.NewDecoder(tcpConn)
		for {
			var msg json.RawMessage
			if err := dec.Decode(&msg); err != nil {
				if err != io.EOF {
					s.log.Warn("tcp read", "error", err)
				}
				return
			}
			if err := wsConn.Write(ctx, websocket.MessageText, msg); err != nil {
				s.log.Warn("websocket write", "error", err)
				return
			}
		}
	}()

	// WebSocket → TCP (browser responses to server)
	go func() {
		for {
			_, data, err := wsConn.Read(ctx)
			if err != nil {
				return
			}
			data = append(data, '\n')
			if _, err := tcpConn.Write(data); err != nil {
				s.log.Warn("tcp write", "error", err)
				return
			}
		}
	}()

	<-done
	return nil
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	s.log.Info("listening", "addr", addr)
	return http.ListenAndServe(addr, s.mux)
}
