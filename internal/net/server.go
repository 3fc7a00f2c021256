package net

import (
	"context"
	"encoding/json"
	"fmt"
	"net"

	"github.com/peterkuimelis/duelcore/internal/catalog"
	"github.com/peterkuimelis/duelcore/internal/game"
	"github.com/peterkuimelis/duelcore/internal/session"
)

// Server hosts a duel between the local terminal and one TCP client.
type Server struct {
	Decks    *catalog.DeckFile
	Catalog  *catalog.Catalog
	Port     string
	HostDeck int // host's deck number (1-indexed)
	Seed     int64
	Options  session.Options
}

// Run starts the server, waits for a client to join, then runs the duel.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", ":"+s.Port)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	defer ln.Close()

	fmt.Printf("Waiting for opponent on port %s...\n", s.Port)

	// Accept exactly one connection (the joiner)
	conn, err := ln.Accept()
	if err != nil {
		return fmt.Errorf("accept: %w", err)
	}
	defer conn.Close()

	fmt.Printf("Opponent connected from %s\n", conn.RemoteAddr())

	// Read the joiner's deck choice
	dec := json.NewDecoder(conn)
	var joinMsg ClientMessage
	if err := dec.Decode(&joinMsg); err != nil {
		return fmt.Errorf("read join message: %w", err)
	}
	joinerDeck := joinMsg.DeckNumber
	if joinerDeck == 0 {
		joinerDeck = 2
	}

	fmt.Printf("Opponent chose deck %d\n", joinerDeck)

	cfg, err := s.duelConfig(s.HostDeck, joinerDeck)
	if err != nil {
		return err
	}
	sess, err := session.New(cfg, s.Options)
	if err != nil {
		return fmt.Errorf("new duel: %w", err)
	}
	defer sess.Close()

	// The host plays through the same protocol over an in-memory pipe.
	hostConn, hostServerConn := net.Pipe()
	hostCtrl := NewNetworkController(hostServerConn, sess, 0)
	joinerCtrl := &NetworkController{
		conn:   conn,
		enc:    json.NewEncoder(conn),
		dec:    dec,
		sess:   sess,
		player: 1,
	}

	errCh := make(chan error, 3)
	go func() {
		client := &Client{conn: hostConn, playerName: "P1"}
		errCh <- client.RunREPL(ctx)
	}()
	go func() { errCh <- hostCtrl.Serve(ctx) }()
	go func() { errCh <- joinerCtrl.Serve(ctx) }()
	sess.Start()

	// Wait for the host's REPL or either seat to finish
	return <-errCh
}

// PlayLocal runs a duel between the terminal and the built-in AI.
func (s *Server) PlayLocal(ctx context.Context, aiDeck int) error {
	cfg, err := s.duelConfig(s.HostDeck, aiDeck)
	if err != nil {
		return err
	}
	cfg.AI[1] = true
	sess, err := session.New(cfg, s.Options)
	if err != nil {
		return fmt.Errorf("new duel: %w", err)
	}
	defer sess.Close()

	hostConn, hostServerConn := net.Pipe()
	ctrl := NewNetworkController(hostServerConn, sess, 0)
	errCh := make(chan error, 2)
	go func() {
		client := &Client{conn: hostConn, playerName: "P1"}
		errCh <- client.RunREPL(ctx)
	}()
	go func() { errCh <- ctrl.Serve(ctx) }()
	sess.Start()
	return <-errCh
}

func (s *Server) duelConfig(deck0, deck1 int) (game.Config, error) {
	var cfg game.Config
	for i, n := range []int{deck0, deck1} {
		d, err := s.Decks.DeckByNumber(n)
		if err != nil {
			return cfg, fmt.Errorf("load deck for %s: %w", game.PlayerID(i), err)
		}
		fmt.Printf("%s: %s\n", game.PlayerID(i), d.Name)
		cfg.Decks[i] = d.Expand()
	}
	cfg.Catalog = s.Catalog
	cfg.Seed = s.Seed
	return cfg, nil
}
