package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/peterkuimelis/duelcore/internal/game"
	"github.com/peterkuimelis/duelcore/internal/log"
	"github.com/peterkuimelis/duelcore/internal/session"
)

// NetworkController drives one seat of a session over a connection. It
// pushes an update after every change and submits the numbered actions the
// client picks.
type NetworkController struct {
	conn    net.Conn
	enc     *json.Encoder
	dec     *json.Decoder
	sess    *session.Session
	player  game.PlayerID
	mu      sync.Mutex
	actions []game.Action // last offered, guarded by mu
}

// NewNetworkController creates a new controller for the given connection.
func NewNetworkController(conn net.Conn, sess *session.Session, player game.PlayerID) *NetworkController {
	return &NetworkController{
		conn:   conn,
		enc:    json.NewEncoder(conn),
		dec:    json.NewDecoder(conn),
		sess:   sess,
		player: player,
	}
}

// Serve runs until the duel ends, the client disconnects, or ctx is done.
func (nc *NetworkController) Serve(ctx context.Context) error {
	updates, cancel := nc.sess.Subscribe()
	defer cancel()

	nc.mu.Lock()
	err := nc.sendUpdate(nc.sess.State(), nil)
	nc.mu.Unlock()
	if err != nil {
		return err
	}

	recvErr := make(chan error, 1)
	go func() { recvErr <- nc.readLoop() }()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-recvErr:
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		case u, ok := <-updates:
			if !ok {
				return session.ErrClosed
			}
			nc.mu.Lock()
			err := nc.sendUpdate(u.State, u.Events)
			if err == nil && u.State.Over() {
				err = nc.send(ServerMessage{Type: "game_over", Winner: int(u.State.Winner), Result: Result(u.State)})
				nc.mu.Unlock()
				return err
			}
			nc.mu.Unlock()
			if err != nil {
				return err
			}
		}
	}
}

// readLoop submits client choices until the connection fails.
func (nc *NetworkController) readLoop() error {
	for {
		msg, err := nc.recv()
		if err != nil {
			return err
		}
		var ev game.Event
		switch msg.Type {
		case "action":
			nc.mu.Lock()
			if msg.Index < 0 || msg.Index >= len(nc.actions) {
				err = nc.send(ServerMessage{Type: "error", Error: fmt.Sprintf("no action %d", msg.Index+1)})
				nc.mu.Unlock()
				if err != nil {
					return err
				}
				continue
			}
			ev = nc.actions[msg.Index].Event
			nc.mu.Unlock()
		case "intent":
			if msg.Intent == nil {
				continue
			}
			ev = *msg.Intent
			ev.Source = nil
		default:
			continue
		}

		ok, err := nc.sess.Submit(nc.player, ev)
		if err != nil || !ok {
			reason := "action no longer available"
			if err != nil {
				reason = err.Error()
			}
			nc.mu.Lock()
			err = nc.send(ServerMessage{Type: "error", Error: reason})
			if err == nil {
				err = nc.sendUpdate(nc.sess.State(), nil)
			}
			nc.mu.Unlock()
			if err != nil {
				return err
			}
		}
	}
}

// sendUpdate sends the state with this seat's actions. Must be called with mu held.
func (nc *NetworkController) sendUpdate(st *game.State, events []log.GameEvent) error {
	nc.actions = nil
	if !session.Automatic(st) || st.Awaiting().Player != nc.player {
		nc.actions = game.Actions(st, nc.player)
	}
	msg := ServerMessage{
		Type:    "update",
		State:   BuildStateView(st, nc.player),
		Events:  EventViews(events),
		Actions: ActionViews(nc.actions),
	}
	if err := nc.send(msg); err != nil {
		return fmt.Errorf("send update: %w", err)
	}
	return nil
}

// send sends a server message to the client. Must be called with mu held.
func (nc *NetworkController) send(msg ServerMessage) error {
	return nc.enc.Encode(msg)
}

// recv reads a client message.
func (nc *NetworkController) recv() (ClientMessage, error) {
	var msg ClientMessage
	err := nc.dec.Decode(&msg)
	return msg, err
}
