package mcp

import (
	"context"
	"errors"

	"github.com/peterkuimelis/duelcore/internal/game"
	"github.com/peterkuimelis/duelcore/internal/net"
	"github.com/peterkuimelis/duelcore/internal/session"
)

// errNotLegal is returned when the chosen intent changes nothing.
var errNotLegal = errors.New("that move is not legal right now")

// AgentSeat plays one seat of a session on behalf of the MCP client. Tool
// calls are serialized by the caller, so it is not safe for concurrent use.
type AgentSeat struct {
	sess    *session.Session
	player  game.PlayerID
	wake    chan struct{}
	cancel  func()
	seen    int           // log entries already reported
	actions []game.Action // last offered
}

// NewAgentSeat attaches to sess as player.
func NewAgentSeat(sess *session.Session, player game.PlayerID) *AgentSeat {
	updates, cancel := sess.Subscribe()
	a := &AgentSeat{
		sess:   sess,
		player: player,
		wake:   make(chan struct{}, 1),
		cancel: cancel,
	}
	go func() {
		for range updates {
			select {
			case a.wake <- struct{}{}:
			default:
			}
		}
		close(a.wake)
	}()
	return a
}

// ready reports whether the seat should be asked for a move.
func (a *AgentSeat) ready(st *game.State) bool {
	if st.Over() {
		return true
	}
	return st.Awaiting().Player == a.player && !session.Automatic(st)
}

// Wait blocks until it is this seat's move or the duel is over.
func (a *AgentSeat) Wait(ctx context.Context) (*game.State, error) {
	for {
		st := a.sess.State()
		if a.ready(st) {
			return st, nil
		}
		select {
		case <-ctx.Done():
			return st, ctx.Err()
		case _, ok := <-a.wake:
			if !ok {
				return a.sess.State(), session.ErrClosed
			}
		}
	}
}

// Act submits the numbered action from the last snapshot.
func (a *AgentSeat) Act(index int) error {
	if index < 0 || index >= len(a.actions) {
		return errors.New("no such action")
	}
	return a.Submit(a.actions[index].Event)
}

// Submit applies a raw intent for this seat.
func (a *AgentSeat) Submit(ev game.Event) error {
	ev.Source = nil
	ok, err := a.sess.Submit(a.player, ev)
	if err != nil {
		return err
	}
	if !ok {
		return errNotLegal
	}
	return nil
}

// Snapshot builds the tool response for st and marks its log as reported.
func (a *AgentSeat) Snapshot(st *game.State) *ToolResponse {
	if len(st.Log) < a.seen {
		a.seen = 0
	}
	resp := &ToolResponse{
		Events: net.EventViews(st.Log[a.seen:]),
		State:  net.BuildStateView(st, a.player),
	}
	a.seen = len(st.Log)

	a.actions = nil
	if st.Over() {
		resp.GameOver = true
		resp.Winner = st.Winner.String()
		resp.Result = net.Result(st)
		return resp
	}
	if !session.Automatic(st) || st.Awaiting().Player != a.player {
		a.actions = game.Actions(st, a.player)
	}
	resp.Actions = net.ActionViews(a.actions)
	return resp
}

// Close detaches from the session.
func (a *AgentSeat) Close() {
	a.cancel()
}
