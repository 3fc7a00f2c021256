// Package session runs one duel: it owns the current state, applies one
// intent at a time and schedules the deferred moves (AI turns, automatic
// phase advance, unanswerable attacks) as cancelable timers.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/peterkuimelis/duelcore/internal/game"
	"github.com/peterkuimelis/duelcore/internal/log"
)

var (
	// ErrClosed is returned for intents submitted after Close.
	ErrClosed = errors.New("session closed")
	// ErrWrongSeat is returned when a seat submits an intent for the other player.
	ErrWrongSeat = errors.New("intent is not for this seat")
)

// AnySeat may submit intents for either player.
const AnySeat = game.NoPlayer

// Options tunes the deferred moves. Zero delays fire immediately.
type Options struct {
	AIDelay             time.Duration
	AutoAdvanceDelay    time.Duration
	AttackResponseDelay time.Duration

	// Logger receives every new log entry. Optional.
	Logger log.EventLogger
	// Slog receives operational messages. Defaults to slog.Default().
	Slog *slog.Logger
}

// Update is published after every applied intent.
type Update struct {
	State  *game.State
	Events []log.GameEvent
}

// Session owns a duel state.
type Session struct {
	ID string

	mu      sync.Mutex
	state   *game.State
	opts    Options
	log     *slog.Logger
	gen     uint64
	timer   *time.Timer
	subs    map[int]chan Update
	nextSub int
	closed  bool
}

// New creates a session for a fresh duel. Call Start once subscribers are
// attached to begin scheduling deferred moves.
func New(cfg game.Config, opts Options) (*Session, error) {
	st, err := game.NewDuel(cfg)
	if err != nil {
		return nil, err
	}
	lg := opts.Slog
	if lg == nil {
		lg = slog.Default()
	}
	s := &Session{
		ID:    uuid.NewString(),
		state: st,
		opts:  opts,
		subs:  make(map[int]chan Update),
	}
	s.log = lg.With("session", s.ID)
	if opts.Logger != nil {
		for _, e := range st.Log {
			opts.Logger.Log(e)
		}
	}
	return s, nil
}

// Start schedules the first deferred move, if any.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schedule()
}

// State returns the current snapshot.
func (s *Session) State() *game.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Submit applies ev on behalf of seat. It reports whether the state
// changed; an illegal intent is not an error, it just changes nothing.
func (s *Session) Submit(seat game.PlayerID, ev game.Event) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, ErrClosed
	}
	if seat != AnySeat {
		if a := Actor(s.state, ev); a != AnySeat && a != seat {
			return false, ErrWrongSeat
		}
	}
	return s.apply(ev), nil
}

// Subscribe returns a channel of updates and a function that ends the
// subscription. A subscriber that falls too far behind is dropped and its
// channel closed.
func (s *Session) Subscribe() (<-chan Update, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan Update, 256)
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
}

// Wait blocks until the duel has a winner and returns the final state.
func (s *Session) Wait(ctx context.Context) (*game.State, error) {
	updates, cancel := s.Subscribe()
	defer cancel()
	if st := s.State(); st.Over() {
		return st, nil
	}
	for {
		select {
		case <-ctx.Done():
			return s.State(), ctx.Err()
		case u, ok := <-updates:
			if !ok {
				return s.State(), ErrClosed
			}
			if u.State.Over() {
				return u.State, nil
			}
		}
	}
}

// Close stops pending timers and ends all subscriptions.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
	s.log.Info("session closed")
}

// apply dispatches ev and publishes the result. Must be called with mu held.
func (s *Session) apply(ev game.Event) bool {
	prev := s.state
	next := game.Dispatch(prev, ev)
	if next == prev {
		return false
	}
	var events []log.GameEvent
	if ev.Kind == game.EventReset {
		events = next.Log
	} else {
		events = next.Log[len(prev.Log):]
	}
	s.state = next
	if s.opts.Logger != nil {
		for _, e := range events {
			s.opts.Logger.Log(e)
		}
	}
	if next.Over() && !prev.Over() {
		s.log.Info("duel over", "winner", next.Winner.String(), "turn", next.Turn)
	}
	s.publish(Update{State: next, Events: events})
	s.schedule()
	return true
}

func (s *Session) publish(u Update) {
	for id, ch := range s.subs {
		select {
		case ch <- u:
		default:
			s.log.Warn("dropping slow subscriber", "subscriber", id)
			delete(s.subs, id)
			close(ch)
		}
	}
}
