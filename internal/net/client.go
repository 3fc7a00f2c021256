package net

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
)

// Client connects to a game server and provides a terminal REPL.
type Client struct {
	conn       net.Conn
	playerName string // "P1" or "P2"
	in         io.Reader
	out        io.Writer
}

// Connect connects to a server, sends the deck choice, and runs the REPL.
func Connect(ctx context.Context, addr string, deckNumber int) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	// Send join message with deck choice
	enc := json.NewEncoder(conn)
	if err := enc.Encode(ClientMessage{Type: "join", DeckNumber: deckNumber}); err != nil {
		return fmt.Errorf("send join: %w", err)
	}

	fmt.Println("Connected! Waiting for game to start...")

	client := &Client{conn: conn, playerName: "P2"}
	return client.RunREPL(ctx)
}

// RunREPL renders server messages and forwards numbered choices. Input is
// read concurrently so updates keep arriving while the prompt is open.
func (c *Client) RunREPL(ctx context.Context) error {
	if c.in == nil {
		c.in = os.Stdin
	}
	if c.out == nil {
		c.out = os.Stdout
	}
	dec := json.NewDecoder(c.conn)
	enc := json.NewEncoder(c.conn)

	msgs := make(chan ServerMessage)
	readErr := make(chan error, 1)
	go func() {
		for {
			var msg ServerMessage
			if err := dec.Decode(&msg); err != nil {
				readErr <- err
				return
			}
			msgs <- msg
		}
	}()

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			lines <- strings.TrimSpace(scanner.Text())
		}
		close(lines)
	}()

	var actions []ActionView
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-readErr:
			return fmt.Errorf("read message: %w", err)

		case line, ok := <-lines:
			if !ok {
				return nil
			}
			n, err := strconv.Atoi(line)
			if err != nil || n < 1 || n > len(actions) {
				if len(actions) == 0 {
					fmt.Fprintln(c.out, "Nothing to do right now")
				} else {
					fmt.Fprintf(c.out, "Enter a number between 1 and %d\n", len(actions))
				}
				continue
			}
			if err := enc.Encode(ClientMessage{Type: "action", Index: n - 1}); err != nil {
				return fmt.Errorf("send action: %w", err)
			}
			actions = nil

		case msg := <-msgs:
			switch msg.Type {
			case "update":
				for _, ev := range msg.Events {
					c.renderEvent(ev)
				}
				actions = msg.Actions
				if len(actions) > 0 {
					c.renderState(msg.State)
					c.renderActions(actions)
				}

			case "error":
				fmt.Fprintf(c.out, "! %s\n", msg.Error)

			case "game_over":
				fmt.Fprintln(c.out)
				fmt.Fprintln(c.out, "═══════════════════════════════════")
				fmt.Fprintln(c.out, "          GAME OVER")
				fmt.Fprintln(c.out, "═══════════════════════════════════")
				fmt.Fprintln(c.out, msg.Result)
				fmt.Fprintln(c.out, "═══════════════════════════════════")
				return nil
			}
		}
	}
}

func (c *Client) renderEvent(ev EventView) {
	// Format like the TextLogger
	phase := ev.Phase
	for len(phase) < 16 {
		phase += " "
	}
	marker := " "
	if ev.AI {
		marker = "*"
	}
	fmt.Fprintf(c.out, "T%-2d %s|%s %s\n", ev.Turn, phase, marker, ev.Details)
}

func (c *Client) renderState(sv *StateView) {
	if sv == nil {
		return
	}
	w := c.out

	fmt.Fprintln(w)
	fmt.Fprintln(w, "╔══════════════════════════════════════════════════════╗")

	// Opponent info
	opp := sv.Opponent
	fmt.Fprintf(w, "║  OPPONENT (LP: %d)  Hand: %d  Deck: %d  Graveyard: %d\n",
		opp.LP, opp.HandCount, opp.DeckCount, opp.GraveyardCount)
	fmt.Fprintf(w, "║  S/T:     %s\n", formatZones(opp.SpellTraps, formatSpellTrapZone))
	fmt.Fprintf(w, "║  Monster: %s\n", formatZones(opp.Monsters, formatMonsterZone))

	fmt.Fprintln(w, "║──────────────────────────────────────────────────────")

	you := sv.You
	fmt.Fprintf(w, "║  Monster: %s\n", formatZones(you.Monsters, formatMonsterZone))
	fmt.Fprintf(w, "║  S/T:     %s\n", formatZones(you.SpellTraps, formatSpellTrapZone))
	fmt.Fprintf(w, "║  YOU (LP: %d)  Hand: %d  Deck: %d  Graveyard: %d\n",
		you.LP, you.HandCount, you.DeckCount, you.GraveyardCount)
	fmt.Fprintln(w, "╚══════════════════════════════════════════════════════╝")

	turnInfo := fmt.Sprintf("Turn %d | %s", sv.Turn, sv.Phase)
	if sv.IsYourTurn {
		turnInfo += " | Your turn"
	} else {
		turnInfo += " | Opponent's turn"
	}
	fmt.Fprintln(w, turnInfo)
	if sv.Barrier != nil {
		fmt.Fprintf(w, "%s blocks %s's attacks (%d turns left)\n", sv.Barrier.Name, sv.Barrier.Affected, sv.Barrier.TurnsLeft)
	}
	if sv.Prompt != "" {
		fmt.Fprintln(w, sv.Prompt)
	}

	if len(you.Hand) > 0 {
		fmt.Fprintf(w, "\nHand: ")
		for i, cv := range you.Hand {
			fmt.Fprintf(w, "[%d] %s  ", i+1, cv.Name)
		}
		fmt.Fprintln(w)
	}
}

func formatZones(zones [5]ZoneView, format func(ZoneView) string) string {
	parts := make([]string, len(zones))
	for i, zv := range zones {
		parts[i] = format(zv)
	}
	return strings.Join(parts, " ")
}

func formatMonsterZone(zv ZoneView) string {
	if zv.Empty {
		return "[ ]"
	}
	if zv.FaceDown {
		if zv.Name != "" {
			return fmt.Sprintf("[SET:%s]", zv.Name)
		}
		return "[SET]"
	}
	if zv.Position == "ATK" {
		return fmt.Sprintf("[%s ATK/%d]", zv.Name, zv.ATK)
	}
	return fmt.Sprintf("[%s DEF/%d]", zv.Name, zv.DEF)
}

func formatSpellTrapZone(zv ZoneView) string {
	if zv.Empty {
		return "[ ]"
	}
	if zv.FaceDown {
		if zv.Name != "" {
			return fmt.Sprintf("[SET:%s]", zv.Name)
		}
		return "[SET]"
	}
	return fmt.Sprintf("[%s]", zv.Name)
}

func (c *Client) renderActions(actions []ActionView) {
	fmt.Fprintln(c.out, "\nActions:")
	for _, a := range actions {
		fmt.Fprintf(c.out, "  %d) %s\n", a.Index+1, a.Desc)
	}
	fmt.Fprint(c.out, "> ")
}
