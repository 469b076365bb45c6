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

	"github.com/peterkuimelis/setrogue/internal/game"
)

// Client connects to a round server and provides a terminal REPL.
type Client struct {
	conn net.Conn
	in   *bufio.Reader
	out  io.Writer
}

// Connect dials the server, starts a round and runs the REPL on stdin/stdout.
func Connect(ctx context.Context, addr string, start ClientMessage) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	start.Type = MsgStart
	if err := json.NewEncoder(conn).Encode(start); err != nil {
		return fmt.Errorf("send start: %w", err)
	}

	c := &Client{conn: conn, in: bufio.NewReader(os.Stdin), out: os.Stdout}
	return c.RunREPL(ctx)
}

// RunREPL renders server replies and sends one command per prompt.
func (c *Client) RunREPL(ctx context.Context) error {
	dec := json.NewDecoder(c.conn)
	enc := json.NewEncoder(c.conn)

	for {
		var msg ServerMessage
		if err := dec.Decode(&msg); err != nil {
			return fmt.Errorf("read message: %w", err)
		}
		c.render(msg)
		if msg.Type == MsgGameOver {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		req, ok := c.readCommand(msg.State)
		if !ok {
			return nil
		}
		if err := enc.Encode(req); err != nil {
			return fmt.Errorf("send %s: %w", req.Type, err)
		}
	}
}

func (c *Client) render(msg ServerMessage) {
	for _, ev := range msg.Events {
		fmt.Fprintf(c.out, "%8.1fs %-14s| %s\n", ev.ElapsedMs/1000, ev.Type, ev.Details)
	}
	switch msg.Type {
	case MsgError:
		fmt.Fprintf(c.out, "error: %s\n", msg.Error)
	case MsgHint:
		fmt.Fprintf(c.out, "hint: %s\n", strings.Join(msg.Hint, " "))
	case MsgGameOver:
		outcome := "LOST"
		if msg.Won {
			outcome = "WON"
		}
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "═══════════════════════════════════")
		fmt.Fprintf(c.out, "          ROUND %s\n", outcome)
		fmt.Fprintln(c.out, "═══════════════════════════════════")
		fmt.Fprintln(c.out, msg.Result)
		return
	}
	c.renderState(msg.State)
}

func (c *Client) renderState(rv *RoundView) {
	if rv == nil {
		return
	}
	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "vs %s (tier %d)  HP %d/%d  Graces %d  Hints %d  Score %.1f  Time %.1fs  Deck %d\n",
		rv.Enemy.Name, rv.Enemy.Tier, rv.Health, rv.MaxHealth, rv.Graces, rv.Hints,
		rv.Score, rv.TimeRemaining, rv.DeckCount)
	cols := rv.Columns
	if cols <= 0 {
		cols = game.GridColumns
	}
	for i, cv := range rv.Board {
		fmt.Fprintf(c.out, "%2d) %-34s", i+1, formatCard(cv))
		if (i+1)%cols == 0 || i == len(rv.Board)-1 {
			fmt.Fprintln(c.out)
		}
	}
}

func formatCard(cv CardView) string {
	var s string
	if cv.FaceDown {
		s = "[face down]"
	} else {
		parts := []string{}
		if cv.Number > 0 {
			parts = append(parts, strconv.Itoa(cv.Number))
		}
		for _, v := range []string{cv.Color, cv.Shading, cv.Shape, cv.Background} {
			if v != "" {
				parts = append(parts, v)
			}
		}
		s = strings.Join(parts, " ")
	}
	if cv.Dud {
		s += " DUD"
	}
	if cv.OnFire {
		s += " FIRE"
	}
	if cv.BombMs > 0 {
		s += fmt.Sprintf(" BOMB:%ds", cv.BombMs/1000)
	}
	return s
}

// readCommand prompts until the input parses. It returns false on quit or EOF.
//
//	t [ms]     advance the clock (default 1000)
//	m a b c    submit board positions or card ids
//	h          hint
//	s          refresh state
//	q          quit
func (c *Client) readCommand(rv *RoundView) (ClientMessage, bool) {
	for {
		fmt.Fprint(c.out, "> ")
		line, err := c.in.ReadString('\n')
		if err != nil && line == "" {
			return ClientMessage{}, false
		}
		msg, perr := ParseCommand(line, rv)
		if perr == nil {
			return msg, msg.Type != ""
		}
		fmt.Fprintln(c.out, perr)
	}
}

// ParseCommand turns one REPL line into a client message. A quit command
// yields an empty message.
func ParseCommand(line string, rv *RoundView) (ClientMessage, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ClientMessage{}, fmt.Errorf("commands: t [ms], m a b c, h, s, q")
	}
	switch fields[0] {
	case "t", "tick":
		delta := 1000.0
		if len(fields) > 1 {
			v, err := strconv.ParseFloat(fields[1], 64)
			if err != nil || v < 0 {
				return ClientMessage{}, fmt.Errorf("tick wants a non-negative number of ms")
			}
			delta = v
		}
		return ClientMessage{Type: MsgTick, DeltaMs: delta}, nil
	case "m", "match":
		if len(fields) != 4 {
			return ClientMessage{}, fmt.Errorf("match wants three cards")
		}
		ids := make([]string, 0, 3)
		for _, f := range fields[1:] {
			ids = append(ids, resolveCard(f, rv))
		}
		return ClientMessage{Type: MsgMatch, IDs: ids}, nil
	case "h", "hint":
		return ClientMessage{Type: MsgHint}, nil
	case "s", "state":
		return ClientMessage{Type: MsgState}, nil
	case "q", "quit":
		return ClientMessage{}, nil
	}
	return ClientMessage{}, fmt.Errorf("unknown command %q", fields[0])
}

// resolveCard maps a 1-based board position to its card id. Anything else
// is passed through as an id.
func resolveCard(f string, rv *RoundView) string {
	n, err := strconv.Atoi(f)
	if err != nil || rv == nil || n < 1 || n > len(rv.Board) {
		return f
	}
	return rv.Board[n-1].ID
}
