package net

import (
	"errors"
	"fmt"
	"sync"

	"github.com/peterkuimelis/setrogue/internal/config"
	"github.com/peterkuimelis/setrogue/internal/enemy"
	"github.com/peterkuimelis/setrogue/internal/game"
	"github.com/peterkuimelis/setrogue/internal/log"
	"github.com/peterkuimelis/setrogue/internal/round"
)

// Lobby starts rounds from "start" messages. It is shared by every transport.
type Lobby struct {
	Catalog  *config.Catalog // nil runs with default settings and no weapons
	Registry *enemy.Registry

	// NewRNG builds the random source for a round. Nil uses game.NewRNG.
	NewRNG func(seed int64) game.RNG
}

// NewLobby builds a lobby whose registry holds the built-in roster plus the
// catalog enemies.
func NewLobby(c *config.Catalog) (*Lobby, error) {
	reg, err := config.NewRegistry(c)
	if err != nil {
		return nil, err
	}
	return &Lobby{Catalog: c, Registry: reg}, nil
}

// Settings returns the round settings new rounds start from.
func (l *Lobby) Settings() config.RoundSettings {
	if l.Catalog == nil {
		return config.DefaultRound()
	}
	return l.Catalog.Round
}

// Weapons returns the weapon catalog.
func (l *Lobby) Weapons() []game.Weapon {
	if l.Catalog == nil {
		return nil
	}
	return l.Catalog.WeaponList()
}

// StartRound creates a session for a "start" message. An empty enemy name
// picks a random enemy of msg.Tier (any tier when zero).
func (l *Lobby) StartRound(msg ClientMessage) (*Session, error) {
	if msg.Type != "" && msg.Type != MsgStart {
		return nil, fmt.Errorf("expected %q message, got %q", MsgStart, msg.Type)
	}
	settings := l.Settings()
	if msg.Seed != 0 {
		settings.Seed = msg.Seed
	}
	newRNG := l.NewRNG
	if newRNG == nil {
		newRNG = func(seed int64) game.RNG { return game.NewRNG(seed) }
	}
	rng := newRNG(settings.Seed)

	var inst *enemy.Instance
	var err error
	if msg.Enemy == "" {
		inst, err = l.Registry.Random(msg.Tier, rng)
	} else {
		inst, err = l.Registry.Create(msg.Enemy)
	}
	if err != nil {
		return nil, err
	}

	var weapons []game.Weapon
	if len(msg.Weapons) > 0 {
		if l.Catalog == nil {
			return nil, errors.New("no weapon catalog loaded")
		}
		if weapons, err = l.Catalog.WeaponsByID(msg.Weapons); err != nil {
			return nil, err
		}
	}

	logger := log.NewMemoryLogger()
	r, err := round.New(round.Config{
		Settings: settings,
		Enemy:    inst,
		Weapons:  weapons,
		RNG:      rng,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}
	return &Session{round: r, logger: logger}, nil
}

// Session serializes access to one round and tracks which events a client
// has already seen.
type Session struct {
	mu     sync.Mutex
	round  *round.Round
	logger *log.MemoryLogger
	sent   int
}

// ID returns the round id.
func (s *Session) ID() string { return s.round.ID }

// Snapshot returns the current state with any unsent events.
func (s *Session) Snapshot() ServerMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reply(ServerMessage{Type: MsgRound})
}

// Handle applies one client message to the round.
func (s *Session) Handle(msg ClientMessage) ServerMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := ServerMessage{Type: MsgRound}
	var err error
	switch msg.Type {
	case MsgTick:
		_, err = s.round.Tick(msg.DeltaMs)
	case MsgMatch:
		var res *round.MatchResult
		if res, err = s.round.SubmitMatch(msg.IDs); err == nil {
			out.Type = MsgMatch
			out.Match = BuildMatchView(res)
		}
	case MsgHint:
		if out.Hint, err = s.round.Hint(); err == nil {
			out.Type = MsgHint
		}
	case MsgState:
	default:
		err = fmt.Errorf("unknown message type %q", msg.Type)
	}
	if err != nil {
		out = ServerMessage{Type: MsgError, Error: err.Error()}
	}
	return s.reply(out)
}

// Check validates a selection without playing it.
func (s *Session) Check(ids []string) (*CheckView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, err := s.round.Check(ids)
	if err != nil {
		return nil, err
	}
	return &CheckView{
		Valid:             v.IsValid,
		InvalidAttributes: v.InvalidNames(),
		GraceEligible:     v.GraceEligible(),
		GraceAvailable:    v.CanApplyGrace(s.round.Graces()),
	}, nil
}

// Over reports whether the round has ended.
func (s *Session) Over() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.round.Over()
}

// reply attaches unsent events and the round view. Once the round is over
// the message becomes game_over unless it reports an error.
func (s *Session) reply(out ServerMessage) ServerMessage {
	events := s.logger.Events()
	for _, ev := range events[s.sent:] {
		out.Events = append(out.Events, BuildEventView(ev))
	}
	s.sent = len(events)
	out.State = BuildRoundView(s.round)
	if s.round.Over() && out.Type != MsgError {
		out.Type = MsgGameOver
		out.Won = s.round.Status() == round.StatusWon
		out.Result = s.round.Reason()
	}
	return out
}
