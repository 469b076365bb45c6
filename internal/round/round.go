// Package round drives a single round: a board of cards, one enemy, the
// player's weapons and the round clock.
package round

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/peterkuimelis/setrogue/internal/config"
	"github.com/peterkuimelis/setrogue/internal/enemy"
	"github.com/peterkuimelis/setrogue/internal/game"
	"github.com/peterkuimelis/setrogue/internal/log"
	"github.com/peterkuimelis/setrogue/internal/weapon"
)

var (
	ErrRoundOver          = errors.New("round is over")
	ErrUnknownCard        = errors.New("card not on board")
	ErrWrongSelectionSize = errors.New("a match needs three distinct cards")
	ErrHintsDisabled      = errors.New("hints are disabled")
	ErrNoHints            = errors.New("no hints left")
	ErrNoCombination      = errors.New("no valid combination on the board")
)

// MatchPoints is the base score of a valid match before multipliers.
const MatchPoints = 3

// BurnPoints is earned for every burning card consumed by a later match.
const BurnPoints = 1

// Status is the lifecycle state of a round.
type Status int

const (
	StatusActive Status = iota
	StatusWon
	StatusLost
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "unknown"
	}
}

// End reasons.
const (
	ReasonEnemyDefeated  = "enemy defeated"
	ReasonHealthDepleted = "health depleted"
	ReasonInstantDeath   = "instant death"
	ReasonTimeExpired    = "time expired"
	ReasonNoMatches      = "no matches left"
)

// Config assembles a round.
type Config struct {
	Settings config.RoundSettings
	Enemy    *enemy.Instance
	Weapons  []game.Weapon

	Number int                 // round number used in the event log, default 1
	Echo   weapon.EchoDetector // nil uses weapon.ChanceEcho
	RNG    game.RNG            // nil seeds from Settings.Seed
	Logger log.EventLogger     // nil keeps events in memory
}

// Round is a single running round. It is not safe for concurrent use.
type Round struct {
	ID string

	settings config.RoundSettings
	active   game.ActiveAttributes
	enemy    *enemy.Instance
	weapons  []game.Weapon
	echo     weapon.EchoDetector
	rng      game.RNG
	logger   log.EventLogger
	number   int

	deck       game.Board
	board      game.Board
	targetSize int

	health        int
	graces        int
	hints         int
	score         float64
	money         int
	timeRemaining float64 // seconds
	elapsedMs     float64
	lastMatchMs   float64

	stats     enemy.RoundStats
	triggered map[string]struct{}

	status Status
	reason string
}

// New deals the board and starts the round.
func New(cfg Config) (*Round, error) {
	if cfg.Enemy == nil {
		return nil, errors.New("round needs an enemy")
	}
	if err := cfg.Settings.Validate(); err != nil {
		return nil, fmt.Errorf("round settings: %w", err)
	}
	r := &Round{
		ID:            uuid.NewString(),
		settings:      cfg.Settings,
		active:        cfg.Settings.ActiveAttributes(),
		enemy:         cfg.Enemy,
		weapons:       cfg.Weapons,
		echo:          cfg.Echo,
		rng:           cfg.RNG,
		logger:        cfg.Logger,
		number:        cfg.Number,
		targetSize:    cfg.Settings.BoardSize,
		health:        cfg.Settings.MaxHealth,
		graces:        cfg.Settings.Graces,
		hints:         cfg.Settings.Hints,
		timeRemaining: cfg.Settings.DurationSec,
		triggered:     map[string]struct{}{},
	}
	if r.rng == nil {
		r.rng = game.NewRNG(cfg.Settings.Seed)
	}
	if r.logger == nil {
		r.logger = log.NewMemoryLogger()
	}
	if r.echo == nil {
		r.echo = weapon.ChanceEcho{}
	}
	if r.number == 0 {
		r.number = 1
	}

	r.deck = game.NewDeck(r.active)
	r.deck.Shuffle(r.rng)
	r.log(log.NewRoundStartEvent(r.enemy.Name, r.targetSize))
	r.refill()
	r.applyEnemy(r.enemy.OnRoundStart(r.board, r.rng))
	r.settle()
	return r, nil
}

func (r *Round) log(event log.GameEvent) {
	event.Round = r.number
	event.ElapsedMs = r.elapsedMs
	r.logger.Log(event)
}

// --- Accessors ---

func (r *Round) Board() game.Board              { return r.board }
func (r *Round) Enemy() *enemy.Instance         { return r.enemy }
func (r *Round) Weapons() []game.Weapon         { return r.weapons }
func (r *Round) Active() game.ActiveAttributes  { return r.active }
func (r *Round) Logger() log.EventLogger        { return r.logger }
func (r *Round) Health() int                    { return r.health }
func (r *Round) MaxHealth() int                 { return r.settings.MaxHealth }
func (r *Round) Graces() int                    { return r.graces }
func (r *Round) Hints() int                     { return r.hints }
func (r *Round) Score() float64                 { return r.score }
func (r *Round) Money() int                     { return r.money }
func (r *Round) TimeRemaining() float64         { return r.timeRemaining }
func (r *Round) ElapsedMs() float64             { return r.elapsedMs }
func (r *Round) DeckCount() int                 { return len(r.deck) }
func (r *Round) Status() Status                 { return r.status }
func (r *Round) Reason() string                 { return r.reason }
func (r *Round) Over() bool                     { return r.status != StatusActive }
func (r *Round) UIModifiers() enemy.UIModifiers { return r.enemy.UIModifiers() }

// Stats returns a snapshot of the round counters.
func (r *Round) Stats() enemy.RoundStats {
	s := r.stats
	s.Score = r.score
	s.ElapsedMs = r.elapsedMs
	s.TimeRemaining = r.timeRemaining
	s.ColorMatches = copyCounts(r.stats.ColorMatches)
	s.ShapeMatches = copyCounts(r.stats.ShapeMatches)
	s.WeaponsTriggered = append([]string(nil), r.stats.WeaponsTriggered...)
	return s
}

// PlayerStats returns the effective stats: base settings plus weapons, with
// enemy counters applied.
func (r *Round) PlayerStats() game.PlayerStats {
	base := r.settings.PlayerStats()
	return r.enemy.StatModifiers().Apply(game.StatsFromWeapons(base, r.weapons))
}

// --- Round end ---

func (r *Round) end(status Status, reason string) {
	if r.status != StatusActive {
		return
	}
	r.status = status
	r.reason = reason
	if status == StatusWon {
		r.log(log.NewEnemyDefeatedEvent(r.enemy.Name))
	}
	r.log(log.NewRoundOverEvent(status == StatusWon, reason))
}

// checkDefeat ends the round with a win when the enemy's condition holds.
func (r *Round) checkDefeat() {
	if r.status == StatusActive && r.enemy.CheckDefeatCondition(r.Stats()) {
		r.end(StatusWon, ReasonEnemyDefeated)
	}
}

func (r *Round) damage(amount int, reason string) {
	if amount <= 0 {
		return
	}
	old := r.health
	r.health -= amount
	r.stats.DamageTaken += amount
	r.log(log.NewHealthChangeEvent(old, r.health, reason))
	if r.health <= 0 {
		r.health = 0
		r.end(StatusLost, ReasonHealthDepleted)
	}
}

func (r *Round) heal(amount int, reason string) {
	if amount <= 0 || r.health >= r.settings.MaxHealth {
		return
	}
	old := r.health
	r.health = min(r.health+amount, r.settings.MaxHealth)
	r.log(log.NewHealthChangeEvent(old, r.health, reason))
}

func (r *Round) addScore(delta float64, reason string) {
	if delta == 0 {
		return
	}
	old := r.score
	r.score = max(r.score+delta, 0)
	if r.score != old {
		r.log(log.NewScoreChangeEvent(old, r.score, reason))
	}
}

func (r *Round) addTime(deltaSec float64, reason string) {
	if deltaSec == 0 {
		return
	}
	r.timeRemaining = max(r.timeRemaining+deltaSec, 0)
	r.log(log.NewTimeChangeEvent(deltaSec, reason))
}

func copyCounts(m map[string]int) map[string]int {
	if m == nil {
		return nil
	}
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
