package enemy

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// DefaultMatchesToDefeat is the match count that beats an enemy with no
// custom defeat condition.
const DefaultMatchesToDefeat = 10

// RoundStats is a snapshot of round counters passed to defeat checks. Its
// fields and methods are also the environment of compiled defeat expressions.
type RoundStats struct {
	TotalMatches     int            `json:"totalMatches"`
	InvalidMatches   int            `json:"invalidMatches"`
	CurrentStreak    int            `json:"currentStreak"`
	BestStreak       int            `json:"bestStreak"`
	DamageTaken      int            `json:"damageTaken"`
	GracesUsed       int            `json:"gracesUsed"`
	HintsUsed        int            `json:"hintsUsed"`
	CardsDestroyed   int            `json:"cardsDestroyed"`
	Score            float64        `json:"score"`
	ElapsedMs        float64        `json:"elapsedMs"`
	TimeRemaining    float64        `json:"timeRemaining"`
	ColorMatches     map[string]int `json:"colorMatches,omitempty"`
	ShapeMatches     map[string]int `json:"shapeMatches,omitempty"`
	WeaponsTriggered []string       `json:"weaponsTriggered,omitempty"`
	FastestMatchMs   float64        `json:"fastestMatchMs,omitempty"`
}

// MatchesOfColor counts matches whose cards were all of color.
func (s RoundStats) MatchesOfColor(color string) int { return s.ColorMatches[color] }

// MatchesOfShape counts matches whose cards were all of shape.
func (s RoundStats) MatchesOfShape(shape string) int { return s.ShapeMatches[shape] }

// Triggered reports whether a weapon effect fired at least once this round.
func (s RoundStats) Triggered(effect string) bool {
	for _, t := range s.WeaponsTriggered {
		if t == effect {
			return true
		}
	}
	return false
}

// ElapsedSeconds is ElapsedMs in seconds.
func (s RoundStats) ElapsedSeconds() float64 { return s.ElapsedMs / 1000 }

// DefeatCondition decides whether an enemy has been beaten.
type DefeatCondition func(RoundStats) bool

// DefaultDefeatCondition is met after DefaultMatchesToDefeat matches.
func DefaultDefeatCondition(s RoundStats) bool {
	return s.TotalMatches >= DefaultMatchesToDefeat
}

// MatchesAtLeast returns a condition met after n matches.
func MatchesAtLeast(n int) DefeatCondition {
	return func(s RoundStats) bool { return s.TotalMatches >= n }
}

// CompileDefeatCondition compiles a boolean expression over RoundStats,
// e.g. `TotalMatches >= 8 && MatchesOfColor("red") >= 2`. An empty source
// yields DefaultDefeatCondition.
func CompileDefeatCondition(src string) (DefeatCondition, error) {
	if src == "" {
		return DefaultDefeatCondition, nil
	}
	prog, err := expr.Compile(src, expr.Env(RoundStats{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile defeat condition %q: %w", src, err)
	}
	return func(s RoundStats) bool {
		out, err := vm.Run(prog, s)
		if err != nil {
			return false
		}
		ok, _ := out.(bool)
		return ok
	}, nil
}
