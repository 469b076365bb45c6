package config

import (
	"fmt"

	"github.com/peterkuimelis/setrogue/internal/game"
)

// Round defaults.
const (
	DefaultBoardSize   = 12
	DefaultAttributes  = 4
	DefaultMaxHealth   = 3
	DefaultGraces      = 1
	DefaultHints       = 3
	DefaultDurationSec = 120
)

// RoundSettings configure a single round.
type RoundSettings struct {
	Seed        int64   `yaml:"seed" json:"seed"`
	BoardSize   int     `yaml:"board_size" json:"boardSize"`
	Attributes  int     `yaml:"attributes" json:"attributes"`
	MaxHealth   int     `yaml:"max_health" json:"maxHealth"`
	Graces      int     `yaml:"graces" json:"graces"`
	Hints       int     `yaml:"hints" json:"hints"`
	DurationSec float64 `yaml:"duration_sec" json:"durationSec"`

	// Stats holds base chances keyed by weapon effect name.
	Stats             map[string]float64 `yaml:"stats" json:"stats,omitempty"`
	TimeGainAmount    float64            `yaml:"time_gain_amount" json:"timeGainAmount,omitempty"`
	BoardGrowthAmount int                `yaml:"board_growth_amount" json:"boardGrowthAmount,omitempty"`
}

// DefaultRound returns the settings used when no catalog is loaded.
func DefaultRound() RoundSettings {
	return RoundSettings{Graces: DefaultGraces, Hints: DefaultHints}.withDefaults()
}

// withDefaults fills unset sizes. Graces and hints may legitimately be zero.
func (s RoundSettings) withDefaults() RoundSettings {
	if s.BoardSize == 0 {
		s.BoardSize = DefaultBoardSize
	}
	if s.Attributes == 0 {
		s.Attributes = DefaultAttributes
	}
	if s.MaxHealth == 0 {
		s.MaxHealth = DefaultMaxHealth
	}
	if s.DurationSec == 0 {
		s.DurationSec = DefaultDurationSec
	}
	return s
}

// Validate rejects settings no round can start with.
func (s RoundSettings) Validate() error {
	if s.BoardSize < 3 {
		return fmt.Errorf("board_size %d: need at least 3 cards", s.BoardSize)
	}
	if s.Attributes < 2 || s.Attributes > len(game.AllAttributes) {
		return fmt.Errorf("attributes %d: must be between 2 and %d", s.Attributes, len(game.AllAttributes))
	}
	if s.MaxHealth < 1 {
		return fmt.Errorf("max_health %d: must be positive", s.MaxHealth)
	}
	if s.DurationSec < 0 {
		return fmt.Errorf("duration_sec %g: must not be negative", s.DurationSec)
	}
	for key := range s.Stats {
		if !game.IsEffectKey(key) {
			return fmt.Errorf("stats: unknown effect %q", key)
		}
	}
	return nil
}

// ActiveAttributes returns the attributes in play.
func (s RoundSettings) ActiveAttributes() game.ActiveAttributes {
	return game.AttributesForCount(s.Attributes)
}

// PlayerStats builds the base stats from the settings.
func (s RoundSettings) PlayerStats() game.PlayerStats {
	var stats game.PlayerStats
	for key, v := range s.Stats {
		stats = stats.WithChance(key, v)
	}
	stats.TimeGainAmount = s.TimeGainAmount
	stats.BoardGrowthAmount = s.BoardGrowthAmount
	return stats
}
