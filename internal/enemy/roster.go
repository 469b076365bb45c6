package enemy

import "github.com/peterkuimelis/setrogue/internal/game"

// defaultRoster is the built-in set of enemies, tiers 1 to 3.
var defaultRoster = []struct {
	meta   Meta
	slots  []Slot
	defeat DefeatCondition
}{
	// Tier 1
	{
		meta: Meta{Name: "Sloth", Tier: 1, Description: "Hates to be kept waiting."},
		slots: []Slot{
			{InactivityEffect, &InactivityConfig{MaxMs: 30000, Penalty: PenaltyDamage}},
		},
	},
	{
		meta: Meta{Name: "Rust Mite", Tier: 1, Description: "Slowly eats away at your score."},
		slots: []Slot{
			{ScoreDecayEffect, &ScoreDecayConfig{RatePerSecond: 1}},
		},
		defeat: MatchesAtLeast(8),
	},
	{
		meta: Meta{Name: "Pickpocket", Tier: 1, Description: "Steals a little time with every match."},
		slots: []Slot{
			{TimeStealEffect, &AmountConfig{Amount: 2}},
		},
	},
	{
		meta: Meta{Name: "Fog Wisp", Tier: 1, Description: "Some cards arrive hidden."},
		slots: []Slot{
			{FaceDownEffect, &FaceDownConfig{Chance: 15, FlipChance: 50}},
		},
	},

	// Tier 2
	{
		meta: Meta{Name: "Dud Imp", Tier: 2, Description: "Sneaks useless cards into the deck and blocks hints."},
		slots: []Slot{
			{DudCardEffect, &ChanceConfig{Chance: 10}},
			{HintDisableEffect, nil},
		},
	},
	{
		meta: Meta{Name: "Gnawer", Tier: 2, Description: "Chews cards off the table."},
		slots: []Slot{
			{CardRemovalEffect, &CardRemovalConfig{IntervalMs: 8000, MinBoardSize: 9}},
			{ExtraCardRemovalOnInvalidEffect, &ExtraRemovalConfig{Count: 1, MinBoardSize: 9}},
		},
	},
	{
		meta: Meta{Name: "Trickster", Tier: 2, Description: "Keeps rearranging the board."},
		slots: []Slot{
			{PositionShuffleEffect, &IntervalConfig{IntervalMs: 10000}},
			{TimerSpeedEffect, &MultiplierConfig{Multiplier: 1.25}},
		},
		defeat: func(s RoundStats) bool { return s.TotalMatches >= 10 && s.InvalidMatches <= 3 },
	},
	{
		meta: Meta{Name: "Warden", Tier: 2, Description: "Dampens explosions and lasers."},
		slots: []Slot{
			{WeaponCounterEffect, &WeaponCounter{Effect: game.EffectExplosionChance, Reduction: 15}},
			{WeaponCounterEffect, &WeaponCounter{Effect: game.EffectLaserChance, Reduction: 15}},
			{DamageMultiplierEffect, &MultiplierConfig{Multiplier: 2}},
		},
	},

	// Tier 3
	{
		meta: Meta{Name: "Bomber", Tier: 3, Description: "Arms cards that explode if left alone."},
		slots: []Slot{
			{BombCardEffect, &BombConfig{Chance: 15, TimerMs: 15000}},
			{ExtraCardRemovalOnMatchEffect, &ExtraRemovalConfig{Count: 1, MinBoardSize: 9}},
		},
		defeat: MatchesAtLeast(12),
	},
	{
		meta: Meta{Name: "Tyrant", Tier: 3, Description: "Demands constant progress."},
		slots: []Slot{
			{InactivityEffect, &InactivityConfig{MaxMs: 20000, Penalty: PenaltyDeath}},
			{PointsMultiplierEffect, &MultiplierConfig{Multiplier: 0.5}},
			{TimerSpeedEffect, &MultiplierConfig{Multiplier: 1.5}},
		},
		defeat: MatchesAtLeast(12),
	},
	{
		meta: Meta{Name: "Glutton", Tier: 3, Description: "Feeds on score and cards alike."},
		slots: []Slot{
			{ScoreDecayEffect, &ScoreDecayConfig{RatePerSecond: 2}},
			{CardRemovalEffect, &CardRemovalConfig{IntervalMs: 6000, MinBoardSize: 9}},
			{TimeStealEffect, &AmountConfig{Amount: 3}},
		},
		defeat: func(s RoundStats) bool { return s.TotalMatches >= 12 || s.Score >= 60 },
	},
}

// RegisterDefaults adds the built-in roster to r.
func RegisterDefaults(r *Registry) error {
	for _, e := range defaultRoster {
		if err := r.RegisterComposed(e.meta, e.slots, e.defeat); err != nil {
			return err
		}
	}
	return nil
}
