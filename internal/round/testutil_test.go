package round

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/setrogue/internal/config"
	"github.com/peterkuimelis/setrogue/internal/enemy"
	"github.com/peterkuimelis/setrogue/internal/game"
	"github.com/peterkuimelis/setrogue/internal/game/gametest"
	"github.com/peterkuimelis/setrogue/internal/log"
)

// With a scripted RNG the deck is never shuffled, so with four attributes the
// board starts as card-1..card-12 in generation order:
//
//	card-1  oval red 1 solid     card-2  oval red 1 striped   card-3  oval red 1 open
//	card-4  oval red 2 solid     card-5  oval red 2 striped   card-6  oval red 2 open
//	card-7  oval red 3 solid     card-8  oval red 3 striped   card-9  oval red 3 open
//	card-10 oval green 1 solid   card-11 oval green 1 striped card-12 oval green 1 open

type testRound struct {
	*Round
	log *log.MemoryLogger
}

type option func(*Config)

func withSlots(slots ...enemy.Slot) option {
	return func(c *Config) {
		c.Enemy = enemy.Compose(enemy.Meta{Name: "Dummy", Tier: 1}, slots, c.Enemy.CheckDefeatCondition)
	}
}

func withDefeat(cond enemy.DefeatCondition) option {
	return func(c *Config) {
		c.Enemy = enemy.Compose(c.Enemy.Meta, c.Enemy.Slots(), cond)
	}
}

func withRNG(rng game.RNG) option {
	return func(c *Config) { c.RNG = rng }
}

func withSettings(f func(*config.RoundSettings)) option {
	return func(c *Config) { f(&c.Settings) }
}

func newTestRound(t *testing.T, opts ...option) *testRound {
	t.Helper()
	logger := log.NewMemoryLogger()
	cfg := Config{
		Settings: config.DefaultRound(),
		Enemy:    enemy.Compose(enemy.Meta{Name: "Dummy", Tier: 1}, nil, nil),
		RNG:      gametest.NewScriptedRNG(),
		Logger:   logger,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	r, err := New(cfg)
	require.NoError(t, err)
	return &testRound{Round: r, log: logger}
}

func (tr *testRound) mustMatch(t *testing.T, ids ...string) *MatchResult {
	t.Helper()
	res, err := tr.SubmitMatch(ids)
	require.NoError(t, err)
	return res
}
