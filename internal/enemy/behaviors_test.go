package enemy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/setrogue/internal/game"
	"github.com/peterkuimelis/setrogue/internal/game/gametest"
)

func sloth(maxMs float64, penalty string) *Instance {
	return Compose(Meta{Name: "Sloth"}, []Slot{
		{InactivityEffect, &InactivityConfig{MaxMs: maxMs, Penalty: penalty}},
	}, nil)
}

func TestInactivity_WarningThenPenalty(t *testing.T) {
	e := sloth(10000, PenaltyDamage)
	board := gametest.Board(12)
	rng := game.NewRNG(1)

	assert.Empty(t, e.OnTick(4000, board, rng).Events)

	warn := e.OnTick(1000, board, rng)
	require.Len(t, warn.EventsOfType(EventInactivityWarning), 1)
	assert.Equal(t, 5, warn.Events[0].SecondsRemaining)

	assert.Empty(t, e.OnTick(1000, board, rng).Events, "warning fires once")

	pen := e.OnTick(4000, board, rng)
	require.Len(t, pen.EventsOfType(EventInactivityPenalty), 1)
	assert.Equal(t, -1, pen.HealthDelta)
	assert.False(t, pen.InstantDeath)
	assert.Zero(t, e.SlotState(0).(*InactivityState).TimeSinceMatch, "penalty resets the timer")
}

func TestInactivity_DeathPenalty(t *testing.T) {
	e := sloth(6000, PenaltyDeath)
	res := e.OnTick(6000, gametest.Board(12), game.NewRNG(1))
	assert.True(t, res.InstantDeath)
	assert.Zero(t, res.HealthDelta)
	assert.Len(t, res.EventsOfType(EventInactivityWarning), 1)
	assert.Len(t, res.EventsOfType(EventInactivityPenalty), 1)
}

func TestInactivity_ResetsOnRoundStartAndMatch(t *testing.T) {
	e := sloth(10000, PenaltyDamage)
	board := gametest.Board(12)
	rng := game.NewRNG(1)
	state := e.SlotState(0).(*InactivityState)

	e.OnTick(7000, board, rng)
	require.True(t, state.Warned)
	e.OnValidMatch(gametest.Cards(board, 0, 1, 2), board, rng)
	assert.Zero(t, state.TimeSinceMatch)
	assert.False(t, state.Warned)

	e.OnTick(3000, board, rng)
	e.OnRoundStart(board, rng)
	assert.Zero(t, state.TimeSinceMatch)
}

func TestCardRemoval_RemovesOnInterval(t *testing.T) {
	e := Compose(Meta{Name: "Gnawer"}, []Slot{
		{CardRemovalEffect, &CardRemovalConfig{IntervalMs: 5000, MinBoardSize: 6}},
	}, nil)
	state := e.SlotState(0).(*CardRemovalState)
	board := gametest.Board(12)

	state.TimeSinceRemoval = 4000
	res := e.OnTick(1500, board, game.NewRNG(3))
	require.Len(t, res.CardsToRemove, 1)
	assert.GreaterOrEqual(t, board.IndexOf(res.CardsToRemove[0]), 0)
	require.Len(t, res.EventsOfType(EventCardRemoved), 1)
	assert.Equal(t, ReasonEnemyEffect, res.Events[0].Reason)
	assert.Zero(t, state.TimeSinceRemoval)
}

func TestCardRemoval_RespectsMinimumBoard(t *testing.T) {
	e := Compose(Meta{Name: "Gnawer"}, []Slot{
		{CardRemovalEffect, &CardRemovalConfig{IntervalMs: 5000, MinBoardSize: 6}},
	}, nil)
	state := e.SlotState(0).(*CardRemovalState)
	state.TimeSinceRemoval = 4000

	res := e.OnTick(1500, gametest.Board(6), game.NewRNG(3))
	assert.Empty(t, res.CardsToRemove)
	assert.Zero(t, state.TimeSinceRemoval)
}

func TestCardRemoval_SkipsSelectedCards(t *testing.T) {
	e := Compose(Meta{Name: "Gnawer"}, []Slot{
		{CardRemovalEffect, &CardRemovalConfig{IntervalMs: 1000, MinBoardSize: 0}},
	}, nil)
	board := gametest.Board(4)
	board[0].Selected, board[1].Selected, board[2].Selected = true, true, true
	res := e.OnTick(1000, board, game.NewRNG(3))
	assert.Equal(t, []string{"c3"}, res.CardsToRemove)
}

func TestDudCards(t *testing.T) {
	e := Compose(Meta{Name: "Imp"}, []Slot{{DudCardEffect, &ChanceConfig{Chance: 100}}}, nil)
	card := gametest.Board(1)[0]
	res := e.OnCardDraw(card, nil, game.NewRNG(1))
	assert.True(t, card.IsDud)
	assert.Len(t, res.EventsOfType(EventCardDud), 1)

	never := Compose(Meta{Name: "Imp"}, []Slot{{DudCardEffect, &ChanceConfig{Chance: 0}}}, nil)
	other := gametest.Board(2)[1]
	never.OnCardDraw(other, nil, game.NewRNG(1))
	assert.False(t, other.IsDud)
}

func TestFaceDown_FlipRollsForEveryFaceDownCard(t *testing.T) {
	e := Compose(Meta{Name: "Fog"}, []Slot{
		{FaceDownEffect, &FaceDownConfig{Chance: 100, FlipChance: 50}},
	}, nil)
	board := gametest.Board(12)
	for _, i := range []int{1, 5, 9} {
		board[i].IsFaceDown = true
	}
	rng := gametest.NewScriptedRNG(0.1, 0.9, 0.2)
	res := e.OnValidMatch(gametest.Cards(board, 0, 4, 8), board, rng)
	assert.Equal(t, []string{"c1", "c9"}, res.CardsToFlip)
	assert.Equal(t, 3, rng.FloatsUsed())

	card := gametest.Board(1)[0]
	e.OnCardDraw(card, board, game.NewRNG(1))
	assert.True(t, card.IsFaceDown)
	assert.True(t, e.UIModifiers().FaceDownCards)
}

func TestPositionShuffle(t *testing.T) {
	e := Compose(Meta{Name: "Trickster"}, []Slot{
		{PositionShuffleEffect, &IntervalConfig{IntervalMs: 3000}},
	}, nil)
	board := gametest.Board(12)
	assert.False(t, e.OnTick(2000, board, game.NewRNG(1)).ShuffleBoard)
	res := e.OnTick(1000, board, game.NewRNG(1))
	assert.True(t, res.ShuffleBoard)
	assert.Len(t, res.EventsOfType(EventPositionsShuffled), 1)
	assert.False(t, e.OnTick(1000, board, game.NewRNG(1)).ShuffleBoard)
}

func TestTimeSteal(t *testing.T) {
	e := Compose(Meta{Name: "Pickpocket"}, []Slot{{TimeStealEffect, &AmountConfig{Amount: 4}}}, nil)
	board := gametest.Board(12)
	res := e.OnValidMatch(gametest.Cards(board, 0, 1, 2), board, game.NewRNG(1))
	assert.Equal(t, -4.0, res.TimeDelta)
	require.Len(t, res.EventsOfType(EventTimeStolen), 1)
	assert.Equal(t, 4.0, res.Events[0].Amount)
}

func TestExtraRemoval_ClampedToMinimumBoard(t *testing.T) {
	e := Compose(Meta{Name: "Eater"}, []Slot{
		{ExtraCardRemovalOnMatchEffect, &ExtraRemovalConfig{Count: 5, MinBoardSize: 9}},
	}, nil)
	board := gametest.Board(12)
	matched := gametest.Cards(board, 0, 1, 2)
	res := e.OnValidMatch(matched, board, game.NewRNG(2))
	require.Len(t, res.CardsToRemove, 3, "matched cards are refilled, so 12 may shrink to 9")
	for _, id := range res.CardsToRemove {
		assert.NotContains(t, game.IDs(matched), id)
	}

	small := gametest.Board(9)
	assert.Empty(t, e.OnValidMatch(gametest.Cards(small, 0, 1, 2), small, game.NewRNG(2)).CardsToRemove)
}

func TestExtraRemoval_DefaultBoardLosesOneCard(t *testing.T) {
	cfg := &ExtraRemovalConfig{Count: 1, MinBoardSize: 9}
	onMatch := Compose(Meta{Name: "Bomber"}, []Slot{{ExtraCardRemovalOnMatchEffect, cfg}}, nil)
	onInvalid := Compose(Meta{Name: "Gnawer"}, []Slot{{ExtraCardRemovalOnInvalidEffect, cfg}}, nil)

	board := gametest.Board(12)
	picked := gametest.Cards(board, 0, 1, 3)
	assert.Len(t, onMatch.OnValidMatch(picked, board, game.NewRNG(3)).CardsToRemove, 1)
	assert.Len(t, onInvalid.OnInvalidMatch(picked, board, game.NewRNG(3)).CardsToRemove, 1)

	atMinimum := gametest.Board(9)
	assert.Empty(t, onInvalid.OnInvalidMatch(gametest.Cards(atMinimum, 0, 1, 3), atMinimum, game.NewRNG(3)).CardsToRemove)
}

func TestExtraRemoval_OnInvalid(t *testing.T) {
	e := Compose(Meta{Name: "Gnawer"}, []Slot{
		{ExtraCardRemovalOnInvalidEffect, &ExtraRemovalConfig{Count: 2, MinBoardSize: 3}},
	}, nil)
	board := gametest.Board(12)
	selected := gametest.Cards(board, 3, 4, 9)
	assert.Empty(t, e.OnValidMatch(selected, board, game.NewRNG(1)).CardsToRemove)
	res := e.OnInvalidMatch(selected, board, game.NewRNG(1))
	require.Len(t, res.CardsToRemove, 2)
	for _, id := range res.CardsToRemove {
		assert.NotContains(t, game.IDs(selected), id)
	}
}

func TestBombCards_ArmAndDetonate(t *testing.T) {
	e := Compose(Meta{Name: "Bomber"}, []Slot{
		{BombCardEffect, &BombConfig{Chance: 100, TimerMs: 3000}},
	}, nil)
	board := gametest.Board(6)
	res := e.OnCardDraw(board[2], board, game.NewRNG(1))
	assert.Equal(t, 3000, board[2].BombTimer)
	assert.Len(t, res.EventsOfType(EventBombArmed), 1)

	assert.Zero(t, e.OnTick(2000, board, game.NewRNG(1)).HealthDelta)
	assert.Equal(t, 1000, board[2].BombTimer)

	boom := e.OnTick(1500, board, game.NewRNG(1))
	assert.Equal(t, -1, boom.HealthDelta)
	assert.Equal(t, []string{"c2"}, boom.CardsToRemove)
	require.Len(t, boom.EventsOfType(EventBombExploded), 1)
	assert.Equal(t, ReasonBomb, boom.Events[0].Reason)
	assert.Zero(t, board[2].BombTimer)
}

func TestBombCards_TwoSlotsTickEachFuseOnce(t *testing.T) {
	cfg := &BombConfig{Chance: 100, TimerMs: 3000}
	e := Compose(Meta{Name: "Arsenal"}, []Slot{{BombCardEffect, cfg}, {BombCardEffect, cfg}}, nil)
	board := gametest.Board(3)
	res := e.OnCardDraw(board[0], board, game.NewRNG(1))
	assert.Len(t, res.EventsOfType(EventBombArmed), 1, "an armed card is not armed again")

	e.OnTick(1000, board, game.NewRNG(1))
	assert.Equal(t, 2000, board[0].BombTimer)
}

func TestBombCards_SubMillisecondTicksAccumulate(t *testing.T) {
	e := Compose(Meta{Name: "Bomber"}, []Slot{
		{BombCardEffect, &BombConfig{Chance: 100, TimerMs: 1}},
	}, nil)
	board := gametest.Board(3)
	e.OnCardDraw(board[1], board, game.NewRNG(1))

	assert.Empty(t, e.OnTick(0.6, board, game.NewRNG(1)).CardsToRemove)
	assert.Equal(t, 1, board[1].BombTimer)
	assert.Equal(t, []string{"c1"}, e.OnTick(0.6, board, game.NewRNG(1)).CardsToRemove)
}

func TestLookupBehavior(t *testing.T) {
	b, err := LookupBehavior("score_decay")
	require.NoError(t, err)
	assert.Same(t, ScoreDecayEffect, b)

	_, err = LookupBehavior("nope")
	assert.ErrorIs(t, err, ErrUnknownBehavior)
	assert.Len(t, BehaviorNames(), 15)
}

func TestTypedConfig_AcceptsValueOrNil(t *testing.T) {
	e := Compose(Meta{Name: "Value"}, []Slot{
		{ScoreDecayEffect, ScoreDecayConfig{RatePerSecond: 2}},
		{ScoreDecayEffect, nil},
	}, nil)
	res := e.OnTick(500, gametest.Board(3), game.NewRNG(1))
	assert.InDelta(t, -1.0, res.ScoreDelta, 1e-9)
}
