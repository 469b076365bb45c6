package round

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/setrogue/internal/game"
)

func TestBot_PlaysToDefeat(t *testing.T) {
	r := newTestRound(t)
	n, err := Bot{ThinkMs: 1000}.Play(r.Round)
	require.NoError(t, err)
	assert.Equal(t, 10, n)
	assert.Equal(t, StatusWon, r.Status())
	assert.Equal(t, ReasonEnemyDefeated, r.Reason())
	assert.Equal(t, 10000.0, r.ElapsedMs())
}

func TestBot_SkipsFaceDownCards(t *testing.T) {
	r := newTestRound(t)
	r.Board()[0].IsFaceDown = true

	ids := Bot{ThinkMs: 1}.Choose(r.Round)
	require.Len(t, ids, 3)
	assert.NotContains(t, ids, "card-1")

	cards := make([]*game.Card, 3)
	for i, id := range ids {
		cards[i] = r.Board().Find(id)
	}
	assert.True(t, game.IsValidCombination(cards, r.Active()))
}

func TestBot_RejectsZeroThinkTime(t *testing.T) {
	_, err := Bot{}.Play(newTestRound(t).Round)
	assert.Error(t, err)
}
