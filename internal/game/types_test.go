package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/setrogue/internal/game"
	"github.com/peterkuimelis/setrogue/internal/game/gametest"
)

func TestSetValue(t *testing.T) {
	c := &game.Card{}
	require.NoError(t, c.SetValue(game.AttrNumber, "3"))
	assert.Equal(t, 3, c.Number)
	require.NoError(t, c.SetValue(game.AttrBackground, game.BackgroundGray))
	assert.Equal(t, game.BackgroundGray, c.Background)

	assert.Error(t, c.SetValue(game.AttrNumber, "three"))
	assert.Error(t, c.SetValue(game.AttrNumber, "4"))
	assert.Error(t, c.SetValue(game.AttrColor, "blue"))
	assert.Equal(t, 3, c.Number, "rejected values leave the card unchanged")
}

func TestCardString(t *testing.T) {
	c := gametest.Card("a", game.ShapeOval, game.ColorRed, 2, game.ShadingOpen)
	assert.Equal(t, "a[2 red open oval white]", c.String())

	c.Background = ""
	assert.Equal(t, "a[2 red open oval]", c.String())

	var empty *game.Card
	assert.Equal(t, "(empty)", empty.String())
}
