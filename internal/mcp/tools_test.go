package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/setrogue/internal/game"
	"github.com/peterkuimelis/setrogue/internal/game/gametest"
	srnet "github.com/peterkuimelis/setrogue/internal/net"
)

func newTestToolbox(t *testing.T) *Toolbox {
	t.Helper()
	lobby, err := srnet.NewLobby(nil)
	require.NoError(t, err)
	lobby.NewRNG = func(int64) game.RNG { return gametest.NewScriptedRNG() }
	return NewToolbox(lobby)
}

func callTool(t *testing.T, h server.ToolHandlerFunc, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func decode(t *testing.T, res *mcp.CallToolResult) *ToolResponse {
	t.Helper()
	require.False(t, res.IsError, resultText(t, res))
	var resp ToolResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &resp))
	return &resp
}

func TestListEnemies(t *testing.T) {
	tb := newTestToolbox(t)

	all := decode(t, callTool(t, tb.handleListEnemies, nil))
	assert.NotEmpty(t, all.Enemies)

	tier2 := decode(t, callTool(t, tb.handleListEnemies, map[string]any{"tier": 2}))
	require.NotEmpty(t, tier2.Enemies)
	for _, e := range tier2.Enemies {
		assert.Equal(t, 2, e.Tier)
	}
	assert.Less(t, len(tier2.Enemies), len(all.Enemies))
}

func TestRoundLifecycle(t *testing.T) {
	tb := newTestToolbox(t)

	res := callTool(t, tb.handleTick, map[string]any{"delta_ms": 100})
	assert.True(t, res.IsError)

	start := decode(t, callTool(t, tb.handleStartRound, map[string]any{"enemy": "Pickpocket"}))
	require.NotNil(t, start.State)
	assert.Equal(t, "Pickpocket", start.State.Enemy.Name)
	assert.Len(t, start.State.Board, 12)
	assert.NotEmpty(t, start.Events)

	again := callTool(t, tb.handleStartRound, map[string]any{"enemy": "Sloth"})
	assert.True(t, again.IsError)

	check := decode(t, callTool(t, tb.handleValidateCombination, map[string]any{"ids": "card-1 card-2 card-4"}))
	require.NotNil(t, check.Check)
	assert.False(t, check.Check.Valid)
	assert.Equal(t, []string{"number", "shading"}, check.Check.InvalidAttributes)
	assert.False(t, check.Check.GraceEligible)

	match := decode(t, callTool(t, tb.handleSubmitMatch, map[string]any{"ids": "card-1 card-2 card-3"}))
	require.NotNil(t, match.Match)
	assert.True(t, match.Match.Valid)
	assert.Equal(t, 3.0, match.State.Score)

	state := decode(t, callTool(t, tb.handleGetRoundState, nil))
	assert.Empty(t, state.Events)
	assert.False(t, state.GameOver)

	over := decode(t, callTool(t, tb.handleTick, map[string]any{"delta_ms": 500000}))
	assert.True(t, over.GameOver)
	assert.False(t, over.Won)
	assert.Equal(t, "time expired", over.Result)

	// The finished round is released.
	res = callTool(t, tb.handleGetRoundState, nil)
	assert.True(t, res.IsError)
	decode(t, callTool(t, tb.handleStartRound, map[string]any{"enemy": "Sloth"}))
}

func TestSubmitMatchErrors(t *testing.T) {
	tb := newTestToolbox(t)
	decode(t, callTool(t, tb.handleStartRound, map[string]any{"enemy": "Sloth"}))

	res := callTool(t, tb.handleSubmitMatch, map[string]any{"ids": "card-1 card-2"})
	assert.True(t, res.IsError)

	res = callTool(t, tb.handleSubmitMatch, map[string]any{"ids": "card-1 card-2 card-99"})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "card-99")

	res = callTool(t, tb.handleTick, map[string]any{"delta_ms": -1})
	assert.True(t, res.IsError)
}

func TestStartRoundErrors(t *testing.T) {
	tb := newTestToolbox(t)
	res := callTool(t, tb.handleStartRound, map[string]any{"enemy": "Nobody"})
	assert.True(t, res.IsError)

	res = callTool(t, tb.handleStartRound, map[string]any{"enemy": "Sloth", "weapons": "prism"})
	assert.True(t, res.IsError)
}

func TestHint(t *testing.T) {
	tb := newTestToolbox(t)
	decode(t, callTool(t, tb.handleStartRound, map[string]any{"enemy": "Sloth"}))

	resp := decode(t, callTool(t, tb.handleHint, nil))
	assert.Equal(t, []string{"card-1", "card-2", "card-3"}, resp.Hint)
}

func TestRegisterTools(t *testing.T) {
	s := server.NewMCPServer("setrogue", "test")
	tb := newTestToolbox(t)
	assert.NotPanics(t, func() { tb.RegisterTools(s) })
}
