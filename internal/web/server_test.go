package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/setrogue/internal/config"
	"github.com/peterkuimelis/setrogue/internal/game"
	"github.com/peterkuimelis/setrogue/internal/game/gametest"
	srnet "github.com/peterkuimelis/setrogue/internal/net"
)

const testCatalog = `
weapons:
  - id: blast-cap
    name: Blast Cap
    tier: 1
    effects:
      explosionChance: 15
enemies:
  - name: Clockwork
    tier: 2
    description: Speeds up time.
    effects:
      - behavior: timer_speed
        config: {multiplier: 1.5}
`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	c, err := config.Parse([]byte(testCatalog))
	require.NoError(t, err)
	lobby, err := srnet.NewLobby(c)
	require.NoError(t, err)
	lobby.NewRNG = func(int64) game.RNG { return gametest.NewScriptedRNG() }
	ts := httptest.NewServer(NewServer(lobby))
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, v any) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestEnemiesEndpoint(t *testing.T) {
	ts := newTestServer(t)
	var enemies []EnemyInfo
	getJSON(t, ts.URL+"/api/enemies", &enemies)

	byName := map[string]EnemyInfo{}
	for _, e := range enemies {
		byName[e.Name] = e
	}
	require.Contains(t, byName, "Clockwork")
	assert.Equal(t, []string{"timer_speed"}, byName["Clockwork"].Behaviors)
	assert.Contains(t, byName, "Sloth")
}

func TestWeaponsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	var weapons []WeaponInfo
	getJSON(t, ts.URL+"/api/weapons", &weapons)
	require.Len(t, weapons, 1)
	assert.Equal(t, "blast-cap", weapons[0].ID)
	assert.Equal(t, 15.0, weapons[0].Effects["explosionChance"])
}

func TestBehaviorsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	var names []string
	getJSON(t, ts.URL+"/api/behaviors", &names)
	assert.Contains(t, names, "bomb_cards")
	assert.Len(t, names, 15)
}

func TestWebSocketRound(t *testing.T) {
	ts := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	require.NoError(t, wsjson.Write(ctx, conn, srnet.ClientMessage{Type: srnet.MsgStart, Enemy: "Clockwork", Weapons: []string{"blast-cap"}}))
	var msg srnet.ServerMessage
	require.NoError(t, wsjson.Read(ctx, conn, &msg))
	assert.Equal(t, srnet.MsgRound, msg.Type)
	require.NotNil(t, msg.State)
	assert.Equal(t, "Clockwork", msg.State.Enemy.Name)
	assert.Equal(t, 1.5, msg.State.Enemy.UI.TimerSpeedMultiplier)

	require.NoError(t, wsjson.Write(ctx, conn, srnet.ClientMessage{Type: srnet.MsgTick, DeltaMs: 2000}))
	msg = srnet.ServerMessage{}
	require.NoError(t, wsjson.Read(ctx, conn, &msg))
	assert.Equal(t, float64(config.DefaultDurationSec)-3, msg.State.TimeRemaining)

	require.NoError(t, wsjson.Write(ctx, conn, srnet.ClientMessage{Type: srnet.MsgMatch, IDs: []string{"card-1", "card-2", "card-3"}}))
	msg = srnet.ServerMessage{}
	require.NoError(t, wsjson.Read(ctx, conn, &msg))
	assert.Equal(t, srnet.MsgMatch, msg.Type)
	assert.True(t, msg.Match.Valid)

	require.NoError(t, wsjson.Write(ctx, conn, srnet.ClientMessage{Type: srnet.MsgTick, DeltaMs: 500000}))
	msg = srnet.ServerMessage{}
	require.NoError(t, wsjson.Read(ctx, conn, &msg))
	assert.Equal(t, srnet.MsgGameOver, msg.Type)
}

func TestWebSocketBadStart(t *testing.T) {
	ts := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	require.NoError(t, wsjson.Write(ctx, conn, srnet.ClientMessage{Type: srnet.MsgStart, Enemy: "Nobody"}))
	var msg srnet.ServerMessage
	require.NoError(t, wsjson.Read(ctx, conn, &msg))
	assert.Equal(t, srnet.MsgError, msg.Type)
}
