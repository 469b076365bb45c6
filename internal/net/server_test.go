package net

import (
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_PlaysRoundOverTCP(t *testing.T) {
	srv := &Server{Addr: "127.0.0.1:0", Lobby: newTestLobby(t)}
	require.NoError(t, srv.Listen())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	defer func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("server did not stop")
		}
	}()

	conn, err := net.Dial("tcp", srv.Address())
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetDeadline(time.Now().Add(5*time.Second)))

	enc := json.NewEncoder(conn)
	dec := json.NewDecoder(conn)

	require.NoError(t, enc.Encode(ClientMessage{Type: MsgStart, Enemy: "Pickpocket"}))
	var msg ServerMessage
	require.NoError(t, dec.Decode(&msg))
	assert.Equal(t, MsgRound, msg.Type)
	require.NotNil(t, msg.State)
	assert.Equal(t, "Pickpocket", msg.State.Enemy.Name)

	require.NoError(t, enc.Encode(ClientMessage{Type: MsgMatch, IDs: []string{"card-1", "card-2", "card-3"}}))
	msg = ServerMessage{}
	require.NoError(t, dec.Decode(&msg))
	assert.Equal(t, MsgMatch, msg.Type)
	require.NotNil(t, msg.Match)
	assert.True(t, msg.Match.Valid)

	require.NoError(t, enc.Encode(ClientMessage{Type: MsgTick, DeltaMs: 500000}))
	msg = ServerMessage{}
	require.NoError(t, dec.Decode(&msg))
	assert.Equal(t, MsgGameOver, msg.Type)
	assert.Equal(t, "time expired", msg.Result)
}

func TestServer_RejectsBadStart(t *testing.T) {
	srv := &Server{Addr: "127.0.0.1:0", Lobby: newTestLobby(t)}
	require.NoError(t, srv.Listen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go srv.Run(ctx)

	conn, err := net.Dial("tcp", srv.Address())
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetDeadline(time.Now().Add(5*time.Second)))

	require.NoError(t, json.NewEncoder(conn).Encode(ClientMessage{Type: MsgStart, Enemy: "Nobody"}))
	var msg ServerMessage
	require.NoError(t, json.NewDecoder(conn).Decode(&msg))
	assert.Equal(t, MsgError, msg.Type)
	assert.Contains(t, msg.Error, "Nobody")
}
