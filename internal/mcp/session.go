package mcp

import (
	"encoding/json"
	"fmt"
	"sync"

	srnet "github.com/peterkuimelis/setrogue/internal/net"
)

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	Events   []srnet.EventView `json:"events"`
	State    *srnet.RoundView  `json:"state,omitempty"`
	Match    *srnet.MatchView  `json:"match,omitempty"`
	Hint     []string          `json:"hint,omitempty"`
	Check    *srnet.CheckView  `json:"check,omitempty"`
	Enemies  []EnemySummary    `json:"enemies,omitempty"`
	GameOver bool              `json:"game_over"`
	Won      bool              `json:"won,omitempty"`
	Result   string            `json:"result,omitempty"`
}

// EnemySummary is one entry of list_enemies.
type EnemySummary struct {
	Name        string `json:"name"`
	Tier        int    `json:"tier"`
	Description string `json:"description"`
}

// Toolbox holds the lobby and the single active round of a stdio process.
type Toolbox struct {
	lobby *srnet.Lobby

	mu      sync.Mutex
	session *srnet.Session
}

// NewToolbox creates a toolbox starting rounds from lobby.
func NewToolbox(lobby *srnet.Lobby) *Toolbox {
	return &Toolbox{lobby: lobby}
}

func (tb *Toolbox) active() *srnet.Session {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.session
}

func (tb *Toolbox) setActive(sess *srnet.Session) {
	tb.mu.Lock()
	tb.session = sess
	tb.mu.Unlock()
}

// fromMessage converts a session reply. A finished round is released so the
// next start_round can begin.
func (tb *Toolbox) fromMessage(msg srnet.ServerMessage) *ToolResponse {
	resp := &ToolResponse{
		Events: msg.Events,
		State:  msg.State,
		Match:  msg.Match,
		Hint:   msg.Hint,
	}
	if msg.Type == srnet.MsgGameOver {
		resp.GameOver = true
		resp.Won = msg.Won
		resp.Result = msg.Result
		tb.setActive(nil)
	}
	// Ensure events is never null in JSON
	if resp.Events == nil {
		resp.Events = []srnet.EventView{}
	}
	return resp
}

func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
