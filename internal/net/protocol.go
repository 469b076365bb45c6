package net

import "github.com/peterkuimelis/setrogue/internal/enemy"

// Message types for the JSON protocol over TCP and websocket.

// Client message types.
const (
	MsgStart = "start"
	MsgTick  = "tick"
	MsgMatch = "match"
	MsgHint  = "hint"
	MsgState = "state"
)

// Server message types. Replies to "match" and "hint" reuse the client type.
const (
	MsgRound    = "round"
	MsgError    = "error"
	MsgGameOver = "game_over"
)

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"`

	State  *RoundView  `json:"state,omitempty"`
	Events []EventView `json:"events,omitempty"`

	// For "match"
	Match *MatchView `json:"match,omitempty"`

	// For "hint"
	Hint []string `json:"hint,omitempty"`

	// For "error"
	Error string `json:"error,omitempty"`

	// For "game_over"
	Won    bool   `json:"won,omitempty"`
	Result string `json:"result,omitempty"`
}

// EventView is a simplified round event for the client.
type EventView struct {
	Seq       int     `json:"seq"`
	Round     int     `json:"round"`
	ElapsedMs float64 `json:"elapsed_ms"`
	Type      string  `json:"type"`
	Card      string  `json:"card,omitempty"`
	Details   string  `json:"details"`
}

// CardView describes one board card. Face-down cards hide their attributes.
type CardView struct {
	Index      int    `json:"index"`
	ID         string `json:"id"`
	Shape      string `json:"shape,omitempty"`
	Color      string `json:"color,omitempty"`
	Number     int    `json:"number,omitempty"`
	Shading    string `json:"shading,omitempty"`
	Background string `json:"background,omitempty"`
	FaceDown   bool   `json:"face_down,omitempty"`
	Dud        bool   `json:"dud,omitempty"`
	OnFire     bool   `json:"on_fire,omitempty"`
	BombMs     int    `json:"bomb_ms,omitempty"`
}

// EnemyView describes the enemy of a round.
type EnemyView struct {
	Name        string            `json:"name"`
	Tier        int               `json:"tier"`
	Description string            `json:"description"`
	Behaviors   []string          `json:"behaviors"`
	UI          enemy.UIModifiers `json:"ui"`
}

// RoundView is the full round state.
type RoundView struct {
	ID            string           `json:"id"`
	Status        string           `json:"status"`
	Reason        string           `json:"reason,omitempty"`
	Enemy         EnemyView        `json:"enemy"`
	Attributes    []string         `json:"attributes"`
	Columns       int              `json:"columns"`
	Board         []CardView       `json:"board"`
	DeckCount     int              `json:"deck_count"`
	Health        int              `json:"health"`
	MaxHealth     int              `json:"max_health"`
	Graces        int              `json:"graces"`
	Hints         int              `json:"hints"`
	Score         float64          `json:"score"`
	Money         int              `json:"money"`
	TimeRemaining float64          `json:"time_remaining"`
	ElapsedMs     float64          `json:"elapsed_ms"`
	Weapons       []string         `json:"weapons,omitempty"`
	Stats         enemy.RoundStats `json:"stats"`
}

// MatchView is the outcome of a submitted selection.
type MatchView struct {
	Valid             bool       `json:"valid"`
	GraceUsed         bool       `json:"grace_used,omitempty"`
	Dud               bool       `json:"dud,omitempty"`
	InvalidAttributes []string   `json:"invalid_attributes,omitempty"`
	Points            float64    `json:"points"`
	Removed           []string   `json:"removed,omitempty"`
	Burned            []string   `json:"burned,omitempty"`
	Drawn             []string   `json:"drawn,omitempty"`
	Notifications     []string   `json:"notifications,omitempty"`
	AutoMatched       [][]string `json:"auto_matched,omitempty"`
}

// CheckView reports whether a selection would match, without playing it.
type CheckView struct {
	Valid             bool     `json:"valid"`
	InvalidAttributes []string `json:"invalid_attributes,omitempty"`
	GraceEligible     bool     `json:"grace_eligible,omitempty"`
	GraceAvailable    bool     `json:"grace_available,omitempty"`
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "start"
	Enemy   string   `json:"enemy,omitempty"`
	Tier    int      `json:"tier,omitempty"`
	Seed    int64    `json:"seed,omitempty"`
	Weapons []string `json:"weapons,omitempty"`

	// For "tick"
	DeltaMs float64 `json:"delta_ms,omitempty"`

	// For "match"
	IDs []string `json:"ids,omitempty"`
}
