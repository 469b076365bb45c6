package mcp

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	srnet "github.com/peterkuimelis/setrogue/internal/net"
)

// RegisterTools adds all round tools to the MCP server.
func (tb *Toolbox) RegisterTools(s *server.MCPServer) {
	s.AddTool(listEnemiesTool(), tb.handleListEnemies)
	s.AddTool(startRoundTool(), tb.handleStartRound)
	s.AddTool(tickTool(), tb.handleTick)
	s.AddTool(submitMatchTool(), tb.handleSubmitMatch)
	s.AddTool(hintTool(), tb.handleHint)
	s.AddTool(validateCombinationTool(), tb.handleValidateCombination)
	s.AddTool(getRoundStateTool(), tb.handleGetRoundState)
}

// --- Tool definitions ---

func listEnemiesTool() mcp.Tool {
	return mcp.NewTool("list_enemies",
		mcp.WithDescription("List the enemies that can be fought, optionally filtered by tier."),
		mcp.WithNumber("tier", mcp.Description("Only list enemies of this tier (1-3). Omit or 0 for all.")),
	)
}

func startRoundTool() mcp.Tool {
	return mcp.NewTool("start_round",
		mcp.WithDescription("Start a new round against an enemy. Returns the dealt board and round state. "+
			"Find three cards where every attribute is all the same or all different, then play them with submit_match."),
		mcp.WithString("enemy", mcp.Description("Enemy name from list_enemies. Empty picks a random enemy.")),
		mcp.WithNumber("tier", mcp.Description("Tier for a random enemy. 0 for any tier.")),
		mcp.WithNumber("seed", mcp.Description("Random seed for a reproducible round. 0 seeds from the clock.")),
		mcp.WithString("weapons", mcp.Description("Space-separated weapon ids from the catalog (e.g. 'blast-cap prism')")),
	)
}

func tickTool() mcp.Tool {
	return mcp.NewTool("tick",
		mcp.WithDescription("Advance the round clock. Enemy timers run and the round may end when time expires."),
		mcp.WithNumber("delta_ms", mcp.Required(), mcp.Description("Milliseconds to advance")),
	)
}

func submitMatchTool() mcp.Tool {
	return mcp.NewTool("submit_match",
		mcp.WithDescription("Play three board cards as a combination. Invalid selections cost health unless a grace forgives them."),
		mcp.WithString("ids", mcp.Required(), mcp.Description("Space-separated card ids (e.g. 'card-1 card-5 card-9')")),
	)
}

func hintTool() mcp.Tool {
	return mcp.NewTool("hint",
		mcp.WithDescription("Spend a hint to reveal one valid combination on the board."),
	)
}

func validateCombinationTool() mcp.Tool {
	return mcp.NewTool("validate_combination",
		mcp.WithDescription("Check whether three board cards would form a combination without playing them. Read-only."),
		mcp.WithString("ids", mcp.Required(), mcp.Description("Space-separated card ids")),
	)
}

func getRoundStateTool() mcp.Tool {
	return mcp.NewTool("get_round_state",
		mcp.WithDescription("Get the current round state and any events since the last call. Read-only."),
	)
}

// --- Tool handlers ---

func (tb *Toolbox) handleListEnemies(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	reg := tb.lobby.Registry
	names := reg.Names()
	if tier := request.GetInt("tier", 0); tier > 0 {
		names = reg.NamesForTier(tier)
	}
	resp := &ToolResponse{Events: []srnet.EventView{}}
	for _, name := range names {
		meta, ok := reg.Meta(name)
		if !ok {
			continue
		}
		resp.Enemies = append(resp.Enemies, EnemySummary{Name: meta.Name, Tier: meta.Tier, Description: meta.Description})
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (tb *Toolbox) handleStartRound(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if tb.active() != nil {
		return mcp.NewToolResultError("A round is already running. Only one round at a time is supported."), nil
	}
	sess, err := tb.lobby.StartRound(srnet.ClientMessage{
		Type:    srnet.MsgStart,
		Enemy:   request.GetString("enemy", ""),
		Tier:    request.GetInt("tier", 0),
		Seed:    int64(request.GetInt("seed", 0)),
		Weapons: strings.Fields(request.GetString("weapons", "")),
	})
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start round: %v", err), nil
	}
	tb.setActive(sess)
	return mcp.NewToolResultText(respondJSON(tb.fromMessage(sess.Snapshot()))), nil
}

func (tb *Toolbox) handleTick(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	delta := request.GetFloat("delta_ms", -1)
	if delta < 0 {
		return mcp.NewToolResultError("delta_ms must be >= 0"), nil
	}
	return tb.handle(srnet.ClientMessage{Type: srnet.MsgTick, DeltaMs: delta})
}

func (tb *Toolbox) handleSubmitMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ids := strings.Fields(request.GetString("ids", ""))
	if len(ids) != 3 {
		return mcp.NewToolResultErrorf("Must select exactly 3 cards, got %d.", len(ids)), nil
	}
	return tb.handle(srnet.ClientMessage{Type: srnet.MsgMatch, IDs: ids})
}

func (tb *Toolbox) handleHint(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return tb.handle(srnet.ClientMessage{Type: srnet.MsgHint})
}

func (tb *Toolbox) handleGetRoundState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return tb.handle(srnet.ClientMessage{Type: srnet.MsgState})
}

func (tb *Toolbox) handleValidateCombination(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := tb.active()
	if sess == nil {
		return mcp.NewToolResultError("No round is running. Use start_round first."), nil
	}
	check, err := sess.Check(strings.Fields(request.GetString("ids", "")))
	if err != nil {
		return mcp.NewToolResultErrorf("%v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(&ToolResponse{Events: []srnet.EventView{}, Check: check})), nil
}

// handle forwards a message to the active round. Round errors become tool
// errors so the caller can retry.
func (tb *Toolbox) handle(msg srnet.ClientMessage) (*mcp.CallToolResult, error) {
	sess := tb.active()
	if sess == nil {
		return mcp.NewToolResultError("No round is running. Use start_round first."), nil
	}
	reply := sess.Handle(msg)
	if reply.Type == srnet.MsgError {
		return mcp.NewToolResultErrorf("%s", reply.Error), nil
	}
	return mcp.NewToolResultText(respondJSON(tb.fromMessage(reply))), nil
}
