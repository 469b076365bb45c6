package net

import (
	"github.com/peterkuimelis/setrogue/internal/game"
	"github.com/peterkuimelis/setrogue/internal/log"
	"github.com/peterkuimelis/setrogue/internal/round"
)

// BuildRoundView creates a RoundView from the current round state.
func BuildRoundView(r *round.Round) *RoundView {
	e := r.Enemy()
	rv := &RoundView{
		ID:     r.ID,
		Status: r.Status().String(),
		Reason: r.Reason(),
		Enemy: EnemyView{
			Name:        e.Name,
			Tier:        e.Tier,
			Description: e.Description,
			Behaviors:   e.BehaviorNames(),
			UI:          e.UIModifiers(),
		},
		Attributes:    r.Active().Names(),
		Columns:       game.GridColumns,
		DeckCount:     r.DeckCount(),
		Health:        r.Health(),
		MaxHealth:     r.MaxHealth(),
		Graces:        r.Graces(),
		Hints:         r.Hints(),
		Score:         r.Score(),
		Money:         r.Money(),
		TimeRemaining: r.TimeRemaining(),
		ElapsedMs:     r.ElapsedMs(),
		Stats:         r.Stats(),
	}
	for i, c := range r.Board() {
		rv.Board = append(rv.Board, BuildCardView(i, c))
	}
	for _, w := range r.Weapons() {
		rv.Weapons = append(rv.Weapons, w.Name)
	}
	return rv
}

// BuildCardView hides the attributes of face-down cards.
func BuildCardView(index int, c *game.Card) CardView {
	cv := CardView{
		Index:    index,
		ID:       c.ID,
		FaceDown: c.IsFaceDown,
		Dud:      c.IsDud,
		OnFire:   c.OnFire,
		BombMs:   c.BombTimer,
	}
	if !c.IsFaceDown {
		cv.Shape = c.Shape
		cv.Color = c.Color
		cv.Number = c.Number
		cv.Shading = c.Shading
		cv.Background = c.Background
	}
	return cv
}

// BuildMatchView flattens a match result.
func BuildMatchView(res *round.MatchResult) *MatchView {
	mv := &MatchView{
		Valid:             res.Valid,
		GraceUsed:         res.GraceUsed,
		Dud:               res.Dud,
		InvalidAttributes: res.InvalidAttributes,
		Points:            res.Points,
		Removed:           res.Removed,
		Burned:            res.Burned,
		Drawn:             res.Drawn,
	}
	if res.Weapon != nil {
		mv.Notifications = res.Weapon.Notifications
		for _, set := range res.Weapon.AutoMatchedSets {
			mv.AutoMatched = append(mv.AutoMatched, game.IDs(set))
		}
	}
	return mv
}

// BuildEventView converts a logged event.
func BuildEventView(ev log.GameEvent) EventView {
	return EventView{
		Seq:       ev.Seq,
		Round:     ev.Round,
		ElapsedMs: ev.ElapsedMs,
		Type:      ev.Type.String(),
		Card:      ev.Card,
		Details:   ev.Details,
	}
}
