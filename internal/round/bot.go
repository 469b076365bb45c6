package round

import (
	"errors"

	"github.com/peterkuimelis/setrogue/internal/game"
)

// Bot plays a round headlessly: it waits ThinkMs, then submits the first
// valid combination among the cards it can see.
type Bot struct {
	ThinkMs float64
}

// Play runs r to completion and returns the number of matches submitted.
func (b Bot) Play(r *Round) (int, error) {
	if b.ThinkMs <= 0 {
		return 0, errors.New("bot think time must be positive")
	}
	submitted := 0
	for !r.Over() {
		if _, err := r.Tick(b.ThinkMs); err != nil {
			return submitted, err
		}
		if r.Over() {
			break
		}
		set := b.Choose(r)
		if set == nil {
			continue
		}
		if _, err := r.SubmitMatch(set); err != nil {
			return submitted, err
		}
		submitted++
	}
	return submitted, nil
}

// Choose returns the ids of the first valid combination of face-up, non-dud
// cards, or nil when none is visible.
func (b Bot) Choose(r *Round) []string {
	var visible game.Board
	for _, c := range r.playable() {
		if !c.IsFaceDown {
			visible = append(visible, c)
		}
	}
	set := game.FindValidCombination(visible, r.active, nil)
	if set == nil {
		return nil
	}
	return game.IDs(set)
}
