package round

import (
	"github.com/peterkuimelis/setrogue/internal/game"
	"github.com/peterkuimelis/setrogue/internal/log"
)

// draw moves the top deck card onto the board, letting the enemy tamper
// with it first.
func (r *Round) draw() *game.Card {
	if len(r.deck) == 0 {
		return nil
	}
	card := r.deck[0]
	r.deck = r.deck[1:]
	res := r.enemy.OnCardDraw(card, r.board, r.rng)
	r.board = append(r.board, card)
	r.log(log.NewDrawEvent(card.ID, card.String()))
	r.applyEnemy(res)
	return card
}

// refill draws until the board reaches its target size or the deck runs out.
func (r *Round) refill() []string {
	var drawn []string
	for len(r.board) < r.targetSize {
		c := r.draw()
		if c == nil {
			break
		}
		drawn = append(drawn, c.ID)
	}
	return drawn
}

// remove takes cards off the board and reports which ids were present.
func (r *Round) remove(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	var gone []string
	for _, id := range ids {
		if r.board.IndexOf(id) >= 0 {
			gone = append(gone, id)
		}
	}
	r.board = r.board.Without(gone)
	return gone
}

// playable lists the cards that can take part in a match.
func (r *Round) playable() game.Board {
	out := make(game.Board, 0, len(r.board))
	for _, c := range r.board {
		if !c.IsDud {
			out = append(out, c)
		}
	}
	return out
}

// settle keeps the round solvable: while no valid combination exists it
// deals three more cards, and ends the round once the deck cannot help.
func (r *Round) settle() {
	for r.status == StatusActive {
		if game.FindValidCombination(r.playable(), r.active, nil) != nil {
			return
		}
		if len(r.deck) == 0 {
			r.end(StatusLost, ReasonNoMatches)
			return
		}
		r.targetSize = len(r.board) + 3
		r.refill()
	}
}

// shuffleBoard randomizes card positions.
func (r *Round) shuffleBoard() {
	r.board.Shuffle(r.rng)
	r.log(log.NewShuffleEvent())
}
