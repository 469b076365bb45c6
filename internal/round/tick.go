package round

import (
	"fmt"
	"math"

	"github.com/peterkuimelis/setrogue/internal/enemy"
	"github.com/peterkuimelis/setrogue/internal/log"
)

// TickResult reports what happened during one clock step.
type TickResult struct {
	Enemy   enemy.Result
	Removed []string
	Over    bool
}

// Tick advances the round by deltaMs of real time. The round clock runs at
// the enemy's timer speed; enemy behaviors see real time.
func (r *Round) Tick(deltaMs float64) (*TickResult, error) {
	if r.Over() {
		return nil, ErrRoundOver
	}
	if deltaMs < 0 {
		return nil, fmt.Errorf("negative tick %gms", deltaMs)
	}
	r.elapsedMs += deltaMs
	r.timeRemaining = max(r.timeRemaining-deltaMs/1000*r.enemy.StatModifiers().TimerSpeed(), 0)

	res := r.enemy.OnTick(deltaMs, r.board, r.rng)
	removed := r.applyEnemy(res)
	if r.status == StatusActive && r.timeRemaining <= 0 {
		r.end(StatusLost, ReasonTimeExpired)
	}
	r.settle()
	return &TickResult{Enemy: res, Removed: removed, Over: r.Over()}, nil
}

// applyEnemy applies a merged enemy result to the round and returns the ids
// of cards it removed.
func (r *Round) applyEnemy(res enemy.Result) []string {
	for _, ev := range res.Events {
		r.logEnemyEvent(ev)
	}

	if res.InstantDeath {
		r.end(StatusLost, ReasonInstantDeath)
	}
	if res.HealthDelta < 0 {
		dmg := int(math.Round(float64(-res.HealthDelta) * r.enemy.StatModifiers().Damage()))
		r.damage(dmg, r.enemy.Name)
	} else if res.HealthDelta > 0 {
		r.heal(res.HealthDelta, r.enemy.Name)
	}
	r.addScore(res.ScoreDelta, r.enemy.Name)
	r.addTime(res.TimeDelta, r.enemy.Name)

	var flipped []string
	for _, id := range res.CardsToFlip {
		if c := r.board.Find(id); c != nil && c.IsFaceDown {
			c.IsFaceDown = false
			flipped = append(flipped, id)
		}
	}
	if len(flipped) > 0 {
		r.log(log.NewCardsFlippedEvent(flipped))
	}

	removed := r.remove(res.CardsToRemove)
	for _, id := range removed {
		r.log(log.NewCardRemovedEvent(id, r.enemy.Name))
	}
	r.targetSize = max(r.targetSize-len(removed), 0)

	if res.ShuffleBoard {
		r.shuffleBoard()
	}
	return removed
}

func (r *Round) logEnemyEvent(ev enemy.Event) {
	switch ev.Type {
	case enemy.EventCardRemoved:
		// logged once the card actually leaves the board
	case enemy.EventPositionsShuffled:
		// logged by shuffleBoard
	case enemy.EventBombExploded:
		r.log(log.NewBombEvent(ev.CardID))
	default:
		var details string
		switch {
		case ev.SecondsRemaining > 0:
			details = fmt.Sprintf("(%ds left)", ev.SecondsRemaining)
		case ev.Penalty != "":
			details = "(" + ev.Penalty + ")"
		case ev.Amount != 0:
			details = fmt.Sprintf("(%g)", ev.Amount)
		}
		r.log(log.NewEnemyEffectEvent(r.enemy.Name, ev.Type, ev.CardID, details))
	}
}
