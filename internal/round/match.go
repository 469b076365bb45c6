package round

import (
	"fmt"
	"math"

	"github.com/peterkuimelis/setrogue/internal/enemy"
	"github.com/peterkuimelis/setrogue/internal/game"
	"github.com/peterkuimelis/setrogue/internal/log"
	"github.com/peterkuimelis/setrogue/internal/weapon"
)

// MatchResult reports the outcome of one submitted selection.
type MatchResult struct {
	Valid             bool
	GraceUsed         bool
	InvalidAttributes []string
	Dud               bool

	Points  float64
	Burned  []string
	Removed []string // every card that left the board, matched ones included
	Drawn   []string

	Weapon *weapon.Result // nil for invalid matches
	Enemy  enemy.Result
	Over   bool
}

// SubmitMatch plays three card ids as a combination.
func (r *Round) SubmitMatch(ids []string) (*MatchResult, error) {
	if r.Over() {
		return nil, ErrRoundOver
	}
	cards, err := r.selection(ids)
	if err != nil {
		return nil, err
	}

	v := game.Validate(cards, r.active)
	out := &MatchResult{}
	for _, c := range cards {
		if c.IsDud {
			out.Dud = true
		}
	}
	switch {
	case out.Dud:
		v.IsValid = false
	case v.CanApplyGrace(r.graces):
		r.graces--
		r.stats.GracesUsed++
		out.GraceUsed = true
		r.log(log.NewGraceUsedEvent(v.InvalidNames()[0], r.graces))
	}
	out.InvalidAttributes = v.InvalidNames()

	if v.IsValid || out.GraceUsed {
		r.validMatch(cards, out)
	} else {
		r.invalidMatch(cards, out)
	}
	r.settle()
	out.Over = r.Over()
	return out, nil
}

// Check validates a selection against the board without playing it.
func (r *Round) Check(ids []string) (game.ValidationResult, error) {
	cards, err := r.selection(ids)
	if err != nil {
		return game.ValidationResult{}, err
	}
	return game.Validate(cards, r.active), nil
}

// selection resolves ids to three distinct board cards.
func (r *Round) selection(ids []string) ([]*game.Card, error) {
	if len(ids) != 3 {
		return nil, fmt.Errorf("%w: got %d", ErrWrongSelectionSize, len(ids))
	}
	if len(game.IDSet(ids)) != 3 {
		return nil, fmt.Errorf("%w: duplicate ids", ErrWrongSelectionSize)
	}
	cards := make([]*game.Card, 3)
	for i, id := range ids {
		c := r.board.Find(id)
		if c == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCard, id)
		}
		cards[i] = c
	}
	return cards, nil
}

func (r *Round) invalidMatch(cards []*game.Card, out *MatchResult) {
	r.stats.InvalidMatches++
	r.stats.CurrentStreak = 0
	reason := "invalid set"
	if out.Dud {
		reason = "dud card"
	}
	r.log(log.NewInvalidMatchEvent(game.IDs(cards), out.InvalidAttributes, reason))

	withSelection(cards, func() {
		out.Enemy = r.enemy.OnInvalidMatch(cards, r.board, r.rng)
	})
	dmg := int(math.Round(r.enemy.StatModifiers().Damage()))
	r.damage(dmg, reason)
	out.Removed = r.applyEnemy(out.Enemy)
}

func (r *Round) validMatch(cards []*game.Card, out *MatchResult) {
	out.Valid = true
	matchedIDs := game.IDs(cards)

	// Burning cards from earlier matches are consumed first.
	for _, c := range r.board {
		if c.OnFire && !containsID(matchedIDs, c.ID) {
			out.Burned = append(out.Burned, c.ID)
		}
	}
	r.remove(out.Burned)
	if len(out.Burned) > 0 {
		r.log(log.NewBurnEvent(out.Burned, float64(len(out.Burned)*BurnPoints)))
	}

	mods := r.enemy.StatModifiers()
	wres := weapon.Process(weapon.Input{
		Board:   r.board,
		Matched: cards,
		Stats:   r.PlayerStats(),
		Weapons: mods.ApplyToWeapons(r.weaponsOrNil()),
		Active:  r.active,
		Echo:    r.echo,
		RNG:     r.rng,
	})
	out.Weapon = wres

	withSelection(cards, func() {
		out.Enemy = r.enemy.OnValidMatch(cards, r.board, r.rng)
	})

	sets := 1 + len(wres.AutoMatchedSets)
	multiplier := mods.Points()
	if out.Enemy.PointsMultiplier != 0 {
		multiplier = out.Enemy.PointsMultiplier
	}
	out.Points = float64(sets*MatchPoints+wres.BonusPoints+len(out.Burned)*BurnPoints) * multiplier

	r.log(log.NewMatchEvent(matchedIDs, out.Points))
	r.logWeapons(wres)
	r.recordMatch(cards)
	for _, set := range wres.AutoMatchedSets {
		r.recordMatch(set)
	}

	r.addScore(out.Points, "match")
	r.money += wres.BonusMoney
	r.heal(wres.BonusHealing, "weapon")
	r.hints += wres.BonusHints
	r.graces += wres.BonusGraces
	r.addTime(wres.BonusTime, "weapon")
	r.targetSize += wres.BoardGrowth

	for _, c := range wres.FireCards {
		c.OnFire = true
	}

	leaving := append([]string(nil), matchedIDs...)
	for _, set := range wres.AutoMatchedSets {
		leaving = append(leaving, game.IDs(set)...)
	}
	leaving = append(leaving, game.IDs(wres.Destroyed())...)
	r.stats.CardsDestroyed += len(wres.Destroyed())
	out.Removed = append(append([]string(nil), out.Burned...), r.remove(leaving)...)
	out.Removed = append(out.Removed, r.applyEnemy(out.Enemy)...)
	out.Drawn = r.refill()

	r.checkDefeat()
}

// recordMatch updates the counters fed to defeat conditions.
func (r *Round) recordMatch(cards []*game.Card) {
	r.stats.TotalMatches++
	r.stats.CurrentStreak++
	r.stats.BestStreak = max(r.stats.BestStreak, r.stats.CurrentStreak)

	since := r.elapsedMs - r.lastMatchMs
	if r.stats.FastestMatchMs == 0 || since < r.stats.FastestMatchMs {
		r.stats.FastestMatchMs = since
	}
	r.lastMatchMs = r.elapsedMs

	if color := cards[0].Color; cards[1].Color == color && cards[2].Color == color {
		if r.stats.ColorMatches == nil {
			r.stats.ColorMatches = map[string]int{}
		}
		r.stats.ColorMatches[color]++
	}
	if shape := cards[0].Shape; cards[1].Shape == shape && cards[2].Shape == shape {
		if r.stats.ShapeMatches == nil {
			r.stats.ShapeMatches = map[string]int{}
		}
		r.stats.ShapeMatches[shape]++
	}
}

func (r *Round) logWeapons(res *weapon.Result) {
	if len(res.ExplosiveCards) > 0 {
		r.log(log.NewWeaponEvent(log.EventExplosion, game.IDs(res.ExplosiveCards)))
	}
	if len(res.LaserCards) > 0 {
		r.log(log.NewWeaponEvent(log.EventLaser, game.IDs(res.LaserCards)))
	}
	if len(res.FireCards) > 0 {
		r.log(log.NewWeaponEvent(log.EventFire, game.IDs(res.FireCards)))
	}
	if len(res.RicochetCards) > 0 {
		r.log(log.NewWeaponEvent(log.EventRicochet, game.IDs(res.RicochetCards)))
	}
	for _, set := range res.AutoMatchedSets {
		r.log(log.NewEchoEvent(game.IDs(set)))
	}
	for _, t := range res.Triggered {
		if _, ok := r.triggered[t]; !ok {
			r.triggered[t] = struct{}{}
			r.stats.WeaponsTriggered = append(r.stats.WeaponsTriggered, t)
		}
	}
	for _, note := range res.Notifications {
		r.log(log.NewBonusEvent(note))
	}
}

// weaponsOrNil keeps the stat-chance laser fallback for weaponless rounds.
func (r *Round) weaponsOrNil() []game.Weapon {
	if len(r.weapons) == 0 {
		return nil
	}
	return r.weapons
}

// Hint returns a valid combination on the board and spends one hint.
func (r *Round) Hint() ([]string, error) {
	if r.Over() {
		return nil, ErrRoundOver
	}
	if r.enemy.UIModifiers().HintsDisabled {
		return nil, ErrHintsDisabled
	}
	if r.hints <= 0 {
		return nil, ErrNoHints
	}
	set := game.FindValidCombination(r.playable(), r.active, nil)
	if set == nil {
		return nil, ErrNoCombination
	}
	r.hints--
	r.stats.HintsUsed++
	ids := game.IDs(set)
	r.log(log.NewHintEvent(ids))
	return ids, nil
}

// withSelection marks cards selected while f runs so enemy effects leave
// them alone.
func withSelection(cards []*game.Card, f func()) {
	for _, c := range cards {
		c.Selected = true
	}
	f()
	for _, c := range cards {
		c.Selected = false
	}
}

func containsID(ids []string, id string) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
