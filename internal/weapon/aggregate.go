package weapon

import (
	"fmt"

	"github.com/peterkuimelis/setrogue/internal/game"
)

// Reward amounts per destroyed card.
const (
	ExplosionPoints = 1
	ExplosionMoney  = 1
	LaserPoints     = 2
	LaserMoney      = 1
	RicochetPoints  = 1
	RicochetMoney   = 1
)

// Fixed one-shot bonus amounts.
const (
	HealingAmount            = 1
	HintAmount               = 1
	GraceAmount              = 1
	DefaultTimeGainAmount    = 5 // seconds
	DefaultBoardGrowthAmount = 1
)

// Trigger names recorded in Result.Triggered.
const (
	TriggerHealing     = "healing"
	TriggerHint        = "hint"
	TriggerTime        = "time"
	TriggerGrace       = "grace"
	TriggerBoardGrowth = "board_growth"
	TriggerExplosion   = "explosion"
	TriggerLaser       = "laser"
	TriggerFire        = "fire"
	TriggerRicochet    = "ricochet"
	TriggerEcho        = "echo"
)

// Input is everything the aggregator needs for one match.
type Input struct {
	Board   game.Board
	Matched []*game.Card
	Stats   game.PlayerStats

	// Weapons, when non-nil, switches laser resolution to one independent roll
	// per laser weapon. A nil list falls back to Stats.LaserChance.
	Weapons []game.Weapon

	// Active is needed to re-validate echo sets. Echoes are skipped without it.
	Active game.ActiveAttributes

	// IsEchoMatch marks a re-entrant run for an echo set; echoes are not
	// detected again, so resolution never nests more than one level.
	IsEchoMatch bool

	// Echo reports auto-matched sets. Nil uses ChanceEcho.
	Echo EchoDetector

	// Excluded cards are never destroyed or ignited. Echo runs use it to
	// avoid the outer match and everything it already claimed.
	Excluded []string

	RNG game.RNG
}

// Result is the unified outcome of every weapon roll for a match.
// A card id appears in at most one of the four destructive lists.
type Result struct {
	ExplosiveCards []*game.Card
	LaserCards     []*game.Card
	FireCards      []*game.Card
	RicochetCards  []*game.Card
	RicochetCount  int
	LaserCount     int

	BonusPoints  int
	BonusMoney   int
	BonusHealing int
	BonusHints   int
	BonusTime    float64 // seconds
	BonusGraces  int
	BoardGrowth  int

	Notifications   []string
	AutoMatchedSets [][]*game.Card
	Triggered       []string
}

// Destroyed returns every card removed by explosion, laser or ricochet.
// Fire cards are ignited, not destroyed.
func (r *Result) Destroyed() []*game.Card {
	out := make([]*game.Card, 0, len(r.ExplosiveCards)+len(r.LaserCards)+len(r.RicochetCards))
	out = append(out, r.ExplosiveCards...)
	out = append(out, r.LaserCards...)
	out = append(out, r.RicochetCards...)
	return out
}

// Claimed returns the ids of every card in a destructive list.
func (r *Result) Claimed() []string {
	ids := game.IDs(r.Destroyed())
	return append(ids, game.IDs(r.FireCards)...)
}

// Process rolls every weapon effect for a match. Destructive categories are
// claimed in priority order explosion, laser, fire, ricochet; a card claimed by
// an earlier category is never offered to a later one.
func Process(in Input) *Result {
	res := resolve(in)
	if !in.IsEchoMatch {
		resolveEchoes(in, res)
	}
	res.tally()
	return res
}

func resolve(in Input) *Result {
	res := &Result{}
	rng := in.RNG
	stats := in.Stats

	if game.Roll(rng, stats.HealingChance) {
		res.BonusHealing += HealingAmount
		res.trigger(TriggerHealing, fmt.Sprintf("+%d Health", HealingAmount))
	}
	if game.Roll(rng, stats.HintGainChance) {
		res.BonusHints += HintAmount
		res.trigger(TriggerHint, fmt.Sprintf("+%d Hint", HintAmount))
	}
	if game.Roll(rng, stats.TimeGainChance) {
		amount := stats.TimeGainAmount
		if amount == 0 {
			amount = DefaultTimeGainAmount
		}
		res.BonusTime += amount
		res.trigger(TriggerTime, fmt.Sprintf("+%gs Time", amount))
	}
	if game.Roll(rng, stats.GraceGainChance) {
		res.BonusGraces += GraceAmount
		res.trigger(TriggerGrace, fmt.Sprintf("+%d Grace", GraceAmount))
	}
	if game.Roll(rng, stats.BoardGrowthChance) {
		amount := stats.BoardGrowthAmount
		if amount == 0 {
			amount = DefaultBoardGrowthAmount
		}
		res.BoardGrowth += amount
		res.trigger(TriggerBoardGrowth, fmt.Sprintf("Board +%d", amount))
	}

	claimed := game.IDSet(in.Excluded)
	res.ExplosiveCards = filterClaimed(ExplosiveCards(in.Board, in.Matched, stats.ExplosionChance, rng), claimed)
	addIDs(claimed, res.ExplosiveCards)
	res.LaserCards, res.LaserCount = resolveLasers(in, claimed)
	addIDs(claimed, res.LaserCards)

	fire := FireSpreadCards(in.Board, in.Matched, stats.FireSpreadChance, rng)
	res.FireCards = filterClaimed(fire, claimed)
	addIDs(claimed, res.FireCards)

	res.RicochetCards = RicochetCards(in.Board, in.Matched, setKeys(claimed), stats.RicochetChance, stats.RicochetChainChance, rng)
	return res
}

// resolveLasers fires every laser weapon independently, or a single stat-driven
// laser when no weapon list is given. Cards in claimed are dropped.
func resolveLasers(in Input, claimed map[string]struct{}) ([]*game.Card, int) {
	var chances []float64
	if in.Weapons != nil {
		for _, w := range in.Weapons {
			if w.SpecialEffect == game.SpecialLaser {
				chances = append(chances, w.Effect(game.EffectLaserChance))
			}
		}
	} else {
		chances = append(chances, in.Stats.LaserChance)
	}

	taken := make(map[string]struct{}, len(claimed))
	for id := range claimed {
		taken[id] = struct{}{}
	}
	var cards []*game.Card
	fired := 0
	for _, chance := range chances {
		if !game.Roll(in.RNG, chance) {
			continue
		}
		fired++
		for _, c := range LaserCards(in.Board, in.Matched, in.RNG) {
			if _, ok := taken[c.ID]; ok {
				continue
			}
			taken[c.ID] = struct{}{}
			cards = append(cards, c)
		}
	}
	return cards, fired
}

// resolveEchoes asks the detector for auto-matched sets, re-validates each one
// and folds a single re-entrant run per valid set into res.
func resolveEchoes(in Input, res *Result) {
	if len(in.Active) == 0 {
		return
	}
	detector := in.Echo
	if detector == nil {
		detector = ChanceEcho{}
	}

	exclude := append(game.IDs(in.Matched), res.Claimed()...)
	for _, set := range detector.DetectEchoes(in.Board, exclude, in.Stats, in.Active, in.RNG) {
		if !game.IsValidCombination(set, in.Active) {
			continue
		}
		if overlaps(set, exclude) {
			continue
		}
		echoIn := in
		echoIn.Matched = set
		echoIn.IsEchoMatch = true
		echoIn.Excluded = exclude
		echo := resolve(echoIn)

		res.AutoMatchedSets = append(res.AutoMatchedSets, set)
		res.trigger(TriggerEcho, "Echo!")

		exclude = append(exclude, game.IDs(set)...)
		res.absorb(echo, game.IDSet(exclude))
		exclude = append(exclude, echo.Claimed()...)
	}
}

// absorb merges an echo run into r, dropping any card in taken.
func (r *Result) absorb(echo *Result, taken map[string]struct{}) {
	for id := range game.IDSet(r.Claimed()) {
		taken[id] = struct{}{}
	}
	explosive := filterClaimed(echo.ExplosiveCards, taken)
	addIDs(taken, explosive)
	laser := filterClaimed(echo.LaserCards, taken)
	addIDs(taken, laser)
	fire := filterClaimed(echo.FireCards, taken)
	addIDs(taken, fire)
	ricochet := filterClaimed(echo.RicochetCards, taken)

	r.ExplosiveCards = append(r.ExplosiveCards, explosive...)
	r.LaserCards = append(r.LaserCards, laser...)
	r.FireCards = append(r.FireCards, fire...)
	r.RicochetCards = append(r.RicochetCards, ricochet...)
	r.LaserCount += echo.LaserCount

	r.BonusHealing += echo.BonusHealing
	r.BonusHints += echo.BonusHints
	r.BonusTime += echo.BonusTime
	r.BonusGraces += echo.BonusGraces
	r.BoardGrowth += echo.BoardGrowth
	r.Notifications = append(r.Notifications, echo.Notifications...)
	for _, t := range echo.Triggered {
		r.markTriggered(t)
	}
}

// tally computes card rewards and destructive notifications from the final lists.
func (r *Result) tally() {
	r.RicochetCount = len(r.RicochetCards)
	r.BonusPoints = len(r.ExplosiveCards)*ExplosionPoints +
		len(r.LaserCards)*LaserPoints +
		r.RicochetCount*RicochetPoints
	r.BonusMoney = len(r.ExplosiveCards)*ExplosionMoney +
		len(r.LaserCards)*LaserMoney +
		r.RicochetCount*RicochetMoney

	if len(r.ExplosiveCards) > 0 {
		r.trigger(TriggerExplosion, "Explosion!")
	}
	switch {
	case r.LaserCount > 1:
		r.trigger(TriggerLaser, fmt.Sprintf("%dx Laser", r.LaserCount))
	case r.LaserCount == 1:
		r.trigger(TriggerLaser, "Laser!")
	}
	if len(r.FireCards) > 0 {
		r.trigger(TriggerFire, "Fire!")
	}
	switch {
	case r.RicochetCount > 1:
		r.trigger(TriggerRicochet, fmt.Sprintf("Ricochet x%d!", r.RicochetCount))
	case r.RicochetCount == 1:
		r.trigger(TriggerRicochet, "Ricochet!")
	}
}

func (r *Result) trigger(name, note string) {
	r.Notifications = append(r.Notifications, note)
	r.markTriggered(name)
}

func (r *Result) markTriggered(name string) {
	for _, t := range r.Triggered {
		if t == name {
			return
		}
	}
	r.Triggered = append(r.Triggered, name)
}

func filterClaimed(cards []*game.Card, claimed map[string]struct{}) []*game.Card {
	var out []*game.Card
	for _, c := range cards {
		if _, ok := claimed[c.ID]; !ok {
			out = append(out, c)
		}
	}
	return out
}

func overlaps(cards []*game.Card, ids []string) bool {
	set := game.IDSet(ids)
	for _, c := range cards {
		if _, ok := set[c.ID]; ok {
			return true
		}
	}
	return false
}

func addIDs(set map[string]struct{}, cards []*game.Card) {
	for _, c := range cards {
		set[c.ID] = struct{}{}
	}
}

func setKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	return keys
}
